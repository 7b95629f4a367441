package review

import (
	"github.com/deppfellow/review-api/internal/validation"
)

// Review is a row of the reviews table. A NULL review_text is read back
// as the empty string.
type Review struct {
	ID         int
	UserID     int
	BusinessID int
	Stars      int
	ReviewText string
}

type CreateReviewRequest struct {
	UserID     *int    `json:"user_id" validate:"required"`
	BusinessID *int    `json:"business_id" validate:"required"`
	Stars      *int    `json:"stars" validate:"required,min=0,max=5"`
	ReviewText *string `json:"review_text" validate:"omitempty,max=1000"`
}

func (r *CreateReviewRequest) Validate() error {
	return validation.Struct(r)
}

// Review converts a validated request into a new row. An absent
// review_text is stored as the empty string.
func (r *CreateReviewRequest) Review() Review {
	rv := Review{
		UserID:     *r.UserID,
		BusinessID: *r.BusinessID,
		Stars:      *r.Stars,
	}
	if r.ReviewText != nil {
		rv.ReviewText = *r.ReviewText
	}
	return rv
}

// UpdateReviewRequest changes stars and, when present, review_text.
type UpdateReviewRequest struct {
	ID         int     `param:"id" json:"-"`
	Stars      *int    `json:"stars" validate:"required,min=0,max=5"`
	ReviewText *string `json:"review_text" validate:"omitempty,max=1000"`
}

func (r *UpdateReviewRequest) Validate() error {
	return validation.Struct(r)
}

// Response is a review with its business as a URL.
type Response struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	Business   string `json:"business"`
	Stars      int    `json:"stars"`
	ReviewText string `json:"review_text"`
	Self       string `json:"self"`
}

// ListEntry is a review as returned by the paginated listing, which
// reports business_id as a plain number.
type ListEntry struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	BusinessID int    `json:"business_id"`
	Stars      int    `json:"stars"`
	ReviewText string `json:"review_text"`
	Self       string `json:"self"`
}
