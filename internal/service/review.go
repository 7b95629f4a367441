package service

import (
	"context"

	"github.com/deppfellow/review-api/internal/errs"
	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/deppfellow/review-api/internal/sqlerr"
)

// ReviewStore is the persistence the review service needs.
type ReviewStore interface {
	Create(ctx context.Context, rv review.Review) (review.Review, error)
	GetByID(ctx context.Context, id int) (review.Review, error)
	Update(ctx context.Context, id, stars int, reviewText *string) (review.Review, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page model.Page) (model.PageResult[review.Review], error)
	ListByUser(ctx context.Context, userID int) ([]review.Review, error)
}

type ReviewService struct {
	store ReviewStore
}

func NewReviewService(store ReviewStore) *ReviewService {
	return &ReviewService{store: store}
}

// Create inserts the review. The store is the only judge of whether the
// business exists and whether the user already reviewed it.
func (s *ReviewService) Create(ctx context.Context, req *review.CreateReviewRequest) (review.Review, error) {
	created, err := s.store.Create(ctx, req.Review())
	if err != nil {
		switch sqlerr.ErrCode(err) {
		case sqlerr.UniqueViolation:
			return review.Review{}, errs.NewReviewConflictError().WithCause(err)
		case sqlerr.ForeignKeyViolation:
			return review.Review{}, errs.NewBusinessNotFoundError().WithCause(err)
		}
		return review.Review{}, writeFailure(err, "Unable to create review")
	}
	return created, nil
}

func (s *ReviewService) Get(ctx context.Context, id int) (review.Review, error) {
	found, err := s.store.GetByID(ctx, id)
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return review.Review{}, errs.NewReviewNotFoundError().WithCause(err)
		}
		return review.Review{}, err
	}
	return found, nil
}

// Update sets stars, and review_text only when the request carries it.
func (s *ReviewService) Update(ctx context.Context, req *review.UpdateReviewRequest) (review.Review, error) {
	updated, err := s.store.Update(ctx, req.ID, *req.Stars, req.ReviewText)
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return review.Review{}, errs.NewReviewNotFoundError().WithCause(err)
		}
		return review.Review{}, writeFailure(err, "Unable to update review")
	}
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if sqlerr.IsNoRows(err) {
			return errs.NewReviewNotFoundError().WithCause(err)
		}
		return writeFailure(err, "Unable to delete review")
	}
	return nil
}

func (s *ReviewService) List(ctx context.Context, page model.Page) (model.PageResult[review.Review], error) {
	return s.store.List(ctx, page)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID int) ([]review.Review, error) {
	return s.store.ListByUser(ctx, userID)
}
