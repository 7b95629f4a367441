package handler

import (
	"fmt"

	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/labstack/echo/v4"
)

// baseURL is scheme://host of the current request. Scheme honors
// X-Forwarded-Proto and friends.
func baseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}

func businessURL(c echo.Context, id int) string {
	return fmt.Sprintf("%s/businesses/%d", baseURL(c), id)
}

func reviewURL(c echo.Context, id int) string {
	return fmt.Sprintf("%s/reviews/%d", baseURL(c), id)
}

// nextURL points at the page after page on the current path.
func nextURL(c echo.Context, page model.Page) string {
	return fmt.Sprintf("%s%s?offset=%d&limit=%d", baseURL(c), c.Request().URL.Path, page.NextOffset(), page.Limit)
}

func shapeBusiness(c echo.Context, b business.Business) (business.Response, error) {
	zip, err := b.ZipAsInt()
	if err != nil {
		return business.Response{}, err
	}

	return business.Response{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Name:          b.Name,
		StreetAddress: b.StreetAddress,
		City:          b.City,
		State:         b.State,
		ZipCode:       zip,
		Self:          businessURL(c, b.ID),
	}, nil
}

func shapeBusinesses(c echo.Context, businesses []business.Business) ([]business.Response, error) {
	shaped := make([]business.Response, 0, len(businesses))
	for _, b := range businesses {
		s, err := shapeBusiness(c, b)
		if err != nil {
			return nil, err
		}
		shaped = append(shaped, s)
	}
	return shaped, nil
}

func shapeReview(c echo.Context, rv review.Review) review.Response {
	return review.Response{
		ID:         rv.ID,
		UserID:     rv.UserID,
		Business:   businessURL(c, rv.BusinessID),
		Stars:      rv.Stars,
		ReviewText: rv.ReviewText,
		Self:       reviewURL(c, rv.ID),
	}
}

func shapeReviews(c echo.Context, reviews []review.Review) []review.Response {
	shaped := make([]review.Response, 0, len(reviews))
	for _, rv := range reviews {
		shaped = append(shaped, shapeReview(c, rv))
	}
	return shaped
}

// shapeReviewEntry keeps business_id as a number; only the paginated
// listing uses this shape.
func shapeReviewEntry(c echo.Context, rv review.Review) review.ListEntry {
	return review.ListEntry{
		ID:         rv.ID,
		UserID:     rv.UserID,
		BusinessID: rv.BusinessID,
		Stars:      rv.Stars,
		ReviewText: rv.ReviewText,
		Self:       reviewURL(c, rv.ID),
	}
}

func paginated[T any](c echo.Context, entries []T, hasMore bool, page model.Page) model.PaginatedResponse[T] {
	response := model.PaginatedResponse[T]{Entries: entries}
	if hasMore {
		response.Next = nextURL(c, page)
	}
	return response
}
