package handler

import (
	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/deppfellow/review-api/internal/server"
	"github.com/deppfellow/review-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	Handler
	reviews *service.ReviewService
}

func NewReviewHandler(s *server.Server, reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		Handler: NewHandler(s),
		reviews: reviews,
	}
}

func (h *ReviewHandler) Create(c echo.Context, req *review.CreateReviewRequest) (review.Response, error) {
	created, err := h.reviews.Create(c.Request().Context(), req)
	if err != nil {
		return review.Response{}, err
	}
	return shapeReview(c, created), nil
}

func (h *ReviewHandler) Get(c echo.Context, req *model.IDRequest) (review.Response, error) {
	found, err := h.reviews.Get(c.Request().Context(), req.ID)
	if err != nil {
		return review.Response{}, err
	}
	return shapeReview(c, found), nil
}

func (h *ReviewHandler) Update(c echo.Context, req *review.UpdateReviewRequest) (review.Response, error) {
	updated, err := h.reviews.Update(c.Request().Context(), req)
	if err != nil {
		return review.Response{}, err
	}
	return shapeReview(c, updated), nil
}

func (h *ReviewHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.reviews.Delete(c.Request().Context(), req.ID)
}

// List pages through every review. Entries carry business_id rather than
// a business URL.
func (h *ReviewHandler) List(c echo.Context, req *model.PageQuery) (model.PaginatedResponse[review.ListEntry], error) {
	page := req.Page()

	result, err := h.reviews.List(c.Request().Context(), page)
	if err != nil {
		return model.PaginatedResponse[review.ListEntry]{}, err
	}

	entries := make([]review.ListEntry, 0, len(result.Items))
	for _, rv := range result.Items {
		entries = append(entries, shapeReviewEntry(c, rv))
	}
	return paginated(c, entries, result.HasMore, page), nil
}

// ListByUser answers GET /users/:id/reviews with a bare array.
func (h *ReviewHandler) ListByUser(c echo.Context, req *model.IDRequest) ([]review.Response, error) {
	reviews, err := h.reviews.ListByUser(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return shapeReviews(c, reviews), nil
}
