package handler

import (
	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/deppfellow/review-api/internal/server"
	"github.com/deppfellow/review-api/internal/service"
	"github.com/labstack/echo/v4"
)

type BusinessHandler struct {
	Handler
	businesses *service.BusinessService
}

func NewBusinessHandler(s *server.Server, businesses *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		Handler:    NewHandler(s),
		businesses: businesses,
	}
}

func (h *BusinessHandler) Create(c echo.Context, req *business.CreateBusinessRequest) (business.Response, error) {
	created, err := h.businesses.Create(c.Request().Context(), req.Attributes)
	if err != nil {
		return business.Response{}, err
	}
	return shapeBusiness(c, created)
}

func (h *BusinessHandler) Get(c echo.Context, req *model.IDRequest) (business.Response, error) {
	found, err := h.businesses.Get(c.Request().Context(), req.ID)
	if err != nil {
		return business.Response{}, err
	}
	return shapeBusiness(c, found)
}

func (h *BusinessHandler) Update(c echo.Context, req *business.UpdateBusinessRequest) (business.Response, error) {
	updated, err := h.businesses.Update(c.Request().Context(), req.ID, req.Attributes)
	if err != nil {
		return business.Response{}, err
	}
	return shapeBusiness(c, updated)
}

func (h *BusinessHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.businesses.Delete(c.Request().Context(), req.ID)
}

func (h *BusinessHandler) List(c echo.Context, req *model.PageQuery) (model.PaginatedResponse[business.Response], error) {
	page := req.Page()

	result, err := h.businesses.List(c.Request().Context(), page)
	if err != nil {
		return model.PaginatedResponse[business.Response]{}, err
	}

	entries, err := shapeBusinesses(c, result.Items)
	if err != nil {
		return model.PaginatedResponse[business.Response]{}, err
	}
	return paginated(c, entries, result.HasMore, page), nil
}

// ListByOwner answers GET /owners/:id/businesses with a bare array.
func (h *BusinessHandler) ListByOwner(c echo.Context, req *model.IDRequest) ([]business.Response, error) {
	owned, err := h.businesses.ListByOwner(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return shapeBusinesses(c, owned)
}
