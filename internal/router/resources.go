package router

import (
	"net/http"

	"github.com/deppfellow/review-api/internal/handler"
	"github.com/deppfellow/review-api/internal/model"
	"github.com/deppfellow/review-api/internal/model/business"
	"github.com/deppfellow/review-api/internal/model/review"
	"github.com/labstack/echo/v4"
)

func registerBusinessRoutes(r *echo.Echo, h *handler.BusinessHandler) {
	businesses := r.Group("/businesses")

	businesses.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &business.CreateBusinessRequest{}))
	businesses.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.PageQuery{}))
	businesses.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	businesses.PUT("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &business.UpdateBusinessRequest{}))
	businesses.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))

	r.GET("/owners/:id/businesses", handler.Handle(h.Handler, h.ListByOwner, http.StatusOK, &model.IDRequest{}))
}

func registerReviewRoutes(r *echo.Echo, h *handler.ReviewHandler) {
	reviews := r.Group("/reviews")

	reviews.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &review.CreateReviewRequest{}))
	reviews.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.PageQuery{}))
	reviews.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	reviews.PUT("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &review.UpdateReviewRequest{}))
	reviews.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))

	r.GET("/users/:id/reviews", handler.Handle(h.Handler, h.ListByUser, http.StatusOK, &model.IDRequest{}))
}
