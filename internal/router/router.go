// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/review-api/internal/handler"
	"github.com/deppfellow/review-api/internal/middleware"
	"github.com/deppfellow/review-api/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance serving every route.
//
// Middleware order matters: the request id must exist before the context
// logger is built, and the New Relic transaction must be started before
// anything reads it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerBusinessRoutes(router, h.Business)
	registerReviewRoutes(router, h.Review)

	return router
}
