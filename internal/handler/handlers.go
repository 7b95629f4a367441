// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
// Responses are shaped here: self links, business links and
// the integer zip_code clients expect.
package handler

import (
	"github.com/deppfellow/review-api/internal/server"
	"github.com/deppfellow/review-api/internal/service"
)

// Handlers groups all HTTP handlers so router setup gets a single value.
type Handlers struct {
	Index    *IndexHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Business *BusinessHandler
	Review   *ReviewHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Index:    NewIndexHandler(s),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Business: NewBusinessHandler(s, services.Business),
		Review:   NewReviewHandler(s, services.Review),
	}
}
