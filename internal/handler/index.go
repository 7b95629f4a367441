package handler

import (
	"net/http"

	"github.com/deppfellow/review-api/internal/server"
	"github.com/labstack/echo/v4"
)

const indexMessage = "Please navigate to /businesses to use this API"

type IndexHandler struct {
	Handler
}

func NewIndexHandler(s *server.Server) *IndexHandler {
	return &IndexHandler{
		Handler: NewHandler(s),
	}
}

func (h *IndexHandler) Index(c echo.Context) error {
	return c.String(http.StatusOK, indexMessage)
}
