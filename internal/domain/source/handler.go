package source

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordbridge/recordbridge/pkg/pagination"
)

// Handler exposes raw source records to the operator console.
type Handler struct {
	repo Repository
}

// NewHandler creates a source handler.
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers source routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/sources", h.ListSources)
}

// ListSources handles GET /api/v1/sources.
func (h *Handler) ListSources(c echo.Context) error {
	records, err := h.repo.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	p := pagination.FromContext(c)
	total := len(records)
	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records[start:end], total, p.Limit, p.Offset))
}
