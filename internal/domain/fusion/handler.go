package fusion

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// Handler exposes the translation operation to the operator console.
type Handler struct {
	svc *Service
}

// NewHandler creates a fusion handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers fusion routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/translate", h.Translate)
}

// TranslateRequest selects which source systems participate in the run.
type TranslateRequest struct {
	Sources []record.SourceSystem `json:"sources"`
}

// Translate handles POST /api/v1/translate.
func (h *Handler) Translate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Sources) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one source is required")
	}
	rec, err := h.svc.Fuse(c.Request().Context(), req.Sources)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}
