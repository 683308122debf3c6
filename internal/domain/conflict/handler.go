package conflict

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// Handler exposes conflict resolution to the operator console.
type Handler struct {
	svc *Service
}

// NewHandler creates a conflict handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers conflict routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/conflicts/resolve", h.ResolveConflict)
}

// ResolveRequest is the resolution payload: the record being worked on plus
// the operator decision.
type ResolveRequest struct {
	Record     *record.CanonicalRecord `json:"record"`
	ConflictID string                  `json:"conflict_id"`
	Strategy   record.Strategy         `json:"strategy"`
	Value      string                  `json:"value"`
	Note       string                  `json:"note,omitempty"`
}

// ResolveConflict handles POST /api/v1/conflicts/resolve.
func (h *Handler) ResolveConflict(c echo.Context) error {
	var req ResolveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Record == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "record is required")
	}
	if req.ConflictID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "conflict_id is required")
	}

	outcome, err := h.svc.Resolve(req.Record, req.ConflictID, req.Strategy, req.Value, req.Note)
	if err != nil {
		if errors.Is(err, ErrConflictNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, outcome)
}
