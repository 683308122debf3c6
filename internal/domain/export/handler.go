package export

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordbridge/recordbridge/internal/domain/record"
)

// Handler exposes referral packet export and clinical summaries.
type Handler struct {
	svc *Service
}

// NewHandler creates an export handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers export routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/export", h.Export)
	api.POST("/summary", h.ClinicalSummary)
}

// ExportRequest carries the record to export.
type ExportRequest struct {
	Record *record.CanonicalRecord `json:"record"`
}

// ExportResponse returns the packet plus the record with the export audited.
type ExportResponse struct {
	Summary Summary                 `json:"summary"`
	Record  *record.CanonicalRecord `json:"record"`
}

// Export handles POST /api/v1/export.
func (h *Handler) Export(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Record == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "record is required")
	}
	summary := h.svc.BuildSummary(req.Record)
	updated := h.svc.RecordExport(req.Record)
	return c.JSON(http.StatusOK, ExportResponse{Summary: summary, Record: updated})
}

// ClinicalSummary handles POST /api/v1/summary.
func (h *Handler) ClinicalSummary(c echo.Context) error {
	var req ExportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Record == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "record is required")
	}
	return c.JSON(http.StatusOK, h.svc.BuildClinicalSummary(req.Record))
}
