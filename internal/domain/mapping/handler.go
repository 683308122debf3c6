package mapping

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recordbridge/recordbridge/pkg/pagination"
)

// Handler exposes the recommendation and learning operations.
type Handler struct {
	engine *Engine
}

// NewHandler creates a mapping handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// RegisterRoutes registers mapping routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	mappings := api.Group("/mappings")
	mappings.POST("/recommendations", h.Recommendations)
	mappings.POST("/learn", h.Learn)
	mappings.POST("/batch", h.Batch)
	mappings.GET("/stats", h.Stats)
	mappings.GET("/history", h.History)
}

// RecommendationsRequest carries the two field lists to reconcile. Threshold
// is a pointer so an explicit 0 (keep every candidate) is distinguishable
// from the field being omitted.
type RecommendationsRequest struct {
	SourceFields []string `json:"source_fields"`
	TargetFields []string `json:"target_fields"`
	Threshold    *float64 `json:"threshold,omitempty"`
}

// Recommendations handles POST /api/v1/mappings/recommendations.
func (h *Handler) Recommendations(c echo.Context) error {
	var req RecommendationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.SourceFields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "source_fields is required")
	}
	targets := req.TargetFields
	if len(targets) == 0 {
		targets = h.engine.dict.FieldTargets()
	}
	threshold := defaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	recs := h.engine.GenerateRecommendations(req.SourceFields, targets, threshold)
	if recs == nil {
		recs = []MappingRecommendation{}
	}
	return c.JSON(http.StatusOK, recs)
}

// LearnRequest carries one mapping session outcome.
type LearnRequest struct {
	SourceSchema string         `json:"source_schema"`
	TargetSchema string         `json:"target_schema"`
	Mappings     []FieldMapping `json:"mappings"`
	Success      bool           `json:"success"`
}

// Learn handles POST /api/v1/mappings/learn.
func (h *Handler) Learn(c echo.Context) error {
	var req LearnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Mappings) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "mappings is required")
	}
	if err := h.engine.LearnFromMapping(c.Request().Context(), req.SourceSchema, req.TargetSchema, req.Mappings, req.Success); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusAccepted)
}

// BatchRequest carries raw records sharing one schema.
type BatchRequest struct {
	Records []map[string]interface{} `json:"records"`
}

// Batch handles POST /api/v1/mappings/batch.
func (h *Handler) Batch(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Records) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "records is required")
	}
	return c.JSON(http.StatusOK, h.engine.BatchProcess(req.Records))
}

// Stats handles GET /api/v1/mappings/stats.
func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.engine.GetLearningStats())
}

// History handles GET /api/v1/mappings/history.
func (h *Handler) History(c echo.Context) error {
	entries := h.engine.History()
	p := pagination.FromContext(c)
	total := len(entries)
	start := p.Offset
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries[start:end], total, p.Limit, p.Offset))
}
