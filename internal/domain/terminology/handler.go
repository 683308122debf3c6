package terminology

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for terminology search and lookup.
type Handler struct {
	svc *Service
}

// NewHandler creates a new terminology handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers terminology routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	termGroup := api.Group("/terminology")
	termGroup.GET("/icd10", h.search(SystemICD10))
	termGroup.GET("/loinc", h.search(SystemLOINC))
	termGroup.GET("/snomed", h.search(SystemSNOMED))
	termGroup.GET("/rxnorm", h.search(SystemRxNorm))
	termGroup.GET("/:system/:code", h.Lookup)
}

func getLimit(c echo.Context) int {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return limit
}

func (h *Handler) search(system System) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.QueryParam("q")
		if query == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter 'q' is required")
		}
		results, err := h.svc.Search(c.Request().Context(), system, query, getLimit(c))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if results == nil {
			results = []*Concept{}
		}
		return c.JSON(http.StatusOK, results)
	}
}

// Lookup handles GET /api/v1/terminology/:system/:code
func (h *Handler) Lookup(c echo.Context) error {
	system := System(c.Param("system"))
	if !system.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported code system")
	}
	concept, err := h.svc.Lookup(c.Request().Context(), system, c.Param("code"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "code not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, concept)
}
