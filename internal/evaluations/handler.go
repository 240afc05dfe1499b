package evaluations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/scoring"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

// Handler exposes HTTP endpoints for candidate evaluations.
type Handler struct {
	Service *Service
}

// RegisterAdminRoutes mounts the guarded evaluation endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions/:id/evaluate", h.create)
	rg.GET("/submissions/:id/evaluations", h.listBySubmission)
	rg.GET("/evaluations", h.list)
	rg.GET("/evaluations/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	evaluation, err := h.Service.Create(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrNotConfigured):
			respond.Error(c, http.StatusServiceUnavailable, "scoring_not_configured", "scoring is not configured", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to create evaluation", nil)
		}
		return
	}
	respond.Created(c, evaluation)
}

func (h *Handler) list(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	evaluations, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list evaluations", nil)
		return
	}
	respond.OK(c, evaluations)
}

func (h *Handler) listBySubmission(c *gin.Context) {
	evaluations, err := h.Service.ListBySubmission(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list evaluations", nil)
		return
	}
	respond.OK(c, evaluations)
}

func (h *Handler) get(c *gin.Context) {
	evaluation, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "evaluation not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load evaluation", nil)
		return
	}
	respond.OK(c, evaluation)
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
