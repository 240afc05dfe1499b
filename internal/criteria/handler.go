package criteria

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the criteria service.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes attaches criteria routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/criteria", h.list)
	rg.GET("/criteria/validate-weights", h.validateWeights)
	rg.GET("/criteria/:id", h.get)
	rg.POST("/criteria", h.create)
	rg.PUT("/criteria/:id", h.update)
	rg.DELETE("/criteria/:id", h.remove)
}

type createRequest struct {
	Name        string   `json:"name"`
	Weight      *float64 `json:"weight"`
	Description string   `json:"description"`
	SortOrder   int      `json:"sortOrder"`
	IsActive    *bool    `json:"isActive"`
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Weight      *float64 `json:"weight"`
	Description *string  `json:"description"`
	IsActive    *bool    `json:"isActive"`
	SortOrder   *int     `json:"sortOrder"`
}

func (h *Handler) list(c *gin.Context) {
	var (
		items []Criterion
		err   error
	)
	if c.Query("all") == "true" {
		items, err = h.Service.List(c.Request.Context())
	} else {
		items, err = h.Service.ListActive(c.Request.Context())
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list criteria", nil)
		return
	}
	if items == nil {
		items = []Criterion{}
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	criterion, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "criterion not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to fetch criterion", nil)
		}
		return
	}
	respond.OK(c, criterion)
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	if req.Weight == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "weight is required", nil)
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	criterion, err := h.Service.Create(c.Request.Context(), req.Name, *req.Weight, req.Description, req.SortOrder, isActive)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		case errors.Is(err, ErrWeightBudget):
			respond.Error(c, http.StatusConflict, "weight_budget_exceeded", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to create criterion", nil)
		}
		return
	}
	respond.Created(c, criterion)
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}

	criterion, err := h.Service.Update(c.Request.Context(), c.Param("id"), Update{
		Name:        req.Name,
		Weight:      req.Weight,
		Description: req.Description,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "criterion not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		case errors.Is(err, ErrWeightBudget):
			respond.Error(c, http.StatusConflict, "weight_budget_exceeded", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update criterion", nil)
		}
		return
	}
	respond.OK(c, criterion)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "criterion not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete criterion", nil)
		}
		return
	}
	respond.Message(c, http.StatusOK, "criterion deleted")
}

func (h *Handler) validateWeights(c *gin.Context) {
	report, err := h.Service.ValidateWeights(c.Request.Context(), c.Query("excludeId"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to validate weights", nil)
		return
	}
	respond.OK(c, report)
}
