package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the jobs service.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterPublicRoutes attaches the read-only routes used by the application form.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/:id", h.get)
}

// RegisterAdminRoutes attaches the management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs", h.create)
	rg.PUT("/jobs/:id", h.update)
	rg.DELETE("/jobs/:id", h.remove)
}

type jobRequest struct {
	Title        string `json:"title"`
	Headcount    int    `json:"headcount"`
	WorkingHours string `json:"workingHours"`
	WorkingDays  string `json:"workingDays"`
	Requirements string `json:"requirements"`
	NiceToHave   string `json:"niceToHave"`
	IsActive     *bool  `json:"isActive"`
	SortOrder    int    `json:"sortOrder"`
}

type jobUpdateRequest struct {
	Title        *string `json:"title"`
	Headcount    *int    `json:"headcount"`
	WorkingHours *string `json:"workingHours"`
	WorkingDays  *string `json:"workingDays"`
	Requirements *string `json:"requirements"`
	NiceToHave   *string `json:"niceToHave"`
	IsActive     *bool   `json:"isActive"`
	SortOrder    *int    `json:"sortOrder"`
}

func (h *Handler) list(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	items, err := h.Service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list jobs", nil)
		return
	}
	if items == nil {
		items = []Job{}
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to fetch job", nil)
		}
		return
	}
	respond.OK(c, job)
}

func (h *Handler) create(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	job, err := h.Service.Create(c.Request.Context(), Job{
		Title:        req.Title,
		Headcount:    req.Headcount,
		WorkingHours: req.WorkingHours,
		WorkingDays:  req.WorkingDays,
		Requirements: req.Requirements,
		NiceToHave:   req.NiceToHave,
		IsActive:     isActive,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to create job", nil)
		}
		return
	}
	respond.Created(c, job)
}

func (h *Handler) update(c *gin.Context) {
	var req jobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}

	job, err := h.Service.Update(c.Request.Context(), c.Param("id"), Update{
		Title:        req.Title,
		Headcount:    req.Headcount,
		WorkingHours: req.WorkingHours,
		WorkingDays:  req.WorkingDays,
		Requirements: req.Requirements,
		NiceToHave:   req.NiceToHave,
		IsActive:     req.IsActive,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update job", nil)
		}
		return
	}
	respond.OK(c, job)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete job", nil)
		}
		return
	}
	respond.Message(c, http.StatusOK, "job deleted")
}
