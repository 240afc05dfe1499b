package questionnaire

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

// Handler exposes HTTP endpoints for questionnaire sessions.
type Handler struct {
	Service *Service
}

// RegisterPublicRoutes mounts the applicant-facing session endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/questionnaire/sessions", h.start)
	rg.GET("/questionnaire/sessions/:id", h.get)
	rg.POST("/questionnaire/sessions/:id/answers", h.recordAnswer)
}

type startRequest struct {
	SubmissionID string `json:"submissionId"`
	Language     string `json:"language"`
}

func (h *Handler) start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	session, err := h.Service.Start(c.Request.Context(), req.SubmissionID, req.Language)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to start session", nil)
		return
	}
	respond.Created(c, session)
}

func (h *Handler) get(c *gin.Context) {
	session, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load session", nil)
		return
	}
	respond.OK(c, session)
}

type answerRequest struct {
	QuestionNumber int    `json:"questionNumber"`
	Answer         string `json:"answer"`
}

func (h *Handler) recordAnswer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	session, err := h.Service.RecordAnswer(c.Request.Context(), c.Param("id"), req.QuestionNumber, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
		case errors.Is(err, ErrCompleted):
			respond.Error(c, http.StatusConflict, "session_completed", "session is already completed", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to record answer", nil)
		}
		return
	}
	respond.OK(c, session)
}
