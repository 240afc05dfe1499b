package submissions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/util"
)

const maxUploadBytes = 10 << 20

// Handler exposes HTTP endpoints for CV intake.
type Handler struct {
	Service *Service
}

// RegisterPublicRoutes mounts the applicant-facing upload endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/submissions", h.upload)
}

// RegisterAdminRoutes mounts the admin read endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/submissions", h.list)
	rg.GET("/submissions/:id", h.get)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the 10 MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_input", "file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the 10 MB limit", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	sub, err := h.Service.Upload(
		c.Request.Context(),
		c.PostForm("jobId"),
		c.PostForm("applicantName"),
		c.PostForm("applicantEmail"),
		fileName,
		file,
	)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to store submission", nil)
		return
	}
	respond.Created(c, sub)
}

func (h *Handler) list(c *gin.Context) {
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	subs, err := h.Service.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list submissions", nil)
		return
	}
	respond.OK(c, subs)
}

func (h *Handler) get(c *gin.Context) {
	sub, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load submission", nil)
		return
	}
	respond.OK(c, sub)
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
