package admins

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/middleware"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

// Handler exposes HTTP endpoints for admin sessions and admin management.
type Handler struct {
	Service *Service
	// CookieMaxAge is the session cookie lifetime in seconds.
	CookieMaxAge int
	SecureCookie bool
}

// RegisterSessionRoutes mounts login/logout outside the guard.
func (h *Handler) RegisterSessionRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", h.logout)
}

// RegisterAdminRoutes mounts the guarded admin CRUD endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admins", h.list)
	rg.POST("/admins", h.create)
	rg.GET("/admins/:id", h.get)
	rg.PUT("/admins/:id", h.update)
	rg.DELETE("/admins/:id", h.delete)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	admin, token, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "login failed", nil)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, h.CookieMaxAge, "/", "", h.SecureCookie, true)
	respond.OK(c, gin.H{"admin": admin, "token": token})
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.SecureCookie, true)
	respond.Message(c, http.StatusOK, "logged out")
}

type createRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsActive *bool  `json:"isActive"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	admin, err := h.Service.Create(c.Request.Context(), req.Username, req.Password, isActive)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "username already taken", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to create admin", nil)
		}
		return
	}
	respond.Created(c, admin)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list admins", nil)
		return
	}
	respond.OK(c, list)
}

func (h *Handler) get(c *gin.Context) {
	admin, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load admin", nil)
		return
	}
	respond.OK(c, admin)
}

type updateRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_input", "invalid request body", nil)
		return
	}
	admin, err := h.Service.Update(c.Request.Context(), c.Param("id"), UpdateInput{
		Username: req.Username,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "username_taken", "username already taken", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to update admin", nil)
		}
		return
	}
	respond.OK(c, admin)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "admin not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete admin", nil)
		return
	}
	respond.Message(c, http.StatusOK, "admin deleted")
}
