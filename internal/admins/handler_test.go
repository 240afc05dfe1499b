package admins

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/middleware"
)

func newSessionHandlerRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "handler-test-secret")
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: NewMemoryRepo()}
	handler := &Handler{Service: svc, CookieMaxAge: 3600}
	router := gin.New()
	admin := router.Group("/admin")
	handler.RegisterSessionRoutes(admin)
	return router, svc
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router, svc := newSessionHandlerRouter(t)
	if _, err := svc.Create(context.Background(), "root", "super-secret-pass", true); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"username": "root", "password": "super-secret-pass"})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("session cookie must be http-only")
	}

	var envelope struct {
		Data struct {
			Token string `json:"token"`
			Admin Admin  `json:"admin"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if envelope.Data.Token != sessionCookie.Value {
		t.Fatal("token in body should match the cookie value")
	}
	if envelope.Data.Admin.Username != "root" {
		t.Fatalf("unexpected admin in response: %+v", envelope.Data.Admin)
	}
	if strings.Contains(resp.Body.String(), "passwordHash") {
		t.Fatal("password hash must never appear in responses")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router, svc := newSessionHandlerRouter(t)
	if _, err := svc.Create(context.Background(), "root", "super-secret-pass", true); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"username": "root", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	router, _ := newSessionHandlerRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var cleared *http.Cookie
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			cleared = cookie
		}
	}
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cleared)
	}
}
