package admins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/middleware"
	"github.com/chidung091/hr-scanning-sub001/internal/shared/server/respond"
)

func newGuardedRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guarded := router.Group("/api/v1", middleware.AdminGuard(svc, "/admin/login"))
	guarded.GET("/jobs-admin", func(c *gin.Context) {
		respond.OK(c, gin.H{"adminId": middleware.AdminIDFromContext(c)})
	})
	router.GET("/admin/dashboard", middleware.AdminGuard(svc, "/admin/login"), func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	return router
}

func TestGuardStopsChainOnPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: NewMemoryRepo()}

	handlerRan := false
	router := gin.New()
	guarded := router.Group("/api/v1", middleware.AdminGuard(svc, "/admin/login"))
	guarded.OPTIONS("/jobs-admin", func(c *gin.Context) {
		handlerRan = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/jobs-admin", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if handlerRan {
		t.Fatal("preflight must not reach the guarded handler")
	}
}

func TestGuardAllowsActiveAdmin(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}
	router := newGuardedRouter(svc)

	if _, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, token, err := svc.Login(context.Background(), "hr-lead", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs-admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for valid session, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGuardForcesReloginWhenAdminDeactivated(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}
	router := newGuardedRouter(svc)

	admin, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, token, err := svc.Login(context.Background(), "hr-lead", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A still-valid token must stop working the moment the admin is
	// deactivated, because the guard re-checks the record per request.
	inactive := false
	if _, err := svc.Update(context.Background(), admin.ID, UpdateInput{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs-admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after deactivation, got %d", resp.Code)
	}
}

func TestGuardForcesReloginWhenAdminDeleted(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}
	router := newGuardedRouter(svc)

	admin, err := svc.Create(context.Background(), "hr-lead", "correct horse battery", true)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, token, err := svc.Login(context.Background(), "hr-lead", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Delete(context.Background(), admin.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs-admin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after deletion, got %d", resp.Code)
	}
}

func TestGuardDistinguishesBrowserAndAPIClients(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	svc := &Service{Repo: NewMemoryRepo()}
	router := newGuardedRouter(svc)

	// Browser client outside /api/ gets redirected to the login page.
	browserReq := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	browserReq.Header.Set("Accept", "text/html,application/xhtml+xml")
	browserResp := httptest.NewRecorder()
	router.ServeHTTP(browserResp, browserReq)
	if browserResp.Code != http.StatusFound {
		t.Fatalf("expected 302 for browser client, got %d", browserResp.Code)
	}
	if loc := browserResp.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to /admin/login, got %q", loc)
	}

	// API client under /api/ gets a 401 JSON body even when accepting HTML.
	apiReq := httptest.NewRequest(http.MethodGet, "/api/v1/jobs-admin", nil)
	apiReq.Header.Set("Accept", "text/html")
	apiResp := httptest.NewRecorder()
	router.ServeHTTP(apiResp, apiReq)
	if apiResp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for API client, got %d", apiResp.Code)
	}
}
