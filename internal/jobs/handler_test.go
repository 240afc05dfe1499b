package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &Service{Repo: NewMemoryRepo()}
	handler := &Handler{Service: svc}
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterPublicRoutes(api)
	handler.RegisterAdminRoutes(api)
	return router, svc
}

func TestListJobsFiltersInactive(t *testing.T) {
	router, svc := newTestRouter(t)

	if _, err := svc.Create(context.Background(), Job{Title: "Backend Engineer", IsActive: true}); err != nil {
		t.Fatalf("create active job: %v", err)
	}
	if _, err := svc.Create(context.Background(), Job{Title: "Closed Role", IsActive: false}); err != nil {
		t.Fatalf("create inactive job: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var envelope struct {
		Data []Job `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Title != "Backend Engineer" {
		t.Fatalf("expected only the active job, got %+v", envelope.Data)
	}

	allReq := httptest.NewRequest(http.MethodGet, "/api/v1/jobs?all=true", nil)
	allResp := httptest.NewRecorder()
	router.ServeHTTP(allResp, allReq)
	var allEnvelope struct {
		Data []Job `json:"data"`
	}
	if err := json.Unmarshal(allResp.Body.Bytes(), &allEnvelope); err != nil {
		t.Fatalf("decode all: %v", err)
	}
	if len(allEnvelope.Data) != 2 {
		t.Fatalf("expected both jobs with all=true, got %d", len(allEnvelope.Data))
	}
}

func TestCreateJobDefaultsHeadcount(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"title":"Backend Engineer","requirements":"Go, Postgres","isActive":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data Job `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Headcount != 1 {
		t.Fatalf("expected default headcount 1, got %d", envelope.Data.Headcount)
	}
}

func TestGetJobNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/missing-id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
