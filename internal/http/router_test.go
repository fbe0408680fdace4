package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	types "github.com/yungbote/visapath-backend/internal/domain/assessment"
	httpH "github.com/yungbote/visapath-backend/internal/http/handlers"
	httpMW "github.com/yungbote/visapath-backend/internal/http/middleware"
	"github.com/yungbote/visapath-backend/internal/observability"
	"github.com/yungbote/visapath-backend/internal/platform/logger"
	"github.com/yungbote/visapath-backend/internal/services"
)

type stubAssessments struct{ calls int }

func (s *stubAssessments) AssessProfile(_ context.Context, userID uuid.UUID, _ bool) (*types.Assessment, error) {
	s.calls++
	return &types.Assessment{UserID: userID}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, services.AuthService, *stubAssessments) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	auth := services.NewAuthService(log, "router-secret", time.Minute)
	stub := &stubAssessments{}
	r := NewRouter(RouterConfig{
		Log:               log,
		Metrics:           observability.NewMetrics(prometheus.NewRegistry()),
		AuthMiddleware:    httpMW.NewAuthMiddleware(log, auth),
		AssessmentHandler: httpH.NewAssessmentHandler(stub),
		HealthHandler:     httpH.NewHealthHandler(nil),
	})
	return r, auth, stub
}

func TestRouterRequiresBearerToken(t *testing.T) {
	r, auth, stub := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assessment", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/assessment", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: want 401, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatalf("handler ran without auth")
	}

	userID := uuid.New()
	tok, err := auth.IssueAccessToken(userID)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/assessment", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: want 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), userID.String()) {
		t.Fatalf("expected assessment for token subject, got %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRouterPublicEndpoints(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "visapath_api_requests_total") {
		t.Fatalf("metrics: %d", rec.Code)
	}

	// Suggestion routes are not mounted without a handler.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/suggestions", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("suggestions: want 404, got %d", rec.Code)
	}
}
