package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinchua6/cp-buddies/constants"
)

type stubChecker struct {
	name string
	err  error
}

func (s *stubChecker) Name() string                  { return s.name }
func (s *stubChecker) Check(ctx context.Context) error { return s.err }

func resetCheckers() {
	checkersMu.Lock()
	checkers = nil
	checkersMu.Unlock()
}

func TestHealthHandler_Healthy(t *testing.T) {
	resetCheckers()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()

	healthHandler(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(recorder.Body.Bytes(), &status); err != nil {
		t.Fatalf("Failed to parse health response: %v", err)
	}

	if status.Status != constants.HealthStatusHealthy {
		t.Errorf("Expected healthy status, got %q", status.Status)
	}
	if status.Version != constants.BotVersion {
		t.Errorf("Expected version %q, got %q", constants.BotVersion, status.Version)
	}
}

func TestHealthHandler_UnhealthyChecker(t *testing.T) {
	resetCheckers()
	defer resetCheckers()

	RegisterHealthChecker(&stubChecker{name: "storage", err: fmt.Errorf("connection refused")})
	RegisterHealthChecker(&stubChecker{name: "cache"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	recorder := httptest.NewRecorder()

	healthHandler(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", recorder.Code)
	}

	var status HealthStatus
	if err := json.Unmarshal(recorder.Body.Bytes(), &status); err != nil {
		t.Fatalf("Failed to parse health response: %v", err)
	}

	if status.Status != constants.HealthStatusUnhealthy {
		t.Errorf("Expected unhealthy status, got %q", status.Status)
	}
	if status.Checks["storage"] != "connection refused" {
		t.Errorf("Expected storage failure detail, got %q", status.Checks["storage"])
	}
	if status.Checks["cache"] != constants.HealthStatusHealthy {
		t.Errorf("Expected cache to be healthy, got %q", status.Checks["cache"])
	}
}
