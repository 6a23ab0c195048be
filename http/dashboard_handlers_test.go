package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"empowerher/content"
	"empowerher/monitoring"
)

func setTestContent(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.yaml")
	body := `
tips:
  - "Take a 30-minute brisk walk or light exercise"
support_groups:
  - name: "Susan G. Komen Nashville"
    phone: "(615) 673-6633"
    website: "https://komen.org/nashville"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	store, err := content.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	SetContentStore(store)
	t.Cleanup(func() { SetContentStore(nil) })
}

func TestContentHandlers(t *testing.T) {
	mux := http.NewServeMux()
	RegisterDashboardRoutes(mux)
	setTestContent(t)

	req := httptest.NewRequest(http.MethodGet, "/api/content/tips", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var tips struct {
		Tips []string `json:"tips"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tips); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(tips.Tips) != 1 {
		t.Fatalf("expected 1 tip, got %d", len(tips.Tips))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/content/groups", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestContentHandlersUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	RegisterDashboardRoutes(mux)
	SetContentStore(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/content/videos", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestDashboardStats(t *testing.T) {
	mux := http.NewServeMux()
	RegisterDashboardRoutes(mux)

	stats := monitoring.NewPredictionStats()
	SetPredictionStats(stats)
	t.Cleanup(func() { SetPredictionStats(nil) })

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var snapshot monitoring.StatsSnapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if snapshot.TotalPredictions != 0 {
		t.Fatalf("expected zero predictions, got %d", snapshot.TotalPredictions)
	}
}

func TestIndexPage(t *testing.T) {
	mux := http.NewServeMux()
	RegisterDashboardRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type: %q", ct)
	}
}
