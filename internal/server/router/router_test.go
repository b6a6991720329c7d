package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mamadbah2/aquafarm/internal/domain/models"
	"github.com/mamadbah2/aquafarm/internal/server/handlers"
)

type stubQueries struct{}

func (stubQueries) ListPonds(context.Context) ([]models.Pond, error) {
	return []models.Pond{{ID: "p1"}}, nil
}
func (stubQueries) Overview(context.Context, string) (models.PondOverview, error) {
	return models.PondOverview{}, nil
}
func (stubQueries) Status(context.Context, string) (models.UnifiedStatus, error) {
	return models.UnifiedStatus{}, nil
}
func (stubQueries) Cycles(context.Context, string) ([]models.CycleSummary, error) {
	return nil, nil
}
func (stubQueries) FeedStatus(context.Context, string) (models.FeedStatus, error) {
	return models.FeedStatus{}, nil
}
func (stubQueries) Appetite(context.Context, string) (models.AppetiteReport, error) {
	return models.AppetiteReport{}, nil
}
func (stubQueries) HarvestPrediction(context.Context, string) (models.HarvestPrediction, error) {
	return models.HarvestPrediction{}, nil
}

func newTestHandler(origins []string) http.Handler {
	engine := New(handlers.NewWebhookHandler(nil, nil), handlers.NewPondHandler(stubQueries{}, nil, nil), nil)
	return WithCORS(engine, origins)
}

func TestRouter_Routes(t *testing.T) {
	h := newTestHandler([]string{"*"})

	for _, path := range []string{
		"/healthz",
		"/ponds",
		"/ponds/p1/overview",
		"/ponds/p1/status",
		"/ponds/p1/cycles",
		"/ponds/p1/feed-status",
		"/ponds/p1/appetite",
		"/ponds/p1/harvest-prediction",
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestRouter_CORS(t *testing.T) {
	h := newTestHandler([]string{"https://dash.example.com"})

	tests := []struct {
		origin string
		want   string
	}{
		{"https://dash.example.com", "https://dash.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/ponds", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("%s: expected allow origin %q, got %q", tt.origin, tt.want, got)
		}
	}
}
