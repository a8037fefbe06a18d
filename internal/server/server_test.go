package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/executor"
)

type stubFarm struct {
	checks int
	err    error
}

func (s *stubFarm) Snapshot() *domain.FarmSnapshot {
	return &domain.FarmSnapshot{UnlockedCount: 4}
}

func (s *stubFarm) Level() int { return 3 }

func (s *stubFarm) LastReport() executor.Report { return executor.Report{} }

func (s *stubFarm) Running() bool { return true }

func (s *stubFarm) Checking() bool { return false }

func (s *stubFarm) CheckNow(ctx context.Context) error {
	s.checks++
	return s.err
}

func TestRouter(t *testing.T) {
	farm := &stubFarm{}
	router := NewRouter(Options{APIKey: "secret", Version: "test"}, farm)

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", "", http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", "", http.StatusOK},
		{"version", http.MethodGet, "/version", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"farm requires key", http.MethodGet, "/api/v1/farm", "", http.StatusUnauthorized},
		{"farm", http.MethodGet, "/api/v1/farm", "secret", http.StatusOK},
		{"check", http.MethodPost, "/api/v1/farm/check", "secret", http.StatusOK},
		{"check wrong method", http.MethodGet, "/api/v1/farm/check", "secret", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, 1, farm.checks)
}

func TestRouter_CheckConflict(t *testing.T) {
	farm := &stubFarm{err: domain.ErrCycleInProgress}
	router := NewRouter(Options{}, farm)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/farm/check", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
