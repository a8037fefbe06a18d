package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/executor"
)

type MockFarm struct {
	mock.Mock
}

func (m *MockFarm) Snapshot() *domain.FarmSnapshot {
	args := m.Called()
	snap, _ := args.Get(0).(*domain.FarmSnapshot)
	return snap
}

func (m *MockFarm) Level() int {
	return m.Called().Int(0)
}

func (m *MockFarm) LastReport() executor.Report {
	return m.Called().Get(0).(executor.Report)
}

func (m *MockFarm) Running() bool {
	return m.Called().Bool(0)
}

func (m *MockFarm) Checking() bool {
	return m.Called().Bool(0)
}

func (m *MockFarm) CheckNow(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func stubState(m *MockFarm, snap *domain.FarmSnapshot) {
	m.On("Snapshot").Return(snap)
	m.On("Level").Return(8)
	m.On("LastReport").Return(executor.Report{Harvested: 2, Planted: 2})
	m.On("Running").Return(true)
	m.On("Checking").Return(false)
}

func TestHandleGetFarm(t *testing.T) {
	t.Run("with snapshot", func(t *testing.T) {
		farm := &MockFarm{}
		stubState(farm, &domain.FarmSnapshot{UnlockedCount: 6, Counts: domain.CategoryCounts{Growing: 6}})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/farm", nil)
		w := httptest.NewRecorder()
		HandleGetFarm(farm).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body FarmStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Running)
		assert.Equal(t, 8, body.Level)
		require.NotNil(t, body.Snapshot)
		assert.Equal(t, 6, body.Snapshot.UnlockedCount)
		assert.Equal(t, 2, body.LastReport.Planted)
	})

	t.Run("before first cycle", func(t *testing.T) {
		farm := &MockFarm{}
		stubState(farm, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/farm", nil)
		w := httptest.NewRecorder()
		HandleGetFarm(farm).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"snapshot":null`)
	})
}

func TestHandleCheckFarm(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"success", nil, http.StatusOK, MsgFarmChecked},
		{"in progress", domain.ErrCycleInProgress, http.StatusConflict, ErrMsgCycleInProgress},
		{"not connected", domain.ErrNotConnected, http.StatusServiceUnavailable, ErrMsgGatewayUnavailable},
		{"remote error", domain.ErrRemote, http.StatusBadGateway, ErrMsgGatewayError},
		{"unexpected", assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			farm := &MockFarm{}
			farm.On("CheckNow", mock.Anything).Return(tt.err)
			stubState(farm, &domain.FarmSnapshot{})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/farm/check", nil)
			w := httptest.NewRecorder()
			HandleCheckFarm(farm).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			farm.AssertCalled(t, "CheckNow", mock.Anything)
		})
	}
}
