package handler

import (
	"context"
	"net/http"

	"github.com/blz111/qq-farm-bot/internal/domain"
	"github.com/blz111/qq-farm-bot/internal/executor"
	"github.com/blz111/qq-farm-bot/internal/logger"
)

// FarmController is the scheduler surface exposed over HTTP
type FarmController interface {
	Snapshot() *domain.FarmSnapshot
	Level() int
	LastReport() executor.Report
	Running() bool
	Checking() bool
	CheckNow(ctx context.Context) error
}

// FarmStatus is the body of GET /api/v1/farm
type FarmStatus struct {
	Running    bool                 `json:"running"`
	Checking   bool                 `json:"checking"`
	Level      int                  `json:"level"`
	Snapshot   *domain.FarmSnapshot `json:"snapshot"`
	LastReport executor.Report      `json:"last_report"`
}

func farmStatus(farm FarmController) FarmStatus {
	return FarmStatus{
		Running:    farm.Running(),
		Checking:   farm.Checking(),
		Level:      farm.Level(),
		Snapshot:   farm.Snapshot(),
		LastReport: farm.LastReport(),
	}
}

// HandleGetFarm returns the latest snapshot and loop state
func HandleGetFarm(farm FarmController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, farmStatus(farm))
	}
}

// HandleCheckFarm runs one full cycle and returns the resulting state.
// 409 is returned when a cycle is already in flight.
func HandleCheckFarm(farm FarmController) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		log.Info(LogMsgManualCheck)

		if err := farm.CheckNow(r.Context()); err != nil {
			status, msg := mapFarmError(err)
			log.Warn(LogMsgManualCheckErr, "error", err, "status", status)
			respondError(w, status, msg)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgFarmChecked, Data: farmStatus(farm)})
	}
}
