package service

import (
	"context"
	"time"

	"simple_pomodoro/internal/models"
)

// StateSource yields coherent timer snapshots.
type StateSource interface {
	Snapshot() models.TimerState
}

type MonitoringService struct {
	source StateSource
}

func NewMonitoringService(source StateSource) *MonitoringService {
	return &MonitoringService{source: source}
}

// GetState returns the current timer state with a UTC timestamp.
func (s *MonitoringService) GetState(ctx context.Context) (models.TimerState, error) {
	if err := ctx.Err(); err != nil {
		return models.TimerState{}, err
	}
	st := s.source.Snapshot()
	st.UpdatedAt = toUTC(st.UpdatedAt)
	return st, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
