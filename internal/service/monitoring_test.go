package service

import (
	"context"
	"testing"
	"time"

	"simple_pomodoro/internal/models"
)

type stubStateSource struct {
	state models.TimerState
	calls int
}

func (s *stubStateSource) Snapshot() models.TimerState {
	s.calls++
	return s.state
}

func TestMonitoringService_GetState(t *testing.T) {
	t.Parallel()

	local := time.Date(2025, 5, 5, 15, 0, 0, 0, time.FixedZone("UTC+5", 5*3600))

	tests := []struct {
		name   string
		state  models.TimerState
		cancel bool
		check  func(t *testing.T, got models.TimerState, err error, src *stubStateSource)
	}{
		{
			name:  "returns snapshot with UTC timestamp",
			state: models.TimerState{State: "RUNNING", Mode: "FOCUS", RemainingSeconds: 42, UpdatedAt: local},
			check: func(t *testing.T, got models.TimerState, err error, src *stubStateSource) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.RemainingSeconds != 42 || got.Mode != "FOCUS" {
					t.Errorf("unexpected state %+v", got)
				}
				if got.UpdatedAt.Location() != time.UTC || !got.UpdatedAt.Equal(local) {
					t.Errorf("updated_at not normalized: %v", got.UpdatedAt)
				}
			},
		},
		{
			name:   "canceled context",
			state:  models.TimerState{State: "IDLE"},
			cancel: true,
			check: func(t *testing.T, _ models.TimerState, err error, src *stubStateSource) {
				if err == nil {
					t.Fatalf("expected context error")
				}
				if src.calls != 0 {
					t.Errorf("snapshot taken on canceled context")
				}
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := &stubStateSource{state: tc.state}
			svc := NewMonitoringService(src)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tc.cancel {
				cancel()
			}

			got, err := svc.GetState(ctx)
			tc.check(t, got, err, src)
		})
	}
}
