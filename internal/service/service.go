package service

import (
	"context"
	"sync"

	"simple_pomodoro/internal/clock"
	"simple_pomodoro/internal/logger"
	"simple_pomodoro/internal/models"
	"simple_pomodoro/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Timer exposes control operations: start/pause/reset and settings.
type Timer interface {
	Start(ctx context.Context) error
	Pause(ctx context.Context) error
	Reset(ctx context.Context) error
	Configure(ctx context.Context, s Settings) error
	Settings(ctx context.Context) (Settings, error)
}

// Monitoring exposes the read-only timer state.
type Monitoring interface {
	GetState(ctx context.Context) (models.TimerState, error)
}

// EventLog exposes the persisted session history with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error)
}

// Events streams live session events to subscribers.
type Events interface {
	Subscribe(buffer int) (<-chan models.SessionEvent, func())
}

// Recorder runs the background loop that persists session events.
// Stop via context cancellation in main() for graceful shutdown.
type Recorder interface {
	Run(ctx context.Context)
}

type Service struct {
	Timer
	Monitoring
	EventLog
	Events
	Recorder
	Authorization
}

// NewService wires the repository layer into concrete services. The timer
// runs on the wall clock.
func NewService(repos *repository.Repository, cfg Config, log *logger.Logger) *Service {
	return newService(repos, cfg, log, func(l sync.Locker) clock.Scheduler {
		return clock.NewSystem(l)
	})
}

func newService(repos *repository.Repository, cfg Config, log *logger.Logger, newScheduler SchedulerFactory) *Service {
	hub := NewHub()
	recorder := NewRecorderService(repos.EventRepo, cfg.EventBuffer, log)
	timer := NewTimerService(newScheduler, TimerConfig{
		Settings:    Settings{FocusSeconds: cfg.Focus, BreakSeconds: cfg.Break, Repeat: cfg.Repeat},
		MaxSeconds:  cfg.MaxSeconds,
		RecordTicks: cfg.RecordTicks,
	}, hub, recorder, log)

	return &Service{
		Timer:         timer,
		Monitoring:    NewMonitoringService(timer),
		EventLog:      NewEventLogService(repos.EventRepo),
		Events:        hub,
		Recorder:      recorder,
		Authorization: NewAuthService(repos.Auth, cfg.Auth),
	}
}

// Close stops the timer and live event delivery. Subscribers see their
// channels closed.
func (s *Service) Close() {
	if timer, ok := s.Timer.(*TimerService); ok {
		timer.Close()
	}
	if hub, ok := s.Events.(*Hub); ok {
		hub.Close()
	}
}
