package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"simple_pomodoro/internal/clock"
	"simple_pomodoro/internal/countdown"
	"simple_pomodoro/internal/logger"
	"simple_pomodoro/internal/models"
	"simple_pomodoro/internal/pomodoro"

	"github.com/google/uuid"
)

// Service-level event types, emitted next to the sequencer's own.
const (
	EventPaused          = "PAUSED"
	EventResumed         = "RESUMED"
	EventReset           = "RESET"
	EventSettingsChanged = "SETTINGS_CHANGED"
)

const defaultMaxSeconds = 24 * 60 * 60

// ErrInvalidSettings is returned by Configure for out-of-range durations.
var ErrInvalidSettings = errors.New("invalid settings")

var descriptions = map[string]string{
	string(pomodoro.EventTick):          "Tick",
	string(pomodoro.EventFocusStarting): "Focus period started",
	string(pomodoro.EventFocusFinished): "Good job! Time to take a short break! Stand up, stretch and take a few deep breaths.",
	string(pomodoro.EventBreakStarting): "Break period started",
	string(pomodoro.EventBreakFinished): "Times Up! Back to work! You can do it!",
	EventPaused:                         "Timer paused",
	EventResumed:                        "Timer resumed",
	EventReset:                          "Timer reset",
	EventSettingsChanged:                "Timer settings changed",
}

// SchedulerFactory builds the scheduler driving the timer. Callbacks must
// run while holding the given locker.
type SchedulerFactory func(sync.Locker) clock.Scheduler

// TimerConfig holds the initial settings and limits of a TimerService.
type TimerConfig struct {
	Settings    Settings
	MaxSeconds  int  // upper bound accepted by Configure; 0 means 24h
	RecordTicks bool // persist TICK events too
}

// TimerService owns the pomodoro sequencer. Commands and tick callbacks
// are serialized by mu, which the scheduler also holds while firing.
type TimerService struct {
	mu          sync.Mutex
	seq         *pomodoro.Sequencer
	maxSeconds  int
	recordTicks bool
	updatedAt   time.Time
	now         func() time.Time

	hub      *Hub
	recorder *RecorderService
	log      *logger.Logger
}

// NewTimerService returns an idle timer. hub and recorder may be nil.
func NewTimerService(newScheduler SchedulerFactory, cfg TimerConfig, hub *Hub, recorder *RecorderService, log *logger.Logger) *TimerService {
	s := &TimerService{
		maxSeconds:  cfg.MaxSeconds,
		recordTicks: cfg.RecordTicks,
		now:         func() time.Time { return time.Now().UTC() },
		hub:         hub,
		recorder:    recorder,
		log:         log,
	}
	if s.maxSeconds <= 0 {
		s.maxSeconds = defaultMaxSeconds
	}
	s.seq = pomodoro.New(newScheduler(&s.mu), pomodoro.Config{
		FocusSeconds: cfg.Settings.FocusSeconds,
		BreakSeconds: cfg.Settings.BreakSeconds,
		Repeat:       cfg.Settings.Repeat,
	})
	s.seq.OnEvent(s.handleEvent)
	s.updatedAt = s.now()
	return s
}

// Start begins a focus phase from idle or resumes a paused phase.
func (s *TimerService) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	wasPaused := s.seq.IsPaused()
	s.seq.Start()
	if wasPaused && !s.seq.IsPaused() {
		s.emit(EventResumed, s.seq.CurrentTime())
	}
	s.touch()
	return nil
}

// Pause freezes the current phase. It does nothing unless a phase is ticking.
func (s *TimerService) Pause(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seq.State() != countdown.Running {
		return nil
	}
	s.seq.Pause()
	s.emit(EventPaused, s.seq.CurrentTime())
	s.touch()
	return nil
}

// Reset stops the timer. The next Start begins with focus.
func (s *TimerService) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.seq.IsRunning() {
		return nil
	}
	s.seq.Reset()
	s.emit(EventReset, 0)
	s.touch()
	return nil
}

// Configure replaces the settings. New durations apply the next time a
// phase loads; the phase in progress keeps its remaining time.
func (s *TimerService) Configure(ctx context.Context, in Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.validate(in); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.SetFocusDuration(in.FocusSeconds)
	s.seq.SetBreakDuration(in.BreakSeconds)
	s.seq.SetRepeat(in.Repeat)
	s.emitEvent(s.newEvent(EventSettingsChanged, map[string]any{
		"focus_seconds": in.FocusSeconds,
		"break_seconds": in.BreakSeconds,
		"repeat":        in.Repeat,
	}))
	s.touch()
	if s.log != nil {
		s.log.Infow("timer_settings_changed", "focus_seconds", in.FocusSeconds, "break_seconds", in.BreakSeconds, "repeat", in.Repeat)
	}
	return nil
}

// Settings returns the current settings.
func (s *TimerService) Settings(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settingsLocked(), nil
}

// Snapshot returns a coherent view of the timer. Remaining time and mode
// are cleared while idle.
func (s *TimerService) Snapshot() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.TimerState{
		State:        s.seq.State().String(),
		FocusSeconds: s.seq.FocusDuration(),
		BreakSeconds: s.seq.BreakDuration(),
		Repeat:       s.seq.Repeat(),
		IsRunning:    s.seq.IsRunning(),
		IsPaused:     s.seq.IsPaused(),
		UpdatedAt:    s.updatedAt,
	}
	if st.IsRunning {
		st.Mode = s.seq.Mode().String()
		st.RemainingSeconds = s.seq.CurrentTime()
	}
	st.Display = pomodoro.FormatHHMMSS(st.RemainingSeconds)
	return st
}

// Close stops ticking without emitting events.
func (s *TimerService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq.Reset()
}

func (s *TimerService) validate(in Settings) error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"focus_seconds", in.FocusSeconds},
		{"break_seconds", in.BreakSeconds},
	} {
		if f.value < 0 || f.value > s.maxSeconds {
			return fmt.Errorf("%w: %s must be between 0 and %d, got %d", ErrInvalidSettings, f.name, s.maxSeconds, f.value)
		}
	}
	return nil
}

func (s *TimerService) settingsLocked() Settings {
	return Settings{
		FocusSeconds: int(s.seq.FocusDuration()),
		BreakSeconds: int(s.seq.BreakDuration()),
		Repeat:       s.seq.Repeat(),
	}
}

// handleEvent runs with mu held, either inside a command or a tick.
func (s *TimerService) handleEvent(ev pomodoro.Event) {
	s.emit(string(ev.Type), ev.Remaining)
	s.touch()
	if s.log != nil && ev.Type != pomodoro.EventTick {
		s.log.Infow("timer_phase_event", "type", ev.Type, "mode", ev.Mode.String(), "remaining_seconds", ev.Remaining)
	}
}

func (s *TimerService) touch() { s.updatedAt = s.now() }

func (s *TimerService) emit(typ string, remaining uint32) {
	s.emitEvent(s.newEvent(typ, map[string]any{
		"mode":              s.seq.Mode().String(),
		"remaining_seconds": remaining,
		"display":           pomodoro.FormatHHMMSS(remaining),
	}))
}

func (s *TimerService) newEvent(typ string, meta map[string]any) models.SessionEvent {
	return models.SessionEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  s.now(),
		Type:        typ,
		Description: descriptions[typ],
		Metadata:    meta,
	}
}

func (s *TimerService) emitEvent(ev models.SessionEvent) {
	if s.hub != nil {
		s.hub.Publish(ev)
	}
	if s.recorder == nil {
		return
	}
	if ev.Type == string(pomodoro.EventTick) && !s.recordTicks {
		return
	}
	s.recorder.Enqueue(ev)
}
