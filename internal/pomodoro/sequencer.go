// Package pomodoro alternates a countdown between focus and break phases.
package pomodoro

import (
	"simple_pomodoro/internal/clock"
	"simple_pomodoro/internal/countdown"
)

// Config holds the phase lengths in seconds and the repeat flag.
type Config struct {
	FocusSeconds int
	BreakSeconds int
	Repeat       bool
}

// Sequencer runs focus then break on a single countdown engine, optionally
// cycling until Reset.
//
// Like the engine, a Sequencer is not safe for concurrent use: call it from
// the scheduler's execution context only.
type Sequencer struct {
	engine *countdown.Engine

	focus   uint32
	brk     uint32
	repeat  bool
	mode    Mode
	handler Handler
}

// New returns an idle sequencer whose engine is driven by scheduler.
func New(scheduler clock.Scheduler, cfg Config) *Sequencer {
	s := &Sequencer{
		focus:  countdown.ClampSeconds(cfg.FocusSeconds),
		brk:    countdown.ClampSeconds(cfg.BreakSeconds),
		repeat: cfg.Repeat,
	}
	s.engine = countdown.New(scheduler, countdown.Hooks{
		OnTick:     s.handleTick,
		OnFinished: s.handleFinished,
	})
	return s
}

// OnEvent registers the event handler, replacing any previous one.
func (s *Sequencer) OnEvent(h Handler) { s.handler = h }

// SetFocusDuration sets the focus length used the next time a focus phase loads.
func (s *Sequencer) SetFocusDuration(seconds int) { s.focus = countdown.ClampSeconds(seconds) }

// FocusDuration returns the configured focus length.
func (s *Sequencer) FocusDuration() uint32 { return s.focus }

// SetBreakDuration sets the break length used the next time a break phase loads.
func (s *Sequencer) SetBreakDuration(seconds int) { s.brk = countdown.ClampSeconds(seconds) }

// BreakDuration returns the configured break length.
func (s *Sequencer) BreakDuration() uint32 { return s.brk }

// SetRepeat enables or disables cycling back to focus after a break.
func (s *Sequencer) SetRepeat(repeat bool) { s.repeat = repeat }

// Repeat reports whether cycling is enabled.
func (s *Sequencer) Repeat() bool { return s.repeat }

// Mode returns the phase loaded into the engine. It is stale while Idle.
func (s *Sequencer) Mode() Mode { return s.mode }

// State returns the engine lifecycle state.
func (s *Sequencer) State() countdown.State { return s.engine.State() }

// IsRunning reports whether a phase is armed, ticking or paused.
func (s *Sequencer) IsRunning() bool { return s.engine.IsRunning() }

// IsPaused reports whether the current phase is paused.
func (s *Sequencer) IsPaused() bool { return s.engine.IsPaused() }

// CurrentTime returns the seconds remaining in the current phase.
func (s *Sequencer) CurrentTime() uint32 { return s.engine.CurrentTime() }

// Start resumes a paused phase or, from Idle, begins a fresh focus phase.
// It does nothing while a phase is ticking.
//
// A zero focus length is refused: the engine stays Idle and no
// FOCUS_STARTING is emitted.
func (s *Sequencer) Start() {
	switch s.engine.State() {
	case countdown.Paused:
		s.engine.Start()
	case countdown.Idle:
		s.mode = Focus
		s.engine.SetDuration(int(s.focus))
		if s.engine.Start() {
			s.emit(EventFocusStarting, s.focus)
		}
	}
}

// Pause pauses the current phase.
func (s *Sequencer) Pause() { s.engine.Pause() }

// Reset discards the current phase. The next Start begins with focus.
func (s *Sequencer) Reset() { s.engine.Stop() }

func (s *Sequencer) handleTick(remaining uint32) {
	s.emit(EventTick, remaining)
}

func (s *Sequencer) handleFinished() {
	switch s.mode {
	case Focus:
		s.emit(EventFocusFinished, 0)
		s.mode = Break
		s.engine.SetDuration(int(s.brk))
		if s.engine.Start() {
			s.emit(EventBreakStarting, s.brk)
			return
		}
		// zero-length break: skip it and end the cycle
		s.endCycle()
	case Break:
		s.emit(EventBreakFinished, 0)
		s.endCycle()
	}
}

func (s *Sequencer) endCycle() {
	s.Reset()
	if s.repeat {
		s.Start()
	}
}

func (s *Sequencer) emit(typ EventType, remaining uint32) {
	if s.handler == nil {
		return
	}
	s.handler(Event{Type: typ, Mode: s.mode, Remaining: remaining})
}
