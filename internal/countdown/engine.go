// Package countdown implements a one-second decrementing countdown.
//
// The engine is not safe for concurrent use. Every method must be called
// from the scheduler's execution context (see clock.System).
package countdown

import (
	"math"
	"time"

	"simple_pomodoro/internal/clock"
)

// TickPeriod is the wall-clock time represented by one tick.
const TickPeriod = time.Second

// Hooks receive engine notifications on the scheduler's execution context.
type Hooks struct {
	OnTick     func(remaining uint32)
	OnFinished func()
}

// Engine counts down from a configured number of seconds.
type Engine struct {
	scheduler clock.Scheduler
	hooks     Hooks

	state    State
	duration uint32
	current  uint32
	task     clock.Task
}

// New returns an idle engine driven by scheduler.
func New(scheduler clock.Scheduler, hooks Hooks) *Engine {
	return &Engine{scheduler: scheduler, hooks: hooks}
}

// ClampSeconds maps an arbitrary second count into the uint32 range.
func ClampSeconds(seconds int) uint32 {
	if seconds < 0 {
		return 0
	}
	if uint64(seconds) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(seconds)
}

// SetDuration stores the starting value for the next start from Idle.
// A run already in progress is not affected.
func (e *Engine) SetDuration(seconds int) {
	e.duration = ClampSeconds(seconds)
}

// Duration returns the configured starting value.
func (e *Engine) Duration() uint32 { return e.duration }

// CurrentTime returns the seconds remaining in the current run. After a
// stop it keeps its last value.
func (e *Engine) CurrentTime() uint32 { return e.current }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// IsRunning reports whether a countdown is armed, ticking or paused.
func (e *Engine) IsRunning() bool { return e.state != Idle }

// IsPaused reports whether the armed countdown is paused.
func (e *Engine) IsPaused() bool { return e.state == Paused }

// Start begins or resumes the countdown and reports whether the engine is
// ticking afterwards.
//
// From Idle it loads the configured duration; a zero duration is refused
// and the engine stays Idle. From Paused it resumes at the current time.
// While Running it does nothing.
func (e *Engine) Start() bool {
	switch e.state {
	case Running:
		return true
	case Paused:
		e.state = Running
		e.schedule()
		return true
	}

	if e.duration == 0 {
		return false
	}
	e.current = e.duration
	e.state = Running
	e.schedule()
	return true
}

// Pause stops ticking but keeps the remaining time. Only a running engine
// can be paused.
func (e *Engine) Pause() {
	if e.state != Running {
		return
	}
	e.cancel()
	e.state = Paused
}

// Stop cancels the countdown and returns to Idle.
func (e *Engine) Stop() {
	if e.state == Idle {
		return
	}
	e.cancel()
	e.state = Idle
}

func (e *Engine) schedule() {
	e.task = e.scheduler.Every(TickPeriod, e.tick)
}

func (e *Engine) cancel() {
	if e.task != nil {
		e.task.Stop()
		e.task = nil
	}
}

func (e *Engine) tick() {
	if e.state != Running || e.current == 0 {
		return
	}

	e.current--
	remaining := e.current
	finished := remaining == 0
	// The engine is Idle before either notification of the final second so
	// handlers may start it again.
	if finished {
		e.Stop()
	}

	if e.hooks.OnTick != nil {
		e.hooks.OnTick(remaining)
	}
	if finished && e.hooks.OnFinished != nil {
		e.hooks.OnFinished()
	}
}
