// Package clock provides the recurring timing source that drives countdowns.
//
// Scheduling is injected so the countdown logic can run against the wall
// clock in production and against a manually advanced Fake in tests.
package clock

import "time"

// Task is a scheduled recurring callback.
type Task interface {
	// Stop cancels the task. It is safe to call more than once.
	Stop()
}

// Scheduler runs a callback once per period until the returned Task is stopped.
type Scheduler interface {
	Every(period time.Duration, fn func()) Task
}

// DefaultPeriod replaces non-positive periods passed to Every.
const DefaultPeriod = time.Second

func normalizePeriod(period time.Duration) time.Duration {
	if period <= 0 {
		return DefaultPeriod
	}
	return period
}
