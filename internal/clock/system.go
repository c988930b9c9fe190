package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// System schedules callbacks on the wall clock.
//
// Every callback runs while holding the Locker passed to NewSystem. Callers
// that guard their own state with the same Locker get ticks serialized with
// their method calls, and a Task stopped while the Locker is held never
// fires again.
//
// A slow callback delays the next tick instead of queueing the missed ones.
type System struct {
	locker sync.Locker
}

// NewSystem returns a wall clock scheduler using locker as execution context.
// A nil locker gets a private mutex.
func NewSystem(locker sync.Locker) *System {
	if locker == nil {
		locker = &sync.Mutex{}
	}
	return &System{locker: locker}
}

type systemTask struct {
	stopped atomic.Bool
	stopCh  chan struct{}
	once    sync.Once
}

func (t *systemTask) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		close(t.stopCh)
	})
}

// Every starts a ticker goroutine firing fn once per period.
func (s *System) Every(period time.Duration, fn func()) Task {
	task := &systemTask{stopCh: make(chan struct{})}
	go s.run(normalizePeriod(period), fn, task)
	return task
}

func (s *System) run(period time.Duration, fn func(), task *systemTask) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-task.stopCh:
			return
		case <-ticker.C:
			s.fire(fn, task)
		}
	}
}

// fire runs fn under the locker unless the task was stopped while waiting for it.
func (s *System) fire(fn func(), task *systemTask) {
	s.locker.Lock()
	defer s.locker.Unlock()
	if task.stopped.Load() {
		return
	}
	fn()
}
