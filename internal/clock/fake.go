package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler for tests.
// It is not safe for concurrent use; drive it from one goroutine.
type Fake struct {
	locker sync.Locker
	now    time.Duration
	tasks  []*fakeTask
}

// NewFake returns a Fake at elapsed time zero. When locker is non-nil every
// callback runs while holding it, like System.
func NewFake(locker sync.Locker) *Fake {
	return &Fake{locker: locker}
}

type fakeTask struct {
	period  time.Duration
	next    time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTask) Stop() { t.stopped = true }

// Every registers fn to fire each period of fake time.
func (f *Fake) Every(period time.Duration, fn func()) Task {
	period = normalizePeriod(period)
	t := &fakeTask{period: period, next: f.now + period, fn: fn}
	f.tasks = append(f.tasks, t)
	return t
}

// Elapsed returns the total fake time advanced so far.
func (f *Fake) Elapsed() time.Duration { return f.now }

// Active returns the number of tasks that have not been stopped.
func (f *Fake) Active() int {
	n := 0
	for _, t := range f.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves fake time forward by d and fires every callback that comes
// due, in time order. Callbacks may schedule or stop tasks.
func (f *Fake) Advance(d time.Duration) {
	target := f.now + d
	for {
		t := f.nextDue(target)
		if t == nil {
			break
		}
		f.now = t.next
		t.next += t.period
		f.fire(t)
	}
	f.now = target
	f.compact()
}

func (f *Fake) fire(t *fakeTask) {
	if f.locker != nil {
		f.locker.Lock()
		defer f.locker.Unlock()
	}
	if t.stopped {
		return
	}
	t.fn()
}

// nextDue picks the earliest live task due at or before target; ties go to
// the task scheduled first.
func (f *Fake) nextDue(target time.Duration) *fakeTask {
	var due *fakeTask
	for _, t := range f.tasks {
		if t.stopped || t.next > target {
			continue
		}
		if due == nil || t.next < due.next {
			due = t
		}
	}
	return due
}

func (f *Fake) compact() {
	live := f.tasks[:0]
	for _, t := range f.tasks {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(f.tasks); i++ {
		f.tasks[i] = nil
	}
	f.tasks = live
}
