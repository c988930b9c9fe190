package clock

import (
	"sync"
	"testing"
	"time"
)

func TestSystem_TicksUntilStopped(t *testing.T) {
	var mu sync.Mutex
	s := NewSystem(&mu)

	ticks := make(chan struct{}, 16)
	task := s.Every(10*time.Millisecond, func() { ticks <- struct{}{} })

	for i := 0; i < 2; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatalf("tick %d not delivered", i+1)
		}
	}

	mu.Lock()
	task.Stop()
	// drop anything delivered before Stop
	for len(ticks) > 0 {
		<-ticks
	}
	mu.Unlock()

	select {
	case <-ticks:
		t.Fatalf("tick delivered after Stop returned")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSystem_CallbackHoldsLocker(t *testing.T) {
	var mu sync.Mutex
	s := NewSystem(&mu)

	result := make(chan bool, 1)
	var task Task
	mu.Lock()
	task = s.Every(5*time.Millisecond, func() {
		// TryLock fails while the scheduler holds mu for us.
		locked := mu.TryLock()
		if locked {
			mu.Unlock()
		}
		task.Stop()
		select {
		case result <- !locked:
		default:
		}
	})
	mu.Unlock()

	select {
	case held := <-result:
		if !held {
			t.Fatalf("callback ran without the locker held")
		}
	case <-time.After(time.Second):
		t.Fatalf("callback never ran")
	}
}
