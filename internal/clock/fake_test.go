package clock

import (
	"testing"
	"time"
)

func TestFake_FiresOncePerPeriod(t *testing.T) {
	f := NewFake(nil)
	count := 0
	f.Every(time.Second, func() { count++ })

	f.Advance(999 * time.Millisecond)
	if count != 0 {
		t.Fatalf("fired early: count=%d", count)
	}
	f.Advance(time.Millisecond)
	if count != 1 {
		t.Fatalf("count=%d, want 1", count)
	}
	f.Advance(3 * time.Second)
	if count != 4 {
		t.Fatalf("count=%d, want 4", count)
	}
	if f.Elapsed() != 4*time.Second {
		t.Fatalf("elapsed=%v", f.Elapsed())
	}
}

func TestFake_StopPreventsFurtherCallbacks(t *testing.T) {
	f := NewFake(nil)
	count := 0
	task := f.Every(time.Second, func() { count++ })

	f.Advance(time.Second)
	task.Stop()
	task.Stop()
	f.Advance(5 * time.Second)

	if count != 1 {
		t.Fatalf("count=%d, want 1", count)
	}
	if f.Active() != 0 {
		t.Fatalf("active=%d, want 0", f.Active())
	}
}

func TestFake_CallbackCanRescheduleWithinAdvance(t *testing.T) {
	f := NewFake(nil)
	var order []string

	var first Task
	first = f.Every(time.Second, func() {
		order = append(order, "first")
		first.Stop()
		f.Every(time.Second, func() { order = append(order, "second") })
	})

	f.Advance(3 * time.Second)

	want := []string{"first", "second", "second"}
	if len(order) != len(want) {
		t.Fatalf("order=%v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order=%v, want %v", order, want)
		}
	}
}

func TestFake_NonPositivePeriodUsesDefault(t *testing.T) {
	f := NewFake(nil)
	count := 0
	f.Every(0, func() { count++ })
	f.Advance(DefaultPeriod)
	if count != 1 {
		t.Fatalf("count=%d, want 1", count)
	}
}

type countingLocker struct {
	locks, unlocks int
}

func (l *countingLocker) Lock()   { l.locks++ }
func (l *countingLocker) Unlock() { l.unlocks++ }

func TestFake_CallbacksRunUnderLocker(t *testing.T) {
	l := &countingLocker{}
	f := NewFake(l)
	held := false
	f.Every(time.Second, func() { held = l.locks > l.unlocks })

	f.Advance(time.Second)

	if !held {
		t.Fatalf("callback ran without the locker held")
	}
	if l.locks != 1 || l.unlocks != 1 {
		t.Fatalf("locks=%d unlocks=%d", l.locks, l.unlocks)
	}
}
