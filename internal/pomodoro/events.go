package pomodoro

// Mode is the phase currently loaded into the engine.
type Mode int

const (
	Focus Mode = iota
	Break
)

func (m Mode) String() string {
	switch m {
	case Focus:
		return "FOCUS"
	case Break:
		return "BREAK"
	default:
		return "UNKNOWN"
	}
}

// EventType names a sequencer notification.
type EventType string

const (
	EventTick          EventType = "TICK"
	EventFocusStarting EventType = "FOCUS_STARTING"
	EventFocusFinished EventType = "FOCUS_FINISHED"
	EventBreakStarting EventType = "BREAK_STARTING"
	EventBreakFinished EventType = "BREAK_FINISHED"
)

// Event is delivered to the registered Handler.
//
// Remaining is the seconds left for TICK, and the full phase length for
// FOCUS_STARTING and BREAK_STARTING. It is zero for the finished events.
type Event struct {
	Type      EventType
	Mode      Mode
	Remaining uint32
}

// Handler receives sequencer events on the scheduler's execution context.
type Handler func(Event)
