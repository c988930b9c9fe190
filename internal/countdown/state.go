package countdown

// State is the engine lifecycle.
type State int

const (
	// Idle means no countdown is armed.
	Idle State = iota
	// Running means the engine is ticking.
	Running
	// Paused means a countdown is armed but not ticking.
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}
