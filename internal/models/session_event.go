package models

import "time"

// SessionEvent is a single entry of the session log.
type SessionEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // FOCUS_STARTING | FOCUS_FINISHED | BREAK_STARTING | BREAK_FINISHED | TICK | PAUSED | RESUMED | RESET | SETTINGS_CHANGED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
