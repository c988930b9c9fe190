package models

import "time"

// TimerState is a point-in-time view of the pomodoro timer.
type TimerState struct {
	State            string    `json:"state"`          // IDLE | RUNNING | PAUSED
	Mode             string    `json:"mode,omitempty"` // FOCUS | BREAK, empty while idle
	RemainingSeconds uint32    `json:"remaining_seconds"`
	Display          string    `json:"display"` // HH:MM:SS of remaining_seconds
	FocusSeconds     uint32    `json:"focus_seconds"`
	BreakSeconds     uint32    `json:"break_seconds"`
	Repeat           bool      `json:"repeat"`
	IsRunning        bool      `json:"is_running"`
	IsPaused         bool      `json:"is_paused"`
	UpdatedAt        time.Time `json:"updated_at"`
}
