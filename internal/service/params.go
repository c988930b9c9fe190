package service

import "time"

// Settings are the user-editable timer parameters, in seconds.
type Settings struct {
	FocusSeconds int  `json:"focus_seconds"`
	BreakSeconds int  `json:"break_seconds"`
	Repeat       bool `json:"repeat"`
}

// LogFilter supports history filtering by time range, type and size.
type LogFilter struct {
	From  time.Time // inclusive; zero means no lower bound
	To    time.Time // inclusive; zero means no upper bound
	Type  string    // "", "FOCUS_STARTING", "BREAK_FINISHED", "PAUSED", ...
	Limit int       // 0 means no limit
}

// AuthConfig holds token signing parameters.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// Config carries everything NewService needs besides the repositories.
type Config struct {
	Focus       int
	Break       int
	Repeat      bool
	MaxSeconds  int
	EventBuffer int
	RecordTicks bool
	Auth        AuthConfig
}
