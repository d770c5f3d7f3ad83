package dto

import "time"

type LaunchInput struct {
	Target string
}

type LaunchOutput struct {
	Target       string `json:"target"`
	ResolvedPath string `json:"resolved_path,omitempty"`
	Started      bool   `json:"started"`
	PID          int    `json:"pid,omitempty"`
	Error        string `json:"error,omitempty"`
	// Reason is "not_found" or "spawn_failed" when Started is false.
	Reason string `json:"reason,omitempty"`
}

type TargetOutput struct {
	Name           string `json:"name"`
	PrimaryPath    string `json:"primary_path"`
	FallbackPath   string `json:"fallback_path"`
	PrimaryExists  bool   `json:"primary_exists"`
	FallbackExists bool   `json:"fallback_exists"`
	Resolvable     bool   `json:"resolvable"`
}

type RunningOutput struct {
	Target    string    `json:"target"`
	Path      string    `json:"path"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

type LaunchRecordOutput struct {
	ID           string    `json:"id"`
	Target       string    `json:"target"`
	ResolvedPath string    `json:"resolved_path,omitempty"`
	Started      bool      `json:"started"`
	PID          int       `json:"pid,omitempty"`
	Error        string    `json:"error,omitempty"`
	At           time.Time `json:"at"`
}
