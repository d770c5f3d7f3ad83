package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var ErrSelfReferentialTarget = errors.New("primary and fallback paths are the same")

// Target is a named application with two candidate locations, most preferred
// first. Paths are concrete file paths; nothing is inferred from them.
type Target struct {
	Name         string
	PrimaryPath  string
	FallbackPath string
}

func NewTarget(name, primary, fallback string) (Target, error) {
	t := Target{
		Name:         strings.TrimSpace(name),
		PrimaryPath:  strings.TrimSpace(primary),
		FallbackPath: strings.TrimSpace(fallback),
	}
	if err := t.Validate(); err != nil {
		return Target{}, err
	}
	return t, nil
}

func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target name is required")
	}
	if t.PrimaryPath == "" || t.FallbackPath == "" {
		return fmt.Errorf("target %q: primary and fallback paths are required", t.Name)
	}
	if filepath.Clean(t.PrimaryPath) == filepath.Clean(t.FallbackPath) {
		return fmt.Errorf("target %q: %w", t.Name, ErrSelfReferentialTarget)
	}
	return nil
}

// Candidates returns the candidate order.
func (t Target) Candidates() []string {
	return []string{t.PrimaryPath, t.FallbackPath}
}

// Result is the outcome of one launch attempt. Err is nil exactly when
// Started is true.
type Result struct {
	Target       string
	ResolvedPath string
	Started      bool
	PID          int
	Err          error
}

// RunningProcess is a launched process that has not been observed to exit.
type RunningProcess struct {
	Target    string
	Path      string
	PID       int
	StartedAt time.Time
}

// LaunchRecord is one journal entry.
type LaunchRecord struct {
	ID           string
	Target       string
	ResolvedPath string
	Started      bool
	PID          int
	Error        string
	At           time.Time
}

// TargetStatus reports which candidate locations currently exist.
type TargetStatus struct {
	Target         Target
	PrimaryExists  bool
	FallbackExists bool
}

func (s TargetStatus) Resolvable() bool {
	return s.PrimaryExists || s.FallbackExists
}
