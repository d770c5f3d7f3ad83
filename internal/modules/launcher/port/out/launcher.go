package out

import (
	"context"

	"threadsuite/internal/modules/launcher/domain"
)

type TargetCatalog interface {
	Get(ctx context.Context, name string) (domain.Target, error)
	List(ctx context.Context) ([]domain.Target, error)
}

type PathChecker interface {
	Exists(ctx context.Context, path string) bool
}

// Process is a handle on a spawned process. Exited never blocks.
type Process interface {
	PID() int
	Exited() bool
	Terminate() error
}

type ProcessSpawner interface {
	Spawn(ctx context.Context, path string) (Process, error)
}

type ProcessRegistry interface {
	Track(target, path string, proc Process)
	Running() []domain.RunningProcess
	StopAll() int
}

type LaunchJournal interface {
	Record(ctx context.Context, record domain.LaunchRecord) error
	Recent(ctx context.Context, limit int) ([]domain.LaunchRecord, error)
}
