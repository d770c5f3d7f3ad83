package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"threadsuite/internal/modules/launcher/domain"
	launcherout "threadsuite/internal/modules/launcher/port/out"
	"threadsuite/internal/platform/clock"
	apperrors "threadsuite/internal/platform/errors"
	"threadsuite/internal/platform/id"
)

type LauncherService struct {
	catalog  launcherout.TargetCatalog
	checker  launcherout.PathChecker
	spawner  launcherout.ProcessSpawner
	registry launcherout.ProcessRegistry
	journal  launcherout.LaunchJournal
	clock    clock.Clock
	ids      id.Generator
	log      *zap.Logger
}

func NewLauncherService(
	catalog launcherout.TargetCatalog,
	checker launcherout.PathChecker,
	spawner launcherout.ProcessSpawner,
	registry launcherout.ProcessRegistry,
	journal launcherout.LaunchJournal,
	clk clock.Clock,
	ids id.Generator,
	log *zap.Logger,
) *LauncherService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LauncherService{
		catalog:  catalog,
		checker:  checker,
		spawner:  spawner,
		registry: registry,
		journal:  journal,
		clock:    clk,
		ids:      ids,
		log:      log,
	}
}

// Launch looks up a target by name and starts it. The error return is only
// for names missing from the catalog; launch failures live in the result.
func (s *LauncherService) Launch(ctx context.Context, name string) (domain.Result, error) {
	target, err := s.catalog.Get(ctx, name)
	if err != nil {
		return domain.Result{}, err
	}
	return s.LaunchTarget(ctx, target), nil
}

// LaunchTarget resolves and spawns target without waiting on the child.
// Every call checks the filesystem again.
func (s *LauncherService) LaunchTarget(ctx context.Context, target domain.Target) domain.Result {
	result := domain.Result{Target: target.Name}

	path, err := s.Resolve(ctx, target)
	if err != nil {
		result.Err = err
		s.finish(ctx, result)
		return result
	}
	result.ResolvedPath = path

	proc, err := s.spawner.Spawn(ctx, path)
	if err != nil {
		result.Err = fmt.Errorf("%w: %s: %v", apperrors.ErrSpawnFailed, path, err)
		s.finish(ctx, result)
		return result
	}
	result.Started = true
	result.PID = proc.PID()
	if s.registry != nil {
		s.registry.Track(target.Name, path, proc)
	}
	s.finish(ctx, result)
	return result
}

// Resolve returns the first existing candidate path.
func (s *LauncherService) Resolve(ctx context.Context, target domain.Target) (string, error) {
	if err := target.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	for _, candidate := range target.Candidates() {
		if s.checker.Exists(ctx, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s (looked in %s, %s)", apperrors.ErrNotFound, target.Name, target.PrimaryPath, target.FallbackPath)
}

func (s *LauncherService) finish(ctx context.Context, result domain.Result) {
	fields := []zap.Field{
		zap.String("target", result.Target),
		zap.String("path", result.ResolvedPath),
	}
	if result.Started {
		s.log.Info("launched", append(fields, zap.Int("pid", result.PID))...)
	} else {
		s.log.Warn("launch failed", append(fields, zap.Error(result.Err))...)
	}

	if s.journal == nil {
		return
	}
	record := domain.LaunchRecord{
		ID:           s.ids.New(),
		Target:       result.Target,
		ResolvedPath: result.ResolvedPath,
		Started:      result.Started,
		PID:          result.PID,
		At:           s.clock.Now(),
	}
	if result.Err != nil {
		record.Error = result.Err.Error()
	}
	// A started process must be journaled even if the caller gave up.
	if err := s.journal.Record(context.WithoutCancel(ctx), record); err != nil {
		s.log.Warn("journal launch", zap.String("target", result.Target), zap.Error(err))
	}
}

func (s *LauncherService) Targets(ctx context.Context) ([]domain.TargetStatus, error) {
	targets, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.TargetStatus, 0, len(targets))
	for _, t := range targets {
		out = append(out, domain.TargetStatus{
			Target:         t,
			PrimaryExists:  s.checker.Exists(ctx, t.PrimaryPath),
			FallbackExists: s.checker.Exists(ctx, t.FallbackPath),
		})
	}
	return out, nil
}

func (s *LauncherService) Running() []domain.RunningProcess {
	if s.registry == nil {
		return nil
	}
	return s.registry.Running()
}

func (s *LauncherService) StopAll() int {
	if s.registry == nil {
		return 0
	}
	n := s.registry.StopAll()
	s.log.Info("stopped launched processes", zap.Int("count", n))
	return n
}

func (s *LauncherService) History(ctx context.Context, limit int) ([]domain.LaunchRecord, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("launch journal is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.journal.Recent(ctx, limit)
}
