package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"threadsuite/internal/modules/launcher/dto"
	launcherin "threadsuite/internal/modules/launcher/port/in"
	"threadsuite/internal/modules/launcher/service"
	apperrors "threadsuite/internal/platform/errors"
)

type Interactor struct {
	svc *service.LauncherService
}

func NewInteractor(svc *service.LauncherService) launcherin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Launch(ctx context.Context, input dto.LaunchInput) (dto.LaunchOutput, error) {
	name := strings.TrimSpace(input.Target)
	if name == "" {
		return dto.LaunchOutput{}, fmt.Errorf("%w: target name is required", apperrors.ErrInvalidInput)
	}
	result, err := i.svc.Launch(ctx, name)
	if err != nil {
		return dto.LaunchOutput{}, err
	}
	out := dto.LaunchOutput{
		Target:       result.Target,
		ResolvedPath: result.ResolvedPath,
		Started:      result.Started,
		PID:          result.PID,
	}
	if result.Err != nil {
		out.Error = result.Err.Error()
		switch {
		case errors.Is(result.Err, apperrors.ErrNotFound):
			out.Reason = "not_found"
		case errors.Is(result.Err, apperrors.ErrSpawnFailed):
			out.Reason = "spawn_failed"
		}
	}
	return out, nil
}

func (i *Interactor) Targets(ctx context.Context) ([]dto.TargetOutput, error) {
	statuses, err := i.svc.Targets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TargetOutput, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, dto.TargetOutput{
			Name:           st.Target.Name,
			PrimaryPath:    st.Target.PrimaryPath,
			FallbackPath:   st.Target.FallbackPath,
			PrimaryExists:  st.PrimaryExists,
			FallbackExists: st.FallbackExists,
			Resolvable:     st.Resolvable(),
		})
	}
	return out, nil
}

func (i *Interactor) Running(_ context.Context) []dto.RunningOutput {
	procs := i.svc.Running()
	out := make([]dto.RunningOutput, 0, len(procs))
	for _, p := range procs {
		out = append(out, dto.RunningOutput{Target: p.Target, Path: p.Path, PID: p.PID, StartedAt: p.StartedAt})
	}
	return out
}

func (i *Interactor) StopAll(_ context.Context) int {
	return i.svc.StopAll()
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.LaunchRecordOutput, error) {
	records, err := i.svc.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LaunchRecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, dto.LaunchRecordOutput{
			ID:           r.ID,
			Target:       r.Target,
			ResolvedPath: r.ResolvedPath,
			Started:      r.Started,
			PID:          r.PID,
			Error:        r.Error,
			At:           r.At,
		})
	}
	return out, nil
}
