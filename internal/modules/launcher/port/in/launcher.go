package in

import (
	"context"

	"threadsuite/internal/modules/launcher/dto"
)

type Usecase interface {
	Launch(ctx context.Context, input dto.LaunchInput) (dto.LaunchOutput, error)
	Targets(ctx context.Context) ([]dto.TargetOutput, error)
	Running(ctx context.Context) []dto.RunningOutput
	StopAll(ctx context.Context) int
	History(ctx context.Context, limit int) ([]dto.LaunchRecordOutput, error)
}
