package in

import (
	"context"

	"threadsuite/internal/modules/launcher/dto"
	launcherin "threadsuite/internal/modules/launcher/port/in"
)

type CLIHandler struct {
	usecase launcherin.Usecase
}

func NewCLIHandler(usecase launcherin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Launch(ctx context.Context, target string) (dto.LaunchOutput, error) {
	return h.usecase.Launch(ctx, dto.LaunchInput{Target: target})
}

func (h CLIHandler) Targets(ctx context.Context) ([]dto.TargetOutput, error) {
	return h.usecase.Targets(ctx)
}

func (h CLIHandler) Running(ctx context.Context) []dto.RunningOutput {
	return h.usecase.Running(ctx)
}

func (h CLIHandler) StopAll(ctx context.Context) int {
	return h.usecase.StopAll(ctx)
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.LaunchRecordOutput, error) {
	return h.usecase.History(ctx, limit)
}
