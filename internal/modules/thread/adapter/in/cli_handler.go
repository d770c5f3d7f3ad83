package in

import (
	"context"

	"threadsuite/internal/modules/thread/dto"
	threadin "threadsuite/internal/modules/thread/port/in"
)

type CLIHandler struct {
	usecase threadin.Usecase
}

func NewCLIHandler(usecase threadin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Split(ctx context.Context, body string, maxLength int, numbered bool) (dto.SplitOutput, error) {
	return h.usecase.Split(ctx, dto.SplitInput{Body: body, MaxLength: maxLength, ReserveForNumbering: numbered})
}

func (h CLIHandler) Build(ctx context.Context, input dto.BuildInput) (dto.BuildOutput, error) {
	return h.usecase.Build(ctx, input)
}

func (h CLIHandler) ListThreads(ctx context.Context, limit int) ([]dto.ThreadSummaryOutput, error) {
	return h.usecase.ListThreads(ctx, limit)
}

func (h CLIHandler) GetThread(ctx context.Context, id string) (dto.ThreadDetailOutput, error) {
	return h.usecase.GetThread(ctx, id)
}
