package in

import (
	"context"

	"threadsuite/internal/modules/thread/dto"
)

type Usecase interface {
	Split(ctx context.Context, input dto.SplitInput) (dto.SplitOutput, error)
	Build(ctx context.Context, input dto.BuildInput) (dto.BuildOutput, error)
	ListThreads(ctx context.Context, limit int) ([]dto.ThreadSummaryOutput, error)
	GetThread(ctx context.Context, id string) (dto.ThreadDetailOutput, error)
}
