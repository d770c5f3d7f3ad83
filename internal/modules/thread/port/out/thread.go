package out

import (
	"context"

	"threadsuite/internal/modules/thread/domain"
)

type BodySource interface {
	Read(ctx context.Context, path string) (domain.Body, error)
}

type ThreadStore interface {
	Save(ctx context.Context, thread domain.Thread) error
	Get(ctx context.Context, id string) (domain.Thread, error)
	Recent(ctx context.Context, limit int) ([]domain.ThreadSummary, error)
}
