package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"threadsuite/internal/modules/thread/domain"
	threadout "threadsuite/internal/modules/thread/port/out"
	"threadsuite/internal/platform/clock"
	apperrors "threadsuite/internal/platform/errors"
	"threadsuite/internal/platform/id"
	"threadsuite/internal/platform/slug"
)

const titleWords = 8

type BuildParams struct {
	Text      string
	Path      string
	Title     string
	MaxLength int
	Numbered  bool
	Hashtags  []string
	Save      bool
}

type ThreadService struct {
	clock  clock.Clock
	ids    id.Generator
	source threadout.BodySource
	store  threadout.ThreadStore
	log    *zap.Logger
}

func NewThreadService(clk clock.Clock, ids id.Generator, source threadout.BodySource, store threadout.ThreadStore, log *zap.Logger) *ThreadService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ThreadService{clock: clk, ids: ids, source: source, store: store, log: log}
}

func (s *ThreadService) Split(_ context.Context, req domain.SplitRequest) ([]domain.Segment, error) {
	segments, err := domain.Split(req)
	if err != nil {
		return nil, err
	}
	s.log.Debug("split body",
		zap.Int("chars", domain.Length(req.Body)),
		zap.Int("max_length", req.MaxLength),
		zap.Int("segments", len(segments)))
	return segments, nil
}

// Build splits a body into a thread, places hashtags, validates the result and
// optionally persists it. Nothing is saved when any step fails.
func (s *ThreadService) Build(ctx context.Context, p BuildParams) (domain.Thread, domain.Report, []string, error) {
	body, err := s.resolveBody(ctx, p)
	if err != nil {
		return domain.Thread{}, domain.Report{}, nil, err
	}

	segments, err := s.Split(ctx, domain.SplitRequest{Body: body.Text, MaxLength: p.MaxLength, ReserveForNumbering: p.Numbered})
	if err != nil {
		return domain.Thread{}, domain.Report{}, nil, err
	}
	if len(segments) == 0 {
		return domain.Thread{}, domain.Report{}, nil, fmt.Errorf("%w: body is empty", apperrors.ErrInvalidInput)
	}

	placement := domain.PlaceHashtags(segments, p.Hashtags, p.MaxLength)
	if len(placement.Dropped) > 0 {
		s.log.Warn("hashtags did not fit", zap.Strings("dropped", placement.Dropped))
	}

	title := strings.TrimSpace(p.Title)
	if title == "" {
		title = body.Title
	}
	if title == "" {
		title = domain.DeriveTitle(body.Text, titleWords)
	}

	thread := domain.Thread{
		ID:        s.ids.New(),
		Title:     title,
		Slug:      slug.Make(title),
		MaxLength: p.MaxLength,
		Numbered:  p.Numbered && len(segments) > 1,
		Hashtags:  domain.NormalizeHashtags(p.Hashtags),
		Segments:  placement.Segments,
		CreatedAt: s.clock.Now(),
	}
	report := domain.Validate(thread.Segments, p.MaxLength)

	if p.Save {
		if s.store == nil {
			return domain.Thread{}, domain.Report{}, nil, fmt.Errorf("thread store is not configured")
		}
		if err := thread.Validate(); err != nil {
			return domain.Thread{}, domain.Report{}, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		if err := s.store.Save(ctx, thread); err != nil {
			return domain.Thread{}, domain.Report{}, nil, err
		}
		s.log.Info("thread saved",
			zap.String("id", thread.ID),
			zap.String("slug", thread.Slug),
			zap.Int("segments", len(thread.Segments)))
	}
	return thread, report, placement.Dropped, nil
}

func (s *ThreadService) resolveBody(ctx context.Context, p BuildParams) (domain.Body, error) {
	hasText := strings.TrimSpace(p.Text) != ""
	hasPath := strings.TrimSpace(p.Path) != ""
	switch {
	case hasText && hasPath:
		return domain.Body{}, fmt.Errorf("%w: give either text or a file, not both", apperrors.ErrInvalidInput)
	case hasPath:
		if s.source == nil {
			return domain.Body{}, fmt.Errorf("body source is not configured")
		}
		return s.source.Read(ctx, p.Path)
	default:
		return domain.Body{Text: p.Text}, nil
	}
}

func (s *ThreadService) Recent(ctx context.Context, limit int) ([]domain.ThreadSummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("thread store is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	return s.store.Recent(ctx, limit)
}

func (s *ThreadService) Get(ctx context.Context, threadID string) (domain.Thread, error) {
	if s.store == nil {
		return domain.Thread{}, fmt.Errorf("thread store is not configured")
	}
	if strings.TrimSpace(threadID) == "" {
		return domain.Thread{}, fmt.Errorf("%w: thread id is required", apperrors.ErrInvalidInput)
	}
	return s.store.Get(ctx, threadID)
}
