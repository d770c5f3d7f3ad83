package usecase

import (
	"context"

	"threadsuite/internal/modules/thread/domain"
	"threadsuite/internal/modules/thread/dto"
	threadin "threadsuite/internal/modules/thread/port/in"
	"threadsuite/internal/modules/thread/service"
)

type Interactor struct {
	svc *service.ThreadService
}

func NewInteractor(svc *service.ThreadService) threadin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Split(ctx context.Context, input dto.SplitInput) (dto.SplitOutput, error) {
	segments, err := i.svc.Split(ctx, domain.SplitRequest{
		Body:                input.Body,
		MaxLength:           input.MaxLength,
		ReserveForNumbering: input.ReserveForNumbering,
	})
	if err != nil {
		return dto.SplitOutput{}, err
	}
	return dto.SplitOutput{Segments: toSegmentOutputs(segments)}, nil
}

func (i *Interactor) Build(ctx context.Context, input dto.BuildInput) (dto.BuildOutput, error) {
	thread, report, dropped, err := i.svc.Build(ctx, service.BuildParams{
		Text:      input.Text,
		Path:      input.Path,
		Title:     input.Title,
		MaxLength: input.MaxLength,
		Numbered:  input.Numbered,
		Hashtags:  input.Hashtags,
		Save:      input.Save,
	})
	if err != nil {
		return dto.BuildOutput{}, err
	}
	return dto.BuildOutput{
		ID:              thread.ID,
		Title:           thread.Title,
		Saved:           input.Save,
		Segments:        toSegmentOutputs(thread.Segments),
		Report:          toReportOutput(report),
		DroppedHashtags: dropped,
	}, nil
}

func (i *Interactor) ListThreads(ctx context.Context, limit int) ([]dto.ThreadSummaryOutput, error) {
	items, err := i.svc.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ThreadSummaryOutput, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ThreadSummaryOutput{
			ID:           item.ID,
			Title:        item.Title,
			Slug:         item.Slug,
			SegmentCount: item.SegmentCount,
			CreatedAt:    item.CreatedAt,
		})
	}
	return out, nil
}

func (i *Interactor) GetThread(ctx context.Context, id string) (dto.ThreadDetailOutput, error) {
	thread, err := i.svc.Get(ctx, id)
	if err != nil {
		return dto.ThreadDetailOutput{}, err
	}
	return dto.ThreadDetailOutput{
		ID:        thread.ID,
		Title:     thread.Title,
		MaxLength: thread.MaxLength,
		Numbered:  thread.Numbered,
		Hashtags:  thread.Hashtags,
		Segments:  toSegmentOutputs(thread.Segments),
		CreatedAt: thread.CreatedAt,
	}, nil
}

func toSegmentOutputs(segments []domain.Segment) []dto.SegmentOutput {
	out := make([]dto.SegmentOutput, 0, len(segments))
	for _, s := range segments {
		out = append(out, dto.SegmentOutput{
			Index:     s.Index,
			Text:      s.Text,
			Length:    domain.Length(s.Text),
			IsFinal:   s.IsFinal,
			HardBreak: s.HardBreak,
		})
	}
	return out
}

func toReportOutput(r domain.Report) dto.ReportOutput {
	return dto.ReportOutput{
		Valid:             r.Valid,
		Issues:            r.Issues,
		Warnings:          r.Warnings,
		Count:             r.Count,
		TotalChars:        r.TotalChars,
		AverageLength:     r.AverageLength,
		EngagementScore:   r.EngagementScore,
		EngagementMax:     r.Engagement.MaxScore,
		EngagementFactors: r.Engagement.Factors,
		Recommendations:   r.Engagement.Recommendations,
	}
}
