package domain_test

import (
	"strings"
	"testing"

	"threadsuite/internal/modules/thread/domain"
)

func TestValidateCleanThread(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: corpus, MaxLength: 120, ReserveForNumbering: true})
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	report := domain.Validate(segments, 120)
	if !report.Valid || len(report.Issues) != 0 {
		t.Fatalf("expected valid report, got %+v", report)
	}
	if report.Count != len(segments) || report.TotalChars == 0 || report.AverageLength <= 0 {
		t.Fatalf("unexpected totals: %+v", report)
	}
}

func TestValidateFlagsIssues(t *testing.T) {
	t.Parallel()
	segments := []domain.Segment{
		{Index: 1, Text: "way too long for the budget", Body: "way too long for the budget"},
		{Index: 2, Text: " padded", Body: "padded"},
		{Index: 3, Text: "double  space", Body: "double space"},
		{Index: 4, Text: "   ", Body: "", IsFinal: true},
	}
	report := domain.Validate(segments, 15)
	if report.Valid {
		t.Fatalf("report should be invalid")
	}
	if len(report.Issues) != 4 {
		t.Fatalf("expected 4 issues, got %v", report.Issues)
	}
}

func TestValidateWarnsOnRepetition(t *testing.T) {
	t.Parallel()
	segments := []domain.Segment{
		{Index: 1, Text: "drones map the farm today", Body: "drones map the farm today"},
		{Index: 2, Text: "drones map the farm today again", Body: "drones map the farm today again", IsFinal: true},
	}
	report := domain.Validate(segments, 280)
	if !report.Valid {
		t.Fatalf("repetition is a warning, not an issue: %+v", report)
	}
	similar := 0
	for _, w := range report.Warnings {
		if strings.Contains(w, "very similar") {
			similar++
		}
	}
	if similar != 1 {
		t.Fatalf("expected one repetition warning, got %v", report.Warnings)
	}
}

func TestValidateEmpty(t *testing.T) {
	t.Parallel()
	report := domain.Validate(nil, 280)
	if !report.Valid || report.Count != 0 || report.AverageLength != 0 {
		t.Fatalf("unexpected report for empty thread: %+v", report)
	}
}
