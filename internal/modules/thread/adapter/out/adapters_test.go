package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	threadoutadapter "threadsuite/internal/modules/thread/adapter/out"
	"threadsuite/internal/modules/thread/domain"
	apperrors "threadsuite/internal/platform/errors"
)

func TestFileBodySourceMarkdown(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	withMeta := filepath.Join(dir, "meta.md")
	if err := os.WriteFile(withMeta, []byte("---\ntitle: Blade inspections\n---\nThermal imagery finds cracks.\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	withHeading := filepath.Join(dir, "heading.markdown")
	if err := os.WriteFile(withHeading, []byte("# Survey notes\nFly low. Fly slow.\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src := threadoutadapter.NewFileBodySource()
	body, err := src.Read(context.Background(), withMeta)
	if err != nil {
		t.Fatalf("read meta: %v", err)
	}
	if body.Title != "Blade inspections" || body.Text != "Thermal imagery finds cracks.\n" {
		t.Fatalf("unexpected body: %+v", body)
	}

	body, err = src.Read(context.Background(), withHeading)
	if err != nil {
		t.Fatalf("read heading: %v", err)
	}
	if body.Title != "Survey notes" || body.Text != "Fly low. Fly slow.\n" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestFileBodySourcePDF(t *testing.T) {
	t.Parallel()
	src := threadoutadapter.NewFileBodySource()
	body, err := src.Read(context.Background(), filepath.Join("testdata", "blades.pdf"))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	want := "Turbine blades crack\nunder thermal load.\nInspect them yearly."
	if body.Text != want {
		t.Fatalf("pdf text = %q, want %q", body.Text, want)
	}
	if body.Title != "" {
		t.Fatalf("pdf title = %q, want empty", body.Title)
	}
}

func TestFileBodySourceErrors(t *testing.T) {
	t.Parallel()
	src := threadoutadapter.NewFileBodySource()
	if _, err := src.Read(context.Background(), filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("missing file should fail")
	}
	if _, err := src.Read(context.Background(), "slides.pptx"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unsupported type should be invalid input, got %v", err)
	}
}

func TestSQLiteThreadStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store, err := threadoutadapter.NewSQLiteThreadStore(filepath.Join(t.TempDir(), "db", "suite.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	older := domain.Thread{
		ID: "t-1", Title: "Older", Slug: "older", MaxLength: 280,
		Segments:  []domain.Segment{{Index: 1, Text: "only", Body: "only", IsFinal: true}},
		CreatedAt: base,
	}
	newer := domain.Thread{
		ID: "t-2", Title: "Newer", Slug: "newer", MaxLength: 12, Numbered: true,
		Hashtags: []string{"#uav", "#maps"},
		Segments: []domain.Segment{
			{Index: 1, Text: "abcd (1/2)", Body: "abcd", HardBreak: true},
			{Index: 2, Text: "ef (2/2)", Body: "ef", IsFinal: true},
		},
		CreatedAt: base.Add(time.Hour),
	}
	for _, th := range []domain.Thread{older, newer} {
		if err := store.Save(ctx, th); err != nil {
			t.Fatalf("save %s: %v", th.ID, err)
		}
	}
	if err := store.Save(ctx, older); err == nil {
		t.Fatalf("duplicate id should fail")
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "t-2" || recent[0].SegmentCount != 2 || recent[1].SegmentCount != 1 {
		t.Fatalf("unexpected recent list: %+v", recent)
	}

	got, err := store.Get(ctx, "t-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Numbered || len(got.Segments) != 2 || !got.Segments[0].HardBreak || !got.Segments[1].IsFinal {
		t.Fatalf("unexpected thread: %+v", got)
	}
	if !got.CreatedAt.Equal(newer.CreatedAt) || len(got.Hashtags) != 2 {
		t.Fatalf("metadata mismatch: %+v", got)
	}

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
