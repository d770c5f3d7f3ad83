package markdown_test

import (
	"testing"

	"threadsuite/internal/platform/markdown"
)

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("---\ntitle: Hover tests\ntags: [a, b]\n---\nFirst line.\n")
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if markdown.Title(meta) != "Hover tests" {
		t.Fatalf("unexpected title: %v", meta)
	}
	if body != "First line.\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutBlock(t *testing.T) {
	t.Parallel()
	meta, body, err := markdown.SplitFrontmatter("plain text")
	if err != nil {
		t.Fatalf("split frontmatter: %v", err)
	}
	if len(meta) != 0 || body != "plain text" {
		t.Fatalf("expected passthrough, got %v %q", meta, body)
	}
	if markdown.Title(meta) != "" {
		t.Fatalf("title should be empty")
	}
}

func TestSplitFrontmatterUnclosed(t *testing.T) {
	t.Parallel()
	if _, _, err := markdown.SplitFrontmatter("---\ntitle: x\nbody"); err == nil {
		t.Fatalf("unclosed frontmatter should fail")
	}
}
