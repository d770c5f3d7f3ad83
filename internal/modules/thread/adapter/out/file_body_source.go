package out

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"rsc.io/pdf"

	"threadsuite/internal/modules/thread/domain"
	threadout "threadsuite/internal/modules/thread/port/out"
	apperrors "threadsuite/internal/platform/errors"
	"threadsuite/internal/platform/markdown"
)

type FileBodySource struct{}

func NewFileBodySource() threadout.BodySource {
	return &FileBodySource{}
}

func (s *FileBodySource) Read(_ context.Context, path string) (domain.Body, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return readPDF(path)
	case ".md", ".markdown", ".txt", "":
		return readText(path)
	default:
		return domain.Body{}, fmt.Errorf("%w: unsupported body file type %q", apperrors.ErrInvalidInput, filepath.Ext(path))
	}
}

func readText(path string) (domain.Body, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Body{}, fmt.Errorf("read body: %w", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(b))
	if err != nil {
		return domain.Body{}, err
	}
	title := markdown.Title(meta)
	if title == "" {
		title, body = leadingHeading(body)
	}
	return domain.Body{Title: title, Text: body}, nil
}

// leadingHeading lifts a first-line "# Heading" out of the body.
func leadingHeading(body string) (string, string) {
	trimmed := strings.TrimLeft(body, "\n")
	line, rest, _ := strings.Cut(trimmed, "\n")
	if !strings.HasPrefix(line, "# ") {
		return "", body
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "# ")), rest
}

func readPDF(path string) (domain.Body, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return domain.Body{}, fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, doc.NumPage())
	for n := 1; n <= doc.NumPage(); n++ {
		p := doc.Page(n)
		if p.V.IsNull() {
			continue
		}
		if text := pageText(p.Content().Text); text != "" {
			pages = append(pages, text)
		}
	}
	return domain.Body{Text: strings.Join(pages, "\n")}, nil
}

// wordGap is the horizontal gap, as a fraction of the font size, past which
// two glyphs belong to different words.
const wordGap = 0.15

// pageText rebuilds words and lines from the per-glyph runs the pdf package
// returns. Spaces are not emitted as glyphs, so they are recovered from gaps.
func pageText(glyphs []pdf.Text) string {
	var (
		b    strings.Builder
		prev pdf.Text
	)
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			continue
		}
		if b.Len() > 0 {
			switch {
			case math.Abs(g.Y-prev.Y) > prev.FontSize/2:
				b.WriteByte('\n')
			case g.X-(prev.X+prev.W) > prev.FontSize*wordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
		prev = g
	}
	return b.String()
}
