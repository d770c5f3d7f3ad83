package domain

import (
	"fmt"
	"strings"
	"time"
)

type Thread struct {
	ID        string
	Title     string
	Slug      string
	MaxLength int
	Numbered  bool
	Hashtags  []string
	Segments  []Segment
	CreatedAt time.Time
}

type ThreadSummary struct {
	ID           string
	Title        string
	Slug         string
	SegmentCount int
	CreatedAt    time.Time
}

func (t Thread) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if len(t.Segments) == 0 {
		return fmt.Errorf("thread has no segments")
	}
	if !t.Segments[len(t.Segments)-1].IsFinal {
		return fmt.Errorf("last segment is not marked final")
	}
	return nil
}

// Body is long-form input text plus the title its source declared, if any.
type Body struct {
	Title string
	Text  string
}

// DeriveTitle falls back to the opening words of the text.
func DeriveTitle(text string, words int) string {
	fields := strings.Fields(text)
	if len(fields) > words {
		return strings.Join(fields[:words], " ") + "…"
	}
	return strings.Join(fields, " ")
}
