package dto

import "time"

type SplitInput struct {
	Body                string
	MaxLength           int
	ReserveForNumbering bool
}

type SegmentOutput struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Length    int    `json:"length"`
	IsFinal   bool   `json:"is_final"`
	HardBreak bool   `json:"hard_break,omitempty"`
}

type SplitOutput struct {
	Segments []SegmentOutput `json:"segments"`
}

type BuildInput struct {
	Text      string
	Path      string
	Title     string
	MaxLength int
	Numbered  bool
	Hashtags  []string
	Save      bool
}

type ReportOutput struct {
	Valid             bool     `json:"valid"`
	Issues            []string `json:"issues,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
	Count             int      `json:"count"`
	TotalChars        int      `json:"total_chars"`
	AverageLength     float64  `json:"average_length"`
	EngagementScore   int      `json:"engagement_score"`
	EngagementMax     int      `json:"engagement_max"`
	EngagementFactors []string `json:"engagement_factors,omitempty"`
	Recommendations   []string `json:"recommendations,omitempty"`
}

type BuildOutput struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Saved           bool            `json:"saved"`
	Segments        []SegmentOutput `json:"segments"`
	Report          ReportOutput    `json:"report"`
	DroppedHashtags []string        `json:"dropped_hashtags,omitempty"`
}

type ThreadSummaryOutput struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	SegmentCount int       `json:"segment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ThreadDetailOutput struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	MaxLength int             `json:"max_length"`
	Numbered  bool            `json:"numbered"`
	Hashtags  []string        `json:"hashtags,omitempty"`
	Segments  []SegmentOutput `json:"segments"`
	CreatedAt time.Time       `json:"created_at"`
}
