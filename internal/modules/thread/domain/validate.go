package domain

import (
	"fmt"
	"strings"
)

const similarityThreshold = 0.7

type Report struct {
	Valid           bool
	Issues          []string
	Warnings        []string
	Count           int
	TotalChars      int
	AverageLength   float64
	EngagementScore int
	Engagement      EngagementReport
}

// Validate checks posted text against the budget and flags formatting noise.
// Issues make a thread unpostable; warnings do not.
func Validate(segments []Segment, maxLength int) Report {
	report := Report{Count: len(segments)}
	for i, s := range segments {
		n := Length(s.Text)
		report.TotalChars += n
		switch {
		case strings.TrimSpace(s.Text) == "":
			report.Issues = append(report.Issues, fmt.Sprintf("segment %d is empty", s.Index))
			continue
		case n > maxLength:
			report.Issues = append(report.Issues, fmt.Sprintf("segment %d exceeds character limit (%d/%d)", s.Index, n, maxLength))
		}
		if strings.TrimSpace(s.Text) != s.Text {
			report.Issues = append(report.Issues, fmt.Sprintf("segment %d has leading or trailing whitespace", s.Index))
		}
		if strings.Contains(s.Text, "  ") {
			report.Issues = append(report.Issues, fmt.Sprintf("segment %d has double spaces", s.Index))
		}
		if i > 0 {
			if sim := similarity(s.Body, segments[i-1].Body); sim > similarityThreshold {
				report.Warnings = append(report.Warnings, fmt.Sprintf("segment %d is very similar to segment %d (%.0f%%)", s.Index, segments[i-1].Index, sim*100))
			}
		}
	}
	if report.Count > 0 {
		report.AverageLength = float64(report.TotalChars) / float64(report.Count)
		report.Engagement = Engagement(segments)
		report.EngagementScore = report.Engagement.Score
		if report.EngagementScore < lowEngagementScore {
			report.Warnings = append(report.Warnings, "low engagement potential: consider adding questions, calls to action, or emojis")
		}
	}
	report.Valid = len(report.Issues) == 0
	return report
}

// similarity is the Jaccard index of the two texts' lowercase word sets.
func similarity(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
