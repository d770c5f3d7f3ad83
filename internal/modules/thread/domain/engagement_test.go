package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"threadsuite/internal/modules/thread/domain"
)

func segmentsOf(texts ...string) []domain.Segment {
	out := make([]domain.Segment, len(texts))
	for i, text := range texts {
		out[i] = domain.Segment{Index: i + 1, Text: text, Body: text, IsFinal: i == len(texts)-1}
	}
	return out
}

func TestEngagement(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		segments []domain.Segment
		score    int
		factors  []string
		recs     []string
	}{
		{
			name:     "empty thread",
			segments: nil,
		},
		{
			name:     "plain single post",
			segments: segmentsOf("hello world"),
			recs: []string{
				"low engagement risk: consider major revisions",
				"add questions to encourage replies",
				"include call-to-action phrases",
				"add relevant hashtags",
				"add more emojis for visual appeal",
				"expand into a longer thread for more engagement",
				"add personal experiences or stories for authenticity",
				"include specific numbers or data for credibility",
			},
		},
		{
			name: "hooked thread",
			segments: segmentsOf(
				"Thread: what do you think about drones? (1/3)",
				"I flew 200 missions and cut costs 40% (2/3)",
				"Share your thoughts #drones 🚁 (3/3)",
			),
			score: 37,
			factors: []string{
				"emojis: +2",
				"questions: +4",
				"strong hook: +8",
				"calls to action: +9",
				"optimal thread length: +6",
				"hashtags: +2",
				"personal touch: +4",
				"data points: +2",
			},
			recs: []string{
				"add more emojis for visual appeal",
				"moderate engagement: consider one or two improvements",
			},
		},
		{
			name:     "questions are capped",
			segments: segmentsOf("why? how? where? when? who?"),
			score:    16,
			factors:  []string{"questions: +16"},
		},
		{
			name:     "emojis are capped",
			segments: segmentsOf(strings.Repeat("😀", 11)),
			score:    16,
			factors:  []string{"emojis: +16"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := domain.Engagement(tc.segments)
			assert.Equal(t, tc.score, got.Score)
			assert.Equal(t, domain.EngagementMaxScore, got.MaxScore)
			assert.Equal(t, tc.factors, got.Factors)
			if tc.recs != nil {
				assert.Equal(t, tc.recs, got.Recommendations)
			}
		})
	}
}

func TestEngagementFlagsEmojiOverload(t *testing.T) {
	t.Parallel()
	got := domain.Engagement(segmentsOf(strings.Repeat("😀", 11)))
	assert.Contains(t, got.Recommendations, "consider reducing emojis to avoid a spam appearance")
	assert.InDelta(t, 16.0/60*100, got.Percentage, 0.001)
}

func TestEngagementIsDeterministic(t *testing.T) {
	t.Parallel()
	segs := segmentsOf("Nobody tells you this myth? Drop a comment #uav", "My 3x faster survey after years of flying")
	assert.Equal(t, domain.Engagement(segs), domain.Engagement(segs))
}

func TestValidateWarnsOnLowEngagement(t *testing.T) {
	t.Parallel()
	report := domain.Validate(segmentsOf("hello world"), 280)
	assert.True(t, report.Valid)
	assert.Equal(t, 0, report.EngagementScore)
	assert.Contains(t, report.Warnings, "low engagement potential: consider adding questions, calls to action, or emojis")

	report = domain.Validate(segmentsOf(
		"Thread: what do you think about drones? (1/3)",
		"I flew 200 missions and cut costs 40% (2/3)",
		"Share your thoughts #drones 🚁 (3/3)",
	), 280)
	assert.Equal(t, 37, report.EngagementScore)
	assert.Empty(t, report.Warnings)
}
