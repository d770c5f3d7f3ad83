package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	EngagementMaxScore = 60
	lowEngagementScore = 15
	maxCountedEmojis   = 8
)

var (
	dataPointPattern = regexp.MustCompile(`\d+%|\$\d+|\d+x|\d+ years?`)

	hookPhrases     = []string{"thread:", "breaking:", "shocking:", "nobody tells you"}
	ctaPhrases      = []string{"retweet", "share", "comment", "thoughts", "agree", "disagree", "experience", "drop", "what do you think"}
	strongPhrases   = []string{"wrong", "myth", "mistake", "shocking", "surprising", "nobody tells you"}
	personalWords   = []string{"i", "my"}
	personalPhrases = []string{"after years", "in my experience", "i learned", "i discovered"}
)

// EngagementReport is a heuristic estimate of how likely a thread is to draw
// replies. Factors explain the score; recommendations suggest edits.
type EngagementReport struct {
	Score           int
	MaxScore        int
	Percentage      float64
	Factors         []string
	Recommendations []string
}

// Engagement scores the posted text of segments. It is deterministic and
// returns a zero report for an empty thread.
func Engagement(segments []Segment) EngagementReport {
	report := EngagementReport{MaxScore: EngagementMaxScore}
	if len(segments) == 0 {
		return report
	}
	texts := make([]string, len(segments))
	for i, s := range segments {
		texts[i] = s.Text
	}
	total := strings.ToLower(strings.Join(texts, " "))
	words := wordSet(total)

	add := func(points int, factor string) {
		report.Score += points
		report.Factors = append(report.Factors, factor)
	}

	emojis := countEmojis(total)
	if emojis > 0 {
		n := min(emojis, maxCountedEmojis) * 2
		add(n, fmt.Sprintf("emojis: +%d", n))
	}
	if q := strings.Count(total, "?"); q > 0 {
		n := min(q*4, 16)
		add(n, fmt.Sprintf("questions: +%d", n))
	}
	if containsAny(strings.ToLower(segments[0].Text), hookPhrases) {
		add(8, "strong hook: +8")
	}
	if cta := countContained(total, ctaPhrases); cta > 0 {
		add(cta*3, fmt.Sprintf("calls to action: +%d", cta*3))
	}
	switch n := len(segments); {
	case n >= 3 && n <= 8:
		add(6, "optimal thread length: +6")
	case n > 8:
		add(2, "long thread: +2")
	}
	switch tags := strings.Count(total, "#"); {
	case tags >= 1 && tags <= 5:
		add(tags*2, fmt.Sprintf("hashtags: +%d", tags*2))
	case tags > 5:
		add(5, "hashtags (many): +5")
	}
	if hasAnyWord(words, personalWords) || containsAny(total, personalPhrases) {
		add(4, "personal touch: +4")
	}
	if data := len(dataPointPattern.FindAllString(total, -1)); data > 0 {
		n := min(data*2, 8)
		add(n, fmt.Sprintf("data points: +%d", n))
	}
	if containsAny(total, strongPhrases) {
		add(5, "strong opinions: +5")
	}

	report.Percentage = min(float64(report.Score)/EngagementMaxScore*100, 100)
	report.Recommendations = recommendations(len(segments), total, words, emojis, report.Score)
	return report
}

func recommendations(count int, total string, words map[string]struct{}, emojis, score int) []string {
	var out []string
	if score < 20 {
		out = append(out, "low engagement risk: consider major revisions")
	}
	if !strings.Contains(total, "?") {
		out = append(out, "add questions to encourage replies")
	}
	if !containsAny(total, []string{"share", "retweet", "thoughts", "drop", "comment"}) {
		out = append(out, "include call-to-action phrases")
	}
	if !strings.Contains(total, "#") {
		out = append(out, "add relevant hashtags")
	}
	switch {
	case emojis < 3:
		out = append(out, "add more emojis for visual appeal")
	case emojis > 10:
		out = append(out, "consider reducing emojis to avoid a spam appearance")
	}
	switch {
	case count < 3:
		out = append(out, "expand into a longer thread for more engagement")
	case count > 10:
		out = append(out, "consider condensing: very long threads lose engagement")
	}
	if !hasAnyWord(words, personalWords) && !containsAny(total, []string{"after", "experience"}) {
		out = append(out, "add personal experiences or stories for authenticity")
	}
	if !dataPointPattern.MatchString(total) {
		out = append(out, "include specific numbers or data for credibility")
	}
	switch {
	case score >= 40:
		out = append(out, "high engagement potential: good to go")
	case score >= 25:
		out = append(out, "moderate engagement: consider one or two improvements")
	}
	return out
}

// countEmojis counts runes in the emoticon, pictograph, transport and
// regional-indicator blocks.
func countEmojis(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r >= 0x1F600 && r <= 0x1F64F,
			r >= 0x1F300 && r <= 0x1F5FF,
			r >= 0x1F680 && r <= 0x1F6FF,
			r >= 0x1F1E0 && r <= 0x1F1FF:
			n++
		}
	}
	return n
}

func containsAny(s string, phrases []string) bool {
	return countContained(s, phrases) > 0
}

func countContained(s string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(s, p) {
			n++
		}
	}
	return n
}

// hasAnyWord matches whole words, ignoring surrounding punctuation.
func hasAnyWord(words map[string]struct{}, want []string) bool {
	for w := range words {
		trimmed := strings.Trim(w, ".,;:!?\"'()")
		for _, target := range want {
			if trimmed == target {
				return true
			}
		}
	}
	return false
}
