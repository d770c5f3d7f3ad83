package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadsuite/internal/modules/thread/domain"
	apperrors "threadsuite/internal/platform/errors"
)

const corpus = `Commercial drone inspections have quietly replaced rope access on most
wind farms. Crews that once spent a week on a single turbine now finish the
survey in an afternoon, and the thermal imagery catches delamination that a
technician on a harness would never see. The hard part is no longer flying:
it is deciding which of the thousands of frames actually deserve a human look,
and building the habit of trusting the model when it says a blade is fine.`

func TestSplitEmptyBody(t *testing.T) {
	t.Parallel()
	for _, body := range []string{"", "   \n\t "} {
		segments, err := domain.Split(domain.SplitRequest{Body: body, MaxLength: 280, ReserveForNumbering: true})
		require.NoError(t, err)
		assert.Empty(t, segments)
	}
}

func TestSplitSingleSegmentIsNotNumbered(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: "hello world", MaxLength: 280, ReserveForNumbering: true})
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, domain.Segment{Index: 1, Text: "hello world", Body: "hello world", IsFinal: true}, segments[0])
}

func TestSplitNormalizesWhitespace(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: "  a\t\tb \n\n c  d  ", MaxLength: 280})
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "a b c d", segments[0].Text)
}

func TestSplitFiveLongWords(t *testing.T) {
	t.Parallel()
	words := make([]string, 5)
	for i := range words {
		words[i] = strings.Repeat(string(rune('a'+i)), 100)
	}
	body := strings.Join(words, " ")
	require.Equal(t, 504, len(body))

	segments, err := domain.Split(domain.SplitRequest{Body: body, MaxLength: 280, ReserveForNumbering: true})
	require.NoError(t, err)

	// Two 100-character words plus a separator is 201; a third would need 302.
	require.Len(t, segments, 3)
	var bodies []string
	for i, s := range segments {
		suffix := fmt.Sprintf(" (%d/3)", i+1)
		assert.True(t, strings.HasSuffix(s.Text, suffix), "segment %d text %q", i+1, s.Text)
		assert.LessOrEqual(t, domain.Length(s.Text), 280)
		assert.Equal(t, strings.TrimSuffix(s.Text, suffix), s.Body)
		bodies = append(bodies, s.Body)
	}
	assert.Equal(t, strings.Fields(body), strings.Fields(strings.Join(bodies, " ")))
	assert.Equal(t, words[0]+" "+words[1], segments[0].Body)
	assert.Equal(t, words[4], segments[2].Body)
}

func TestSplitBudgetTooSmall(t *testing.T) {
	t.Parallel()
	_, err := domain.Split(domain.SplitRequest{Body: "hello world", MaxLength: 1, ReserveForNumbering: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrBudgetTooSmall))

	_, err = domain.Split(domain.SplitRequest{Body: "hello", MaxLength: 0})
	assert.ErrorIs(t, err, apperrors.ErrBudgetTooSmall)
}

func TestSplitTinyBudgetWithoutNumbering(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: "hello world", MaxLength: 1})
	require.NoError(t, err)
	assert.Len(t, segments, 10)
	assert.Equal(t, "helloworld", strings.ReplaceAll(domain.Join(segments), " ", ""))
}

func TestSplitHardBreaksLongWords(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: "abcdefghij xy", MaxLength: 4})
	require.NoError(t, err)

	var texts []string
	var breaks []bool
	for _, s := range segments {
		texts = append(texts, s.Text)
		breaks = append(breaks, s.HardBreak)
	}
	assert.Equal(t, []string{"abcd", "efgh", "ij", "xy"}, texts)
	assert.Equal(t, []bool{true, true, false, false}, breaks)
	assert.Equal(t, "abcdefghij xy", domain.Join(segments))
}

func TestSplitNumberingCrossesDigitBoundary(t *testing.T) {
	t.Parallel()
	body := strings.TrimSpace(strings.Repeat("abcde ", 18))

	plain, err := domain.Split(domain.SplitRequest{Body: body, MaxLength: 16})
	require.NoError(t, err)
	require.Len(t, plain, 9)

	segments, err := domain.Split(domain.SplitRequest{Body: body, MaxLength: 16, ReserveForNumbering: true})
	require.NoError(t, err)
	require.Len(t, segments, 18)
	assert.Equal(t, "abcde (1/18)", segments[0].Text)
	assert.Equal(t, "abcde (18/18)", segments[17].Text)
	assert.True(t, segments[17].IsFinal)
}

func TestSplitCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: "héllo wörld", MaxLength: 5})
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "héllo", segments[0].Text)
	assert.Equal(t, "wörld", segments[1].Text)
}

func TestSplitHardBreakKeepsInvalidUTF8Bytes(t *testing.T) {
	t.Parallel()
	body := "ab\xffcd\xfeé ok"
	segments, err := domain.Split(domain.SplitRequest{Body: body, MaxLength: 3})
	require.NoError(t, err)

	var texts []string
	for _, s := range segments {
		texts = append(texts, s.Body)
		assert.LessOrEqual(t, domain.Length(s.Text), 3)
	}
	assert.Equal(t, []string{"ab\xff", "cd\xfe", "é", "ok"}, texts)
	assert.Equal(t, domain.Normalize(body), domain.Join(segments))
	assert.NotContains(t, domain.Join(segments), "\uFFFD")
}

func TestSplitInvariants(t *testing.T) {
	t.Parallel()
	for maxLength := 12; maxLength <= 300; maxLength += 7 {
		for _, numbered := range []bool{false, true} {
			req := domain.SplitRequest{Body: corpus, MaxLength: maxLength, ReserveForNumbering: numbered}
			segments, err := domain.Split(req)
			if errors.Is(err, apperrors.ErrBudgetTooSmall) && maxLength < 40 {
				continue
			}
			require.NoError(t, err, "max=%d numbered=%v", maxLength, numbered)
			require.NotEmpty(t, segments)

			finals := 0
			for i, s := range segments {
				assert.Equal(t, i+1, s.Index)
				assert.NotEmpty(t, s.Body)
				assert.LessOrEqual(t, domain.Length(s.Text), maxLength, "max=%d segment=%d", maxLength, s.Index)
				if s.IsFinal {
					finals++
				}
				if numbered && len(segments) > 1 {
					assert.Equal(t, fmt.Sprintf("%s (%d/%d)", s.Body, s.Index, len(segments)), s.Text)
				} else {
					assert.Equal(t, s.Body, s.Text)
				}
			}
			assert.Equal(t, 1, finals)
			assert.True(t, segments[len(segments)-1].IsFinal)
			assert.Equal(t, domain.Normalize(corpus), domain.Join(segments))
		}
	}
}

func TestSplitIsDeterministic(t *testing.T) {
	t.Parallel()
	req := domain.SplitRequest{Body: corpus, MaxLength: 90, ReserveForNumbering: true}
	first, err := domain.Split(req)
	require.NoError(t, err)
	second, err := domain.Split(req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
