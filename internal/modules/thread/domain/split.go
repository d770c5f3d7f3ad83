package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "threadsuite/internal/platform/errors"
)

// maxNumberingPasses bounds the budget/total fixed-point search. Each pass can
// only grow the total, and the annotation width grows with its digit count, so
// real inputs settle in two or three passes.
const maxNumberingPasses = 8

type SplitRequest struct {
	Body                string
	MaxLength           int
	ReserveForNumbering bool
}

// Segment is one post of a thread. Text is what gets posted, including any
// " (i/N)" annotation; Body is the slice of the normalized input it carries.
type Segment struct {
	Index   int
	Text    string
	Body    string
	IsFinal bool
	// HardBreak marks a segment that ends inside a word too long for the
	// budget. The next segment continues that word without a space.
	HardBreak bool
}

type chunk struct {
	text      string
	hardBreak bool
}

// Split partitions body into segments no longer than MaxLength characters.
// An empty body yields no segments and a single segment is never numbered.
func Split(req SplitRequest) ([]Segment, error) {
	if req.MaxLength < 1 {
		return nil, fmt.Errorf("%w: max length must be at least 1, got %d", apperrors.ErrBudgetTooSmall, req.MaxLength)
	}
	words := strings.Fields(req.Body)
	if len(words) == 0 {
		return []Segment{}, nil
	}

	chunks := pack(words, req.MaxLength)
	numbered := req.ReserveForNumbering && len(chunks) >= 2
	if numbered {
		var err error
		chunks, err = packNumbered(words, req.MaxLength, len(chunks))
		if err != nil {
			return nil, err
		}
	}
	return annotate(chunks, numbered), nil
}

// Normalize collapses whitespace runs to single spaces and trims the ends.
func Normalize(body string) string {
	return strings.Join(strings.Fields(body), " ")
}

// Join reassembles segment bodies into the normalized text they came from.
func Join(segments []Segment) string {
	var b strings.Builder
	for i, s := range segments {
		b.WriteString(s.Body)
		if i < len(segments)-1 && !s.HardBreak {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Length counts characters, not bytes.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

func packNumbered(words []string, maxLength, total int) ([]chunk, error) {
	for pass := 0; pass < maxNumberingPasses; pass++ {
		budget := maxLength - annotationWidth(total)
		if budget < 1 {
			return nil, fmt.Errorf("%w: %d characters cannot hold a %d-part annotation", apperrors.ErrBudgetTooSmall, maxLength, total)
		}
		chunks := pack(words, budget)
		if len(chunks) == total {
			return chunks, nil
		}
		total = len(chunks)
	}
	return nil, fmt.Errorf("%w: segment count did not settle after %d passes", apperrors.ErrBudgetTooSmall, maxNumberingPasses)
}

// annotationWidth is the length of the widest suffix " (N/N)" for total N.
func annotationWidth(total int) int {
	digits := len(strconv.Itoa(total))
	return len(" (/)") + 2*digits
}

func pack(words []string, budget int) []chunk {
	var (
		out    []chunk
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen == 0 {
			return
		}
		out = append(out, chunk{text: cur.String()})
		cur.Reset()
		curLen = 0
	}

	for _, w := range words {
		wl := utf8.RuneCountInString(w)
		if wl > budget {
			flush()
			for wl > budget {
				cut := runePrefix(w, budget)
				out = append(out, chunk{text: w[:cut], hardBreak: true})
				w = w[cut:]
				wl -= budget
			}
			cur.WriteString(w)
			curLen = wl
			continue
		}
		if curLen > 0 && curLen+1+wl > budget {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	flush()
	return out
}

// runePrefix returns the byte length of the first n characters of s. Invalid
// bytes count as one character each and are kept as they are.
func runePrefix(s string, n int) int {
	i := 0
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

func annotate(chunks []chunk, numbered bool) []Segment {
	segments := make([]Segment, len(chunks))
	for i, c := range chunks {
		text := c.text
		if numbered {
			text = fmt.Sprintf("%s (%d/%d)", c.text, i+1, len(chunks))
		}
		segments[i] = Segment{
			Index:     i + 1,
			Text:      text,
			Body:      c.text,
			IsFinal:   i == len(chunks)-1,
			HardBreak: c.hardBreak,
		}
	}
	return segments
}
