package domain

import (
	"strings"
)

type Placement struct {
	Segments []Segment
	Dropped  []string
}

// NormalizeHashtags prefixes each tag with '#', strips inner whitespace and
// drops empties and duplicates while keeping order.
func NormalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]struct{}{}
	for _, raw := range tags {
		tag := strings.Join(strings.Fields(raw), "")
		tag = strings.TrimLeft(tag, "#")
		if tag == "" {
			continue
		}
		tag = "#" + tag
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// PlaceHashtags appends tags to segment text without breaking maxLength.
// The final segment gets the whole block when it fits; otherwise tags fill
// the final segment, then the first, then the middle ones in turn.
func PlaceHashtags(segments []Segment, tags []string, maxLength int) Placement {
	out := append([]Segment(nil), segments...)
	tags = NormalizeHashtags(tags)
	if len(out) == 0 || len(tags) == 0 {
		return Placement{Segments: out, Dropped: tags}
	}

	last := len(out) - 1
	block := strings.Join(tags, " ")
	if Length(out[last].Text)+2+Length(block) <= maxLength {
		out[last].Text += "\n\n" + block
		return Placement{Segments: out}
	}

	remaining := tags
	priority := []int{last}
	if last != 0 {
		priority = append(priority, 0)
	}
	for _, idx := range priority {
		remaining = fill(&out[idx], remaining, maxLength)
		if len(remaining) == 0 {
			return Placement{Segments: out}
		}
	}

	var dropped []string
	middle := len(out) - 2
	for i, tag := range remaining {
		placed := false
		for j := 0; j < middle && !placed; j++ {
			idx := 1 + (i+j)%middle
			if Length(out[idx].Text)+1+Length(tag) <= maxLength {
				out[idx].Text += " " + tag
				placed = true
			}
		}
		if !placed {
			dropped = append(dropped, tag)
		}
	}
	return Placement{Segments: out, Dropped: dropped}
}

// fill appends leading tags to s while they fit and returns the rest.
func fill(s *Segment, tags []string, maxLength int) []string {
	used := Length(s.Text)
	n := 0
	for _, tag := range tags {
		if used+1+Length(tag) > maxLength {
			break
		}
		s.Text += " " + tag
		used += 1 + Length(tag)
		n++
	}
	return tags[n:]
}
