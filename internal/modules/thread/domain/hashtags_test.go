package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadsuite/internal/modules/thread/domain"
)

func TestNormalizeHashtags(t *testing.T) {
	t.Parallel()
	got := domain.NormalizeHashtags([]string{"drones", "#UAV", " ", "##uav", "aerial mapping"})
	assert.Equal(t, []string{"#drones", "#UAV", "#aerialmapping"}, got)
}

func TestPlaceHashtagsBlockOnFinalSegment(t *testing.T) {
	t.Parallel()
	segments, err := domain.Split(domain.SplitRequest{Body: "hello world", MaxLength: 280})
	require.NoError(t, err)

	placed := domain.PlaceHashtags(segments, []string{"drones", "#UAV"}, 280)
	require.Len(t, placed.Segments, 1)
	assert.Equal(t, "hello world\n\n#drones #UAV", placed.Segments[0].Text)
	assert.Equal(t, "hello world", placed.Segments[0].Body)
	assert.Empty(t, placed.Dropped)
	assert.Equal(t, "hello world", segments[0].Text, "input must not be mutated")
}

func TestPlaceHashtagsSpreadsWhenCrowded(t *testing.T) {
	t.Parallel()
	segments := []domain.Segment{
		{Index: 1, Text: "aaaaaaaaaa"},
		{Index: 2, Text: "bbbbbbbbbb"},
		{Index: 3, Text: "cccccccccccccccc", IsFinal: true},
	}
	placed := domain.PlaceHashtags(segments, []string{"#x1", "#y2", "#z3", "#w4"}, 20)

	assert.Equal(t, "aaaaaaaaaa #y2 #z3", placed.Segments[0].Text)
	assert.Equal(t, "bbbbbbbbbb #w4", placed.Segments[1].Text)
	assert.Equal(t, "cccccccccccccccc #x1", placed.Segments[2].Text)
	assert.Empty(t, placed.Dropped)
	for _, s := range placed.Segments {
		assert.LessOrEqual(t, domain.Length(s.Text), 20)
	}
}

func TestPlaceHashtagsDropsWhatDoesNotFit(t *testing.T) {
	t.Parallel()
	segments := []domain.Segment{
		{Index: 1, Text: "aaaaaaaaaaaaaaaaaaaa"},
		{Index: 2, Text: "bbbbbbbbbbbbbbbbbbbb", IsFinal: true},
	}
	placed := domain.PlaceHashtags(segments, []string{"#a"}, 20)
	assert.Equal(t, []string{"#a"}, placed.Dropped)
	assert.Equal(t, segments, placed.Segments)
}
