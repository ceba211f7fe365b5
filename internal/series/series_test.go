package series

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nanoskript/touhou-index/internal/entry"
)

func TestCoalesceDropsSingletonSeries(t *testing.T) {
	result := Coalesce([][]entry.SeriesHint{
		{{Key: "s1", Title: "Lonely Series", Comments: 3}},
	})
	assert.Empty(t, result.Series)
	assert.Empty(t, result.BookSeries)
}

func TestCoalesceMergesSharedSeriesAcrossBooks(t *testing.T) {
	result := Coalesce([][]entry.SeriesHint{
		{{Key: "s1", Title: "Series One", Comments: 2}},
		{{Key: "s1", Title: "Series One", Comments: 2}},
	})
	assert := assert.New(t)
	assert.Len(result.Series, 1)
	assert.Equal("s1", result.Series[0].Key)
	assert.Equal(0, result.BookSeries[0])
	assert.Equal(0, result.BookSeries[1])
}

func TestCoalesceUnionsConsecutiveKeysWithinSameList(t *testing.T) {
	result := Coalesce([][]entry.SeriesHint{
		{
			{Key: "s1", Title: "Series One", Comments: 1},
			{Key: "s2", Title: "Series Two", Comments: 4},
		},
		{{Key: "s2", Title: "Series Two", Comments: 4}},
	})
	assert := assert.New(t)
	assert.Len(result.Series, 1)
	// s1 was inserted first, so it becomes the super-series root.
	assert.Equal("s1", result.Series[0].Key)
	assert.Equal("Series One", result.Series[0].Title)
	// Comments summed across merged series: 1 (s1) + 4 (s2).
	assert.Equal(5, result.Series[0].Comments)
	assert.Equal(0, result.BookSeries[0])
	assert.Equal(0, result.BookSeries[1])
}

func TestCoalesceFirstNonEmptyHintDeterminesBookMembership(t *testing.T) {
	// Book 0 declares s1 then s2 (unioned together); book 1 only declares
	// s2 independently but alone -- still joins the s1/s2 super-series
	// because s2 was already merged into it by book 0.
	result := Coalesce([][]entry.SeriesHint{
		{
			{Key: "s1", Title: "Series One", Comments: 0},
			{Key: "s2", Title: "Series Two", Comments: 0},
		},
		{{Key: "s2", Title: "Series Two", Comments: 0}},
		{{Key: "s3", Title: "Unrelated", Comments: 0}}, // singleton, dropped
	})
	assert := assert.New(t)
	assert.Len(result.Series, 1)
	assert.Equal(0, result.BookSeries[0])
	assert.Equal(0, result.BookSeries[1])
	_, has := result.BookSeries[2]
	assert.False(has)
}
