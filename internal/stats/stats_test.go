package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLanguagesOverTimeCumulatesPerBook(t *testing.T) {
	entries := []EntryRecord{
		{BookID: 1, Date: date(2020, 1, 5), Language: "English"},
		{BookID: 2, Date: date(2020, 1, 20), Language: "English"},
		{BookID: 3, Date: date(2020, 2, 1), Language: "English"},
		{BookID: 4, Date: date(2020, 1, 1), Language: "Japanese"},
	}

	series := LanguagesOverTime(entries, []string{"English", "Japanese"})

	english := series["English"]
	assert.Len(t, english, 2)
	assert.Equal(t, 2, english[0].Count)
	assert.Equal(t, 3, english[1].Count)

	assert.Len(t, series["Japanese"], 1)
}

func TestLanguagesOverTimeIgnoresUnlistedLanguages(t *testing.T) {
	entries := []EntryRecord{{BookID: 1, Date: date(2020, 1, 1), Language: "Spanish"}}
	series := LanguagesOverTime(entries, []string{"English"})
	assert.NotContains(t, series, "Spanish")
}

func TestSourcesOverTimeCountsEveryEntry(t *testing.T) {
	entries := []EntryRecord{
		{BookID: 1, Date: date(2020, 1, 1), Source: "eh"},
		{BookID: 1, Date: date(2020, 1, 2), Source: "eh"},
	}
	series := SourcesOverTime(entries)
	assert.Equal(t, 2, series["eh"][0].Count)
}

func TestPageCountHistogramBucketsAndDiscardsOutliers(t *testing.T) {
	buckets := PageCountHistogram([]int{5, 15, 105}, 100, 20)
	assert.Len(t, buckets, 20)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, 2, total) // the 105-page book is discarded
}

func TestCharacterPopularityOverTimeDropsInsignificantCharacters(t *testing.T) {
	var records []CharacterRecord
	for book := 0; book < 10; book++ {
		records = append(records, CharacterRecord{BookID: book, Date: date(2020, 1, 1), Character: "Popular"})
	}
	records = append(records, CharacterRecord{BookID: 100, Date: date(2020, 1, 1), Character: "Rare"})

	series := CharacterPopularityOverTime(records, 5)
	assert.Contains(t, series, "Popular")
	assert.NotContains(t, series, "Rare")
}
