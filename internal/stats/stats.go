// Package stats computes read-only time-series aggregates over a built
// index, the Go equivalent of
// original_source/scripts/collate_statistics.py. It is an external
// collaborator of the core index builder: spec.md §1 explicitly scopes
// "statistics/graph generation" out of C1-C8, so this package only reads
// an already-built index, mirroring the relationship the spec draws for
// the web front-end.
package stats

import (
	"sort"
	"time"
)

// EntryRecord is the minimal per-entry view stats needs: one row per
// (book, source) entry in the index, as read from indexstore.Entry joined
// against its source prefix.
type EntryRecord struct {
	BookID   int
	Date     time.Time
	Language string
	Source   string
}

// CharacterRecord is one (book, character) association, as read from
// indexstore's book_character join restricted to the earliest Date of any
// entry belonging to that book (mirroring collate_statistics.py's
// `fn.Min(IndexEntry.date)` grouping).
type CharacterRecord struct {
	BookID    int
	Date      time.Time
	Character string
}

// MonthPoint is one (month, cumulative count) sample of a time series.
type MonthPoint struct {
	Month time.Time
	Count int
}

// monthStart truncates t to the first instant of its calendar month in UTC,
// the series' resampling bucket ("1M" in the original pandas pipeline).
func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// cumulativeByMonth buckets keyed items by month, then returns each key's
// series as a cumulative (running-total) count ordered by month, matching
// the original's `.resample("1M").count().groupby(key).cumsum()` pipeline.
// Every date passed in is counted; since a book can own several
// same-language entries, callers dedupe by book before calling this where
// that matters.
func cumulativeByMonth(dates map[string][]time.Time) map[string][]MonthPoint {
	out := make(map[string][]MonthPoint, len(dates))
	for key, ds := range dates {
		counts := make(map[time.Time]int)
		for _, d := range ds {
			counts[monthStart(d)]++
		}

		months := make([]time.Time, 0, len(counts))
		for m := range counts {
			months = append(months, m)
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

		running := 0
		points := make([]MonthPoint, 0, len(months))
		for _, m := range months {
			running += counts[m]
			points = append(points, MonthPoint{Month: m, Count: running})
		}
		out[key] = points
	}
	return out
}

// dedupeEarliestDateByBook keeps, for each book, the earliest date recorded
// for that (book, key) pair, mirroring `fn.Min(IndexEntry.date)` grouped by
// (book, key) in the original queries.
func dedupeEarliestDateByBook(bookID int, key string, date time.Time, earliest map[string]map[int]time.Time) {
	byBook, ok := earliest[key]
	if !ok {
		byBook = make(map[int]time.Time)
		earliest[key] = byBook
	}
	if existing, ok := byBook[bookID]; !ok || date.Before(existing) {
		byBook[bookID] = date
	}
}

// LanguagesOverTime computes the cumulative book count per language over
// time, restricted to languages, per graph_languages_over_time.
func LanguagesOverTime(entries []EntryRecord, languages []string) map[string][]MonthPoint {
	wanted := make(map[string]bool, len(languages))
	for _, l := range languages {
		wanted[l] = true
	}

	earliest := make(map[string]map[int]time.Time)
	for _, e := range entries {
		if !wanted[e.Language] {
			continue
		}
		dedupeEarliestDateByBook(e.BookID, e.Language, e.Date, earliest)
	}
	return cumulativeByMonth(flattenEarliest(earliest))
}

// SourcesOverTime computes the cumulative entry count per source website
// over time, per graph_websites_over_time. Unlike LanguagesOverTime this
// counts every entry, not one per book, since an entry (not a book) belongs
// to exactly one source.
func SourcesOverTime(entries []EntryRecord) map[string][]MonthPoint {
	dates := make(map[string][]time.Time)
	for _, e := range entries {
		dates[e.Source] = append(dates[e.Source], e.Date)
	}
	return cumulativeByMonth(dates)
}

// HistogramBucket is one bucket of PageCountHistogram's output.
type HistogramBucket struct {
	// UpperBound is the bucket's exclusive upper page-count bound, except
	// that the last bucket also holds books with exactly maxPages pages.
	UpperBound int
	Count      int
}

// PageCountHistogram bins the maximum page count declared per book into
// bins buckets spanning [0, maxPages], discarding books over maxPages, per
// graph_page_counts (which fixes maxPages=100, bins=20).
func PageCountHistogram(maxPageCountByBook []int, maxPages, bins int) []HistogramBucket {
	if bins <= 0 {
		bins = 1
	}
	width := maxPages / bins
	if width <= 0 {
		width = 1
	}

	counts := make([]int, bins)
	for _, pages := range maxPageCountByBook {
		if pages > maxPages {
			continue
		}
		bucket := pages / width
		if bucket >= bins {
			bucket = bins - 1
		}
		counts[bucket]++
	}

	out := make([]HistogramBucket, bins)
	for i := range out {
		out[i] = HistogramBucket{UpperBound: (i + 1) * width, Count: counts[i]}
	}
	return out
}

// CharacterPopularityOverTime computes the cumulative book count per
// character over time, restricted to characters whose cumulative count
// ever exceeds significanceThreshold, per graph_characters_over_time
// (which fixes significanceThreshold=500).
func CharacterPopularityOverTime(records []CharacterRecord, significanceThreshold int) map[string][]MonthPoint {
	earliest := make(map[string]map[int]time.Time)
	for _, r := range records {
		dedupeEarliestDateByBook(r.BookID, r.Character, r.Date, earliest)
	}

	series := cumulativeByMonth(flattenEarliest(earliest))
	for character, points := range series {
		significant := false
		for _, p := range points {
			if p.Count > significanceThreshold {
				significant = true
				break
			}
		}
		if !significant {
			delete(series, character)
		}
	}
	return series
}

func flattenEarliest(earliest map[string]map[int]time.Time) map[string][]time.Time {
	out := make(map[string][]time.Time, len(earliest))
	for key, byBook := range earliest {
		dates := make([]time.Time, 0, len(byBook))
		for _, d := range byBook {
			dates = append(dates, d)
		}
		out[key] = dates
	}
	return out
}
