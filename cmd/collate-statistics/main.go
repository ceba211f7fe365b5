// Command collate-statistics computes the supplemental time-series
// aggregates of internal/stats over an already-built index and writes
// them as a single JSON blob, the Go equivalent of
// original_source/scripts/collate_statistics.py's main(). It is a
// read-only consumer of the index store, explicitly out of scope for the
// core per spec.md §1 but part of a complete repo (SPEC_FULL.md §5.1).
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/nanoskript/touhou-index/internal/logger"
	"github.com/nanoskript/touhou-index/internal/stats"
)

var significantLanguages = []string{"Japanese", "English", "Chinese", "Spanish"}

const characterSignificanceThreshold = 500

func main() {
	log := logger.New()
	log.SetPrefix("collate-statistics")
	log.SetOutput(os.Stdout)

	if err := run(context.Background(), log); err != nil {
		log.Log("failed: %v", err)
		os.Exit(1)
	}
	log.Log("done")
}

func run(ctx context.Context, log *logger.Logger) error {
	pool, err := pgxpool.New(ctx, os.Getenv("TOUHOU_INDEX_DATABASE_URL"))
	if err != nil {
		return errors.Wrap(err, "collate-statistics: open pool")
	}
	defer pool.Close()

	entries, err := readEntries(ctx, pool)
	if err != nil {
		return err
	}
	characters, err := readCharacters(ctx, pool)
	if err != nil {
		return err
	}
	maxPages, err := readMaxPageCountByBook(ctx, pool)
	if err != nil {
		return err
	}

	output := map[string]any{
		"languages":  stats.LanguagesOverTime(entries, significantLanguages),
		"sources":    stats.SourcesOverTime(entries),
		"pageCounts": stats.PageCountHistogram(maxPages, 100, 20),
		"characters": stats.CharacterPopularityOverTime(characters, characterSignificanceThreshold),
	}

	path := getEnv("TOUHOU_INDEX_STATISTICS_OUTPUT", "./data/statistics.json")
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return errors.Wrap(err, "collate-statistics: marshal output")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "collate-statistics: write output")
	}
	log.Log("wrote %s", path)
	return nil
}

func readEntries(ctx context.Context, pool *pgxpool.Pool) ([]stats.EntryRecord, error) {
	rows, err := pool.Query(ctx, `
		SELECT book, date, "language", substring(id from '^[a-z]+') AS source
		FROM entry
		WHERE date IS NOT NULL`)
	if err != nil {
		return nil, errors.Wrap(err, "collate-statistics: query entries")
	}
	defer rows.Close()

	var out []stats.EntryRecord
	for rows.Next() {
		var (
			bookID   int
			date     time.Time
			language *string
			source   string
		)
		if err := rows.Scan(&bookID, &date, &language, &source); err != nil {
			return nil, err
		}
		lang := ""
		if language != nil {
			lang = *language
		}
		out = append(out, stats.EntryRecord{BookID: bookID, Date: date, Language: lang, Source: source})
	}
	return out, rows.Err()
}

func readCharacters(ctx context.Context, pool *pgxpool.Pool) ([]stats.CharacterRecord, error) {
	rows, err := pool.Query(ctx, `
		SELECT bc.book, MIN(e.date), bc."character"
		FROM book_character bc
		JOIN entry e ON e.book = bc.book
		WHERE e.date IS NOT NULL
		GROUP BY bc.book, bc."character"`)
	if err != nil {
		return nil, errors.Wrap(err, "collate-statistics: query characters")
	}
	defer rows.Close()

	var out []stats.CharacterRecord
	for rows.Next() {
		var r stats.CharacterRecord
		if err := rows.Scan(&r.BookID, &r.Date, &r.Character); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func readMaxPageCountByBook(ctx context.Context, pool *pgxpool.Pool) ([]int, error) {
	rows, err := pool.Query(ctx, `
		SELECT MAX(page_count)
		FROM entry
		WHERE page_count IS NOT NULL
		GROUP BY book`)
	if err != nil {
		return nil, errors.Wrap(err, "collate-statistics: query page counts")
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var pages int
		if err := rows.Scan(&pages); err != nil {
			return nil, err
		}
		out = append(out, pages)
	}
	return out, rows.Err()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
