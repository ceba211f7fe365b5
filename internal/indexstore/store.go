// Package indexstore implements the relational index schema and atomic
// rebuild transaction of §6: the output side of C8, written by the builder
// and read by the (external) front-end.
package indexstore

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/nanoskript/touhou-index/internal/logger"
)

// Error is the sentinel error type for indexstore operations.
type Error string

func (e Error) Error() string {
	return "indexstore: " + string(e)
}

// Options configures Store, following the teacher's Options/DefaultOptions
// idiom rather than ambient configuration.
type Options struct {
	DatabaseURL string
	BatchSize   int
	Logger      *logger.Logger
}

// DefaultOptions returns sensible Store defaults; DatabaseURL must still be
// set by the caller.
func DefaultOptions() Options {
	return Options{
		BatchSize: 10000,
		Logger:    logger.New(),
	}
}

// Store wraps a pgx connection pool targeting the schema in §6.
type Store struct {
	pool    *pgxpool.Pool
	options Options
}

// Open connects to the configured Postgres instance and returns a ready
// Store. Callers must call Close when done.
func Open(ctx context.Context, options Options) (*Store, error) {
	if options.BatchSize <= 0 {
		options.BatchSize = 10000
	}
	if options.Logger == nil {
		options.Logger = logger.New()
	}

	pool, err := pgxpool.New(ctx, options.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "indexstore: open pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "indexstore: ping")
	}
	return &Store{pool: pool, options: options}, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Thumbnail is the thumbnail table's row shape.
type Thumbnail struct {
	ID   string
	Data []byte
}

// Series is the series table's row shape.
type Series struct {
	ID       int
	Title    string
	Comments *int
}

// Book is the book table's row shape.
type Book struct {
	ID          int
	MainTitle   string
	SeriesID    *int
	ThumbnailID string
}

// BookTitle is one row of book_title.
type BookTitle struct {
	BookID int
	Title  string
}

// BookDescription is one row of book_description.
type BookDescription struct {
	BookID  int
	Name    string
	Details string
}

// BookJoin is one row of a book/named-set join table (book_artist,
// book_tag, book_character). A slice, rather than a map keyed by book id,
// keeps row order under the caller's control so repeated rebuilds from
// identical input produce byte-identical tables (§8 testable property 5).
type BookJoin struct {
	BookID int
	Name   string
}

// Entry is the entry table's row shape.
type Entry struct {
	ID        string
	BookID    int
	Title     string
	URL       *string
	Date      *time.Time
	Language  *string
	PageCount *int
	Comments  *int
}

// Snapshot holds every row of the index tables, as assembled by the builder
// and written by Rebuild.
type Snapshot struct {
	Thumbnails       []Thumbnail
	Series           []Series
	Books            []Book
	BookTitles       []BookTitle
	BookDescriptions []BookDescription
	Artists          []string
	BookArtists      []BookJoin
	Tags             []string
	BookTags         []BookJoin
	Characters       []string
	BookCharacters   []BookJoin
	Languages        []string
	Entries          []Entry
}

// Rebuild is the full atomic rebuild of §4.8 step 6: drop and recreate
// every index table, then batch-insert the assembled Snapshot. Any failure
// rolls back the entire transaction, so a prior index remains visible to
// readers (§7's "Index-store write failure" policy).
func (s *Store) Rebuild(ctx context.Context, snapshot Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "indexstore: begin rebuild transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op once committed

	if err := execAll(ctx, tx, dropStatements); err != nil {
		return errors.Wrap(err, "indexstore: drop tables")
	}
	if err := execAll(ctx, tx, createStatements); err != nil {
		return errors.Wrap(err, "indexstore: create tables")
	}

	batchSize := s.options.BatchSize
	if err := insertThumbnails(ctx, tx, snapshot.Thumbnails, batchSize); err != nil {
		return err
	}
	if err := insertSeries(ctx, tx, snapshot.Series, batchSize); err != nil {
		return err
	}
	if err := insertBooks(ctx, tx, snapshot.Books, batchSize); err != nil {
		return err
	}
	if err := insertBookTitles(ctx, tx, snapshot.BookTitles, batchSize); err != nil {
		return err
	}
	if err := insertBookDescriptions(ctx, tx, snapshot.BookDescriptions, batchSize); err != nil {
		return err
	}
	if err := insertNamedSet(ctx, tx, "artist", snapshot.Artists, batchSize); err != nil {
		return err
	}
	if err := insertBookJoin(ctx, tx, "book_artist", "artist", snapshot.BookArtists, batchSize); err != nil {
		return err
	}
	if err := insertNamedSet(ctx, tx, "tag", snapshot.Tags, batchSize); err != nil {
		return err
	}
	if err := insertBookJoin(ctx, tx, "book_tag", "tag", snapshot.BookTags, batchSize); err != nil {
		return err
	}
	if err := insertNamedSet(ctx, tx, "character", snapshot.Characters, batchSize); err != nil {
		return err
	}
	if err := insertBookJoin(ctx, tx, "book_character", "character", snapshot.BookCharacters, batchSize); err != nil {
		return err
	}
	if err := insertNamedSet(ctx, tx, "language", snapshot.Languages, batchSize); err != nil {
		return err
	}
	if err := insertEntries(ctx, tx, snapshot.Entries, batchSize); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "indexstore: commit rebuild transaction")
	}
	s.options.Logger.Log("rebuilt index: %d books, %d entries", len(snapshot.Books), len(snapshot.Entries))
	return nil
}

func execAll(ctx context.Context, tx pgx.Tx, statements []string) error {
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func inBatches(n, batchSize int, fn func(start, end int) error) error {
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		if err := fn(start, end); err != nil {
			return err
		}
	}
	return nil
}

func insertThumbnails(ctx context.Context, tx pgx.Tx, rows []Thumbnail, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO thumbnail (id, data) VALUES ($1, $2)`, r.ID, r.Data)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func insertSeries(ctx context.Context, tx pgx.Tx, rows []Series, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO series (id, title, comments) VALUES ($1, $2, $3)`, r.ID, r.Title, r.Comments)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func insertBooks(ctx context.Context, tx pgx.Tx, rows []Book, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO book (id, main_title, series, thumbnail) VALUES ($1, $2, $3, $4)`,
				r.ID, r.MainTitle, r.SeriesID, r.ThumbnailID)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func insertBookTitles(ctx context.Context, tx pgx.Tx, rows []BookTitle, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO book_title (book, title) VALUES ($1, $2)`, r.BookID, r.Title)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func insertBookDescriptions(ctx context.Context, tx pgx.Tx, rows []BookDescription, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO book_description (book, name, details) VALUES ($1, $2, $3)`,
				r.BookID, r.Name, r.Details)
		}
		return sendBatch(ctx, tx, batch)
	})
}

// insertNamedSet writes to a name-keyed set table (artist, tag,
// "character", "language"). table is double-quoted unconditionally: quoting
// is always legal in Postgres and sidesteps needing this generic helper to
// know which table names happen to be reserved words.
func insertNamedSet(ctx context.Context, tx pgx.Tx, table string, names []string, batchSize int) error {
	return inBatches(len(names), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, name := range names[start:end] {
			batch.Queue(`INSERT INTO "`+table+`" (name) VALUES ($1)`, name)
		}
		return sendBatch(ctx, tx, batch)
	})
}

// insertBookJoin writes a book/named-set join table (book_artist,
// book_tag, book_character). column is double-quoted for the same reason
// as insertNamedSet's table.
func insertBookJoin(ctx context.Context, tx pgx.Tx, joinTable, column string, rows []BookJoin, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO `+joinTable+` (book, "`+column+`") VALUES ($1, $2)`, r.BookID, r.Name)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func insertEntries(ctx context.Context, tx pgx.Tx, rows []Entry, batchSize int) error {
	return inBatches(len(rows), batchSize, func(start, end int) error {
		batch := &pgx.Batch{}
		for _, r := range rows[start:end] {
			batch.Queue(`INSERT INTO entry (id, book, title, url, date, "language", page_count, comments)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				r.ID, r.BookID, r.Title, r.URL, r.Date, r.Language, r.PageCount, r.Comments)
		}
		return sendBatch(ctx, tx, batch)
	})
}

func sendBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
