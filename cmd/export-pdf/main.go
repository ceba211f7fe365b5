// Command export-pdf renders a single book's canonical thumbnail to a
// one-page PDF "index card" and writes its main title and merged
// descriptions to a companion text file, for archival export. This is
// supplemental (SPEC_FULL.md §5.1): not in the distilled spec, but an easy
// extension of the teacher's PDF-assembly machinery (Client.savePDF uses
// the same pdfcpu api.ImportImages call).
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pkg/errors"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: export-pdf <book-id>")
		os.Exit(1)
	}
	bookID, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "book-id must be an integer")
		os.Exit(1)
	}

	if err := run(context.Background(), bookID); err != nil {
		fmt.Fprintln(os.Stderr, "export-pdf:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, bookID int) error {
	pool, err := pgxpool.New(ctx, os.Getenv("TOUHOU_INDEX_DATABASE_URL"))
	if err != nil {
		return errors.Wrap(err, "export-pdf: open pool")
	}
	defer pool.Close()

	var mainTitle string
	var thumbnail []byte
	row := pool.QueryRow(ctx, `
		SELECT b.main_title, t.data
		FROM book b JOIN thumbnail t ON t.id = b.thumbnail
		WHERE b.id = $1`, bookID)
	if err := row.Scan(&mainTitle, &thumbnail); err != nil {
		return errors.Wrap(err, "export-pdf: load book")
	}

	descriptions, err := loadDescriptions(ctx, pool, bookID)
	if err != nil {
		return err
	}

	out, err := os.Create(fmt.Sprintf("book-%d.pdf", bookID))
	if err != nil {
		return errors.Wrap(err, "export-pdf: create output file")
	}
	defer out.Close()

	if err := assemble(thumbnail, out); err != nil {
		return err
	}
	return writeDescriptions(fmt.Sprintf("book-%d.txt", bookID), mainTitle, descriptions)
}

func loadDescriptions(ctx context.Context, pool *pgxpool.Pool, bookID int) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT name, details FROM book_description WHERE book = $1`, bookID)
	if err != nil {
		return nil, errors.Wrap(err, "export-pdf: load descriptions")
	}
	defer rows.Close()

	descriptions := make(map[string]string)
	for rows.Next() {
		var name, details string
		if err := rows.Scan(&name, &details); err != nil {
			return nil, err
		}
		descriptions[name] = details
	}
	return descriptions, rows.Err()
}

// assemble mirrors the teacher's Client.savePDF: convert the thumbnail to a
// reader and hand it to pdfcpu's single-page-per-image importer, producing
// a one-page PDF cover. Merged descriptions have no image representation,
// so they are written alongside the PDF as a companion text file rather
// than forced into a pdfcpu watermark call.
func assemble(thumbnail []byte, out io.Writer) error {
	images := []io.Reader{bytes.NewReader(thumbnail)}
	if err := api.ImportImages(nil, out, images, nil, nil); err != nil {
		return errors.Wrap(err, "export-pdf: import thumbnail")
	}
	return nil
}

func writeDescriptions(path, mainTitle string, descriptions map[string]string) error {
	var body bytes.Buffer
	fmt.Fprintf(&body, "%s\n", mainTitle)
	for name, details := range descriptions {
		fmt.Fprintf(&body, "\n%s\n%s\n", name, details)
	}
	return os.WriteFile(path, body.Bytes(), 0o644)
}
