package entry

import (
	"fmt"
	"time"
)

// MBEntry is a Melonbooks product listing, identified by its numeric
// product id. The scraper in original_source/scripts/source_mb.py stores
// only the raw detail-page HTML and a thumbnail; RawTitle is parsed out of
// that page by the collaborator constructing this record.
type MBEntry struct {
	ProductID int
	RawTitle  string
	Thumbnail []byte
}

var _ Entry = (*MBEntry)(nil)

func (e *MBEntry) Key() string    { return fmt.Sprintf("mb-%d", e.ProductID) }
func (e *MBEntry) Source() Source { return SourceMelon }

func (e *MBEntry) Title() string { return e.RawTitle }

func (e *MBEntry) BookTitleCandidates() []string {
	return []string{e.RawTitle}
}

func (e *MBEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *MBEntry) Date() (time.Time, bool) { return time.Time{}, false }

func (e *MBEntry) URL() (string, bool) {
	return fmt.Sprintf("https://www.melonbooks.co.jp/detail/detail.php?product_id=%d", e.ProductID), true
}

func (e *MBEntry) Language() (string, bool) { return "", false }
func (e *MBEntry) PageCount() (int, bool)   { return 0, false }

func (e *MBEntry) CharactersCertain() []string   { return nil }
func (e *MBEntry) CharactersPlausible() []string { return nil }
func (e *MBEntry) Pairings() []Pairing           { return nil }
func (e *MBEntry) TagsCertain() []string         { return nil }
func (e *MBEntry) TagsPlausible() []string       { return nil }

// Artists is empty: the Melonbooks scraper carries no structured author
// data, tracked as an open TODO upstream (§9).
func (e *MBEntry) Artists() []string { return nil }

func (e *MBEntry) Descriptions() map[string]string { return nil }

func (e *MBEntry) CommentsCount() (int, bool) { return 0, false }

func (e *MBEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *MBEntry) LinkedEntries() []Entry { return nil }
