package entry

import (
	"fmt"
	"time"
)

// ToraEntry is a Toranoana product listing, identified by its catalogue
// product id. As with Melonbooks, the scraper in
// original_source/scripts/source_tora.py stores only the raw product-page
// HTML; RawTitle is parsed out of that page by the collaborator
// constructing this record.
type ToraEntry struct {
	ProductID string
	RawTitle  string
	Thumbnail []byte
}

var _ Entry = (*ToraEntry)(nil)

func (e *ToraEntry) Key() string    { return fmt.Sprintf("tora-%s", e.ProductID) }
func (e *ToraEntry) Source() Source { return SourceTora }

func (e *ToraEntry) Title() string { return e.RawTitle }

func (e *ToraEntry) BookTitleCandidates() []string {
	return []string{e.RawTitle}
}

func (e *ToraEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *ToraEntry) Date() (time.Time, bool) { return time.Time{}, false }

func (e *ToraEntry) URL() (string, bool) {
	return fmt.Sprintf("https://ecs.toranoana.jp/tora/ec/item/%s/", e.ProductID), true
}

func (e *ToraEntry) Language() (string, bool) { return "", false }
func (e *ToraEntry) PageCount() (int, bool)   { return 0, false }

func (e *ToraEntry) CharactersCertain() []string   { return nil }
func (e *ToraEntry) CharactersPlausible() []string { return nil }
func (e *ToraEntry) Pairings() []Pairing           { return nil }
func (e *ToraEntry) TagsCertain() []string         { return nil }
func (e *ToraEntry) TagsPlausible() []string       { return nil }

// Artists is empty: the Toranoana scraper carries no structured author
// data, tracked as an open TODO upstream (§9).
func (e *ToraEntry) Artists() []string { return nil }

func (e *ToraEntry) Descriptions() map[string]string { return nil }

func (e *ToraEntry) CommentsCount() (int, bool) { return 0, false }

func (e *ToraEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *ToraEntry) LinkedEntries() []Entry { return nil }
