package entry

import (
	"fmt"
	"time"
)

// PXEntry is a Pixiv illustration's metadata, resolved via a Danbooru pool's
// pixiv_id (§4.1 step 4, original_source/scripts/source_px.py). It never
// appears as a clustering root: it only surfaces through a DBEntry's
// LinkedEntries.
type PXEntry struct {
	IllustID  int
	RawTitle  string
	Artist    string
	Thumbnail []byte
	PostedAt  time.Time
}

var _ Entry = (*PXEntry)(nil)

func (e *PXEntry) Key() string    { return fmt.Sprintf("px-%d", e.IllustID) }
func (e *PXEntry) Source() Source { return SourcePixiv }

func (e *PXEntry) Title() string { return e.RawTitle }

func (e *PXEntry) BookTitleCandidates() []string {
	return []string{e.RawTitle}
}

func (e *PXEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *PXEntry) Date() (time.Time, bool) {
	if e.PostedAt.IsZero() {
		return time.Time{}, false
	}
	return e.PostedAt.UTC(), true
}

func (e *PXEntry) URL() (string, bool) {
	return fmt.Sprintf("https://www.pixiv.net/artworks/%d", e.IllustID), true
}

func (e *PXEntry) Language() (string, bool) { return "", false }
func (e *PXEntry) PageCount() (int, bool)   { return 0, false }

func (e *PXEntry) CharactersCertain() []string   { return nil }
func (e *PXEntry) CharactersPlausible() []string { return nil }
func (e *PXEntry) Pairings() []Pairing           { return nil }
func (e *PXEntry) TagsCertain() []string         { return nil }
func (e *PXEntry) TagsPlausible() []string       { return nil }

func (e *PXEntry) Artists() []string {
	if e.Artist == "" {
		return nil
	}
	return []string{e.Artist}
}

func (e *PXEntry) Descriptions() map[string]string { return nil }

func (e *PXEntry) CommentsCount() (int, bool) { return 0, false }

func (e *PXEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *PXEntry) LinkedEntries() []Entry { return nil }
