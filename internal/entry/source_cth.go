package entry

import (
	"fmt"
	"time"
)

// CTHEntry is a comic.thproject.net release, identified by its catalogue
// index. ReleaseDate is derived from the latest timestamp among the
// release archive's member files, per
// original_source/scripts/data_comic_thproject_net.py.
type CTHEntry struct {
	Index       int
	RawTitle    string
	Pages       int
	Thumbnail   []byte
	ReleaseDate time.Time
}

var _ Entry = (*CTHEntry)(nil)

func (e *CTHEntry) Key() string    { return fmt.Sprintf("cth-%d", e.Index) }
func (e *CTHEntry) Source() Source { return SourceCTH }

func (e *CTHEntry) Title() string { return e.RawTitle }

func (e *CTHEntry) BookTitleCandidates() []string {
	return []string{e.RawTitle}
}

func (e *CTHEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *CTHEntry) Date() (time.Time, bool) {
	if e.ReleaseDate.IsZero() {
		return time.Time{}, false
	}
	return e.ReleaseDate.UTC(), true
}

func (e *CTHEntry) URL() (string, bool) {
	return fmt.Sprintf("http://comic.thproject.net/showinfo.php?id=%d", e.Index), true
}

func (e *CTHEntry) Language() (string, bool) { return "", false }

func (e *CTHEntry) PageCount() (int, bool) {
	if e.Pages == 0 {
		return 0, false
	}
	return e.Pages, true
}

func (e *CTHEntry) CharactersCertain() []string   { return nil }
func (e *CTHEntry) CharactersPlausible() []string { return nil }
func (e *CTHEntry) Pairings() []Pairing           { return nil }
func (e *CTHEntry) TagsCertain() []string         { return nil }
func (e *CTHEntry) TagsPlausible() []string       { return nil }

// Artists is empty: the CTH scraper carries no structured author data,
// tracked as an open TODO upstream (§9).
func (e *CTHEntry) Artists() []string { return nil }

func (e *CTHEntry) Descriptions() map[string]string { return nil }

func (e *CTHEntry) CommentsCount() (int, bool) { return 0, false }

func (e *CTHEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *CTHEntry) LinkedEntries() []Entry { return nil }
