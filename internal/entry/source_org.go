package entry

import (
	"fmt"
	"time"
)

// OrgEntry is a doujinshi.org book record, identified by its book id.
// AgeGroup and Parody are carried through from the dump so FilterOrgEntries
// can apply the inclusion policy from §4.1; ReleaseDate is the zero Time
// for the dump's "0000-00-00" sentinel.
type OrgEntry struct {
	BookID      int
	AgeGroup    int
	Parody      string
	Titles      []string
	ReleaseDate time.Time
	Characters  []string
	Authors     []string
	Circles     []string
	Pages       int
	Thumbnail   []byte
	Comments    string
}

var _ Entry = (*OrgEntry)(nil)

func (e *OrgEntry) Key() string    { return fmt.Sprintf("org-%d", e.BookID) }
func (e *OrgEntry) Source() Source { return SourceDoujinshi }

func (e *OrgEntry) Title() string {
	if len(e.Titles) == 0 {
		return ""
	}
	return e.Titles[0]
}

func (e *OrgEntry) BookTitleCandidates() []string {
	if len(e.Titles) == 0 {
		return nil
	}
	candidates := make([]string, len(e.Titles))
	copy(candidates, e.Titles)
	return candidates
}

func (e *OrgEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *OrgEntry) Date() (time.Time, bool) {
	if e.ReleaseDate.IsZero() {
		return time.Time{}, false
	}
	return e.ReleaseDate.UTC(), true
}

func (e *OrgEntry) URL() (string, bool) { return "", false }

func (e *OrgEntry) Language() (string, bool) { return "", false }

func (e *OrgEntry) PageCount() (int, bool) {
	if e.Pages == 0 {
		return 0, false
	}
	return e.Pages, true
}

func (e *OrgEntry) CharactersCertain() []string {
	return sortedUnique(e.Characters)
}

func (e *OrgEntry) CharactersPlausible() []string { return nil }
func (e *OrgEntry) Pairings() []Pairing           { return nil }
func (e *OrgEntry) TagsCertain() []string         { return nil }
func (e *OrgEntry) TagsPlausible() []string       { return nil }

// Artists combines authors and circles, per the "structural metadata only"
// policy of §4.1; whether circles should be kept distinct from authors is
// an open question (§9), decided here in favour of a single merged list to
// keep the canonicalisation index (C6) simple.
func (e *OrgEntry) Artists() []string {
	combined := make([]string, 0, len(e.Authors)+len(e.Circles))
	combined = append(combined, e.Authors...)
	combined = append(combined, e.Circles...)
	return sortedUnique(combined)
}

func (e *OrgEntry) Descriptions() map[string]string {
	if e.Comments == "" {
		return nil
	}
	return map[string]string{"doujinshi.org": e.Comments}
}

func (e *OrgEntry) CommentsCount() (int, bool) { return 0, false }

func (e *OrgEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *OrgEntry) LinkedEntries() []Entry { return nil }

const (
	orgSafeForWorkAgeGroup = 0
	orgTouhouParody        = "Touhou Project"
	orgMinimumReleaseYear  = 2003
)

// FilterOrgEntries applies the doujinshi.org inclusion policy from §4.1:
// keep only age-group 0 entries tagged with the Touhou Project parody, and
// drop anything whose release date is the dump's "0000-00-00" sentinel
// (represented here as a zero Time) or whose year is <= 2003.
func FilterOrgEntries(entries []*OrgEntry) []*OrgEntry {
	var kept []*OrgEntry
	for _, e := range entries {
		if e.AgeGroup != orgSafeForWorkAgeGroup {
			continue
		}
		if e.Parody != orgTouhouParody {
			continue
		}
		if e.ReleaseDate.IsZero() {
			continue
		}
		if e.ReleaseDate.Year() <= orgMinimumReleaseYear {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
