package entry

import (
	"fmt"
	"strings"
	"time"
)

// DSTag is a Dynasty Scans chapter tag; Type is e.g. "General" or "Pairing".
type DSTag struct {
	Type string
	Name string
}

// DSEntry is a Dynasty Scans chapter, identified by its permalink slug.
type DSEntry struct {
	Slug       string
	RawTitle   string
	Tags       []DSTag
	ReleasedOn time.Time
	PageCount_ int
	Thumbnail  []byte
}

var _ Entry = (*DSEntry)(nil)

func (e *DSEntry) Key() string    { return fmt.Sprintf("ds-%s", e.Slug) }
func (e *DSEntry) Source() Source { return SourceDynasty }

func (e *DSEntry) Title() string { return e.RawTitle }

func (e *DSEntry) BookTitleCandidates() []string {
	return []string{e.RawTitle}
}

func (e *DSEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *DSEntry) Date() (time.Time, bool) {
	if e.ReleasedOn.IsZero() {
		return time.Time{}, false
	}
	return e.ReleasedOn.UTC(), true
}

func (e *DSEntry) URL() (string, bool) {
	return fmt.Sprintf("https://dynasty-scans.com/chapters/%s", e.Slug), true
}

// Language is fixed English for Dynasty Scans, a scanlation aggregator that
// only hosts English releases, per §4.1.
func (e *DSEntry) Language() (string, bool) { return "English", true }

func (e *DSEntry) PageCount() (int, bool) { return e.PageCount_, true }

// CharactersCertain splits every "Pairing" tag on " x " into its
// participants, per §4.1.
func (e *DSEntry) CharactersCertain() []string {
	return sortedUnique(dsEntryCharacters(e))
}

func dsEntryCharacters(e *DSEntry) []string {
	var characters []string
	for _, tag := range e.Tags {
		if tag.Type == "Pairing" {
			characters = append(characters, strings.Split(tag.Name, " x ")...)
		}
	}
	return characters
}

func (e *DSEntry) CharactersPlausible() []string { return nil }

// Pairings returns every Pairing tag as its set of participants, feeding
// C6's pairing index.
func (e *DSEntry) Pairings() []Pairing {
	var pairings []Pairing
	for _, tag := range e.Tags {
		if tag.Type == "Pairing" {
			pairings = append(pairings, strings.Split(tag.Name, " x "))
		}
	}
	return pairings
}

func (e *DSEntry) TagsCertain() []string {
	var tags []string
	for _, tag := range e.Tags {
		if tag.Type == "General" {
			tags = append(tags, tag.Name)
		}
	}
	return sortedUnique(tags)
}

func (e *DSEntry) TagsPlausible() []string { return nil }
func (e *DSEntry) Artists() []string       { return nil }

func (e *DSEntry) Descriptions() map[string]string { return nil }

func (e *DSEntry) CommentsCount() (int, bool) { return 0, false }

func (e *DSEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *DSEntry) LinkedEntries() []Entry { return nil }

// FilterDSEntries discards chapters tagged (General, NSFW), per §4.1.
func FilterDSEntries(entries []*DSEntry) []*DSEntry {
	var kept []*DSEntry
	for _, e := range entries {
		nsfw := false
		for _, tag := range e.Tags {
			if tag.Type == "General" && tag.Name == "NSFW" {
				nsfw = true
				break
			}
		}
		if !nsfw {
			kept = append(kept, e)
		}
	}
	return kept
}

// AllPairings collects the distinct set of pairings observed across every
// Dynasty Scans entry, feeding C6's pairing index construction.
func AllPairings(entries []*DSEntry) []Pairing {
	seen := make(map[string]bool)
	var all []Pairing
	for _, e := range entries {
		for _, pairing := range e.Pairings() {
			key := strings.Join(sortedUnique(pairing), "\x00")
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, pairing)
		}
	}
	return all
}
