// Package entry implements C4, the source filter & entry abstraction: a
// uniform accessor set over the nine registered source variants
// (eh, db, ds, md, org, cth, mb, tora, px), realized as the small interface
// design note in spec §9 recommends rather than runtime type switching.
package entry

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// titleCase converts a raw source string ("hakurei reimu", "GIRLS' LOVE")
// to title case, e.g. "Hakurei Reimu". It does not replace underscores:
// callers holding snake_case tags turn them into spaces first. Used throughout the per-source
// accessors wherever the original scraped string needs display
// normalisation; golang.org/x/text/cases is Unicode-aware where the
// deprecated strings.Title is not.
func titleCase(s string) string {
	return titleCaser.String(s)
}

// Error is the sentinel error type for entry operations.
type Error string

func (e Error) Error() string {
	return "entry: " + string(e)
}

// Source identifies the collaborator an Entry originated from, by its
// two-letter registered prefix (spec §6).
type Source string

const (
	SourceEH        Source = "eh"
	SourceDanbooru  Source = "db"
	SourceDynasty   Source = "ds"
	SourceMangaDex  Source = "md"
	SourceDoujinshi Source = "org"
	SourceCTH       Source = "cth"
	SourceMelon     Source = "mb"
	SourceTora      Source = "tora"
	SourcePixiv     Source = "px"
)

// ReadableNames maps each registered prefix to its human-readable source
// name, for display and for statistics collation.
var ReadableNames = map[Source]string{
	SourceEH:        "EH",
	SourceDanbooru:  "Danbooru",
	SourceDynasty:   "Dynasty Scans",
	SourceMangaDex:  "MangaDex",
	SourceDoujinshi: "doujinshi.org",
	SourceCTH:       "comic.thproject.net",
	SourceMelon:     "Melonbooks",
	SourceTora:      "Toranoana",
	SourcePixiv:     "Pixiv",
}

// SeriesHint is an entry's declared membership in a per-source series
// record, as described in §3. It is the raw input to C7's coalescence.
type SeriesHint struct {
	Key      string
	Title    string
	Comments int
}

// Pairing is an unordered set of character names appearing together, as
// declared by a Dynasty Scans "Pairing" tag (§4.1, §4.6).
type Pairing []string

// Entry is the uniform view over every source variant's record, satisfying
// the field contract of spec §3 and the predicates of §4.1. All accessors
// are pure and side-effect free; optional fields return an ok bool.
type Entry interface {
	// Key is "<prefix>-<id>", globally unique; its prefix determines Source.
	Key() string
	Source() Source

	// Title is the raw, source-native title.
	Title() string

	// BookTitleCandidates is the ordered list of normalised title
	// candidates; the first is the canonical title for this entry.
	BookTitleCandidates() []string

	// Thumbnails is the ordered list of raw thumbnail image blobs, first
	// preferred.
	Thumbnails() [][]byte

	Date() (time.Time, bool)
	URL() (string, bool)
	Language() (string, bool)
	PageCount() (int, bool)

	CharactersCertain() []string
	CharactersPlausible() []string
	Pairings() []Pairing

	TagsCertain() []string
	TagsPlausible() []string

	Artists() []string

	// Descriptions maps a label to an HTML description fragment.
	Descriptions() map[string]string

	CommentsCount() (int, bool)
	SeriesHint() (SeriesHint, bool)

	// LinkedEntries returns entries discovered via this entry (e.g. a
	// Pixiv entry referenced by a Danbooru pool's pixiv_id) that should be
	// appended to this entry's list without participating in clustering
	// (§4.8 step 4).
	LinkedEntries() []Entry
}

// trailingBracketRun strips a trailing run of bracketed segments
// "(…)" / "[…]" / "{…}" (and the whitespace between them) from an EH title.
var trailingBracketRun = regexp.MustCompile(`(\s|\([^()]+\)|(\[[^\[\]]+])|(\{[^{}]+}))+$`)

// NormalizeEHTitle strips a trailing run of bracketed segments from an EH
// gallery title, per §4.1.
func NormalizeEHTitle(title string) string {
	return trailingBracketRun.ReplaceAllString(title, "")
}

// NormalizeTouhouTitle strips the "Touhou -" / "東方 -" prefix and the
// "(Doujinshi)" suffix used by Danbooru and MangaDex titles, per §4.1.
func NormalizeTouhouTitle(title string) string {
	s := strings.TrimPrefix(title, "Touhou -")
	s = strings.TrimPrefix(s, "東方 -")
	s = strings.TrimSuffix(strings.TrimSpace(s), "(Doujinshi)")
	return strings.TrimSpace(s)
}

// sortedUnique returns xs sorted and with duplicates removed. Several
// accessors below (characters, tags) are specified as sorted sets.
func sortedUnique(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	// Simple insertion sort; these lists are small (tens of entries).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
