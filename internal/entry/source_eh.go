package entry

import (
	"fmt"
	"strings"
	"time"
)

// EHEntry is a gallery entry from the EH source, identified by its gallery
// id (gid). Tags follow EH's "namespace:value" convention.
type EHEntry struct {
	GID          int
	Token        string
	RawTitle     string
	Tags         []string
	FileCount    int
	PostedUnix   int64
	Thumbnails_  [][]byte
	CommentCount int
	Linked       []Entry
}

var _ Entry = (*EHEntry)(nil)

func (e *EHEntry) Key() string    { return fmt.Sprintf("eh-%d", e.GID) }
func (e *EHEntry) Source() Source { return SourceEH }

func (e *EHEntry) Title() string {
	return strings.ReplaceAll(e.RawTitle, "_", " ")
}

func (e *EHEntry) BookTitleCandidates() []string {
	return []string{NormalizeEHTitle(e.Title())}
}

func (e *EHEntry) Thumbnails() [][]byte { return e.Thumbnails_ }

func (e *EHEntry) Date() (time.Time, bool) {
	if e.PostedUnix == 0 {
		return time.Time{}, false
	}
	return time.Unix(e.PostedUnix, 0).UTC(), true
}

func (e *EHEntry) URL() (string, bool) {
	return fmt.Sprintf("https://e-hentai.org/g/%d/%s", e.GID, e.Token), true
}

// Language derives from the first "language:*" tag, skipping the
// "translated"/"rewrite" markers which describe the edition, not the
// language itself. Defaults to Japanese when no language tag is present.
func (e *EHEntry) Language() (string, bool) {
	for _, tag := range e.Tags {
		lang, ok := strings.CutPrefix(tag, "language:")
		if !ok {
			continue
		}
		if lang == "rewrite" || lang == "translated" {
			continue
		}
		return titleCase(lang), true
	}
	return "Japanese", true
}

func (e *EHEntry) PageCount() (int, bool) {
	return e.FileCount, true
}

func (e *EHEntry) CharactersCertain() []string {
	var characters []string
	for _, tag := range e.Tags {
		if name, ok := strings.CutPrefix(tag, "character:"); ok {
			characters = append(characters, titleCase(strings.ReplaceAll(name, "_", " ")))
		}
	}
	return sortedUnique(characters)
}

func (e *EHEntry) CharactersPlausible() []string { return nil }
func (e *EHEntry) Pairings() []Pairing           { return nil }

func (e *EHEntry) TagsCertain() []string {
	var tags []string
	for _, tag := range e.Tags {
		if !strings.Contains(tag, ":") {
			tags = append(tags, tag)
		}
	}
	return sortedUnique(tags)
}

// TagsPlausible surfaces the title-cased values of "misc:" tags; tags in
// any other namespace are not surfaced. They are only kept by the caller
// when they match the synonym table (§4.6).
func (e *EHEntry) TagsPlausible() []string {
	var tags []string
outer:
	for _, tag := range e.Tags {
		for _, ns := range []string{"character:", "group:", "artist:", "language:", "other:"} {
			if strings.HasPrefix(tag, ns) {
				continue outer
			}
		}
		if value, ok := strings.CutPrefix(tag, "misc:"); ok {
			tags = append(tags, titleCase(value))
		}
	}
	return sortedUnique(tags)
}

func (e *EHEntry) Artists() []string {
	return sortedUnique(GalleryArtists(e))
}

func (e *EHEntry) Descriptions() map[string]string { return nil }

func (e *EHEntry) CommentsCount() (int, bool) {
	return e.CommentCount, true
}

func (e *EHEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *EHEntry) LinkedEntries() []Entry { return e.Linked }

// IsTranslated reports whether the gallery carries the
// "language:translated" tag, used by the two-phase gallery grouper (C5) to
// order untranslated insertions before translated ones.
func (e *EHEntry) IsTranslated() bool {
	for _, tag := range e.Tags {
		if tag == "language:translated" {
			return true
		}
	}
	return false
}

// FilterEHEntries applies the EH discard policy from §4.1: image sets
// (tagged "other:non-h imageset") and pixiv re-uploads (title contains
// "[pixiv]") are excluded.
func FilterEHEntries(entries []*EHEntry) []*EHEntry {
	var kept []*EHEntry
	for _, e := range entries {
		if containsTag(e.Tags, "other:non-h imageset") {
			continue
		}
		if strings.Contains(strings.ToLower(e.RawTitle), "[pixiv]") {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// GalleryCircles extracts "group:*" tags, the circle attribution used to
// bucket galleries in Phase A of the two-phase grouper (§4.5).
func GalleryCircles(e *EHEntry) []string {
	var circles []string
	for _, tag := range e.Tags {
		if name, ok := strings.CutPrefix(tag, "group:"); ok {
			circles = append(circles, name)
		}
	}
	return circles
}

// GalleryArtists extracts "artist:*" tags, used as the circle-bucketing
// fallback when no circle tag is present.
func GalleryArtists(e *EHEntry) []string {
	var artists []string
	for _, tag := range e.Tags {
		if name, ok := strings.CutPrefix(tag, "artist:"); ok {
			artists = append(artists, name)
		}
	}
	return artists
}

func containsTag(tags []string, needle string) bool {
	for _, tag := range tags {
		if tag == needle {
			return true
		}
	}
	return false
}
