package entry

import (
	"fmt"
	"time"
)

// mdLanguageNames maps a MangaDex translatedLanguage code to its display
// name, per §4.1. Unknown codes pass through as-is; cmd/build-index logs a
// warning for each loaded MDEntry carrying one.
var mdLanguageNames = map[string]string{
	"en":    "English",
	"id":    "Indonesian",
	"es-la": "Spanish (LATAM)",
	"ru":    "Russian",
	"pt-br": "Portuguese (Br)",
	"vi":    "Vietnamese",
	"de":    "German",
	"fr":    "French",
	"it":    "Italian",
	"uk":    "Ukrainian",
	"es":    "Spanish (Es)",
	"pl":    "Polish",
	"hu":    "Hungarian",
	"th":    "Thai",
	"tr":    "Turkish",
}

// MDLanguageName resolves a translatedLanguage code to its display name,
// falling back to the raw code when unrecognised.
func MDLanguageName(code string) (name string, known bool) {
	name, known = mdLanguageNames[code]
	if !known {
		return code, false
	}
	return name, true
}

// MDEntry is a MangaDex chapter, identified by its chapter id. MangaThumbnail
// is the fallback cover used when the chapter itself carries none.
type MDEntry struct {
	Slug             string
	MangaTitle       string
	ChapterNumber    string
	ChapterTitle     string
	LanguageCode     string
	PublishAt        time.Time
	Pages            int
	Thumbnail        []byte
	MangaThumbnail   []byte
}

var _ Entry = (*MDEntry)(nil)

func (e *MDEntry) Key() string    { return fmt.Sprintf("md-%s", e.Slug) }
func (e *MDEntry) Source() Source { return SourceMangaDex }

// Title joins "Chapter N" and the chapter's own title when present,
// falling back to the manga's title, per original_source/scripts/source_md.py.
func (e *MDEntry) Title() string {
	var tokens []string
	if e.ChapterNumber != "" {
		tokens = append(tokens, fmt.Sprintf("Chapter %s", e.ChapterNumber))
	}
	if e.ChapterTitle != "" {
		tokens = append(tokens, e.ChapterTitle)
	}
	if len(tokens) == 0 {
		return e.MangaTitle
	}
	if len(tokens) == 1 {
		return tokens[0]
	}
	return tokens[0] + " - " + tokens[1]
}

func (e *MDEntry) BookTitleCandidates() []string {
	return []string{NormalizeTouhouTitle(e.MangaTitle)}
}

// Thumbnails prefers the chapter's own cover, falling back to the parent
// manga's cover, per §4.2.
func (e *MDEntry) Thumbnails() [][]byte {
	var thumbnails [][]byte
	if e.Thumbnail != nil {
		thumbnails = append(thumbnails, e.Thumbnail)
	}
	if e.MangaThumbnail != nil {
		thumbnails = append(thumbnails, e.MangaThumbnail)
	}
	return thumbnails
}

func (e *MDEntry) Date() (time.Time, bool) {
	if e.PublishAt.IsZero() {
		return time.Time{}, false
	}
	return e.PublishAt.UTC(), true
}

func (e *MDEntry) URL() (string, bool) {
	return fmt.Sprintf("https://mangadex.org/chapter/%s", e.Slug), true
}

func (e *MDEntry) Language() (string, bool) {
	name, _ := MDLanguageName(e.LanguageCode)
	return name, true
}

func (e *MDEntry) PageCount() (int, bool) { return e.Pages, true }

// CharactersCertain is always empty: MangaDex exposes no character tagging,
// per original_source/scripts/entry.py.
func (e *MDEntry) CharactersCertain() []string   { return nil }
func (e *MDEntry) CharactersPlausible() []string { return nil }
func (e *MDEntry) Pairings() []Pairing           { return nil }
func (e *MDEntry) TagsCertain() []string         { return nil }
func (e *MDEntry) TagsPlausible() []string       { return nil }
func (e *MDEntry) Artists() []string             { return nil }

func (e *MDEntry) Descriptions() map[string]string { return nil }

func (e *MDEntry) CommentsCount() (int, bool) { return 0, false }

func (e *MDEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

func (e *MDEntry) LinkedEntries() []Entry { return nil }
