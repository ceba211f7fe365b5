// Package canon implements C6, canonicalisation of characters, pairings,
// artists, and tags: a frequency-sorted token index over observed character
// names, an alias table fed by an external wiki lookup, and small fixed
// synonym/allow-list tables for tags and artists.
package canon

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// WikiLookup resolves a raw character tag name to its known aliases
// ("other_names" in original_source/scripts/character_index.py), feeding the
// character index's alias table. A nil WikiLookup disables the lookup.
type WikiLookup interface {
	OtherNames(rawName string) []string
}

// tagToName applies the snake_case -> Title Case normalisation from §4.6,
// with the fixed PC-98 replacement and the "(Touhou)" suffix stripped.
func tagToName(tag string) string {
	s := titleCaser.String(strings.ReplaceAll(tag, "_", " "))
	s = strings.ReplaceAll(s, "Pc-98", "PC-98")
	s = strings.ReplaceAll(s, "(Touhou)", "")
	return strings.TrimSpace(s)
}

// CharacterIndex is C6's character canonicaliser: a unique-name set plus a
// token -> canonical-name map built by scanning names in descending
// frequency order, so the most common name wins a token collision.
type CharacterIndex struct {
	unique  map[string]bool
	mapping map[string]string
}

// manualCharacterAliases are seeded last, after the frequency-ordered scan
// and wiki aliases, per §4.6.
var manualCharacterAliases = map[string]string{
	"アリス":   "Alice Margatroid",
	"リリ":    "Lily White",
	"メディスン": "Medicine Melancholy",
}

// NewCharacterIndex builds the index from a frequency counter of raw
// character tag strings (already thresholded to count >= 20 by the caller,
// per §4.6), optionally extended with alias data from wiki.
func NewCharacterIndex(countsDescending []CharacterCount, wiki WikiLookup) *CharacterIndex {
	idx := &CharacterIndex{
		unique:  make(map[string]bool),
		mapping: make(map[string]string),
	}

	for _, c := range countsDescending {
		idx.unique[tagToName(c.RawName)] = true
	}

	for _, c := range countsDescending {
		readable := tagToName(c.RawName)
		for _, token := range strings.Fields(readable) {
			if _, exists := idx.mapping[token]; !exists {
				idx.mapping[token] = readable
			}
		}

		if wiki == nil {
			continue
		}
		for _, alias := range wiki.OtherNames(c.RawName) {
			if _, exists := idx.mapping[alias]; !exists {
				idx.mapping[alias] = readable
			}
			stripped := strings.ReplaceAll(alias, "・", "")
			if _, exists := idx.mapping[stripped]; !exists {
				idx.mapping[stripped] = readable
			}
		}
	}

	for alias, name := range manualCharacterAliases {
		idx.mapping[alias] = name
	}

	return idx
}

// CharacterCount is one entry of the frequency counter feeding
// NewCharacterIndex, pre-sorted descending by Count by the caller.
type CharacterCount struct {
	RawName string
	Count   int
}

// FindAndCanonicalise implements §4.6's find_and_canonicalise: returns the
// name itself if already unique, its reversed-token form if that is unique,
// the canonical name of the first token present in the mapping, or ("",
// false) if none match.
func (idx *CharacterIndex) FindAndCanonicalise(name string) (string, bool) {
	if idx.unique[name] {
		return name, true
	}

	tokens := strings.Fields(name)
	swapped := reverseJoin(tokens)
	if idx.unique[swapped] {
		return swapped, true
	}

	for _, token := range tokens {
		if canonical, ok := idx.mapping[titleCaser.String(token)]; ok {
			return canonical, true
		}
	}
	return "", false
}

// Canonicalise normalises name via tagToName before searching, and falls
// back to the normalised (not raw) input on a miss, per §4.6.
func (idx *CharacterIndex) Canonicalise(name string) string {
	normalised := tagToName(name)
	if canonical, ok := idx.FindAndCanonicalise(normalised); ok {
		return canonical
	}
	return normalised
}

func reverseJoin(tokens []string) string {
	reversed := make([]string, len(tokens))
	for i, t := range tokens {
		reversed[len(tokens)-1-i] = t
	}
	return strings.Join(reversed, " ")
}

// Pairing is an unordered set of canonicalised participant names.
type Pairing []string

func pairingKey(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// manualPairingAliases map a manual abbreviation to its canonical
// participant set, per §4.6.
var manualPairingAliases = map[string][]string{
	"マリアリ":  {"Alice", "Marisa"},
	"秘封倶楽部": {"Maribel", "Renko"},
}

// PairingIndex canonicalises a raw participant set to the Dynasty Scans
// pairing tag it was observed under, falling back to the canonicalised
// participants themselves when no pairing was ever observed under that key.
type PairingIndex struct {
	characters *CharacterIndex
	mapping    map[string][]string
}

// NewPairingIndex builds the pairing index from every Dynasty Scans pairing
// observed (raw participant sets), keyed by their canonicalised form.
func NewPairingIndex(characters *CharacterIndex, observed []Pairing) *PairingIndex {
	idx := &PairingIndex{
		characters: characters,
		mapping:    make(map[string][]string),
	}
	for _, pairing := range observed {
		canonical := idx.canonicaliseParticipants(pairing)
		idx.mapping[pairingKey(canonical)] = []string(pairing)
	}
	for alias, participants := range manualPairingAliases {
		idx.mapping[alias] = participants
	}
	return idx
}

func (idx *PairingIndex) canonicaliseParticipants(pairing Pairing) []string {
	out := make([]string, len(pairing))
	for i, name := range pairing {
		out[i] = idx.characters.Canonicalise(name)
	}
	return out
}

// Canonicalise returns the Dynasty Scans pairing tag for the given raw
// participant set, falling back to its canonicalised participants when
// unobserved.
func (idx *PairingIndex) Canonicalise(pairing []string) []string {
	canonical := idx.canonicaliseParticipants(pairing)
	if raw, ok := idx.mapping[pairingKey(canonical)]; ok {
		return raw
	}
	return canonical
}

// tagSynonyms collapses spelling variants observed across sources, per
// §4.6.
var tagSynonyms = map[string]string{
	"Girls' Love":   "Yuri",
	"Slice of Life": "Slice of life",
	"School Life":   "School life",
	"Time Travel":   "Time travel",
	"Sci-Fi":        "Sci-fi",
	"4-Koma":        "4-koma",
	"Full Color":    "Full color",
	"Gender bender": "Genderswap",
	"Alien":         "Aliens",
	"Ghost":         "Ghosts",
	"Vampire":       "Vampires",
	"Artbook":       "Artbook",
}

// CanonicaliseTag resolves tag through the synonym table, returning it
// unchanged when no synonym exists.
func CanonicaliseTag(tag string) string {
	if synonym, ok := tagSynonyms[tag]; ok {
		return synonym
	}
	return tag
}

// IsPlausibleTagSynonym reports whether a plausible tag from the EH source
// has an entry in the synonym table; only such tags are kept, per §4.6.
func IsPlausibleTagSynonym(tag string) (string, bool) {
	synonym, ok := tagSynonyms[tag]
	return synonym, ok
}

// uppercaseArtistAllowList names artists whose uppercase form is the correct
// display form (e.g. the circle alias "ZUN"), per §4.6.
var uppercaseArtistAllowList = map[string]bool{
	"ZUN": true,
}

// CanonicaliseArtist title-cases name, except for names on the uppercase
// allow-list which keep their uppercase form.
func CanonicaliseArtist(name string) string {
	upper := strings.ToUpper(name)
	if uppercaseArtistAllowList[upper] {
		return upper
	}
	return titleCaser.String(name)
}

// PairingTag formats a canonicalised pairing as "A x B" with participants
// sorted, per §4.6.
func PairingTag(participants []string) string {
	sorted := append([]string(nil), participants...)
	sort.Strings(sorted)
	return strings.Join(sorted, " x ")
}
