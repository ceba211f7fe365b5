package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagToNameNormalises(t *testing.T) {
	assert.Equal(t, "Hakurei Reimu", tagToName("hakurei_reimu"))
	assert.Equal(t, "PC-98", tagToName("pc-98"))
}

type fakeWiki map[string][]string

func (f fakeWiki) OtherNames(raw string) []string { return f[raw] }

func TestCharacterIndexFindAndCanonicalise(t *testing.T) {
	idx := NewCharacterIndex([]CharacterCount{
		{RawName: "hakurei_reimu", Count: 100},
		{RawName: "kirisame_marisa", Count: 80},
	}, nil)

	name, ok := idx.FindAndCanonicalise("Hakurei Reimu")
	assert.True(t, ok)
	assert.Equal(t, "Hakurei Reimu", name)

	// Reversed-token form.
	name, ok = idx.FindAndCanonicalise("Reimu Hakurei")
	assert.True(t, ok)
	assert.Equal(t, "Hakurei Reimu", name)
}

func TestCharacterIndexFirstWriterWinsOnTokenCollision(t *testing.T) {
	idx := NewCharacterIndex([]CharacterCount{
		{RawName: "hakurei_reimu", Count: 100},
		{RawName: "some_reimu_alias", Count: 10},
	}, nil)

	name, ok := idx.FindAndCanonicalise("Reimu")
	assert.True(t, ok)
	assert.Equal(t, "Hakurei Reimu", name)
}

func TestCharacterIndexWikiAliases(t *testing.T) {
	wiki := fakeWiki{"hakurei_reimu": {"博麗霊夢", "霊夢"}}
	idx := NewCharacterIndex([]CharacterCount{{RawName: "hakurei_reimu", Count: 100}}, wiki)

	name, ok := idx.FindAndCanonicalise("霊夢")
	assert.True(t, ok)
	assert.Equal(t, "Hakurei Reimu", name)
}

func TestCharacterIndexManualAlias(t *testing.T) {
	idx := NewCharacterIndex([]CharacterCount{{RawName: "margatroid_alice", Count: 100}}, nil)
	name, ok := idx.FindAndCanonicalise("アリス")
	assert.True(t, ok)
	assert.Equal(t, "Alice Margatroid", name)
}

func TestCanonicaliseFallsBackToNormalisedInput(t *testing.T) {
	idx := NewCharacterIndex(nil, nil)
	assert.Equal(t, "Unknown Character", idx.Canonicalise("unknown_character"))
}

func TestPairingIndexCanonicalisesToObservedTag(t *testing.T) {
	characters := NewCharacterIndex([]CharacterCount{
		{RawName: "hakurei_reimu", Count: 100},
		{RawName: "kirisame_marisa", Count: 80},
	}, nil)

	pairings := NewPairingIndex(characters, []Pairing{{"Hakurei Reimu", "Kirisame Marisa"}})
	got := pairings.Canonicalise([]string{"Reimu Hakurei", "Marisa Kirisame"})
	assert.ElementsMatch(t, []string{"Hakurei Reimu", "Kirisame Marisa"}, got)
}

func TestPairingIndexManualAlias(t *testing.T) {
	characters := NewCharacterIndex(nil, nil)
	pairings := NewPairingIndex(characters, nil)
	got := pairings.Canonicalise([]string{"マリアリ"})
	assert.Equal(t, []string{"Alice", "Marisa"}, got)
}

func TestCanonicaliseTagSynonym(t *testing.T) {
	assert.Equal(t, "Yuri", CanonicaliseTag("Girls' Love"))
	assert.Equal(t, "Unrelated", CanonicaliseTag("Unrelated"))
}

func TestIsPlausibleTagSynonym(t *testing.T) {
	synonym, ok := IsPlausibleTagSynonym("Sci-Fi")
	assert.True(t, ok)
	assert.Equal(t, "Sci-fi", synonym)

	_, ok = IsPlausibleTagSynonym("Not A Synonym")
	assert.False(t, ok)
}

func TestCanonicaliseArtistAllowList(t *testing.T) {
	assert.Equal(t, "ZUN", CanonicaliseArtist("zun"))
	assert.Equal(t, "Some Artist", CanonicaliseArtist("some artist"))
}

func TestPairingTagSortsParticipants(t *testing.T) {
	assert.Equal(t, "Alice x Bob", PairingTag([]string{"Bob", "Alice"}))
}
