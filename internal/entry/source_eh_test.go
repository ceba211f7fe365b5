package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEHTitleStripsTrailingBrackets(t *testing.T) {
	got := NormalizeEHTitle("Some Gallery (Full Color) [Digital]")
	assert.Equal(t, "Some Gallery", got)
}

func TestNormalizeTouhouTitleStripsPrefixAndSuffix(t *testing.T) {
	assert.Equal(t, "Sample Book", NormalizeTouhouTitle("Touhou - Sample Book (Doujinshi)"))
	assert.Equal(t, "Sample Book", NormalizeTouhouTitle("東方 - Sample Book (Doujinshi)"))
}

func TestEHEntryLanguageSkipsEditionMarkers(t *testing.T) {
	e := &EHEntry{GID: 1, Tags: []string{"language:translated", "language:english"}}
	lang, ok := e.Language()
	assert.True(t, ok)
	assert.Equal(t, "English", lang)
}

func TestEHEntryLanguageDefaultsToJapanese(t *testing.T) {
	e := &EHEntry{GID: 1}
	lang, ok := e.Language()
	assert.True(t, ok)
	assert.Equal(t, "Japanese", lang)
}

func TestEHEntryCharactersCertainTitleCased(t *testing.T) {
	e := &EHEntry{GID: 1, Tags: []string{"character:hakurei_reimu"}}
	assert.Equal(t, []string{"Hakurei Reimu"}, e.CharactersCertain())
}

func TestFilterEHEntriesDropsImagesetsAndPixivReuploads(t *testing.T) {
	kept := &EHEntry{GID: 1, RawTitle: "A Gallery"}
	imageset := &EHEntry{GID: 2, RawTitle: "B Gallery", Tags: []string{"other:non-h imageset"}}
	reupload := &EHEntry{GID: 3, RawTitle: "C Gallery [Pixiv]"}

	result := FilterEHEntries([]*EHEntry{kept, imageset, reupload})
	assert.Equal(t, []*EHEntry{kept}, result)
}

func TestEHEntryIsTranslated(t *testing.T) {
	untranslated := &EHEntry{GID: 1}
	translated := &EHEntry{GID: 2, Tags: []string{"language:translated"}}

	assert.False(t, untranslated.IsTranslated())
	assert.True(t, translated.IsTranslated())
}
