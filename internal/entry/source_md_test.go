package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMDLanguageNameKnownCode(t *testing.T) {
	name, known := MDLanguageName("en")
	assert.True(t, known)
	assert.Equal(t, "English", name)
}

func TestMDLanguageNameUnknownCodePassesThrough(t *testing.T) {
	name, known := MDLanguageName("xx")
	assert.False(t, known)
	assert.Equal(t, "xx", name)
}

func TestMDEntryTitlePrefersChapterNumberAndTitle(t *testing.T) {
	e := &MDEntry{MangaTitle: "Sample Manga", ChapterNumber: "5", ChapterTitle: "The End"}
	assert.Equal(t, "Chapter 5 - The End", e.Title())
}

func TestMDEntryTitleFallsBackToMangaTitle(t *testing.T) {
	e := &MDEntry{MangaTitle: "Sample Manga"}
	assert.Equal(t, "Sample Manga", e.Title())
}

func TestMDEntryThumbnailsFallBackToManga(t *testing.T) {
	e := &MDEntry{MangaThumbnail: []byte("cover")}
	assert.Equal(t, [][]byte{[]byte("cover")}, e.Thumbnails())
}
