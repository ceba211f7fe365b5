package entry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCTHEntryKeyAndURL(t *testing.T) {
	e := &CTHEntry{Index: 42, RawTitle: "Some Release", Pages: 20}
	assert.Equal(t, "cth-42", e.Key())
	url, ok := e.URL()
	assert.True(t, ok)
	assert.Contains(t, url, "id=42")
}

func TestCTHEntryDateZeroIsAbsent(t *testing.T) {
	e := &CTHEntry{}
	_, ok := e.Date()
	assert.False(t, ok)

	e.ReleaseDate = time.Date(2010, 5, 1, 0, 0, 0, 0, time.UTC)
	_, ok = e.Date()
	assert.True(t, ok)
}

func TestCTHEntryHasNoArtists(t *testing.T) {
	e := &CTHEntry{RawTitle: "Some Release"}
	assert.Nil(t, e.Artists())
}
