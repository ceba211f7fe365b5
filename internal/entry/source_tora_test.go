package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToraEntryKeyAndURL(t *testing.T) {
	e := &ToraEntry{ProductID: "abc123", RawTitle: "Some Product"}
	assert.Equal(t, "tora-abc123", e.Key())
	url, ok := e.URL()
	assert.True(t, ok)
	assert.Contains(t, url, "abc123")
}

func TestToraEntryHasNoDateOrArtists(t *testing.T) {
	e := &ToraEntry{ProductID: "x", RawTitle: "Some Product"}
	_, ok := e.Date()
	assert.False(t, ok)
	assert.Nil(t, e.Artists())
}
