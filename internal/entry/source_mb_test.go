package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMBEntryKeyAndURL(t *testing.T) {
	e := &MBEntry{ProductID: 123, RawTitle: "Some Product"}
	assert.Equal(t, "mb-123", e.Key())
	url, ok := e.URL()
	assert.True(t, ok)
	assert.Contains(t, url, "product_id=123")
}

func TestMBEntryHasNoDateOrArtists(t *testing.T) {
	e := &MBEntry{ProductID: 1, RawTitle: "Some Product"}
	_, ok := e.Date()
	assert.False(t, ok)
	assert.Nil(t, e.Artists())
}
