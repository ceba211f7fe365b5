package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/phash"
)

type fakeHashSource map[string][]phash.Hash

func (f fakeHashSource) HashesOf(key string) ([]phash.Hash, error) {
	return f[key], nil
}

func TestGroupMergesWithinCircleAtLooseThreshold(t *testing.T) {
	a := &entry.EHEntry{GID: 1, Tags: []string{"group:circle-a"}}
	b := &entry.EHEntry{GID: 2, Tags: []string{"group:circle-a"}}

	hashes := fakeHashSource{
		a.Key(): {0x00},
		b.Key(): {0x07}, // distance 3, within floor(0.2*64)=12
	}

	lists, err := Group([]*entry.EHEntry{a, b}, hashes)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Len(t, lists[0].Entries, 2)
}

func TestGroupKeepsDifferentCirclesSeparateWhenFarApart(t *testing.T) {
	a := &entry.EHEntry{GID: 1, Tags: []string{"group:circle-a"}}
	b := &entry.EHEntry{GID: 2, Tags: []string{"group:circle-b"}}

	hashes := fakeHashSource{
		a.Key(): {0x00},
		b.Key(): {0xFF}, // distance 8; each circle is its own Phase A bucket, and Phase B only matches orphans
	}

	lists, err := Group([]*entry.EHEntry{a, b}, hashes)
	require.NoError(t, err)
	assert.Len(t, lists, 2)
}

func TestGroupOrphansEntriesWithNoCircleOrArtistTags(t *testing.T) {
	a := &entry.EHEntry{GID: 1}
	hashes := fakeHashSource{a.Key(): {0x01}}

	lists, err := Group([]*entry.EHEntry{a}, hashes)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, a.Key(), lists[0].Entries[0].Key())
}

func TestGroupPutsUntranslatedEntryFirst(t *testing.T) {
	translated := &entry.EHEntry{GID: 1, Tags: []string{"group:circle-a", "language:translated"}}
	untranslated := &entry.EHEntry{GID: 2, Tags: []string{"group:circle-a"}}

	hashes := fakeHashSource{
		translated.Key():   {0x00},
		untranslated.Key(): {0x00},
	}

	// Insertion order passed to Group deliberately has translated first;
	// orderUntranslatedFirst must still place the untranslated entry first
	// in the resulting list.
	lists, err := Group([]*entry.EHEntry{translated, untranslated}, hashes)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Entries, 2)
	assert.Equal(t, untranslated.Key(), lists[0].Entries[0].Key())
}
