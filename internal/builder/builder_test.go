package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/phash"
)

type fakeHashes map[string][]phash.Hash

func (f fakeHashes) HashesOf(key string) ([]phash.Hash, error) { return f[key], nil }

func TestBuildMergesGalleryWithCrossSourceMatch(t *testing.T) {
	eh := &entry.EHEntry{
		GID:      1,
		RawTitle: "A_Touhou_Work (Decensored)",
		Tags:     []string{"group:some_circle", "character:hakurei_reimu"},
	}
	db := &entry.DBEntry{
		PoolID: 2,
		Name:   "Touhou - A Touhou Work (Doujinshi)",
		Posts: []entry.DBPost{
			{Rating: "s"}, {Rating: "s"}, {Rating: "s"}, {Rating: "s"}, {Rating: "s"},
			{Rating: "s"}, {Rating: "s"}, {Rating: "s"}, {Rating: "s"}, {Rating: "s"},
		},
	}

	hashes := fakeHashes{
		"eh-1": {0b0000_0000},
		"db-2": {0b0000_0001}, // distance 1, well within 0.9 similarity radius
	}

	options := DefaultOptions()
	options.Hashes = hashes

	result, err := Build(context.Background(), Sources{
		EH:       []*entry.EHEntry{eh},
		Danbooru: []*entry.DBEntry{db},
	}, options)
	require.NoError(t, err)

	require.Len(t, result.Snapshot.Books, 1)
	require.Len(t, result.Snapshot.Entries, 2)
	assert.Contains(t, result.Snapshot.Characters, "Hakurei Reimu")
}

func TestBuildOrphanEntryGetsItsOwnBook(t *testing.T) {
	eh := &entry.EHEntry{GID: 1, RawTitle: "Solo Work"}

	options := DefaultOptions()
	options.Hashes = fakeHashes{}

	result, err := Build(context.Background(), Sources{EH: []*entry.EHEntry{eh}}, options)
	require.NoError(t, err)

	require.Len(t, result.Snapshot.Books, 1)
	require.Len(t, result.Snapshot.Entries, 1)
	assert.Equal(t, "eh-1", result.Snapshot.Entries[0].ID)
}

func TestBuildRequiresHashSource(t *testing.T) {
	_, err := Build(context.Background(), Sources{}, Options{})
	assert.Error(t, err)
}
