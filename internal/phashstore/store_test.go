package phashstore

import (
	"context"
	"testing"

	"github.com/philippgille/gokv/syncmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanoskript/touhou-index/internal/phash"
)

func newTestStore() *Store {
	return New(syncmap.NewStore(syncmap.DefaultOptions), nil)
}

func TestHashesOfMissingKey(t *testing.T) {
	s := newTestStore()
	hashes, err := s.HashesOf("eh-1")
	require.NoError(t, err)
	assert.Nil(t, hashes)
}

func TestPutThenHashesOfRoundTrip(t *testing.T) {
	s := newTestStore()
	original := []phash.Hash{1, 2, 3}

	require.NoError(t, s.Put("eh-1", original))

	got, err := s.HashesOf("eh-1")
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

type fakeSource struct {
	key        string
	thumbnails [][]byte
}

func (f fakeSource) Key() string           { return f.key }
func (f fakeSource) Thumbnails() [][]byte  { return f.thumbnails }

func TestBuildAllWritesEveryEntry(t *testing.T) {
	s := newTestStore()

	sources := []ThumbnailSource{
		fakeSource{key: "eh-1", thumbnails: nil},
		fakeSource{key: "eh-2", thumbnails: [][]byte{[]byte("not-an-image")}},
	}

	require.NoError(t, s.BuildAll(context.Background(), sources, 2))

	for _, key := range []string{"eh-1", "eh-2"} {
		hashes, err := s.HashesOf(key)
		require.NoError(t, err)
		assert.Empty(t, hashes, "undecodable/missing thumbnails yield no hashes")
	}
}
