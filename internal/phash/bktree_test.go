package phash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBKTreeFindClosestEmpty(t *testing.T) {
	tree := New()
	_, ok := tree.FindClosest(Hash(42), 10)
	assert.False(t, ok)
}

func TestBKTreeFindClosestExact(t *testing.T) {
	tree := New()
	tree.Insert(Hash(0b1010))
	h, ok := tree.FindClosest(Hash(0b1010), 0)
	require.True(t, ok)
	assert.Equal(t, Hash(0b1010), h)
}

func TestBKTreeFindClosestWithinRadius(t *testing.T) {
	tree := New()
	tree.Insert(Hash(0))          // distance 0 from itself
	tree.Insert(Hash(0b1))        // distance 1 from 0
	tree.Insert(Hash(0b111))      // distance 3 from 0
	tree.Insert(Hash(0xFFFFFFFF)) // far away

	// The query 0b11 is at distance 2 from the root 0, which is found first,
	// and at distance 1 from 0b1.
	h, ok := tree.FindClosest(Hash(0b11), 2)
	require.True(t, ok)
	assert.Equal(t, Hash(0b1), h, "should pick the closest candidate within radius, not merely the first found")
}

func TestBKTreeNoMatchOutsideRadius(t *testing.T) {
	tree := New()
	tree.Insert(Hash(0xFF00FF00FF00FF00))
	_, ok := tree.FindClosest(Hash(0), 4)
	assert.False(t, ok)
}

// TestBKTreeCorrectnessProperty is testable property 6 from the spec:
// for any hash h and radius r, FindClosest(h,r) returns some stored hash
// iff at least one stored hash h' satisfies popcount(h^h') <= r.
func TestBKTreeCorrectnessProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tree := New()

	var stored []Hash
	for i := 0; i < 200; i++ {
		h := Hash(rng.Uint64())
		stored = append(stored, h)
		tree.Insert(h)
	}

	for trial := 0; trial < 100; trial++ {
		query := Hash(rng.Uint64())
		radius := rng.Intn(20)

		expectMatch := false
		for _, h := range stored {
			if Distance(query, h) <= radius {
				expectMatch = true
				break
			}
		}

		_, ok := tree.FindClosest(query, radius)
		assert.Equal(t, expectMatch, ok, "query=%d radius=%d", query, radius)
	}
}

func TestBKTreeTieBreakIsFirstEncountered(t *testing.T) {
	tree := New()
	// The query 0b11 is at distance 2 from the root and at distance 1 from
	// both 0b1 and 0b10; pre-order traversal reaches 0b1 first.
	tree.Insert(Hash(0))
	tree.Insert(Hash(0b1))  // attaches as a child of root at distance 1
	tree.Insert(Hash(0b10)) // distance 1 from root is taken, so attaches under 0b1 at distance 2

	h, ok := tree.FindClosest(Hash(0b11), 1)
	require.True(t, ok)
	assert.Equal(t, Hash(0b1), h, "the first distance-1 candidate in pre-order wins the tie")
}

func TestRadiusForSimilarity(t *testing.T) {
	assert.Equal(t, 0, RadiusForSimilarity(1.0))
	assert.Equal(t, 12, RadiusForSimilarity(0.8))
	assert.Equal(t, 6, RadiusForSimilarity(0.9))
	assert.Equal(t, 64, RadiusForSimilarity(0.0))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(Hash(0xAAAA), Hash(0xAAAA)))
	assert.Equal(t, 64, Distance(Hash(0), Hash(^uint64(0))))
}
