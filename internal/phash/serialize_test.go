package phash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	original := []Hash{0x1, 0xFFFFFFFFFFFFFFFF, 0xABCDEF0123456789, 0}

	s := SerializeH8s(original)
	assert.Equal(t, "0000000000000001 ffffffffffffffff abcdef0123456789 0000000000000000", s)

	round, err := DeserializeH8s(s)
	require.NoError(t, err)
	assert.Equal(t, original, round)
}

func TestSerializeEmpty(t *testing.T) {
	assert.Equal(t, "", SerializeH8s(nil))

	round, err := DeserializeH8s("")
	require.NoError(t, err)
	assert.Nil(t, round)
}

func TestDeserializeInvalidToken(t *testing.T) {
	_, err := DeserializeH8s("not-hex")
	assert.Error(t, err)
}
