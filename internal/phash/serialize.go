package phash

import (
	"fmt"
	"strconv"
	"strings"
)

// SerializeH8s renders an ordered hash list as the space-separated, lower-hex
// 16-character token string stored in the perceptual-hash table's h8s
// column (§6).
func SerializeH8s(hashes []Hash) string {
	tokens := make([]string, len(hashes))
	for i, h := range hashes {
		tokens[i] = fmt.Sprintf("%016x", uint64(h))
	}
	return strings.Join(tokens, " ")
}

// DeserializeH8s parses the h8s column back into its ordered hash list.
// Round-tripping through SerializeH8s/DeserializeH8s yields the original
// list: the per-token ordering is never re-sorted.
func DeserializeH8s(s string) ([]Hash, error) {
	if s == "" {
		return nil, nil
	}

	tokens := strings.Fields(s)
	hashes := make([]Hash, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("phash: invalid h8 token %q: %w", tok, err)
		}
		hashes[i] = Hash(v)
	}
	return hashes, nil
}
