// Package phashstore implements C1, the perceptual hash store: a
// persistent key-value table mapping an entry key to its ordered list of
// 64-bit pHashes, per the schema in spec §6
// ("a table (id TEXT PRIMARY KEY, h8s TEXT)").
package phashstore

import (
	"github.com/philippgille/gokv"

	"github.com/nanoskript/touhou-index/internal/logger"
	"github.com/nanoskript/touhou-index/internal/phash"
)

// Error is the sentinel error type for phashstore operations.
type Error string

func (e Error) Error() string {
	return "phashstore: " + string(e)
}

// Store wraps a gokv.Store keyed by entry key, storing the h8s column as
// defined in spec §6 (space-separated lower-hex tokens, match-priority
// ordered). Any gokv backend works here unchanged (syncmap for tests, a
// Redis or bbolt-backed store in production).
type Store struct {
	kv     gokv.Store
	logger *logger.Logger
}

// New constructs a Store over the given gokv.Store.
func New(kv gokv.Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.New()
	}
	return &Store{kv: kv, logger: log}
}

// HashesOf implements the C1 contract `hashes_of(entry_key)`. A key with no
// stored row yields an empty, non-error result: such an entry is treated as
// an orphan by downstream consumers, not as a store failure.
func (s *Store) HashesOf(key string) ([]phash.Hash, error) {
	var encoded string
	found, err := s.kv.Get(key, &encoded)
	if err != nil {
		return nil, Error(err.Error())
	}
	if !found {
		return nil, nil
	}
	return phash.DeserializeH8s(encoded)
}

// Put upserts the hash list for an entry key.
func (s *Store) Put(key string, hashes []phash.Hash) error {
	if err := s.kv.Set(key, phash.SerializeH8s(hashes)); err != nil {
		return Error(err.Error())
	}
	return nil
}

// Close releases the underlying gokv.Store.
func (s *Store) Close() error {
	return s.kv.Close()
}
