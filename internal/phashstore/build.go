package phashstore

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nanoskript/touhou-index/internal/phash"
)

// ThumbnailSource is the minimal view of an entry the hash builder needs:
// its key and its ordered raw thumbnail blobs. internal/entry.Entry
// satisfies this implicitly, without phashstore importing internal/entry.
type ThumbnailSource interface {
	Key() string
	Thumbnails() [][]byte
}

type hashResult struct {
	key    string
	hashes []phash.Hash
}

// BuildAll regenerates the hash store for every source, in the `build-hashes`
// CLI's scope (spec §6). Hash computation fans out across a worker pool
// bounded by workers (0 means runtime.NumCPU), while all store writes are
// funnelled through a single writer goroutine so the underlying gokv.Store
// only ever sees one writer at a time, per the concurrency model in §5.
func (s *Store) BuildAll(ctx context.Context, sources []ThumbnailSource, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan hashResult, workers)
	writeErr := make(chan error, 1)

	go func() {
		defer close(writeErr)
		for result := range results {
			if err := s.Put(result.key, result.hashes); err != nil {
				writeErr <- err
				// Keep draining so producers never block on a full channel
				// after the writer has given up.
				for range results {
				}
				return
			}
		}
	}()

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for _, source := range sources {
		source := source
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			hashes := phash.HashesForThumbnails(source.Thumbnails())
			s.logger.Log("hashed %s (%d variants)", source.Key(), len(hashes))

			select {
			case results <- hashResult{key: source.Key(), hashes: hashes}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	groupErr := group.Wait()
	close(results)

	if err := <-writeErr; err != nil {
		return err
	}
	return groupErr
}
