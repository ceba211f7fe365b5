// Package manifest loads per-source entry records staged on disk by the
// external scraping collaborators (spec.md §1: scrapers are declared as
// interfaces, outside the core). Each source writes a JSON array of its
// record shape to a well-known file; the CLIs in cmd/ load these manifests
// before handing entries to the core pipeline.
package manifest

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

// Error is the sentinel error type for manifest operations.
type Error string

func (e Error) Error() string {
	return "manifest: " + string(e)
}

// Load reads dataDir/name as a JSON array of T and returns one pointer per
// element. A missing file yields an empty, non-error result, so a
// deployment that only scrapes a subset of sources need not stage every
// manifest.
func Load[T any](fs afero.Fs, dataDir, name string) ([]*T, error) {
	path := filepath.Join(dataDir, name)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, Error(err.Error())
	}
	if !exists {
		return nil, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, Error(err.Error())
	}

	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, Error(err.Error())
	}

	out := make([]*T, len(values))
	for i := range values {
		out[i] = &values[i]
	}
	return out, nil
}
