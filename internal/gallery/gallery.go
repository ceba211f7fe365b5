// Package gallery implements C5, the two-phase gallery grouper: it is used
// only for EH entries, and its groupings are seeded into an imagetree.Tree
// before any other source is merged (§4.5).
package gallery

import (
	"sort"
	"strings"

	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/imagetree"
)

const (
	intraCircleSimilarity = 0.8
	crossCircleSimilarity = 0.9
)

// circleKey joins a gallery's circle (or, failing that, artist) tags into
// the sorted-tuple bucket key of Phase A (§4.5).
func circleKey(e *entry.EHEntry) (string, bool) {
	circles := entry.GalleryCircles(e)
	if len(circles) == 0 {
		circles = entry.GalleryArtists(e)
	}
	if len(circles) == 0 {
		return "", false
	}
	sorted := append([]string(nil), circles...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00"), true
}

// orderUntranslatedFirst stable-partitions entries so every untranslated
// entry precedes every translated one, preserving relative order within
// each partition — the ordering §4.5 requires so the canonical
// representative of each resulting list is an original-language edition.
func orderUntranslatedFirst(entries []*entry.EHEntry) []*entry.EHEntry {
	ordered := make([]*entry.EHEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsTranslated() {
			ordered = append(ordered, e)
		}
	}
	for _, e := range entries {
		if e.IsTranslated() {
			ordered = append(ordered, e)
		}
	}
	return ordered
}

// Group runs the two-phase grouping over every EH entry and returns the
// resulting entry lists. hashes backs every imagetree.Tree constructed
// during grouping.
func Group(entries []*entry.EHEntry, hashes imagetree.HashSource) ([]*imagetree.EntryList, error) {
	buckets := make(map[string][]*entry.EHEntry)
	var bucketOrder []string
	var orphans []*entry.EHEntry

	for _, e := range entries {
		key, ok := circleKey(e)
		if !ok {
			orphans = append(orphans, e)
			continue
		}
		if _, exists := buckets[key]; !exists {
			bucketOrder = append(bucketOrder, key)
		}
		buckets[key] = append(buckets[key], e)
	}

	// Phase A: per-circle buckets, each its own fresh tree at similarity 0.8.
	var phaseA []*imagetree.EntryList
	for _, key := range bucketOrder {
		tree := imagetree.New(hashes)
		for _, e := range orderUntranslatedFirst(buckets[key]) {
			if err := tree.AddOrCreate(e, intraCircleSimilarity); err != nil {
				return nil, err
			}
		}
		phaseA = append(phaseA, tree.AllEntryLists()...)
	}

	// Phase B: cross-bucket, seeded with Phase A's lists, then orphans at 0.9.
	crossTree := imagetree.New(hashes)
	crossTree.Seed(phaseA)
	for _, e := range orderUntranslatedFirst(orphans) {
		if err := crossTree.AddOrCreate(e, crossCircleSimilarity); err != nil {
			return nil, err
		}
	}

	return crossTree.AllEntryLists(), nil
}
