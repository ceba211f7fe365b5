// Package imagetree implements C3, the entry-list image tree: it wraps a
// BK-tree of perceptual hashes to assign entries to EntryLists by visual
// similarity, with each hash owned by exactly one list.
package imagetree

import (
	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/phash"
)

// EntryList is a mutable ordered collection of entries deemed to depict the
// same work; the first entry is the canonical representative used for
// thumbnail and primary title (§3).
type EntryList struct {
	Entries []entry.Entry
}

// HashSource exposes the hashes backing an entry's thumbnails, as produced
// by C1 (phashstore) for its key.
type HashSource interface {
	HashesOf(key string) ([]phash.Hash, error)
}

// Tree is the C3 state: a BK-tree, a hash-ownership map, and an orphan list.
// Determinism depends on insertion order (§4.4), so callers must insert in a
// fixed, reproducible sequence.
type Tree struct {
	hashes HashSource
	bk     *phash.BKTree
	owner  map[phash.Hash]*EntryList
	groups []*EntryList // first-seen order, for deterministic output
	seen   map[*EntryList]bool
	orphan []entry.Entry
}

// New constructs an empty image tree backed by the given hash source.
func New(hashes HashSource) *Tree {
	return &Tree{
		hashes: hashes,
		bk:     phash.New(),
		owner:  make(map[phash.Hash]*EntryList),
		seen:   make(map[*EntryList]bool),
	}
}

// Seed registers every entry of each initial list against this tree without
// running similarity matching, used by the gallery grouper's Phase B to
// pre-register Phase A's lists (§4.5).
func (t *Tree) Seed(initial []*EntryList) {
	for _, group := range initial {
		for _, e := range group.Entries {
			hs, _ := t.hashes.HashesOf(e.Key())
			t.claim(hs, group)
		}
	}
}

// claim registers every hash in hs not already owned against group, and
// inserts newly-claimed hashes into the BK-tree.
func (t *Tree) claim(hs []phash.Hash, group *EntryList) {
	if !t.seen[group] {
		t.seen[group] = true
		t.groups = append(t.groups, group)
	}
	for _, h := range hs {
		if _, owned := t.owner[h]; owned {
			continue
		}
		t.owner[h] = group
		t.bk.Insert(h)
	}
}

// AddOrCreate implements §4.4's add_or_create: it looks up the entry's
// hashes, in priority order, for a BK-tree match within the similarity
// radius; on a hit it appends the entry to the owning list, otherwise it
// starts a new singleton list. Entries with no hashes are appended to the
// orphan list instead.
func (t *Tree) AddOrCreate(e entry.Entry, similarity float64) error {
	hs, err := t.hashes.HashesOf(e.Key())
	if err != nil {
		return err
	}
	if len(hs) == 0 {
		t.orphan = append(t.orphan, e)
		return nil
	}

	radius := phash.RadiusForSimilarity(similarity)
	var group *EntryList
	for _, h := range hs {
		if closest, ok := t.bk.FindClosest(h, radius); ok {
			group = t.owner[closest]
			group.Entries = append(group.Entries, e)
			break
		}
	}
	if group == nil {
		group = &EntryList{Entries: []entry.Entry{e}}
	}
	t.claim(hs, group)
	return nil
}

// AllEntryLists returns the distinct lists reachable from the hash-ownership
// map, plus one singleton list per orphan, de-duplicated by pointer
// identity (not structural equality), per §4.4.
func (t *Tree) AllEntryLists() []*EntryList {
	all := make([]*EntryList, len(t.groups))
	copy(all, t.groups)
	for _, o := range t.orphan {
		all = append(all, &EntryList{Entries: []entry.Entry{o}})
	}
	return all
}
