// Package series implements C7, series coalescence: a disjoint-set merge of
// every series key declared across entry lists, picking a root per
// connected component ("super-series") and dropping singletons.
//
// No example repo in the pack ships a disjoint-set/union-find
// implementation (the original Python used scipy.cluster.hierarchy's), so
// this is a small hand-rolled union-find with path compression, grounded
// directly on original_source/scripts/build_index.py's coalesce_book_series.
package series

import (
	"sort"

	"github.com/nanoskript/touhou-index/internal/entry"
)

// unionFind is a disjoint-set over string keys with path compression. Union
// does not use union-by-rank: callers need the *first-inserted* member of a
// component as its root (see Coalesce), which is tracked separately via
// insertion order rather than left to the union-find's internal root
// choice.
type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) add(key string) {
	if _, ok := u.parent[key]; !ok {
		u.parent[key] = key
	}
}

func (u *unionFind) find(key string) string {
	root := key
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[key] != root {
		u.parent[key], key = root, u.parent[key]
	}
	return root
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}

// Series is the output record for a coalesced super-series: Key is the
// first-inserted series key among its merged members, Title is that key's
// declared title, and Comments is the sum of comment counts across every
// merged series.
type Series struct {
	Key      string
	Title    string
	Comments int
}

// Result is Coalesce's output: the super-series records, plus for each
// book index (position in the listHints argument) the index into Series
// that book belongs to. A book is absent from BookSeries if it declared no
// series hint, or if its super-series was dropped for having only one book.
type Result struct {
	Series     []Series
	BookSeries map[int]int
}

// Coalesce implements §4.7. listHints[i] is the ordered, non-empty series
// hints declared by entries of the i-th list (in entry order); a list with
// no hints should pass an empty/nil slice.
func Coalesce(listHints [][]entry.SeriesHint) Result {
	uf := newUnionFind()
	byKey := make(map[string]entry.SeriesHint)
	insertOrder := make(map[string]int)
	order := 0

	// bookKeys[i] is the first non-empty series key declared by book i,
	// determining that book's single super-series membership (§4.7: "For
	// each L, the first non-empty series_hint determines membership").
	bookKeys := make(map[int]string)

	for book, hints := range listHints {
		var lastKey string
		for i, hint := range hints {
			if _, seen := byKey[hint.Key]; !seen {
				byKey[hint.Key] = hint
				insertOrder[hint.Key] = order
				order++
			}
			uf.add(hint.Key)
			if i == 0 {
				bookKeys[book] = hint.Key
			} else {
				uf.union(lastKey, hint.Key)
			}
			lastKey = hint.Key
		}
	}

	// Group every inserted key by its union-find root.
	membersByRoot := make(map[string][]string)
	for key := range byKey {
		root := uf.find(key)
		membersByRoot[root] = append(membersByRoot[root], key)
	}

	// Within each component, the true root is the first-inserted member
	// (not necessarily the union-find's internal root), per §4.7.
	trueRootOf := make(map[string]string) // union-find root -> true root key
	for ufRoot, members := range membersByRoot {
		first := members[0]
		for _, m := range members[1:] {
			if insertOrder[m] < insertOrder[first] {
				first = m
			}
		}
		trueRootOf[ufRoot] = first
	}

	bookCountByRoot := make(map[string]int)
	for _, key := range bookKeys {
		bookCountByRoot[trueRootOf[uf.find(key)]]++
	}

	// Distinct roots, ordered by insertion order for reproducible output
	// independent of Go's randomized map iteration.
	var roots []string
	for ufRoot := range membersByRoot {
		roots = append(roots, trueRootOf[ufRoot])
	}
	sort.Slice(roots, func(i, j int) bool {
		return insertOrder[roots[i]] < insertOrder[roots[j]]
	})

	var seriesOut []Series
	seriesIndexByRoot := make(map[string]int)
	for _, root := range roots {
		if bookCountByRoot[root] < 2 {
			continue // dropped: only one associated book, per §4.7
		}

		comments := 0
		for _, m := range membersByRoot[uf.find(root)] {
			comments += byKey[m].Comments
		}
		seriesIndexByRoot[root] = len(seriesOut)
		seriesOut = append(seriesOut, Series{
			Key:      root,
			Title:    byKey[root].Title,
			Comments: comments,
		})
	}

	bookSeries := make(map[int]int)
	for book, key := range bookKeys {
		root := trueRootOf[uf.find(key)]
		if idx, ok := seriesIndexByRoot[root]; ok {
			bookSeries[book] = idx
		}
	}

	return Result{Series: seriesOut, BookSeries: bookSeries}
}
