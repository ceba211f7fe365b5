// Package builder implements C8, the index assembler: it drives C1-C7 end
// to end inside a single atomic rebuild, per spec §4.8.
package builder

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/nanoskript/touhou-index/internal/canon"
	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/gallery"
	"github.com/nanoskript/touhou-index/internal/imagetree"
	"github.com/nanoskript/touhou-index/internal/indexstore"
	"github.com/nanoskript/touhou-index/internal/logger"
	"github.com/nanoskript/touhou-index/internal/series"
)

// Error is the sentinel error type for builder operations.
type Error string

func (e Error) Error() string {
	return "builder: " + string(e)
}

// Options configures Build, following the teacher's Options/DefaultOptions
// idiom rather than ambient configuration.
type Options struct {
	Hashes                imagetree.HashSource
	Wiki                  canon.WikiLookup
	Logger                *logger.Logger
	CrossSourceSimilarity float64
}

// DefaultOptions returns sensible Build defaults; Hashes must still be set
// by the caller (there is no meaningful default hash source).
func DefaultOptions() Options {
	return Options{
		CrossSourceSimilarity: 0.9,
		Logger:                logger.New(),
	}
}

// Sources holds every collaborator's filtered entry records, grouped by
// source. EH is handled separately by the gallery grouper (C5); every other
// field is inserted in this fixed declared order (§6), matching the
// "eh, db, ds, md, org, cth, mb, tora, px" prefix table (px never appears
// here: it is linked-only, reached solely through Danbooru's
// LinkedEntries).
type Sources struct {
	EH         []*entry.EHEntry
	Danbooru   []*entry.DBEntry
	Dynasty    []*entry.DSEntry
	MangaDex   []*entry.MDEntry
	Doujinshi  []*entry.OrgEntry
	CTH        []*entry.CTHEntry
	Melonbooks []*entry.MBEntry
	Toranoana  []*entry.ToraEntry
}

// Result is Build's output: the assembled Snapshot ready for
// indexstore.Store.Rebuild, plus summary counts for logging.
type Result struct {
	Snapshot indexstore.Snapshot
	Books    int
	Series   int
	Entries  int
}

// Build executes §4.8 steps 1-5, producing a Snapshot ready for an atomic
// index-store rebuild (step 6, left to the caller via indexstore.Store so
// this package stays independent of any particular storage backend).
func Build(ctx context.Context, sources Sources, options Options) (Result, error) {
	if options.Hashes == nil {
		return Result{}, Error("no hash source configured")
	}
	if options.Logger == nil {
		options.Logger = logger.New()
	}
	if options.CrossSourceSimilarity == 0 {
		options.CrossSourceSimilarity = 0.9
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Step 1+2: gallery grouping, then a top-level tree seeded with its
	// lists, with every other source inserted at the cross-source
	// similarity in the fixed declared order.
	phaseA, err := gallery.Group(sources.EH, options.Hashes)
	if err != nil {
		return Result{}, errors.Wrap(err, "builder: gallery grouping")
	}

	tree := imagetree.New(options.Hashes)
	tree.Seed(phaseA)

	sim := options.CrossSourceSimilarity
	for _, e := range sources.Danbooru {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert danbooru entry")
		}
	}
	for _, e := range sources.Dynasty {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert dynasty entry")
		}
	}
	for _, e := range sources.MangaDex {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert mangadex entry")
		}
	}
	for _, e := range sources.Doujinshi {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert doujinshi.org entry")
		}
	}
	for _, e := range sources.CTH {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert comic.thproject.net entry")
		}
	}
	for _, e := range sources.Melonbooks {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert melonbooks entry")
		}
	}
	for _, e := range sources.Toranoana {
		if err := tree.AddOrCreate(e, sim); err != nil {
			return Result{}, errors.Wrap(err, "builder: insert toranoana entry")
		}
	}

	// Step 3.
	lists := tree.AllEntryLists()

	// Step 4: append linked entries (e.g. Pixiv via Danbooru's pixiv_id)
	// without letting them participate in clustering.
	for _, list := range lists {
		var linked []entry.Entry
		for _, e := range list.Entries {
			linked = append(linked, e.LinkedEntries()...)
		}
		list.Entries = append(list.Entries, linked...)
	}

	// Step 5: series coalescence.
	hints := make([][]entry.SeriesHint, len(lists))
	for i, list := range lists {
		for _, e := range list.Entries {
			if hint, ok := e.SeriesHint(); ok {
				hints[i] = append(hints[i], hint)
			}
		}
	}
	seriesResult := series.Coalesce(hints)

	options.Logger.Log("assembled %d entry lists, %d super-series", len(lists), len(seriesResult.Series))

	snapshot := assemble(lists, seriesResult, sources, options)
	return Result{
		Snapshot: snapshot,
		Books:    len(snapshot.Books),
		Series:   len(snapshot.Series),
		Entries:  len(snapshot.Entries),
	}, nil
}

// assemble implements §4.8 step 6's per-table construction (everything but
// the drop/recreate/batched-write mechanics, which belong to
// indexstore.Store.Rebuild).
func assemble(lists []*imagetree.EntryList, seriesResult series.Result, sources Sources, options Options) indexstore.Snapshot {
	characters := buildCharacterIndex(lists, options.Wiki)
	pairings := canon.NewPairingIndex(characters, dsAllPairings(sources.Dynasty))

	var snapshot indexstore.Snapshot

	for _, s := range seriesResult.Series {
		comments := s.Comments
		snapshot.Series = append(snapshot.Series, indexstore.Series{
			ID:       len(snapshot.Series),
			Title:    s.Title,
			Comments: &comments,
		})
	}

	artistSeen := make(map[string]bool)
	tagSeen := make(map[string]bool)
	characterSeen := make(map[string]bool)
	languageSeen := make(map[string]bool)
	entryByKey := make(map[string]int) // entry key -> index into snapshot.Entries

	for bookID, list := range lists {
		canonical := list.Entries[0]

		thumbID := fmt.Sprintf("thumb-%s", canonical.Key())
		if thumbs := canonical.Thumbnails(); len(thumbs) > 0 {
			snapshot.Thumbnails = append(snapshot.Thumbnails, indexstore.Thumbnail{ID: thumbID, Data: thumbs[0]})
		}

		var seriesID *int
		if idx, ok := seriesResult.BookSeries[bookID]; ok {
			id := idx
			seriesID = &id
		}

		mainTitle := ""
		if candidates := canonical.BookTitleCandidates(); len(candidates) > 0 {
			mainTitle = candidates[0]
		}

		snapshot.Books = append(snapshot.Books, indexstore.Book{
			ID:          bookID,
			MainTitle:   mainTitle,
			SeriesID:    seriesID,
			ThumbnailID: thumbID,
		})

		titleSeen := make(map[string]bool)
		descriptions := make(map[string]string)
		for _, e := range list.Entries {
			for _, title := range e.BookTitleCandidates() {
				if title != "" && !titleSeen[title] {
					titleSeen[title] = true
					snapshot.BookTitles = append(snapshot.BookTitles, indexstore.BookTitle{BookID: bookID, Title: title})
				}
			}
			for label, html := range e.Descriptions() {
				descriptions[label] = html // later entries overwrite earlier labels
			}
			for _, artist := range e.Artists() {
				name := canon.CanonicaliseArtist(artist)
				if !artistSeen[name] {
					artistSeen[name] = true
					snapshot.Artists = append(snapshot.Artists, name)
				}
				snapshot.BookArtists = append(snapshot.BookArtists, indexstore.BookJoin{BookID: bookID, Name: name})
			}
			for _, tag := range bookTags(e) {
				if !tagSeen[tag] {
					tagSeen[tag] = true
					snapshot.Tags = append(snapshot.Tags, tag)
				}
				snapshot.BookTags = append(snapshot.BookTags, indexstore.BookJoin{BookID: bookID, Name: tag})
			}
			for _, raw := range bookCharacters(e) {
				name := characters.Canonicalise(raw)
				if !characterSeen[name] {
					characterSeen[name] = true
					snapshot.Characters = append(snapshot.Characters, name)
				}
				snapshot.BookCharacters = append(snapshot.BookCharacters, indexstore.BookJoin{BookID: bookID, Name: name})
			}
			for _, pairing := range e.Pairings() {
				tag := canon.PairingTag(pairings.Canonicalise(pairing))
				if tag == "" {
					continue
				}
				if !tagSeen[tag] {
					tagSeen[tag] = true
					snapshot.Tags = append(snapshot.Tags, tag)
				}
				snapshot.BookTags = append(snapshot.BookTags, indexstore.BookJoin{BookID: bookID, Name: tag})
			}

			if lang, ok := e.Language(); ok && lang != "" {
				if !languageSeen[lang] {
					languageSeen[lang] = true
					snapshot.Languages = append(snapshot.Languages, lang)
				}
			}

			idx, seen := entryByKey[e.Key()]
			row := entryRow(e, bookID)
			if seen {
				snapshot.Entries[idx] = row // last-seen book assignment wins
			} else {
				entryByKey[e.Key()] = len(snapshot.Entries)
				snapshot.Entries = append(snapshot.Entries, row)
			}
		}

		for label, html := range descriptions {
			snapshot.BookDescriptions = append(snapshot.BookDescriptions, indexstore.BookDescription{
				BookID: bookID, Name: label, Details: html,
			})
		}
	}

	return snapshot
}

func entryRow(e entry.Entry, bookID int) indexstore.Entry {
	row := indexstore.Entry{ID: e.Key(), BookID: bookID, Title: e.Title()}
	if url, ok := e.URL(); ok {
		row.URL = &url
	}
	if date, ok := e.Date(); ok {
		row.Date = &date
	}
	if lang, ok := e.Language(); ok {
		row.Language = &lang
	}
	if pages, ok := e.PageCount(); ok {
		row.PageCount = &pages
	}
	if comments, ok := e.CommentsCount(); ok {
		row.Comments = &comments
	}
	return row
}

// bookTags merges certain and plausible tags; plausible tags are only kept
// when they resolve through the synonym table (§4.6).
func bookTags(e entry.Entry) []string {
	tags := append([]string(nil), e.TagsCertain()...)
	for _, tag := range e.TagsPlausible() {
		if synonym, ok := canon.IsPlausibleTagSynonym(tag); ok {
			tags = append(tags, synonym)
		}
	}
	return tags
}

func bookCharacters(e entry.Entry) []string {
	return append(append([]string(nil), e.CharactersCertain()...), e.CharactersPlausible()...)
}

// buildCharacterIndex tallies every certain/plausible character name
// observed across every list, keeps the names seen at least 20 times, and
// sorts them descending by frequency, feeding canon.NewCharacterIndex per
// §4.6.
func buildCharacterIndex(lists []*imagetree.EntryList, wiki canon.WikiLookup) *canon.CharacterIndex {
	const minCharacterCount = 20

	counts := make(map[string]int)
	var order []string
	for _, list := range lists {
		for _, e := range list.Entries {
			for _, name := range bookCharacters(e) {
				if _, seen := counts[name]; !seen {
					order = append(order, name)
				}
				counts[name]++
			}
		}
	}

	countsDescending := make([]canon.CharacterCount, 0, len(order))
	for _, name := range order {
		if counts[name] < minCharacterCount {
			continue
		}
		countsDescending = append(countsDescending, canon.CharacterCount{RawName: name, Count: counts[name]})
	}
	sort.SliceStable(countsDescending, func(i, j int) bool {
		return countsDescending[i].Count > countsDescending[j].Count
	})

	return canon.NewCharacterIndex(countsDescending, wiki)
}

func dsAllPairings(dynasty []*entry.DSEntry) []canon.Pairing {
	var out []canon.Pairing
	for _, p := range entry.AllPairings(dynasty) {
		out = append(out, canon.Pairing(p))
	}
	return out
}
