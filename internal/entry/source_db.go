package entry

import (
	"fmt"
	"strings"
	"time"
)

// DBPost is the subset of a Danbooru post's fields the pool entry needs.
type DBPost struct {
	Rating           string // "e" (explicit), "q" (questionable), "s"/"g" (safe/general)
	TagStringCharacter string
	TagStringMeta      string
	TagStringArtist    string
}

// DBEntry is a Danbooru pool (a curated post sequence), identified by
// pool_id.
type DBEntry struct {
	PoolID    int
	Name      string
	CreatedAt time.Time
	Posts     []DBPost
	Thumbnail []byte
	PixivID   int // 0 means absent
	Comments  int
	Linked    []Entry
}

var _ Entry = (*DBEntry)(nil)

func (e *DBEntry) Key() string    { return fmt.Sprintf("db-%d", e.PoolID) }
func (e *DBEntry) Source() Source { return SourceDanbooru }

func (e *DBEntry) Title() string {
	return strings.ReplaceAll(e.Name, "_", " ")
}

func (e *DBEntry) BookTitleCandidates() []string {
	return []string{NormalizeTouhouTitle(e.Title())}
}

func (e *DBEntry) Thumbnails() [][]byte {
	if e.Thumbnail == nil {
		return nil
	}
	return [][]byte{e.Thumbnail}
}

func (e *DBEntry) Date() (time.Time, bool) {
	if e.CreatedAt.IsZero() {
		return time.Time{}, false
	}
	return e.CreatedAt.UTC(), true
}

func (e *DBEntry) URL() (string, bool) {
	return fmt.Sprintf("https://danbooru.donmai.us/pools/%d", e.PoolID), true
}

// Language is English iff at least half of the pool's posts carry a
// "translated" meta tag, else Japanese, per §4.1.
func (e *DBEntry) Language() (string, bool) {
	if PoolTranslationRatio(e) >= 0.5 {
		return "English", true
	}
	return "Japanese", true
}

func (e *DBEntry) PageCount() (int, bool) {
	return len(e.Posts), true
}

// CharactersCertain keeps any character tag appearing on at least 20% of
// the pool's posts, per §4.1.
func (e *DBEntry) CharactersCertain() []string {
	if len(e.Posts) == 0 {
		return nil
	}

	appearances := make(map[string]int)
	for _, post := range e.Posts {
		for _, tag := range strings.Fields(post.TagStringCharacter) {
			name := titleCase(strings.ReplaceAll(tag, "_", " "))
			appearances[name]++
		}
	}

	threshold := 0.2 * float64(len(e.Posts))
	var characters []string
	for name, count := range appearances {
		if float64(count) >= threshold {
			characters = append(characters, name)
		}
	}
	return sortedUnique(characters)
}

func (e *DBEntry) CharactersPlausible() []string { return nil }
func (e *DBEntry) Pairings() []Pairing           { return nil }
func (e *DBEntry) TagsCertain() []string         { return nil }
func (e *DBEntry) TagsPlausible() []string       { return nil }

func (e *DBEntry) Artists() []string {
	seen := make(map[string]bool)
	var artists []string
	for _, post := range e.Posts {
		for _, artist := range strings.Fields(post.TagStringArtist) {
			if !seen[artist] {
				seen[artist] = true
				artists = append(artists, artist)
			}
		}
	}
	return artists
}

func (e *DBEntry) Descriptions() map[string]string { return nil }

func (e *DBEntry) CommentsCount() (int, bool) {
	return e.Comments, true
}

func (e *DBEntry) SeriesHint() (SeriesHint, bool) { return SeriesHint{}, false }

// LinkedEntries surfaces the Pixiv entry this Danbooru pool references via
// its pixiv_id, if one was resolved by the Pixiv collaborator (§4.8 step 4).
func (e *DBEntry) LinkedEntries() []Entry { return e.Linked }

// PoolTranslationRatio is the fraction of posts in the pool carrying a
// "translated" meta tag.
func PoolTranslationRatio(e *DBEntry) float64 {
	if len(e.Posts) == 0 {
		return 0
	}
	var translated int
	for _, post := range e.Posts {
		if strings.Contains(post.TagStringMeta, "translated") {
			translated++
		}
	}
	return float64(translated) / float64(len(e.Posts))
}

// FilterDBEntries applies the Danbooru rating discard policy from §4.1:
// a pool is discarded if explicit posts are >= 10% or questionable posts
// are >= 30% of the pool.
func FilterDBEntries(entries []*DBEntry) []*DBEntry {
	var kept []*DBEntry
	for _, e := range entries {
		if len(e.Posts) == 0 {
			kept = append(kept, e)
			continue
		}

		var explicit, questionable int
		for _, post := range e.Posts {
			switch post.Rating {
			case "e":
				explicit++
			case "q":
				questionable++
			}
		}

		total := float64(len(e.Posts))
		if float64(explicit)/total >= 0.1 {
			continue
		}
		if float64(questionable)/total >= 0.3 {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
