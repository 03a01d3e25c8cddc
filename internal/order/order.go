// Package order produces the stable, deterministic sequence of
// classified records that the renderer consumes.
package order

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xlordnoro/postar/internal/naming"
)

// Mode selects between the two supported orderings.
type Mode int

const (
	// Flat orders by category precedence alone; the default for
	// single-series batches.
	Flat Mode = iota
	// Grouped orders by series key first, for folders carrying several
	// concurrently-airing series.
	Grouped
)

const (
	// missingEpisodeSentinel pushes malformed episode records to the end
	// of the episode lane.
	missingEpisodeSentinel = 9999
	// unknownCategoryRank sorts categories outside the precedence table
	// last.
	unknownCategoryRank = 999
)

var categoryRanks = map[naming.Category]int{
	naming.CategoryEpisode: 0,
	naming.CategoryED:      2,
	naming.CategoryOP:      3,
	naming.CategoryDash:    4,
	naming.CategoryExtras:  5,
}

const specialRank = 1

// Rank returns the precedence index of a category. The special tags
// (OVA/ONA/OAD/SP) collapse into one rank between episodes and EDs.
func Rank(c naming.Category) int {
	if c.IsSpecial() {
		return specialRank
	}
	if r, ok := categoryRanks[c]; ok {
		return r
	}
	return unknownCategoryRank
}

var caseless = collate.New(language.Und, collate.IgnoreCase)

// Sort orders records in place. The result is a strict total order in
// both modes: every comparison falls through to an exact filename
// tiebreak, so re-sorting an already-sorted slice is a no-op.
func Sort(records []naming.MediaRecord, mode Mode) {
	sort.SliceStable(records, func(i, j int) bool {
		return less(&records[i], &records[j], mode)
	})
}

func less(a, b *naming.MediaRecord, mode Mode) bool {
	if mode == Grouped {
		if c := caseless.CompareString(a.SeriesKey, b.SeriesKey); c != 0 {
			return c < 0
		}
	}

	ra, rb := Rank(a.Category), Rank(b.Category)
	if ra != rb {
		return ra < rb
	}

	if mode == Grouped || a.Category == naming.CategoryEpisode {
		ea, eb := episodeKey(a), episodeKey(b)
		if ea != eb {
			return ea < eb
		}
	}

	if c := caseless.CompareString(a.Filename, b.Filename); c != 0 {
		return c < 0
	}
	return a.Filename < b.Filename
}

func episodeKey(r *naming.MediaRecord) int {
	if r.HasEpisode {
		return r.EpisodeNumber
	}
	return missingEpisodeSentinel
}
