package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xlordnoro/postar/internal/naming"
)

func rec(filename string) naming.MediaRecord {
	c := naming.Classify(filename)
	return naming.MediaRecord{
		SeriesKey:     naming.SeriesKey(filename),
		Filename:      filename,
		EpisodeNumber: c.EpisodeNumber,
		HasEpisode:    c.HasEpisode,
		Label:         c.Label,
		Category:      c.Category,
	}
}

func filenames(records []naming.MediaRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Filename
	}
	return out
}

func TestSortFlat(t *testing.T) {
	records := []naming.MediaRecord{
		rec("Show_-_Extras_(BD).mkv"),
		rec("Show_-_OP1_(BD).mkv"),
		rec("Show_-_07_(BD).mkv"),
	}
	Sort(records, Flat)
	assert.Equal(t, []string{
		"Show_-_07_(BD).mkv",
		"Show_-_OP1_(BD).mkv",
		"Show_-_Extras_(BD).mkv",
	}, filenames(records))
}

func TestSortFlat_CategoryPrecedence(t *testing.T) {
	records := []naming.MediaRecord{
		rec("Show_-_Extras_(BD).mkv"),
		rec("Show_-_fujimaru_(BD).mkv"),
		rec("Show_-_OP1_(BD).mkv"),
		rec("Show_-_ED1_(BD).mkv"),
		rec("Show_-_OVA1_(BD).mkv"),
		rec("Show_-_02_(BD).mkv"),
		rec("Show_-_01_(BD).mkv"),
	}
	Sort(records, Flat)
	assert.Equal(t, []string{
		"Show_-_01_(BD).mkv",
		"Show_-_02_(BD).mkv",
		"Show_-_OVA1_(BD).mkv",
		"Show_-_ED1_(BD).mkv",
		"Show_-_OP1_(BD).mkv",
		"Show_-_fujimaru_(BD).mkv",
		"Show_-_Extras_(BD).mkv",
	}, filenames(records))
}

func TestSortGrouped(t *testing.T) {
	records := []naming.MediaRecord{
		rec("Zeta_Show_-_01_(BD).mkv"),
		rec("alpha_show_-_02_(BD).mkv"),
		rec("Alpha_Show_-_01_(BD).mkv"),
		rec("Alpha_Show_-_OP1_(BD).mkv"),
	}
	Sort(records, Grouped)
	assert.Equal(t, []string{
		"Alpha_Show_-_01_(BD).mkv",
		"alpha_show_-_02_(BD).mkv",
		"Alpha_Show_-_OP1_(BD).mkv",
		"Zeta_Show_-_01_(BD).mkv",
	}, filenames(records))
}

// Sorting twice must give the same sequence: the filename tiebreak makes
// the order strict, so a re-sort cannot reshuffle equal-rank records.
func TestSort_Idempotent(t *testing.T) {
	for _, mode := range []Mode{Flat, Grouped} {
		records := []naming.MediaRecord{
			rec("Show_-_OP1_(BD).mkv"),
			rec("Show_-_op1_(bd).mkv"),
			rec("Show_-_03_(BD).mkv"),
			rec("Show_-_Extras_(BD).mkv"),
			rec("Other_-_01_(BD).mkv"),
		}
		Sort(records, mode)
		first := filenames(records)
		Sort(records, mode)
		require.Equal(t, first, filenames(records), "mode %d", mode)
	}
}

func TestSort_MissingEpisodeLast(t *testing.T) {
	broken := rec("Show_-_07_(BD).mkv")
	broken.HasEpisode = false
	broken.EpisodeNumber = 0

	records := []naming.MediaRecord{broken, rec("Show_-_01_(BD).mkv")}
	Sort(records, Flat)
	assert.Equal(t, "Show_-_01_(BD).mkv", records[0].Filename)
}

func TestRank(t *testing.T) {
	tests := []struct {
		category naming.Category
		want     int
	}{
		{naming.CategoryEpisode, 0},
		{naming.CategoryOVA, 1},
		{naming.CategoryONA, 1},
		{naming.CategoryOAD, 1},
		{naming.CategorySP, 1},
		{naming.CategoryED, 2},
		{naming.CategoryOP, 3},
		{naming.CategoryDash, 4},
		{naming.CategoryExtras, 5},
		{naming.Category("bogus"), unknownCategoryRank},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rank(tt.category), "rank of %q", tt.category)
	}
}
