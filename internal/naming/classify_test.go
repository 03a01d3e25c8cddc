package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantCat   Category
		wantLabel string
	}{
		{
			name:      "numbered episode zero padded",
			filename:  "Show_Name_-_07_(BD)_[A1B2C3D4].mkv",
			wantCat:   CategoryEpisode,
			wantLabel: "07",
		},
		{
			name:      "episode with version bump",
			filename:  "Show_Name_-_07v2_(BD).mkv",
			wantCat:   CategoryEpisode,
			wantLabel: "07v2",
		},
		{
			name:      "opening with number",
			filename:  "Show_Name_-_OP1_(BD).mkv",
			wantCat:   CategoryOP,
			wantLabel: "OP1",
		},
		{
			name:      "ending with separator stripped",
			filename:  "Show_Name_-_ED_2_(BD).mkv",
			wantCat:   CategoryED,
			wantLabel: "ED2",
		},
		{
			name:      "ova beats the dash lane",
			filename:  "Show_-_OVA1_(BD).mkv",
			wantCat:   CategoryOVA,
			wantLabel: "OVA1",
		},
		{
			name:      "ona tag",
			filename:  "Show_-_ONA_(BD).mkv",
			wantCat:   CategoryONA,
			wantLabel: "ONA",
		},
		{
			name:      "oad with number",
			filename:  "Show_-_OAD2_(BD).mkv",
			wantCat:   CategoryOAD,
			wantLabel: "OAD2",
		},
		{
			name:      "sp with descriptive tokens",
			filename:  "Show_-_SP1_Picture_Drama_(BD).mkv",
			wantCat:   CategorySP,
			wantLabel: "SP1_Picture_Drama",
		},
		{
			name:      "sp with decimal",
			filename:  "Show_-_SP08.5_(BD).mkv",
			wantCat:   CategorySP,
			wantLabel: "SP08.5",
		},
		{
			name:      "sp inside a word does not match",
			filename:  "Show_-_Special_Ending_(BD).mkv",
			wantCat:   CategoryDash,
			wantLabel: "SPECIAL_ENDING",
		},
		{
			name:      "extras literal",
			filename:  "Show_Name_-_Extras_(BD).mkv",
			wantCat:   CategoryExtras,
			wantLabel: "Extras",
		},
		{
			name:      "extras anywhere in the name",
			filename:  "Show_Name_Extras_Disc2_(BD).mkv",
			wantCat:   CategoryExtras,
			wantLabel: "Extras",
		},
		{
			name:      "movie with numbered suffix",
			filename:  "Show_-_Movie_08.5_(BD).mkv",
			wantCat:   CategoryDash,
			wantLabel: "Movie_08.5",
		},
		{
			name:      "movie without dash segment gets fallback label",
			filename:  "Show_Movie_(BD).mkv",
			wantCat:   CategoryDash,
			wantLabel: "MOVIE",
		},
		{
			name:      "free form dash label uppercased",
			filename:  "Show_-_fujimaru_S1_(BD_1080p).mkv",
			wantCat:   CategoryDash,
			wantLabel: "FUJIMARU_S1",
		},
		{
			name:      "dash segment starting with digit is an episode",
			filename:  "Show_-_01_(BD).mkv",
			wantCat:   CategoryEpisode,
			wantLabel: "01",
		},
		{
			name:      "later dash segments never override an episode",
			filename:  "Show_-_01_(x)_-_Omake_(BD).mkv",
			wantCat:   CategoryEpisode,
			wantLabel: "01",
		},
		{
			name:      "nothing matches falls back to extras with raw name",
			filename:  "Creditless_Logo.mkv",
			wantCat:   CategoryExtras,
			wantLabel: "Creditless_Logo.mkv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.filename)
			assert.Equal(t, tt.wantCat, got.Category, "category for %q", tt.filename)
			assert.Equal(t, tt.wantLabel, got.Label, "label for %q", tt.filename)
		})
	}
}

// Every filename classifies into exactly one category; the fallback
// guarantees nothing is ever dropped.
func TestClassify_Totality(t *testing.T) {
	inputs := []string{
		"", ".mkv", "???", "no_numbers_here.mkv",
		"Show_-_720.mkv", "[A1B2C3D4].mkv", "_-_.mkv",
	}
	for _, in := range inputs {
		c := Classify(in)
		assert.NotEmpty(t, c.Category, "Classify(%q) must assign a category", in)
	}
}

func TestClassify_EpisodeIffNumber(t *testing.T) {
	inputs := []string{
		"Show_-_07_(BD).mkv",
		"Show_-_OP1.mkv",
		"Show_-_Extras.mkv",
		"Show_-_fujimaru_(BD).mkv",
		"Creditless_Logo.mkv",
	}
	for _, in := range inputs {
		c := Classify(in)
		if (c.Category == CategoryEpisode) != c.HasEpisode {
			t.Errorf("Classify(%q): category %q with HasEpisode=%v", in, c.Category, c.HasEpisode)
		}
	}
}
