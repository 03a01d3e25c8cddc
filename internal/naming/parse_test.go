package naming

import (
	"testing"
)

func TestExtractCRC(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantOK   bool
	}{
		{
			name:     "uppercase CRC in brackets",
			filename: "Show_-_01_(1080p)_[A1B2C3D4].mkv",
			want:     "A1B2C3D4",
			wantOK:   true,
		},
		{
			name:     "lowercase CRC normalized",
			filename: "Show_-_01_[a1b2c3d4].mkv",
			want:     "A1B2C3D4",
			wantOK:   true,
		},
		{
			name:     "seven hex digits is not a CRC",
			filename: "Show_-_01_[A1B2C3D].mkv",
			wantOK:   false,
		},
		{
			name:     "parenthesized hex is not a CRC",
			filename: "Show_-_01_(A1B2C3D4).mkv",
			wantOK:   false,
		},
		{
			name:     "no CRC at all",
			filename: "Show_-_01.mkv",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCRC(tt.filename)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractCRC(%q) = (%q, %v), want (%q, %v)", tt.filename, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractVersionSuffix(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Show_-_01v2_(BD).mkv", "v2"},
		{"Show_-_05V3.mkv", "v3"},
		{"Show_-_12v10.mkv", "v10"},
		{"Show_-_01.mkv", ""},
		{"Show_v2_-_01.mkv", ""}, // v must follow digits
	}

	for _, tt := range tests {
		if got := ExtractVersionSuffix(tt.filename); got != tt.want {
			t.Errorf("ExtractVersionSuffix(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestFindEpisodeNumber(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     int
		wantOK   bool
	}{
		{
			name:     "conventional dash layout",
			filename: "Show_Name_-_07_(CRC1234).mkv",
			want:     7,
			wantOK:   true,
		},
		{
			name:     "resolution in parens ignored",
			filename: "Show_Name_-_12_(BD_1080p)_[A1B2C3D4].mkv",
			want:     12,
			wantOK:   true,
		},
		{
			name:     "bare 720 is never an episode",
			filename: "Show_-_720.mkv",
			wantOK:   false,
		},
		{
			name:     "bare 1080 is never an episode",
			filename: "Show_-_1080.mkv",
			wantOK:   false,
		},
		{
			name:     "four digit run excluded",
			filename: "Show_-_2025.mkv",
			wantOK:   false,
		},
		{
			name:     "unstripped resolution after dash falls back to earlier number",
			filename: "Show_03_-_720p.mkv",
			want:     3,
			wantOK:   true,
		},
		{
			name:     "no dash uses whole name",
			filename: "Show_Episode_08.mkv",
			want:     8,
			wantOK:   true,
		},
		{
			name:     "version suffix does not confuse the number",
			filename: "Show_-_09v2_(BD).mkv",
			want:     9,
			wantOK:   true,
		},
		{
			name:     "fallback picks last valid number",
			filename: "2_Shows_Collection_05_-_extras.mkv",
			want:     5,
			wantOK:   true,
		},
		{
			name:     "no digits at all",
			filename: "Show_-_Extras.mkv",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindEpisodeNumber(tt.filename)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("FindEpisodeNumber(%q) = (%d, %v), want (%d, %v)", tt.filename, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Episode numbers must stay below 1000 and never equal a resolution,
// whatever the input looks like.
func TestFindEpisodeNumber_ExclusionInvariant(t *testing.T) {
	inputs := []string{
		"Show_-_720.mkv",
		"Show_-_1080.mkv",
		"Show_720_-_1080.mkv",
		"Show_-_999.mkv",
		"Show_-_100_720_1080.mkv",
	}
	for _, in := range inputs {
		if n, ok := FindEpisodeNumber(in); ok {
			if n == 720 || n == 1080 || n >= 1000 {
				t.Errorf("FindEpisodeNumber(%q) returned excluded value %d", in, n)
			}
		}
	}
}

func TestSeriesKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Show_Name_-_07_(BD).mkv", "Show_Name"},
		{"Show Name - 07 (BD).mkv", "Show Name"},
		{"Show_Name_-_OP1_(BD).mkv", "Show_Name_-_OP1_(BD).mkv"},
		{"NoMarkerAtAll.mkv", "NoMarkerAtAll.mkv"},
	}

	for _, tt := range tests {
		if got := SeriesKey(tt.filename); got != tt.want {
			t.Errorf("SeriesKey(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
