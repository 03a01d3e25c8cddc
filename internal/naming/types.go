package naming

// Category is the classification lane assigned to one media file.
type Category string

const (
	CategoryEpisode Category = "episode"
	CategoryOP      Category = "op"
	CategoryED      Category = "ed"
	CategoryOVA     Category = "ova"
	CategoryONA     Category = "ona"
	CategoryOAD     Category = "oad"
	CategorySP      Category = "sp"
	CategoryExtras  Category = "extras"
	CategoryDash    Category = "dash"
)

// IsSpecial reports whether the category is one of the special tags
// (OVA/ONA/OAD/SP) that collapse into a single ordering rank.
func (c Category) IsSpecial() bool {
	switch c {
	case CategoryOVA, CategoryONA, CategoryOAD, CategorySP:
		return true
	}
	return false
}

// MediaRecord is one classified file. Records are transient and rebuilt
// from disk on every run; only the novelty store persists between runs.
type MediaRecord struct {
	SeriesKey     string
	Filename      string
	SizeBytes     int64
	EpisodeNumber int // valid only when HasEpisode
	HasEpisode    bool
	VersionSuffix string
	Label         string
	Category      Category
	CRC32         string
	CRCFromName   bool
}
