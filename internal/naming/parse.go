package naming

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	crcRegex     = regexp.MustCompile(`\[([0-9A-Fa-f]{8})\]`)
	versionRegex = regexp.MustCompile(`(?i)\d{1,3}(v\d{1,3})`)
	parenRegex   = regexp.MustCompile(`\([^)]*\)`)
	digitRunRegex = regexp.MustCompile(`\d+`)
	seriesKeyRegex = regexp.MustCompile(`-[_ ]?\d{1,3}`)
)

// ExtractCRC returns the bracketed 8-hex-digit CRC token from a filename,
// normalized to uppercase. The second return is false when the name
// carries no CRC and the caller must compute one from file content.
func ExtractCRC(filename string) (string, bool) {
	m := crcRegex.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// ExtractVersionSuffix returns the lowercase "vN" token from names like
// "01v2" or "12v10", or "" when the name carries no version bump.
func ExtractVersionSuffix(name string) string {
	m := versionRegex.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// FindEpisodeNumber extracts the episode number from a filename.
//
// Parenthesized groups carry CRC/resolution/release-group noise, never
// episode numbers, so they are stripped first. Episode numbers
// conventionally follow the last dash, so that segment is searched
// first; the whole cleaned name is scanned in reverse as a fallback.
// Resolution values (720/1080) and runs of four or more digits are
// never episode numbers.
func FindEpisodeNumber(filename string) (int, bool) {
	clean := parenRegex.ReplaceAllString(filename, "")

	search := clean
	if i := strings.LastIndex(clean, "-"); i != -1 {
		search = clean[i+1:]
	}

	if run := digitRunRegex.FindString(search); run != "" {
		if n, ok := episodeValue(run); ok {
			return n, true
		}
	}

	runs := digitRunRegex.FindAllString(clean, -1)
	for i := len(runs) - 1; i >= 0; i-- {
		if n, ok := episodeValue(runs[i]); ok {
			return n, true
		}
	}

	return 0, false
}

func episodeValue(run string) (int, bool) {
	if len(run) > 3 {
		return 0, false
	}
	n, err := strconv.Atoi(run)
	if err != nil || n == 720 || n == 1080 || n >= 1000 {
		return 0, false
	}
	return n, true
}

// SeriesKey derives the show-name prefix used to group files belonging
// to the same title: the text preceding the first dash-then-digits
// episode marker, trimmed of trailing separators.
func SeriesKey(filename string) string {
	key := filename
	if loc := seriesKeyRegex.FindStringIndex(filename); loc != nil {
		key = filename[:loc[0]]
	}
	return strings.TrimRight(key, "_-. ")
}
