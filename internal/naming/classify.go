package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Classification is the category/label decision for one filename.
type Classification struct {
	Category      Category
	Label         string
	EpisodeNumber int
	HasEpisode    bool
	VersionSuffix string
}

// rule is one classification predicate with its label extractor. Rules
// are evaluated in a fixed order with early exit; the order is a
// correctness decision, not an implementation detail (OVA1 must win
// over a dash label that would also match, numbered episodes come
// after every named lane).
type rule func(fname string) (Classification, bool)

var rules = []rule{
	matchOpEd,
	matchSpecialTag(CategoryOVA, "OVA"),
	matchSpecialTag(CategoryONA, "ONA"),
	matchSpecialTag(CategoryOAD, "OAD"),
	matchSpecialTag(CategorySP, "SP"),
	matchExtras,
	matchMovie,
	matchDashLabel,
	matchNumberedEpisode,
}

// Classify assigns exactly one category and display label to a
// filename. Every input classifies: names matching no specific rule
// fall back to the extras lane with the raw filename as label.
func Classify(fname string) Classification {
	for _, r := range rules {
		if c, ok := r(fname); ok {
			return c
		}
	}
	return Classification{Category: CategoryExtras, Label: fname}
}

var (
	opEdRegex  = regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9])((OP|ED)[ _-]?\d{1,2})(?:[^A-Za-z0-9]|$)`)
	movieRegex = regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9])movie(?:[^A-Za-z0-9]|$)`)
	movieLabelRegex = regexp.MustCompile(`(?i)-_([A-Za-z0-9_]*movie[A-Za-z0-9_]*(?:\.\d)?)`)
	leadingDigit    = regexp.MustCompile(`^\d`)
)

func matchOpEd(fname string) (Classification, bool) {
	m := opEdRegex.FindStringSubmatch(fname)
	if m == nil {
		return Classification{}, false
	}
	label := strings.ToUpper(m[1])
	label = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(label)
	cat := CategoryED
	if strings.HasPrefix(label, "OP") {
		cat = CategoryOP
	}
	return Classification{Category: cat, Label: label}, true
}

// matchSpecialTag builds the rule for one word-bounded special tag
// (OVA/ONA/OAD/SP). The label is the longest contiguous run starting at
// the tag through trailing descriptive tokens joined by underscores,
// e.g. "SP1_Picture_Drama"; a bare tag (plus digits) when nothing
// follows.
func matchSpecialTag(cat Category, tag string) rule {
	detect := regexp.MustCompile(fmt.Sprintf(`(?i)(?:^|[^A-Za-z0-9])%s(?:[ _-]*(\d{1,3}(?:\.\d)?))?(?:[^A-Za-z0-9]|$)`, tag))
	extended := regexp.MustCompile(fmt.Sprintf(`(?i)(?:^|[^A-Za-z0-9])(%s(?:[ _-]?\d{1,3}(?:\.\d)?)?(?:_[A-Za-z][A-Za-z0-9]*)*)`, tag))

	return func(fname string) (Classification, bool) {
		m := detect.FindStringSubmatch(fname)
		if m == nil {
			return Classification{}, false
		}
		label := tag + m[1]
		if em := extended.FindStringSubmatch(fname); em != nil {
			run := normalizeSpecialRun(em[1], tag)
			if len(run) > len(label) {
				label = run
			}
		}
		return Classification{Category: cat, Label: label}, true
	}
}

// normalizeSpecialRun uppercases the tag portion of an extended special
// run and collapses the tag/number separator, so "sp 1_Picture_Drama"
// becomes "SP1_Picture_Drama".
func normalizeSpecialRun(run, tag string) string {
	rest := run[len(tag):]
	rest = strings.TrimLeft(rest, " -")
	if len(rest) > 0 && rest[0] == '_' && len(rest) > 1 && rest[1] >= '0' && rest[1] <= '9' {
		rest = rest[1:]
	}
	return strings.ToUpper(tag) + rest
}

func matchExtras(fname string) (Classification, bool) {
	if !strings.Contains(strings.ToLower(fname), "extras") {
		return Classification{}, false
	}
	return Classification{Category: CategoryExtras, Label: "Extras"}, true
}

// matchMovie routes movie files through the free-form dash lane. The
// label is the dash segment carrying the movie token, including an
// optional one-decimal-digit suffix ("Movie_08.5").
func matchMovie(fname string) (Classification, bool) {
	if !movieRegex.MatchString(fname) {
		return Classification{}, false
	}
	label := "MOVIE"
	if m := movieLabelRegex.FindStringSubmatch(fname); m != nil {
		label = strings.TrimRight(m[1], "_")
	}
	return Classification{Category: CategoryDash, Label: label}, true
}

// matchDashLabel captures a free-form label after a "-_" separator:
// letters/digits/underscores with at least one letter, ending at "_("
// or end of name. Only the first "-_" segment is considered; if it
// starts with a digit the name is an episode, not a labeled extra,
// regardless of later segments.
func matchDashLabel(fname string) (Classification, bool) {
	label, ok := extractDashLabel(fname)
	if !ok {
		return Classification{}, false
	}
	return Classification{Category: CategoryDash, Label: strings.ToUpper(label)}, true
}

func extractDashLabel(name string) (string, bool) {
	i := strings.Index(name, "-_")
	if i == -1 {
		return "", false
	}
	segStart := i + 2
	end := segStart
	for end < len(name) && isWordByte(name[end]) {
		end++
	}
	seg := name[segStart:end]
	rest := name[end:]

	switch {
	case rest == "":
	case strings.HasPrefix(rest, "(") && strings.HasSuffix(seg, "_"):
		seg = strings.TrimSuffix(seg, "_")
	default:
		seg = ""
	}

	if seg != "" && hasLetter(seg) && !leadingDigit.MatchString(seg) {
		return seg, true
	}
	return "", false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func hasLetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func matchNumberedEpisode(fname string) (Classification, bool) {
	n, ok := FindEpisodeNumber(fname)
	if !ok {
		return Classification{}, false
	}
	ver := ExtractVersionSuffix(fname)
	return Classification{
		Category:      CategoryEpisode,
		Label:         fmt.Sprintf("%02d%s", n, ver),
		EpisodeNumber: n,
		HasEpisode:    true,
		VersionSuffix: ver,
	}, true
}
