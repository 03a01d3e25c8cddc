package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	bracketGroupRegex = regexp.MustCompile(`[\[({][^\])}]*[\])}]`)
	spaceRunRegex     = regexp.MustCompile(`\s+`)
	trailingTagRegex  = regexp.MustCompile(`[(\[]([^)\]]*)[)\]]$`)
	parenTokenRegex   = regexp.MustCompile(`\(([^)]+)\)`)
	resolutionRegex   = regexp.MustCompile(`(?i)^BD(_1080p)?$|^1080p$|^720p$`)
	hexTokenRegex     = regexp.MustCompile(`(?i)^[0-9A-F]{4,8}$`)
	unsafeNameRegex   = regexp.MustCompile(`[<>:"/\\|?*]+`)
)

// SanitizeDisplayName turns a folder name into a human title: bracketed
// groups dropped, separators spaced, whitespace collapsed.
func SanitizeDisplayName(folderName string) string {
	s := bracketGroupRegex.ReplaceAllString(folderName, " ")
	s = strings.NewReplacer("_", " ", ".", " ").Replace(s)
	return strings.TrimSpace(spaceRunRegex.ReplaceAllString(s, " "))
}

// QualityLabel reads the trailing bracketed tag of a folder name and
// maps it to the displayed quality tier.
func QualityLabel(folderBasename string) string {
	tag := ""
	if m := trailingTagRegex.FindStringSubmatch(strings.ToLower(folderBasename)); m != nil {
		tag = m[1]
	}

	isBD := strings.Contains(tag, "bd")
	has1080 := strings.Contains(tag, "1080")
	has720 := strings.Contains(tag, "720")

	switch {
	case isBD && has1080:
		return "BD 1080p"
	case isBD && has720:
		return "BD 720p"
	case has1080:
		return "1080p"
	case has720:
		return "720p"
	default:
		return "Unknown Quality"
	}
}

// ExtractSubgroups summarizes release provenance from parenthesized
// filename tokens: the first token of each file is a source, the last
// token that is neither a resolution tag nor a CRC is its subgroup.
// Returns strings like "Hi10 via Cunnysaurus | SCY".
func ExtractSubgroups(filenames []string) string {
	var sources, subgroups []string

	for _, fname := range filenames {
		tokens := parenTokenRegex.FindAllStringSubmatch(fname, -1)
		if len(tokens) == 0 {
			continue
		}

		primary := strings.TrimSpace(tokens[0][1])
		if !contains(sources, primary) {
			sources = append(sources, primary)
		}

		for i := len(tokens) - 1; i >= 1; i-- {
			t := strings.TrimSpace(tokens[i][1])
			if resolutionRegex.MatchString(t) || hexTokenRegex.MatchString(t) || strings.EqualFold(t, "duala") {
				continue
			}
			if !contains(subgroups, t) {
				subgroups = append(subgroups, t)
			}
			break
		}
	}

	sourceStr := "Unknown"
	if len(sources) > 0 {
		sourceStr = strings.Join(sources, " | ")
	}
	if len(subgroups) > 0 {
		return fmt.Sprintf("%s via %s", sourceStr, strings.Join(subgroups, " | "))
	}
	return sourceStr
}

// SafeOutputFilename derives the generated post's .txt name from a
// folder path, stripping filesystem-hostile characters.
func SafeOutputFilename(folderPath string) string {
	s := SanitizeDisplayName(baseName(folderPath))
	s = strings.TrimSpace(unsafeNameRegex.ReplaceAllString(s, ""))
	if s == "" {
		s = "output"
	}
	return s + ".txt"
}

func baseName(path string) string {
	path = strings.TrimRight(path, "/\\")
	if i := strings.LastIndexAny(path, "/\\"); i != -1 {
		return path[i+1:]
	}
	return path
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
