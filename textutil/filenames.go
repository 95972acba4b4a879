package textutil

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	unicodeDashesRE   = regexp.MustCompile(`[\x{2010}\x{2011}\x{2012}\x{2013}\x{2014}\x{2015}\x{2212}]+`)
	separatorsRE      = regexp.MustCompile(`[\s_]+`)
	invalidBaseCharRE = regexp.MustCompile(`[^A-Za-z0-9.-]+`)
	invalidExtCharRE  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	multiDashRE       = regexp.MustCompile(`-+`)
)

// asciiFold converts unicode punctuation dashes to ASCII dashes and strips
// combining marks so accented characters decay to their base letters.
func asciiFold(value string) string {
	value = unicodeDashesRE.ReplaceAllString(value, "-")

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, value)
	if err != nil {
		folded = value
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeFilenameComponent sanitizes a single filename component into
// dash-separated words. Empty results fall back to the provided fallback.
func SanitizeFilenameComponent(value, fallback string) string {
	normalized := asciiFold(value)
	normalized = separatorsRE.ReplaceAllString(normalized, "-")
	normalized = invalidBaseCharRE.ReplaceAllString(normalized, "-")
	normalized = multiDashRE.ReplaceAllString(normalized, "-")
	normalized = strings.Trim(normalized, "-.")
	if normalized == "" {
		return fallback
	}
	return normalized
}

// SanitizeFilename sanitizes a filename for cross-platform use and HTTP
// headers.
//
// Rules:
//   - Converts unicode punctuation to ASCII where possible.
//   - Converts spaces and underscores to dashes.
//   - Collapses consecutive dashes.
//   - Removes unsupported characters.
func SanitizeFilename(filename, fallback string) string {
	raw := strings.TrimSpace(filename)
	ext := filepath.Ext(raw)
	if ext == raw {
		// Dotfiles like ".gitignore" have no extension.
		ext = ""
	}
	base := strings.TrimSuffix(raw, ext)

	safeBase := SanitizeFilenameComponent(base, fallback)

	safeExt := asciiFold(ext)
	safeExt = invalidExtCharRE.ReplaceAllString(strings.TrimPrefix(safeExt, "."), "")

	if safeExt != "" {
		return safeBase + "." + strings.ToLower(safeExt)
	}
	return safeBase
}
