package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a human-readable name into a URL-safe slug.
// Accents are stripped; falls back to fallback when nothing is left.
func Slugify(input, fallback string) string {
	if slug := slugify(input); slug != "" {
		return slug
	}
	return slugify(fallback)
}

func slugify(s string) string {
	decomposed := norm.NFKD.String(strings.ToLower(strings.TrimSpace(s)))
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	slug := nonSlugChars.ReplaceAllString(b.String(), "-")
	return strings.Trim(slug, "-")
}
