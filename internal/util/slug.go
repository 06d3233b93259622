package util

import (
	"regexp"
	"strings"
)

// DefaultSlug slug used when a title has nothing left after cleaning
const DefaultSlug = "my-airport-scenario"

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparate = regexp.MustCompile(`[\s-]+`)
)

// Slugify turns a scenario title into a URL-safe identifier.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.Trim(slugSeparate.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return DefaultSlug
	}
	return s
}

// SharePath dashboard path for a scenario title
func SharePath(title string) string {
	return "/share/" + Slugify(title)
}
