package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	titleTag   = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
	ogTitleTag = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	h1Tag      = regexp.MustCompile(`(?i)<h1[^>]*>([^<]+)</h1>`)
	descTag    = regexp.MustCompile(`(?i)<meta[^>]+name=["']description["'][^>]+content=["']([^"']+)["']`)
	ogDescTag  = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
)

// Title extracts a page title, preferring <title>, then og:title, then the
// first <h1>.
func Title(content string) string {
	for _, p := range []*regexp.Regexp{titleTag, ogTitleTag, h1Tag} {
		if m := p.FindStringSubmatch(content); len(m) > 1 {
			return strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	return ""
}

// Description extracts the meta description, falling back to og:description.
func Description(content string) string {
	for _, p := range []*regexp.Regexp{descTag, ogDescTag} {
		if m := p.FindStringSubmatch(content); len(m) > 1 {
			return strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	return ""
}

// personalHostHints mark hosting services and naming conventions that usually
// indicate an individual's site rather than a company's.
var personalHostHints = []string{
	"github.io", "gitlab.io", "netlify.app", "vercel.app", "pages.dev",
	"portfolio", "personal", "blog",
}

// IsPersonalSite reports whether a URL likely points at an individual's own
// website.
func IsPersonalSite(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, hint := range personalHostHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	host := hostOf(rawURL)
	return strings.HasSuffix(host, ".me") || strings.HasPrefix(host, "me.") || strings.HasPrefix(host, "my.")
}
