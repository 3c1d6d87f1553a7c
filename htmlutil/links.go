package htmlutil

import (
	"net/url"
	"regexp"
	"strings"
)

// RankedLink is a candidate page for deeper exploration, tagged with a
// predicted-relevance label ("high", "medium", or "low").
type RankedLink struct {
	URL       string
	Relevance string
}

var (
	anchorPattern   = regexp.MustCompile(`(?i)<a[^>]+href=["']?([^\s"'>]+)["']?[^>]*>([^<]*(?:<[^/][^>]*>[^<]*)*)</a>`)
	markdownLink    = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	innerTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// Path and anchor-text cues for contact-bearing pages, strongest first.
var (
	highCues   = []string{"/contact", "/cv", "/resume", "contact me", "get in touch", "resume", "curriculum vitae"}
	mediumCues = []string{"/about", "/links", "/connect", "/socials", "about me", "about", "portfolio", "bio", "find me"}
)

// academicSuffixes mark institutional personal pages, which tend to list a
// direct email address.
var academicSuffixes = []string{".edu", ".ac.uk", ".ac.jp", ".ac.nz", ".edu.au", ".uni-"}

// CandidateLinks extracts links worth exploring from a page, ranked by
// predicted relevance. Relative URLs are resolved against baseURL. Social
// profile URLs, blog posts, and off-site pages (except academic hosts) are
// skipped; those are either extracted as facts directly or too low-yield to
// spend a fetch on. Order is deterministic: by relevance label, ties kept in
// document order.
func CandidateLinks(content, baseURL string) []RankedLink {
	type scored struct {
		link RankedLink
		pos  int
	}
	var out []scored
	seen := make(map[string]bool)

	consider := func(href, text string, pos int) {
		resolved := resolveHref(href, baseURL)
		if resolved == "" || seen[strings.ToLower(resolved)] {
			return
		}
		if SocialPlatform(resolved) != "" || isBlogPost(resolved) {
			return
		}
		if sameURL(resolved, baseURL) {
			return
		}
		if !sameHost(resolved, baseURL) && !isAcademicHost(resolved) {
			return
		}

		rel := classifyLink(resolved, text)
		if rel == "" {
			return
		}
		seen[strings.ToLower(resolved)] = true
		out = append(out, scored{link: RankedLink{URL: resolved, Relevance: rel}, pos: pos})
	}

	for i, m := range anchorPattern.FindAllStringSubmatch(content, -1) {
		text := innerTagPattern.ReplaceAllString(m[2], " ")
		consider(strings.TrimSpace(m[1]), strings.ToLower(strings.TrimSpace(text)), i)
	}
	base := len(out)
	for i, m := range markdownLink.FindAllStringSubmatch(content, -1) {
		consider(strings.TrimSpace(m[2]), strings.ToLower(strings.TrimSpace(m[1])), base+i)
	}

	// Stable by construction: high first, then medium, then low, document order
	// within each band.
	var ranked []RankedLink
	for _, band := range []string{"high", "medium", "low"} {
		for _, s := range out {
			if s.link.Relevance == band {
				ranked = append(ranked, s.link)
			}
		}
	}
	return ranked
}

// classifyLink assigns a relevance label from path and anchor-text cues.
// Academic hosts rank high even without a contact-shaped path.
func classifyLink(resolved, text string) string {
	lower := strings.ToLower(resolved)

	for _, cue := range highCues {
		if strings.Contains(lower, cue) || (text != "" && strings.Contains(text, cue)) {
			return "high"
		}
	}
	if isAcademicHost(resolved) {
		return "high"
	}
	for _, cue := range mediumCues {
		if strings.Contains(lower, cue) || (text != "" && strings.Contains(text, cue)) {
			return "medium"
		}
	}
	// Shallow same-site pages (/team, /info) are worth keeping at the bottom of
	// the ranking; deep paths without a cue are not.
	if u, err := url.Parse(resolved); err == nil {
		path := strings.Trim(u.Path, "/")
		if path != "" && !strings.Contains(path, "/") {
			return "low"
		}
	}
	return ""
}

func isAcademicHost(rawURL string) bool {
	host := hostOf(rawURL)
	for _, suffix := range academicSuffixes {
		if strings.HasSuffix(host, suffix) || strings.Contains(host, ".edu.") {
			return true
		}
	}
	return false
}

func isBlogPost(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, p := range []string{"/posts/", "/post/", "/blog/", "/article/", "/articles/", "/news/", "/story/", "/tag/"} {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func resolveHref(href, baseURL string) string {
	lower := strings.ToLower(href)
	if href == "" || strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return href
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return base.Scheme + ":" + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func sameHost(a, b string) bool {
	ha, hb := hostOf(a), hostOf(b)
	return ha != "" && ha == hb
}

func sameURL(a, b string) bool {
	trim := func(s string) string {
		s = strings.TrimSuffix(strings.ToLower(s), "/")
		s = strings.TrimPrefix(s, "https://")
		s = strings.TrimPrefix(s, "http://")
		return strings.TrimPrefix(s, "www.")
	}
	return trim(a) == trim(b)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
