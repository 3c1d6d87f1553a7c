package htmlutil

import (
	"regexp"
	"strings"
)

// socialPatterns pairs each platform name with the URL shape of a profile on it.
// The slice order is the extraction order, which keeps results deterministic.
var socialPatterns = []struct {
	platform string
	pattern  *regexp.Regexp
}{
	{"linkedin", regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[\w%-]+`)},
	{"twitter", regexp.MustCompile(`https?://(?:www\.)?(?:twitter|x)\.com/\w+`)},
	{"github", regexp.MustCompile(`https?://(?:www\.)?github\.com/[\w-]+/?(?:[^\w-/]|$)`)},
	{"gitlab", regexp.MustCompile(`https?://(?:www\.)?gitlab\.com/[\w-]+/?(?:[^\w-/]|$)`)},
	{"instagram", regexp.MustCompile(`https?://(?:www\.)?instagram\.com/[\w.]+`)},
	{"youtube", regexp.MustCompile(`https?://(?:www\.)?youtube\.com/(?:@[\w-]+|c/[\w-]+|channel/[\w-]+)`)},
	{"medium", regexp.MustCompile(`https?://(?:www\.)?medium\.com/@[\w-]+`)},
	{"reddit", regexp.MustCompile(`https?://(?:www\.|old\.)?reddit\.com/user/[\w-]+`)},
	{"bluesky", regexp.MustCompile(`https?://bsky\.app/profile/[\w.-]+`)},
	{"telegram", regexp.MustCompile(`https?://(?:t\.me|telegram\.me)/[\w-]+`)},
	{"mastodon", regexp.MustCompile(`https?://(?:mastodon\.[\w.-]+|fosstodon\.org|hachyderm\.io|infosec\.exchange|[\w-]+\.social)/@\w+`)},
}

// twitterHandle matches "@handle" mentions in bio text that are not URLs.
var twitterHandle = regexp.MustCompile(`(?i)(?:twitter|x)[:\s]+@?(\w{2,15})\b`)

// SocialProfiles extracts platform-shaped profile URLs from content, keyed by
// platform name. The first match per platform wins. Repository paths, share
// widgets, and trailing punctuation are cleaned up before matching.
func SocialProfiles(content string) map[string]string {
	found := make(map[string]string)

	for _, sp := range socialPatterns {
		if _, ok := found[sp.platform]; ok {
			continue
		}
		m := sp.pattern.FindString(content)
		if m == "" {
			continue
		}
		m = trimLinkArtifacts(m)
		if m != "" {
			found[sp.platform] = m
		}
	}

	// "twitter: @jane" style mentions without a URL.
	if _, ok := found["twitter"]; !ok {
		if m := twitterHandle.FindStringSubmatch(content); len(m) > 1 {
			found["twitter"] = "https://twitter.com/" + m[1]
		}
	}

	if len(found) == 0 {
		return nil
	}
	return found
}

// SocialPlatform returns the platform name for a profile URL, or "" when the
// URL does not match any recognized platform shape.
func SocialPlatform(url string) string {
	for _, sp := range socialPatterns {
		if sp.pattern.MatchString(url) {
			return sp.platform
		}
	}
	return ""
}

// trimLinkArtifacts removes trailing quote, bracket, and punctuation characters
// that the permissive URL patterns tend to capture.
func trimLinkArtifacts(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, `"'>)].,\`)
}
