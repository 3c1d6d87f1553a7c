package contact

import (
	"net/url"
	"strings"
)

// trackingParams are query parameters that identify a click, not a page.
// They are stripped before URLs are compared or stored.
var trackingParams = map[string]bool{
	"fbclid":  true,
	"gclid":   true,
	"mc_cid":  true,
	"mc_eid":  true,
	"ref":     true,
	"ref_src": true,
	"igshid":  true,
}

// CleanURL normalizes a URL for storage: tracking parameters and the trailing
// slash are removed, the scheme and host are lowercased. Invalid input is
// returned trimmed but otherwise untouched.
func CleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(raw, "/")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.RawQuery != "" {
		q := u.Query()
		for param := range q {
			if trackingParams[param] || strings.HasPrefix(strings.ToLower(param), "utm_") {
				q.Del(param)
			}
		}
		u.RawQuery = q.Encode()
	}

	return strings.TrimSuffix(u.String(), "/")
}

// CanonicalKey reduces a URL to a deduplication key: scheme, www prefix,
// trailing slash, and case differences are ignored. Two URLs with the same key
// are treated as the same page by the visited set.
func CanonicalKey(raw string) string {
	s := CleanURL(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.ToLower(s)
}

// NormalizeEmail lowercases and trims an email address for comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
