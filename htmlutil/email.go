// Package htmlutil recognizes contact facts in HTML and plain-text content.
package htmlutil

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// obfuscatedPattern matches spelled-out addresses like "jane at example dot com"
// or "jane (at) example (dot) com". The domain part allows several dot segments.
var obfuscatedPattern = regexp.MustCompile(
	`(?i)\b([a-z0-9][a-z0-9._+-]*)\s*(?:\(at\)|\[at\]|\bat\b)\s*` +
		`([a-z0-9-]+(?:\s*(?:\(dot\)|\[dot\]|\bdot\b)\s*[a-z0-9-]+)+)`)

var obfuscatedDot = regexp.MustCompile(`(?i)\s*(?:\(dot\)|\[dot\]|\bdot\b)\s*`)

// placeholderPrefixes identify template or machine addresses that never reach a
// person. Matching is prefix-based on the lowercased address.
var placeholderPrefixes = []string{
	"noreply@", "no-reply@", "donotreply@", "do-not-reply@",
	"example@", "test@", "demo@", "sample@", "your-email@",
}

// placeholderAddresses are exact fake addresses commonly embedded in pages.
var placeholderAddresses = map[string]bool{
	"git@github.com":      true,
	"noreply@github.com":  true,
	"support@github.com":  true,
	"email@example.com":   true,
	"user@example.com":    true,
	"someone@example.com": true,
}

// Emails extracts plausible email addresses from content, including
// de-obfuscated forms like "jane at example dot com". Placeholder addresses and
// asset filenames that happen to look like emails are dropped. Results are
// lowercased and deduplicated, in order of first appearance.
func Emails(content string) []string {
	var emails []string
	seen := make(map[string]bool)

	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" || seen[email] || !ValidEmail(email) {
			return
		}
		seen[email] = true
		emails = append(emails, email)
	}

	for _, m := range emailPattern.FindAllString(content, -1) {
		add(m)
	}

	for _, m := range obfuscatedPattern.FindAllStringSubmatch(content, -1) {
		local, domain := m[1], obfuscatedDot.ReplaceAllString(m[2], ".")
		if strings.Contains(domain, ".") {
			add(local + "@" + domain)
		}
	}

	return emails
}

// ValidEmail reports whether an address looks like a real, person-reachable
// email: well-formed, not a placeholder, and not an asset filename.
func ValidEmail(email string) bool {
	email = strings.ToLower(email)
	if len(email) < 5 {
		return false
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || !strings.Contains(email[at:], ".") {
		return false
	}

	if placeholderAddresses[email] {
		return false
	}
	for _, prefix := range placeholderPrefixes {
		if strings.HasPrefix(email, prefix) {
			return false
		}
	}

	if strings.HasPrefix(email[at+1:], "localhost") {
		return false
	}

	// Image and script paths matched by the permissive pattern.
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".js", ".css"} {
		if strings.HasSuffix(email, ext) {
			return false
		}
	}

	return true
}
