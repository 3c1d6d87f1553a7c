package htmlutil

import (
	"regexp"
	"strings"
)

// phonePattern matches common phone formats: (555) 123-4567, 555-123-4567,
// +1 555 123 4567, +44 20 7946 0958. At least one separator is required so
// random digit runs in markup are not matched.
var phonePattern = regexp.MustCompile(
	`(?:tel:)?\+?\d{1,3}[-.\s]\d{1,4}[-.\s]\d{3,4}(?:[-.\s]?\d{3,4})?` +
		`|(?:tel:)?(?:\+?1[-.\s]?)?\(\d{3}\)[-.\s]?\d{3}[-.\s]?\d{4}`)

// PhoneNumbers extracts phone numbers from content. The original formatting is
// preserved; deduplication compares digits only.
func PhoneNumbers(content string) []string {
	var phones []string
	seen := make(map[string]bool)

	for _, m := range phonePattern.FindAllString(content, -1) {
		if looksLikePath(m) {
			continue
		}
		digits := digitsOf(m)
		if len(digits) < 7 || len(digits) > 15 || seen[digits] {
			continue
		}
		seen[digits] = true
		phones = append(phones, strings.TrimPrefix(m, "tel:"))
	}

	return phones
}

// looksLikePath filters out matches that are fragments of URLs, dates, or
// asset names rather than phone numbers.
func looksLikePath(s string) bool {
	return strings.ContainsAny(s, "/") ||
		strings.Contains(s, ".js") ||
		strings.Contains(s, ".css") ||
		strings.Contains(s, ".html")
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
