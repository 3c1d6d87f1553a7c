// Package adapter normalizes raw per-platform profile payloads into the
// canonical input shape the exploration engine works on.
package adapter

import (
	"fmt"
	"strings"

	"github.com/codeGROOVE-dev/gumshoe/contact"
	"github.com/codeGROOVE-dev/gumshoe/htmlutil"
)

// Kind groups platforms by the shape of their profile payloads.
type Kind string

// Platform kinds.
const (
	KindCodeHost    Kind = "code-host"
	KindSocialMedia Kind = "social-media"
	KindGeneric     Kind = "generic"
)

// Canonical is the normalized, platform-independent profile. It is built once
// per run and not modified afterwards.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Canonical struct {
	Platform string            // Original platform tag ("github", "twitter", ...)
	Kind     Kind              // Payload shape the platform was normalized from
	Bio      string            // Free-text bio/description
	Links    []string          // Declared URLs, ordered and deduplicated; primary URL first
	Fields   map[string]string // Platform-native contact facts (email, phone, twitter, website)
}

var codeHosts = map[string]bool{
	"github": true, "gitlab": true, "codeberg": true, "bitbucket": true, "gitea": true,
}

var socialPlatforms = map[string]bool{
	"twitter": true, "x": true, "mastodon": true, "bluesky": true,
	"linkedin": true, "instagram": true, "threads": true,
}

// KindFor maps a platform tag to its payload kind. Unknown tags are generic.
func KindFor(platform string) Kind {
	p := strings.ToLower(strings.TrimSpace(platform))
	switch {
	case codeHosts[p]:
		return KindCodeHost
	case socialPlatforms[p]:
		return KindSocialMedia
	default:
		return KindGeneric
	}
}

// Canonicalize converts a raw JSON-shaped profile payload into a Canonical.
// Missing or malformed input yields an empty Canonical, never an error: the
// pipeline degrades to "nothing known" rather than aborting.
func Canonicalize(raw map[string]any, platform string) Canonical {
	canon := Canonical{
		Platform: strings.ToLower(strings.TrimSpace(platform)),
		Kind:     KindFor(platform),
		Fields:   make(map[string]string),
	}
	if raw == nil {
		return canon
	}

	switch canon.Kind {
	case KindCodeHost:
		canonicalizeCodeHost(raw, &canon)
	case KindSocialMedia:
		canonicalizeSocial(raw, &canon)
	case KindGeneric:
		canonicalizeGeneric(raw, &canon)
	}

	canon.Links = dedupeLinks(canon.Links)
	return canon
}

// canonicalizeCodeHost handles GitHub-style user payloads: login, bio, email,
// blog, html_url, twitter_username, company, location.
func canonicalizeCodeHost(raw map[string]any, canon *Canonical) {
	canon.Bio = str(raw, "bio")

	if email := str(raw, "email"); htmlutil.ValidEmail(email) {
		canon.Fields["email"] = strings.ToLower(email)
	}

	site := str(raw, "blog")
	if site == "" {
		site = str(raw, "website")
	}
	switch {
	case site == "":
	case strings.Contains(site, "@"):
		// Code hosts sometimes carry an email address in the blog field.
		if email := strings.TrimPrefix(strings.TrimPrefix(site, "https://"), "http://"); htmlutil.ValidEmail(email) {
			if _, ok := canon.Fields["email"]; !ok {
				canon.Fields["email"] = strings.ToLower(email)
			}
		}
	default:
		canon.Fields["website"] = ensureScheme(site)
		canon.Links = append(canon.Links, canon.Fields["website"])
	}

	if handle := str(raw, "twitter_username"); handle != "" {
		canon.Fields["twitter"] = "https://twitter.com/" + strings.TrimPrefix(handle, "@")
	}
	if profileURL := str(raw, "html_url"); profileURL != "" {
		canon.Links = append([]string{profileURL}, canon.Links...)
		canon.Fields[canon.Platform] = profileURL
	}
	for _, key := range []string{"company", "location", "name", "login"} {
		if v := str(raw, key); v != "" {
			canon.Fields[key] = v
		}
	}
}

// canonicalizeSocial handles Twitter-style payloads: description, location,
// expanded bio/profile URLs, and per-platform profile links.
func canonicalizeSocial(raw map[string]any, canon *Canonical) {
	canon.Bio = str(raw, "description")
	if canon.Bio == "" {
		canon.Bio = str(raw, "bio")
	}

	if v := str(raw, "location"); v != "" {
		canon.Fields["location"] = v
	}
	if v := str(raw, "name"); v != "" {
		canon.Fields["name"] = v
	}
	if email := str(raw, "email"); htmlutil.ValidEmail(email) {
		canon.Fields["email"] = strings.ToLower(email)
	}

	// The platform's own profile URL ("twitter_url", "mastodon_url", ...) is a
	// direct social fact, not a drill target.
	key := canon.Platform + "_url"
	if v := str(raw, key); v != "" {
		canon.Fields[canon.Platform] = v
	}

	canon.Links = append(canon.Links, strs(raw, "urls")...)
	canon.Links = append(canon.Links, strs(raw, "links")...)
	if site := str(raw, "website"); site != "" {
		canon.Fields["website"] = ensureScheme(site)
		canon.Links = append(canon.Links, canon.Fields["website"])
	}
}

// canonicalizeGeneric handles free-form payloads: bio/text plus declared links.
func canonicalizeGeneric(raw map[string]any, canon *Canonical) {
	for _, key := range []string{"bio", "description", "text"} {
		if canon.Bio = str(raw, key); canon.Bio != "" {
			break
		}
	}

	if email := str(raw, "email"); htmlutil.ValidEmail(email) {
		canon.Fields["email"] = strings.ToLower(email)
	}
	if phone := str(raw, "phone"); phone != "" {
		canon.Fields["phone"] = phone
	}
	if site := str(raw, "website"); site != "" {
		canon.Fields["website"] = ensureScheme(site)
		canon.Links = append(canon.Links, canon.Fields["website"])
	}
	canon.Links = append(canon.Links, strs(raw, "links")...)
	canon.Links = append(canon.Links, strs(raw, "urls")...)
}

// DirectFacts builds the level -1 fragment from the canonical profile:
// platform-native fields plus whatever the pattern recognizers find in the bio
// text. These facts reach the final record even when drilling is disabled or
// every fetch fails.
func DirectFacts(canon Canonical) contact.Fragment {
	frag := contact.Fragment{
		Social: make(map[string]string),
		Source: contact.Provenance{Level: contact.DirectLevel, Strategy: "direct"},
	}

	if email := canon.Fields["email"]; email != "" {
		frag.Emails = append(frag.Emails, email)
	}
	frag.Emails = append(frag.Emails, htmlutil.Emails(canon.Bio)...)

	for platform, link := range map[string]string{
		"twitter":  canon.Fields["twitter"],
		"linkedin": canon.Fields["linkedin"],
		"mastodon": canon.Fields["mastodon"],
	} {
		if link != "" {
			frag.Social[platform] = link
		}
	}
	if own := canon.Fields[canon.Platform]; own != "" {
		frag.Social[canon.Platform] = own
	}
	for platform, link := range htmlutil.SocialProfiles(canon.Bio) {
		if _, ok := frag.Social[platform]; !ok {
			frag.Social[platform] = link
		}
	}

	if site := canon.Fields["website"]; site != "" && htmlutil.IsPersonalSite(site) {
		frag.PersonalSite = site
	}
	frag.Phone = canon.Fields["phone"]

	return frag
}

// str reads a string value from a raw payload, tolerating absent keys and
// non-string values (numbers are formatted, everything else is dropped).
func str(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
	default:
		return ""
	}
}

// strs reads a list of strings, skipping non-string elements.
func strs(raw map[string]any, key string) []string {
	list, ok := raw[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, ensureScheme(strings.TrimSpace(s)))
		}
	}
	return out
}

func ensureScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

func dedupeLinks(links []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, link := range links {
		key := contact.CanonicalKey(link)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, link)
	}
	return out
}
