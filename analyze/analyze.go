// Package analyze talks to content-analysis services that read a page and
// reply with structured contact facts plus ranked follow-up links.
//
// The reply format is line-oriented and deliberately simple for small models:
//
//	EMAILS: jane@example.com, j.doe@uni.edu
//	LINKEDIN: https://linkedin.com/in/janedoe
//	TWITTER: https://twitter.com/janedoe
//	PHONE: +1 555 123 4567
//	WEBSITE: https://janedoe.dev
//	NEXT_LINKS: https://janedoe.dev/contact, https://janedoe.dev/about
//
// Anything that does not parse into at least one directive is treated as a
// malformed response, which callers turn into a page-local strategy fallback.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports a reply that violates the expected shape.
var ErrMalformed = errors.New("malformed analysis response")

// Request is one page analysis call.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Request struct {
	Content     string // Page content, already reduced to markdown and truncated
	Level       int    // Exploration level the page was found at
	Instruction string // Level-specific instruction, usually from Instruction()
	MaxLinks    int    // Upper bound on proposed follow-up links; 0 means none
}

// RankedLink is a follow-up link proposed by the service, in ranking order.
type RankedLink struct {
	URL       string
	Relevance string
}

// Response holds the structured facts parsed from a service reply.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Response struct {
	Emails  []string
	Social  map[string]string // platform -> URL
	Phone   string
	Website string
	Links   []RankedLink
}

// Analyzer is the external content-analysis service contract.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (Response, error)
}

// Instruction builds the level-specific analysis instruction. Level 0 asks for
// broad extraction plus link proposals, level 1 focuses on contact pages, the
// terminal level extracts only.
func Instruction(level, maxLinks int) string {
	var b strings.Builder
	switch {
	case level == 0:
		b.WriteString("Analyze this web content for contact information AND identify promising links for deeper analysis.\n\n")
		b.WriteString("Extract: email addresses (ignore fake or example addresses), social media profiles, phone numbers, personal websites.\n")
	case maxLinks > 0:
		b.WriteString("Analyze this contact-focused page for direct contact information.\n\n")
		b.WriteString("Extract: direct contact emails, professional social profiles, phone numbers.\n")
	default:
		b.WriteString("Extract final contact information from this page. Do not identify further links.\n")
	}

	if maxLinks > 0 {
		fmt.Fprintf(&b, "Also list up to %d promising links for further exploration (contact or about pages, portfolios, CV or resume pages), best first.\n", maxLinks)
	}

	b.WriteString("\nRespond only with these lines, omitting any that do not apply:\n")
	b.WriteString("EMAILS: <comma-separated>\nLINKEDIN: <url>\nTWITTER: <url>\nPHONE: <number>\nWEBSITE: <url>")
	if maxLinks > 0 {
		b.WriteString("\nNEXT_LINKS: <comma-separated>")
	}
	return b.String()
}

// ParseReply parses a line-oriented service reply. It returns ErrMalformed
// when no directive line is present at all; individual malformed values are
// skipped rather than failing the whole reply.
func ParseReply(text string) (Response, error) {
	resp := Response{Social: make(map[string]string)}
	directives := 0

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if strings.EqualFold(value, "none") {
			value = ""
		}

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "EMAILS", "EMAIL":
			directives++
			for _, email := range strings.Split(value, ",") {
				if email = strings.TrimSpace(email); email != "" {
					resp.Emails = append(resp.Emails, email)
				}
			}
		case "LINKEDIN":
			directives++
			if isHTTPURL(value) {
				resp.Social["linkedin"] = value
			}
		case "TWITTER":
			directives++
			if isHTTPURL(value) {
				resp.Social["twitter"] = value
			}
		case "PHONE":
			directives++
			resp.Phone = value
		case "WEBSITE":
			directives++
			if isHTTPURL(value) {
				resp.Website = value
			}
		case "NEXT_LINKS", "NEXT LINKS":
			directives++
			for _, link := range strings.Split(value, ",") {
				if link = strings.TrimSpace(link); isHTTPURL(link) {
					resp.Links = append(resp.Links, RankedLink{URL: link, Relevance: "high"})
				}
			}
		}
	}

	if directives == 0 {
		return Response{}, fmt.Errorf("%w: no directives in %d bytes", ErrMalformed, len(text))
	}
	if len(resp.Social) == 0 {
		resp.Social = nil
	}
	return resp, nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
