package strategy

import (
	"context"

	"github.com/codeGROOVE-dev/gumshoe/contact"
	"github.com/codeGROOVE-dev/gumshoe/htmlutil"
)

// Pattern extracts contact facts with regex-based recognizers. It has no
// external dependencies and never fails, which makes it both the default
// strategy and the fallback target for the LLM variant.
type Pattern struct{}

// Name identifies the strategy in provenance records.
func (Pattern) Name() string { return "pattern" }

// Extract recognizes emails (including de-obfuscated forms), platform-shaped
// social URLs, and phone numbers in the page content, and proposes candidate
// links ranked by path and anchor-text heuristics.
func (Pattern) Extract(_ context.Context, page Page) (contact.Fragment, []contact.CandidateLink, error) {
	frag := contact.Fragment{
		Emails: htmlutil.Emails(page.Content),
		Social: htmlutil.SocialProfiles(page.Content),
		Source: contact.Provenance{URL: page.URL, Level: page.Level, Strategy: "pattern"},
	}

	if phones := htmlutil.PhoneNumbers(page.Content); len(phones) > 0 {
		frag.Phone = phones[0]
	}

	// Landing on a personal host and finding anything at all is good evidence
	// the site belongs to the person.
	if !frag.Empty() && htmlutil.IsPersonalSite(page.URL) {
		frag.PersonalSite = page.URL
	}

	if page.MaxLinks <= 0 {
		return frag, nil, nil
	}

	ranked := htmlutil.CandidateLinks(page.Content, page.URL)
	if len(ranked) > page.MaxLinks {
		ranked = ranked[:page.MaxLinks]
	}

	links := make([]contact.CandidateLink, 0, len(ranked))
	for i, rl := range ranked {
		links = append(links, contact.CandidateLink{
			URL:       rl.URL,
			Relevance: contact.Relevance(rl.Relevance),
			Level:     page.Level,
			Rank:      i,
		})
	}
	return frag, links, nil
}
