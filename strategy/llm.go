package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/codeGROOVE-dev/gumshoe/analyze"
	"github.com/codeGROOVE-dev/gumshoe/contact"
	"github.com/codeGROOVE-dev/gumshoe/htmlutil"
)

// maxAnalysisChars bounds how much page text is sent to the analysis service.
const maxAnalysisChars = 4000

// LLM extracts contact facts through an external content-analysis service.
// Pages are reduced to markdown and truncated before analysis. Any transport
// error or malformed reply is returned as an error so the chain can fall back
// to pattern extraction for that page only.
type LLM struct {
	Analyzer analyze.Analyzer
}

// Name identifies the strategy in provenance records.
func (LLM) Name() string { return "llm" }

// Extract sends the page with a level-specific instruction and converts the
// structured reply into a fragment and ranked candidate links.
func (s LLM) Extract(ctx context.Context, page Page) (contact.Fragment, []contact.CandidateLink, error) {
	if s.Analyzer == nil {
		return contact.Fragment{}, nil, errors.New("no analyzer configured")
	}

	text := htmlutil.ToMarkdown(page.Content)
	if len(text) > maxAnalysisChars {
		text = text[:maxAnalysisChars] + "..."
	}

	resp, err := s.Analyzer.Analyze(ctx, analyze.Request{
		Content:     text,
		Level:       page.Level,
		Instruction: analyze.Instruction(page.Level, page.MaxLinks),
		MaxLinks:    page.MaxLinks,
	})
	if err != nil {
		return contact.Fragment{}, nil, fmt.Errorf("analyze %s: %w", page.URL, err)
	}

	frag := contact.Fragment{
		Social: resp.Social,
		Phone:  resp.Phone,
		Source: contact.Provenance{URL: page.URL, Level: page.Level, Strategy: "llm"},
	}
	for _, email := range resp.Emails {
		if htmlutil.ValidEmail(email) {
			frag.Emails = append(frag.Emails, email)
		}
	}
	if resp.Website != "" && htmlutil.IsPersonalSite(resp.Website) {
		frag.PersonalSite = resp.Website
	}

	if page.MaxLinks <= 0 {
		return frag, nil, nil
	}

	proposed := resp.Links
	if len(proposed) > page.MaxLinks {
		proposed = proposed[:page.MaxLinks]
	}
	links := make([]contact.CandidateLink, 0, len(proposed))
	for i, rl := range proposed {
		links = append(links, contact.CandidateLink{
			URL:       rl.URL,
			Relevance: contact.Relevance(rl.Relevance),
			Level:     page.Level,
			Rank:      i,
		})
	}
	return frag, links, nil
}
