// Package strategy provides pluggable per-page contact extraction: an
// LLM-backed variant, a pattern-based variant, and a prioritized fallback
// chain combining them.
package strategy

import (
	"context"

	"github.com/codeGROOVE-dev/gumshoe/contact"
)

// Page is the input to one extraction call.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Page struct {
	URL      string // Page URL, used for provenance and link resolution
	Content  string // Raw fetched content (usually HTML)
	Level    int    // Exploration level the page was fetched at
	MaxLinks int    // Upper bound on proposed candidate links; 0 at the terminal level
}

// Strategy extracts contact facts from one page and, below the terminal
// level, proposes ranked candidate links for the next level. Implementations
// return raw structural facts only; confidence and scoring happen elsewhere.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, page Page) (contact.Fragment, []contact.CandidateLink, error)
}

// LinkBudget returns the per-level cap on proposed candidate links: 4 at level
// 0, 3 at level 1, 2 below that, and 0 at the terminal level.
func LinkBudget(level, maxDepth int) int {
	if level >= maxDepth {
		return 0
	}
	switch level {
	case 0:
		return 4
	case 1:
		return 3
	default:
		return 2
	}
}
