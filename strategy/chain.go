package strategy

import (
	"context"
	"log/slog"

	"github.com/codeGROOVE-dev/gumshoe/contact"
)

// Chain tries strategies in priority order until one succeeds. Fallback is
// page-local: a failure on one page does not demote the strategy for the rest
// of the run.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Chain struct {
	Strategies []Strategy
	Logger     *slog.Logger
}

// Name identifies the chain by its first strategy.
func (c Chain) Name() string {
	if len(c.Strategies) == 0 {
		return "none"
	}
	return c.Strategies[0].Name()
}

// Extract runs the chain for one page. Only if every strategy fails does the
// page contribute nothing; the last error is returned so the controller can
// record the gap.
func (c Chain) Extract(ctx context.Context, page Page) (contact.Fragment, []contact.CandidateLink, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	for i, s := range c.Strategies {
		frag, links, err := s.Extract(ctx, page)
		if err == nil {
			return frag, links, nil
		}
		lastErr = err
		if i < len(c.Strategies)-1 {
			logger.DebugContext(ctx, "strategy failed, falling back",
				"strategy", s.Name(), "next", c.Strategies[i+1].Name(), "url", page.URL, "error", err)
		}
	}

	return contact.Fragment{}, nil, lastErr
}
