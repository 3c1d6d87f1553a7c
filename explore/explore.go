// Package explore drives the level-by-level traversal from a profile's
// declared links to the pages most likely to hold contact details. It owns the
// frontier, the visited set, per-level concurrency, and the safety filter.
package explore

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/codeGROOVE-dev/gumshoe/contact"
	"github.com/codeGROOVE-dev/gumshoe/fetch"
	"github.com/codeGROOVE-dev/gumshoe/strategy"
)

// DefaultFetchTimeout bounds each individual page fetch.
const DefaultFetchTimeout = 8 * time.Second

// defaultDenyList vetoes listing and taxonomy pages that link broadly but
// almost never hold a person's contact details.
var defaultDenyList = []string{"/topics/", "/trending/", "/hashtag/", "/search"}

// Config controls one exploration run. It is passed explicitly; the engine
// reads no ambient state.
//
//nolint:govet // fieldalignment: intentional layout for readability
type Config struct {
	// MaxDepth is the terminal level. Extraction still runs there but no
	// further links are proposed.
	MaxDepth int

	// Widths bounds the frontier per level: level n uses Widths[n], levels
	// past the end reuse the last entry. Empty means the default 4/3/2.
	Widths []int

	// FetchTimeout bounds each page fetch. Zero means DefaultFetchTimeout.
	FetchTimeout time.Duration

	// DenyList adds substring patterns to the built-in safety filter.
	DenyList []string

	Fetcher  fetch.Fetcher
	Strategy strategy.Strategy
	Logger   *slog.Logger
}

func (c *Config) width(level int) int {
	if level < len(c.Widths) {
		return c.Widths[level]
	}
	if len(c.Widths) > 0 {
		return c.Widths[len(c.Widths)-1]
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

// Engine runs bounded-depth explorations. One engine handles one run; the
// visited set is not reused.
type Engine struct {
	cfg     Config
	logger  *slog.Logger
	deny    []string
	visited *visitedSet
}

// New creates an engine for a single run.
func New(cfg Config) *Engine {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	deny := make([]string, 0, len(defaultDenyList)+len(cfg.DenyList))
	deny = append(deny, defaultDenyList...)
	deny = append(deny, cfg.DenyList...)

	return &Engine{
		cfg:     cfg,
		logger:  logger,
		deny:    deny,
		visited: newVisitedSet(),
	}
}

// Run explores level by level starting from the seed URLs and returns every
// fragment the strategies produced, in traversal order. Fetch and strategy
// failures appear as gap-only fragments so the caller can record them as
// provenance. rootURL is the profile's own page: candidates proposed back to
// it are vetoed so the traversal never loops home.
func (e *Engine) Run(ctx context.Context, seeds []string, rootURL string) []contact.Fragment {
	rootKey := contact.CanonicalKey(rootURL)

	frontier := make([]contact.CandidateLink, 0, len(seeds))
	for i, u := range seeds {
		frontier = append(frontier, contact.CandidateLink{URL: u, Relevance: contact.RelevanceHigh, Level: 0, Rank: i})
	}

	var fragments []contact.Fragment
	for level := 0; level <= e.cfg.MaxDepth; level++ {
		if ctx.Err() != nil {
			e.logger.DebugContext(ctx, "exploration canceled", "level", level)
			break
		}

		selected := e.selectFrontier(frontier, level)
		if len(selected) == 0 {
			e.logger.DebugContext(ctx, "no qualifying candidates, stopping early", "level", level)
			break
		}

		e.logger.InfoContext(ctx, "exploring level", "level", level, "pages", len(selected))

		levelFrags, proposed := e.runLevel(ctx, selected, level)
		fragments = append(fragments, levelFrags...)

		if level == e.cfg.MaxDepth {
			break
		}
		frontier = e.nextFrontier(proposed, rootKey)
	}

	return fragments
}

// selectFrontier applies the safety filter and the level width: deny-listed
// candidates are vetoed outright, and the visited check-and-insert happens
// here, before dispatch, so concurrent duplicates can never both be fetched.
func (e *Engine) selectFrontier(frontier []contact.CandidateLink, level int) []contact.CandidateLink {
	width := e.cfg.width(level)
	if width <= 0 {
		return nil
	}

	var selected []contact.CandidateLink
	for _, cand := range frontier {
		if len(selected) >= width {
			break
		}
		if e.denied(cand.URL) {
			continue
		}
		if !e.visited.add(contact.CanonicalKey(cand.URL)) {
			continue
		}
		selected = append(selected, cand)
	}
	return selected
}

// runLevel fetches and extracts every selected candidate concurrently and
// waits for all of them: the level boundary is a synchronization barrier.
func (e *Engine) runLevel(ctx context.Context, selected []contact.CandidateLink, level int) (frags []contact.Fragment, proposed []contact.CandidateLink) {
	budget := strategy.LinkBudget(level, e.cfg.MaxDepth)

	results := make([]contact.Fragment, len(selected))
	links := make([][]contact.CandidateLink, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, cand := range selected {
		g.Go(func() error {
			results[i], links[i] = e.visit(gctx, cand, level, budget)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // per-page failures are recorded as gaps, never propagated

	// Per-page goroutines write disjoint slots; flattening in slice order keeps
	// the traversal deterministic.
	frags = make([]contact.Fragment, 0, len(selected))
	for i := range selected {
		frags = append(frags, results[i])
		proposed = append(proposed, links[i]...)
	}
	return frags, proposed
}

// visit fetches one page and runs extraction on it. Failures only ever cost
// this one link: the returned fragment carries a gap marker instead of facts.
func (e *Engine) visit(ctx context.Context, cand contact.CandidateLink, level, budget int) (contact.Fragment, []contact.CandidateLink) {
	fctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	res, err := e.cfg.Fetcher.Fetch(fctx, cand.URL)
	if err != nil || res.Status != fetch.StatusOK {
		gap := string(res.Status)
		if gap == "" || gap == string(fetch.StatusOK) {
			gap = string(fetch.StatusError)
		}
		e.logger.DebugContext(ctx, "fetch failed", "url", cand.URL, "level", level, "gap", gap, "error", err)
		return contact.Fragment{Source: contact.Provenance{URL: cand.URL, Level: level, Gap: gap}}, nil
	}

	frag, proposed, err := e.cfg.Strategy.Extract(ctx, strategy.Page{
		URL:      cand.URL,
		Content:  res.Text,
		Level:    level,
		MaxLinks: budget,
	})
	if err != nil {
		e.logger.DebugContext(ctx, "extraction failed", "url", cand.URL, "level", level, "error", err)
		return contact.Fragment{Source: contact.Provenance{URL: cand.URL, Level: level, Gap: "strategy"}}, nil
	}
	if budget <= 0 {
		proposed = nil
	}
	return frag, proposed
}

// nextFrontier orders the proposed candidates by predicted relevance, ties
// broken by proposal order, then drops anything visited, deny-listed, pointing
// back at the profile root, or already queued. The width bound is applied at
// selection time on the next level.
func (e *Engine) nextFrontier(proposed []contact.CandidateLink, rootKey string) []contact.CandidateLink {
	ordered := make([]contact.CandidateLink, len(proposed))
	copy(ordered, proposed)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Relevance.Rank() < ordered[j].Relevance.Rank()
	})

	seen := make(map[string]bool, len(ordered))
	var next []contact.CandidateLink
	for _, cand := range ordered {
		key := contact.CanonicalKey(cand.URL)
		if key == "" || key == rootKey || seen[key] {
			continue
		}
		if e.denied(cand.URL) || e.visited.has(key) {
			continue
		}
		seen[key] = true
		next = append(next, cand)
	}
	return next
}

func (e *Engine) denied(url string) bool {
	lower := strings.ToLower(url)
	for _, pattern := range e.deny {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// visitedSet is the only state shared across concurrently dispatched page
// visits. add is an atomic check-and-insert.
type visitedSet struct {
	mu   sync.Mutex
	urls map[string]bool
}

func newVisitedSet() *visitedSet {
	return &visitedSet{urls: make(map[string]bool)}
}

// add records the key and reports whether it was new.
func (v *visitedSet) add(key string) bool {
	if key == "" {
		return false
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.urls[key] {
		return false
	}
	v.urls[key] = true
	return true
}

func (v *visitedSet) has(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.urls[key]
}
