// Package gumshoe discovers contact details for a person starting from a
// social or code-host profile. It canonicalizes the raw profile, explores the
// declared links level by level up to a bounded depth, extracts contact facts
// from each page, and merges everything into a single scored record.
//
// Basic usage:
//
//	info, err := gumshoe.ExtractContacts(ctx, rawProfile, "github")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Emails, info.ContactScore)
//
// With an LLM-backed extraction strategy and a response cache:
//
//	cache, _ := gumshoe.NewCache(24 * time.Hour)
//	analyzer, _ := analyze.NewClient(endpoint, apiKey)
//	info, err := gumshoe.ExtractContacts(ctx, rawProfile, "github",
//	    gumshoe.WithAnalyzer(analyzer),
//	    gumshoe.WithCache(cache))
package gumshoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/gumshoe/adapter"
	"github.com/codeGROOVE-dev/gumshoe/analyze"
	"github.com/codeGROOVE-dev/gumshoe/auth"
	"github.com/codeGROOVE-dev/gumshoe/contact"
	"github.com/codeGROOVE-dev/gumshoe/explore"
	"github.com/codeGROOVE-dev/gumshoe/fetch"
	"github.com/codeGROOVE-dev/gumshoe/score"
	"github.com/codeGROOVE-dev/gumshoe/strategy"
)

type (
	// Info re-exports contact.Info for convenience.
	Info = contact.Info
	// Cache re-exports fetch.Cache for convenience.
	Cache = fetch.Cache
)

// NewCache re-exports fetch.NewCache for convenience.
func NewCache(ttl time.Duration) (*Cache, error) { return fetch.NewCache(ttl) }

// ErrInvalidConfig is returned when options fail validation. It is the only
// error ExtractContacts produces: every downstream failure degrades to a
// smaller (possibly empty) result instead.
var ErrInvalidConfig = errors.New("invalid configuration")

// Option configures an ExtractContacts call.
type Option func(*config)

//nolint:govet // fieldalignment: intentional layout for readability
type config struct {
	maxDepth       int
	widths         []int
	fetchTimeout   time.Duration
	denyList       []string
	weights        score.Weights
	logger         *slog.Logger
	fetcher        fetch.Fetcher
	analyzer       analyze.Analyzer
	strategy       strategy.Strategy
	cache          fetch.Cacher
	cookies        map[string]map[string]string
	browserCookies bool
}

// WithMaxDepth sets the terminal exploration level. Depth 0 fetches only the
// profile's declared links; each extra level follows the most promising links
// found on the previous one.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// WithFrontierWidths bounds how many pages are fetched per level: level n uses
// widths[n], deeper levels reuse the last entry. A width of 0 disables
// fetching from that level on, so []int{0} yields direct profile facts only.
func WithFrontierWidths(widths ...int) Option {
	return func(c *config) { c.widths = widths }
}

// WithFetchTimeout bounds each individual page fetch.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *config) { c.fetchTimeout = timeout }
}

// WithDenyList adds substring patterns to the built-in safety filter. A
// candidate link matching any pattern is never fetched, whatever its rank.
func WithDenyList(patterns ...string) Option {
	return func(c *config) { c.denyList = append(c.denyList, patterns...) }
}

// WithWeights overrides the default scoring weights.
func WithWeights(weights score.Weights) Option {
	return func(c *config) { c.weights = weights }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithFetcher replaces the default HTTP fetcher.
func WithFetcher(fetcher fetch.Fetcher) Option {
	return func(c *config) { c.fetcher = fetcher }
}

// WithAnalyzer enables the LLM-backed extraction strategy, with pattern
// extraction as the per-page fallback.
func WithAnalyzer(analyzer analyze.Analyzer) Option {
	return func(c *config) { c.analyzer = analyzer }
}

// WithStrategy replaces the extraction strategy entirely, bypassing the
// default analyzer/pattern chain.
func WithStrategy(s strategy.Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithCache sets a response cache for the default fetcher.
func WithCache(cache fetch.Cacher) Option {
	return func(c *config) { c.cache = cache }
}

// WithCookies sets explicit cookies per domain for login-walled pages.
func WithCookies(byDomain map[string]map[string]string) Option {
	return func(c *config) { c.cookies = byDomain }
}

// WithBrowserCookies enables reading cookies from browser stores.
func WithBrowserCookies() Option {
	return func(c *config) { c.browserCookies = true }
}

// ExtractContacts canonicalizes the raw profile, explores its declared links
// up to the configured depth, and returns the merged, scored contact record.
//
// The raw profile is the platform's JSON payload decoded into a map; the
// platform tag selects how its fields are interpreted. Malformed input yields
// an empty record with score 0 — finding nothing is an expected outcome, not
// an error. Only invalid options fail the call.
func ExtractContacts(ctx context.Context, raw map[string]any, platform string, opts ...Option) (*contact.Info, error) {
	cfg := &config{
		maxDepth: 2,
		weights:  score.DefaultWeights(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	canon := adapter.Canonicalize(raw, platform)
	cfg.logger.InfoContext(ctx, "extracting contacts",
		"platform", canon.Platform, "kind", canon.Kind, "links", len(canon.Links))

	fragments := []contact.Fragment{adapter.DirectFacts(canon)}

	if len(canon.Links) > 0 {
		engine := explore.New(explore.Config{
			MaxDepth:     cfg.maxDepth,
			Widths:       cfg.widths,
			FetchTimeout: cfg.fetchTimeout,
			DenyList:     cfg.denyList,
			Fetcher:      cfg.buildFetcher(),
			Strategy:     cfg.buildStrategy(),
			Logger:       cfg.logger,
		})
		fragments = append(fragments, engine.Run(ctx, canon.Links, canon.Fields[canon.Platform])...)
	}

	info := contact.Merge(fragments)
	info.ContactScore = score.Compute(info, cfg.weights)

	cfg.logger.InfoContext(ctx, "extraction complete",
		"emails", len(info.Emails), "social", len(info.Social), "score", info.ContactScore)
	return &info, nil
}

func (c *config) validate() error {
	if c.maxDepth < 0 {
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.maxDepth)
	}
	for _, w := range c.widths {
		if w < 0 {
			return fmt.Errorf("%w: frontier width %d is negative", ErrInvalidConfig, w)
		}
	}
	if c.fetchTimeout < 0 {
		return fmt.Errorf("%w: fetch timeout %s is negative", ErrInvalidConfig, c.fetchTimeout)
	}
	if !c.weights.Valid() {
		return fmt.Errorf("%w: scoring weights must be non-negative", ErrInvalidConfig)
	}
	return nil
}

func (c *config) buildFetcher() fetch.Fetcher {
	if c.fetcher != nil {
		return c.fetcher
	}

	var sources auth.Chain
	if len(c.cookies) > 0 {
		sources = append(sources, auth.NewStaticSource(c.cookies))
	}
	if c.browserCookies {
		sources = append(sources, auth.NewBrowserSource(c.logger))
	}

	opts := []fetch.Option{fetch.WithLogger(c.logger)}
	if c.cache != nil {
		opts = append(opts, fetch.WithCache(c.cache))
	}
	if len(sources) > 0 {
		opts = append(opts, fetch.WithCookieSource(sources))
	}
	return fetch.New(opts...)
}

func (c *config) buildStrategy() strategy.Strategy {
	if c.strategy != nil {
		return c.strategy
	}
	if c.analyzer != nil {
		return strategy.Chain{
			Strategies: []strategy.Strategy{strategy.LLM{Analyzer: c.analyzer}, strategy.Pattern{}},
			Logger:     c.logger,
		}
	}
	return strategy.Pattern{}
}
