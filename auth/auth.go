// Package auth provides cookies for pages that gate contact details behind a
// login wall. Sources are keyed by domain so any site the exploration reaches
// can be authenticated, not just a fixed set of platforms.
package auth

import "context"

// Source provides authentication cookies for a domain.
type Source interface {
	// Cookies returns cookies for the given domain, or nil if unavailable.
	Cookies(ctx context.Context, domain string) (map[string]string, error)
}

// Chain combines sources: the first one that yields cookies for a domain wins.
type Chain []Source

// Cookies returns cookies from the first source that provides them.
func (c Chain) Cookies(ctx context.Context, domain string) (map[string]string, error) {
	for _, src := range c {
		cookies, err := src.Cookies(ctx, domain)
		if err != nil {
			return nil, err
		}
		if len(cookies) > 0 {
			return cookies, nil
		}
	}
	return nil, nil //nolint:nilnil // no source had cookies, but this is not an error
}
