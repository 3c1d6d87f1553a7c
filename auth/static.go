package auth

import (
	"context"
	"strings"
)

// StaticSource provides cookies from a fixed per-domain map. Useful for
// testing or when cookies are supplied via options.
type StaticSource struct {
	byDomain map[string]map[string]string
}

// NewStaticSource creates a cookie source from a domain-keyed map.
func NewStaticSource(byDomain map[string]map[string]string) *StaticSource {
	return &StaticSource{byDomain: byDomain}
}

// Cookies returns the static cookies for the domain or any parent domain.
func (s *StaticSource) Cookies(_ context.Context, domain string) (map[string]string, error) {
	for d, cookies := range s.byDomain {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			// Return a copy to prevent mutation
			result := make(map[string]string, len(cookies))
			for k, v := range cookies {
				result[k] = v
			}
			return result, nil
		}
	}
	return nil, nil //nolint:nilnil // no cookies for this domain is not an error
}
