package gumshoe

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/codeGROOVE-dev/gumshoe/fetch"
	"github.com/codeGROOVE-dev/gumshoe/score"
)

// stubFetcher serves canned pages and records which URLs were requested.
type stubFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (fetch.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if text, ok := f.pages[url]; ok {
		return fetch.Result{Status: fetch.StatusOK, Text: text}, nil
	}
	return fetch.Result{Status: fetch.StatusError}, errors.New("no such page")
}

func TestExtractContactsDirectFactsOnly(t *testing.T) {
	// A bio email with no declared links must score without a single fetch.
	raw := map[string]any{
		"bio":   "Engineer. Say hi: jane@company.com",
		"login": "janedoe",
	}

	info, err := ExtractContacts(context.Background(), raw, "github")
	if err != nil {
		t.Fatalf("ExtractContacts() error = %v", err)
	}

	if len(info.Emails) != 1 || info.Emails[0] != "jane@company.com" {
		t.Errorf("Emails = %v", info.Emails)
	}
	if info.ContactScore != 0.4 {
		t.Errorf("ContactScore = %v, want 0.4 for a single email", info.ContactScore)
	}
}

func TestExtractContactsDrillsDeclaredLinks(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://github.com/janedoe": `<a href="https://janedoe.dev">site</a>`,
		"https://janedoe.dev": `<html><body>
<a href="/contact">Contact me</a>
<a href="https://linkedin.com/in/janedoe">LinkedIn</a>
</body></html>`,
		"https://janedoe.dev/contact": `<p>Email jane@company.com or call 555-123-4567.</p>`,
	}}

	raw := map[string]any{
		"html_url": "https://github.com/janedoe",
		"blog":     "https://janedoe.dev",
	}

	info, err := ExtractContacts(context.Background(), raw, "github",
		WithFetcher(fetcher), WithMaxDepth(2))
	if err != nil {
		t.Fatalf("ExtractContacts() error = %v", err)
	}

	if len(info.Emails) != 1 || info.Emails[0] != "jane@company.com" {
		t.Errorf("Emails = %v, want address from the drilled contact page", info.Emails)
	}
	if info.Social["linkedin"] == "" {
		t.Errorf("Social = %v, want linkedin from the personal site", info.Social)
	}
	if info.Phone != "555-123-4567" {
		t.Errorf("Phone = %q", info.Phone)
	}
	if info.ContactScore <= 0 || info.ContactScore > 1 {
		t.Errorf("ContactScore = %v, want in (0,1]", info.ContactScore)
	}

	var fromContactPage bool
	for _, p := range info.Provenance {
		if p.URL == "https://janedoe.dev/contact" && p.Level == 1 {
			fromContactPage = true
		}
	}
	if !fromContactPage {
		t.Errorf("Provenance = %+v, want level-1 entry for the contact page", info.Provenance)
	}
}

func TestExtractContactsObfuscatedBioEmail(t *testing.T) {
	raw := map[string]any{"bio": "contact me at jane at example dot com"}

	info, err := ExtractContacts(context.Background(), raw, "github",
		WithFetcher(&stubFetcher{}))
	if err != nil {
		t.Fatalf("ExtractContacts() error = %v", err)
	}

	if len(info.Emails) != 1 || info.Emails[0] != "jane@example.com" {
		t.Errorf("Emails = %v, want de-obfuscated bio address", info.Emails)
	}
	if info.ContactScore != 0.4 {
		t.Errorf("ContactScore = %v, want 0.4", info.ContactScore)
	}
}

func TestExtractContactsFailedSiteKeepsSocial(t *testing.T) {
	// The declared website never answers; the declared social link and the
	// personal-site fact still reach the final record.
	raw := map[string]any{
		"bio":  "follow https://twitter.com/janedoe",
		"blog": "https://janedoe.me",
	}

	info, err := ExtractContacts(context.Background(), raw, "github",
		WithFetcher(&stubFetcher{}))
	if err != nil {
		t.Fatalf("ExtractContacts() error = %v", err)
	}

	if info.Social["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Social = %v, want the declared twitter link", info.Social)
	}
	if len(info.Emails) != 0 || info.Phone != "" {
		t.Errorf("Emails = %v Phone = %q, want none from the dead site", info.Emails, info.Phone)
	}
	if info.PersonalSite != "https://janedoe.me" {
		t.Errorf("PersonalSite = %q", info.PersonalSite)
	}
	if diff := info.ContactScore - 0.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("ContactScore = %v, want 0.3", info.ContactScore)
	}
}

func TestExtractContactsZeroWidthSkipsFetching(t *testing.T) {
	fetcher := &stubFetcher{}

	raw := map[string]any{
		"email":    "jane@company.com",
		"html_url": "https://github.com/janedoe",
		"blog":     "https://janedoe.dev",
	}

	info, err := ExtractContacts(context.Background(), raw, "github",
		WithFetcher(fetcher), WithFrontierWidths(0))
	if err != nil {
		t.Fatalf("ExtractContacts() error = %v", err)
	}

	if len(fetcher.calls) != 0 {
		t.Errorf("fetched %v, want direct facts only with width 0", fetcher.calls)
	}
	if len(info.Emails) != 1 {
		t.Errorf("Emails = %v, want the platform email field", info.Emails)
	}
}

func TestExtractContactsMalformedProfile(t *testing.T) {
	for _, raw := range []map[string]any{nil, {}, {"bio": 42}} {
		info, err := ExtractContacts(context.Background(), raw, "github",
			WithFetcher(&stubFetcher{}))
		if err != nil {
			t.Fatalf("ExtractContacts(%v) error = %v, want empty result instead", raw, err)
		}
		if info.ContactScore != 0 {
			t.Errorf("ContactScore = %v, want 0 for empty profile", info.ContactScore)
		}
	}
}

func TestExtractContactsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"negative depth", WithMaxDepth(-1)},
		{"negative width", WithFrontierWidths(4, -1)},
		{"negative timeout", WithFetchTimeout(-1)},
		{"negative weight", WithWeights(score.Weights{Email: -0.4})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractContacts(context.Background(), nil, "github", tt.opt)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestExtractContactsDirectFactsWin(t *testing.T) {
	// The profile declares a twitter handle; a drilled page claims another.
	fetcher := &stubFetcher{pages: map[string]string{
		"https://github.com/janedoe": ``,
		"https://janedoe.dev":        `Follow https://twitter.com/impostor`,
	}}

	raw := map[string]any{
		"html_url":         "https://github.com/janedoe",
		"blog":             "https://janedoe.dev",
		"twitter_username": "janedoe",
	}

	info, err := ExtractContacts(context.Background(), raw, "github",
		WithFetcher(fetcher), WithMaxDepth(1))
	if err != nil {
		t.Fatalf("ExtractContacts() error = %v", err)
	}

	if info.Social["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Social[twitter] = %q, want the declared handle to win", info.Social["twitter"])
	}
}

func TestExtractContactsScoreAlwaysInRange(t *testing.T) {
	raws := []map[string]any{
		nil,
		{"email": "jane@company.com"},
		{"bio": "jane@a.com b@b.com https://twitter.com/j https://github.com/j", "blog": "https://j.me"},
	}
	for _, raw := range raws {
		info, err := ExtractContacts(context.Background(), raw, "github",
			WithFetcher(&stubFetcher{}), WithFrontierWidths(0))
		if err != nil {
			t.Fatalf("ExtractContacts() error = %v", err)
		}
		if info.ContactScore < 0 || info.ContactScore > 1 {
			t.Errorf("ContactScore = %v, outside [0,1]", info.ContactScore)
		}
	}
}
