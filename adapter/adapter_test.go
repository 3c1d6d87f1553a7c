package adapter

import (
	"slices"
	"testing"

	"github.com/codeGROOVE-dev/gumshoe/contact"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		platform string
		want     Kind
	}{
		{"github", KindCodeHost},
		{"GitLab", KindCodeHost},
		{"twitter", KindSocialMedia},
		{"x", KindSocialMedia},
		{"mastodon", KindSocialMedia},
		{"linktree", KindGeneric},
		{"", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			if got := KindFor(tt.platform); got != tt.want {
				t.Errorf("KindFor(%q) = %q, want %q", tt.platform, got, tt.want)
			}
		})
	}
}

func TestCanonicalizeCodeHost(t *testing.T) {
	raw := map[string]any{
		"login":            "janedoe",
		"bio":              "Engineer. Reach me at jane@company.com",
		"email":            "Jane@Company.com",
		"blog":             "janedoe.dev",
		"html_url":         "https://github.com/janedoe",
		"twitter_username": "janedoe",
		"company":          "Acme",
	}

	canon := Canonicalize(raw, "github")

	if canon.Kind != KindCodeHost {
		t.Errorf("Kind = %q, want code-host", canon.Kind)
	}
	if canon.Fields["email"] != "jane@company.com" {
		t.Errorf("Fields[email] = %q", canon.Fields["email"])
	}
	if canon.Fields["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Fields[twitter] = %q", canon.Fields["twitter"])
	}
	if canon.Fields["website"] != "https://janedoe.dev" {
		t.Errorf("Fields[website] = %q", canon.Fields["website"])
	}
	if len(canon.Links) == 0 || canon.Links[0] != "https://github.com/janedoe" {
		t.Errorf("Links = %v, want profile URL first", canon.Links)
	}
	if !slices.Contains(canon.Links, "https://janedoe.dev") {
		t.Errorf("Links = %v, want declared website included", canon.Links)
	}
}

func TestCanonicalizeEmailInBlogField(t *testing.T) {
	raw := map[string]any{"blog": "jane@company.com"}
	canon := Canonicalize(raw, "github")

	if canon.Fields["email"] != "jane@company.com" {
		t.Errorf("Fields[email] = %q, want address recovered from blog field", canon.Fields["email"])
	}
	if canon.Fields["website"] != "" {
		t.Errorf("Fields[website] = %q, want empty", canon.Fields["website"])
	}
}

func TestCanonicalizeSocialMedia(t *testing.T) {
	raw := map[string]any{
		"description": "Writer. See links below.",
		"urls":        []any{"https://janedoe.dev", "https://janedoe.dev"},
		"twitter_url": "https://twitter.com/janedoe",
	}

	canon := Canonicalize(raw, "twitter")

	if canon.Bio != "Writer. See links below." {
		t.Errorf("Bio = %q", canon.Bio)
	}
	if canon.Fields["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Fields[twitter] = %q", canon.Fields["twitter"])
	}
	if len(canon.Links) != 1 {
		t.Errorf("Links = %v, want duplicates collapsed", canon.Links)
	}
}

func TestCanonicalizeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"nil payload", nil},
		{"empty payload", map[string]any{}},
		{"wrong types", map[string]any{"bio": 42, "links": "not-a-list", "email": []any{"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canon := Canonicalize(tt.raw, "github")
			if len(canon.Links) != 0 || canon.Bio != "" {
				t.Errorf("Canonicalize(%v) = %+v, want empty canonical", tt.raw, canon)
			}
		})
	}
}

func TestDirectFacts(t *testing.T) {
	canon := Canonicalize(map[string]any{
		"bio":      "DMs open on https://twitter.com/janedoe",
		"email":    "jane@company.com",
		"blog":     "https://janedoe.github.io",
		"html_url": "https://github.com/janedoe",
	}, "github")

	frag := DirectFacts(canon)

	if frag.Source.Level != contact.DirectLevel || frag.Source.Strategy != "direct" {
		t.Errorf("Source = %+v, want direct provenance", frag.Source)
	}
	if !slices.Contains(frag.Emails, "jane@company.com") {
		t.Errorf("Emails = %v, want platform email field", frag.Emails)
	}
	if frag.Social["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Social[twitter] = %q, want handle from bio", frag.Social["twitter"])
	}
	if frag.Social["github"] != "https://github.com/janedoe" {
		t.Errorf("Social[github] = %q, want own profile URL", frag.Social["github"])
	}
	if frag.PersonalSite != "https://janedoe.github.io" {
		t.Errorf("PersonalSite = %q, want github.io site recognized", frag.PersonalSite)
	}
}

func TestDirectFactsEmptyProfile(t *testing.T) {
	frag := DirectFacts(Canonicalize(nil, "github"))
	if !frag.Empty() {
		t.Errorf("DirectFacts(empty) = %+v, want no facts", frag)
	}
}
