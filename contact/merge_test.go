package contact

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeEmailUnion(t *testing.T) {
	got := Merge([]Fragment{
		{Emails: []string{"Jane@Company.com"}, Source: Provenance{URL: "a", Level: 0, Strategy: "pattern"}},
		{Emails: []string{"jane@company.com", "j.doe@uni.edu"}, Source: Provenance{URL: "b", Level: 1, Strategy: "pattern"}},
	})

	want := []string{"j.doe@uni.edu", "jane@company.com"}
	if diff := cmp.Diff(want, got.Emails); diff != "" {
		t.Errorf("Merge() emails mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeDirectFactsWinRegardlessOfOrder(t *testing.T) {
	drilled := Fragment{
		PersonalSite: "https://drilled.example.dev",
		Phone:        "555-123-4567",
		Social:       map[string]string{"twitter": "https://twitter.com/drilled"},
		Source:       Provenance{URL: "https://page", Level: 0, Strategy: "pattern"},
	}
	direct := Fragment{
		PersonalSite: "https://janedoe.dev",
		Phone:        "555-999-0000",
		Social:       map[string]string{"twitter": "https://twitter.com/janedoe"},
		Source:       Provenance{Level: DirectLevel, Strategy: "direct"},
	}

	// Direct facts are listed last on purpose.
	got := Merge([]Fragment{drilled, direct})

	if got.PersonalSite != "https://janedoe.dev" {
		t.Errorf("PersonalSite = %q, want direct fact to win", got.PersonalSite)
	}
	if got.Phone != "555-999-0000" {
		t.Errorf("Phone = %q, want direct fact to win", got.Phone)
	}
	if got.Social["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Social[twitter] = %q, want direct fact to win", got.Social["twitter"])
	}
}

func TestMergeCommutativeWithinLevel(t *testing.T) {
	a := Fragment{
		Emails: []string{"a@company.com"},
		Social: map[string]string{"github": "https://github.com/janedoe"},
		Source: Provenance{URL: "https://one", Level: 1, Strategy: "pattern"},
	}
	b := Fragment{
		Emails: []string{"b@company.com"},
		Social: map[string]string{"linkedin": "https://linkedin.com/in/janedoe"},
		Source: Provenance{URL: "https://two", Level: 1, Strategy: "llm"},
	}

	ab := Merge([]Fragment{a, b})
	ba := Merge([]Fragment{b, a})

	if diff := cmp.Diff(ab.Emails, ba.Emails); diff != "" {
		t.Errorf("email set depends on fragment order:\n%s", diff)
	}
	if diff := cmp.Diff(ab.Social, ba.Social); diff != "" {
		t.Errorf("social set depends on fragment order:\n%s", diff)
	}
}

func TestMergeNormalizesSocialURLs(t *testing.T) {
	got := Merge([]Fragment{{
		Social: map[string]string{"Twitter": "https://Twitter.com/janedoe/?utm_source=share"},
		Source: Provenance{URL: "https://page", Level: 0, Strategy: "pattern"},
	}})

	if got.Social["twitter"] != "https://twitter.com/janedoe" {
		t.Errorf("Social[twitter] = %q, want normalized URL under lowercased key", got.Social["twitter"])
	}
}

func TestMergeProvenance(t *testing.T) {
	got := Merge([]Fragment{
		{Emails: []string{"jane@company.com"}, Source: Provenance{URL: "https://a", Level: 0, Strategy: "llm"}},
		{Source: Provenance{URL: "https://b", Level: 1, Gap: "timeout"}},
		{Source: Provenance{URL: "https://c", Level: 1, Strategy: "pattern"}}, // contributed nothing
	})

	if len(got.Provenance) != 2 {
		t.Fatalf("Provenance = %+v, want contributing page plus gap entry", got.Provenance)
	}
	if got.Provenance[0].URL != "https://a" || len(got.Provenance[0].Fields) == 0 {
		t.Errorf("Provenance[0] = %+v, want email contribution from https://a", got.Provenance[0])
	}
	if got.Provenance[1].Gap != "timeout" {
		t.Errorf("Provenance[1] = %+v, want timeout gap", got.Provenance[1])
	}
}

func TestMergeEmpty(t *testing.T) {
	got := Merge(nil)
	if len(got.Emails) != 0 || len(got.Social) != 0 || got.PersonalSite != "" || got.Phone != "" {
		t.Errorf("Merge(nil) = %+v, want empty record", got)
	}
}
