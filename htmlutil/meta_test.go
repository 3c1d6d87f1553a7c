package htmlutil

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"title tag", `<title>Jane Doe</title>`, "Jane Doe"},
		{"title preferred over h1", `<title>Jane</title><h1>Other</h1>`, "Jane"},
		{"og title fallback", `<meta property="og:title" content="Jane Doe">`, "Jane Doe"},
		{"h1 fallback", `<h1 class="hero">Jane Doe</h1>`, "Jane Doe"},
		{"entities unescaped", `<title>Jane &amp; Co</title>`, "Jane & Co"},
		{"nothing", `<p>hi</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.content); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	content := `<meta name="description" content="Software engineer in Berlin">`
	if got := Description(content); got != "Software engineer in Berlin" {
		t.Errorf("Description() = %q", got)
	}
	og := `<meta property="og:description" content="Engineer">`
	if got := Description(og); got != "Engineer" {
		t.Errorf("Description() og fallback = %q", got)
	}
}

func TestIsPersonalSite(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://janedoe.github.io", true},
		{"https://jane.netlify.app", true},
		{"https://jane-portfolio.vercel.app", true},
		{"https://janedoe.me", true},
		{"https://blog.janedoe.dev", true},
		{"https://google.com", false},
		{"https://news.ycombinator.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := IsPersonalSite(tt.url); got != tt.want {
				t.Errorf("IsPersonalSite(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
