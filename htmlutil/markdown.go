package htmlutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptBlock = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	headingTag  = regexp.MustCompile(`(?i)<h([1-3])[^>]*>(.*?)</h[1-3]>`)
	anchorToMD  = regexp.MustCompile(`(?i)<a[^>]+href=["']([^"']+)["'][^>]*>([^<]+)</a>`)
	emphasisTag = regexp.MustCompile(`(?i)<(?:b|strong)[^>]*>(.*?)</(?:b|strong)>`)
	anyTag      = regexp.MustCompile(`<[^>]+>`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
	breakOrPara = strings.NewReplacer("</p>", "\n\n", "<p>", "", "<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"<li>", "- ", "</li>", "\n", "<ul>", "\n", "</ul>", "\n", "<ol>", "\n", "</ol>", "\n")
)

// ToMarkdown reduces HTML to a compact markdown-ish text form. Scripts and
// styles are dropped, links and headings are preserved, everything else is
// flattened. The result is what gets handed to the content-analysis service,
// so staying small matters more than fidelity.
func ToMarkdown(content string) string {
	if content == "" {
		return ""
	}

	content = scriptBlock.ReplaceAllString(content, "")
	content = headingTag.ReplaceAllStringFunc(content, func(h string) string {
		m := headingTag.FindStringSubmatch(h)
		return "\n" + strings.Repeat("#", int(m[1][0]-'0')) + " " + m[2] + "\n"
	})
	content = anchorToMD.ReplaceAllString(content, "[$2]($1)")
	content = emphasisTag.ReplaceAllString(content, "**$1**")
	content = breakOrPara.Replace(content)
	content = anyTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)
	content = blankLines.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}
