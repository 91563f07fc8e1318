// Package sanitize turns untrusted description markup into plain terminal text.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// BoldMarker wraps bold runs in the rendered text. The views swap it for
// lipgloss styling. Italics are rendered as plain text.
const (
	BoldMarker = "**"
	bullet     = "• "
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "b", "strong", "i", "em", "ul", "ol", "li")
	return p
}

// Description sanitizes html and renders what survives as text with
// paragraph breaks, bullet items and bold markers. Scripts, styles,
// attributes, links and control characters are removed.
func Description(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	clean := policy.Sanitize(raw)
	return strings.TrimSpace(collapseBlankLines(render(clean)))
}

func render(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; keep what was rendered
			return b.String()
		case html.TextToken:
			b.WriteString(normalizeText(string(z.Text())))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br":
				b.WriteString("\n")
			case "p", "ul", "ol":
				b.WriteString("\n\n")
			case "li":
				b.WriteString("\n" + bullet)
			case "b", "strong":
				b.WriteString(BoldMarker)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "ul", "ol":
				b.WriteString("\n\n")
			case "b", "strong":
				b.WriteString(BoldMarker)
			}
		}
	}
}

// normalizeText removes terminal escape sequences, collapses whitespace runs
// and drops any remaining control characters.
func normalizeText(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte(' ')
				space = true
			}
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
