package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/sanpustaka-t/internal/sanitize"
	"github.com/justyntemme/sanpustaka-t/internal/ui/styles"
)

// notice is a footer message shown until the next key
type notice struct {
	text    string
	isError bool
}

func (n notice) empty() bool {
	return n.text == ""
}

func (n notice) render() string {
	if n.isError {
		return styles.ErrorStyle.Render(n.text)
	}
	return styles.SecondaryText.Render(n.text)
}

// emphasize turns paired bold markers into bold runs. Runs are styled line
// by line so wrapped text keeps its layout. An unpaired marker stays literal.
func emphasize(text string, base lipgloss.Style) string {
	usable := strings.Count(text, sanitize.BoldMarker) / 2 * 2
	if usable == 0 {
		return text
	}
	bold := base.Bold(true)

	seen := 0
	open := false
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		parts := strings.Split(line, sanitize.BoldMarker)
		var b strings.Builder
		for j, part := range parts {
			if j > 0 {
				seen++
				if seen > usable {
					b.WriteString(sanitize.BoldMarker)
				} else {
					open = !open
				}
			}
			if open && part != "" {
				b.WriteString(bold.Render(part))
			} else {
				b.WriteString(part)
			}
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
