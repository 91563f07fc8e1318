package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles. ApplyTheme fills them in.
var (
	TitleBar  lipgloss.Style
	FooterBar lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	ErrorStyle    lipgloss.Style

	InputField        lipgloss.Style
	InputFieldFocused lipgloss.Style

	// Category chips
	Chip       lipgloss.Style
	ChipActive lipgloss.Style

	// Grid tiles
	Tile         lipgloss.Style
	TileSelected lipgloss.Style
	RatingBadge  lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	FieldLabel  lipgloss.Style
	FieldValue  lipgloss.Style

	BookTitle  lipgloss.Style
	BookAuthor lipgloss.Style
	Link       lipgloss.Style
)

// ReaderPage returns the page style for a reader theme's fixed colors.
// Reader colors never follow the app theme.
func ReaderPage(background, text string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(text))
}

// TruncateText shortens s to width cells, ending with an ellipsis
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
