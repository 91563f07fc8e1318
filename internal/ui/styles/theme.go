package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Error lipgloss.Color
	Muted lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	Rating        lipgloss.Color
	RatingText    lipgloss.Color
	Chip          lipgloss.Color
	ChipText      lipgloss.Color
}

// Built-in themes
var (
	// LightTheme is the default theme
	LightTheme = Theme{
		Name:          "light",
		Primary:       lipgloss.Color("#4F46E5"),
		Secondary:     lipgloss.Color("#0891B2"),
		Foreground:    lipgloss.Color("#0F172A"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#64748B"),
		Border:        lipgloss.Color("#CBD5E1"),
		Selection:     lipgloss.Color("#4F46E5"),
		SelectionText: lipgloss.Color("#FFFFFF"),
		Rating:        lipgloss.Color("#FACC15"),
		RatingText:    lipgloss.Color("#0F172A"),
		Chip:          lipgloss.Color("#E2E8F0"),
		ChipText:      lipgloss.Color("#334155"),
	}

	// DarkTheme is the dark counterpart
	DarkTheme = Theme{
		Name:          "dark",
		Primary:       lipgloss.Color("#818CF8"),
		Secondary:     lipgloss.Color("#22D3EE"),
		Foreground:    lipgloss.Color("#E2E8F0"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#94A3B8"),
		Border:        lipgloss.Color("#334155"),
		Selection:     lipgloss.Color("#6366F1"),
		SelectionText: lipgloss.Color("#F8FAFC"),
		Rating:        lipgloss.Color("#FACC15"),
		RatingText:    lipgloss.Color("#0F172A"),
		Chip:          lipgloss.Color("#1E293B"),
		ChipText:      lipgloss.Color("#CBD5E1"),
	}

	// BuiltinThemes is a list of all available built-in themes
	BuiltinThemes = []Theme{
		LightTheme,
		DarkTheme,
	}

	// currentTheme holds the active theme
	currentTheme = LightTheme
)

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return LightTheme
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	TitleBar = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	FooterBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().
		Foreground(theme.Muted)

	HelpKey = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
		Foreground(theme.Muted)

	SecondaryText = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true)

	InputField = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	InputFieldFocused = InputField.
		BorderForeground(theme.Primary)

	Chip = lipgloss.NewStyle().
		Foreground(theme.ChipText).
		Background(theme.Chip).
		Padding(0, 1).
		MarginRight(1)

	ChipActive = Chip.
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Bold(true)

	Tile = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	TileSelected = Tile.
		BorderForeground(theme.Selection).
		Bold(true)

	RatingBadge = lipgloss.NewStyle().
		Foreground(theme.RatingText).
		Background(theme.Rating).
		Padding(0, 1).
		Bold(true)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	FieldLabel = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Width(12)

	FieldValue = lipgloss.NewStyle().
		Foreground(theme.Foreground)

	BookTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	BookAuthor = lipgloss.NewStyle().
		Foreground(theme.Secondary)

	Link = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Underline(true)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(LightTheme)
}
