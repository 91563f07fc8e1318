package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/sanpustaka-t/internal/present"
	"github.com/justyntemme/sanpustaka-t/internal/state"
	"github.com/justyntemme/sanpustaka-t/internal/ui/styles"
)

const (
	tileWidth  = 32 // outer width, border included
	tileHeight = 6  // four content lines plus border
	// title bar, input box, chips and the footer
	searchChromeLines = 8
)

// SearchView is the search bar, the category chips and the result grid
type SearchView struct {
	session    *state.Session
	categories []string

	input   textinput.Model
	spinner spinner.Model
	typing  bool

	// Grid cursor and first visible row
	cursor    int
	rowOffset int

	status notice

	width  int
	height int
}

// NewSearchView creates a new search view
func NewSearchView(session *state.Session, categories []string) *SearchView {
	input := textinput.New()
	input.Placeholder = "Search titles, authors, topics..."
	input.CharLimit = 120
	input.Width = 40
	input.Prompt = "/ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &SearchView{
		session:    session,
		categories: categories,
		input:      input,
		spinner:    sp,
		width:      80,
		height:     24,
	}
}

// Init implements View
func (v *SearchView) Init() tea.Cmd {
	if v.session.Search.Loading {
		return v.spinner.Tick
	}
	return nil
}

// StartSpinner restarts the loading animation
func (v *SearchView) StartSpinner() tea.Cmd {
	return v.spinner.Tick
}

// Typing reports whether keys go to the search input
func (v *SearchView) Typing() bool {
	return v.typing
}

// SetQuery replaces the input text and the session query
func (v *SearchView) SetQuery(q string) {
	v.input.SetValue(q)
	v.session.SetQuery(q)
}

// SetStatus implements View
func (v *SearchView) SetStatus(text string, isError bool) {
	v.status = notice{text: text, isError: isError}
}

// ResetCursor moves the cursor back to the first tile
func (v *SearchView) ResetCursor() {
	v.cursor = 0
	v.rowOffset = 0
}

// Cursor returns the index of the highlighted tile
func (v *SearchView) Cursor() int {
	return v.cursor
}

// Update implements View
func (v *SearchView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !v.session.Search.Loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.typing {
			return v.updateInput(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *SearchView) updateInput(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.typing = false
		v.input.Blur()
		return v, Search(v.input.Value())
	case "esc":
		v.typing = false
		v.input.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	v.session.SetQuery(v.input.Value())
	return v, cmd
}

func (v *SearchView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	v.status = notice{}
	cols := v.columns()

	switch key := msg.String(); key {
	case "/":
		v.typing = true
		return v, v.input.Focus()
	case "H":
		return v, Home()
	case "enter":
		if v.cursor >= 0 && v.cursor < len(v.session.Results) {
			v.session.Select(v.session.Results[v.cursor])
		}
	case "l", "right":
		v.moveCursor(1)
	case "h", "left":
		v.moveCursor(-1)
	case "j", "down":
		v.moveCursor(cols)
	case "k", "up":
		v.moveCursor(-cols)
	case "g", "home":
		v.cursor = 0
		v.updateOffset()
	case "G", "end":
		v.cursor = len(v.session.Results) - 1
		v.moveCursor(0)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(v.categories) {
			category := v.categories[n-1]
			v.SetQuery(category)
			return v, Search(category)
		}
	}
	return v, nil
}

// View implements View
func (v *SearchView) View() string {
	var b strings.Builder

	b.WriteString(v.renderHeader() + "\n")

	inputStyle := styles.InputField
	if v.typing {
		inputStyle = styles.InputFieldFocused
	}
	b.WriteString(inputStyle.Render(v.input.View()) + "\n")
	b.WriteString(v.renderChips() + "\n\n")

	contentHeight := v.height - searchChromeLines
	if contentHeight < tileHeight {
		contentHeight = tileHeight
	}

	grid := present.Grid(v.session.Results, v.session.Search.Loading)
	switch grid.State {
	case present.GridLoading:
		b.WriteString(lipgloss.Place(v.width, contentHeight, lipgloss.Center, lipgloss.Center,
			v.spinner.View()+" "+styles.MutedText.Render(grid.Message)))
	case present.GridEmpty:
		b.WriteString(lipgloss.Place(v.width, contentHeight, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(grid.Message)))
	default:
		b.WriteString(v.renderGrid(grid.Tiles, contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *SearchView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = max(10, min(60, width-10))
	v.updateOffset()
}

// renderHeader renders the title bar with the result count
func (v *SearchView) renderHeader() string {
	title := styles.TitleBar.Render(" Sanpustaka ")

	info := ""
	if q := strings.TrimSpace(v.session.Search.Query); q != "" && !v.session.Search.Loading {
		info = styles.SecondaryText.Render(fmt.Sprintf(" [%s]", styles.TruncateText(q, 30)))
	}
	count := styles.Help.Render(fmt.Sprintf(" %d books ", len(v.session.Results)))

	left := title + info
	gap := v.width - lipgloss.Width(left) - lipgloss.Width(count)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + count
}

// renderChips renders the numbered category shortcuts
func (v *SearchView) renderChips() string {
	current := strings.TrimSpace(v.session.Search.Query)
	chips := make([]string, 0, len(v.categories))
	for i, c := range v.categories {
		label := fmt.Sprintf("%d %s", i+1, c)
		if strings.EqualFold(current, c) {
			chips = append(chips, styles.ChipActive.Render(label))
		} else {
			chips = append(chips, styles.Chip.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (v *SearchView) renderGrid(tiles []present.TileModel, height int) string {
	cols := v.columns()
	visibleRows := max(1, height/tileHeight)

	var rows []string
	for r := v.rowOffset; r < v.rowOffset+visibleRows; r++ {
		start := r * cols
		if start >= len(tiles) {
			break
		}
		end := min(start+cols, len(tiles))

		cells := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cells = append(cells, v.renderTile(tiles[i], i == v.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderTile renders one book cell
func (v *SearchView) renderTile(t present.TileModel, selected bool) string {
	inner := tileWidth - 4 // border and padding

	meta := styles.MutedText.Render(t.Year)
	if t.HasRating {
		meta += " " + styles.RatingBadge.Render("★ "+t.Rating)
	}

	cover := styles.MutedText.Render("▣ cover")
	if t.Cover == present.PlaceholderCover {
		cover = styles.MutedText.Render("□ no cover")
	}

	body := strings.Join([]string{
		styles.BookTitle.Render(styles.TruncateText(t.Title, inner)),
		styles.BookAuthor.Render(styles.TruncateText(t.Authors, inner)),
		meta,
		cover,
	}, "\n")

	style := styles.Tile
	if selected {
		style = styles.TileSelected
	}
	return style.Width(tileWidth - 2).Render(body)
}

// renderFooter renders the footer help
func (v *SearchView) renderFooter() string {
	if !v.status.empty() {
		return styles.FooterBar.Width(v.width).Render(v.status.render())
	}

	var help []string
	if v.typing {
		help = []string{
			styles.HelpKey.Render("enter") + styles.Help.Render(" search"),
			styles.HelpKey.Render("esc") + styles.Help.Render(" cancel"),
		}
	} else {
		help = []string{
			styles.HelpKey.Render("hjkl") + styles.Help.Render(" nav"),
			styles.HelpKey.Render("enter") + styles.Help.Render(" details"),
			styles.HelpKey.Render("/") + styles.Help.Render(" search"),
			styles.HelpKey.Render(fmt.Sprintf("1-%d", len(v.categories))) + styles.Help.Render(" topics"),
			styles.HelpKey.Render("H") + styles.Help.Render(" home"),
			styles.HelpKey.Render("?") + styles.Help.Render(" help"),
			styles.HelpKey.Render("q") + styles.Help.Render(" quit"),
		}
	}

	themeIndicator := styles.MutedText.Render(" [Theme: "+styles.CurrentTheme().Name+"] ") +
		styles.HelpKey.Render("T") + styles.Help.Render(" toggle")

	helpText := strings.Join(help, "  ")
	gap := v.width - lipgloss.Width(helpText) - lipgloss.Width(themeIndicator)
	if gap < 0 {
		gap = 0
	}
	return helpText + strings.Repeat(" ", gap) + themeIndicator
}

// columns returns how many tiles fit side by side
func (v *SearchView) columns() int {
	return max(1, v.width/tileWidth)
}

// moveCursor moves the cursor by delta, clamped to the result list
func (v *SearchView) moveCursor(delta int) {
	v.cursor += delta
	if v.cursor >= len(v.session.Results) {
		v.cursor = len(v.session.Results) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.updateOffset()
}

// updateOffset keeps the cursor row visible
func (v *SearchView) updateOffset() {
	cols := v.columns()
	visibleRows := max(1, (v.height-searchChromeLines)/tileHeight)
	row := v.cursor / cols
	if row < v.rowOffset {
		v.rowOffset = row
	}
	if row >= v.rowOffset+visibleRows {
		v.rowOffset = row - visibleRows + 1
	}
}
