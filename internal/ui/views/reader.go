package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/justyntemme/sanpustaka-t/internal/api"
	"github.com/justyntemme/sanpustaka-t/internal/present"
	"github.com/justyntemme/sanpustaka-t/internal/state"
	"github.com/justyntemme/sanpustaka-t/internal/ui/styles"
	"github.com/justyntemme/sanpustaka-t/internal/ui/terminal"
)

// minTextWidth is the narrowest readable column
const minTextWidth = 20

// ReaderView is the full-screen reader overlay
type ReaderView struct {
	session  *state.Session
	cover    coverPane
	viewport viewport.Model
	status   notice

	width  int
	height int
}

// NewReaderView creates a new reader view
func NewReaderView(session *state.Session, covers api.CoverFetcher, mode terminal.TermImageMode) *ReaderView {
	return &ReaderView{
		session:  session,
		cover:    newCoverPane(covers, mode),
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	if v.session.Reader == nil {
		return nil
	}
	cmd := v.cover.show(present.Cover(v.session.Reader.Book))
	v.refresh()
	v.viewport.GotoTop()
	return cmd
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.status = notice{}
		switch msg.String() {
		case "esc", "q", "backspace":
			v.session.CloseReader()
			return v, nil
		case "+", "=":
			v.session.IncreaseFont()
			v.refresh()
			return v, nil
		case "-", "_":
			v.session.DecreaseFont()
			v.refresh()
			return v, nil
		case "l":
			return v, v.setTheme(state.ThemeLight)
		case "s":
			return v, v.setTheme(state.ThemeSepia)
		case "d":
			return v, v.setTheme(state.ThemeDark)
		case "o":
			if v.session.Reader != nil {
				return v, OpenPreview(present.ReaderPage(v.session.Reader.Book, v.session.Prefs).PreviewLink)
			}
			return v, nil
		}

	case coverLoadedMsg:
		v.cover.update(msg)
		v.layout()
		return v, nil
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View implements View
func (v *ReaderView) View() string {
	if v.session.Reader == nil {
		return "No book open"
	}
	page := present.ReaderPage(v.session.Reader.Book, v.session.Prefs)
	pageStyle := styles.ReaderPage(page.Colors.Background, page.Colors.Text)

	coverBlock, _ := v.cover.view(v.width)

	var b strings.Builder
	b.WriteString(v.renderHeader(page) + "\n")
	b.WriteString(pageStyle.Width(v.width).Render(coverBlock) + "\n")
	b.WriteString(v.viewport.View() + "\n")
	b.WriteString(v.renderFooter(page))
	return b.String()
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.layout()
	v.refresh()
}

// SetStatus implements View
func (v *ReaderView) SetStatus(text string, isError bool) {
	v.status = notice{text: text, isError: isError}
}

// TextWidth returns the wrap width for the current font size. Larger fonts
// give narrower lines, the way a bigger typeface would.
func (v *ReaderView) TextWidth() int {
	return textWidth(v.width, v.session.Prefs.FontSize)
}

func textWidth(screenWidth, fontSize int) int {
	base := screenWidth - 4
	width := base * state.DefaultFontSize / state.ClampFontSize(fontSize)
	if width > base {
		width = base
	}
	if width < minTextWidth {
		width = minTextWidth
	}
	return width
}

func (v *ReaderView) setTheme(t state.ReaderTheme) tea.Cmd {
	if err := v.session.SetTheme(t); err != nil {
		return SendError(err)
	}
	v.refresh()
	return nil
}

// layout sizes the viewport around the header, cover and footer
func (v *ReaderView) layout() {
	_, coverLines := v.cover.view(v.width)
	v.viewport.Width = v.width
	v.viewport.Height = max(3, v.height-2-coverLines-1)
}

// refresh re-renders the page into the viewport
func (v *ReaderView) refresh() {
	if v.session.Reader == nil {
		return
	}
	page := present.ReaderPage(v.session.Reader.Book, v.session.Prefs)
	v.viewport.SetContent(v.renderPage(page))
}

// renderPage renders title, authors, description and the preview block
func (v *ReaderView) renderPage(page present.ReaderModel) string {
	width := textWidth(v.width, page.FontSize)
	base := styles.ReaderPage(page.Colors.Background, page.Colors.Text)

	var b strings.Builder
	b.WriteString(base.Bold(true).Render(ansi.Wrap(page.Title, width, "")) + "\n")
	b.WriteString(base.Italic(true).Render(ansi.Wrap(page.Authors, width, "")) + "\n\n")
	b.WriteString(emphasize(ansi.Wrap(page.Description, width, ""), base) + "\n\n")

	b.WriteString(strings.Repeat("─", width) + "\n")
	b.WriteString(ansi.Wrap(page.PreviewText, width, "") + "\n")
	if page.Embeddable {
		b.WriteString(ansi.Wrap("Open the preview: "+page.PreviewLink, width, "") + "\n")
		b.WriteString(base.Bold(true).Render("Press o to read it in your browser") + "\n")
	}

	pad := max(0, (v.width-width)/2)
	return base.
		Width(v.width).
		Padding(1, 0, 1, pad).
		Render(b.String())
}

// renderHeader renders the title and display settings
func (v *ReaderView) renderHeader(page present.ReaderModel) string {
	maxTitleWidth := max(10, v.width/2)
	title := styles.TitleBar.Render(" " + styles.TruncateText(page.Title, maxTitleWidth) + " ")

	settings := styles.MutedText.Render(fmt.Sprintf(" %dpt  %s ", page.FontSize, page.Theme))
	gap := v.width - lipgloss.Width(title) - lipgloss.Width(settings)
	if gap < 0 {
		gap = 0
	}
	return title + strings.Repeat(" ", gap) + settings
}

// renderFooter renders the footer help
func (v *ReaderView) renderFooter(page present.ReaderModel) string {
	if !v.status.empty() {
		return styles.FooterBar.Width(v.width).Render(v.status.render())
	}
	themes := make([]string, 0, len(state.ReaderThemes))
	for _, t := range state.ReaderThemes {
		label := string(t[:1])
		if t == page.Theme {
			themes = append(themes, styles.HelpKey.Render("["+label+"]"))
		} else {
			themes = append(themes, styles.Help.Render(label))
		}
	}

	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" scroll"),
		styles.HelpKey.Render("+/-") + styles.Help.Render(fmt.Sprintf(" size (%d)", page.FontSize)),
		strings.Join(themes, "/") + styles.Help.Render(" theme"),
		styles.HelpKey.Render("o") + styles.Help.Render(" preview"),
		styles.HelpKey.Render("esc/q") + styles.Help.Render(" back"),
	}
	return styles.FooterBar.Width(v.width).Render(strings.Join(help, "  "))
}
