package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/justyntemme/sanpustaka-t/internal/api"
	"github.com/justyntemme/sanpustaka-t/internal/present"
	"github.com/justyntemme/sanpustaka-t/internal/state"
	"github.com/justyntemme/sanpustaka-t/internal/ui/styles"
	"github.com/justyntemme/sanpustaka-t/internal/ui/terminal"
)

// descriptionLines caps the description shown in the modal
const descriptionLines = 8

// DetailView displays the selected book in a modal
type DetailView struct {
	session *state.Session
	cover   coverPane
	status  notice

	width  int
	height int
}

// NewDetailView creates a new book details view
func NewDetailView(session *state.Session, covers api.CoverFetcher, mode terminal.TermImageMode) *DetailView {
	return &DetailView{
		session: session,
		cover:   newCoverPane(covers, mode),
		width:   80,
		height:  24,
	}
}

// Init implements View
func (v *DetailView) Init() tea.Cmd {
	if v.session.Selected == nil {
		return nil
	}
	return v.cover.show(present.Cover(*v.session.Selected))
}

// Update implements View
func (v *DetailView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.status = notice{}
		switch msg.String() {
		case "esc", "q", "backspace":
			v.session.CloseDetail()
		case "r", "enter":
			v.session.OpenReader()
		case "o":
			if v.session.Selected != nil {
				return v, OpenPreview(present.Detail(*v.session.Selected).PreviewLink)
			}
		}

	case coverLoadedMsg:
		v.cover.update(msg)
	}
	return v, nil
}

// View implements View
func (v *DetailView) View() string {
	if v.session.Selected == nil {
		return "No book selected"
	}
	d := present.Detail(*v.session.Selected)
	dialogWidth := min(70, v.width-4)
	inner := max(20, dialogWidth-6)

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render(styles.TruncateText(d.Title, inner)) + "\n")
	b.WriteString(styles.BookAuthor.Render(ansi.Wrap(d.Authors, inner, "")) + "\n\n")

	rating := present.MissingFieldText
	if d.HasRating {
		rating = styles.RatingBadge.Render("★ " + d.Rating)
	}
	b.WriteString(v.renderField("Rating", rating))
	b.WriteString(v.renderField("Published", d.Published))
	b.WriteString(v.renderField("Publisher", d.Publisher))
	b.WriteString(v.renderField("Pages", d.Pages))
	if len(d.Categories) > 0 {
		b.WriteString(v.renderField("Categories", strings.Join(d.Categories, ", ")))
	}
	b.WriteString("\n")

	desc := strings.Split(ansi.Wrap(d.Description, inner, ""), "\n")
	if len(desc) > descriptionLines {
		desc = append(desc[:descriptionLines], "…")
	}
	b.WriteString(emphasize(strings.Join(desc, "\n"), lipgloss.NewStyle()) + "\n\n")

	b.WriteString(v.renderField("Preview", styles.Link.Render(styles.TruncateText(d.PreviewLink, inner-13))))
	b.WriteString("\n" + v.renderFooter())

	coverBlock, coverLines := v.cover.view(v.width)
	dialog := styles.Dialog.Width(dialogWidth).Render(b.String())

	return coverBlock + "\n" + lipgloss.Place(
		v.width,
		max(1, v.height-coverLines-1),
		lipgloss.Center,
		lipgloss.Center,
		dialog,
	)
}

// SetSize implements View
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetStatus implements View
func (v *DetailView) SetStatus(text string, isError bool) {
	v.status = notice{text: text, isError: isError}
}

// renderField renders a label-value pair
func (v *DetailView) renderField(label, value string) string {
	return styles.FieldLabel.Render(label+":") + " " + styles.FieldValue.Render(value) + "\n"
}

// renderFooter renders the footer help
func (v *DetailView) renderFooter() string {
	if !v.status.empty() {
		return v.status.render()
	}
	help := []string{
		styles.HelpKey.Render("r") + styles.Help.Render(" read now"),
		styles.HelpKey.Render("o") + styles.Help.Render(" open preview"),
		styles.HelpKey.Render("esc/q") + styles.Help.Render(" close"),
	}
	return strings.Join(help, "  ")
}
