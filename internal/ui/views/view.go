package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/sanpustaka-t/internal/present"
	"github.com/justyntemme/sanpustaka-t/internal/state"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewSearch ViewType = iota
	ViewDetail
	ViewReader
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "Search"
	case ViewDetail:
		return "Details"
	case ViewReader:
		return "Reader"
	default:
		return "Unknown"
	}
}

// ForMode maps the visible session layer to its view
func ForMode(m state.Mode) ViewType {
	switch m {
	case state.ModeDetail:
		return ViewDetail
	case state.ModeReader:
		return ViewReader
	default:
		return ViewSearch
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
	// SetStatus shows a one-line notice in the footer until the next key
	SetStatus(text string, isError bool)
}

// Message types for inter-view communication

// SearchMsg asks the app to run a search
type SearchMsg struct {
	Query string
}

// HomeMsg clears the query and runs the home search
type HomeMsg struct{}

// OpenPreviewMsg asks the app to open a preview link in the browser
type OpenPreviewMsg struct {
	URL string
}

// StatusMsg is a short notice for the footer
type StatusMsg struct {
	Text string
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// Search creates a command that requests a search for q
func Search(q string) tea.Cmd {
	return func() tea.Msg {
		return SearchMsg{Query: q}
	}
}

// Home creates a command for the home search
func Home() tea.Cmd {
	return func() tea.Msg {
		return HomeMsg{}
	}
}

// OpenPreview creates a command that opens url, if there is one
func OpenPreview(url string) tea.Cmd {
	if url == "" || url == present.MissingFieldText {
		return nil
	}
	return func() tea.Msg {
		return OpenPreviewMsg{URL: url}
	}
}

// SendError creates an error message command
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
