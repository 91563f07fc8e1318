// Package state holds the view state of the book browser: the search
// controller, the result store, the selection and the reader overlay.
//
// All transitions run on the Bubble Tea update loop, so Session carries no
// locking. Rendering code reads it; only the methods below mutate it.
package state

import (
	"fmt"
	"strings"

	"github.com/justyntemme/sanpustaka-t/pkg/models"
)

// Mode is the visible layer of the UI.
type Mode int

const (
	ModeGrid Mode = iota
	ModeDetail
	ModeReader
)

// String returns the name of the mode
func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return "grid"
	case ModeDetail:
		return "detail"
	case ModeReader:
		return "reader"
	default:
		return "unknown"
	}
}

// Reader display bounds.
const (
	MinFontSize     = 14
	MaxFontSize     = 32
	DefaultFontSize = 18
	FontSizeStep    = 2
)

// ReaderTheme is one of the fixed reader color schemes.
type ReaderTheme string

const (
	ThemeLight ReaderTheme = "light"
	ThemeSepia ReaderTheme = "sepia"
	ThemeDark  ReaderTheme = "dark"
)

// ReaderThemes lists the reader themes in display order.
var ReaderThemes = []ReaderTheme{ThemeLight, ThemeSepia, ThemeDark}

// ParseReaderTheme validates a theme name.
func ParseReaderTheme(name string) (ReaderTheme, error) {
	t := ReaderTheme(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range ReaderThemes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown reader theme %q", name)
}

// SearchState is the query text and the loading flag.
type SearchState struct {
	Query   string
	Loading bool
}

// ReaderPrefs are the reader display preferences.
type ReaderPrefs struct {
	FontSize int
	Theme    ReaderTheme
}

// DefaultReaderPrefs returns 18pt on the light theme.
func DefaultReaderPrefs() ReaderPrefs {
	return ReaderPrefs{FontSize: DefaultFontSize, Theme: ThemeLight}
}

// ReaderState is the book shown in the reader overlay.
type ReaderState struct {
	Book models.BookSummary
}

// Session is the single owner of all UI state.
type Session struct {
	Search   SearchState
	Results  []models.BookSummary
	Selected *models.BookSummary
	Reader   *ReaderState
	Prefs    ReaderPrefs

	// token of the most recently issued search
	token uint64
}

// NewSession creates an idle session with default reader preferences.
func NewSession() *Session {
	return &Session{Prefs: DefaultReaderPrefs()}
}

// SetQuery records the query text. It does not search.
func (s *Session) SetQuery(q string) {
	s.Search.Query = q
}

// BeginSearch starts a search for q. An empty query is a no-op and returns
// ok=false without touching the loading flag or the results. Otherwise the
// results are cleared, loading is set and a fresh request token is returned.
func (s *Session) BeginSearch(q string) (token uint64, ok bool) {
	if strings.TrimSpace(q) == "" {
		return 0, false
	}
	s.token++
	s.Search.Loading = true
	s.Results = nil
	return s.token, true
}

// Token returns the token of the latest search.
func (s *Session) Token() uint64 {
	return s.token
}

// CompleteSearch applies the outcome of the search identified by token.
// Responses for anything but the latest search are dropped and false is
// returned. Errors leave an empty result set; loading is always cleared.
func (s *Session) CompleteSearch(token uint64, books []models.BookSummary, err error) bool {
	if token != s.token {
		return false
	}
	s.Search.Loading = false
	if err != nil || len(books) == 0 {
		s.Results = []models.BookSummary{}
		return true
	}
	s.Results = make([]models.BookSummary, len(books))
	for i, b := range books {
		s.Results[i] = b.Clone()
	}
	return true
}

// Select opens the detail modal for book. Any open reader is closed.
func (s *Session) Select(book models.BookSummary) {
	b := book.Clone()
	s.Selected = &b
	s.Reader = nil
}

// CloseDetail clears the selection, and with it the reader.
func (s *Session) CloseDetail() {
	s.Selected = nil
	s.Reader = nil
}

// OpenReader copies the selected book into the reader. It is a no-op
// without a selection.
func (s *Session) OpenReader() bool {
	if s.Selected == nil {
		return false
	}
	s.Reader = &ReaderState{Book: s.Selected.Clone()}
	return true
}

// CloseReader leaves reader mode; the detail modal becomes visible again.
func (s *Session) CloseReader() {
	s.Reader = nil
}

// Mode returns the visible layer.
func (s *Session) Mode() Mode {
	switch {
	case s.Reader != nil:
		return ModeReader
	case s.Selected != nil:
		return ModeDetail
	default:
		return ModeGrid
	}
}

// DetailVisible reports whether the detail modal is shown.
func (s *Session) DetailVisible() bool {
	return s.Selected != nil && s.Reader == nil
}

// ReaderVisible reports whether the reader overlay is shown.
func (s *Session) ReaderVisible() bool {
	return s.Reader != nil
}

// IncreaseFont grows the reader font by one step, clamped at MaxFontSize.
func (s *Session) IncreaseFont() int {
	s.Prefs.FontSize = ClampFontSize(s.Prefs.FontSize + FontSizeStep)
	return s.Prefs.FontSize
}

// DecreaseFont shrinks the reader font by one step, clamped at MinFontSize.
func (s *Session) DecreaseFont() int {
	s.Prefs.FontSize = ClampFontSize(s.Prefs.FontSize - FontSizeStep)
	return s.Prefs.FontSize
}

// SetTheme switches the reader theme. Selecting the active theme is a no-op.
func (s *Session) SetTheme(t ReaderTheme) error {
	parsed, err := ParseReaderTheme(string(t))
	if err != nil {
		return err
	}
	s.Prefs.Theme = parsed
	return nil
}

// ClampFontSize bounds n to [MinFontSize, MaxFontSize].
func ClampFontSize(n int) int {
	if n < MinFontSize {
		return MinFontSize
	}
	if n > MaxFontSize {
		return MaxFontSize
	}
	return n
}
