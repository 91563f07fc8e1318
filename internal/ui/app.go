package ui

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/sanpustaka-t/internal/api"
	"github.com/justyntemme/sanpustaka-t/internal/config"
	"github.com/justyntemme/sanpustaka-t/internal/prefs"
	"github.com/justyntemme/sanpustaka-t/internal/state"
	"github.com/justyntemme/sanpustaka-t/internal/ui/styles"
	"github.com/justyntemme/sanpustaka-t/internal/ui/terminal"
	"github.com/justyntemme/sanpustaka-t/internal/ui/views"
	"github.com/justyntemme/sanpustaka-t/pkg/models"
)

// Options configures the application
type Options struct {
	Config    *config.Config
	Searcher  api.Searcher
	Covers    api.CoverFetcher
	Prefs     prefs.Prefs
	PrefsPath string
	// InitialQuery overrides the configured startup search
	InitialQuery string
	ImageMode    terminal.TermImageMode
	// OpenURL defaults to OpenBrowser
	OpenURL func(url string) error
}

// searchDoneMsg carries the outcome of the search identified by token
type searchDoneMsg struct {
	token uint64
	query string
	books []models.BookSummary
	err   error
}

// prefsSavedMsg reports a failed prefs write
type prefsSavedMsg struct {
	err error
}

// App is the main application model
type App struct {
	cfg       *config.Config
	searcher  api.Searcher
	session   *state.Session
	prefs     prefs.Prefs
	prefsPath string
	openURL   func(string) error
	imageMode terminal.TermImageMode

	keys KeyMap
	help help.Model

	// Current view state
	currentView views.ViewType

	// View models
	searchView *views.SearchView
	detailView *views.DetailView
	readerView *views.ReaderView

	// Window dimensions
	width  int
	height int

	initialQuery string
	showHelp     bool
	// Kitty delete sequence emitted with the next frame after leaving a cover
	clearSeq string
}

// NewApp creates a new application instance
func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = OpenBrowser
	}
	initial := opts.InitialQuery
	if initial == "" {
		initial = cfg.InitialQuery
	}

	session := state.NewSession()
	styles.SetCurrentTheme(opts.Prefs.Theme)

	h := help.New()
	h.ShowAll = true

	return &App{
		cfg:          cfg,
		searcher:     opts.Searcher,
		session:      session,
		prefs:        opts.Prefs,
		prefsPath:    opts.PrefsPath,
		openURL:      openURL,
		imageMode:    opts.ImageMode,
		keys:         DefaultKeyMap(),
		help:         h,
		currentView:  views.ViewSearch,
		searchView:   views.NewSearchView(session, cfg.Categories),
		detailView:   views.NewDetailView(session, opts.Covers, opts.ImageMode),
		readerView:   views.NewReaderView(session, opts.Covers, opts.ImageMode),
		width:        80,
		height:       24,
		initialQuery: initial,
	}
}

// Session exposes the view state
func (a *App) Session() *state.Session {
	return a.session
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	a.searchView.SetQuery(a.initialQuery)
	return tea.Batch(
		tea.SetWindowTitle("sanpustaka-t"),
		a.searchView.Init(),
		a.search(a.initialQuery),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.clearSeq = ""

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.searchView.SetSize(msg.Width, msg.Height)
		a.detailView.SetSize(msg.Width, msg.Height)
		a.readerView.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if a.showHelp {
			if key.Matches(msg, a.keys.Help, a.keys.Escape, a.keys.Quit) {
				a.showHelp = false
			}
			return a, nil
		}
		// Typing in the search box swallows every other shortcut
		if a.currentView == views.ViewSearch && a.searchView.Typing() {
			break
		}
		switch {
		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil
		case key.Matches(msg, a.keys.ThemeToggle):
			return a, a.toggleTheme()
		case key.Matches(msg, a.keys.Quit) && a.currentView == views.ViewSearch:
			return a, tea.Quit
		}

	case views.SearchMsg:
		return a, a.search(msg.Query)

	case views.HomeMsg:
		a.searchView.SetQuery("")
		return a, a.search(a.cfg.HomeQuery)

	case searchDoneMsg:
		if msg.err != nil {
			log.Printf("search %q failed: %v", msg.query, msg.err)
		}
		if !a.session.CompleteSearch(msg.token, msg.books, msg.err) {
			log.Printf("dropping stale results for %q", msg.query)
			return a, nil
		}
		a.searchView.ResetCursor()
		return a, nil

	case views.OpenPreviewMsg:
		return a, a.openPreview(msg.URL)

	case views.StatusMsg:
		a.getCurrentView().SetStatus(msg.Text, false)
		return a, nil

	case views.ErrorMsg:
		log.Printf("error: %v", msg.Err)
		a.getCurrentView().SetStatus("Error: "+msg.Err.Error(), true)
		return a, nil

	case prefsSavedMsg:
		if msg.err != nil {
			log.Printf("save prefs: %v", msg.err)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.currentView {
	case views.ViewSearch:
		_, cmd = a.searchView.Update(msg)
	case views.ViewDetail:
		_, cmd = a.detailView.Update(msg)
	case views.ViewReader:
		_, cmd = a.readerView.Update(msg)
	}

	// Views change the session directly; follow the visible layer
	if next := views.ForMode(a.session.Mode()); next != a.currentView {
		return a, tea.Batch(cmd, a.switchView(next))
	}
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	if a.showHelp {
		return a.clearSeq + a.renderHelp()
	}
	return a.clearSeq + a.getCurrentView().View()
}

// search starts a search for q. Empty queries do nothing.
func (a *App) search(q string) tea.Cmd {
	token, ok := a.session.BeginSearch(q)
	if !ok {
		return nil
	}
	a.searchView.ResetCursor()
	if a.searcher == nil {
		return func() tea.Msg {
			return searchDoneMsg{token: token, query: q, books: []models.BookSummary{}}
		}
	}

	searcher, limit := a.searcher, a.cfg.MaxResults
	return tea.Batch(
		a.searchView.StartSpinner(),
		func() tea.Msg {
			books, err := searcher.Search(context.Background(), q, limit)
			return searchDoneMsg{token: token, query: q, books: books, err: err}
		},
	)
}

// toggleTheme flips the app theme and saves it in the background
func (a *App) toggleTheme() tea.Cmd {
	a.prefs = a.prefs.ToggleTheme()
	styles.SetCurrentTheme(a.prefs.Theme)
	if a.prefsPath == "" {
		return nil
	}
	path, p := a.prefsPath, a.prefs
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

func (a *App) openPreview(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return views.ErrorMsg{Err: err}
		}
		return views.StatusMsg{Text: "Opened preview in browser"}
	}
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) tea.Cmd {
	var cmds []tea.Cmd

	// Drop any cover drawn by the view being left
	if a.currentView != views.ViewSearch {
		switch a.imageMode {
		case terminal.TermModeKitty:
			a.clearSeq = terminal.ClearImages(a.imageMode)
		case terminal.TermModeIterm, terminal.TermModeSixel:
			cmds = append(cmds, tea.ClearScreen)
		}
	}

	a.currentView = view
	cmds = append(cmds, a.getCurrentView().Init())
	return tea.Batch(cmds...)
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewDetail:
		return a.detailView
	case views.ViewReader:
		return a.readerView
	default:
		return a.searchView
	}
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	body := styles.DialogTitle.Render("Keyboard Shortcuts") + "\n\n" +
		a.help.View(a.keys) + "\n\n" +
		styles.Help.Render("Press ? or esc to close")

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Dialog.Render(body),
	)
}
