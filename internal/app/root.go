package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justyntemme/sanpustaka-t/internal/api"
	"github.com/justyntemme/sanpustaka-t/internal/config"
	"github.com/justyntemme/sanpustaka-t/internal/prefs"
	"github.com/justyntemme/sanpustaka-t/internal/ui"
	"github.com/justyntemme/sanpustaka-t/internal/ui/terminal"
)

// rootOptions holds the persistent flags and what PersistentPreRunE loads
type rootOptions struct {
	configPath string
	prefsPath  string
	logFile    string
	noColor    bool

	cfg *config.Config
}

// Execute runs the command line until ctx is cancelled
func Execute(ctx context.Context, version string) error {
	return newRootCmd(version).ExecuteContext(ctx)
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}
	var query string

	cmd := &cobra.Command{
		Use:   "sanpustaka-t",
		Short: "Browse the public book catalog from your terminal",
		Long: `sanpustaka-t searches the public volume catalog and shows the results
as a grid of book tiles. Pick a book for its details, then open the reader
for a comfortable view of its description.

Run 'sanpustaka-t' with no arguments to launch the interactive browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts, query)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file path (default: "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "Preferences file path (default: "+prefs.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Write debug logs to this file")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search this instead of the configured startup query")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		InitColor(opts.noColor)

		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if opts.logFile != "" {
			cfg.LogFile = config.ExpandHome(opts.logFile)
		}
		opts.cfg = cfg
		return nil
	}

	cmd.AddCommand(
		newSearchCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(version),
	)
	return cmd
}

// runTUI starts the interactive browser
func runTUI(ctx context.Context, opts *rootOptions, query string) error {
	cfg := opts.cfg

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := api.NewClient(cfg.Endpoint, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	prefsPath := opts.prefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		log.Printf("prefs: %v", err)
	}

	mode := terminal.DetectTerminalMode()
	log.Printf("starting with endpoint %s, image mode %s", client.Endpoint(), mode)

	model := ui.NewApp(ui.Options{
		Config:       cfg,
		Searcher:     client,
		Covers:       client,
		Prefs:        userPrefs,
		PrefsPath:    prefsPath,
		InitialQuery: query,
		ImageMode:    mode,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// setupLogging sends the standard logger to path, or discards it. The TUI
// owns the terminal, so logs never go to stderr.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "sanpustaka-t")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

// InitColor configures color output based on flags and terminal detection.
func InitColor(noColor bool) {
	if noColor || !isTTY() {
		color.NoColor = true
	}
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
