package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justyntemme/sanpustaka-t/internal/api"
	"github.com/justyntemme/sanpustaka-t/internal/config"
	"github.com/justyntemme/sanpustaka-t/internal/present"
	"github.com/justyntemme/sanpustaka-t/pkg/models"
)

type searchResult struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Year        string   `json:"year"`
	Rating      *float64 `json:"rating,omitempty"`
	Cover       string   `json:"cover"`
	PreviewLink string   `json:"preview_link,omitempty"`
	Embeddable  bool     `json:"embeddable"`
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the catalog and print the results",
		Long: `Search the public volume catalog without starting the interactive browser.

Examples:
  sanpustaka-t search "laskar pelangi"
  sanpustaka-t search manga --limit 5
  sanpustaka-t search sejarah --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return fmt.Errorf("provide a search query")
			}

			cfg := opts.cfg
			if limit == 0 {
				limit = cfg.MaxResults
			}
			if limit < 1 || limit > config.MaxResultsLimit {
				return fmt.Errorf("--limit must be between 1 and %d", config.MaxResultsLimit)
			}

			client, err := api.NewClient(cfg.Endpoint, cfg.RequestTimeout)
			if err != nil {
				return fmt.Errorf("init api client: %w", err)
			}
			books, err := client.Search(cmd.Context(), query, limit)
			if err != nil {
				return fmt.Errorf("search %q: %w", query, err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, books)
			}
			writeTable(out, query, books)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of results (default from config)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func writeJSON(w io.Writer, books []models.BookSummary) error {
	results := make([]searchResult, 0, len(books))
	for _, b := range books {
		results = append(results, searchResult{
			ID:          b.ID,
			Title:       present.Title(b),
			Authors:     b.Authors,
			Year:        present.Year(b.PublishedDate),
			Rating:      b.AverageRating,
			Cover:       present.Cover(b),
			PreviewLink: b.PreviewLink,
			Embeddable:  b.IsEmbeddable(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeTable(w io.Writer, query string, books []models.BookSummary) {
	if len(books) == 0 {
		fmt.Fprintln(w, present.EmptyResultsText)
		return
	}

	fmt.Fprintln(w, color.CyanString("── %s  (%d books)", query, len(books)))
	for i, b := range books {
		t := present.Tile(b)
		rating := ""
		if t.HasRating {
			rating = "  " + color.YellowString("★ %s", t.Rating)
		}
		fmt.Fprintf(w, "%3d. %s  %s  %s%s\n",
			i+1,
			color.New(color.Bold).Sprint(t.Title),
			t.Authors,
			color.HiBlackString(t.Year),
			rating,
		)
	}
}
