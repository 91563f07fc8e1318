package views

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/sanpustaka-t/internal/api"
	"github.com/justyntemme/sanpustaka-t/internal/present"
	"github.com/justyntemme/sanpustaka-t/internal/ui/styles"
	"github.com/justyntemme/sanpustaka-t/internal/ui/terminal"
)

const (
	coverCols    = 16
	coverRows    = 10
	coverTimeout = 10 * time.Second
)

// coverLoadedMsg carries a rendered cover for url
type coverLoadedMsg struct {
	url      string
	rendered string
	err      error
}

// coverPane fetches and draws the cover of the shown book. Terminals without
// an image protocol get the cover URL as text.
type coverPane struct {
	fetcher  api.CoverFetcher
	termMode terminal.TermImageMode

	url      string
	rendered string
}

func newCoverPane(fetcher api.CoverFetcher, mode terminal.TermImageMode) coverPane {
	return coverPane{fetcher: fetcher, termMode: mode}
}

// show switches to url and returns the fetch command, if any
func (c *coverPane) show(url string) tea.Cmd {
	if url == c.url && c.rendered != "" {
		return nil
	}
	c.url = url
	c.rendered = ""

	if c.fetcher == nil || c.termMode == terminal.TermModeNone || url == "" || url == present.PlaceholderCover {
		return nil
	}
	fetcher, mode := c.fetcher, c.termMode
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), coverTimeout)
		defer cancel()

		img, err := fetcher.FetchCover(ctx, url)
		if err != nil {
			return coverLoadedMsg{url: url, err: err}
		}
		rendered, err := terminal.RenderCover(img, mode, coverCols, coverRows)
		return coverLoadedMsg{url: url, rendered: rendered, err: err}
	}
}

// update applies a loaded cover. Covers for another book are ignored.
func (c *coverPane) update(msg coverLoadedMsg) {
	if msg.url != c.url {
		return
	}
	if msg.err != nil {
		log.Printf("cover %s: %v", msg.url, msg.err)
		return
	}
	c.rendered = msg.rendered
}

// view returns the drawn cover and the number of lines it takes
func (c *coverPane) view(width int) (string, int) {
	if c.rendered != "" {
		return c.rendered, coverRows
	}
	label := "Cover: "
	if c.url == present.PlaceholderCover {
		label = "No cover: "
	}
	return styles.MutedText.Render(styles.TruncateText(label+c.url, width)), 1
}
