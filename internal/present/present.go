// Package present turns view state into display models. Nothing in here knows
// about terminals; the ui package styles the result.
package present

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/justyntemme/sanpustaka-t/internal/sanitize"
	"github.com/justyntemme/sanpustaka-t/internal/state"
	"github.com/justyntemme/sanpustaka-t/pkg/models"
)

// PlaceholderCover is shown whenever a book has no thumbnail.
const PlaceholderCover = "https://via.placeholder.com/128x196?text=No+Cover"

// Fallback texts for missing fields.
const (
	UntitledText          = "Untitled"
	UnknownAuthorText     = "Unknown author"
	UnknownYearText       = "N/A"
	MissingFieldText      = "-"
	NoDescriptionText     = "No description available."
	NoReaderDescription   = "Description unavailable."
	PreviewBlockedText    = "Preview not permitted by the publisher for this book."
	PreviewAvailableText  = "A preview of this book is available from the publisher."
	EmptyResultsText      = "No books found. Try another search."
	LoadingText           = "Searching…"
	previewLinkMissingURL = MissingFieldText
)

// TileModel is one cell of the result grid.
type TileModel struct {
	ID        string
	Title     string
	Authors   string
	Year      string
	Cover     string
	Rating    string
	HasRating bool
}

// GridState says which of the three grid layers is shown.
type GridState int

const (
	GridTiles GridState = iota
	GridLoading
	GridEmpty
)

// GridModel is the whole result area.
type GridModel struct {
	State   GridState
	Message string
	Tiles   []TileModel
}

// DetailModel is the detail modal.
type DetailModel struct {
	Title       string
	Authors     string
	Cover       string
	Rating      string
	HasRating   bool
	Published   string
	Publisher   string
	Pages       string
	Categories  []string
	Description string
	PreviewLink string
}

// Colors is a fixed background and text pair.
type Colors struct {
	Background string
	Text       string
}

// ReaderModel is the reader overlay.
type ReaderModel struct {
	Title       string
	Authors     string
	Cover       string
	Description string
	Embeddable  bool
	PreviewText string
	PreviewLink string
	FontSize    int
	Theme       state.ReaderTheme
	Colors      Colors
}

var readerColors = map[state.ReaderTheme]Colors{
	state.ThemeLight: {Background: "#FFFFFF", Text: "#0F172A"},
	state.ThemeSepia: {Background: "#F4ECD8", Text: "#1E293B"},
	state.ThemeDark:  {Background: "#0F172A", Text: "#CBD5E1"},
}

// ThemeColors returns the fixed colors of a reader theme. Unknown themes get
// the light pair.
func ThemeColors(t state.ReaderTheme) Colors {
	if c, ok := readerColors[t]; ok {
		return c
	}
	return readerColors[state.ThemeLight]
}

// Tile builds the grid cell for book.
func Tile(book models.BookSummary) TileModel {
	rating, ok := formatRating(book.AverageRating)
	return TileModel{
		ID:        book.ID,
		Title:     Title(book),
		Authors:   Authors(book),
		Year:      Year(book.PublishedDate),
		Cover:     Cover(book),
		Rating:    rating,
		HasRating: ok,
	}
}

// Grid builds the result area. Loading wins over everything else.
func Grid(results []models.BookSummary, loading bool) GridModel {
	switch {
	case loading:
		return GridModel{State: GridLoading, Message: LoadingText}
	case len(results) == 0:
		return GridModel{State: GridEmpty, Message: EmptyResultsText}
	}
	tiles := make([]TileModel, len(results))
	for i, b := range results {
		tiles[i] = Tile(b)
	}
	return GridModel{State: GridTiles, Tiles: tiles}
}

// Detail builds the detail modal for book.
func Detail(book models.BookSummary) DetailModel {
	rating, ok := formatRating(book.AverageRating)
	d := DetailModel{
		Title:       Title(book),
		Authors:     Authors(book),
		Cover:       Cover(book),
		Rating:      rating,
		HasRating:   ok,
		Published:   orDash(book.PublishedDate),
		Publisher:   orDash(book.Publisher),
		Pages:       MissingFieldText,
		Categories:  nonBlank(book.Categories),
		Description: sanitize.Description(book.Description),
		PreviewLink: orDash(book.PreviewLink),
	}
	if book.PageCount != nil && *book.PageCount > 0 {
		d.Pages = fmt.Sprintf("%d pages", *book.PageCount)
	}
	if d.Description == "" {
		d.Description = NoDescriptionText
	}
	return d
}

// ReaderPage builds the reader overlay for book with the given preferences.
func ReaderPage(book models.BookSummary, prefs state.ReaderPrefs) ReaderModel {
	r := ReaderModel{
		Title:       Title(book),
		Authors:     Authors(book),
		Cover:       Cover(book),
		Description: sanitize.Description(book.Description),
		Embeddable:  book.IsEmbeddable(),
		PreviewLink: strings.TrimSpace(book.PreviewLink),
		FontSize:    state.ClampFontSize(prefs.FontSize),
		Theme:       prefs.Theme,
		Colors:      ThemeColors(prefs.Theme),
	}
	if r.Description == "" {
		r.Description = NoReaderDescription
	}
	if r.Embeddable {
		r.PreviewText = PreviewAvailableText
	} else {
		r.PreviewText = PreviewBlockedText
	}
	if r.PreviewLink == "" {
		r.PreviewLink = previewLinkMissingURL
	}
	return r
}

// Title returns the book title or the untitled fallback.
func Title(book models.BookSummary) string {
	if t := strings.TrimSpace(book.Title); t != "" {
		return t
	}
	return UntitledText
}

// Authors joins the author list.
func Authors(book models.BookSummary) string {
	names := nonBlank(book.Authors)
	if len(names) == 0 {
		return UnknownAuthorText
	}
	return strings.Join(names, ", ")
}

// Year takes the leading four characters of a published date.
func Year(published string) string {
	published = strings.TrimSpace(published)
	if len(published) < 4 {
		return UnknownYearText
	}
	year := published[:4]
	if _, err := strconv.Atoi(year); err != nil {
		return UnknownYearText
	}
	return year
}

// Cover returns the thumbnail URL or PlaceholderCover.
func Cover(book models.BookSummary) string {
	if c := strings.TrimSpace(book.Thumbnail); c != "" {
		return c
	}
	return PlaceholderCover
}

func formatRating(r *float64) (string, bool) {
	if r == nil {
		return "", false
	}
	return strconv.FormatFloat(*r, 'f', 1, 64), true
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return MissingFieldText
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
