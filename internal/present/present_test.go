package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/sanpustaka-t/internal/state"
	"github.com/justyntemme/sanpustaka-t/pkg/models"
)

func ptr[T any](v T) *T { return &v }

func fullBook() models.BookSummary {
	return models.BookSummary{
		ID:            "abc",
		Title:         "Laskar Pelangi",
		Authors:       []string{"Andrea Hirata", "Someone Else"},
		Thumbnail:     "https://books.example/cover.jpg",
		AverageRating: ptr(4.5),
		PublishedDate: "2005-09-01",
		Categories:    []string{"Fiction"},
		Description:   "<p>A <b>classic</b>.</p>",
		Publisher:     "Bentang",
		PageCount:     ptr(529),
		PreviewLink:   "https://books.example/preview",
		Embeddable:    ptr(true),
	}
}

func TestTile_FullBook(t *testing.T) {
	tile := Tile(fullBook())
	assert.Equal(t, "Laskar Pelangi", tile.Title)
	assert.Equal(t, "Andrea Hirata, Someone Else", tile.Authors)
	assert.Equal(t, "2005", tile.Year)
	assert.Equal(t, "https://books.example/cover.jpg", tile.Cover)
	assert.True(t, tile.HasRating)
	assert.Equal(t, "4.5", tile.Rating)
}

func TestTile_Fallbacks(t *testing.T) {
	tile := Tile(models.BookSummary{ID: "x"})
	assert.Equal(t, UntitledText, tile.Title)
	assert.Equal(t, UnknownAuthorText, tile.Authors)
	assert.Equal(t, UnknownYearText, tile.Year)
	assert.Equal(t, PlaceholderCover, tile.Cover)
	assert.False(t, tile.HasRating, "no rating badge without a rating")
	assert.Empty(t, tile.Rating)
}

func TestTile_ZeroRatingStillShowsBadge(t *testing.T) {
	tile := Tile(models.BookSummary{AverageRating: ptr(0.0)})
	assert.True(t, tile.HasRating)
	assert.Equal(t, "0.0", tile.Rating)
}

func TestYear(t *testing.T) {
	assert.Equal(t, "1999", Year("1999"))
	assert.Equal(t, "2021", Year("2021-03"))
	assert.Equal(t, UnknownYearText, Year("99"))
	assert.Equal(t, UnknownYearText, Year("circa 1900"))
	assert.Equal(t, UnknownYearText, Year(""))
}

func TestGrid_States(t *testing.T) {
	g := Grid([]models.BookSummary{fullBook()}, true)
	assert.Equal(t, GridLoading, g.State)
	assert.Empty(t, g.Tiles)

	g = Grid([]models.BookSummary{}, false)
	assert.Equal(t, GridEmpty, g.State)
	assert.Equal(t, EmptyResultsText, g.Message)

	g = Grid([]models.BookSummary{fullBook(), {ID: "y"}}, false)
	assert.Equal(t, GridTiles, g.State)
	require.Len(t, g.Tiles, 2)
	assert.Equal(t, "abc", g.Tiles[0].ID)
	assert.Equal(t, PlaceholderCover, g.Tiles[1].Cover)
}

func TestDetail_FullBook(t *testing.T) {
	d := Detail(fullBook())
	assert.Equal(t, "Bentang", d.Publisher)
	assert.Equal(t, "529 pages", d.Pages)
	assert.Equal(t, "2005-09-01", d.Published)
	assert.Equal(t, []string{"Fiction"}, d.Categories)
	assert.Equal(t, "A **classic**.", d.Description)
	assert.Equal(t, "https://books.example/preview", d.PreviewLink)
}

func TestDetail_Fallbacks(t *testing.T) {
	d := Detail(models.BookSummary{})
	assert.Equal(t, MissingFieldText, d.Publisher)
	assert.Equal(t, MissingFieldText, d.Pages)
	assert.Equal(t, MissingFieldText, d.Published)
	assert.Equal(t, NoDescriptionText, d.Description)
	assert.Equal(t, PlaceholderCover, d.Cover)
	assert.False(t, d.HasRating)
	assert.Empty(t, d.Categories)
}

func TestDetail_DescriptionOnlyMarkupFallsBack(t *testing.T) {
	d := Detail(models.BookSummary{Description: "<script>alert(1)</script>"})
	assert.Equal(t, NoDescriptionText, d.Description)
}

func TestReaderPage_Embeddable(t *testing.T) {
	r := ReaderPage(fullBook(), state.ReaderPrefs{FontSize: 20, Theme: state.ThemeSepia})
	assert.True(t, r.Embeddable)
	assert.Equal(t, PreviewAvailableText, r.PreviewText)
	assert.Equal(t, "https://books.example/preview", r.PreviewLink)
	assert.Equal(t, 20, r.FontSize)
	assert.Equal(t, Colors{Background: "#F4ECD8", Text: "#1E293B"}, r.Colors)
}

func TestReaderPage_NotEmbeddableAndFallbacks(t *testing.T) {
	r := ReaderPage(models.BookSummary{Embeddable: ptr(false)}, state.DefaultReaderPrefs())
	assert.False(t, r.Embeddable)
	assert.Equal(t, PreviewBlockedText, r.PreviewText)
	assert.Equal(t, NoReaderDescription, r.Description)
	assert.Equal(t, PlaceholderCover, r.Cover)
	assert.Equal(t, UntitledText, r.Title)
	assert.Equal(t, state.DefaultFontSize, r.FontSize)
}

func TestReaderPage_ClampsFontSize(t *testing.T) {
	r := ReaderPage(fullBook(), state.ReaderPrefs{FontSize: 80, Theme: state.ThemeDark})
	assert.Equal(t, state.MaxFontSize, r.FontSize)
}

func TestThemeColors(t *testing.T) {
	assert.Equal(t, Colors{Background: "#FFFFFF", Text: "#0F172A"}, ThemeColors(state.ThemeLight))
	assert.Equal(t, Colors{Background: "#0F172A", Text: "#CBD5E1"}, ThemeColors(state.ThemeDark))
	assert.Equal(t, ThemeColors(state.ThemeLight), ThemeColors("neon"))
}
