// Package terminal draws cover images inline on terminals that speak an image
// protocol.
package terminal

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"

	"github.com/BourgeoisBear/rasterm"
	"github.com/nfnt/resize"
)

// TermImageMode represents the terminal's image display capability
type TermImageMode int

const (
	// TermModeNone indicates no image support
	TermModeNone TermImageMode = iota
	// TermModeKitty indicates Kitty graphics protocol support
	TermModeKitty
	// TermModeIterm indicates iTerm2 graphics protocol support
	TermModeIterm
	// TermModeSixel indicates Sixel graphics protocol support
	TermModeSixel
)

// CoverImageID is the Kitty image id reused for every cover, so a new cover
// replaces the previous one.
const CoverImageID uint32 = 2024

// Approximate cell size in pixels, used to size covers.
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

// String returns a human-readable name for the terminal mode
func (m TermImageMode) String() string {
	switch m {
	case TermModeKitty:
		return "Kitty"
	case TermModeIterm:
		return "iTerm2"
	case TermModeSixel:
		return "Sixel"
	default:
		return "None"
	}
}

// DetectTerminalMode checks which image protocol the terminal supports
func DetectTerminalMode() TermImageMode {
	if rasterm.IsKittyCapable() {
		return TermModeKitty
	}
	if rasterm.IsItermCapable() {
		return TermModeIterm
	}
	if capable, _ := rasterm.IsSixelCapable(); capable {
		return TermModeSixel
	}
	return TermModeNone
}

// FitCover downscales img to fit in cols x rows terminal cells, keeping the
// aspect ratio. Images that already fit are returned as is.
func FitCover(img image.Image, cols, rows int) image.Image {
	if img == nil || cols <= 0 || rows <= 0 {
		return img
	}
	maxW := uint(cols * cellWidthPx)
	maxH := uint(rows * cellHeightPx)
	return resize.Thumbnail(maxW, maxH, img, resize.Bilinear)
}

// ImageToPaletted converts an image to a paletted image required for Sixel
func ImageToPaletted(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(paletted, bounds, img, bounds.Min, draw.Src)
	return paletted
}

// RenderImageToString renders an image to a string based on the terminal mode.
// Unsupported terminals get an empty string.
func RenderImageToString(img image.Image, mode TermImageMode) (string, error) {
	var buf bytes.Buffer
	var err error

	switch mode {
	case TermModeKitty:
		err = rasterm.KittyWriteImage(&buf, img, rasterm.KittyImgOpts{ImageId: CoverImageID})
	case TermModeIterm:
		err = rasterm.ItermWriteImage(&buf, img)
	case TermModeSixel:
		err = rasterm.SixelWriteImage(&buf, ImageToPaletted(img))
	default:
		return "", nil
	}

	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderCover fits img into cols x rows cells and renders it for mode
func RenderCover(img image.Image, mode TermImageMode, cols, rows int) (string, error) {
	if mode == TermModeNone || img == nil {
		return "", nil
	}
	return RenderImageToString(FitCover(img, cols, rows), mode)
}

// ClearImages returns the escape sequence that removes drawn covers
func ClearImages(mode TermImageMode) string {
	switch mode {
	case TermModeKitty:
		// a=d (action=delete), d=A (delete all images)
		return "\x1b_Ga=d,d=A\x1b\\"
	case TermModeIterm, TermModeSixel:
		// images live in the text buffer; a screen clear removes them
		return "\x1b[2J\x1b[H"
	default:
		return ""
	}
}
