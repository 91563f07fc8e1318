package terminal

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitCover_DownscalesKeepingAspect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 392))

	out := FitCover(img, 16, 12)
	require.NotNil(t, out)
	b := out.Bounds()
	assert.LessOrEqual(t, b.Dx(), 16*cellWidthPx)
	assert.LessOrEqual(t, b.Dy(), 12*cellHeightPx)
	assert.Greater(t, b.Dx(), 0)
}

func TestFitCover_SmallImageUnchanged(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	out := FitCover(img, 20, 20)
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func TestRenderCover_NoneModeIsEmpty(t *testing.T) {
	s, err := RenderCover(image.NewRGBA(image.Rect(0, 0, 4, 4)), TermModeNone, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestRenderImageToString_Kitty(t *testing.T) {
	s, err := RenderImageToString(image.NewRGBA(image.Rect(0, 0, 4, 4)), TermModeKitty)
	require.NoError(t, err)
	assert.True(t, strings.Contains(s, "\x1b_G"), "kitty escape expected")
}

func TestClearImages(t *testing.T) {
	assert.Empty(t, ClearImages(TermModeNone))
	assert.Contains(t, ClearImages(TermModeKitty), "a=d")
	assert.Equal(t, "\x1b[2J\x1b[H", ClearImages(TermModeSixel))
}

func TestTermImageModeString(t *testing.T) {
	assert.Equal(t, "Kitty", TermModeKitty.String())
	assert.Equal(t, "None", TermImageMode(42).String())
}
