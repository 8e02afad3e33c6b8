package browser

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownscalePNG(t *testing.T) {
	data := encodeTestPNG(t, 400, 200)

	scaled, err := downscalePNG(data, 100)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(scaled))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy(), "aspect ratio preserved")
}

func TestDownscalePNGWithinBounds(t *testing.T) {
	data := encodeTestPNG(t, 80, 40)

	scaled, err := downscalePNG(data, 100)
	require.NoError(t, err)
	assert.Equal(t, data, scaled, "captures within bounds pass through untouched")
}

func TestDownscalePNGRejectsGarbage(t *testing.T) {
	_, err := downscalePNG([]byte("not a png"), 100)
	assert.Error(t, err)
}
