package service

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 122, G: 31, B: 31, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedBounds(t *testing.T, data []byte) image.Rectangle {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img.Bounds()
}

func TestOptimizeLogo(t *testing.T) {
	out, err := OptimizeLogo(pngBytes(t, 800, 400), 240)
	require.NoError(t, err)
	b := decodedBounds(t, out)
	assert.Equal(t, 240, b.Dx())
	assert.Equal(t, 120, b.Dy())

	out, err = OptimizeLogo(pngBytes(t, 100, 50), 240)
	require.NoError(t, err)
	b = decodedBounds(t, out)
	assert.Equal(t, 100, b.Dx())
	assert.Equal(t, 50, b.Dy())

	_, err = OptimizeLogo([]byte("not an image"), 240)
	assert.Error(t, err)
}

func TestLoadLogoDataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 600, 600), 0o644))

	uri, err := LoadLogoDataURI(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, logoMaxDim, decodedBounds(t, data).Dx())

	_, err = LoadLogoDataURI(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
