package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// logoMaxDim bounds the logo printed on invoice headers
const logoMaxDim = 240

// OptimizeLogo shrinks an image to fit within maxDim x maxDim and re-encodes
// it as PNG. Images already small enough keep their size.
func OptimizeLogo(imageData []byte, maxDim int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
		log.Printf("🔄 Resizing logo: %dx%d -> fit %d", bounds.Dx(), bounds.Dy(), maxDim)
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadLogoDataURI reads a logo file and returns it as a PNG data URI ready to
// inline into HTML
func LoadLogoDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read logo: %w", err)
	}

	optimized, err := OptimizeLogo(data, logoMaxDim)
	if err != nil {
		return "", err
	}

	log.Printf("✓ Logo loaded: %s (%d bytes)", path, len(optimized))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(optimized), nil
}
