// Package imaging normalises uploaded photos before they are sent to the model.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxSide = 1024
	DefaultQuality = 85

	// MaxPixels bounds width*height of an accepted upload. A small compressed
	// file can declare dimensions that need gigabytes once decoded.
	MaxPixels = 40_000_000
)

var ErrUndecodable = errors.New("image cannot be decoded")

// Optimizer downsizes images and re-encodes them as JPEG.
type Optimizer struct {
	maxSide int
	quality int
}

func NewOptimizer(maxSide, quality int) *Optimizer {
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	return &Optimizer{maxSide: maxSide, quality: quality}
}

// Optimize decodes data (jpeg, png, gif or webp), scales it so the longer side
// fits maxSide, flattens transparency onto white and returns JPEG bytes.
func (o *Optimizer) Optimize(data []byte) ([]byte, error) {
	if _, err := checkDimensions(data); err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUndecodable)
	}

	w, h := fit(bounds.Dx(), bounds.Dy(), o.maxSide)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// white background so transparent PNG/WebP areas don't turn black in JPEG
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: o.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// fit returns dimensions with the longer side at most maxSide, keeping the ratio.
func fit(w, h, maxSide int) (int, int) {
	if w <= maxSide && h <= maxSide {
		return w, h
	}
	if w >= h {
		nh := h * maxSide / w
		if nh < 1 {
			nh = 1
		}
		return maxSide, nh
	}
	nw := w * maxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxSide
}

// checkDimensions reads only the image header and rejects empty or oversized images.
func checkDimensions(data []byte) (string, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("%w: empty image", ErrUndecodable)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrUndecodable, cfg.Width, cfg.Height, MaxPixels)
	}
	return format, nil
}
