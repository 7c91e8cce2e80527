// Package logo ingests supplier logos: decode, downscale, re-encode as
// PNG, and hand back an opaque data-URL reference. The rest of the
// system never inspects the reference.
package logo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

const dataURLPrefix = "data:image/png;base64,"

// Processor normalizes uploaded images. MaxDim caps the longest side;
// zero or negative means no downscaling.
type Processor struct {
	MaxDim int
}

// Process decodes PNG, JPEG, or GIF input, scales the image down so its
// longest side is at most MaxDim, and returns a PNG data URL.
func (p Processor) Process(data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}
	img = p.scale(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return dataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (p Processor) scale(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if p.MaxDim <= 0 || (w <= p.MaxDim && h <= p.MaxDim) {
		return img
	}
	if w >= h {
		h = h * p.MaxDim / w
		w = p.MaxDim
	} else {
		w = w * p.MaxDim / h
		h = p.MaxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
