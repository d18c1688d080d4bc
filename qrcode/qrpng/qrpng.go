// Package qrpng rasterizes a QR Code module matrix to PNG.
//
// Per spec.md section 4.B.10 and section 6, the output is an 8-bit RGB
// PNG: dark modules are rendered black, light modules (including the
// quiet-zone margin) white. Rather than hand-assembling IHDR/IDAT/IEND
// chunks and a zlib stream byte by byte, this uses the standard library's
// image/png encoder — see DESIGN.md and SPEC_FULL.md's "AMBIENT STACK"
// section for why that's the idiomatic-Go equivalent of the spec's
// from-scratch PNG writer rather than a dependency gap.
package qrpng

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// ErrInvalidArgument is returned for a non-positive size or a negative
// margin.
var ErrInvalidArgument = errors.New("qrpng: invalid argument")

// Module is the minimal surface qrpng needs from an encoded QR Code:
// its size in modules and the color of each module.
type Module interface {
	Size() int32
	GetModule(x, y int32) bool
}

// Render rasterizes the given module matrix to PNG bytes.
//
// size is the target overall pixel width/height (including the quiet
// zone); margin is the quiet-zone width in modules. The actual scale
// factor is max(1, floor(size / (matrixSize + 2*margin))), so the
// output is smaller than the requested size when size is not a multiple
// of matrixSize + 2*margin, and larger than it when size is below that
// sum.
func Render(q Module, size int, margin int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidArgument, size)
	}
	if margin < 0 {
		return nil, fmt.Errorf("%w: margin must be non-negative, got %d", ErrInvalidArgument, margin)
	}

	modsize := int(q.Size())
	total := modsize + 2*margin
	scale := size / total
	if scale < 1 {
		scale = 1
	}
	pixels := total * scale

	// Every pixel below is fully opaque (alpha 255), so image/png's
	// encoder takes its own opaque-image path and writes IHDR colorType
	// 2 (truecolor, no alpha channel) rather than colorType 6, even
	// though img's static type is image.RGBA. See DESIGN.md.
	img := image.NewRGBA(image.Rect(0, 0, pixels, pixels))
	black := color.RGBA{0, 0, 0, 255}
	white := color.RGBA{255, 255, 255, 255}

	for py := 0; py < pixels; py++ {
		my := py/scale - margin
		for px := 0; px < pixels; px++ {
			mx := px/scale - margin
			c := white
			if mx >= 0 && mx < modsize && my >= 0 && my < modsize && q.GetModule(int32(mx), int32(my)) {
				c = black
			}
			img.SetRGBA(px, py, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("qrpng: encode: %w", err)
	}
	return buf.Bytes(), nil
}
