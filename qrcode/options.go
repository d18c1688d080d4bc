package qrcode

import "github.com/F-O-T/libraries-sub003/qrcode/qrpng"

// Options is the configuration surface for encoding a payload straight to
// PNG, per spec.md section 6: target pixel size, quiet-zone margin (in
// modules), and error correction level.
type Options struct {
	// Size is the target overall pixel width/height, including the quiet
	// zone. The actual image is rounded down to a whole number of pixels
	// per module, and is larger than Size when Size has fewer pixels than
	// the matrix plus margin has modules; see qrpng.Render.
	Size int
	// Margin is the quiet-zone width, in modules.
	Margin int
	// ErrorCorrection is the error correction level to encode at.
	ErrorCorrection Ecc
}

// EncodePNG encodes data as a QR Code per opts and rasterizes it to PNG
// bytes in one step.
func EncodePNG(data []byte, opts Options) ([]byte, error) {
	q, err := Encode(data, opts.ErrorCorrection)
	if err != nil {
		return nil, err
	}
	return qrpng.Render(q, opts.Size, opts.Margin)
}

// PNG rasterizes this already-encoded QR Code to PNG bytes at the given
// pixel size and quiet-zone margin (in modules).
func (q *QRCode) PNG(size, margin int) ([]byte, error) {
	return qrpng.Render(q, size, margin)
}
