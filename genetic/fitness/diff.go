// Package fitness scores a rendered genome against the target image.
// Only the per-pixel absolute RGB difference is implemented.
package fitness

import (
	"github.com/lixenwraith/polyevolve/failure"
)

// BytesPerPixel is the RGBA quad width of every pixel buffer
const BytesPerPixel = 4

// maxChannelError is the error of one pixel whose R, G and B are all maximally different
const maxChannelError = 255 * 3

// CheckBuffer verifies a pixel buffer holds exactly width*height RGBA quads
func CheckBuffer(field string, buf []byte, width, height int) error {
	if width <= 0 || height <= 0 {
		return failure.NewConfigurationError(field, failure.ErrDimensionMismatch,
			"dimensions %dx%d", width, height)
	}
	if want := BytesPerPixel * width * height; len(buf) != want {
		return failure.NewConfigurationError(field, failure.ErrDimensionMismatch,
			"len %d, want %d for %dx%d", len(buf), want, width, height)
	}
	return nil
}

// Diff returns 1 - sum|ΔR|+|ΔG|+|ΔB| / (255*3*w*h), in [0,1].
// Alpha is ignored; 1.0 means RGB-identical buffers.
func Diff(rendered, target []byte, width, height int) (float64, error) {
	if err := CheckBuffer("rendered", rendered, width, height); err != nil {
		return 0, err
	}
	if err := CheckBuffer("target", target, width, height); err != nil {
		return 0, err
	}
	return 1 - float64(absError(rendered, target))/float64(maxChannelError*width*height), nil
}

// absError sums absolute RGB channel differences over equal-length buffers
func absError(a, b []byte) uint64 {
	var sum uint64
	for i := 0; i+2 < len(a); i += BytesPerPixel {
		sum += absDelta(a[i], b[i])
		sum += absDelta(a[i+1], b[i+1])
		sum += absDelta(a[i+2], b[i+2])
	}
	return sum
}

func absDelta(x, y byte) uint64 {
	if x > y {
		return uint64(x - y)
	}
	return uint64(y - x)
}
