package geometry

import (
	"image/color"
	"math/rand/v2"
	"strconv"
)

// Color is a polygon fill: 8-bit RGB plus straight (non-premultiplied) alpha in [0,1]
type Color struct {
	R, G, B uint8
	A       float64
}

// RandomChannel returns a uniformly random channel value in [0,255]
func RandomChannel(rng *rand.Rand) uint8 {
	return uint8(rng.IntN(256))
}

// RandomAlpha returns 1-U(0,1) in (0,1], so a fresh polygon is never fully transparent
func RandomAlpha(rng *rand.Rand) float64 {
	return 1 - rng.Float64()
}

// RandomColor draws R, G, B, A in that order
func RandomColor(rng *rand.Rand) Color {
	r := RandomChannel(rng)
	g := RandomChannel(rng)
	b := RandomChannel(rng)
	return Color{R: r, G: g, B: b, A: RandomAlpha(rng)}
}

// NRGBA converts to the image/color straight-alpha form
func (c Color) NRGBA() color.NRGBA {
	a := c.A
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// String renders the CSS rgba() form
func (c Color) String() string {
	b := make([]byte, 0, 32)
	b = append(b, "rgba("...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	b = append(b, ',')
	b = strconv.AppendFloat(b, c.A, 'g', 6, 64)
	b = append(b, ')')
	return string(b)
}
