package render

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

// upperHalf draws the top pixel as foreground and the bottom pixel as background
const upperHalf = '▀'

// Cell is one terminal cell of a converted preview
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Preview holds a converted image
type Preview struct {
	Cells  []Cell
	Width  int
	Height int
}

// PreviewSize fits an image into maxW columns by maxH rows of half-block
// cells, preserving aspect ratio (each cell covers two vertical pixels)
func PreviewSize(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	outW := maxW
	outH := (outW*srcH + srcW) / (2 * srcW)
	if outH > maxH {
		outH = maxH
		outW = max(1, 2*outH*srcW/srcH)
	}
	return min(outW, maxW), max(1, outH)
}

// ConvertImage renders img into outW x outH half-block cells
func ConvertImage(img *image.RGBA, outW, outH int) *Preview {
	if img == nil || outW <= 0 || outH <= 0 {
		return &Preview{}
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	gridH := outH * 2
	cells := make([]Cell, outW*outH)

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			// Sample center of the corresponding region
			sx := bounds.Min.X + min((x*srcW+srcW/2)/outW, srcW-1)
			top := bounds.Min.Y + min((2*y*srcH+srcH/2)/gridH, srcH-1)
			bottom := bounds.Min.Y + min(((2*y+1)*srcH+srcH/2)/gridH, srcH-1)

			cells[y*outW+x] = Cell{
				Rune: upperHalf,
				Style: tcell.StyleDefault.
					Foreground(pixelColor(img, sx, top)).
					Background(pixelColor(img, sx, bottom)),
			}
		}
	}
	return &Preview{Cells: cells, Width: outW, Height: outH}
}

// pixelColor reads premultiplied RGB, which is the color over black
func pixelColor(img *image.RGBA, x, y int) tcell.Color {
	i := img.PixOffset(x, y)
	return tcell.NewRGBColor(int32(img.Pix[i]), int32(img.Pix[i+1]), int32(img.Pix[i+2]))
}
