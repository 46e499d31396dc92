// Package raster paints polygon genomes onto an in-memory RGBA surface.
// Polygons are filled with non-zero winding anti-aliased coverage and
// composited source-over in DNA order onto a transparent black canvas.
package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/lixenwraith/polyevolve/genome"
)

// Renderer is one rendering surface; not safe for concurrent use
type Renderer struct {
	canvas *image.RGBA
	z      *vector.Rasterizer
	src    *image.Uniform
}

// New creates a renderer; the surface is sized on first Render
func New() *Renderer {
	return &Renderer{
		z:   vector.NewRasterizer(0, 0),
		src: image.NewUniform(nil),
	}
}

// Render paints ind and returns the canvas pixels, premultiplied RGBA,
// row-major. The slice is overwritten by the next Render.
func (r *Renderer) Render(ind *genome.Individual, width, height int) ([]byte, error) {
	r.resize(width, height)
	clear(r.canvas.Pix)

	bounds := r.canvas.Bounds()
	for i := range ind.DNA {
		p := &ind.DNA[i]
		if len(p.Points) == 0 {
			continue
		}

		r.z.Reset(width, height)
		r.z.DrawOp = draw.Over
		r.z.MoveTo(float32(p.Points[0].X), float32(p.Points[0].Y))
		for _, pt := range p.Points[1:] {
			r.z.LineTo(float32(pt.X), float32(pt.Y))
		}
		r.z.ClosePath()

		r.src.C = p.Color.NRGBA()
		r.z.Draw(r.canvas, bounds, r.src, image.Point{})
	}
	return r.canvas.Pix, nil
}

// Image exposes the canvas of the last Render
func (r *Renderer) Image() *image.RGBA {
	return r.canvas
}

func (r *Renderer) resize(width, height int) {
	if r.canvas != nil && r.canvas.Rect.Dx() == width && r.canvas.Rect.Dy() == height {
		return
	}
	r.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
}
