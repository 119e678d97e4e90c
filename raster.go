package quadpress

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Raster is an H x W x 3 pixel matrix stored as one dense plane per channel.
// Plane rows are y, columns are x.
type Raster struct {
	W, H   int
	planes [3]*mat.Dense
}

// NewRaster allocates a black raster.
func NewRaster(w, h int) *Raster {
	r := &Raster{W: w, H: h}
	if w <= 0 || h <= 0 {
		return r
	}
	for ch := range 3 {
		r.planes[ch] = mat.NewDense(h, w, nil)
	}
	return r
}

// RasterFromImage copies the RGB channels of img, shifted so that the image
// bounds start at the origin.
func RasterFromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := NewRaster(w, h)
	for y := range h {
		for x := range w {
			r.Set(x, y, ColorOf(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
		}
	}
	return r
}

// RasterFromBytes wraps interleaved RGB bytes, len(pix) must be w*h*3.
func RasterFromBytes(w, h int, pix []uint8) (*Raster, error) {
	if len(pix) != w*h*3 {
		return nil, fmt.Errorf("raster %dx%d needs %d bytes, got %d", w, h, w*h*3, len(pix))
	}
	r := NewRaster(w, h)
	for y := range h {
		for x := range w {
			off := pixOffset(w, x, y)
			r.Set(x, y, Color{pix[off], pix[off+1], pix[off+2]})
		}
	}
	return r, nil
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 3
}

func (r *Raster) Set(x, y int, c Color) {
	r.planes[0].Set(y, x, float64(c.R))
	r.planes[1].Set(y, x, float64(c.G))
	r.planes[2].Set(y, x, float64(c.B))
}

func (r *Raster) At(x, y int) Color {
	return Color{
		uint8(r.planes[0].At(y, x)),
		uint8(r.planes[1].At(y, x)),
		uint8(r.planes[2].At(y, x)),
	}
}

// Bounds returns the full raster as an area.
func (r *Raster) Bounds() Area {
	return Area{End: Point{r.W, r.H}}
}

// Image converts the raster to an opaque RGBA image.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for y := range r.H {
		for x := range r.W {
			img.SetRGBA(x, y, r.At(x, y).RGBA())
		}
	}
	return img
}

// Region returns a read-only view of the raster restricted to a. It panics
// if a is empty or not inside the raster.
func (r *Raster) Region(a Area) Region {
	var reg Region
	for ch := range 3 {
		reg.planes[ch] = r.planes[ch].Slice(a.Start.Y, a.End.Y, a.Start.X, a.End.X)
	}
	reg.n = float64(a.Dx() * a.Dy())
	return reg
}

// Region is a rectangular view into a Raster.
type Region struct {
	planes [3]mat.Matrix
	n      float64
}

// Mean returns the per-channel mean, rounded half to even.
func (r Region) Mean() Color {
	return r.reduce(func(m mat.Matrix) float64 {
		return math.RoundToEven(mat.Sum(m) / r.n)
	})
}

// Min returns the per-channel minimum.
func (r Region) Min() Color {
	return r.reduce(mat.Min)
}

// Max returns the per-channel maximum.
func (r Region) Max() Color {
	return r.reduce(mat.Max)
}

func (r Region) reduce(f func(mat.Matrix) float64) Color {
	return Color{
		uint8(f(r.planes[0])),
		uint8(f(r.planes[1])),
		uint8(f(r.planes[2])),
	}
}
