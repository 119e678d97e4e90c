package quadpress

import (
	"image"
	"image/color"
	"testing"
)

func TestRegion_Stats(t *testing.T) {
	r := NewRaster(4, 4)
	r.Set(2, 0, Color{10, 200, 0})
	r.Set(3, 0, Color{20, 100, 1})
	r.Set(2, 1, Color{30, 50, 2})
	r.Set(3, 1, Color{40, 0, 3})

	reg := r.Region(NewArea(Point{2, 0}, Point{4, 2}, black))
	if got, want := reg.Mean(), (Color{25, 88, 2}); got != want {
		t.Errorf("Mean() = %v, want %v", got, want)
	}
	if got, want := reg.Min(), (Color{10, 0, 0}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := reg.Max(), (Color{40, 200, 3}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestRegion_MeanRoundsHalfToEven(t *testing.T) {
	r := NewRaster(2, 1)
	r.Set(0, 0, Color{0, 1, 2})
	r.Set(1, 0, Color{1, 2, 3})
	if got, want := r.Region(r.Bounds()).Mean(), (Color{0, 2, 2}); got != want {
		t.Errorf("Mean() = %v, want %v", got, want)
	}
}

func TestRasterFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 7, 7))
	img.Set(5, 5, color.RGBA{1, 2, 3, 255})
	img.Set(6, 6, color.RGBA{4, 5, 6, 255})

	r := RasterFromImage(img)
	if r.W != 2 || r.H != 2 {
		t.Fatalf("size = %dx%d, want 2x2", r.W, r.H)
	}
	if got := r.At(0, 0); got != (Color{1, 2, 3}) {
		t.Errorf("At(0, 0) = %v", got)
	}
	if got := r.At(1, 1); got != (Color{4, 5, 6}) {
		t.Errorf("At(1, 1) = %v", got)
	}
	if got := ColorOf(r.Image().At(1, 1)); got != (Color{4, 5, 6}) {
		t.Errorf("Image().At(1, 1) = %v", got)
	}
}

func TestRasterFromBytes(t *testing.T) {
	pix := []uint8{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	r, err := RasterFromBytes(2, 2, pix)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.At(1, 0); got != (Color{4, 5, 6}) {
		t.Errorf("At(1, 0) = %v", got)
	}
	if got := r.At(0, 1); got != (Color{7, 8, 9}) {
		t.Errorf("At(0, 1) = %v", got)
	}
	if _, err := RasterFromBytes(2, 2, pix[:11]); err == nil {
		t.Error("RasterFromBytes with short buffer should fail")
	}
}
