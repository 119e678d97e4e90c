package utils

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"slices"
	"time"

	"github.com/cenkalti/dominantcolor"
	"github.com/charmbracelet/log"
	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/esimov/colorquant"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/setanarut/quadpress"
)

// ============ LOADING ============

// ClosestPowerOfTwo returns the power-of-two side used to square an image of
// w x h. It rounds up unless the longer side is within 1% (in log2) of the
// power below.
func ClosestPowerOfTwo(w, h int) int {
	side := max(w, h)
	if side <= 1 {
		return 1
	}
	exp := math.RoundToEven(math.Log2(float64(side)) + 0.49)
	return 1 << int(exp)
}

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("could not decode image %q: %w", path, err)
	}
	return img, nil
}

// Square resizes img to the closest power-of-two square with a Lanczos filter.
// An image that already has that shape is returned as is.
func Square(img image.Image) image.Image {
	b := img.Bounds()
	size := ClosestPowerOfTwo(b.Dx(), b.Dy())
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// Smooth applies a Gaussian blur. Non-positive sigma returns img unchanged.
func Smooth(img image.Image, sigma float32) image.Image {
	if sigma <= 0 {
		return img
	}
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// LoadRaster reads path, squares it to a power-of-two side and optionally
// blurs it, returning the pixel matrix the tree builder consumes.
func LoadRaster(path string, blurSigma float32) (*quadpress.Raster, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return quadpress.RasterFromImage(Smooth(Square(img), blurSigma)), nil
}

// ============ SAVING ============

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// SaveGIF writes frames as an endlessly looping animation. Each frame is
// quantized to at most 256 colors and shown for delay.
func SaveGIF(frames []*image.RGBA, delay time.Duration, filename string) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to write to %q", filename)
	}
	anim := &gif.GIF{LoopCount: 0}
	centis := int(delay / (10 * time.Millisecond))
	for _, frame := range frames {
		anim.Image = append(anim.Image, quantize(frame))
		anim.Delay = append(anim.Delay, centis)
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, anim)
}

// quantize maps src onto a palette. Frames with at most 256 distinct colors,
// the common case for quadtree renders, keep their exact colors.
func quantize(src *image.RGBA) *image.Paletted {
	if pal, ok := exactPalette(src, 256); ok {
		dst := image.NewPaletted(src.Bounds(), pal)
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	dst := image.NewPaletted(src.Bounds(), palette.WebSafe)
	var out image.Image = colorquant.NoDither.Quantize(src, dst, 256, false, true)
	if p, ok := out.(*image.Paletted); ok {
		return p
	}
	return dst
}

func exactPalette(src *image.RGBA, limit int) (color.Palette, bool) {
	seen := make(map[color.RGBA]struct{})
	var pal color.Palette
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == limit {
				return nil, false
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	return pal, true
}

func SavePalette(pal []colorful.Color, tileSize int, filename string) error {
	if len(pal) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(pal), tileSize))
	for i, c := range pal {
		rgba := quadpress.ColorFromColorful(c).RGBA()
		for y := range tileSize {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, rgba)
			}
		}
	}
	return SaveImage(img, filename)
}

// ============ PALETTE ============

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

// ParsePaletteMethod maps a method name back to its value.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return PaletteMethodDominantColor, fmt.Errorf("unknown palette method %q (must be 'dominantcolor' or 'kmeans')", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(pal []colorful.Color) {
	luma := func(c colorful.Color) float64 {
		r, g, b := c.LinearRgb()
		return 0.2126*r + 0.7152*g + 0.0722*b
	}
	slices.SortFunc(pal, func(a, b colorful.Color) int {
		la, lb := luma(a), luma(b)
		switch {
		case la < lb:
			return -1
		case la > lb:
			return 1
		}
		return 0
	})
}

func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	if method == PaletteMethodKMeans {
		if p := ExtractKMeansPalette(img, k); len(p) != 0 {
			return p
		}
		log.Warn("kmeans returned an empty palette, falling back", "method", PaletteMethodDominantColor)
	}
	return ExtractDominantPalette(img, k)
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	candidates := dominantcolor.FindWeight(img, max(24, k*8))
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: c.Weight})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large images.
	const maxSamples = 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/maxSamples)) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := quadpress.ColorOf(img.At(x, y)).Colorful()
			dataset = append(dataset, clusters.Coordinates{c.R, c.G, c.B})
		}
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(max(k*4, k+2), len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: float64(len(c.Observations))})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colors, seeding with the
// heaviest and then taking the candidate farthest (in Lab) from the picks so
// far, scaled by its weight.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	k = min(k, len(cands))

	maxW := 1e-6
	for i := range cands {
		cands[i].Weight = max(cands[i].Weight, 1e-6)
		maxW = max(maxW, cands[i].Weight)
	}

	picked := make([]int, 0, k)
	used := make([]bool, len(cands))
	seed := 0
	for i, c := range cands {
		if c.Weight > cands[seed].Weight {
			seed = i
		}
	}
	picked = append(picked, seed)
	used[seed] = true

	for len(picked) < k {
		best, bestScore := -1, -1.0
		for i, c := range cands {
			if used[i] {
				continue
			}
			nearest := math.MaxFloat64
			for _, p := range picked {
				nearest = min(nearest, c.Col.DistanceLab(cands[p].Col))
			}
			score := nearest * (0.55 + 0.45*math.Sqrt(c.Weight/maxW))
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		picked = append(picked, best)
	}

	out := make([]colorful.Color, 0, len(picked))
	for _, i := range picked {
		out = append(out, cands[i].Col)
	}
	return out
}
