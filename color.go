package quadpress

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple. Channel order is R, G, B everywhere.
type Color struct {
	R, G, B uint8
}

// ColorOf converts any image color, dropping alpha.
func ColorOf(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

// ColorFromColorful converts a normalized colorful color, clamping out-of-gamut values.
func ColorFromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// RGBA returns the opaque image color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Colorful returns the color with channels normalized to [0,1].
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorDiff is a weighted "redmean" RGB distance scaled to roughly [0,1].
func ColorDiff(c0, c1 Color) float64 {
	r0, g0, b0 := float64(c0.R), float64(c0.G), float64(c0.B)
	r1, g1, b1 := float64(c1.R), float64(c1.G), float64(c1.B)
	redMid := (r0 + r1) / 2
	dr, dg, db := r0-r1, g0-g1, b0-b1
	d := (2+redMid/256)*dr*dr + 4*dg*dg + (2+(255-redMid)/256)*db*db
	return math.Sqrt(d) / 765
}

// averageColor is the per-channel floor mean of the four colors. It is not
// area-weighted.
func averageColor(cs [4]Color) Color {
	var r, g, b int
	for _, c := range cs {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	return Color{uint8(r / 4), uint8(g / 4), uint8(b / 4)}
}

// ============ METRICS ============

// Metric selects the color distance used by the consistency test.
type Metric int

const (
	MetricRedmean Metric = iota
	MetricCIEDE2000
)

func (m Metric) String() string {
	switch m {
	case MetricCIEDE2000:
		return "ciede2000"
	default:
		return "redmean"
	}
}

// ParseMetric maps a metric name back to its value.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "", "redmean":
		return MetricRedmean, nil
	case "ciede2000":
		return MetricCIEDE2000, nil
	}
	return MetricRedmean, fmt.Errorf("unknown metric %q (must be 'redmean' or 'ciede2000')", s)
}

// Diff returns the distance between two colors under m.
func (m Metric) Diff(c0, c1 Color) float64 {
	switch m {
	case MetricCIEDE2000:
		return c0.Colorful().DistanceCIEDE2000(c1.Colorful())
	default:
		return ColorDiff(c0, c1)
	}
}

// Consistent reports whether both region extremes lie within threshold of
// the region mean.
func (m Metric) Consistent(r Region, threshold float64) bool {
	mean := r.Mean()
	return m.Diff(mean, r.Min()) <= threshold && m.Diff(mean, r.Max()) <= threshold
}

// IsConsistentColor is the redmean consistency test.
func IsConsistentColor(r Region, threshold float64) bool {
	return MetricRedmean.Consistent(r, threshold)
}
