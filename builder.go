package quadpress

import (
	"fmt"
	"image"
	"math"
	"math/bits"

	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Just-noticeable color difference for the consistency test.
	// Ideal start: 0.12. Useful range is roughly (0, 0.3].
	// Lower => more subdivision, larger trees, better fidelity.
	// Zero keeps only exactly uniform regions.
	Threshold float64
	// Color distance used by the consistency test.
	// MetricRedmean matches the classic weighted RGB distance.
	// MetricCIEDE2000 is slower but perceptually tighter in dark tones.
	Metric Metric
}

func DefaultOptions() Options {
	return Options{
		Threshold: 0.12,
		Metric:    MetricRedmean,
	}
}

type TreeBuilder struct {
	InputImage image.Image
	Raster     *Raster
	Tree       *Node
}

func NewTreeBuilder(input image.Image) *TreeBuilder {
	return &TreeBuilder{InputImage: input}
}

// Build converts the input image to a raster and grows the tree. The image
// must already be a power-of-two square (see utils.LoadRaster).
func (tb *TreeBuilder) Build(opt Options) error {
	tb.Raster = RasterFromImage(tb.InputImage)
	tree, err := BuildTree(tb.Raster, opt)
	if err != nil {
		return err
	}
	tb.Tree = tree
	return nil
}

// Reconstruct renders the current tree back to pixels.
func (tb *TreeBuilder) Reconstruct() *image.RGBA {
	if tb.Tree == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return FilledMatrix(tb.Tree)
}

// ============ CONSTRUCTION ============

// BuildTree grows a quadtree over r. Starting from a single leaf covering
// the raster, every visited node whose region passes the consistency test
// becomes a leaf with the region's mean color; any other node is subdivided
// in place and the walk descends into the new children in the same pass.
func BuildTree(r *Raster, opt Options) (*Node, error) {
	size := r.W
	if size <= 0 || r.W != r.H || size&(size-1) != 0 {
		return nil, fmt.Errorf("build tree from %dx%d raster: %w", r.W, r.H, ErrNotPowerOfTwo)
	}
	if opt.Threshold < 0 || math.IsNaN(opt.Threshold) {
		return nil, fmt.Errorf("build tree: threshold %v must be non-negative", opt.Threshold)
	}

	// A side of 2^k allows at most k+1 levels.
	maxLevel := bits.Len(uint(size))
	root := NewTree(r.Bounds())

	var err error
	root.walk(func(n *Node, level int) bool {
		if level > maxLevel {
			err = fmt.Errorf("build tree at %v: %w", n.Area, ErrDepthLimit)
			return false
		}
		reg := r.Region(n.Area)
		if n.IsPixel() || opt.Metric.Consistent(reg, opt.Threshold) {
			n.Color = reg.Mean()
			return true
		}
		if err = n.Subdivide(); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return root, nil
}

// ============ PALETTE ============

// Posterize snaps every leaf to the nearest palette color (CIE Lab distance)
// and collapses the tree, so regions that land on the same entry merge.
func Posterize(tree *Node, palette []colorful.Color) {
	if len(palette) == 0 {
		return
	}
	snapped := make([]Color, len(palette))
	for i, p := range palette {
		snapped[i] = ColorFromColorful(p)
	}
	for leaf := range tree.Leaves() {
		c := leaf.Color.Colorful()
		best, bestD := 0, math.MaxFloat64
		for i, p := range snapped {
			if d := c.DistanceLab(p.Colorful()); d < bestD {
				best, bestD = i, d
			}
		}
		leaf.Color = snapped[best]
	}
	tree.Collapse()
}
