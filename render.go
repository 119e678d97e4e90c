package quadpress

import (
	"fmt"
	"image"
	"image/draw"
	"time"
)

// SeamColor is the grid color painted by the bordered encoding.
var SeamColor = Color{255, 255, 255}

// ToMaxDepth reduces tree in place until tree.Depth() <= d.
//
// Every node whose depth equals Depth()-d+1 is united without recursion,
// which removes the deepest level wherever it occurs. Branches that skip
// that depth value can still reach below level d, so any node left divided
// at level d is then united recursively. The tree is collapsed last.
// Callers that need the full tree must Clone it first.
func ToMaxDepth(tree *Node, d int) error {
	if d < 1 {
		return fmt.Errorf("max depth %d: %w", d, ErrDepthRange)
	}
	depth := tree.Depth()
	if depth <= d {
		return nil
	}
	diff := depth - d + 1
	tree.Walk(func(n *Node) bool {
		if n.Depth() == diff {
			n.Unite(false)
		}
		return true
	})
	tree.walk(func(n *Node, level int) bool {
		if level == d {
			n.Unite(true)
		}
		return true
	})
	tree.Collapse()
	return nil
}

// FilledMatrix paints every leaf footprint with its color. The result has
// the bounds of the root area and reproduces the tree pixel for pixel.
func FilledMatrix(tree *Node) *image.RGBA {
	img := image.NewRGBA(tree.Rect())
	for leaf := range tree.Leaves() {
		draw.Draw(img, leaf.Rect(), image.NewUniform(leaf.Color.RGBA()), image.Point{}, draw.Src)
	}
	return img
}

// BorderedMatrix renders the tree on a doubled grid of side 2*size-1, leaving
// a one-pixel seam between neighbouring leaves. With a nil seam the seams stay
// transparent; otherwise the split lines of every internal node are painted
// with *seam. The mapping is exact for power-of-two trees only.
func BorderedMatrix(tree *Node, seam *Color) *image.RGBA {
	size := tree.End.X*2 - 1
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	tree.Walk(func(n *Node) bool {
		x0, y0 := n.Start.X, n.Start.Y
		x1, y1 := n.End.X, n.End.Y
		if n.IsDivided() {
			if seam != nil {
				u := image.NewUniform(seam.RGBA())
				draw.Draw(img, image.Rect(x0+x1-1, y0*2, x0+x1, y1*2-1), u, image.Point{}, draw.Src)
				draw.Draw(img, image.Rect(x0*2, y0+y1-1, x1*2-1, y0+y1), u, image.Point{}, draw.Src)
			}
			return true
		}
		r := image.Rect(x0*2, y0*2, x1*2-1, y1*2-1)
		draw.Draw(img, r, image.NewUniform(n.Color.RGBA()), image.Point{}, draw.Src)
		return true
	})
	return img
}

// Encoding selects how a tree is turned into pixels.
type Encoding int

const (
	EncodingFilled Encoding = iota
	EncodingBordered
)

func (e Encoding) String() string {
	if e == EncodingBordered {
		return "bordered"
	}
	return "filled"
}

// Render draws tree with encoding e. The bordered encoding paints SeamColor.
func (e Encoding) Render(tree *Node) *image.RGBA {
	if e == EncodingBordered {
		seam := SeamColor
		return BorderedMatrix(tree, &seam)
	}
	return FilledMatrix(tree)
}

// Compress limits tree to maxDepth in place and renders it.
func Compress(tree *Node, maxDepth int, borders bool) (*image.RGBA, error) {
	if err := ToMaxDepth(tree, maxDepth); err != nil {
		return nil, err
	}
	enc := EncodingFilled
	if borders {
		enc = EncodingBordered
	}
	return enc.Render(tree), nil
}

// ============ DEPTH SEQUENCE ============

// Sequence is a series of renders of one tree at decreasing depth limits.
type Sequence struct {
	// Frames[0] is the full-depth render; each later frame is limited to one
	// level less, down to MinDepth.
	Frames     []*image.RGBA
	StartDepth int
	MinDepth   int
}

// FrameDelay is the display time of each frame: 200ms per level spanned.
func (s *Sequence) FrameDelay() time.Duration {
	return time.Duration(s.StartDepth-s.MinDepth) * 200 * time.Millisecond
}

// DepthSequence renders tree at every depth from its own depth down to
// minDepth, most detailed first. It works on a clone and leaves tree intact.
func DepthSequence(tree *Node, minDepth int, enc Encoding) (*Sequence, error) {
	start := tree.Depth()
	if minDepth < 1 || start <= minDepth {
		return nil, fmt.Errorf("sequence from depth %d to %d: %w", start, minDepth, ErrDepthRange)
	}
	work := tree.Clone()
	seq := &Sequence{StartDepth: start, MinDepth: minDepth}
	seq.Frames = append(seq.Frames, enc.Render(work))
	for d := start - 1; d >= minDepth; d-- {
		if err := ToMaxDepth(work, d); err != nil {
			return nil, err
		}
		seq.Frames = append(seq.Frames, enc.Render(work))
	}
	return seq, nil
}
