package quadpress

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"
)

// skewedTree is 8x8 with depth 4 down the north-west corner and depth 2 in
// the north-east, so the north-east branch never has depth 3.
func skewedTree() *Node {
	tree := leafTree(8, black, red, green, blue)
	_ = tree.Child(NorthWest).Subdivide()
	_ = tree.Child(NorthWest).Child(NorthWest).Subdivide()
	tree.Child(NorthWest).Child(NorthWest).Child(SouthEast).Color = white
	_ = tree.Child(NorthEast).Subdivide()
	tree.Child(NorthEast).Child(NorthEast).Color = white
	return tree
}

func TestToMaxDepth_Monotonic(t *testing.T) {
	trees := map[string]func(*testing.T) *Node{
		"checker":   func(t *testing.T) *Node { return buildTest(t, checkerRaster(8, 1), 0) },
		"stripes":   func(t *testing.T) *Node { return buildTest(t, stripeRaster(16), 0) },
		"skewed":    func(*testing.T) *Node { return skewedTree() },
		"quadrants": func(t *testing.T) *Node { return buildTest(t, quadRaster(8, black, red, green, blue), 0) },
	}
	for name, mk := range trees {
		t.Run(name, func(t *testing.T) {
			full := mk(t).Depth()
			for d := 1; d <= full+1; d++ {
				tree := mk(t)
				if err := ToMaxDepth(tree, d); err != nil {
					t.Fatalf("ToMaxDepth(%d) error = %v", d, err)
				}
				got := tree.Depth()
				if got > d || got > full {
					t.Errorf("ToMaxDepth(%d): depth %d (was %d)", d, got, full)
				}
				checkPartition(t, tree)
			}
		})
	}
}

func TestToMaxDepth_NoopWhenShallow(t *testing.T) {
	tree := buildTest(t, quadRaster(4, black, red, green, blue), 0)
	before := tree.Clone()
	if err := ToMaxDepth(tree, 2); err != nil {
		t.Fatal(err)
	}
	if !sameShape(tree, before) {
		t.Error("ToMaxDepth() at the current depth changed the tree")
	}
}

func TestToMaxDepth_RemovesDeepestLevel(t *testing.T) {
	tree := skewedTree()
	if err := ToMaxDepth(tree, 3); err != nil {
		t.Fatal(err)
	}
	// Every node of depth 2 is united, including the shallow north-east one.
	if tree.Child(NorthEast).IsDivided() {
		t.Error("north-east should have been united")
	}
	if want := (Color{255, 63, 63}); tree.Child(NorthEast).Color != want {
		t.Errorf("north-east color = %v, want %v", tree.Child(NorthEast).Color, want)
	}
	if d := tree.Depth(); d != 3 {
		t.Errorf("Depth() = %d, want 3", d)
	}
}

func TestToMaxDepth_SkippedDepth(t *testing.T) {
	tree := skewedTree()
	// Depth 4 to 2 unites nodes of depth 3; the north-west one refuses
	// because its child is internal, so the level sweep must finish the job.
	if err := ToMaxDepth(tree, 2); err != nil {
		t.Fatal(err)
	}
	if d := tree.Depth(); d != 2 {
		t.Errorf("Depth() = %d, want 2", d)
	}
}

func TestToMaxDepth_InvalidDepth(t *testing.T) {
	tree := skewedTree()
	if err := ToMaxDepth(tree, 0); !errors.Is(err, ErrDepthRange) {
		t.Errorf("ToMaxDepth(0) error = %v, want %v", err, ErrDepthRange)
	}
	if d := tree.Depth(); d != 4 {
		t.Errorf("failed ToMaxDepth changed depth to %d", d)
	}
}

func TestFilledMatrix(t *testing.T) {
	r := quadRaster(4, black, red, green, blue)
	img := FilledMatrix(buildTest(t, r, 0))
	assertSameImage(t, img, r)
}

func TestBorderedMatrix(t *testing.T) {
	tree := buildTest(t, quadRaster(4, black, red, green, blue), 0)
	transparent := color.RGBA{}
	tests := []struct {
		name string
		seam *Color
		at   map[image.Point]color.RGBA
	}{
		{
			name: "unfilled seams",
			at: map[image.Point]color.RGBA{
				{0, 0}: black.RGBA(),
				{2, 2}: black.RGBA(),
				{4, 0}: red.RGBA(),
				{6, 6}: green.RGBA(),
				{0, 6}: blue.RGBA(),
				{3, 0}: transparent,
				{0, 3}: transparent,
				{3, 3}: transparent,
			},
		},
		{
			name: "painted seams",
			seam: &white,
			at: map[image.Point]color.RGBA{
				{2, 2}: black.RGBA(),
				{4, 4}: green.RGBA(),
				{3, 0}: white.RGBA(),
				{3, 6}: white.RGBA(),
				{0, 3}: white.RGBA(),
				{6, 3}: white.RGBA(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := BorderedMatrix(tree, tt.seam)
			if img.Bounds() != image.Rect(0, 0, 7, 7) {
				t.Fatalf("bounds = %v, want 7x7", img.Bounds())
			}
			for p, want := range tt.at {
				if got := img.RGBAAt(p.X, p.Y); got != want {
					t.Errorf("pixel %v = %v, want %v", p, got, want)
				}
			}
		})
	}
}

func TestCompress(t *testing.T) {
	tree := buildTest(t, checkerRaster(8, 1), 0)
	img, err := Compress(tree, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if tree.IsDivided() {
		t.Error("Compress(1) left the tree divided")
	}
	gray := color.RGBA{127, 127, 127, 255}
	if got := img.RGBAAt(5, 2); got != gray {
		t.Errorf("pixel = %v, want %v", got, gray)
	}

	bordered, err := Compress(buildTest(t, checkerRaster(8, 1), 0), 4, true)
	if err != nil {
		t.Fatal(err)
	}
	if bordered.Bounds().Dx() != 15 {
		t.Errorf("bordered width = %d, want 15", bordered.Bounds().Dx())
	}

	if _, err := Compress(tree, 0, false); !errors.Is(err, ErrDepthRange) {
		t.Errorf("Compress(0) error = %v, want %v", err, ErrDepthRange)
	}
}

func TestDepthSequence(t *testing.T) {
	r := checkerRaster(8, 1)
	tree := buildTest(t, r, 0)
	seq, err := DepthSequence(tree, 1, EncodingFilled)
	if err != nil {
		t.Fatal(err)
	}

	if seq.StartDepth != 4 || seq.MinDepth != 1 {
		t.Errorf("depths = %d..%d, want 4..1", seq.StartDepth, seq.MinDepth)
	}
	if len(seq.Frames) != 4 {
		t.Fatalf("frames = %d, want 4", len(seq.Frames))
	}
	assertSameImage(t, seq.Frames[0], r)
	last := seq.Frames[len(seq.Frames)-1]
	if got := last.RGBAAt(0, 0); got != (color.RGBA{127, 127, 127, 255}) {
		t.Errorf("last frame pixel = %v, want gray", got)
	}
	if seq.FrameDelay() != 600*time.Millisecond {
		t.Errorf("FrameDelay() = %v, want 600ms", seq.FrameDelay())
	}
	if d := tree.Depth(); d != 4 {
		t.Errorf("DepthSequence() changed the source tree depth to %d", d)
	}
}

func TestDepthSequence_Bordered(t *testing.T) {
	tree := skewedTree()
	seq, err := DepthSequence(tree, 2, EncodingBordered)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq.Frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(seq.Frames))
	}
	for i, f := range seq.Frames {
		if f.Bounds().Dx() != 15 {
			t.Errorf("frame %d width = %d, want 15", i, f.Bounds().Dx())
		}
	}
}

func TestDepthSequence_Range(t *testing.T) {
	tree := buildTest(t, quadRaster(4, black, red, green, blue), 0)
	for _, minDepth := range []int{0, 2, 3} {
		if _, err := DepthSequence(tree, minDepth, EncodingFilled); !errors.Is(err, ErrDepthRange) {
			t.Errorf("DepthSequence(min=%d) error = %v, want %v", minDepth, err, ErrDepthRange)
		}
	}
}
