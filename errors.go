package quadpress

import "errors"

var (
	// ErrUnitArea is returned when subdividing a 1x1 node.
	ErrUnitArea = errors.New("cannot subdivide a unit area")
	// ErrThinArea is returned when subdividing a node one cell wide or tall,
	// which would produce empty quadrants.
	ErrThinArea = errors.New("cannot subdivide an area one cell wide")
	// ErrAlreadyDivided is returned when subdividing an internal node.
	ErrAlreadyDivided = errors.New("node is already divided")
	// ErrNotPowerOfTwo is returned when a raster is not a power-of-two square.
	ErrNotPowerOfTwo = errors.New("raster must be a square with power-of-two side")
	// ErrDepthRange is returned for depth limits outside the valid range.
	ErrDepthRange = errors.New("depth out of range")
	// ErrDepthLimit is returned when construction descends past the depth
	// bound implied by the raster size.
	ErrDepthLimit = errors.New("tree depth limit exceeded")
)
