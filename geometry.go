package quadpress

import (
	"fmt"
	"image"
)

// Point is an integer raster coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Pixel is a single colored raster cell.
type Pixel struct {
	Point
	Color Color
}

// Area is a half-open rectangle [Start, End) carrying one color.
type Area struct {
	Start Point // inclusive
	End   Point // exclusive
	Color Color
}

func NewArea(start, end Point, c Color) Area {
	return Area{Start: start, End: end, Color: c}
}

// Dx returns the area width.
func (a Area) Dx() int { return a.End.X - a.Start.X }

// Dy returns the area height.
func (a Area) Dy() int { return a.End.Y - a.Start.Y }

// Empty reports whether the area covers no cells.
func (a Area) Empty() bool {
	return a.Start.X >= a.End.X || a.Start.Y >= a.End.Y
}

// IsPixel reports whether the area covers exactly one unit cell.
func (a Area) IsPixel() bool {
	return a.Dx()*a.Dy() == 1
}

// Contains reports whether p lies inside the area.
func (a Area) Contains(p Point) bool {
	return a.Start.X <= p.X && p.X < a.End.X &&
		a.Start.Y <= p.Y && p.Y < a.End.Y
}

// Mid returns the quadrant split point. Odd sides split floor/ceil, so the
// north-west quadrant is the smaller one.
func (a Area) Mid() Point {
	return Point{
		X: (a.Start.X + a.End.X) / 2,
		Y: (a.Start.Y + a.End.Y) / 2,
	}
}

// Rect converts the area footprint to an image rectangle.
func (a Area) Rect() image.Rectangle {
	return image.Rect(a.Start.X, a.Start.Y, a.End.X, a.End.Y)
}

// quadrants returns the four sub-areas in traversal order (NW, NE, SE, SW),
// each inheriting the parent color.
func (a Area) quadrants() [4]Area {
	m := a.Mid()
	return [4]Area{
		NorthWest: {Start: a.Start, End: m, Color: a.Color},
		NorthEast: {Start: Point{m.X, a.Start.Y}, End: Point{a.End.X, m.Y}, Color: a.Color},
		SouthEast: {Start: m, End: a.End, Color: a.Color},
		SouthWest: {Start: Point{a.Start.X, m.Y}, End: Point{m.X, a.End.Y}, Color: a.Color},
	}
}

func (a Area) String() string {
	return fmt.Sprintf("area %v-%v %v", a.Start, a.End, a.Color)
}
