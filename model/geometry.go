package model

import "math"

// Point represents a 2D point in page pixel coordinates.
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned bounding box in page pixel coordinates.
// The origin is the upper-left corner of the page, so Top <= Bottom and
// Left <= Right for a normalized box.
type BBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewBBox creates a bounding box from edge coordinates. The result is
// normalized: swapped edges are reordered and negative coordinates are
// clamped to zero.
func NewBBox(left, top, right, bottom float64) BBox {
	b := BBox{Left: left, Top: top, Right: right, Bottom: bottom}
	return b.Normalize()
}

// Normalize returns a copy with ordered edges and non-negative, finite
// coordinates. NaN edges would survive the ordinary comparisons below
// and infinite ones would survive the clamps, so both are zeroed first.
func (b BBox) Normalize() BBox {
	for _, edge := range []*float64{&b.Left, &b.Top, &b.Right, &b.Bottom} {
		if math.IsNaN(*edge) || math.IsInf(*edge, 0) {
			*edge = 0
		}
	}
	if b.Left > b.Right {
		b.Left, b.Right = b.Right, b.Left
	}
	if b.Top > b.Bottom {
		b.Top, b.Bottom = b.Bottom, b.Top
	}
	if b.Left < 0 {
		b.Left = 0
	}
	if b.Top < 0 {
		b.Top = 0
	}
	if b.Right < 0 {
		b.Right = 0
	}
	if b.Bottom < 0 {
		b.Bottom = 0
	}
	return b
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Bottom - b.Top
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: (b.Left + b.Right) / 2,
		Y: (b.Top + b.Bottom) / 2,
	}
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right &&
		p.Y >= b.Top && p.Y <= b.Bottom
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right < other.Left ||
		b.Left > other.Right ||
		b.Bottom < other.Top ||
		b.Top > other.Bottom)
}

// Intersection returns the intersection of two bounding boxes, or the zero
// box when they do not intersect.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}
	return BBox{
		Left:   math.Max(b.Left, other.Left),
		Top:    math.Max(b.Top, other.Top),
		Right:  math.Min(b.Right, other.Right),
		Bottom: math.Min(b.Bottom, other.Bottom),
	}
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return BBox{
		Left:   math.Min(b.Left, other.Left),
		Top:    math.Min(b.Top, other.Top),
		Right:  math.Max(b.Right, other.Right),
		Bottom: math.Max(b.Bottom, other.Bottom),
	}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// OverlapRatio calculates the overlap ratio with another box relative to
// the smaller of the two areas. Returns a value between 0 and 1.
func (b BBox) OverlapRatio(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}
	minArea := math.Min(b.Area(), other.Area())
	if minArea == 0 {
		return 0
	}
	return b.Intersection(other).Area() / minArea
}
