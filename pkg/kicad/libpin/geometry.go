package libpin

import "math"

// MinHitTolerance is the smallest distance accepted as a pin hit.
const MinHitTolerance = 3

// Rect is an axis aligned rectangle given by its origin and size.
type Rect struct {
	Origin Point
	Width  int
	Height int
}

// End returns the corner opposite the origin.
func (r Rect) End() Point {
	return Point{X: r.Origin.X + r.Width, Y: r.Origin.Y + r.Height}
}

// Normalize returns r with non-negative width and height.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.Origin.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Origin.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	n := r.Normalize()
	end := n.End()
	return p.X >= n.Origin.X && p.X <= end.X &&
		p.Y >= n.Origin.Y && p.Y <= end.Y
}

// SegmentHit reports whether p is within threshold of the segment a-b.
func SegmentHit(p, a, b Point, threshold int) bool {
	return segmentDistance(p, a, b) <= float64(threshold)
}

func segmentDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	px := float64(p.X - a.X)
	py := float64(p.Y - a.Y)

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px, py)
	}

	t := (px*dx + py*dy) / lenSq
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return math.Hypot(px-t*dx, py-t*dy)
}
