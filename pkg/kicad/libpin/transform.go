package libpin

// Point is an integer coordinate in drawing units (mils).
type Point struct {
	X int
	Y int
}

// Add returns p + o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Transform is a 2x2 linear map with no translation, as supplied by the
// placement of a symbol:
//
//	x' = X1*x + Y1*y
//	y' = X2*x + Y2*y
type Transform struct {
	X1, Y1 int
	X2, Y2 int
}

var (
	// IdentityTransform leaves coordinates unchanged.
	IdentityTransform = Transform{X1: 1, Y1: 0, X2: 0, Y2: 1}

	// DefaultTransform maps the symbol frame (Y up) to the schematic frame
	// (Y down) for an unrotated, unmirrored placement.
	DefaultTransform = Transform{X1: 1, Y1: 0, X2: 0, Y2: -1}

	// RotateCCW rotates by +90 degrees in a Y-up frame.
	RotateCCW = Transform{X1: 0, Y1: -1, X2: 1, Y2: 0}

	// RotateCW rotates by -90 degrees in a Y-up frame.
	RotateCW = Transform{X1: 0, Y1: 1, X2: -1, Y2: 0}

	// MirrorX flips the X axis.
	MirrorX = Transform{X1: -1, Y1: 0, X2: 0, Y2: 1}

	// MirrorY flips the Y axis.
	MirrorY = Transform{X1: 1, Y1: 0, X2: 0, Y2: -1}
)

// Apply transforms a coordinate.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.X1*p.X + t.Y1*p.Y,
		Y: t.X2*p.X + t.Y2*p.Y,
	}
}

// Compose returns the transform that applies other first, then t.
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		X1: t.X1*other.X1 + t.Y1*other.X2,
		Y1: t.X1*other.Y1 + t.Y1*other.Y2,
		X2: t.X2*other.X1 + t.Y2*other.X2,
		Y2: t.X2*other.Y1 + t.Y2*other.Y2,
	}
}

// direction returns the unit vector of an orientation in the symbol frame.
// Unknown orientations yield the zero vector.
func direction(o Orientation) Point {
	switch o {
	case OrientUp:
		return Point{X: 0, Y: 1}
	case OrientDown:
		return Point{X: 0, Y: -1}
	case OrientLeft:
		return Point{X: -1, Y: 0}
	case OrientRight:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

// classify maps a vector back to the cardinal orientation of its dominant
// axis. The zero vector classifies as Up.
func classify(v Point) Orientation {
	ax, ay := abs(v.X), abs(v.Y)
	if ax > ay {
		if v.X < 0 {
			return OrientLeft
		}
		return OrientRight
	}
	if v.Y < 0 {
		return OrientDown
	}
	return OrientUp
}

// EndPointOf returns the free end of a pin at pos with the given length and
// orientation, in the unrotated symbol frame.
func EndPointOf(pos Point, length int, o Orientation) Point {
	d := direction(o)
	return Point{X: pos.X + d.X*length, Y: pos.Y + d.Y*length}
}

// DrawOrientationOf returns the apparent orientation of o once t is applied.
func DrawOrientationOf(o Orientation, t Transform) Orientation {
	return classify(t.Apply(direction(o)))
}

// mirrorOrientation swaps Left and Right.
func mirrorOrientation(o Orientation) Orientation {
	switch o {
	case OrientRight:
		return OrientLeft
	case OrientLeft:
		return OrientRight
	}
	return o
}

func mirrorX(p Point, center Point) Point {
	return Point{X: 2*center.X - p.X, Y: p.Y}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
