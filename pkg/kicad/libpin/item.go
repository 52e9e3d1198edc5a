package libpin

// ItemKind identifies the variant of a DrawItem.
type ItemKind int

const (
	KindPin ItemKind = iota
	KindPolyline
	KindRectangle
	KindCircle
	KindArc
	KindText
)

func (k ItemKind) String() string {
	switch k {
	case KindPin:
		return "pin"
	case KindPolyline:
		return "polyline"
	case KindRectangle:
		return "rectangle"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	case KindText:
		return "text"
	}
	return "unknown"
}

// DrawItem is one drawable element of a symbol. The set of implementations
// is closed: *Pin, *Polyline, *Rectangle, *Circle, *Arc and *Text.
type DrawItem interface {
	Kind() ItemKind
	// InUnit reports whether the item is drawn for the given unit and body
	// style. Items with unit or convert 0 are shared.
	InUnit(unit, convert int) bool
	Offset(d Point)
	MirrorHorizontal(center Point)

	drawItem()
}

func (*Pin) drawItem()       {}
func (*Polyline) drawItem()  {}
func (*Rectangle) drawItem() {}
func (*Circle) drawItem()    {}
func (*Arc) drawItem()       {}
func (*Text) drawItem()      {}

func inUnit(itemUnit, itemConvert, unit, convert int) bool {
	if itemUnit != 0 && unit != 0 && itemUnit != unit {
		return false
	}
	if itemConvert != 0 && convert != 0 && itemConvert != convert {
		return false
	}
	return true
}

// FillMode selects how a closed body shape is filled.
type FillMode int

const (
	FillNone FillMode = iota
	FillForeground
	FillBackground
)

// Body carries the fields shared by the graphical items.
type Body struct {
	Unit    int
	Convert int
	Width   int // 0 selects the symbol default
	Fill    FillMode
}

func (b Body) InUnit(unit, convert int) bool {
	return inUnit(b.Unit, b.Convert, unit, convert)
}

// Polyline is an open or closed chain of segments.
type Polyline struct {
	Body
	Points []Point
}

func (*Polyline) Kind() ItemKind { return KindPolyline }

func (l *Polyline) Offset(d Point) {
	for i := range l.Points {
		l.Points[i] = l.Points[i].Add(d)
	}
}

func (l *Polyline) MirrorHorizontal(center Point) {
	for i := range l.Points {
		l.Points[i] = mirrorX(l.Points[i], center)
	}
}

// Rectangle is given by two opposite corners.
type Rectangle struct {
	Body
	Start Point
	End   Point
}

func (*Rectangle) Kind() ItemKind { return KindRectangle }

func (r *Rectangle) Offset(d Point) {
	r.Start = r.Start.Add(d)
	r.End = r.End.Add(d)
}

func (r *Rectangle) MirrorHorizontal(center Point) {
	r.Start = mirrorX(r.Start, center)
	r.End = mirrorX(r.End, center)
}

type Circle struct {
	Body
	Center Point
	Radius int
}

func (*Circle) Kind() ItemKind { return KindCircle }

func (c *Circle) Offset(d Point) {
	c.Center = c.Center.Add(d)
}

func (c *Circle) MirrorHorizontal(center Point) {
	c.Center = mirrorX(c.Center, center)
}

// Arc runs counter-clockwise from Start to End around Center. Angles are in
// tenths of a degree.
type Arc struct {
	Body
	Center     Point
	Radius     int
	StartAngle int
	EndAngle   int
	Start      Point
	End        Point
}

func (*Arc) Kind() ItemKind { return KindArc }

func (a *Arc) Offset(d Point) {
	a.Center = a.Center.Add(d)
	a.Start = a.Start.Add(d)
	a.End = a.End.Add(d)
}

// MirrorHorizontal reflects the arc; start and end swap so the arc keeps
// its counter-clockwise direction.
func (a *Arc) MirrorHorizontal(center Point) {
	a.Center = mirrorX(a.Center, center)
	a.Start, a.End = mirrorX(a.End, center), mirrorX(a.Start, center)
	a.StartAngle, a.EndAngle = normalizeAngle(1800-a.EndAngle), normalizeAngle(1800-a.StartAngle)
}

func normalizeAngle(a int) int {
	for a < 0 {
		a += 3600
	}
	for a >= 3600 {
		a -= 3600
	}
	return a
}

// Text is a free graphical string. Orientation is in tenths of a degree.
type Text struct {
	Body
	Position    Point
	Text        string
	Size        int
	Orientation int
	Hidden      bool
}

func (*Text) Kind() ItemKind { return KindText }

func (t *Text) Offset(d Point) {
	t.Position = t.Position.Add(d)
}

func (t *Text) MirrorHorizontal(center Point) {
	t.Position = mirrorX(t.Position, center)
}
