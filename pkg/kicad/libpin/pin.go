package libpin

import (
	"strconv"
	"strings"
)

// Defaults applied by NewPin.
const (
	DefaultPinLength = 300
	DefaultTextSize  = 50
)

// Placeholder replaces an empty pin name or number.
const Placeholder = "~"

// Pin is an electrical pin of a library symbol. Coordinates are in the
// symbol frame with Y pointing up.
//
// Setters that change a value mark the pin modified and, when the pin
// belongs to a Symbol with an active edit group, apply the same change to
// the linked pins of that group.
type Pin struct {
	parent *Symbol

	position    Point
	length      int
	orientation Orientation
	shape       Shape
	etype       ElectricalType
	visible     bool
	name        string
	number      PinNumber
	nameSize    int
	numSize     int
	unit        int
	convert     int
	width       int

	modified bool
	isNew    bool
}

// NewPin returns a detached pin with editor defaults.
func NewPin() *Pin {
	return &Pin{
		length:      DefaultPinLength,
		orientation: OrientRight,
		shape:       ShapeNone,
		etype:       TypeUnspecified,
		visible:     true,
		name:        Placeholder,
		number:      NewPinNumber(Placeholder),
		nameSize:    DefaultTextSize,
		numSize:     DefaultTextSize,
	}
}

// coerceText applies the placeholder and space rules shared by names and
// numbers.
func coerceText(s string) string {
	if s == "" {
		return Placeholder
	}
	return strings.ReplaceAll(s, " ", "_")
}

func (p *Pin) Kind() ItemKind { return KindPin }

// Parent returns the owning symbol, or nil for a detached pin.
func (p *Pin) Parent() *Symbol { return p.parent }

func (p *Pin) Position() Point               { return p.position }
func (p *Pin) Length() int                   { return p.length }
func (p *Pin) Orientation() Orientation      { return p.orientation }
func (p *Pin) Shape() Shape                  { return p.shape }
func (p *Pin) Type() ElectricalType          { return p.etype }
func (p *Pin) IsVisible() bool               { return p.visible }
func (p *Pin) Name() string                  { return p.name }
func (p *Pin) Number() string                { return p.number.String() }
func (p *Pin) NumberBuffer() PinNumber       { return p.number }
func (p *Pin) NameTextSize() int             { return p.nameSize }
func (p *Pin) NumberTextSize() int           { return p.numSize }
func (p *Pin) Unit() int                     { return p.unit }
func (p *Pin) Convert() int                  { return p.convert }
func (p *Pin) Width() int                    { return p.width }
func (p *Pin) IsModified() bool              { return p.modified }
func (p *Pin) ClearModified()                { p.modified = false }
func (p *Pin) IsNew() bool                   { return p.isNew }
func (p *Pin) SetNew(isNew bool)             { p.isNew = isNew }
func (p *Pin) InUnit(unit, convert int) bool { return inUnit(p.unit, p.convert, unit, convert) }

// propagate hands fn to the parent's edit group. fn reports whether it
// changed the sibling.
func (p *Pin) propagate(sameConvert bool, fn func(q *Pin) bool) {
	if p.parent == nil {
		return
	}
	p.parent.fanOut(p, sameConvert, fn)
}

// SetName sets the pin name. Empty names become "~" and spaces become "_".
func (p *Pin) SetName(name string) {
	name = coerceText(name)
	if p.name == name {
		return
	}
	p.name = name
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.name == name {
			return false
		}
		q.name = name
		return true
	})
}

// SetNumber sets the pin number with the same coercion as SetName. Numbers
// are never shared with linked pins.
func (p *Pin) SetNumber(number string) {
	n := NewPinNumber(coerceText(number))
	if p.number == n {
		return
	}
	p.number = n
	p.modified = true
}

func (p *Pin) SetNameTextSize(size int) {
	if p.nameSize == size {
		return
	}
	p.nameSize = size
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.nameSize == size {
			return false
		}
		q.nameSize = size
		return true
	})
}

func (p *Pin) SetNumberTextSize(size int) {
	if p.numSize == size {
		return
	}
	p.numSize = size
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.numSize == size {
			return false
		}
		q.numSize = size
		return true
	})
}

// SetPosition moves the pin, and its linked pins, to pos.
func (p *Pin) SetPosition(pos Point) {
	if p.position == pos {
		return
	}
	p.position = pos
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.position == pos {
			return false
		}
		q.position = pos
		return true
	})
}

func (p *Pin) SetOrientation(o Orientation) {
	if p.orientation == o {
		return
	}
	p.orientation = o
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.orientation == o {
			return false
		}
		q.orientation = o
		return true
	})
}

// SetShape sets the decoration bits. Linked pins of other body styles keep
// their own shape.
func (p *Pin) SetShape(s Shape) {
	if p.shape == s {
		return
	}
	p.shape = s
	p.modified = true

	p.propagate(true, func(q *Pin) bool {
		if q.shape == s {
			return false
		}
		q.shape = s
		return true
	})
}

func (p *Pin) SetType(t ElectricalType) {
	if p.etype == t {
		return
	}
	p.etype = t
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.etype == t {
			return false
		}
		q.etype = t
		return true
	})
}

// SetLength sets the pin length, clamping negative values to zero. Linked
// pins of other body styles keep their own length.
func (p *Pin) SetLength(length int) {
	if length < 0 {
		length = 0
	}
	if p.length == length {
		return
	}
	p.length = length
	p.modified = true

	p.propagate(true, func(q *Pin) bool {
		if q.length == length {
			return false
		}
		q.length = length
		return true
	})
}

func (p *Pin) SetVisible(visible bool) {
	if p.visible == visible {
		return
	}
	p.visible = visible
	p.modified = true

	p.propagate(false, func(q *Pin) bool {
		if q.visible == visible {
			return false
		}
		q.visible = visible
		return true
	})
}

// SetUnit assigns the pin to a unit. Moving a pin to unit 0 makes it common
// to all units and removes the linked per-unit duplicates it supersedes.
func (p *Pin) SetUnit(unit int) {
	if p.unit == unit {
		return
	}
	p.unit = unit
	p.modified = true

	if unit == 0 && p.parent != nil {
		p.parent.mergeUnits(p)
	}
}

// SetConvert assigns the pin to a body style. Moving a pin to convert 0
// removes the linked per-style duplicates it supersedes.
func (p *Pin) SetConvert(convert int) {
	if p.convert == convert {
		return
	}
	p.convert = convert
	p.modified = true

	if convert == 0 && p.parent != nil {
		p.parent.mergeConverts(p)
	}
}

// SetWidth sets the pen width; 0 selects the symbol default.
func (p *Pin) SetWidth(width int) {
	if width < 0 {
		width = 0
	}
	if p.width == width {
		return
	}
	p.width = width
	p.modified = true
}

// PenSize returns the effective pen width.
func (p *Pin) PenSize() int {
	if p.width != 0 {
		return p.width
	}
	if p.parent != nil {
		return p.parent.LineThickness()
	}
	return DefaultLineThickness
}

// EndPoint returns the free end of the pin in the symbol frame.
func (p *Pin) EndPoint() Point {
	return EndPointOf(p.position, p.length, p.orientation)
}

// DrawOrientation returns the orientation the pin appears to have once the
// parent placement t is applied. The stored orientation is not changed.
func (p *Pin) DrawOrientation(t Transform) Orientation {
	return DrawOrientationOf(p.orientation, t)
}

// MirrorHorizontal reflects the pin about the vertical line through center
// and swaps Left and Right.
func (p *Pin) MirrorHorizontal(center Point) {
	p.position = mirrorX(p.position, center)
	p.orientation = mirrorOrientation(p.orientation)
}

// Offset translates the pin without propagation.
func (p *Pin) Offset(d Point) {
	p.position = p.position.Add(d)
}

// Move places the pin at pos without touching linked pins.
func (p *Pin) Move(pos Point) {
	if p.position != pos {
		p.position = pos
		p.modified = true
	}
}

// HitTest reports whether pos lies within threshold of the pin segment
// after t is applied. A threshold <= 0 selects max(PenSize/2, 3).
func (p *Pin) HitTest(pos Point, threshold int, t Transform) bool {
	if threshold <= 0 {
		threshold = p.PenSize() / 2
		if threshold < MinHitTolerance {
			threshold = MinHitTolerance
		}
	}
	start := t.Apply(p.position)
	end := t.Apply(p.EndPoint())
	return SegmentHit(pos, start, end, threshold)
}

// BoundingBox returns a 1x1 box at the pin position in schematic
// coordinates, i.e. with Y negated.
func (p *Pin) BoundingBox() Rect {
	return Rect{
		Origin: Point{X: p.position.X, Y: -p.position.Y},
		Width:  1,
		Height: 1,
	}
}

// Inside reports whether the pin position or end point falls in r, given in
// schematic coordinates.
func (p *Pin) Inside(r Rect) bool {
	end := p.EndPoint()
	return r.Contains(Point{X: p.position.X, Y: -p.position.Y}) ||
		r.Contains(Point{X: end.X, Y: -end.Y})
}

// Clone returns a detached copy. Session flags are copied; the parent is
// not.
func (p *Pin) Clone() *Pin {
	c := *p
	c.parent = nil
	return &c
}

// Compare orders pins by number, then name ignoring case, then position.
func (p *Pin) Compare(other *Pin) int {
	if c := p.number.Compare(other.number); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(p.name), strings.ToLower(other.name)); c != 0 {
		return c
	}
	if p.position.X != other.position.X {
		return p.position.X - other.position.X
	}
	return p.position.Y - other.position.Y
}

// InfoItem is one label/value pair describing a pin.
type InfoItem struct {
	Label string
	Value string
}

// Info describes the pin for message panels and listings.
func (p *Pin) Info() []InfoItem {
	number := p.number.raw()
	if p.number.IsZero() {
		number = "?"
	}
	visible := "No"
	if p.visible {
		visible = "Yes"
	}
	style := StyleName(p.shape)
	if style == "" {
		style = "?"
	}

	return []InfoItem{
		{Label: "Name", Value: p.name},
		{Label: "Number", Value: number},
		{Label: "Type", Value: p.etype.Label()},
		{Label: "Style", Value: style},
		{Label: "Visible", Value: visible},
		{Label: "Length", Value: strconv.Itoa(p.length)},
		{Label: "Orientation", Value: p.orientation.String()},
	}
}
