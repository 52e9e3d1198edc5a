package libpin

import "go.uber.org/zap"

// DefaultLineThickness is the pen width used when neither an item nor its
// symbol sets one.
const DefaultLineThickness = 6

// Symbol is a library symbol: an ordered collection of drawable items. It
// owns its pins and the edit group used to keep linked pins consistent.
//
// A Symbol is not safe for concurrent use.
type Symbol struct {
	Name string
	// Reference is the designator prefix, e.g. "U" or "R".
	Reference string

	// UnitCount is the number of units; 1 for single unit symbols.
	UnitCount int
	// HasConversion is set when the symbol has an alternate body style.
	HasConversion bool

	lineThickness int
	items         []DrawItem
	edit          *EditGroup
	log           *zap.Logger
}

// NewSymbol returns an empty single unit symbol.
func NewSymbol(name string) *Symbol {
	return &Symbol{
		Name:      name,
		Reference: "U",
		UnitCount: 1,
		log:       zap.NewNop(),
	}
}

// SetLogger replaces the symbol's logger. A nil logger disables logging.
func (s *Symbol) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

func (s *Symbol) logger() *zap.Logger {
	if s.log == nil {
		return zap.NewNop()
	}
	return s.log
}

// LineThickness returns the default pen width for items of this symbol.
func (s *Symbol) LineThickness() int {
	if s.lineThickness > 0 {
		return s.lineThickness
	}
	return DefaultLineThickness
}

// SetLineThickness sets the default pen width; values <= 0 restore the
// package default.
func (s *Symbol) SetLineThickness(width int) {
	s.lineThickness = width
}

// AddItem appends an item. Pins are attached to the symbol; a pin owned by
// another symbol is detached from it first.
func (s *Symbol) AddItem(item DrawItem) {
	if p, ok := item.(*Pin); ok {
		if p.parent != nil && p.parent != s {
			p.parent.RemovePin(p)
		}
		p.parent = s
	}
	s.items = append(s.items, item)
}

// AddPin appends a pin and returns it.
func (s *Symbol) AddPin(p *Pin) *Pin {
	s.AddItem(p)
	return p
}

// Items returns the items in insertion order. The slice is a copy.
func (s *Symbol) Items() []DrawItem {
	return append([]DrawItem(nil), s.items...)
}

// Pins returns the pins in insertion order.
func (s *Symbol) Pins() []*Pin {
	var pins []*Pin
	for _, item := range s.items {
		if p, ok := item.(*Pin); ok {
			pins = append(pins, p)
		}
	}
	return pins
}

// PinsFor returns the pins drawn for a unit and body style.
func (s *Symbol) PinsFor(unit, convert int) []*Pin {
	var pins []*Pin
	for _, p := range s.Pins() {
		if p.InUnit(unit, convert) {
			pins = append(pins, p)
		}
	}
	return pins
}

// RemoveItem removes item by identity and reports whether it was present.
func (s *Symbol) RemoveItem(item DrawItem) bool {
	for i, it := range s.items {
		if it != item {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		if p, ok := item.(*Pin); ok {
			p.parent = nil
			if s.edit != nil {
				if s.edit.target == p {
					s.edit = nil
				} else {
					s.edit.drop(p)
				}
			}
		}
		return true
	}
	return false
}

// RemovePin removes p by identity and reports whether it was present.
func (s *Symbol) RemovePin(p *Pin) bool {
	return s.RemoveItem(p)
}

// Offset translates every item.
func (s *Symbol) Offset(d Point) {
	for _, item := range s.items {
		item.Offset(d)
	}
}

// MirrorHorizontal mirrors every item about the vertical line through
// center.
func (s *Symbol) MirrorHorizontal(center Point) {
	for _, item := range s.items {
		item.MirrorHorizontal(center)
	}
}
