package libpin

import "go.uber.org/zap"

// EditGroup is the set of pins edited together with a target pin. It is
// computed once, when edit mode is enabled, from the pins that share the
// target's position and orientation. Pins removed from the symbol leave
// the group; pins added afterwards never join it.
type EditGroup struct {
	target  *Pin
	members map[*Pin]struct{}
}

// Target returns the pin the group was built around.
func (g *EditGroup) Target() *Pin { return g.target }

// Contains reports whether p is enrolled.
func (g *EditGroup) Contains(p *Pin) bool {
	if g == nil {
		return false
	}
	_, ok := g.members[p]
	return ok
}

// Len returns the number of enrolled pins, excluding the target.
func (g *EditGroup) Len() int {
	if g == nil {
		return 0
	}
	return len(g.members)
}

func (g *EditGroup) drop(p *Pin) {
	delete(g.members, p)
}

// EditGroup returns the active edit group, or nil when none is active.
func (s *Symbol) EditGroup() *EditGroup { return s.edit }

// EnableEditMode starts or ends a group edit around p. With enable set and
// byPin clear, every other pin at the same position with the same
// orientation is enrolled, unless p itself has just been created. In any
// other case the group is cleared and later edits stay local to the pin.
func (s *Symbol) EnableEditMode(p *Pin, enable, byPin bool) {
	s.edit = nil
	if p == nil || p.parent != s || !enable || byPin || p.isNew {
		return
	}

	g := &EditGroup{target: p, members: make(map[*Pin]struct{})}
	for _, q := range s.Pins() {
		if q == p {
			continue
		}
		if q.position == p.position && q.orientation == p.orientation {
			g.members[q] = struct{}{}
		}
	}
	s.edit = g

	s.logger().Debug("pin edit group enabled",
		zap.String("symbol", s.Name),
		zap.String("pin", p.Number()),
		zap.Int("linked", g.Len()))
}

// LinkedPins returns the pins an edit of p would reach: the target and the
// enrolled pins, minus p itself. Pins outside the group reach nothing. With
// sameConvert set only pins of p's body style are returned.
func (s *Symbol) LinkedPins(p *Pin, sameConvert bool) []*Pin {
	g := s.edit
	if g == nil || (p != g.target && !g.Contains(p)) {
		return nil
	}
	var linked []*Pin
	for _, q := range s.Pins() {
		if q == p || (q != g.target && !g.Contains(q)) {
			continue
		}
		if sameConvert && q.convert != p.convert {
			continue
		}
		linked = append(linked, q)
	}
	return linked
}

// fanOut applies fn to every pin linked to p and marks the changed ones
// modified.
func (s *Symbol) fanOut(p *Pin, sameConvert bool, fn func(q *Pin) bool) {
	for _, q := range s.LinkedPins(p, sameConvert) {
		if fn(q) {
			q.modified = true
		}
	}
}

// mergeUnits removes the enrolled per-unit copies of p after p became
// common to all units. Copies in another body style survive when p itself
// belongs to a single body style.
func (s *Symbol) mergeUnits(p *Pin) {
	s.removeSuperseded(p, func(q *Pin) bool {
		return p.convert == 0 || p.convert == q.convert
	})
}

// mergeConverts removes the enrolled per-style copies of p after p became
// common to all body styles.
func (s *Symbol) mergeConverts(p *Pin) {
	s.removeSuperseded(p, func(q *Pin) bool {
		return p.unit == 0 || p.unit == q.unit
	})
}

func (s *Symbol) removeSuperseded(p *Pin, match func(q *Pin) bool) {
	for _, q := range s.LinkedPins(p, false) {
		if q.position != p.position || q.orientation != p.orientation || !match(q) {
			continue
		}
		s.RemovePin(q)
		s.logger().Debug("removed superseded pin",
			zap.String("symbol", s.Name),
			zap.String("pin", q.Number()),
			zap.Int("unit", q.unit),
			zap.Int("convert", q.convert))
	}
}
