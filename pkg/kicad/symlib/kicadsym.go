package symlib

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"github.com/chewxy/sexp"
	"go.uber.org/zap"
)

var pinTypes = map[string]libpin.ElectricalType{
	"input":          libpin.TypeInput,
	"output":         libpin.TypeOutput,
	"bidirectional":  libpin.TypeBidirectional,
	"tri_state":      libpin.TypeTristate,
	"passive":        libpin.TypePassive,
	"unspecified":    libpin.TypeUnspecified,
	"free":           libpin.TypeUnspecified,
	"power_in":       libpin.TypePowerInput,
	"power_out":      libpin.TypePowerOutput,
	"open_collector": libpin.TypeOpenCollector,
	"open_emitter":   libpin.TypeOpenEmitter,
	"no_connect":     libpin.TypeNotConnected,
}

var pinStyles = map[string]libpin.Shape{
	"line":            libpin.ShapeNone,
	"inverted":        libpin.ShapeInvert,
	"clock":           libpin.ShapeClock,
	"inverted_clock":  libpin.ShapeClock | libpin.ShapeInvert,
	"input_low":       libpin.ShapeLowIn,
	"clock_low":       libpin.ShapeLowIn | libpin.ShapeClock,
	"output_low":      libpin.ShapeLowOut,
	"edge_clock_high": libpin.ShapeClockFall,
	"non_logic":       libpin.ShapeNonLogic,
}

// Importer converts KiCad 6+ symbol libraries (.kicad_sym) into the legacy
// pin model. Coordinates are converted from millimetres to mils; both
// formats use a Y-up symbol frame so no flip is applied.
type Importer struct {
	// LineThickness is applied to every imported symbol; 0 keeps the
	// package default.
	LineThickness int

	log *zap.Logger
}

// NewImporter returns an importer logging to log. A nil logger disables
// logging.
func NewImporter(log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{log: log}
}

// ParseFile reads and converts a .kicad_sym file.
func (im *Importer) ParseFile(filename string) ([]*libpin.Symbol, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return im.Parse(file)
}

// Parse reads and converts a symbol library from r.
func (im *Importer) Parse(r io.Reader) ([]*libpin.Symbol, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol library: %w", err)
	}

	sexps, err := sexp.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse s-expression: %w", err)
	}
	if len(sexps) == 0 {
		return nil, fmt.Errorf("empty file or no valid s-expressions found")
	}

	root := sexps[0]
	if name := nodeName(root); name != "kicad_symbol_lib" {
		return nil, fmt.Errorf("not a KiCad symbol library: expected 'kicad_symbol_lib', got '%s'", name)
	}

	var symbols []*libpin.Symbol
	for _, node := range findAllNodes(root, "symbol") {
		sym, err := im.parseSymbol(node)
		if err != nil {
			return nil, err
		}
		if sym != nil {
			symbols = append(symbols, sym)
		}
	}
	return symbols, nil
}

func (im *Importer) parseSymbol(node sexp.Sexp) (*libpin.Symbol, error) {
	name, err := atom(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol name: %w", err)
	}

	if _, ok := findNode(node, "extends"); ok {
		im.log.Warn("skipping derived symbol", zap.String("symbol", name))
		return nil, nil
	}

	sym := libpin.NewSymbol(name)
	sym.SetLogger(im.log)
	if im.LineThickness > 0 {
		sym.SetLineThickness(im.LineThickness)
	}

	for _, prop := range findAllNodes(node, "property") {
		key, _ := atom(prop, 1)
		if key == "Reference" {
			if ref, err := atom(prop, 2); err == nil && ref != "" {
				sym.Reference = ref
			}
		}
	}

	// Items directly under the symbol are common to all units and styles.
	if err := im.parseBody(sym, node, 0, 0); err != nil {
		return nil, fmt.Errorf("symbol %s: %w", name, err)
	}

	for _, sub := range findAllNodes(node, "symbol") {
		subName, err := atom(sub, 1)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: failed to read unit name: %w", name, err)
		}
		unit, convert, err := unitSuffix(subName)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", name, err)
		}
		if unit > sym.UnitCount {
			sym.UnitCount = unit
		}
		if convert > 1 {
			sym.HasConversion = true
		}
		if err := im.parseBody(sym, sub, unit, convert); err != nil {
			return nil, fmt.Errorf("symbol %s: %w", subName, err)
		}
	}

	im.log.Debug("imported symbol",
		zap.String("symbol", name),
		zap.Int("pins", len(sym.Pins())),
		zap.Int("units", sym.UnitCount))
	return sym, nil
}

// unitSuffix extracts unit and body style from a unit name like "LM358_2_1".
func unitSuffix(name string) (int, int, error) {
	parts := strings.Split(name, "_")
	if len(parts) < 3 {
		return 0, 0, fmt.Errorf("malformed unit name %q", name)
	}
	unit, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed unit number in %q: %w", name, err)
	}
	convert, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed body style in %q: %w", name, err)
	}
	return unit, convert, nil
}

func (im *Importer) parseBody(sym *libpin.Symbol, node sexp.Sexp, unit, convert int) error {
	for _, child := range elements(node) {
		if child.IsLeaf() {
			continue
		}

		var (
			item libpin.DrawItem
			err  error
		)
		switch kind := nodeName(child); kind {
		case "pin":
			item, err = parsePin(child, unit, convert)
		case "rectangle":
			item, err = parseRectangle(child, unit, convert)
		case "circle":
			item, err = parseCircle(child, unit, convert)
		case "polyline":
			item, err = parsePolyline(child, unit, convert)
		case "arc":
			item, err = parseArc(child, unit, convert)
		case "text":
			item, err = parseText(child, unit, convert)
		case "symbol", "property", "pin_names", "pin_numbers", "in_bom", "on_board",
			"exclude_from_sim", "power", "extends", "embedded_fonts", "unit_name":
			continue
		default:
			im.log.Debug("skipping unsupported node", zap.String("node", kind), zap.String("symbol", sym.Name))
			continue
		}
		if err != nil {
			return err
		}
		sym.AddItem(item)
	}
	return nil
}

func parsePin(node sexp.Sexp, unit, convert int) (*libpin.Pin, error) {
	typeName, err := atom(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read pin type: %w", err)
	}
	etype, ok := pinTypes[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown pin type %q", typeName)
	}

	styleName, err := atom(node, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to read pin style: %w", err)
	}
	shape, ok := pinStyles[styleName]
	if !ok {
		return nil, fmt.Errorf("unknown pin style %q", styleName)
	}

	p := libpin.NewPin()
	p.SetType(etype)
	p.SetShape(shape)
	p.SetUnit(unit)
	p.SetConvert(convert)
	p.SetVisible(!hidden(node))

	if at, ok := findNode(node, "at"); ok {
		x, y, err := xy(at, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to read pin position: %w", err)
		}
		p.Move(libpin.Point{X: toMils(x), Y: toMils(y)})

		angle, err := floatAt(at, 3)
		if err == nil {
			p.SetOrientation(orientationFromAngle(angle))
		}
	}

	if length, ok := findNode(node, "length"); ok {
		v, err := floatAt(length, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to read pin length: %w", err)
		}
		p.SetLength(toMils(v))
	}

	if nameNode, ok := findNode(node, "name"); ok {
		name, _ := atom(nameNode, 1)
		p.SetName(name)
		if size, ok := fontSize(nameNode); ok {
			p.SetNameTextSize(size)
		}
	}

	if numNode, ok := findNode(node, "number"); ok {
		number, _ := atom(numNode, 1)
		p.SetNumber(number)
		if size, ok := fontSize(numNode); ok {
			p.SetNumberTextSize(size)
		}
	}

	p.ClearModified()
	return p, nil
}

// orientationFromAngle maps the angle of a pin's anchor to the direction of
// its free end. A pin at 0 degrees points right.
func orientationFromAngle(deg float64) libpin.Orientation {
	a := int(math.Round(deg)) % 360
	if a < 0 {
		a += 360
	}
	switch {
	case a >= 45 && a < 135:
		return libpin.OrientUp
	case a >= 135 && a < 225:
		return libpin.OrientLeft
	case a >= 225 && a < 315:
		return libpin.OrientDown
	}
	return libpin.OrientRight
}

// fontSize reads (effects (font (size h w))) and returns the height in mils.
func fontSize(node sexp.Sexp) (int, bool) {
	effects, ok := findNode(node, "effects")
	if !ok {
		return 0, false
	}
	font, ok := findNode(effects, "font")
	if !ok {
		return 0, false
	}
	size, ok := findNode(font, "size")
	if !ok {
		return 0, false
	}
	h, err := floatAt(size, 1)
	if err != nil {
		return 0, false
	}
	return toMils(h), true
}

func parseBodyStyle(node sexp.Sexp, unit, convert int) libpin.Body {
	b := libpin.Body{Unit: unit, Convert: convert}
	if stroke, ok := findNode(node, "stroke"); ok {
		if width, ok := findNode(stroke, "width"); ok {
			if w, err := floatAt(width, 1); err == nil {
				b.Width = toMils(w)
			}
		}
	}
	if fill, ok := findNode(node, "fill"); ok {
		if typ, ok := findNode(fill, "type"); ok {
			switch v, _ := atom(typ, 1); v {
			case "outline":
				b.Fill = libpin.FillForeground
			case "background":
				b.Fill = libpin.FillBackground
			}
		}
	}
	return b
}

func pointAt(node sexp.Sexp, key string) (libpin.Point, error) {
	n, ok := findNode(node, key)
	if !ok {
		return libpin.Point{}, fmt.Errorf("missing (%s) in (%s)", key, nodeName(node))
	}
	x, y, err := xy(n, 1)
	if err != nil {
		return libpin.Point{}, err
	}
	return libpin.Point{X: toMils(x), Y: toMils(y)}, nil
}

func parseRectangle(node sexp.Sexp, unit, convert int) (*libpin.Rectangle, error) {
	start, err := pointAt(node, "start")
	if err != nil {
		return nil, err
	}
	end, err := pointAt(node, "end")
	if err != nil {
		return nil, err
	}
	return &libpin.Rectangle{Body: parseBodyStyle(node, unit, convert), Start: start, End: end}, nil
}

func parseCircle(node sexp.Sexp, unit, convert int) (*libpin.Circle, error) {
	center, err := pointAt(node, "center")
	if err != nil {
		return nil, err
	}
	radius, ok := findNode(node, "radius")
	if !ok {
		return nil, fmt.Errorf("missing (radius) in (circle)")
	}
	r, err := floatAt(radius, 1)
	if err != nil {
		return nil, err
	}
	return &libpin.Circle{Body: parseBodyStyle(node, unit, convert), Center: center, Radius: toMils(r)}, nil
}

func parsePolyline(node sexp.Sexp, unit, convert int) (*libpin.Polyline, error) {
	line := &libpin.Polyline{Body: parseBodyStyle(node, unit, convert)}
	pts, ok := findNode(node, "pts")
	if !ok {
		return line, nil
	}
	for _, pt := range findAllNodes(pts, "xy") {
		x, y, err := xy(pt, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to read polyline point: %w", err)
		}
		line.Points = append(line.Points, libpin.Point{X: toMils(x), Y: toMils(y)})
	}
	return line, nil
}

// parseArc converts the three point form (start, mid, end) to a centre,
// radius and angle pair.
func parseArc(node sexp.Sexp, unit, convert int) (*libpin.Arc, error) {
	start, err := pointAt(node, "start")
	if err != nil {
		return nil, err
	}
	mid, err := pointAt(node, "mid")
	if err != nil {
		return nil, err
	}
	end, err := pointAt(node, "end")
	if err != nil {
		return nil, err
	}

	center, ok := circumcenter(start, mid, end)
	if !ok {
		return nil, fmt.Errorf("degenerate arc through %v %v %v", start, mid, end)
	}
	arc := &libpin.Arc{
		Body:   parseBodyStyle(node, unit, convert),
		Center: center,
		Radius: int(math.Round(math.Hypot(float64(start.X-center.X), float64(start.Y-center.Y)))),
		Start:  start,
		End:    end,
	}
	arc.StartAngle = decidegrees(start.Sub(center))
	arc.EndAngle = decidegrees(end.Sub(center))
	return arc, nil
}

func circumcenter(a, b, c libpin.Point) (libpin.Point, bool) {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if d == 0 {
		return libpin.Point{}, false
	}
	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	return libpin.Point{X: int(math.Round(ux)), Y: int(math.Round(uy))}, true
}

func decidegrees(v libpin.Point) int {
	a := int(math.Round(math.Atan2(float64(v.Y), float64(v.X)) * 1800 / math.Pi))
	if a < 0 {
		a += 3600
	}
	return a
}

func parseText(node sexp.Sexp, unit, convert int) (*libpin.Text, error) {
	str, err := atom(node, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	text := &libpin.Text{Body: parseBodyStyle(node, unit, convert), Text: str}

	if at, ok := findNode(node, "at"); ok {
		x, y, err := xy(at, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to read text position: %w", err)
		}
		text.Position = libpin.Point{X: toMils(x), Y: toMils(y)}
		if angle, err := floatAt(at, 3); err == nil {
			text.Orientation = int(math.Round(angle * 10))
		}
	}
	if size, ok := fontSize(node); ok {
		text.Size = size
	}
	if effects, ok := findNode(node, "effects"); ok {
		text.Hidden = hidden(effects)
	}
	return text, nil
}
