package libpin

// NotFound is returned by catalog index lookups when a code has no entry.
const NotFound = -1

// Orientation is the direction a pin's free end points in the symbol frame.
// The underlying byte is the character persisted in pin records.
type Orientation byte

const (
	OrientRight Orientation = 'R'
	OrientLeft  Orientation = 'L'
	OrientUp    Orientation = 'U'
	OrientDown  Orientation = 'D'
)

// Shape is a bit set of pin decorations.
type Shape int

const (
	ShapeNone      Shape = 0
	ShapeInvert    Shape = 1 << 0
	ShapeClock     Shape = 1 << 1
	ShapeLowIn     Shape = 1 << 2 // active low input
	ShapeLowOut    Shape = 1 << 3 // active low output
	ShapeClockFall Shape = 1 << 4
	ShapeNonLogic  Shape = 1 << 5
)

// Has reports whether all bits of flag are set.
func (s Shape) Has(flag Shape) bool {
	return s&flag == flag
}

// ElectricalType is the electrical role of a pin.
type ElectricalType int

const (
	TypeInput ElectricalType = iota
	TypeOutput
	TypeBidirectional
	TypeTristate
	TypePassive
	TypeUnspecified
	TypePowerInput
	TypePowerOutput
	TypeOpenCollector
	TypeOpenEmitter
	TypeNotConnected
)

var orientationNames = []string{
	"Right",
	"Left",
	"Up",
	"Down",
}

var orientationCodes = []Orientation{
	OrientRight,
	OrientLeft,
	OrientUp,
	OrientDown,
}

var styleNames = []string{
	"Line",
	"Inverted",
	"Clock",
	"Inverted clock",
	"Input low",
	"Clock low",
	"Output low",
	"Falling edge clock",
	"NonLogic",
}

var styleCodes = []Shape{
	ShapeNone,
	ShapeInvert,
	ShapeClock,
	ShapeClock | ShapeInvert,
	ShapeLowIn,
	ShapeLowIn | ShapeClock,
	ShapeLowOut,
	ShapeClockFall,
	ShapeNonLogic,
}

var electricalTypeNames = []string{
	"Input",
	"Output",
	"Bidirectional",
	"Tri-state",
	"Passive",
	"Unspecified",
	"Power input",
	"Power output",
	"Open collector",
	"Open emitter",
	"Not connected",
}

// Short names, with a trailing entry for out of range values.
var electricalTypeShort = []string{
	"input",
	"output",
	"BiDi",
	"3state",
	"passive",
	"unspc",
	"power_in",
	"power_out",
	"openCol",
	"openEm",
	"NotConnected",
	"?????",
}

// Record letters. W and w differ only by case.
var electricalTypeLetters = []byte{'I', 'O', 'B', 'T', 'P', 'U', 'W', 'w', 'C', 'E', 'N'}

// OrientationNames returns the display labels in catalog order.
func OrientationNames() []string {
	return append([]string(nil), orientationNames...)
}

// OrientationCode returns the orientation at index, or OrientRight when the
// index is out of range.
func OrientationCode(index int) Orientation {
	if index >= 0 && index < len(orientationCodes) {
		return orientationCodes[index]
	}
	return OrientRight
}

// OrientationCodeIndex returns the catalog index of o, or NotFound.
func OrientationCodeIndex(o Orientation) int {
	for i, code := range orientationCodes {
		if code == o {
			return i
		}
	}
	return NotFound
}

// String returns the display label, or the raw character for codes outside
// the catalog.
func (o Orientation) String() string {
	if i := OrientationCodeIndex(o); i != NotFound {
		return orientationNames[i]
	}
	return string(rune(o))
}

// StyleNames returns the display labels of the named shape combinations.
func StyleNames() []string {
	return append([]string(nil), styleNames...)
}

// StyleCode returns the shape combination at index, or ShapeNone.
func StyleCode(index int) Shape {
	if index >= 0 && index < len(styleCodes) {
		return styleCodes[index]
	}
	return ShapeNone
}

// StyleCodeIndex returns the catalog index of a shape combination, or
// NotFound when the combination has no name.
func StyleCodeIndex(s Shape) int {
	for i, code := range styleCodes {
		if code == s {
			return i
		}
	}
	return NotFound
}

// StyleName returns the display label of s, or "" when it has none.
func StyleName(s Shape) string {
	if i := StyleCodeIndex(s); i != NotFound {
		return styleNames[i]
	}
	return ""
}

// ElectricalTypeNames returns the display labels in catalog order.
func ElectricalTypeNames() []string {
	return append([]string(nil), electricalTypeNames...)
}

// ElectricalTypeCode returns the type at index, or TypeUnspecified.
func ElectricalTypeCode(index int) ElectricalType {
	if index >= 0 && index < len(electricalTypeNames) {
		return ElectricalType(index)
	}
	return TypeUnspecified
}

// Valid reports whether t is one of the eleven catalogued types.
func (t ElectricalType) Valid() bool {
	return t >= TypeInput && t <= TypeNotConnected
}

// Label returns the display label, or "?????" for an unknown type.
func (t ElectricalType) Label() string {
	if t.Valid() {
		return electricalTypeNames[t]
	}
	return electricalTypeShort[len(electricalTypeShort)-1]
}

// String returns the short name used in listings and messages.
func (t ElectricalType) String() string {
	if t.Valid() {
		return electricalTypeShort[t]
	}
	return electricalTypeShort[len(electricalTypeShort)-1]
}

// Letter returns the record letter of t. Unknown types are persisted as
// input, matching the legacy writer.
func (t ElectricalType) Letter() byte {
	if t.Valid() {
		return electricalTypeLetters[t]
	}
	return electricalTypeLetters[TypeInput]
}

// ElectricalTypeFromLetter maps a record letter back to its type.
func ElectricalTypeFromLetter(c byte) (ElectricalType, bool) {
	for i, l := range electricalTypeLetters {
		if l == c {
			return ElectricalType(i), true
		}
	}
	return TypeUnspecified, false
}
