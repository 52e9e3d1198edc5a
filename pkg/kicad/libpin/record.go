package libpin

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RecordTag starts every pin record.
const RecordTag = "X"

// minRecordFields is the number of fields required after the tag.
const minRecordFields = 11

// Attribute letters, in the order they are written.
var attributeLetters = []struct {
	letter byte
	shape  Shape
}{
	{'I', ShapeInvert},
	{'C', ShapeClock},
	{'L', ShapeLowIn},
	{'V', ShapeLowOut},
	{'F', ShapeClockFall},
	{'X', ShapeNonLogic},
}

const invisibleLetter = 'N'

// EncodeRecord returns the single line record of p, without a trailing
// newline:
//
//	X name number x y length orient numSize nameSize unit convert type [flags]
func EncodeRecord(p *Pin) string {
	var b strings.Builder

	name := p.name
	if name == "" {
		name = Placeholder
	}

	fmt.Fprintf(&b, "%s %s %s %d %d %d %c %d %d %d %d %c",
		RecordTag, name, p.number.String(),
		p.position.X, p.position.Y, p.length, byte(p.orientation),
		p.numSize, p.nameSize, p.unit, p.convert, p.etype.Letter())

	if p.shape == ShapeNone && p.visible {
		return b.String()
	}

	b.WriteByte(' ')
	if !p.visible {
		b.WriteByte(invisibleLetter)
	}
	for _, a := range attributeLetters {
		if p.shape&a.shape != 0 {
			b.WriteByte(a.letter)
		}
	}
	return b.String()
}

// WriteRecord writes the record of p followed by a newline.
func WriteRecord(w io.Writer, p *Pin) error {
	if _, err := io.WriteString(w, EncodeRecord(p)+"\n"); err != nil {
		return fmt.Errorf("failed to write pin record: %w", err)
	}
	return nil
}

// DecodeRecord parses one pin record into a detached pin. Any malformed
// record yields a *FormatError and a nil pin.
func DecodeRecord(line string) (*Pin, error) {
	fields, err := splitFields(line)
	if err != nil {
		return nil, &FormatError{Record: line, Err: err}
	}
	if len(fields) == 0 || fields[0].value != RecordTag {
		return nil, &FormatError{Kind: ErrNotPinRecord, Record: line}
	}
	fields = fields[1:]

	if len(fields) < minRecordFields {
		return nil, &FormatError{Kind: ErrTooFewFields, Record: line, Fields: len(fields)}
	}

	d := recordDecoder{line: line, fields: fields}
	p := &Pin{
		visible: true,
		name:    fields[0].value,
		number:  NewPinNumber(fields[1].value),
	}
	p.position.X = d.intAt(2, "x")
	p.position.Y = d.intAt(3, "y")
	p.length = d.intAt(4, "length")
	p.orientation = Orientation(fields[5].value[0])
	p.numSize = d.intAt(6, "number size")
	p.nameSize = d.intAt(7, "name size")
	p.unit = d.intAt(8, "unit")
	p.convert = d.intAt(9, "convert")
	if d.err != nil {
		return nil, d.err
	}

	typeField := fields[10]
	etype, ok := ElectricalTypeFromLetter(typeField.value[0])
	if !ok {
		return nil, &FormatError{
			Kind:   ErrUnknownType,
			Record: line,
			Fields: len(fields),
			Field:  "type",
			Letter: typeField.value[0],
			Column: typeField.column,
		}
	}
	p.etype = etype

	if len(fields) > minRecordFields {
		attrs := fields[minRecordFields]
		if err := decodeAttributes(p, attrs.value); err != nil {
			err.Record = line
			err.Fields = len(fields)
			err.Column = attrs.column
			return nil, err
		}
	}

	return p, nil
}

func decodeAttributes(p *Pin, attrs string) *FormatError {
	for i := len(attrs) - 1; i >= 0; i-- {
		c := attrs[i]
		switch c {
		case '~':
		case invisibleLetter:
			p.visible = false
		default:
			shape, ok := shapeForLetter(c)
			if !ok {
				return &FormatError{Kind: ErrUnknownAttribute, Field: "attributes", Letter: c}
			}
			p.shape |= shape
		}
	}
	return nil
}

func shapeForLetter(c byte) (Shape, bool) {
	for _, a := range attributeLetters {
		if a.letter == c {
			return a.shape, true
		}
	}
	return ShapeNone, false
}

// recordDecoder keeps the first numeric error so field parsing reads as a
// straight sequence.
type recordDecoder struct {
	line   string
	fields []field
	err    *FormatError
}

func (d *recordDecoder) intAt(index int, name string) int {
	if d.err != nil {
		return 0
	}
	f := d.fields[index]
	v, err := strconv.Atoi(f.value)
	if err != nil {
		d.err = &FormatError{
			Kind:   ErrBadField,
			Record: d.line,
			Fields: len(d.fields),
			Field:  name,
			Column: f.column,
			Err:    err,
		}
		return 0
	}
	return v
}
