package symlib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
)

func fillLetter(f libpin.FillMode) byte {
	switch f {
	case libpin.FillForeground:
		return 'F'
	case libpin.FillBackground:
		return 'f'
	}
	return 'N'
}

func fillFromLetter(s string) libpin.FillMode {
	switch s {
	case "F":
		return libpin.FillForeground
	case "f":
		return libpin.FillBackground
	}
	return libpin.FillNone
}

// encodeDrawItem formats a graphical item as a legacy drawing line.
func encodeDrawItem(item libpin.DrawItem) (string, error) {
	switch it := item.(type) {
	case *libpin.Polyline:
		var sb strings.Builder
		fmt.Fprintf(&sb, "P %d %d %d %d", len(it.Points), it.Unit, it.Convert, it.Width)
		for _, pt := range it.Points {
			fmt.Fprintf(&sb, " %d %d", pt.X, pt.Y)
		}
		fmt.Fprintf(&sb, " %c", fillLetter(it.Fill))
		return sb.String(), nil
	case *libpin.Rectangle:
		return fmt.Sprintf("S %d %d %d %d %d %d %d %c",
			it.Start.X, it.Start.Y, it.End.X, it.End.Y,
			it.Unit, it.Convert, it.Width, fillLetter(it.Fill)), nil
	case *libpin.Circle:
		return fmt.Sprintf("C %d %d %d %d %d %d %c",
			it.Center.X, it.Center.Y, it.Radius,
			it.Unit, it.Convert, it.Width, fillLetter(it.Fill)), nil
	case *libpin.Arc:
		return fmt.Sprintf("A %d %d %d %d %d %d %d %d %c %d %d %d %d",
			it.Center.X, it.Center.Y, it.Radius, it.StartAngle, it.EndAngle,
			it.Unit, it.Convert, it.Width, fillLetter(it.Fill),
			it.Start.X, it.Start.Y, it.End.X, it.End.Y), nil
	case *libpin.Text:
		hidden := 0
		if it.Hidden {
			hidden = 1
		}
		text := strings.ReplaceAll(it.Text, " ", "~")
		if text == "" {
			text = "~"
		}
		return fmt.Sprintf("T %d %d %d %d %d %d %d %s Normal 0 C C",
			it.Orientation, it.Position.X, it.Position.Y, it.Size,
			hidden, it.Unit, it.Convert, text), nil
	}
	return "", fmt.Errorf("cannot encode %s item", item.Kind())
}

// decodeDrawItem parses one drawing line. Unsupported record kinds yield a
// nil item and no error.
func decodeDrawItem(line string) (libpin.DrawItem, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	d := &drawDecoder{fields: fields}
	var item libpin.DrawItem
	switch fields[0] {
	case libpin.RecordTag:
		p, err := libpin.DecodeRecord(line)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "P":
		n := d.need(1, "point count")
		if d.err == nil && len(fields) < 5+2*n {
			return nil, fmt.Errorf("polyline has %d fields, %d points need %d", len(fields), n, 5+2*n)
		}
		l := &libpin.Polyline{Body: d.body(2)}
		for i := 0; i < n; i++ {
			l.Points = append(l.Points, d.point(5+2*i))
		}
		if len(fields) > 5+2*n {
			l.Fill = fillFromLetter(fields[5+2*n])
		}
		item = l
	case "S":
		d.require(8, "rectangle")
		item = &libpin.Rectangle{Start: d.point(1), End: d.point(3), Body: d.bodyFill(5, 8)}
	case "C":
		d.require(7, "circle")
		item = &libpin.Circle{Center: d.point(1), Radius: d.need(3, "radius"), Body: d.bodyFill(4, 7)}
	case "A":
		d.require(14, "arc")
		item = &libpin.Arc{
			Center:     d.point(1),
			Radius:     d.need(3, "radius"),
			StartAngle: d.need(4, "start angle"),
			EndAngle:   d.need(5, "end angle"),
			Body:       d.bodyFill(6, 9),
			Start:      d.point(10),
			End:        d.point(12),
		}
	case "T":
		d.require(9, "text")
		t := &libpin.Text{
			Orientation: d.need(1, "orientation"),
			Position:    d.point(2),
			Size:        d.need(4, "size"),
			Hidden:      d.need(5, "visibility") != 0,
			Body:        libpin.Body{Unit: d.need(6, "unit"), Convert: d.need(7, "convert")},
		}
		if d.err == nil {
			t.Text = legacyText(fields[8])
		}
		item = t
	default:
		return nil, nil
	}
	if d.err != nil {
		return nil, d.err
	}
	return item, nil
}

func legacyText(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	if s == "~" {
		return ""
	}
	return strings.ReplaceAll(s, "~", " ")
}

type drawDecoder struct {
	fields []string
	err    error
}

func (d *drawDecoder) require(n int, what string) {
	if d.err == nil && len(d.fields) < n {
		d.err = fmt.Errorf("%s has %d fields, need %d", what, len(d.fields), n)
	}
}

func (d *drawDecoder) need(index int, name string) int {
	if d.err != nil {
		return 0
	}
	if index >= len(d.fields) {
		d.err = fmt.Errorf("missing %s", name)
		return 0
	}
	v, err := strconv.Atoi(d.fields[index])
	if err != nil {
		d.err = fmt.Errorf("invalid %s %q: %w", name, d.fields[index], err)
		return 0
	}
	return v
}

func (d *drawDecoder) point(index int) libpin.Point {
	return libpin.Point{X: d.need(index, "x"), Y: d.need(index+1, "y")}
}

// body reads the unit, convert and width triple starting at index.
func (d *drawDecoder) body(index int) libpin.Body {
	return libpin.Body{
		Unit:    d.need(index, "unit"),
		Convert: d.need(index+1, "convert"),
		Width:   d.need(index+2, "width"),
	}
}

func (d *drawDecoder) bodyFill(index, fill int) libpin.Body {
	b := d.body(index)
	if d.err == nil && fill < len(d.fields) {
		b.Fill = fillFromLetter(d.fields[fill])
	}
	return b
}
