package libpin

import "testing"

func TestOrientationCatalog(t *testing.T) {
	names := OrientationNames()
	if len(names) != 4 {
		t.Fatalf("Expected 4 orientation names, got %d", len(names))
	}

	for i := range names {
		code := OrientationCode(i)
		if got := OrientationCodeIndex(code); got != i {
			t.Errorf("OrientationCodeIndex(%c) = %d, want %d", code, got, i)
		}
		if code.String() != names[i] {
			t.Errorf("Expected label %q, got %q", names[i], code.String())
		}
	}

	if got := OrientationCode(7); got != OrientRight {
		t.Errorf("Expected out of range index to give Right, got %c", got)
	}
	if got := OrientationCodeIndex('Q'); got != NotFound {
		t.Errorf("Expected NotFound for unknown orientation, got %d", got)
	}
}

func TestStyleCatalog(t *testing.T) {
	tests := []struct {
		shape Shape
		name  string
	}{
		{ShapeNone, "Line"},
		{ShapeInvert, "Inverted"},
		{ShapeClock, "Clock"},
		{ShapeClock | ShapeInvert, "Inverted clock"},
		{ShapeLowIn, "Input low"},
		{ShapeLowIn | ShapeClock, "Clock low"},
		{ShapeLowOut, "Output low"},
		{ShapeClockFall, "Falling edge clock"},
		{ShapeNonLogic, "NonLogic"},
	}

	if len(StyleNames()) != len(tests) {
		t.Fatalf("Expected %d style names, got %d", len(tests), len(StyleNames()))
	}

	for i, tt := range tests {
		if got := StyleCode(i); got != tt.shape {
			t.Errorf("StyleCode(%d) = %v, want %v", i, got, tt.shape)
		}
		if got := StyleCodeIndex(tt.shape); got != i {
			t.Errorf("StyleCodeIndex(%v) = %d, want %d", tt.shape, got, i)
		}
		if got := StyleName(tt.shape); got != tt.name {
			t.Errorf("StyleName(%v) = %q, want %q", tt.shape, got, tt.name)
		}
	}

	// Unnamed combinations are legal shapes but have no catalog entry.
	odd := ShapeNonLogic | ShapeInvert
	if got := StyleCodeIndex(odd); got != NotFound {
		t.Errorf("Expected NotFound for %v, got %d", odd, got)
	}
	if got := StyleCode(-1); got != ShapeNone {
		t.Errorf("Expected ShapeNone for negative index, got %v", got)
	}
}

func TestElectricalTypeLetters(t *testing.T) {
	letters := "IOBTPUWwCEN"
	if len(ElectricalTypeNames()) != len(letters) {
		t.Fatalf("Expected %d type names, got %d", len(letters), len(ElectricalTypeNames()))
	}

	for i := 0; i < len(letters); i++ {
		et := ElectricalTypeCode(i)
		if et.Letter() != letters[i] {
			t.Errorf("Type %d: expected letter %c, got %c", i, letters[i], et.Letter())
		}
		back, ok := ElectricalTypeFromLetter(letters[i])
		if !ok || back != et {
			t.Errorf("ElectricalTypeFromLetter(%c) = %v, %v", letters[i], back, ok)
		}
	}

	if _, ok := ElectricalTypeFromLetter('Q'); ok {
		t.Error("Expected Q to be rejected")
	}
	if TypePowerInput.Letter() == TypePowerOutput.Letter() {
		t.Error("Power input and output must have distinct letters")
	}
}

func TestElectricalTypeLabels(t *testing.T) {
	if TypeTristate.Label() != "Tri-state" {
		t.Errorf("Expected 'Tri-state', got %q", TypeTristate.Label())
	}
	if TypeOpenCollector.String() != "openCol" {
		t.Errorf("Expected 'openCol', got %q", TypeOpenCollector.String())
	}

	unknown := ElectricalType(42)
	if unknown.Label() != "?????" || unknown.String() != "?????" {
		t.Errorf("Expected ????? for unknown type, got %q / %q", unknown.Label(), unknown.String())
	}
	if unknown.Letter() != 'I' {
		t.Errorf("Expected unknown type to persist as I, got %c", unknown.Letter())
	}
	if got := ElectricalTypeCode(99); got != TypeUnspecified {
		t.Errorf("Expected out of range index to give Unspecified, got %v", got)
	}
}
