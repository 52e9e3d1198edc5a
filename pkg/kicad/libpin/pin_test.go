package libpin

import "testing"

func TestNewPinDefaults(t *testing.T) {
	p := NewPin()

	if p.Length() != DefaultPinLength {
		t.Errorf("Expected length %d, got %d", DefaultPinLength, p.Length())
	}
	if p.Orientation() != OrientRight {
		t.Errorf("Expected Right, got %v", p.Orientation())
	}
	if p.Type() != TypeUnspecified {
		t.Errorf("Expected unspecified type, got %v", p.Type())
	}
	if !p.IsVisible() {
		t.Error("Expected new pin to be visible")
	}
	if p.Name() != "~" || p.Number() != "~" {
		t.Errorf("Expected placeholder name and number, got %q %q", p.Name(), p.Number())
	}
	if p.NameTextSize() != DefaultTextSize || p.NumberTextSize() != DefaultTextSize {
		t.Errorf("Expected text sizes %d, got %d/%d", DefaultTextSize, p.NameTextSize(), p.NumberTextSize())
	}
	if p.IsModified() {
		t.Error("Expected fresh pin to be unmodified")
	}
}

func TestNameNumberCoercion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "~"},
		{"CLK", "CLK"},
		{"DATA IN", "DATA_IN"},
		{" a b ", "_a_b_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p := NewPin()
			p.SetName("x")
			p.SetName(tt.in)
			if p.Name() != tt.want {
				t.Errorf("Name: expected %q, got %q", tt.want, p.Name())
			}
		})
	}

	p := NewPin()
	p.SetNumber("1")
	p.SetNumber("")
	if p.Number() != "~" {
		t.Errorf("Expected empty number to become ~, got %q", p.Number())
	}
	p.SetNumber("A 1")
	if p.Number() != "A_1" {
		t.Errorf("Expected A_1, got %q", p.Number())
	}
}

func TestSetterNoOpDoesNotMarkModified(t *testing.T) {
	p := NewPin()
	p.SetName("")
	p.SetLength(DefaultPinLength)
	p.SetVisible(true)
	p.SetOrientation(OrientRight)
	p.SetShape(ShapeNone)
	p.SetNumber("~")
	if p.IsModified() {
		t.Error("Expected unchanged values to leave the pin unmodified")
	}

	p.SetLength(200)
	if !p.IsModified() {
		t.Error("Expected change to mark the pin modified")
	}
	p.ClearModified()
	if p.IsModified() {
		t.Error("Expected ClearModified to reset the flag")
	}
}

func TestSetLengthClampsNegative(t *testing.T) {
	p := NewPin()
	p.SetLength(-50)
	if p.Length() != 0 {
		t.Errorf("Expected length 0, got %d", p.Length())
	}
}

func TestPenSize(t *testing.T) {
	p := NewPin()
	if p.PenSize() != DefaultLineThickness {
		t.Errorf("Expected default pen %d, got %d", DefaultLineThickness, p.PenSize())
	}

	sym := NewSymbol("U")
	sym.SetLineThickness(10)
	sym.AddPin(p)
	if p.PenSize() != 10 {
		t.Errorf("Expected symbol pen 10, got %d", p.PenSize())
	}

	p.SetWidth(4)
	if p.PenSize() != 4 {
		t.Errorf("Expected own pen 4, got %d", p.PenSize())
	}
}

func TestCloneIsDetached(t *testing.T) {
	sym := NewSymbol("U")
	p := sym.AddPin(NewPin())
	p.SetName("RST")

	c := p.Clone()
	if c.Parent() != nil {
		t.Error("Expected clone to have no parent")
	}
	if c.Name() != "RST" {
		t.Errorf("Expected cloned name RST, got %q", c.Name())
	}
	c.SetName("NRST")
	if p.Name() != "RST" {
		t.Error("Clone edits leaked into the original")
	}
}

func TestCompare(t *testing.T) {
	a := NewPin()
	a.SetNumber("1")
	a.SetName("a")
	b := a.Clone()
	b.SetName("B")

	if a.Compare(b) >= 0 {
		t.Error("Expected a < B ignoring case")
	}
	b.SetName("A")
	if a.Compare(b) != 0 {
		t.Error("Expected names to compare equal ignoring case")
	}
	b.Move(Point{10, 0})
	if a.Compare(b) >= 0 {
		t.Error("Expected position to break the tie")
	}

	c := a.Clone()
	c.SetNumber("2")
	if a.Compare(c) >= 0 {
		t.Error("Expected number to order first")
	}
}

func TestInfo(t *testing.T) {
	p := NewPin()
	p.SetName("CLK")
	p.SetNumber("3")
	p.SetType(TypeInput)
	p.SetShape(ShapeClock | ShapeInvert)
	p.SetVisible(false)
	p.SetOrientation(OrientUp)

	want := map[string]string{
		"Name":        "CLK",
		"Number":      "3",
		"Type":        "Input",
		"Style":       "Inverted clock",
		"Visible":     "No",
		"Length":      "300",
		"Orientation": "Up",
	}

	info := p.Info()
	if len(info) != len(want) {
		t.Fatalf("Expected %d info items, got %d", len(want), len(info))
	}
	for _, item := range info {
		if want[item.Label] != item.Value {
			t.Errorf("%s: expected %q, got %q", item.Label, want[item.Label], item.Value)
		}
	}

	var zero Pin
	for _, item := range zero.Info() {
		if item.Label == "Number" && item.Value != "?" {
			t.Errorf("Expected ? for an unset number, got %q", item.Value)
		}
	}
}
