package symlib

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"gopkg.in/d4l3k/messagediff.v1"
)

const legacyLib = `EESchema-LIBRARY Version 2.3
#encoding utf-8
#
# 74LS74
#
DEF 74LS74 U 0 40 Y Y 2 L N
F0 "U" 0 0 50 H V C CNN
F1 "74LS74" 0 -100 50 H V C CNN
DRAW
S -200 200 200 -200 0 1 10 f
X D 2 -400 100 200 R 50 50 1 1 I
X CLK 3 -400 0 200 R 50 50 1 1 I C
X Q 5 400 100 200 L 50 50 1 1 O
X D 12 -400 100 200 R 50 50 2 1 I
X VCC 14 0 400 200 D 50 50 0 0 W N
ENDDRAW
ENDDEF
#
# R
#
DEF ~R R 0 0 N Y 1 F N
DRAW
P 2 0 1 0 0 100 0 -100 N
T 0 0 0 50 0 0 0 ohm Normal 0 C C
A 0 0 100 0 1800 0 1 0 N 100 0 -100 0
C 0 0 25 0 1 0 F
X ~ 1 0 150 50 D 50 50 1 1 P
X ~ 2 0 -150 50 U 50 50 1 1 P
ENDDRAW
ENDDEF
#
#End Library
`

func TestScanRecords(t *testing.T) {
	var got []Record
	err := ScanRecords(strings.NewReader(legacyLib), func(r Record) error {
		got = append(got, r)
		return nil
	})
	if err != nil {
		t.Fatalf("ScanRecords failed: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("Expected 7 pin records, got %d", len(got))
	}

	want := Record{Symbol: "74LS74", Line: 12, Text: "X CLK 3 -400 0 200 R 50 50 1 1 I C"}
	if diff, equal := messagediff.PrettyDiff(want, got[1]); !equal {
		t.Errorf("Unexpected record:\n%s", diff)
	}
	if got[6].Symbol != "R" {
		t.Errorf("Expected hidden-value prefix to be stripped, got %q", got[6].Symbol)
	}
}

func TestScanRecordsStopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ScanRecords(strings.NewReader(legacyLib), func(Record) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestScanRecordsStructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing enddef", "DEF A U 0 40 Y Y 1 F N\nDRAW\nENDDRAW\n"},
		{"stray enddef", "ENDDEF\n"},
		{"nested def", "DEF A U 0 40 Y Y 1 F N\nDEF B U 0 40 Y Y 1 F N\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ScanRecords(strings.NewReader(tt.input), func(Record) error { return nil })
			if err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadLegacy(t *testing.T) {
	symbols, bad, err := LoadLegacy(strings.NewReader(legacyLib), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadLegacy failed: %v", err)
	}
	if len(bad) != 0 {
		t.Errorf("Expected no bad records, got %v", bad)
	}
	if len(symbols) != 2 {
		t.Fatalf("Expected 2 symbols, got %d", len(symbols))
	}

	ff := symbols[0]
	if ff.UnitCount != 2 {
		t.Errorf("Expected 2 units, got %d", ff.UnitCount)
	}
	if n := len(ff.PinsFor(1, 1)); n != 4 {
		t.Errorf("Expected 4 pins in unit 1, got %d", n)
	}
	for _, p := range ff.Pins() {
		if p.Parent() != ff {
			t.Errorf("Pin %s not attached", p.Number())
		}
		if p.IsModified() {
			t.Errorf("Pin %s marked modified after load", p.Number())
		}
	}

	r := symbols[1]
	if r.Name != "R" || r.Reference != "R" {
		t.Errorf("Expected R/R, got %s/%s", r.Name, r.Reference)
	}
	kinds := map[libpin.ItemKind]int{}
	for _, item := range r.Items() {
		kinds[item.Kind()]++
	}
	want := map[libpin.ItemKind]int{
		libpin.KindPolyline: 1,
		libpin.KindText:     1,
		libpin.KindArc:      1,
		libpin.KindCircle:   1,
		libpin.KindPin:      2,
	}
	if diff, equal := messagediff.PrettyDiff(want, kinds); !equal {
		t.Errorf("Unexpected item kinds:\n%s", diff)
	}
}

const brokenLib = `DEF BAD U 0 40 Y Y 1 F N
DRAW
X A 1 0 0 100 R 50 50 0 0 I
X B 2 0 0 100 R 50 50 0 0 Q
X C 3 0 0
X D 4 0 0 100 R 50 50 0 0 O
ENDDRAW
ENDDEF
`

func TestLoadLegacyLenient(t *testing.T) {
	symbols, bad, err := LoadLegacy(strings.NewReader(brokenLib), LoadOptions{})
	if err != nil {
		t.Fatalf("Expected lenient load to succeed, got %v", err)
	}
	if n := len(symbols[0].Pins()); n != 2 {
		t.Errorf("Expected 2 good pins, got %d", n)
	}
	if len(bad) != 2 {
		t.Fatalf("Expected 2 bad records, got %d", len(bad))
	}
	if !errors.Is(bad[0], libpin.ErrUnknownType) {
		t.Errorf("Expected unknown type, got %v", bad[0])
	}
	if !errors.Is(bad[1], libpin.ErrTooFewFields) {
		t.Errorf("Expected too few fields, got %v", bad[1])
	}
	if bad[1].Record.Line != 5 {
		t.Errorf("Expected line 5, got %d", bad[1].Record.Line)
	}
}

func TestLoadLegacyStrict(t *testing.T) {
	_, bad, err := LoadLegacy(strings.NewReader(brokenLib), LoadOptions{Strict: true})
	if !errors.Is(err, libpin.ErrUnknownType) {
		t.Fatalf("Expected unknown type error, got %v", err)
	}
	var re *RecordError
	if !errors.As(err, &re) || re.Record.Line != 4 {
		t.Errorf("Expected RecordError at line 4, got %v", err)
	}
	if len(bad) != 1 {
		t.Errorf("Expected the failing record to be reported, got %d", len(bad))
	}
}

func TestWriteLegacyRoundTrip(t *testing.T) {
	symbols, _, err := LoadLegacy(strings.NewReader(legacyLib), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadLegacy failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteLegacy(&buf, symbols); err != nil {
		t.Fatalf("WriteLegacy failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), LegacyHeader+"\n") {
		t.Errorf("Missing header in %q", buf.String())
	}

	again, bad, err := LoadLegacy(&buf, LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("Reloading written library failed: %v", err)
	}
	if len(bad) != 0 || len(again) != len(symbols) {
		t.Fatalf("Expected %d symbols, got %d (%d bad)", len(symbols), len(again), len(bad))
	}

	for i := range symbols {
		before, after := symbols[i].Items(), again[i].Items()
		if len(before) != len(after) {
			t.Fatalf("%s: expected %d items, got %d", symbols[i].Name, len(before), len(after))
		}
		for j := range before {
			a, _ := encodeLine(before[j])
			b, _ := encodeLine(after[j])
			if a != b {
				t.Errorf("%s item %d: %q != %q", symbols[i].Name, j, a, b)
			}
		}
	}
}

func encodeLine(item libpin.DrawItem) (string, error) {
	if p, ok := item.(*libpin.Pin); ok {
		return libpin.EncodeRecord(p), nil
	}
	return encodeDrawItem(item)
}

func TestDecodeDrawItemErrors(t *testing.T) {
	tests := []string{
		"S -200 200 200",
		"C 0 0 r 0 1 0 F",
		"P 3 0 1 0 0 100 0 -100 N",
		"A 0 0 100 0 1800 0 1 0 N 100 0",
	}
	for _, line := range tests {
		if _, err := decodeDrawItem(line); err == nil {
			t.Errorf("Expected error for %q", line)
		}
	}

	item, err := decodeDrawItem("B 4 0 1 0 0 0 10 10 20 10 30 0 N")
	if item != nil || err != nil {
		t.Errorf("Expected unsupported records to be ignored, got %v, %v", item, err)
	}
}
