package symlib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/OpenTraceSym/pkg/kicad/libpin"
	"go.uber.org/zap"
)

// LegacyHeader is the first line written to a legacy .lib file.
const LegacyHeader = "EESchema-LIBRARY Version 2.3"

// Record is one drawing line of a legacy symbol.
type Record struct {
	Symbol string
	Line   int
	Text   string
}

// Tag returns the record's leading keyword, e.g. "X" for a pin.
func (r Record) Tag() string {
	if i := strings.IndexAny(r.Text, " \t"); i >= 0 {
		return r.Text[:i]
	}
	return r.Text
}

// RecordError reports a drawing line that could not be decoded.
type RecordError struct {
	Record Record
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Record.Symbol, e.Record.Line, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

type legacyEvent int

const (
	eventDef legacyEvent = iota
	eventDraw
	eventEnd
)

// scanLegacy walks a legacy library and reports DEF lines, drawing lines
// between DRAW and ENDDRAW, and ENDDEF lines. Comments and field lines are
// skipped.
func scanLegacy(r io.Reader, fn func(ev legacyEvent, rec Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var (
		symbol  string
		inDef   bool
		inDraw  bool
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch {
		case fields[0] == "DEF":
			if inDef {
				return fmt.Errorf("line %d: DEF inside %s", lineNum, symbol)
			}
			if len(fields) < 2 {
				return fmt.Errorf("line %d: DEF without a name", lineNum)
			}
			symbol = strings.TrimPrefix(fields[1], "~")
			inDef = true
			if err := fn(eventDef, Record{Symbol: symbol, Line: lineNum, Text: line}); err != nil {
				return err
			}
		case fields[0] == "ENDDEF":
			if !inDef {
				return fmt.Errorf("line %d: ENDDEF without DEF", lineNum)
			}
			if err := fn(eventEnd, Record{Symbol: symbol, Line: lineNum, Text: line}); err != nil {
				return err
			}
			inDef, inDraw, symbol = false, false, ""
		case !inDef:
			continue
		case fields[0] == "DRAW":
			inDraw = true
		case fields[0] == "ENDDRAW":
			inDraw = false
		case inDraw:
			if err := fn(eventDraw, Record{Symbol: symbol, Line: lineNum, Text: line}); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read library: %w", err)
	}
	if inDef {
		return fmt.Errorf("symbol %s: missing ENDDEF", symbol)
	}
	return nil
}

// ScanRecords calls fn for every pin record of every symbol in r.
func ScanRecords(r io.Reader, fn func(Record) error) error {
	return scanLegacy(r, func(ev legacyEvent, rec Record) error {
		if ev != eventDraw || rec.Tag() != libpin.RecordTag {
			return nil
		}
		return fn(rec)
	})
}

// LoadOptions controls LoadLegacy.
type LoadOptions struct {
	// Strict stops at the first bad record instead of skipping it.
	Strict        bool
	LineThickness int
	Logger        *zap.Logger
}

// LoadLegacy reads a legacy .lib file. Records that fail to decode are
// skipped and returned as RecordErrors unless opts.Strict is set, in which
// case the first one is returned as the error.
func LoadLegacy(r io.Reader, opts LoadOptions) ([]*libpin.Symbol, []*RecordError, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		symbols []*libpin.Symbol
		bad     []*RecordError
		current *libpin.Symbol
	)
	err := scanLegacy(r, func(ev legacyEvent, rec Record) error {
		switch ev {
		case eventDef:
			current = symbolFromDef(rec)
			current.SetLogger(log)
			if opts.LineThickness > 0 {
				current.SetLineThickness(opts.LineThickness)
			}
		case eventEnd:
			symbols = append(symbols, current)
			log.Debug("loaded symbol",
				zap.String("symbol", current.Name),
				zap.Int("pins", len(current.Pins())))
			current = nil
		case eventDraw:
			item, err := decodeDrawItem(rec.Text)
			if err != nil {
				re := &RecordError{Record: rec, Err: err}
				if opts.Strict {
					return re
				}
				log.Warn("skipping bad record",
					zap.String("symbol", rec.Symbol),
					zap.Int("line", rec.Line),
					zap.Error(err))
				bad = append(bad, re)
				return nil
			}
			if item == nil {
				return nil
			}
			if p, ok := item.(*libpin.Pin); ok {
				p.ClearModified()
			}
			current.AddItem(item)
		}
		return nil
	})
	if err != nil {
		var re *RecordError
		if errors.As(err, &re) {
			return symbols, append(bad, re), err
		}
		return symbols, bad, err
	}
	return symbols, bad, nil
}

// LoadLegacyFile opens filename and calls LoadLegacy.
func LoadLegacyFile(filename string, opts LoadOptions) ([]*libpin.Symbol, []*RecordError, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return LoadLegacy(file, opts)
}

// symbolFromDef reads "DEF name ref 0 offset drawnum drawname units locked power".
func symbolFromDef(rec Record) *libpin.Symbol {
	fields := strings.Fields(rec.Text)
	sym := libpin.NewSymbol(rec.Symbol)
	if len(fields) > 2 && fields[2] != "~" {
		sym.Reference = fields[2]
	}
	if len(fields) > 7 {
		if n, err := strconv.Atoi(fields[7]); err == nil && n > 0 {
			sym.UnitCount = n
		}
	}
	return sym
}

// WriteLegacy writes symbols as a legacy .lib file.
func WriteLegacy(w io.Writer, symbols []*libpin.Symbol) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, LegacyHeader)
	fmt.Fprintln(bw, "#encoding utf-8")

	for _, sym := range symbols {
		if err := writeSymbol(bw, sym); err != nil {
			return fmt.Errorf("symbol %s: %w", sym.Name, err)
		}
	}

	fmt.Fprintln(bw, "#")
	fmt.Fprintln(bw, "#End Library")
	return bw.Flush()
}

func writeSymbol(w io.Writer, sym *libpin.Symbol) error {
	locked := "F"
	if sym.UnitCount > 1 {
		locked = "L"
	}
	fmt.Fprintf(w, "#\n# %s\n#\n", sym.Name)
	fmt.Fprintf(w, "DEF %s %s 0 40 Y Y %d %s N\n", sym.Name, sym.Reference, sym.UnitCount, locked)
	fmt.Fprintf(w, "F0 %q 0 0 50 H V C CNN\n", sym.Reference)
	fmt.Fprintf(w, "F1 %q 0 0 50 H V C CNN\n", sym.Name)
	fmt.Fprintln(w, "DRAW")
	for _, item := range sym.Items() {
		if p, ok := item.(*libpin.Pin); ok {
			if err := libpin.WriteRecord(w, p); err != nil {
				return err
			}
			continue
		}
		line, err := encodeDrawItem(item)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	fmt.Fprintln(w, "ENDDRAW")
	_, err := fmt.Fprintln(w, "ENDDEF")
	return err
}
