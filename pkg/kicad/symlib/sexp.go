package symlib

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/chewxy/sexp"
)

// mmPerMil converts KiCad 6+ millimetres to legacy mils.
const mmPerMil = 0.0254

// elements returns the members of a list node, or nil for an atom.
func elements(s sexp.Sexp) []sexp.Sexp {
	if s == nil || s.IsLeaf() {
		return nil
	}
	var out []sexp.Sexp
	for cur := s; cur != nil && !cur.IsLeaf() && cur.LeafCount() > 0; cur = cur.Tail() {
		head := cur.Head()
		if head == nil {
			break
		}
		out = append(out, head)
	}
	return out
}

// nodeName returns the keyword of a list node such as (pin ...).
func nodeName(s sexp.Sexp) string {
	items := elements(s)
	if len(items) == 0 || !items[0].IsLeaf() {
		return ""
	}
	return fmt.Sprint(items[0])
}

// findNode returns the first direct child list named key.
func findNode(s sexp.Sexp, key string) (sexp.Sexp, bool) {
	for _, child := range elements(s) {
		if !child.IsLeaf() && nodeName(child) == key {
			return child, true
		}
	}
	return nil, false
}

// findAllNodes returns every direct child list named key.
func findAllNodes(s sexp.Sexp, key string) []sexp.Sexp {
	var out []sexp.Sexp
	for _, child := range elements(s) {
		if !child.IsLeaf() && nodeName(child) == key {
			out = append(out, child)
		}
	}
	return out
}

// atom returns the unquoted atom at index in a list node.
func atom(s sexp.Sexp, index int) (string, error) {
	items := elements(s)
	if index >= len(items) {
		return "", fmt.Errorf("index %d out of range in (%s)", index, nodeName(s))
	}
	if !items[index].IsLeaf() {
		return "", fmt.Errorf("element %d of (%s) is a list", index, nodeName(s))
	}
	return unquote(fmt.Sprint(items[index])), nil
}

func floatAt(s sexp.Sexp, index int) (float64, error) {
	str, err := atom(s, index)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q in (%s): %w", str, nodeName(s), err)
	}
	return v, nil
}

// hasAtom reports whether a bare atom equal to name appears in the node.
func hasAtom(s sexp.Sexp, name string) bool {
	for _, child := range elements(s) {
		if child.IsLeaf() && unquote(fmt.Sprint(child)) == name {
			return true
		}
	}
	return false
}

// hidden handles both the bare "hide" atom and the (hide yes) form.
func hidden(s sexp.Sexp) bool {
	if hasAtom(s, "hide") {
		return true
	}
	if node, ok := findNode(s, "hide"); ok {
		v, err := atom(node, 1)
		return err != nil || v == "yes"
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return strings.Trim(s, `"`)
	}
	return s
}

// toMils converts millimetres to the nearest mil.
func toMils(mm float64) int {
	return int(math.Round(mm / mmPerMil))
}

// xy reads two coordinates starting at index.
func xy(s sexp.Sexp, index int) (float64, float64, error) {
	x, err := floatAt(s, index)
	if err != nil {
		return 0, 0, err
	}
	y, err := floatAt(s, index+1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
