// Package libpin models the pins of a schematic library symbol: their
// attributes, their geometry under a symbol placement, the legacy one line
// "X" record that persists them, and the group edit rules that keep pins
// shared between units and body styles consistent.
//
// # Frames
//
// Pin coordinates live in the symbol frame, where Y points up. An Up pin of
// length L at (x, y) ends at (x, y+L). Placement transforms supplied by
// callers map this frame to whatever frame they draw in; DefaultTransform
// maps it to the schematic frame, where Y points down. BoundingBox and
// Inside already work in the schematic frame.
//
// # Group edits
//
// A Symbol may hold one EditGroup, built by EnableEditMode from the pins
// sharing the target pin's position and orientation. While it is active the
// pin setters forward their change to the enrolled pins:
//
//	sym.EnableEditMode(pin, true, false)
//	pin.SetVisible(false) // every enrolled pin becomes invisible
//	sym.EnableEditMode(pin, false, false)
//
// Shape and length only reach pins of the same body style. Numbers and pen
// widths are never shared. Moving a pin to unit 0 (or convert 0) removes
// the enrolled duplicates it now stands for.
//
// # Records
//
//	X CLK ~ 0 0 300 U 50 50 1 0 I C
//
// DecodeRecord and EncodeRecord are exact inverses for every record the
// encoder produces.
package libpin
