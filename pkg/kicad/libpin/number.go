package libpin

import "bytes"

// PinNumberSize is the capacity of a pin number in bytes.
const PinNumberSize = 4

// PinNumber holds up to four bytes of pin number text. Unused slots are
// zero; a zero buffer prints as "~".
type PinNumber [PinNumberSize]byte

// NewPinNumber copies at most four bytes of s. Longer input is truncated.
func NewPinNumber(s string) PinNumber {
	var n PinNumber
	copy(n[:], s)
	return n
}

// String returns the number without padding, or "~" when it is empty.
func (n PinNumber) String() string {
	s := n.raw()
	if s == "" {
		return "~"
	}
	return s
}

// IsZero reports whether no byte is set.
func (n PinNumber) IsZero() bool {
	return n == PinNumber{}
}

// Compare orders numbers by their packed bytes.
func (n PinNumber) Compare(other PinNumber) int {
	return bytes.Compare(n[:], other[:])
}

func (n PinNumber) raw() string {
	if i := bytes.IndexByte(n[:], 0); i >= 0 {
		return string(n[:i])
	}
	return string(n[:])
}
