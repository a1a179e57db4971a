package layout

import "strings"

// Align is a bitmask positioning something inside a larger area. Left and
// Right are mutually exclusive, as are Top and Bottom; a missing horizontal
// or vertical bit means centered on that axis.
type Align uint8

const (
	Center Align = 1 << iota
	Top
	Bottom
	Left
	Right

	TopLeft     = Top | Left
	TopRight    = Top | Right
	BottomLeft  = Bottom | Left
	BottomRight = Bottom | Right
)

// Horizontal reports whether the alignment is left, right or centered
// horizontally, as -1, 1 or 0.
func (a Align) Horizontal() int {
	switch {
	case a&Left != 0:
		return -1
	case a&Right != 0:
		return 1
	}
	return 0
}

// Vertical reports whether the alignment is top, bottom or centered
// vertically, as -1, 1 or 0.
func (a Align) Vertical() int {
	switch {
	case a&Top != 0:
		return -1
	case a&Bottom != 0:
		return 1
	}
	return 0
}

// offsetX returns where a span of size starts within space.
func (a Align) offsetX(space, size float64) float64 {
	switch a.Horizontal() {
	case -1:
		return 0
	case 1:
		return space - size
	}
	return (space - size) / 2
}

func (a Align) offsetY(space, size float64) float64 {
	switch a.Vertical() {
	case -1:
		return 0
	case 1:
		return space - size
	}
	return (space - size) / 2
}

func (a Align) String() string {
	var parts []string
	switch a.Vertical() {
	case -1:
		parts = append(parts, "top")
	case 1:
		parts = append(parts, "bottom")
	}
	switch a.Horizontal() {
	case -1:
		parts = append(parts, "left")
	case 1:
		parts = append(parts, "right")
	}
	if len(parts) == 0 {
		return "center"
	}
	return strings.Join(parts, ",")
}
