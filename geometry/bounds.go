package geometry

// MinDimension is the smallest usable width or height the calibration will
// accept. Anything narrower is useless as a drawing area and almost always
// means the operator overshot while contracting an edge.
const MinDimension = 10

// Surface is the addressable pixel space of a panel for the active rotation.
type Surface struct {
	Width  int
	Height int
}

// Bounds is the calibrated usable sub-rectangle, in Surface coordinates.
// The zero value (or any zero width/height) is the sentinel "unset" state,
// meaning no calibration has been performed for the current rotation.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsSet reports whether the bounds describe an actual rectangle rather than
// the unset sentinel.
func (b Bounds) IsSet() bool {
	return b.Width > 0 && b.Height > 0
}

// Right returns the inclusive right edge coordinate.
func (b Bounds) Right() int {
	return b.X + b.Width - 1
}

// Bottom returns the inclusive bottom edge coordinate.
func (b Bounds) Bottom() int {
	return b.Y + b.Height - 1
}

// Center returns the center point using floor division, matching the
// convention that exported records and on-panel markers rely on.
func (b Bounds) Center() (cx, cy int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// FromEdges builds bounds from inclusive edge coordinates, the form used by
// the legacy "bounds L,R,T,B" command and by exported records.
func FromEdges(left, right, top, bottom int) Bounds {
	return Bounds{
		X:      left,
		Y:      top,
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}
}

// Clamp forces bounds back inside the surface and above the minimum size.
// It reports whether any field had to change. The steps run in a fixed
// order; later steps can re-violate what earlier steps fixed, so the final
// shrink re-checks the surface edge after the minimum-size raise.
//
// Clamp is pure and idempotent: applying it to its own output changes
// nothing.
func Clamp(s Surface, b Bounds) (Bounds, bool) {
	orig := b

	// Origin inside the surface.
	if b.X < 0 {
		b.X = 0
	}
	if b.Y < 0 {
		b.Y = 0
	}
	if b.X >= s.Width {
		b.X = s.Width - 1
	}
	if b.Y >= s.Height {
		b.Y = s.Height - 1
	}

	// Size cannot extend past the surface from the (clamped) origin.
	if b.Width > s.Width-b.X {
		b.Width = s.Width - b.X
	}
	if b.Height > s.Height-b.Y {
		b.Height = s.Height - b.Y
	}

	// Minimum usable size.
	if b.Width < MinDimension {
		b.Width = MinDimension
	}
	if b.Height < MinDimension {
		b.Height = MinDimension
	}

	// The raise above may have pushed the rectangle past the surface again.
	if b.X+b.Width > s.Width {
		b.Width = s.Width - b.X
	}
	if b.Y+b.Height > s.Height {
		b.Height = s.Height - b.Y
	}

	return b, b != orig
}
