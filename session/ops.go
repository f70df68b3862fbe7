package session

import (
	"lcdcal/geometry"
	"lcdcal/input"
)

// Result reports what an edit operation did to the state.
type Result struct {
	Changed bool
	Clamped bool
}

var noChange = Result{}

func (s *State) accept(b geometry.Bounds) Result {
	clamped := false
	s.Bounds, clamped = geometry.Clamp(s.Surface(), b)
	s.Unsaved = true
	return Result{Changed: true, Clamped: clamped}
}

// AdjustEdge moves one edge of the usable area by a single pixel. Up and
// Down expand and contract the top edge; Left and Right expand and contract
// the left edge. The opposite edges stay put, so contracting shifts the
// origin inward while shrinking the matching dimension.
func (s *State) AdjustEdge(dir input.Direction) (Result, error) {
	if !s.Bounds.IsSet() {
		return noChange, ErrBoundsNotSet
	}
	b := s.Bounds
	switch dir {
	case input.Up:
		if b.Y <= 0 {
			return noChange, ErrAtSurfaceEdge
		}
		b.Y--
		b.Height++
	case input.Down:
		if b.Height <= geometry.MinDimension {
			return noChange, ErrMinimumSize
		}
		b.Y++
		b.Height--
	case input.Left:
		if b.X <= 0 {
			return noChange, ErrAtSurfaceEdge
		}
		b.X--
		b.Width++
	case input.Right:
		if b.Width <= geometry.MinDimension {
			return noChange, ErrMinimumSize
		}
		b.X++
		b.Width--
	default:
		return noChange, nil
	}
	return s.accept(b), nil
}

// MoveFrame translates the whole usable area one pixel without resizing it.
func (s *State) MoveFrame(dir input.Direction) (Result, error) {
	if !s.Bounds.IsSet() {
		return noChange, ErrBoundsNotSet
	}
	surf := s.Surface()
	b := s.Bounds
	switch dir {
	case input.Up:
		if b.Y <= 0 {
			return noChange, ErrAtSurfaceEdge
		}
		b.Y--
	case input.Down:
		if b.Y+b.Height >= surf.Height {
			return noChange, ErrAtSurfaceEdge
		}
		b.Y++
	case input.Left:
		if b.X <= 0 {
			return noChange, ErrAtSurfaceEdge
		}
		b.X--
	case input.Right:
		if b.X+b.Width >= surf.Width {
			return noChange, ErrAtSurfaceEdge
		}
		b.X++
	default:
		return noChange, nil
	}
	return s.accept(b), nil
}

// AdjustThickness steps the frame thickness. At either limit the press is a
// silent no-op rather than an error; Left and Right do nothing in this mode.
func (s *State) AdjustThickness(dir input.Direction) Result {
	switch dir {
	case input.Up:
		if s.Thickness >= MaxThickness {
			return noChange
		}
		s.Thickness++
	case input.Down:
		if s.Thickness <= MinThickness {
			return noChange
		}
		s.Thickness--
	default:
		return noChange
	}
	s.Unsaved = true
	return Result{Changed: true}
}

// Rotate advances the rotation one step clockwise (Right) or
// counter-clockwise (Left). Rotation invalidates the usable bounds, which
// revert to unset and must be re-established before further edits.
func (s *State) Rotate(dir input.Direction) Result {
	switch dir {
	case input.Right:
		return s.setRotation(s.Rotation.CW())
	case input.Left:
		return s.setRotation(s.Rotation.CCW())
	default:
		return noChange
	}
}

// SetRotation applies an absolute rotation, resetting the usable bounds.
func (s *State) SetRotation(r geometry.Rotation) Result {
	if !r.Valid() {
		return noChange
	}
	return s.setRotation(r)
}

func (s *State) setRotation(r geometry.Rotation) Result {
	s.Rotation = r
	s.Bounds = geometry.Bounds{}
	s.Unsaved = true
	return Result{Changed: true}
}

// SetBounds replaces the usable area with explicit inclusive edges, clamped
// to the active surface.
func (s *State) SetBounds(left, right, top, bottom int) (Result, error) {
	if right < left || bottom < top {
		return noChange, ErrMalformedInput
	}
	return s.accept(geometry.FromEdges(left, right, top, bottom)), nil
}
