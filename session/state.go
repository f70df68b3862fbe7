package session

import (
	"errors"
	"fmt"

	"lcdcal/geometry"
)

// Guard and precondition errors. Guards mean "valid request, currently
// disallowed": state is untouched and the session keeps going.
var (
	ErrBoundsNotSet     = errors.New("usable bounds not set")
	ErrMinimumSize      = fmt.Errorf("usable area cannot shrink below %dpx", geometry.MinDimension)
	ErrAtSurfaceEdge    = errors.New("already at surface edge")
	ErrMalformedInput   = errors.New("malformed command")
	ErrIdentityRequired = errors.New("device name cannot be empty")
	ErrAborted          = errors.New("calibration aborted")
)

// Thickness limits for the calibration frame.
const (
	MinThickness = 1
	MaxThickness = 5
)

// DefaultThickness is the frame thickness a fresh session starts with.
const DefaultThickness = 2

// Snapshot is the set of calibration fields captured at the last save, used
// to tell whether the operator would lose work by exiting.
type Snapshot struct {
	Rotation  geometry.Rotation
	Bounds    geometry.Bounds
	Thickness int
}

// State is the complete calibration session state. It is owned by exactly
// one processing loop; nothing here locks.
type State struct {
	Name      string
	Published geometry.Surface
	Rotation  geometry.Rotation
	Bounds    geometry.Bounds
	Thickness int
	Mode      Mode

	Unsaved   bool
	EverSaved bool
	LastSaved Snapshot
}

// NewState creates a session for the named device. The name is the device
// identity and must not be empty; bounds start unset until the bootstrap
// seeds them from the published dimensions.
func NewState(name string, published geometry.Surface, rotation geometry.Rotation) (*State, error) {
	if name == "" {
		return nil, ErrIdentityRequired
	}
	s := &State{
		Name:      name,
		Published: published,
		Rotation:  rotation,
		Thickness: DefaultThickness,
		Mode:      ModeNone,
	}
	s.LastSaved = s.snapshot()
	return s, nil
}

// Surface returns the addressable surface for the active rotation.
func (s *State) Surface() geometry.Surface {
	return s.Rotation.SurfaceFor(s.Published)
}

// InitBoundsFromPublished seeds the usable bounds with the full surface for
// the active rotation, the starting point the operator fine-tunes from.
func (s *State) InitBoundsFromPublished() {
	surf := s.Surface()
	s.Bounds = geometry.Bounds{X: 0, Y: 0, Width: surf.Width, Height: surf.Height}
}

func (s *State) snapshot() Snapshot {
	return Snapshot{Rotation: s.Rotation, Bounds: s.Bounds, Thickness: s.Thickness}
}

// MarkSaved records the current calibration as the saved reference.
func (s *State) MarkSaved() {
	s.Unsaved = false
	s.EverSaved = true
	s.LastSaved = s.snapshot()
}
