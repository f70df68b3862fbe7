package geometry

// Rotation is the panel rotation, 0-3, counted clockwise in quarter turns.
type Rotation int

const (
	RotPortrait Rotation = iota
	RotLandscape
	RotReversePortrait
	RotReverseLandscape
)

// Orientation returns the label used in exported calibration records.
// The mapping is a stable contract consumed by other tooling; do not change
// it without a record version bump.
func (r Rotation) Orientation() string {
	switch r {
	case RotPortrait:
		return "portrait"
	case RotLandscape:
		return "landscape"
	case RotReversePortrait:
		return "reverse_portrait"
	case RotReverseLandscape:
		return "reverse_landscape"
	default:
		return "unknown"
	}
}

// RotationFor maps an orientation label from a calibration record back to
// its rotation. ok is false for labels outside the contract.
func RotationFor(orientation string) (Rotation, bool) {
	switch orientation {
	case "portrait":
		return RotPortrait, true
	case "landscape":
		return RotLandscape, true
	case "reverse_portrait":
		return RotReversePortrait, true
	case "reverse_landscape":
		return RotReverseLandscape, true
	default:
		return 0, false
	}
}

// CW returns the rotation advanced one quarter turn clockwise.
func (r Rotation) CW() Rotation {
	return (r + 1) % 4
}

// CCW returns the rotation advanced one quarter turn counter-clockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) % 4
}

// Valid reports whether r is one of the four panel rotations.
func (r Rotation) Valid() bool {
	return r >= RotPortrait && r <= RotReverseLandscape
}

// SurfaceFor returns the addressable surface for this rotation given the
// published dimensions. Panels publish their landscape resolution, so the
// landscape rotations (1 and 3) use it as-is and the portrait rotations
// swap the axes.
func (r Rotation) SurfaceFor(published Surface) Surface {
	if r == RotLandscape || r == RotReverseLandscape {
		return published
	}
	return Surface{Width: published.Height, Height: published.Width}
}
