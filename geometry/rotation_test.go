package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrientationLabels(t *testing.T) {
	// Exhaustive: the labels are a wire contract with record consumers.
	tests := []struct {
		rot  Rotation
		want string
	}{
		{RotPortrait, "portrait"},
		{RotLandscape, "landscape"},
		{RotReversePortrait, "reverse_portrait"},
		{RotReverseLandscape, "reverse_landscape"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.rot.Orientation(), "rotation %d", tt.rot)
	}
}

func TestRotationSteps(t *testing.T) {
	assert.Equal(t, RotLandscape, RotPortrait.CW())
	assert.Equal(t, RotPortrait, RotReverseLandscape.CW())
	assert.Equal(t, RotReverseLandscape, RotPortrait.CCW())
	assert.Equal(t, RotPortrait, RotLandscape.CCW())

	// Four turns in either direction is the identity.
	r := RotLandscape
	for i := 0; i < 4; i++ {
		r = r.CW()
	}
	assert.Equal(t, RotLandscape, r)
}

func TestSurfaceForSwapsPortrait(t *testing.T) {
	published := Surface{Width: 160, Height: 128}

	assert.Equal(t, Surface{Width: 160, Height: 128}, RotLandscape.SurfaceFor(published))
	assert.Equal(t, Surface{Width: 160, Height: 128}, RotReverseLandscape.SurfaceFor(published))
	assert.Equal(t, Surface{Width: 128, Height: 160}, RotPortrait.SurfaceFor(published))
	assert.Equal(t, Surface{Width: 128, Height: 160}, RotReversePortrait.SurfaceFor(published))
}
