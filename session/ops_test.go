package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcdcal/export"
	"lcdcal/geometry"
	"lcdcal/input"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := NewState("bench-st7735", geometry.Surface{Width: 160, Height: 128}, geometry.RotLandscape)
	require.NoError(t, err)
	s.InitBoundsFromPublished()
	return s
}

func TestEdgeAdjustContractsLeftAndTop(t *testing.T) {
	s := newTestState(t)

	res, err := s.AdjustEdge(input.Right) // contract left edge
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, geometry.Bounds{X: 1, Y: 0, Width: 159, Height: 128}, s.Bounds)

	for i := 0; i < 2; i++ { // contract top edge twice
		_, err = s.AdjustEdge(input.Down)
		require.NoError(t, err)
	}
	assert.Equal(t, geometry.Bounds{X: 1, Y: 2, Width: 159, Height: 126}, s.Bounds)
	assert.True(t, s.Unsaved)
}

func TestEdgeAdjustExpandUndoesContract(t *testing.T) {
	s := newTestState(t)
	_, err := s.AdjustEdge(input.Right)
	require.NoError(t, err)
	_, err = s.AdjustEdge(input.Left)
	require.NoError(t, err)
	assert.Equal(t, geometry.Bounds{X: 0, Y: 0, Width: 160, Height: 128}, s.Bounds)
}

func TestEdgeAdjustGuards(t *testing.T) {
	s := newTestState(t)

	_, err := s.AdjustEdge(input.Up) // top edge already at 0
	assert.ErrorIs(t, err, ErrAtSurfaceEdge)
	_, err = s.AdjustEdge(input.Left)
	assert.ErrorIs(t, err, ErrAtSurfaceEdge)
	assert.Equal(t, geometry.Bounds{X: 0, Y: 0, Width: 160, Height: 128}, s.Bounds)

	s.Bounds = geometry.Bounds{}
	_, err = s.AdjustEdge(input.Down)
	assert.ErrorIs(t, err, ErrBoundsNotSet)
}

func TestEdgeAdjustRefusesBelowMinimum(t *testing.T) {
	s := newTestState(t)
	s.Bounds = geometry.Bounds{X: 5, Y: 5, Width: geometry.MinDimension, Height: geometry.MinDimension}

	_, err := s.AdjustEdge(input.Down)
	assert.ErrorIs(t, err, ErrMinimumSize)
	_, err = s.AdjustEdge(input.Right)
	assert.ErrorIs(t, err, ErrMinimumSize)
	assert.Equal(t, geometry.MinDimension, s.Bounds.Width)
	assert.Equal(t, geometry.MinDimension, s.Bounds.Height)
}

func TestMoveFrameStopsAtSurfaceEdges(t *testing.T) {
	s := newTestState(t)
	s.Bounds = geometry.Bounds{X: 1, Y: 1, Width: 158, Height: 126}

	_, err := s.MoveFrame(input.Left)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Bounds.X)
	_, err = s.MoveFrame(input.Left)
	assert.ErrorIs(t, err, ErrAtSurfaceEdge)

	_, err = s.MoveFrame(input.Down)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Bounds.Y)
	// 2 + 126 == 128, flush against the bottom
	_, err = s.MoveFrame(input.Down)
	assert.ErrorIs(t, err, ErrAtSurfaceEdge)

	assert.Equal(t, 158, s.Bounds.Width)
	assert.Equal(t, 126, s.Bounds.Height)
}

func TestThicknessSaturatesSilently(t *testing.T) {
	s := newTestState(t)
	assert.Equal(t, DefaultThickness, s.Thickness)

	for i := 0; i < 10; i++ {
		s.AdjustThickness(input.Up)
	}
	assert.Equal(t, MaxThickness, s.Thickness)
	res := s.AdjustThickness(input.Up)
	assert.False(t, res.Changed)

	for i := 0; i < 10; i++ {
		s.AdjustThickness(input.Down)
	}
	assert.Equal(t, MinThickness, s.Thickness)

	res = s.AdjustThickness(input.Left)
	assert.False(t, res.Changed)
}

func TestRotateResetsBounds(t *testing.T) {
	s := newTestState(t)
	require.True(t, s.Bounds.IsSet())

	res := s.Rotate(input.Right)
	assert.True(t, res.Changed)
	assert.Equal(t, geometry.RotReversePortrait, s.Rotation)
	assert.False(t, s.Bounds.IsSet())
	assert.True(t, s.Unsaved)

	res = s.Rotate(input.Up)
	assert.False(t, res.Changed)

	res = s.Rotate(input.Left)
	assert.True(t, res.Changed)
	assert.Equal(t, geometry.RotLandscape, s.Rotation)
}

func TestSetBoundsClampsAndRejectsInverted(t *testing.T) {
	s := newTestState(t)

	res, err := s.SetBounds(1, 158, 2, 125)
	require.NoError(t, err)
	assert.False(t, res.Clamped)
	assert.Equal(t, geometry.Bounds{X: 1, Y: 2, Width: 158, Height: 124}, s.Bounds)

	res, err = s.SetBounds(0, 300, 0, 127)
	require.NoError(t, err)
	assert.True(t, res.Clamped)
	assert.Equal(t, 160, s.Bounds.Width)

	_, err = s.SetBounds(50, 10, 0, 127)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestCalibrationExportAfterEdits(t *testing.T) {
	s := newTestState(t)
	_, err := s.AdjustEdge(input.Right)
	require.NoError(t, err)
	_, err = s.AdjustEdge(input.Down)
	require.NoError(t, err)
	_, err = s.AdjustEdge(input.Down)
	require.NoError(t, err)

	rec, err := export.Build(s.Name, s.Published, s.Rotation, s.Bounds, export.Pinout{RST: 9, DC: 8, CS: 10, BL: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Left)
	assert.Equal(t, 159, rec.Right)
	assert.Equal(t, 2, rec.Top)
	assert.Equal(t, 127, rec.Bottom)
	assert.Equal(t, 80, rec.CenterX)
	assert.Equal(t, 65, rec.CenterY)
}
