package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcdcal/geometry"
	"lcdcal/terminal"
)

func TestBootstrapCreatesSeededState(t *testing.T) {
	term := terminal.NewScript("2\nworkbench-display\n")

	s, err := Bootstrap(term, nil, geometry.Surface{Width: 160, Height: 128}, geometry.RotLandscape)
	require.NoError(t, err)
	assert.Equal(t, "workbench-display", s.Name)
	assert.Equal(t, geometry.Bounds{X: 0, Y: 0, Width: 160, Height: 128}, s.Bounds)
	assert.Equal(t, DefaultThickness, s.Thickness)
	assert.False(t, s.Unsaved)
}

func TestBootstrapListsKnownDisplays(t *testing.T) {
	term := terminal.NewScript("1\nbench-a\n")

	s, err := Bootstrap(term, []string{"bench-a", "bench-b"}, geometry.Surface{Width: 160, Height: 128}, geometry.RotPortrait)
	require.NoError(t, err)
	assert.Equal(t, "bench-a", s.Name)
	assert.Contains(t, term.Output(), "bench-b")
	// Portrait: published axes swap.
	assert.Equal(t, 128, s.Bounds.Width)
	assert.Equal(t, 160, s.Bounds.Height)
}

func TestBootstrapRejectsBlankName(t *testing.T) {
	term := terminal.NewScript("2\n   \n")

	_, err := Bootstrap(term, nil, geometry.Surface{Width: 160, Height: 128}, geometry.RotLandscape)
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestBootstrapQuitAndBadChoice(t *testing.T) {
	term := terminal.NewScript("3\n")
	_, err := Bootstrap(term, nil, geometry.Surface{Width: 160, Height: 128}, geometry.RotLandscape)
	assert.ErrorIs(t, err, ErrAborted)

	term = terminal.NewScript("9\n")
	_, err = Bootstrap(term, nil, geometry.Surface{Width: 160, Height: 128}, geometry.RotLandscape)
	assert.ErrorIs(t, err, ErrAborted)
}
