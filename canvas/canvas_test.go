package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcdcal/geometry"
)

var published = geometry.Surface{Width: 160, Height: 128}

func TestMemoryDimensionsFollowRotation(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	assert.Equal(t, 160, m.Width())
	assert.Equal(t, 128, m.Height())

	m.SetRotation(geometry.RotPortrait)
	assert.Equal(t, 128, m.Width())
	assert.Equal(t, 160, m.Height())
}

func TestMemoryClipsSilently(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	m.DrawPixel(-1, 0, White)
	m.DrawPixel(0, -1, White)
	m.DrawPixel(160, 0, White)
	m.DrawPixel(0, 128, White)
	assert.Equal(t, 0, m.CountPixels(White))

	m.DrawPixel(159, 127, White)
	assert.Equal(t, White, m.Get(159, 127))
	assert.Equal(t, Black, m.Get(160, 127))
}

func TestDrawRectOutline(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	m.DrawRect(2, 3, 10, 5, Green)

	// Perimeter only: 2*10 + 2*5 - 4 corners counted once.
	assert.Equal(t, 2*10+2*5-4, m.CountPixels(Green))
	assert.Equal(t, Green, m.Get(2, 3))
	assert.Equal(t, Green, m.Get(11, 7))
	assert.Equal(t, Black, m.Get(3, 4), "interior must stay empty")
}

func TestFrameThicknessCapped(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)

	b := geometry.Bounds{X: 0, Y: 0, Width: 12, Height: 12}
	layers := Frame(m, b, 5, White)
	// A 12x12 rectangle has room for at most 6 nested layers; thickness 5
	// fits. Shrink the box and the cap kicks in.
	assert.Equal(t, 5, layers)

	m.Clear()
	b = geometry.Bounds{X: 0, Y: 0, Width: 12, Height: 4}
	layers = Frame(m, b, 5, White)
	assert.Equal(t, 2, layers)
}

func TestFrameUnsetBoundsDrawsNothing(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	layers := Frame(m, geometry.Bounds{}, 3, White)
	assert.Equal(t, 0, layers)
	assert.Equal(t, 0, m.CountPixels(White))
}

func TestOriginDiagnosticMarks(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	cx, cy := OriginDiagnostic(m)
	require.Equal(t, 80, cx)
	require.Equal(t, 64, cy)

	assert.Equal(t, White, m.Get(0, 0))
	assert.Equal(t, Red, m.Get(cx, cy))
	// Axes along top and left edges.
	assert.Equal(t, Blue, m.Get(100, 0))
	assert.Equal(t, Blue, m.Get(0, 100))
}

func TestUsableCenter(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	b := geometry.Bounds{X: 1, Y: 2, Width: 158, Height: 126}
	cx, cy := UsableCenter(m, b)
	assert.Equal(t, 80, cx)
	assert.Equal(t, 65, cy)
	assert.Equal(t, Red, m.Get(cx, cy))
	assert.Equal(t, Green, m.Get(1, 2))
}

func TestGradientCoversBounds(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	b := geometry.Bounds{X: 10, Y: 10, Width: 50, Height: 20}
	Gradient(m, b)

	assert.NotEqual(t, Black, m.Get(10, 10))
	assert.NotEqual(t, Black, m.Get(59, 29))
	assert.Equal(t, Black, m.Get(9, 10), "gradient must not bleed left")
	assert.Equal(t, Black, m.Get(60, 10), "gradient must not bleed right")
}

func TestColorRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    Color
	}{
		{"black", Black},
		{"white", White},
		{"red", Red},
		{"green", Green},
		{"blue", Blue},
		{"yellow", Yellow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.c, FromColor(tt.c))
		})
	}
}

func TestDrawTextPaintsGlyphsOnly(t *testing.T) {
	m := NewMemory(published, geometry.RotLandscape)
	Gradient(m, geometry.Bounds{X: 0, Y: 0, Width: 160, Height: 128})
	before := m.CountPixels(Black)

	DrawText(m, 5, 5, Black, "DueLCD01")
	after := m.CountPixels(Black)
	assert.Greater(t, after, before, "text should add black glyph pixels")

	// Background between glyph strokes survives: far fewer black pixels
	// than the full text cell area.
	cellArea := TextWidth("DueLCD01") * 13
	assert.Less(t, after-before, cellArea)
}
