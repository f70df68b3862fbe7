package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcdcal/geometry"
)

var (
	testPublished = geometry.Surface{Width: 160, Height: 128}
	testPins      = Pinout{RST: 8, DC: 10, CS: 7, BL: 9}
)

func TestBuildUsesInclusiveEdges(t *testing.T) {
	b := geometry.Bounds{X: 1, Y: 2, Width: 159, Height: 126}
	rec, err := Build("DueLCD01", testPublished, geometry.RotLandscape, b, testPins)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.Left)
	assert.Equal(t, 159, rec.Right)
	assert.Equal(t, 2, rec.Top)
	assert.Equal(t, 127, rec.Bottom)
	assert.Equal(t, 80, rec.CenterX)
	assert.Equal(t, 65, rec.CenterY)
	assert.Equal(t, "landscape", rec.Orientation)
}

func TestBuildFailsOnUnsetBounds(t *testing.T) {
	_, err := Build("DueLCD01", testPublished, geometry.RotLandscape, geometry.Bounds{}, testPins)
	assert.ErrorIs(t, err, ErrBoundsNotSet)
}

func TestRenderDeterministic(t *testing.T) {
	b := geometry.Bounds{X: 0, Y: 0, Width: 160, Height: 128}
	rec, err := Build("DueLCD02", testPublished, geometry.RotReversePortrait, b, testPins)
	require.NoError(t, err)

	first := rec.Render()
	second := rec.Render()
	assert.Equal(t, first, second, "identical state must render identical bytes")
}

func TestRenderContract(t *testing.T) {
	b := geometry.Bounds{X: 1, Y: 2, Width: 158, Height: 126}
	rec, err := Build("DueLCD01", testPublished, geometry.RotLandscape, b, testPins)
	require.NoError(t, err)

	out := rec.Render()
	assert.True(t, strings.HasPrefix(out, BeginMarker+"\n"))
	assert.True(t, strings.HasSuffix(out, EndMarker+"\n"))

	for _, want := range []string{
		`name = "DueLCD01"`,
		"published_resolution = [160, 128]",
		`orientation = "landscape"`,
		"left = 1",
		"right = 158",
		"top = 2",
		"bottom = 127",
		"center = [80, 65]",
		"rst = 8",
		"dc = 10",
		"cs = 7",
		"bl = 9",
	} {
		assert.Contains(t, out, want+"\n")
	}
}

func TestParseRoundTrip(t *testing.T) {
	b := geometry.Bounds{X: 3, Y: 4, Width: 150, Height: 120}
	rec, err := Build("Bench01", testPublished, geometry.RotReverseLandscape, b, testPins)
	require.NoError(t, err)

	parsed, err := Parse(rec.Render())
	require.NoError(t, err)
	assert.Equal(t, rec, parsed)
	assert.Equal(t, b, parsed.Bounds())
}

func TestParseBareBody(t *testing.T) {
	body := `
[device]
name = "Loose"
published_resolution = [160, 128]

[calibration]
orientation = "portrait"
left = 0
right = 127
top = 0
bottom = 159
center = [64, 80]
`
	parsed, err := Parse(body)
	require.NoError(t, err)
	assert.Equal(t, "Loose", parsed.Name)
	assert.Equal(t, geometry.Bounds{X: 0, Y: 0, Width: 128, Height: 160}, parsed.Bounds())
}

func TestParseRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"begin without end", BeginMarker + "\n[device]\nname = \"x\"\n"},
		{"not toml", BeginMarker + "\n{json: true}\n" + EndMarker},
		{"missing name", BeginMarker + "\n[device]\npublished_resolution = [160, 128]\n" + EndMarker},
		{"bad orientation", BeginMarker + `
[device]
name = "x"
published_resolution = [160, 128]
[calibration]
orientation = "diagonal"
center = [0, 0]
` + EndMarker},
		{"inverted edges", BeginMarker + `
[device]
name = "x"
published_resolution = [160, 128]
[calibration]
orientation = "portrait"
left = 100
right = 10
top = 0
bottom = 10
center = [0, 0]
` + EndMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			assert.Error(t, err)
		})
	}
}
