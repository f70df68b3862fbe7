package canvas

import (
	"math"

	"lcdcal/geometry"
)

// Frame draws the calibration frame: concentric one-pixel rectangles drawn
// inward from the bounds. Thickness is capped so the layers never cross in
// the middle of a small rectangle.
func Frame(c Canvas, b geometry.Bounds, thickness int, col Color) int {
	if !b.IsSet() {
		return 0
	}
	layers := geometry.Min(thickness, geometry.Min(b.Width/2, b.Height/2))
	for i := 0; i < layers; i++ {
		w := b.Width - 2*i
		h := b.Height - 2*i
		if w <= 0 || h <= 0 {
			break
		}
		c.DrawRect(b.X+i, b.Y+i, w, h, col)
	}
	return layers
}

// OriginDiagnostic draws the origin-to-center test: axes along the top and
// left edges, a doubled diagonal to the nominal center, white pixels at the
// origin and a red cross at the center. Lets the operator see whether the
// origin row and column are physically visible.
func OriginDiagnostic(c Canvas) (cx, cy int) {
	cx = c.Width() / 2
	cy = c.Height() / 2

	c.DrawLine(0, 0, cx, cy, Yellow)
	if cx > 0 && cy > 0 {
		// Doubled so single-pixel dropout cannot hide the whole line.
		c.DrawLine(1, 0, cx, cy-1, Yellow)
	}

	c.DrawLine(0, 0, c.Width()-1, 0, Blue)
	c.DrawLine(0, 0, 0, c.Height()-1, Blue)

	c.DrawPixel(0, 0, White)
	c.DrawPixel(1, 0, White)
	c.DrawPixel(0, 1, White)

	CrossMark(c, cx, cy, Red)
	return cx, cy
}

// CrossMark draws a small plus at (x, y).
func CrossMark(c Canvas, x, y int, col Color) {
	c.DrawPixel(x, y, col)
	c.DrawPixel(x-1, y, col)
	c.DrawPixel(x+1, y, col)
	c.DrawPixel(x, y-1, col)
	c.DrawPixel(x, y+1, col)
}

// UsableCenter draws the usable-area boundary and a red cross at its
// center, returning the center coordinates.
func UsableCenter(c Canvas, b geometry.Bounds) (cx, cy int) {
	cx, cy = b.Center()
	c.DrawLine(cx-5, cy, cx+5, cy, Red)
	c.DrawLine(cx, cy-5, cx, cy+5, Red)
	c.DrawRect(b.X, b.Y, b.Width, b.Height, Green)
	return cx, cy
}

var insetColors = []Color{White, Red, Green, Blue}

// InsetWalk draws one rectangle of the stepped inset diagnostic: the frame
// at the given inset from the nominal edge. The color cycles per step so
// the operator can tell the layers apart.
func InsetWalk(c Canvas, step int) Color {
	col := insetColors[step%len(insetColors)]
	c.DrawRect(step, step, c.Width()-2*step, c.Height()-2*step, col)
	return col
}

// Gradient fills the given bounds with a horizontal blue-to-red sweep. Used
// by the display manager's test pattern to expose column dropouts.
func Gradient(c Canvas, b geometry.Bounds) {
	if !b.IsSet() {
		return
	}
	widthInv := 1.0 / float64(b.Width)
	for x := b.X; x < b.X+b.Width; x++ {
		ratio := float64(x-b.X) * widthInv
		r := uint8(ratio * 255.0)
		g := uint8(128.0 + 127.0*math.Sin(ratio*math.Pi))
		bl := uint8((1.0 - ratio) * 255.0)
		col := FromRGB(r, g, bl)
		c.DrawLine(x, b.Y, x, b.Y+b.Height-1, col)
	}
}
