package canvas

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawText rasterizes s at (x, y) using the fixed 7x13 bitmap face,
// painting only the glyph pixels so whatever is behind the text survives.
// The y coordinate is the top of the text cell.
func DrawText(c Canvas, x, y int, col Color, s string) {
	face := basicfont.Face7x13
	dot := fixed.P(x, y+face.Ascent)
	for _, r := range s {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		for yy := dr.Min.Y; yy < dr.Max.Y; yy++ {
			for xx := dr.Min.X; xx < dr.Max.X; xx++ {
				_, _, _, a := mask.At(maskp.X+xx-dr.Min.X, maskp.Y+yy-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					c.DrawPixel(xx, yy, col)
				}
			}
		}
		dot.X += advance
	}
}

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}
