package canvas

import (
	"image/color"

	"lcdcal/geometry"
)

// Color is a pixel color in RGB565, the native format of the ST7735 family.
type Color uint16

// Panel colors, matching the values the display controller expects.
const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Yellow  Color = 0xFFE0
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
)

// FromRGB packs 8-bit channels into RGB565.
func FromRGB(r, g, b uint8) Color {
	return Color(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3)
}

// RGBA implements color.Color, expanding 565 back to full range.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c>>11) & 0x1F
	g = uint32(c>>5) & 0x3F
	b = uint32(c) & 0x1F
	// Replicate high bits into low bits so full intensity maps to 0xFFFF.
	r = (r<<3 | r>>2) * 0x101
	g = (g<<2 | g>>4) * 0x101
	b = (b<<3 | b>>2) * 0x101
	return r, g, b, 0xFFFF
}

// FromColor converts any color.Color to RGB565.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Canvas is the raster drawing surface the calibration engine draws on:
// real panel hardware, the terminal simulator, or an in-memory buffer in
// tests. Width and Height reflect the current rotation. Drawing outside the
// surface is silently clipped; calibration deliberately probes the edges,
// so off-surface writes are routine, not errors.
type Canvas interface {
	Clear()
	DrawPixel(x, y int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	DrawRect(x, y, w, h int, c Color)
	Width() int
	Height() int
	SetRotation(r geometry.Rotation)
	// Flush pushes any buffered pixels to the physical device. In-memory
	// backends treat it as a no-op.
	Flush() error
}
