package canvas

import (
	"lcdcal/geometry"
)

// Memory is a framebuffer-backed Canvas. It is both the test double for the
// engine and the buffer the hardware and simulator backends flush from.
//
// Not safe for concurrent writes; the calibration session is strictly
// single-threaded, so no locking is carried here.
type Memory struct {
	published geometry.Surface
	rotation  geometry.Rotation
	pixels    [][]Color
	width     int
	height    int
}

// NewMemory creates a buffer for a panel with the given published
// dimensions, starting at the given rotation.
func NewMemory(published geometry.Surface, rotation geometry.Rotation) *Memory {
	m := &Memory{published: published}
	m.SetRotation(rotation)
	return m
}

// SetRotation swaps the buffer axes for the new rotation and clears it; the
// old contents are meaningless in the new coordinate space.
func (m *Memory) SetRotation(r geometry.Rotation) {
	m.rotation = r
	s := r.SurfaceFor(m.published)
	m.width, m.height = s.Width, s.Height
	m.pixels = make([][]Color, m.height)
	for y := range m.pixels {
		m.pixels[y] = make([]Color, m.width)
	}
}

// Rotation returns the active rotation.
func (m *Memory) Rotation() geometry.Rotation {
	return m.rotation
}

func (m *Memory) Width() int  { return m.width }
func (m *Memory) Height() int { return m.height }

// Clear fills the buffer with black.
func (m *Memory) Clear() {
	for y := range m.pixels {
		for x := range m.pixels[y] {
			m.pixels[y][x] = Black
		}
	}
}

// DrawPixel sets one pixel, clipping silently outside the surface.
func (m *Memory) DrawPixel(x, y int, c Color) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.pixels[y][x] = c
}

// Get returns the pixel at (x, y), or black when out of bounds.
func (m *Memory) Get(x, y int) Color {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return Black
	}
	return m.pixels[y][x]
}

// DrawLine draws with Bresenham's algorithm.
func (m *Memory) DrawLine(x0, y0, x1, y1 int, c Color) {
	drawLine(m, x0, y0, x1, y1, c)
}

// DrawRect draws a one-pixel outline.
func (m *Memory) DrawRect(x, y, w, h int, c Color) {
	drawRect(m, x, y, w, h, c)
}

// Flush is a no-op for the in-memory backend.
func (m *Memory) Flush() error { return nil }

// CountPixels returns how many pixels currently hold the given color.
// Test helper.
func (m *Memory) CountPixels(c Color) int {
	n := 0
	for y := range m.pixels {
		for x := range m.pixels[y] {
			if m.pixels[y][x] == c {
				n++
			}
		}
	}
	return n
}

// CountLit returns how many pixels are not black. Test helper.
func (m *Memory) CountLit() int {
	n := 0
	for y := range m.pixels {
		for x := range m.pixels[y] {
			if m.pixels[y][x] != Black {
				n++
			}
		}
	}
	return n
}

// drawLine and drawRect are shared by every backend that renders through
// DrawPixel.

func drawLine(c Canvas, x0, y0, x1, y1 int, col Color) {
	dx := geometry.Abs(x1 - x0)
	dy := -geometry.Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.DrawPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawRect(c Canvas, x, y, w, h int, col Color) {
	if w <= 0 || h <= 0 {
		return
	}
	drawLine(c, x, y, x+w-1, y, col)
	drawLine(c, x, y+h-1, x+w-1, y+h-1, col)
	drawLine(c, x, y, x, y+h-1, col)
	drawLine(c, x+w-1, y, x+w-1, y+h-1, col)
}
