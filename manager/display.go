package manager

import (
	"fmt"

	"lcdcal/canvas"
	"lcdcal/geometry"
)

// Edge names one side of the usable area for runtime trims.
type Edge int

const (
	Top Edge = iota
	Bottom
	Left
	Right
)

// Display is one registered panel: its calibration plus the canvas that
// draws on the physical device.
type Display struct {
	Config
	cv canvas.Canvas
}

// Canvas exposes the drawing surface for consumers that render directly.
func (d *Display) Canvas() canvas.Canvas { return d.cv }

// Contains reports whether the point lies inside the usable area.
func (d *Display) Contains(x, y int) bool {
	b := d.Bounds
	return b.IsSet() &&
		x >= b.X && x <= b.Right() &&
		y >= b.Y && y <= b.Bottom()
}

// AdjustEdge trims one edge of the usable area by delta pixels at runtime,
// for panels whose mounting hides a row or column the saved calibration did
// not. A positive delta always shrinks the usable area: on the top and left
// edges it moves the origin inward, on the bottom and right it pulls the far
// edge back. The result is clamped to the surface.
func (d *Display) AdjustEdge(edge Edge, delta int) geometry.Bounds {
	b := d.Config.Bounds
	switch edge {
	case Top:
		b.Y += delta
		b.Height -= delta
	case Left:
		b.X += delta
		b.Width -= delta
	case Bottom:
		b.Height -= delta
	case Right:
		b.Width -= delta
	}
	surf := d.Rotation.SurfaceFor(d.Published)
	d.Config.Bounds, _ = geometry.Clamp(surf, b)
	return d.Config.Bounds
}

// TestPattern renders the verification screen: a gradient across the usable
// area, the boundary frame, and a label block identifying the panel.
func (d *Display) TestPattern() error {
	d.cv.Clear()
	canvas.Gradient(d.cv, d.Bounds)
	canvas.Frame(d.cv, d.Bounds, 1, canvas.White)

	cx, cy := d.Bounds.Center()
	canvas.CrossMark(d.cv, cx, cy, canvas.White)

	label := d.Name
	tx := cx - canvas.TextWidth(label)/2
	if tx < d.Bounds.X+2 {
		tx = d.Bounds.X + 2
	}
	canvas.DrawText(d.cv, tx, d.Bounds.Y+4, canvas.White, label)

	dims := fmt.Sprintf("%dx%d %s", d.Bounds.Width, d.Bounds.Height, d.Rotation.Orientation())
	tx = cx - canvas.TextWidth(dims)/2
	if tx < d.Bounds.X+2 {
		tx = d.Bounds.X + 2
	}
	canvas.DrawText(d.cv, tx, d.Bounds.Bottom()-18, canvas.White, dims)

	return d.cv.Flush()
}

// DrawFrame repaints just the usable-area boundary.
func (d *Display) DrawFrame(thickness int) error {
	d.cv.Clear()
	canvas.Frame(d.cv, d.Bounds, thickness, canvas.White)
	return d.cv.Flush()
}

// Info returns a one-line human summary of the panel.
func (d *Display) Info() string {
	b := d.Bounds
	return fmt.Sprintf("%s (%s %s): %s %dx%d usable at (%d,%d)",
		d.Name, d.Manufacturer, d.Model,
		d.Rotation.Orientation(), b.Width, b.Height, b.X, b.Y)
}
