package session

import (
	"fmt"
	"strconv"
	"strings"

	"lcdcal/canvas"
	"lcdcal/export"
	"lcdcal/geometry"
)

// runCommand executes one legacy text command. Commands are
// case-insensitive and surrounding whitespace is ignored; a malformed
// command reports an error and leaves the state alone.
func (m *Machine) runCommand(line string) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch {
	case cmd == "":
		return
	case cmd == "rot0" || cmd == "rot1" || cmd == "rot2" || cmd == "rot3":
		m.cmdRotate(geometry.Rotation(cmd[3] - '0'))
	case cmd == "frame":
		m.cmdFrame()
	case cmd == "clear":
		m.cv.Clear()
		if err := m.cv.Flush(); err != nil {
			m.log.Warn("display flush failed", "error", err)
		}
		m.term.WriteLine("Display cleared.")
	case cmd == "cross":
		m.cmdCross()
	case cmd == "test":
		m.cmdTest()
	case cmd == "center":
		m.cmdCenter()
	case strings.HasPrefix(cmd, "bounds"):
		m.cmdBounds(strings.TrimSpace(cmd[len("bounds"):]))
	case cmd == "export":
		m.cmdExport()
	case cmd == "info":
		m.showInfo()
	case cmd == "help":
		m.showHelp()
	default:
		m.term.WriteLine("Unknown command '" + cmd + "'. Type 'help' for the list.")
	}
}

func (m *Machine) cmdRotate(r geometry.Rotation) {
	m.state.SetRotation(r)
	m.cv.SetRotation(r)
	surf := m.state.Surface()
	m.redraw()
	m.term.WriteLine(fmt.Sprintf("Rotation set to %s (%dx%d). Bounds reset.",
		r.Orientation(), surf.Width, surf.Height))
}

// cmdFrame draws the calibration frame, or an inset walk when no bounds are
// set yet so the operator can eyeball the panel edges first.
func (m *Machine) cmdFrame() {
	if m.state.Bounds.IsSet() {
		m.redraw()
		m.describeBounds()
		return
	}
	m.term.WriteLine("No bounds set; walking inset rectangles. Press any key to step, note where each lands.")
	for step := 0; step < 4; step++ {
		m.cv.Clear()
		col := canvas.InsetWalk(m.cv, step)
		if err := m.cv.Flush(); err != nil {
			m.log.Warn("display flush failed", "error", err)
		}
		m.term.WriteLine(fmt.Sprintf("Inset %dpx (%s). Press any key...", step, colorName(col)))
		waitKey(m.term)
	}
	m.redraw()
}

func (m *Machine) cmdCross() {
	m.cv.Clear()
	cx, cy := canvas.OriginDiagnostic(m.cv)
	if err := m.cv.Flush(); err != nil {
		m.log.Warn("display flush failed", "error", err)
	}
	surf := m.state.Surface()
	m.term.WriteLine(fmt.Sprintf("Origin diagnostic drawn: surface %dx%d, geometric center (%d,%d).",
		surf.Width, surf.Height, cx, cy))
	m.term.WriteLine("Yellow diagonal runs from the origin; blue lines are the axes.")
}

// cmdTest walks all four rotations with a frame and center mark in each, a
// quick visual check that the panel wiring matches the driver. Rotation
// changes reset the bounds, so the walk leaves the session back where it
// started with bounds unset if any rotation happened.
func (m *Machine) cmdTest() {
	start := m.state.Rotation
	m.term.WriteLine("Rotation test: each step draws a frame and center mark. Press any key to advance.")
	for i := 0; i < 4; i++ {
		r := geometry.Rotation(i)
		m.state.SetRotation(r)
		m.cv.SetRotation(r)
		m.state.InitBoundsFromPublished()
		m.cv.Clear()
		canvas.Frame(m.cv, m.state.Bounds, m.state.Thickness, canvas.White)
		canvas.UsableCenter(m.cv, m.state.Bounds)
		if err := m.cv.Flush(); err != nil {
			m.log.Warn("display flush failed", "error", err)
		}
		surf := m.state.Surface()
		m.term.WriteLine(fmt.Sprintf("Rotation %d (%s, %dx%d). Press any key...",
			i, r.Orientation(), surf.Width, surf.Height))
		waitKey(m.term)
	}
	m.state.SetRotation(start)
	m.cv.SetRotation(start)
	m.redraw()
	m.term.WriteLine("Rotation test done. Bounds reset; re-establish them before saving.")
}

func (m *Machine) cmdCenter() {
	if !m.state.Bounds.IsSet() {
		m.term.WriteLine("Rejected: " + ErrBoundsNotSet.Error() + ". Use mode 1 or the 'bounds' command first.")
		return
	}
	m.cv.Clear()
	cx, cy := canvas.UsableCenter(m.cv, m.state.Bounds)
	if err := m.cv.Flush(); err != nil {
		m.log.Warn("display flush failed", "error", err)
	}
	m.term.WriteLine(fmt.Sprintf("Usable center marked at (%d,%d).", cx, cy))
}

// cmdBounds parses "L,R,T,B" inclusive edges and replaces the usable area.
func (m *Machine) cmdBounds(args string) {
	parts := strings.Split(args, ",")
	if args == "" || len(parts) != 4 {
		m.term.WriteLine("Usage: bounds L,R,T,B (inclusive pixel edges, e.g. bounds 1,158,2,125)")
		return
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			m.term.WriteLine("Rejected: " + ErrMalformedInput.Error() + ": '" + strings.TrimSpace(p) + "' is not an integer")
			return
		}
		vals[i] = n
	}
	res, err := m.state.SetBounds(vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		m.term.WriteLine("Rejected: edges are inverted (need L<=R and T<=B)")
		return
	}
	if res.Clamped {
		m.term.WriteLine("Warning: bounds clamped to fit the surface.")
	}
	m.redraw()
	m.describeBounds()
}

// cmdExport prints the record without touching the saved/unsaved state, for
// operators who want to inspect mid-session.
func (m *Machine) cmdExport() {
	rec, err := export.Build(m.state.Name, m.state.Published, m.state.Rotation, m.state.Bounds, m.pins)
	if err != nil {
		m.term.WriteLine("Cannot export: " + err.Error() + ". Use mode 1 or the 'bounds' command first.")
		return
	}
	m.term.Write(rec.Render())
}

func colorName(c canvas.Color) string {
	switch c {
	case canvas.White:
		return "white"
	case canvas.Red:
		return "red"
	case canvas.Green:
		return "green"
	case canvas.Blue:
		return "blue"
	case canvas.Yellow:
		return "yellow"
	default:
		return fmt.Sprintf("0x%04X", uint16(c))
	}
}
