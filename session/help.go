package session

import "fmt"

func (m *Machine) showHelp() {
	for _, line := range []string{
		"",
		"Calibration controls:",
		"  1  edge adjust   arrows move the top/left edges one pixel",
		"  2  frame move    arrows slide the whole usable area",
		"  3  thickness     up/down change the frame thickness (1-5)",
		"  4  rotate        left/right step the rotation (resets bounds)",
		"  5  save          print the config record",
		"  6  exit          leave without saving (confirms if unsaved)",
		"  ESC    clear the active mode (or save when none is active)",
		"  Ctrl-C save and end the session",
		"",
		"Commands: rot0-rot3, frame, clear, cross, test, center,",
		"          bounds L,R,T,B, export, info, help",
		"",
	} {
		m.term.WriteLine(line)
	}
}

func (m *Machine) showInfo() {
	s := m.state
	surf := s.Surface()
	m.term.WriteLine("")
	m.term.WriteLine("Device:      " + s.Name)
	m.term.WriteLine(fmt.Sprintf("Published:   %dx%d", s.Published.Width, s.Published.Height))
	m.term.WriteLine(fmt.Sprintf("Rotation:    %d (%s), surface %dx%d",
		int(s.Rotation), s.Rotation.Orientation(), surf.Width, surf.Height))
	if s.Bounds.IsSet() {
		b := s.Bounds
		cx, cy := b.Center()
		m.term.WriteLine(fmt.Sprintf("Usable area: %dx%d at (%d,%d), edges L=%d R=%d T=%d B=%d",
			b.Width, b.Height, b.X, b.Y, b.X, b.Right(), b.Y, b.Bottom()))
		m.term.WriteLine(fmt.Sprintf("Center:      (%d,%d)", cx, cy))
	} else {
		m.term.WriteLine("Usable area: not set")
	}
	m.term.WriteLine(fmt.Sprintf("Thickness:   %d", s.Thickness))
	switch {
	case s.Unsaved:
		m.term.WriteLine("Changes:     unsaved")
	case s.EverSaved:
		m.term.WriteLine("Changes:     saved")
	default:
		m.term.WriteLine("Changes:     none")
	}
	m.term.WriteLine("")
}
