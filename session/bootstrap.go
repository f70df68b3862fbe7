package session

import (
	"fmt"
	"strings"

	"lcdcal/geometry"
	"lcdcal/terminal"
)

// Bootstrap runs the startup dialogue: the operator either names a known
// display to recalibrate or creates a new one. A blank name is fatal
// because the exported record is keyed by it. The returned state has its
// bounds seeded with the full surface.
func Bootstrap(t terminal.Terminal, known []string, published geometry.Surface, rotation geometry.Rotation) (*State, error) {
	t.WriteLine("")
	t.WriteLine("=== Display Calibration ===")
	if len(known) > 0 {
		t.WriteLine("Known displays:")
		for i, name := range known {
			t.WriteLine(fmt.Sprintf("  %d. %s", i+1, name))
		}
	}
	t.WriteLine("Choose: 1) calibrate existing  2) create new  3) quit")
	t.Write("> ")

	choice, err := terminal.ReadLine(t)
	if err != nil {
		return nil, err
	}
	switch strings.TrimSpace(choice) {
	case "1", "2":
		// Same path either way: the name is the identity.
	case "3":
		return nil, ErrAborted
	default:
		return nil, fmt.Errorf("%w: choose 1, 2 or 3", ErrAborted)
	}

	t.Write("Display name: ")
	name, err := terminal.ReadLine(t)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrIdentityRequired
	}

	s, err := NewState(name, published, rotation)
	if err != nil {
		return nil, err
	}
	s.InitBoundsFromPublished()
	s.LastSaved = s.snapshot()
	surf := s.Surface()
	t.WriteLine(fmt.Sprintf("Calibrating '%s': %s %dx%d, bounds seeded to the full surface.",
		name, rotation.Orientation(), surf.Width, surf.Height))
	return s, nil
}
