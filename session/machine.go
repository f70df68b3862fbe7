package session

import (
	"errors"
	"fmt"
	"log/slog"

	"lcdcal/canvas"
	"lcdcal/export"
	"lcdcal/input"
	"lcdcal/terminal"
)

// Machine drives a calibration session: it owns the state, interprets
// decoded input events against the active mode, redraws the calibration
// frame, and emits feedback on the terminal.
type Machine struct {
	state *State
	term  terminal.Terminal
	cv    canvas.Canvas
	pins  export.Pinout
	log   *slog.Logger
}

func NewMachine(state *State, term terminal.Terminal, cv canvas.Canvas, pins export.Pinout, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	return &Machine{state: state, term: term, cv: cv, pins: pins, log: log}
}

// State exposes the session state, mainly for tests and the run loop.
func (m *Machine) State() *State { return m.state }

// Run processes decoded events until the session ends or the terminal
// closes. The caller is expected to have bootstrapped the state first.
func (m *Machine) Run(dec *input.Decoder) error {
	m.redraw()
	m.showHelp()
	m.showModePrompt()
	for {
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, terminal.ErrClosed) {
				return nil
			}
			return err
		}
		if m.Handle(ev) {
			return nil
		}
	}
}

// Handle applies one event. It returns true when the session is over.
func (m *Machine) Handle(ev input.Event) bool {
	switch ev.Kind {
	case input.KindCancel:
		// Ctrl-C is the emergency save: persist and end the session.
		if m.save() {
			m.term.WriteLine("Calibration saved. Bye.")
			return true
		}
		return false
	case input.KindModeSelect:
		return m.handleModeSelect(ev.Mode)
	case input.KindArrow:
		m.handleArrow(ev.Dir)
	case input.KindEscape:
		m.handleEscape()
	case input.KindLine:
		m.runCommand(ev.Line)
	}
	return false
}

func (m *Machine) handleModeSelect(n int) bool {
	mode, action := selection(n)
	switch action {
	case ActionSaveAndExit:
		// One-shot: the persistent mode is untouched.
		m.save()
	case ActionExitWithoutSaving:
		if m.state.Unsaved && !m.confirmDiscard() {
			m.state.Mode = ModeNone
			m.term.WriteLine("Exit cancelled.")
			m.showModePrompt()
			return false
		}
		m.term.WriteLine("Exiting without saving. Bye.")
		return true
	default:
		m.state.Mode = mode
		m.showModePrompt()
	}
	return false
}

func (m *Machine) handleArrow(dir input.Direction) {
	var (
		res Result
		err error
	)
	switch m.state.Mode {
	case ModeEdgeAdjust:
		res, err = m.state.AdjustEdge(dir)
	case ModeFrameMove:
		res, err = m.state.MoveFrame(dir)
	case ModeThickness:
		res = m.state.AdjustThickness(dir)
	case ModeRotate:
		res = m.state.Rotate(dir)
		if res.Changed {
			m.cv.SetRotation(m.state.Rotation)
			surf := m.state.Surface()
			m.term.WriteLine(fmt.Sprintf("Rotated to %s (%dx%d). Bounds reset; use mode 1 or 'bounds' to re-establish.",
				m.state.Rotation.Orientation(), surf.Width, surf.Height))
			m.redraw()
		}
		return
	default:
		m.term.WriteLine("No mode active. Press 1-4 first.")
		return
	}
	if err != nil {
		m.term.WriteLine("Rejected: " + err.Error())
		return
	}
	if !res.Changed {
		return
	}
	if res.Clamped {
		m.term.WriteLine("Warning: bounds clamped to fit the surface.")
	}
	m.redraw()
	m.describeBounds()
}

func (m *Machine) handleEscape() {
	if m.state.Mode != ModeNone {
		m.state.Mode = ModeNone
		m.term.WriteLine("Mode cleared.")
		m.showModePrompt()
		return
	}
	// ESC with no mode active doubles as a save request.
	m.save()
}

// save exports the current calibration over the terminal. On success the
// state is marked saved; on a failed precondition nothing changes.
func (m *Machine) save() bool {
	rec, err := export.Build(m.state.Name, m.state.Published, m.state.Rotation, m.state.Bounds, m.pins)
	if err != nil {
		m.term.WriteLine("Cannot save: " + err.Error() + ". Use mode 1 or the 'bounds' command first.")
		return false
	}
	m.term.WriteLine("")
	m.term.WriteLine("Copy everything between the markers into the device config:")
	m.term.Write(rec.Render())
	m.state.MarkSaved()
	m.log.Info("calibration saved",
		"device", m.state.Name,
		"orientation", m.state.Rotation.Orientation(),
		"bounds", m.state.Bounds)
	return true
}

// confirmDiscard warns about unsaved changes and reads a single key.
// Only 'y' confirms; ESC or anything else cancels the exit.
func (m *Machine) confirmDiscard() bool {
	m.term.WriteLine("Unsaved changes will be lost. Press 'y' to exit anyway, any other key to stay.")
	drain(m.term)
	b, err := m.term.ReadByte()
	if err != nil {
		return true
	}
	return b == 'y' || b == 'Y'
}

func (m *Machine) redraw() {
	m.cv.Clear()
	if m.state.Bounds.IsSet() {
		canvas.Frame(m.cv, m.state.Bounds, m.state.Thickness, canvas.White)
	}
	if err := m.cv.Flush(); err != nil {
		m.log.Warn("display flush failed", "error", err)
	}
}

func (m *Machine) describeBounds() {
	b := m.state.Bounds
	cx, cy := b.Center()
	m.term.WriteLine(fmt.Sprintf("Bounds: origin (%d,%d) size %dx%d, edges L=%d R=%d T=%d B=%d, center (%d,%d), thickness %d",
		b.X, b.Y, b.Width, b.Height, b.X, b.Right(), b.Y, b.Bottom(), cx, cy, m.state.Thickness))
}

func (m *Machine) showModePrompt() {
	m.term.WriteLine(fmt.Sprintf("[%s] 1=edges 2=move 3=thickness 4=rotate 5=save 6=exit, ESC clears mode", m.state.Mode))
}

// drain discards any bytes already buffered, so a confirmation prompt reads
// a deliberate keypress rather than input typed ahead of it.
func drain(t terminal.Terminal) {
	for t.Available() {
		if _, err := t.ReadByte(); err != nil {
			return
		}
	}
}

// waitKey blocks for a single keypress, discarding type-ahead first.
func waitKey(t terminal.Terminal) {
	drain(t)
	t.ReadByte() // a closed terminal just ends the wait
}
