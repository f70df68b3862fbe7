// Package simulator hosts a calibration session without hardware: a tcell
// window renders the panel framebuffer, and the keyboard is translated back
// into the raw byte stream the session engine decodes. One Simulator serves
// as both the canvas.Canvas and the terminal.Terminal of a session.
package simulator

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"lcdcal/canvas"
	"lcdcal/geometry"
	"lcdcal/terminal"
)

// logLines is how many recent terminal lines stay visible under the panel.
const logLines = 8

type Simulator struct {
	*canvas.Memory
	screen tcell.Screen

	keys    chan byte
	hold    byte
	holding bool

	mu      sync.Mutex
	lines   []string
	partial string

	done      chan struct{}
	closeOnce sync.Once
}

var (
	_ canvas.Canvas     = (*Simulator)(nil)
	_ terminal.Terminal = (*Simulator)(nil)
)

// New opens the simulator window. Call Close when the session ends.
func New(published geometry.Surface, rotation geometry.Rotation) (*Simulator, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(tcell.StyleDefault)
	s := &Simulator{
		Memory: canvas.NewMemory(published, rotation),
		screen: screen,
		keys:   make(chan byte, 256),
		done:   make(chan struct{}),
	}
	go s.pollKeys()
	return s, nil
}

// pollKeys translates tcell key events back into the raw bytes a serial
// operator would have sent, arrow keys as full ESC [ code sequences.
func (s *Simulator) pollKeys() {
	defer s.closeKeys()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
			s.Flush()
		case *tcell.EventKey:
			for _, b := range keyBytes(ev) {
				select {
				case s.keys <- b:
				case <-s.done:
					return
				}
			}
		}
	}
}

func keyBytes(ev *tcell.EventKey) []byte {
	switch ev.Key() {
	case tcell.KeyUp:
		return []byte{27, '[', 'A'}
	case tcell.KeyDown:
		return []byte{27, '[', 'B'}
	case tcell.KeyRight:
		return []byte{27, '[', 'C'}
	case tcell.KeyLeft:
		return []byte{27, '[', 'D'}
	case tcell.KeyEscape:
		return []byte{27}
	case tcell.KeyCtrlC:
		return []byte{3}
	case tcell.KeyEnter:
		return []byte{'\n'}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{127}
	case tcell.KeyRune:
		r := ev.Rune()
		if r > 0 && r < 128 {
			return []byte{byte(r)}
		}
	}
	return nil
}

func (s *Simulator) closeKeys() {
	s.closeOnce.Do(func() { close(s.done) })
}

// ReadByte blocks for the next operator key byte.
func (s *Simulator) ReadByte() (byte, error) {
	if s.holding {
		s.holding = false
		return s.hold, nil
	}
	select {
	case b := <-s.keys:
		return b, nil
	case <-s.done:
		return 0, terminal.ErrClosed
	}
}

// Peek returns the next byte without consuming it.
func (s *Simulator) Peek() (byte, bool) {
	if s.holding {
		return s.hold, true
	}
	select {
	case b := <-s.keys:
		s.hold, s.holding = b, true
		return b, true
	default:
		return 0, false
	}
}

// Available reports whether a byte can be read without blocking.
func (s *Simulator) Available() bool {
	if s.holding {
		return true
	}
	select {
	case b := <-s.keys:
		s.hold, s.holding = b, true
		return true
	default:
		return false
	}
}

// Write appends terminal output to the log pane.
func (s *Simulator) Write(text string) {
	s.mu.Lock()
	for _, r := range text {
		switch r {
		case '\n':
			s.pushLine()
		case '\r':
		default:
			s.partial += string(r)
		}
	}
	s.mu.Unlock()
	s.drawLog()
	s.screen.Show()
}

// WriteLine appends one full line to the log pane.
func (s *Simulator) WriteLine(text string) {
	s.Write(text + "\n")
}

func (s *Simulator) pushLine() {
	s.lines = append(s.lines, s.partial)
	s.partial = ""
	if len(s.lines) > logLines {
		s.lines = s.lines[len(s.lines)-logLines:]
	}
}

// Flush paints the framebuffer into the window, two pixels per character
// cell using the half-block glyph, with the log pane underneath.
func (s *Simulator) Flush() error {
	w, h := s.Width(), s.Height()
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			upper := cellColor(s.Get(x, y))
			lower := tcell.ColorBlack
			if y+1 < h {
				lower = cellColor(s.Get(x, y+1))
			}
			style := tcell.StyleDefault.Foreground(upper).Background(lower)
			s.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	s.drawLog()
	s.screen.Show()
	return nil
}

// SetRotation swaps the framebuffer axes and clears the window so stale
// cells from the old shape do not linger.
func (s *Simulator) SetRotation(r geometry.Rotation) {
	s.Memory.SetRotation(r)
	s.screen.Clear()
}

func (s *Simulator) drawLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	top := s.Height()/2 + 1
	width, _ := s.screen.Size()
	row := top
	for _, line := range append(append([]string{}, s.lines...), s.partial) {
		for x := 0; x < width; x++ {
			r := ' '
			if x < len(line) {
				r = rune(line[x])
			}
			s.screen.SetContent(x, row, r, nil, tcell.StyleDefault)
		}
		row++
	}
}

func cellColor(c canvas.Color) tcell.Color {
	r, g, b := rgb888(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// rgb888 expands RGB565 to full-range channels, replicating the high bits
// into the low ones so white maps to 255 rather than 248.
func rgb888(c canvas.Color) (r, g, b uint8) {
	v := uint16(c)
	r5 := uint8(v >> 11)
	g6 := uint8((v >> 5) & 0x3F)
	b5 := uint8(v & 0x1F)
	r = r5<<3 | r5>>2
	g = g6<<2 | g6>>4
	b = b5<<3 | b5>>2
	return r, g, b
}

// Close tears the window down and unblocks any pending read.
func (s *Simulator) Close() {
	s.closeKeys()
	s.screen.Fini()
}
