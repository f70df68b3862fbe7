package input

import (
	"time"

	"github.com/jonboulle/clockwork"

	"lcdcal/terminal"
)

// DefaultEscapeWindow is how long the decoder waits for the rest of an
// escape sequence before deciding the operator pressed a lone ESC. Slow
// terminal emulators may need a wider window; it is configurable for that
// reason rather than hard-coded.
const DefaultEscapeWindow = 10 * time.Millisecond

// Decoder turns the raw operator byte stream into semantic events.
//
// The escape family is inherently ambiguous: an arrow key arrives as the
// three bytes ESC '[' code, but a lone ESC is a single byte. The decoder
// waits EscapeWindow for a follow-up byte and then commits. An arrow
// sequence dribbling in slower than the window is misread as a lone ESC
// followed by stray printable bytes; callers must tolerate the resulting
// spurious line events. This race is inherent to the framing, not a bug to
// fix here.
type Decoder struct {
	term   terminal.Terminal
	clock  clockwork.Clock
	window time.Duration
}

// NewDecoder returns a decoder over t. The clock is injected so tests can
// drive the escape window deterministically.
func NewDecoder(t terminal.Terminal, clock clockwork.Clock, window time.Duration) *Decoder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultEscapeWindow
	}
	return &Decoder{term: t, clock: clock, window: window}
}

// Next blocks until one complete semantic event has been decoded.
// Unrecognized escape codes are dropped without an event.
func (d *Decoder) Next() (Event, error) {
	for {
		b, err := d.term.ReadByte()
		if err != nil {
			return Event{}, err
		}

		switch {
		case b == 3: // Ctrl-C, highest priority in every mode
			return Event{Kind: KindCancel}, nil

		case b == 27:
			ev, emit, err := d.decodeEscape()
			if err != nil {
				return Event{}, err
			}
			if emit {
				return ev, nil
			}
			// Unknown sequence code: swallow and keep reading.

		case b >= '1' && b <= '6':
			return Event{Kind: KindModeSelect, Mode: int(b - '0')}, nil

		case b == '\n' || b == '\r':
			// Bare line breaks carry nothing.

		default:
			line, err := d.readLine(b)
			if err != nil {
				return Event{}, err
			}
			return Event{Kind: KindLine, Line: line}, nil
		}
	}
}

// decodeEscape resolves the ESC ambiguity. emit is false when a recognized
// prefix carried an unknown final code and nothing should be reported.
func (d *Decoder) decodeEscape() (ev Event, emit bool, err error) {
	if !d.term.Available() {
		d.clock.Sleep(d.window)
	}

	next, ok := d.term.Peek()
	if !ok || next != '[' {
		// No follow-up in time, or the next byte belongs to something
		// else entirely: it was a lone ESC.
		return Event{Kind: KindEscape}, true, nil
	}

	d.term.ReadByte() // consume '['
	code, err := d.term.ReadByte()
	if err != nil {
		return Event{}, false, err
	}

	switch code {
	case 'A':
		return Event{Kind: KindArrow, Dir: Up}, true, nil
	case 'B':
		return Event{Kind: KindArrow, Dir: Down}, true, nil
	case 'C':
		return Event{Kind: KindArrow, Dir: Right}, true, nil
	case 'D':
		return Event{Kind: KindArrow, Dir: Left}, true, nil
	default:
		return Event{}, false, nil
	}
}

// readLine accumulates a legacy textual command, first byte already in hand.
func (d *Decoder) readLine(first byte) (string, error) {
	line := []byte{first}
	for {
		b, err := d.term.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\n' || b == '\r' {
			return string(line), nil
		}
		if b >= 32 && b <= 126 {
			line = append(line, b)
		}
	}
}
