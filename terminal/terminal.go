package terminal

import (
	"errors"
	"io"
)

// ErrClosed is returned once the byte source is exhausted or shut down.
var ErrClosed = errors.New("terminal closed")

// Terminal is the byte-oriented operator link: a serial monitor, a local
// console in raw mode, or a simulated panel window. Reads deal in single
// bytes because the calibration engine has to disambiguate escape sequences
// itself; writes deal in lines because all operator feedback is textual.
type Terminal interface {
	// ReadByte blocks until the next input byte arrives.
	ReadByte() (byte, error)
	// Peek returns the next input byte without consuming it. It never
	// blocks; ok is false when nothing is buffered.
	Peek() (b byte, ok bool)
	// Available reports whether a byte can be read without blocking.
	Available() bool
	// Write sends text to the operator without a line break.
	Write(s string)
	// WriteLine sends a full line to the operator.
	WriteLine(s string)
}

// Pump adapts a blocking io.Reader into the Peek/Available surface the
// escape disambiguation needs. A single goroutine drains the reader into a
// buffered channel; Peek parks one byte in a hold slot.
type Pump struct {
	ch      chan byte
	hold    byte
	holding bool
}

const pumpBuffer = 256

// NewPump starts draining r. The pump goroutine exits when r reports any
// error, typically io.EOF.
func NewPump(r io.Reader) *Pump {
	p := &Pump{ch: make(chan byte, pumpBuffer)}
	go func() {
		defer close(p.ch)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			for i := 0; i < n; i++ {
				p.ch <- buf[i]
			}
			if err != nil {
				return
			}
		}
	}()
	return p
}

// ReadByte blocks until a byte is available or the source closes.
func (p *Pump) ReadByte() (byte, error) {
	if p.holding {
		p.holding = false
		return p.hold, nil
	}
	b, ok := <-p.ch
	if !ok {
		return 0, ErrClosed
	}
	return b, nil
}

// Peek returns the next byte without consuming it, never blocking.
func (p *Pump) Peek() (byte, bool) {
	if p.holding {
		return p.hold, true
	}
	select {
	case b, ok := <-p.ch:
		if !ok {
			return 0, false
		}
		p.hold = b
		p.holding = true
		return b, true
	default:
		return 0, false
	}
}

// Available reports whether ReadByte would return without blocking.
func (p *Pump) Available() bool {
	_, ok := p.Peek()
	return ok
}

// Drain discards everything currently buffered. Used before synchronous
// prompts so stale keystrokes cannot answer them.
func (p *Pump) Drain() {
	p.holding = false
	for {
		select {
		case _, ok := <-p.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
