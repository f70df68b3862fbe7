package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Console is a Terminal over the local TTY. It puts stdin into raw mode so
// single keystrokes and escape sequences arrive unbuffered, the same way a
// serial monitor delivers them.
type Console struct {
	*Pump
	out      io.Writer
	fd       int
	oldState *term.State
}

// OpenConsole switches the controlling terminal to raw mode and returns a
// Console. Callers must Close it to restore the terminal, including on
// error paths.
func OpenConsole() (*Console, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return &Console{
		Pump:     NewPump(os.Stdin),
		out:      os.Stdout,
		fd:       fd,
		oldState: oldState,
	}, nil
}

// Close restores the terminal to its previous mode.
func (c *Console) Close() error {
	if c.oldState == nil {
		return nil
	}
	err := term.Restore(c.fd, c.oldState)
	c.oldState = nil
	return err
}

func (c *Console) Write(s string) {
	fmt.Fprint(c.out, s)
}

// WriteLine emits CR+LF because the terminal is in raw mode and a bare LF
// would not return the carriage.
func (c *Console) WriteLine(s string) {
	fmt.Fprint(c.out, s+"\r\n")
}
