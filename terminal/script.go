package terminal

import (
	"io"
	"strings"
	"time"
)

// Script is a Terminal fed from memory, used by tests and by demo playback.
// Input can be supplied up front or streamed in with controlled gaps, which
// is how the escape-sequence timing race is exercised.
type Script struct {
	*Pump
	out strings.Builder
}

// NewScript returns a Script whose input is already fully available.
func NewScript(input string) *Script {
	return &Script{Pump: NewPump(strings.NewReader(input))}
}

// Chunk is a piece of scripted input delivered after a pause.
type Chunk struct {
	Delay time.Duration
	Bytes string
}

// NewGappedScript delivers each chunk after its delay, simulating a slow
// operator or a serial link that dribbles escape sequences byte by byte.
func NewGappedScript(chunks ...Chunk) *Script {
	pr, pw := io.Pipe()
	go func() {
		defer pw.Close()
		for _, c := range chunks {
			if c.Delay > 0 {
				time.Sleep(c.Delay)
			}
			if _, err := io.WriteString(pw, c.Bytes); err != nil {
				return
			}
		}
	}()
	return &Script{Pump: NewPump(pr)}
}

func (s *Script) Write(text string) {
	s.out.WriteString(text)
}

func (s *Script) WriteLine(text string) {
	s.out.WriteString(text + "\n")
}

// Output returns everything written to the operator so far.
func (s *Script) Output() string {
	return s.out.String()
}
