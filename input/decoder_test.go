package input

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcdcal/terminal"
)

func decode(t *testing.T, input string) []Event {
	t.Helper()
	d := NewDecoder(terminal.NewScript(input), clockwork.NewRealClock(), DefaultEscapeWindow)
	var events []Event
	for {
		ev, err := d.Next()
		if err != nil {
			require.ErrorIs(t, err, terminal.ErrClosed)
			return events
		}
		events = append(events, ev)
	}
}

func TestDecodeModeSelect(t *testing.T) {
	events := decode(t, "1425 36")
	// The stray space starts a legacy line that never terminates, so it is
	// lost at stream end; digits before it all decode.
	require.GreaterOrEqual(t, len(events), 4)
	for i, want := range []int{1, 4, 2, 5} {
		assert.Equal(t, KindModeSelect, events[i].Kind)
		assert.Equal(t, want, events[i].Mode)
	}
}

func TestDecodeArrows(t *testing.T) {
	events := decode(t, "\x1b[A\x1b[B\x1b[C\x1b[D")
	require.Len(t, events, 4)
	dirs := []Direction{Up, Down, Right, Left}
	for i, want := range dirs {
		assert.Equal(t, KindArrow, events[i].Kind)
		assert.Equal(t, want, events[i].Dir)
	}
}

func TestDecodeUnknownEscapeCodeDropped(t *testing.T) {
	// ESC [ Z is nothing we know; it must vanish without an event, and the
	// following digit must still decode.
	events := decode(t, "\x1b[Z3")
	require.Len(t, events, 1)
	assert.Equal(t, KindModeSelect, events[0].Kind)
	assert.Equal(t, 3, events[0].Mode)
}

func TestDecodeCancelPriority(t *testing.T) {
	events := decode(t, "\x033")
	require.Len(t, events, 2)
	assert.Equal(t, KindCancel, events[0].Kind)
	assert.Equal(t, KindModeSelect, events[1].Kind)
}

func TestDecodeEscapeBeforeOtherByte(t *testing.T) {
	// ESC followed by a non-'[' byte: lone escape, then the byte starts a
	// legacy line.
	events := decode(t, "\x1bhelp\n")
	require.Len(t, events, 2)
	assert.Equal(t, KindEscape, events[0].Kind)
	assert.Equal(t, KindLine, events[1].Kind)
	assert.Equal(t, "help", events[1].Line)
}

func TestDecodeLegacyLine(t *testing.T) {
	events := decode(t, "bounds 1,158,2,127\n")
	require.Len(t, events, 1)
	assert.Equal(t, KindLine, events[0].Kind)
	assert.Equal(t, "bounds 1,158,2,127", events[0].Line)
}

func TestDecodeBlankLinesIgnored(t *testing.T) {
	events := decode(t, "\n\r\n\r")
	assert.Empty(t, events)
}

func TestLoneEscapeViaElapsedWindow(t *testing.T) {
	// Nothing follows the ESC; a fake clock drives the window so the test
	// does not depend on wall time.
	clock := clockwork.NewFakeClock()
	d := NewDecoder(terminal.NewGappedScript(
		terminal.Chunk{Bytes: "\x1b"},
		terminal.Chunk{Delay: time.Hour, Bytes: "x"}, // never arrives in test
	), clock, DefaultEscapeWindow)

	type result struct {
		ev  Event
		err error
	}
	done := make(chan result, 1)
	go func() {
		ev, err := d.Next()
		done <- result{ev, err}
	}()

	// Wait for the decoder to park in the disambiguation sleep, then let
	// the window lapse.
	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(DefaultEscapeWindow)

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, KindEscape, r.ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("decoder never resolved the lone escape")
	}
}

func TestSlowArrowMisreadAsEscapePlusNoise(t *testing.T) {
	// The documented race: an arrow sequence arriving slower than the
	// window decodes as a lone ESC followed by stray printable bytes.
	d := NewDecoder(terminal.NewGappedScript(
		terminal.Chunk{Bytes: "\x1b"},
		terminal.Chunk{Delay: 50 * time.Millisecond, Bytes: "[A\n"},
	), clockwork.NewRealClock(), 5*time.Millisecond)

	ev, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindEscape, ev.Kind)

	ev, err = d.Next()
	require.NoError(t, err)
	assert.Equal(t, KindLine, ev.Kind)
	assert.Equal(t, "[A", ev.Line)
}
