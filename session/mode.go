package session

// Mode is the persistent arrow-key interpretation. Selecting a mode changes
// how subsequent arrows are applied; the one-shot actions (save-and-exit,
// exit-without-saving) never live here.
type Mode int

const (
	ModeNone Mode = iota
	ModeEdgeAdjust
	ModeFrameMove
	ModeThickness
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeEdgeAdjust:
		return "edge adjust"
	case ModeFrameMove:
		return "frame move"
	case ModeThickness:
		return "thickness"
	case ModeRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a selectable arrow mode.
func (m Mode) Valid() bool {
	return m >= ModeNone && m <= ModeRotate
}

// Action is a one-shot request triggered from the mode-select digits. It is
// deliberately a separate type from Mode: an action fires once and cannot
// end up stored as the active mode.
type Action int

const (
	ActionSaveAndExit Action = iota + 1
	ActionExitWithoutSaving
)

// selection maps a mode-select digit onto either a persistent mode or a
// one-shot action.
func selection(n int) (Mode, Action) {
	switch n {
	case 1, 2, 3, 4:
		return Mode(n), 0
	case 5:
		return ModeNone, ActionSaveAndExit
	case 6:
		return ModeNone, ActionExitWithoutSaving
	default:
		return ModeNone, 0
	}
}
