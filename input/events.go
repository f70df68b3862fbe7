package input

// Direction is an arrow-key direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name for operator feedback.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Kind discriminates the closed set of semantic events the decoder emits.
type Kind int

const (
	KindModeSelect Kind = iota // digit 1-6
	KindArrow                  // decoded ESC [ A-D sequence
	KindEscape                 // lone ESC byte
	KindCancel                 // Ctrl-C: save and end, from anywhere
	KindLine                   // legacy textual command
)

// Event is one decoded semantic unit of operator input. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Event struct {
	Kind Kind
	Mode int       // KindModeSelect: 1..6
	Dir  Direction // KindArrow
	Line string    // KindLine
}
