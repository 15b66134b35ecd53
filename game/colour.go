package game

// Colour identifies a side. None marks empty cells, dead pieces and an
// undecided game; Both is only ever a result (a draw).
type Colour int

const (
	None Colour = iota
	Black
	White
	Both
)

func (c Colour) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Both:
		return "Both"
	default:
		return "None"
	}
}

// Opponent returns the other side, or None for anything that is not a side.
func (c Colour) Opponent() Colour {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return None
	}
}

// Phase is the half-step of a turn.
type Phase int

const (
	SwapPhase Phase = iota
	ActionPhase
)

func (p Phase) String() string {
	if p == ActionPhase {
		return "ACTION"
	}
	return "SWAP"
}
