package game

import (
	"fmt"
	"slices"
	"strings"
)

type MoveKind int

const (
	SwapMove MoveKind = iota
	ActionMove
	SkipMove
)

// Move is one half-step. Positions holds both cells of a swap, or the actor
// followed by its targets for an action; a skip has none.
type Move struct {
	Kind      MoveKind
	Positions []Position
}

// NewSwap returns a swap with the lower board index listed first.
func NewSwap(a, b Position) Move {
	if b.Index() < a.Index() {
		a, b = b, a
	}
	return Move{Kind: SwapMove, Positions: []Position{a, b}}
}

func NewAction(actor Position, targets ...Position) Move {
	return Move{Kind: ActionMove, Positions: append([]Position{actor}, targets...)}
}

func Skip() Move {
	return Move{Kind: SkipMove}
}

func (m Move) Actor() Position {
	return m.Positions[0]
}

func (m Move) Targets() []Position {
	return m.Positions[1:]
}

func (m Move) Equal(other Move) bool {
	return m.Kind == other.Kind && slices.Equal(m.Positions, other.Positions)
}

// String formats the move in submission notation: space-separated
// coordinates, empty for a skip.
func (m Move) String() string {
	return formatPositions(m.Positions)
}

// ParseMove reads move notation for the given phase. A swap takes exactly two
// coordinates; an action takes an actor and its targets, or nothing to skip.
func ParseMove(text string, phase Phase) (Move, error) {
	positions, err := ParsePositions(text)
	if err != nil {
		return Move{}, err
	}
	switch phase {
	case SwapPhase:
		if len(positions) != 2 {
			return Move{}, fmt.Errorf("%w: a swap needs exactly two coordinates, got %d", ErrInput, len(positions))
		}
		return Move{Kind: SwapMove, Positions: positions}, nil
	default:
		switch len(positions) {
		case 0:
			return Skip(), nil
		case 1:
			return Move{}, fmt.Errorf("%w: an action needs an actor and at least one target", ErrInput)
		default:
			return Move{Kind: ActionMove, Positions: positions}, nil
		}
	}
}

func formatPositions(positions []Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}
