package game

import "slices"

// ListSwaps returns every legal swap for the side to move, each pair once in
// canonical order, sorted by board index.
func (b *Board) ListSwaps() []Move {
	if b.winner != None || b.phase != SwapPhase {
		return nil
	}

	var seen [Cells][Cells]bool
	var moves []Move
	for _, p := range b.cells {
		if p.Colour() != b.turn {
			continue
		}
		for _, n := range p.Pos.Neighbours() {
			if !p.CanSwap(b.At(n)) {
				continue
			}
			swap := NewSwap(p.Pos, n)
			i, j := swap.Positions[0].Index(), swap.Positions[1].Index()
			if seen[i][j] {
				continue
			}
			seen[i][j] = true
			moves = append(moves, swap)
		}
	}

	slices.SortFunc(moves, func(a, c Move) int {
		if d := a.Positions[0].Index() - c.Positions[0].Index(); d != 0 {
			return d
		}
		return a.Positions[1].Index() - c.Positions[1].Index()
	})
	return moves
}

// ListActions returns every action of the side to move followed by the skip
// move, which is always available in the action phase.
func (b *Board) ListActions() []Move {
	if b.winner != None || b.phase != ActionPhase {
		return nil
	}

	var moves []Move
	for _, p := range b.cells {
		if p.Colour() != b.turn {
			continue
		}
		moves = append(moves, b.PieceActions(p.Pos)...)
	}
	return append(moves, Skip())
}

// LegalMoves returns the moves of the current phase, or nil once the game
// is decided.
func (b *Board) LegalMoves() []Move {
	if b.phase == SwapPhase {
		return b.ListSwaps()
	}
	return b.ListActions()
}
