package game

import "math"

// Evaluate scores a board for the maximizing side: 0 for a draw, ±Inf for a
// decided game, otherwise the difference in living hit points with active
// pieces counted twice.
func Evaluate(b *Board, maximizer Colour) float64 {
	var value float64
	switch b.Winner() {
	case Both:
		return 0
	case Black:
		value = math.Inf(1)
	case White:
		value = math.Inf(-1)
	default:
		scores := make(map[Colour]float64)
		for _, p := range b.cells {
			if !p.Alive() {
				continue
			}
			weight := 1.0
			if p.Active {
				weight = 2.0
			}
			scores[p.Colour()] += weight * float64(p.HP)
		}
		value = scores[Black] - scores[White]
	}

	if maximizer == White {
		return -value
	}
	return value
}
