package searcher

import (
	"math"

	"feud/meta"
)

// Hyperparameters for MCTS

const Exploration = meta.EXPLORATION // Exploration constant C

// uct scores the children of one parent. The exploration bonus depends only
// on the parent's visits and the simulations run so far, so it is shared by
// every sibling.
type uct struct {
	bonus float64
}

func newUCT(c float64, parentVisits int, simulations int) uct {
	if parentVisits == 0 {
		panic("parent visits cannot be 0")
	}
	if simulations == 0 {
		panic("simulations cannot be 0")
	}
	// C*sqrt(ln(N)/T)
	return uct{bonus: c * math.Sqrt(math.Log(float64(parentVisits))/float64(simulations))}
}

func (u uct) evaluate(wins, visits int) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return float64(wins)/float64(visits) + u.bonus
}
