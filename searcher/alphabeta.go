package searcher

import (
	"math"

	"feud/experiments/metrics"
	"feud/game"
	"feud/meta"
)

type AlphaBetaOption func(a *AlphaBeta)

// AlphaBeta is a depth-limited minimax searcher with alpha-beta pruning.
// Moves are tried in generator order, so ties go to the first move listed.
type AlphaBeta struct {
	maxDepth int
	metrics  metrics.Collector
}

// WithMaxDepth caps the depth budget, which otherwise grows as pieces die.
func WithMaxDepth(depth int) AlphaBetaOption {
	return func(a *AlphaBeta) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

func NewAlphaBeta(options ...AlphaBetaOption) *AlphaBeta {
	a := &AlphaBeta{metrics: metrics.NewCollector()}
	for _, option := range options {
		option(a)
	}
	return a
}

// Depth is the number of half-steps searched from b.
func (a *AlphaBeta) Depth(b *game.Board) int {
	depth := meta.BASE_DEPTH - b.AliveCount()/2
	if a.maxDepth > 0 && depth > a.maxDepth {
		depth = a.maxDepth
	}
	return max(depth, 1)
}

func (a *AlphaBeta) FindNextMove(b *game.Board) (game.Move, metrics.SearchMetric) {
	depth := a.Depth(b)
	a.metrics.Start(1, depth)
	move, _ := a.search(b, depth)
	return move, a.metrics.Complete()
}

// search returns the first root move of maximal value and that value.
func (a *AlphaBeta) search(b *game.Board, depth int) (game.Move, float64) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		panic("cannot search a decided game")
	}
	a.metrics.AddNode()

	maximizer := b.Turn()
	alpha, beta := math.Inf(-1), math.Inf(1)
	best, bestValue := 0, math.Inf(-1)
	for i, m := range moves {
		value := a.alphaBeta(b.Play(m), depth-1, alpha, beta, maximizer)
		if i == 0 || value > bestValue {
			best, bestValue = i, value
		}
		if bestValue >= beta {
			break
		}
		alpha = max(alpha, bestValue)
	}
	return moves[best], bestValue
}

func (a *AlphaBeta) alphaBeta(b *game.Board, depth int, alpha, beta float64, maximizer game.Colour) float64 {
	a.metrics.AddNode()
	if depth <= 0 || b.IsTerminal() {
		return game.Evaluate(b, maximizer)
	}

	moves := b.LegalMoves()
	if b.Turn() == maximizer {
		value := math.Inf(-1)
		for _, m := range moves {
			value = max(value, a.alphaBeta(b.Play(m), depth-1, alpha, beta, maximizer))
			if value >= beta {
				break
			}
			alpha = max(alpha, value)
		}
		return value
	}

	value := math.Inf(1)
	for _, m := range moves {
		value = min(value, a.alphaBeta(b.Play(m), depth-1, alpha, beta, maximizer))
		if value <= alpha {
			break
		}
		beta = min(beta, value)
	}
	return value
}
