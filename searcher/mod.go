package searcher

import (
	"feud/experiments/metrics"
	"feud/game"
)

// Searcher picks a move for the side to move. Implementations work on their
// own copies and never mutate b. b must not be decided.
type Searcher interface {
	FindNextMove(b *game.Board) (game.Move, metrics.SearchMetric)
}
