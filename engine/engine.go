package engine

import (
	"feud/experiments/metrics"
	"feud/game"
	"feud/meta"
)

const MaxMoves = meta.MAX_MOVES

type Engine interface {
	// Run plays a game until there's a winner or a max number of moves is reached
	Run() (winner game.Colour, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
