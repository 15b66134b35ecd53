package searcher

import (
	"time"

	"feud/experiments/metrics"
	"feud/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move. It is not safe for concurrent
// use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random searcher; a zero seed draws one from the clock.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) FindNextMove(b *game.Board) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	moves := b.LegalMoves()
	if len(moves) == 0 {
		panic("cannot search a decided game")
	}
	move := moves[r.rng.Intn(len(moves))]
	return move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}
}
