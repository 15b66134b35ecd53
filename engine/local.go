package engine

import (
	"fmt"
	"time"

	"feud/experiments/metrics"
	"feud/game"
	"feud/searcher"

	"github.com/rs/zerolog/log"
)

type MatchOption func(m *Match)

// Match plays a headless game between two searchers.
type Match struct {
	controller *Controller
	searchers  map[game.Colour]searcher.Searcher
	maxMoves   int
}

// WithBoard starts the match from a copy of b instead of the standard layout.
func WithBoard(b *game.Board) MatchOption {
	return func(m *Match) {
		m.controller = NewController(b)
	}
}

func WithMaxMoves(moves int) MatchOption {
	return func(m *Match) {
		if moves > 0 {
			m.maxMoves = moves
		}
	}
}

func NewMatch(black, white searcher.Searcher, options ...MatchOption) *Match {
	m := &Match{
		controller: NewController(nil),
		searchers: map[game.Colour]searcher.Searcher{
			game.Black: black,
			game.White: white,
		},
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Controller exposes the live game so observers can subscribe to it.
func (m *Match) Controller() *Controller {
	return m.controller
}

// Run executes the entire game loop until a winner is found or the move cap
// is hit, in which case the winner is None.
func (m *Match) Run() (game.Colour, metrics.GameMetric, []metrics.MoveMetric) {
	board := m.controller.Board()
	gameMetric := metrics.GameMetric{
		Starting:  board.Turn().String(),
		StartTime: time.Now(),
	}
	log.Info().Msgf("%s is starting", board.Turn())

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !board.IsTerminal() && step < m.maxMoves {
		step++
		player := board.Turn()
		move, searchMetric := m.searchers[player].FindNextMove(board)

		// Searchers only pick generated moves, so a rejection is a bug
		if err := m.controller.Apply(move.String()); err != nil {
			panic(fmt.Sprintf("searcher for %s chose an illegal move %q: %v", player, move, err))
		}
		log.Debug().Msgf("step %d: %s chose %q in %s", step, player, move, searchMetric.Duration)

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		board = m.controller.Board()
	}

	if !board.IsTerminal() {
		log.Info().Msgf("stopped after %d moves (no winner yet)", step)
	}

	gameMetric.Winner = board.Winner().String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	return board.Winner(), gameMetric, moveMetrics
}
