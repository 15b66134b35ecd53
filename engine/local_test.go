package engine

import (
	"testing"

	"feud/game"
	"feud/searcher"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Run("random agents finish or hit the cap", func(t *testing.T) {
		var e Engine = NewMatch(searcher.NewRandom(1), searcher.NewRandom(2))
		winner, gameMetric, moveMetrics := e.Run()

		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Equal(t, winner.String(), gameMetric.Winner)
		require.Equal(t, "Black", gameMetric.Starting)
		if winner == game.None {
			require.Equal(t, MaxMoves, gameMetric.TotalMoves)
		}
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
		}
	})

	t.Run("move cap", func(t *testing.T) {
		m := NewMatch(searcher.NewRandom(3), searcher.NewRandom(4), WithMaxMoves(5))
		winner, gameMetric, moveMetrics := m.Run()
		require.Equal(t, game.None, winner)
		require.Equal(t, 5, gameMetric.TotalMoves)
		require.Equal(t, "Black", moveMetrics[0].Player)
		require.Equal(t, "Black", moveMetrics[1].Player)
		require.Equal(t, "White", moveMetrics[2].Player)
	})

	t.Run("searcher finds the win", func(t *testing.T) {
		m := NewMatch(searcher.NewAlphaBeta(), searcher.NewRandom(5), WithBoard(killBoard(t)))
		winner, gameMetric, moveMetrics := m.Run()
		require.Equal(t, game.Black, winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
		require.Equal(t, "b2 c2", moveMetrics[0].Move)
		require.True(t, m.Controller().Board().IsTerminal())
	})
}
