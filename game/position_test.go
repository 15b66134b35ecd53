package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	t.Run("lower and upper case columns", func(t *testing.T) {
		p, err := ParsePosition("a1")
		require.NoError(t, err)
		require.Equal(t, Pos(0, 0), p)

		p, err = ParsePosition("D4")
		require.NoError(t, err)
		require.Equal(t, Pos(3, 3), p)
	})

	t.Run("malformed coordinates", func(t *testing.T) {
		for _, text := range []string{"", "a", "e1", "a5", "a0", "a10", "11", "aa"} {
			_, err := ParsePosition(text)
			require.ErrorIs(t, err, ErrInput, "Coordinate %q should be rejected", text)
		}
	})

	t.Run("formatting round trips", func(t *testing.T) {
		for i := 0; i < Cells; i++ {
			p := positionAt(i)
			got, err := ParsePosition(p.String())
			require.NoError(t, err)
			require.Equal(t, p, got)
		}
	})
}

func TestNeighbours(t *testing.T) {
	require.ElementsMatch(t, []Position{Pos(1, 0), Pos(0, 1)}, Pos(0, 0).Neighbours(), "Corner has two neighbours")
	require.ElementsMatch(t, []Position{Pos(0, 1), Pos(2, 1), Pos(1, 0), Pos(1, 2)}, Pos(1, 1).Neighbours(), "Inner cell has four neighbours")
	require.Len(t, Pos(3, 1).Neighbours(), 3, "Edge cell has three neighbours")
}

func TestGeometry(t *testing.T) {
	require.Equal(t, 5, Manhattan(Pos(0, 0), Pos(3, 2)))
	require.Equal(t, Pos(0, 1), Direction(Pos(2, 0), Pos(2, 3)))
	require.Equal(t, Pos(-1, 0), Direction(Pos(3, 1), Pos(0, 1)))
}

func TestParseMove(t *testing.T) {
	t.Run("swap needs two coordinates", func(t *testing.T) {
		m, err := ParseMove("a1 B1", SwapPhase)
		require.NoError(t, err)
		require.Equal(t, SwapMove, m.Kind)
		require.Equal(t, []Position{Pos(0, 0), Pos(1, 0)}, m.Positions)

		_, err = ParseMove("a1", SwapPhase)
		require.ErrorIs(t, err, ErrInput)
	})

	t.Run("empty action is a skip", func(t *testing.T) {
		m, err := ParseMove("   ", ActionPhase)
		require.NoError(t, err)
		require.Equal(t, SkipMove, m.Kind)
	})

	t.Run("action with targets", func(t *testing.T) {
		m, err := ParseMove("b2 a2 c2", ActionPhase)
		require.NoError(t, err)
		require.Equal(t, ActionMove, m.Kind)
		require.Equal(t, Pos(1, 1), m.Actor())
		require.Equal(t, []Position{Pos(0, 1), Pos(2, 1)}, m.Targets())
		require.Equal(t, "b2 a2 c2", m.String())
	})

	t.Run("actor without target", func(t *testing.T) {
		_, err := ParseMove("b2", ActionPhase)
		require.ErrorIs(t, err, ErrInput)
	})

	t.Run("bad coordinate", func(t *testing.T) {
		_, err := ParseMove("b2 z9", ActionPhase)
		require.ErrorIs(t, err, ErrInput)
	})
}
