package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, placements map[Position]Piece, options ...BoardOption) *Board {
	t.Helper()
	b, err := NewBoard(placements, options...)
	require.NoError(t, err)
	return b
}

func TestArcherLineOfSight(t *testing.T) {
	placements := func() map[Position]Piece {
		return map[Position]Piece{
			Pos(0, 0): NewPiece(Archer, Black),
			Pos(1, 0): NewPiece(King, Black),
			Pos(0, 1): NewPiece(Shield, White),
			Pos(0, 2): NewPiece(Knight, White),
			Pos(3, 3): NewPiece(King, White),
		}
	}

	t.Run("enemy shield blocks", func(t *testing.T) {
		b := mustBoard(t, placements())
		require.False(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 2)}))
	})

	t.Run("removing the shield clears the line", func(t *testing.T) {
		p := placements()
		delete(p, Pos(0, 1))
		b := mustBoard(t, p)
		require.True(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 2)}))
	})

	t.Run("friendly shield does not block", func(t *testing.T) {
		p := placements()
		p[Pos(0, 1)] = NewPiece(Shield, Black)
		b := mustBoard(t, p)
		require.True(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 2)}))
	})

	t.Run("dead shield does not block", func(t *testing.T) {
		p := placements()
		p[Pos(0, 1)] = Wounded(Shield, White, 0)
		b := mustBoard(t, p)
		require.True(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 2)}))
	})

	t.Run("adjacent shield itself is a target", func(t *testing.T) {
		b := mustBoard(t, placements())
		require.True(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 1)}))
	})

	t.Run("diagonal target is out of line", func(t *testing.T) {
		b := mustBoard(t, placements())
		require.False(t, b.CanAct(Pos(0, 0), []Position{Pos(3, 3)}))
	})

	t.Run("listed actions match the open lines", func(t *testing.T) {
		b := mustBoard(t, placements())
		require.Equal(t, []Move{NewAction(Pos(0, 0), Pos(0, 1))}, b.PieceActions(Pos(0, 0)))
	})
}

func TestKnightCombinations(t *testing.T) {
	b := mustBoard(t, map[Position]Piece{
		Pos(1, 1): NewPiece(Knight, Black),
		Pos(1, 0): NewPiece(King, Black),
		Pos(0, 1): NewPiece(Archer, White),
		Pos(2, 1): NewPiece(Medic, White),
		Pos(1, 2): NewPiece(King, White),
	})

	actions := b.PieceActions(Pos(1, 1))
	require.Len(t, actions, 6, "Three single targets and three pairs")
	for _, a := range actions {
		require.True(t, b.CanAct(a.Actor(), a.Targets()))
		require.LessOrEqual(t, len(a.Targets()), 2)
	}

	t.Run("three targets exceed the cap", func(t *testing.T) {
		require.False(t, b.CanAct(Pos(1, 1), []Position{Pos(0, 1), Pos(2, 1), Pos(1, 2)}))
	})

	t.Run("duplicate targets are rejected", func(t *testing.T) {
		require.False(t, b.CanAct(Pos(1, 1), []Position{Pos(0, 1), Pos(0, 1)}))
	})

	t.Run("own king is not a target", func(t *testing.T) {
		require.False(t, b.CanAct(Pos(1, 1), []Position{Pos(1, 0)}))
	})

	t.Run("pair damages both", func(t *testing.T) {
		c := b.Copy()
		require.NoError(t, c.ApplyAction(Pos(1, 1), []Position{Pos(0, 1), Pos(2, 1)}))
		require.Equal(t, 2, c.At(Pos(0, 1)).HP)
		require.Equal(t, 2, c.At(Pos(2, 1)).HP)
		require.Equal(t, 4, c.At(Pos(1, 2)).HP, "Untargeted piece is untouched")
	})
}

func TestMedic(t *testing.T) {
	b := mustBoard(t, map[Position]Piece{
		Pos(1, 1): NewPiece(Medic, Black),
		Pos(1, 0): NewPiece(King, Black),
		Pos(0, 1): Wounded(Archer, Black, 1),
		Pos(2, 1): Wounded(Knight, Black, 2),
		Pos(1, 2): Wounded(Wizard, Black, 1),
		Pos(3, 3): NewPiece(King, White),
	})

	t.Run("full health allies are excluded", func(t *testing.T) {
		require.False(t, b.CanAct(Pos(1, 1), []Position{Pos(1, 0)}))
		actions := b.PieceActions(Pos(1, 1))
		require.Len(t, actions, 7, "All non-empty subsets of three wounded allies")
	})

	t.Run("healing is capped at max hit points", func(t *testing.T) {
		c := b.Copy()
		require.NoError(t, c.ApplyAction(Pos(1, 1), []Position{Pos(0, 1), Pos(2, 1), Pos(1, 2)}))
		require.Equal(t, 2, c.At(Pos(0, 1)).HP)
		require.Equal(t, 3, c.At(Pos(2, 1)).HP)
		require.Equal(t, 2, c.At(Pos(1, 2)).HP)
		require.False(t, c.CanAct(Pos(1, 1), []Position{Pos(2, 1)}), "Healed knight is at full health")
	})

	t.Run("enemies cannot be healed", func(t *testing.T) {
		c := mustBoard(t, map[Position]Piece{
			Pos(1, 1): NewPiece(Medic, Black),
			Pos(1, 0): NewPiece(King, Black),
			Pos(2, 1): Wounded(Knight, White, 1),
			Pos(3, 3): NewPiece(King, White),
		})
		require.Empty(t, c.PieceActions(Pos(1, 1)))
	})
}

func TestWizardTeleport(t *testing.T) {
	b := mustBoard(t, map[Position]Piece{
		Pos(0, 0): NewPiece(Wizard, Black),
		Pos(1, 0): NewPiece(King, Black),
		Pos(3, 3): NewPiece(Archer, Black),
		Pos(2, 2): NewPiece(King, White),
	})

	require.False(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 0)}), "Wizard cannot target itself")
	require.False(t, b.CanAct(Pos(0, 0), []Position{Pos(2, 2)}), "Wizard only swaps with allies")
	require.Len(t, b.PieceActions(Pos(0, 0)), 2, "King and archer are both reachable")

	require.NoError(t, b.ApplyAction(Pos(0, 0), []Position{Pos(3, 3)}))
	require.Equal(t, Wizard, b.At(Pos(3, 3)).Kind)
	require.Equal(t, Archer, b.At(Pos(0, 0)).Kind)
	require.Equal(t, Pos(3, 3), b.At(Pos(3, 3)).Pos)
	require.Equal(t, Pos(0, 0), b.At(Pos(0, 0)).Pos)
	require.False(t, b.At(Pos(3, 3)).Active, "Teleported wizard has no neighbours")
	require.True(t, b.At(Pos(0, 0)).Active, "Archer now sits next to the king")
}

func TestNonActingPieces(t *testing.T) {
	b := mustBoard(t, map[Position]Piece{
		Pos(0, 0): NewPiece(Shield, Black),
		Pos(1, 0): NewPiece(King, Black),
		Pos(0, 1): NewPiece(King, White),
	})

	t.Run("shield", func(t *testing.T) {
		require.False(t, b.CanAct(Pos(0, 0), []Position{Pos(0, 1)}))
		require.Empty(t, b.PieceActions(Pos(0, 0)))
		err := b.ApplyAction(Pos(0, 0), []Position{Pos(0, 1)})
		require.ErrorIs(t, err, ErrAction)
		require.ErrorContains(t, err, "Shield cannot perform an action")
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, b.PieceActions(Pos(3, 3)))
		require.ErrorIs(t, b.ApplyAction(Pos(3, 3), []Position{Pos(0, 1)}), ErrAction)
	})
}

func TestDeath(t *testing.T) {
	b := mustBoard(t, map[Position]Piece{
		Pos(0, 0): NewPiece(King, Black),
		Pos(1, 0): NewPiece(Knight, Black),
		Pos(1, 1): Wounded(Archer, White, 1),
		Pos(2, 1): NewPiece(King, White),
	})

	require.True(t, b.At(Pos(1, 1)).Swapable())
	require.NoError(t, b.ApplyAction(Pos(1, 0), []Position{Pos(1, 1)}))

	dead := b.At(Pos(1, 1))
	require.Equal(t, Archer, dead.Kind, "Dead pieces stay on their cell")
	require.Equal(t, 0, dead.HP)
	require.Equal(t, None, dead.Colour())
	require.False(t, dead.Active)
	require.False(t, dead.Swapable())
	require.False(t, dead.Blocks())
	require.False(t, b.At(Pos(2, 1)).Active, "White king lost its only neighbour")
	require.False(t, b.CanAct(Pos(1, 0), []Position{Pos(1, 1)}), "Dead pieces are not targets")
}
