package game

import "feud/utils"

// stats are the static properties of each kind.
type stats struct {
	maxHP      int
	maxTargets int
	swapable   bool
	blocks     bool
}

var kindStats = [...]stats{
	Empty:  {},
	Archer: {maxHP: 3, maxTargets: 1, swapable: true},
	King:   {maxHP: 4, maxTargets: 1, swapable: true},
	Knight: {maxHP: 3, maxTargets: 2, swapable: true},
	Medic:  {maxHP: 3, maxTargets: 4, swapable: true},
	Shield: {maxHP: 4, blocks: true},
	Wizard: {maxHP: 3, maxTargets: 1, swapable: true},
}

// capability holds the acting rules of one kind. The table below is the single
// dispatch point for actions; kinds without a row never act.
type capability struct {
	canAct func(b *Board, actor Piece, targets []Piece) bool
	apply  func(b *Board, actor Piece, targets []Piece)
}

var capabilities = [...]capability{
	Empty:  {},
	Archer: {canAct: archerCanAct, apply: damage},
	King:   {canAct: meleeCanAct, apply: damage},
	Knight: {canAct: meleeCanAct, apply: damage},
	Medic:  {canAct: medicCanAct, apply: heal},
	Shield: {},
	Wizard: {canAct: wizardCanAct, apply: teleport},
}

func archerCanAct(b *Board, actor Piece, targets []Piece) bool {
	target := targets[0]
	if target.Colour() == actor.Colour() {
		return false
	}
	if actor.Pos.Col != target.Pos.Col && actor.Pos.Row != target.Pos.Row {
		return false
	}
	// Walk the cells strictly between archer and target
	step := Direction(actor.Pos, target.Pos)
	for p := actor.Pos.Add(step); p != target.Pos; p = p.Add(step) {
		between := b.At(p)
		if between.Blocks() && between.Colour() != actor.Colour() {
			return false
		}
	}
	return true
}

func meleeCanAct(b *Board, actor Piece, targets []Piece) bool {
	for _, t := range targets {
		if t.Colour() == actor.Colour() || Manhattan(actor.Pos, t.Pos) != 1 {
			return false
		}
	}
	return true
}

func medicCanAct(b *Board, actor Piece, targets []Piece) bool {
	for _, t := range targets {
		if t.Colour() != actor.Colour() || t.HP >= t.MaxHP() || Manhattan(actor.Pos, t.Pos) != 1 {
			return false
		}
	}
	return true
}

func wizardCanAct(b *Board, actor Piece, targets []Piece) bool {
	target := targets[0]
	return target.Colour() == actor.Colour() && target.Pos != actor.Pos
}

func damage(b *Board, actor Piece, targets []Piece) {
	for _, t := range targets {
		b.cell(t.Pos).takeDamage()
	}
}

func heal(b *Board, actor Piece, targets []Piece) {
	for _, t := range targets {
		b.cell(t.Pos).heal()
	}
}

func teleport(b *Board, actor Piece, targets []Piece) {
	b.exchange(actor.Pos, targets[0].Pos)
}

// CanAct reports whether the piece at pos may act on the given targets,
// ignoring turn and phase. It never mutates the board.
func (b *Board) CanAct(pos Position, targets []Position) bool {
	if !pos.InBounds() {
		return false
	}
	actor := b.At(pos)
	rules := capabilities[actor.Kind]
	if rules.canAct == nil || !actor.CanAct() {
		return false
	}
	if len(targets) < 1 || len(targets) > actor.MaxTargets() {
		return false
	}
	pieces := make([]Piece, 0, len(targets))
	for i, t := range targets {
		if !t.InBounds() {
			return false
		}
		for _, seen := range targets[:i] {
			if seen == t {
				return false
			}
		}
		target := b.At(t)
		if !target.Alive() {
			return false
		}
		pieces = append(pieces, target)
	}
	return rules.canAct(b, actor, pieces)
}

// ApplyAction performs the piece's action without touching turn, phase or the
// winner. It re-validates and fails with ErrAction if the action is illegal.
func (b *Board) ApplyAction(pos Position, targets []Position) error {
	if !b.CanAct(pos, targets) {
		if pos.InBounds() && capabilities[b.At(pos).Kind].canAct == nil {
			return actionError(pos, targets, "%s cannot perform an action", b.At(pos).Kind)
		}
		return actionError(pos, targets, "illegal targets")
	}
	actor := b.At(pos)
	pieces := make([]Piece, len(targets))
	for i, t := range targets {
		pieces[i] = b.At(t)
	}
	capabilities[actor.Kind].apply(b, actor, pieces)
	b.refreshActivity()
	return nil
}

// PieceActions enumerates every legal target combination for the piece at
// pos, up to its target cap, in board-index order.
func (b *Board) PieceActions(pos Position) []Move {
	actor := b.At(pos)
	rules := capabilities[actor.Kind]
	if rules.canAct == nil || !actor.CanAct() {
		return nil
	}

	var single []Position
	for i := 0; i < Cells; i++ {
		t := positionAt(i)
		if b.CanAct(pos, []Position{t}) {
			single = append(single, t)
		}
	}

	var moves []Move
	for k := 1; k <= actor.MaxTargets(); k++ {
		for _, subset := range utils.Combinations(single, k) {
			if k > 1 && !b.CanAct(pos, subset) {
				continue
			}
			moves = append(moves, NewAction(pos, subset...))
		}
	}
	return moves
}
