package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"

	"feud/meta"
)

const MaxPasses = meta.MAX_PASSES

// Board is the complete game state. It is a plain value: copying a Board
// yields an independent game, which is how the searchers branch.
type Board struct {
	cells  [Cells]Piece
	turn   Colour
	phase  Phase
	passes [2]int // indexed by side, Black first
	winner Colour
}

type BoardOption func(b *Board)

// WithTurn sets the side to move.
func WithTurn(c Colour) BoardOption {
	return func(b *Board) {
		b.turn = c
	}
}

// WithPhase sets the half-step the side to move is in.
func WithPhase(p Phase) BoardOption {
	return func(b *Board) {
		b.phase = p
	}
}

// WithPasses sets the number of actions a side has already skipped.
func WithPasses(c Colour, passes int) BoardOption {
	return func(b *Board) {
		if i := sideIndex(c); i >= 0 {
			b.passes[i] = passes
		}
	}
}

// NewBoard places the given pieces on an otherwise empty board. Every side
// needs exactly one king. A layout that is already lost, through isolation or
// a dead king, comes back decided.
func NewBoard(placements map[Position]Piece, options ...BoardOption) (*Board, error) {
	b := &Board{turn: Black, phase: SwapPhase}
	for i := range b.cells {
		b.cells[i] = Piece{Pos: positionAt(i)}
	}
	for pos, piece := range placements {
		if !pos.InBounds() {
			return nil, fmt.Errorf("%w: position %v is off the board", ErrBoard, pos)
		}
		if piece.Kind == Empty {
			piece.Team = None
		}
		piece.Pos = pos
		b.cells[pos.Index()] = piece
	}
	for _, option := range options {
		option(b)
	}
	if b.turn != Black && b.turn != White {
		return nil, fmt.Errorf("%w: %s cannot move", ErrBoard, b.turn)
	}
	if err := b.validateKings(); err != nil {
		return nil, err
	}
	b.refreshActivity()
	b.winner = b.outcome()
	return b, nil
}

// NewStandardBoard returns the fixed starting layout with Black to swap.
func NewStandardBoard() *Board {
	back := []Kind{Archer, King, Medic, Archer}
	front := []Kind{Knight, Shield, Wizard, Knight}
	placements := make(map[Position]Piece, Cells)
	for col := 0; col < Width; col++ {
		placements[Pos(col, 0)] = NewPiece(back[col], Black)
		placements[Pos(col, 1)] = NewPiece(front[col], Black)
		placements[Pos(col, 2)] = NewPiece(front[col], White)
		placements[Pos(col, 3)] = NewPiece(back[col], White)
	}
	b, err := NewBoard(placements)
	if err != nil {
		panic(err)
	}
	return b
}

// Reset restores the starting layout.
func (b *Board) Reset() {
	*b = *NewStandardBoard()
}

func (b *Board) validateKings() error {
	for _, side := range []Colour{Black, White} {
		count := 0
		for _, p := range b.cells {
			if p.Kind == King && p.Team == side {
				count++
			}
		}
		if count != 1 {
			return fmt.Errorf("%w: %d %s kings found", ErrBoard, count, side)
		}
	}
	return nil
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) Turn() Colour   { return b.turn }
func (b *Board) Phase() Phase   { return b.phase }
func (b *Board) Winner() Colour { return b.winner }

func (b *Board) IsTerminal() bool {
	return b.winner != None
}

// Passes returns how many consecutive actions the side has skipped.
func (b *Board) Passes(c Colour) int {
	if i := sideIndex(c); i >= 0 {
		return b.passes[i]
	}
	return 0
}

// At returns the piece on a cell. Off-board positions read as Empty.
func (b *Board) At(pos Position) Piece {
	if !pos.InBounds() {
		return Piece{Pos: pos}
	}
	return b.cells[pos.Index()]
}

func (b *Board) cell(pos Position) *Piece {
	return &b.cells[pos.Index()]
}

// Pieces returns every cell's piece in board-index order.
func (b *Board) Pieces() []Piece {
	out := make([]Piece, Cells)
	copy(out, b.cells[:])
	return out
}

// King returns the side's king, alive or not.
func (b *Board) King(c Colour) Piece {
	for _, p := range b.cells {
		if p.Kind == King && p.Team == c {
			return p
		}
	}
	return Piece{}
}

// AliveCount returns the number of living pieces of both sides.
func (b *Board) AliveCount() int {
	count := 0
	for _, p := range b.cells {
		if p.Alive() {
			count++
		}
	}
	return count
}

func (b *Board) exchange(p1, p2 Position) {
	i, j := p1.Index(), p2.Index()
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	b.cells[i].Pos = p1
	b.cells[j].Pos = p2
}

// refreshActivity recomputes every piece's activity. The board is small
// enough that a full pass after each mutation is simpler than tracking
// which neighbourhoods changed.
func (b *Board) refreshActivity() {
	for i := range b.cells {
		p := &b.cells[i]
		p.Active = false
		if !p.Alive() {
			continue
		}
		for _, n := range p.Pos.Neighbours() {
			if b.cells[n.Index()].Colour() == p.Colour() {
				p.Active = true
				break
			}
		}
	}
}

// CanSwap reports whether the side to move may exchange the two cells.
func (b *Board) CanSwap(p1, p2 Position) bool {
	if b.winner != None || b.phase != SwapPhase || !p1.InBounds() || !p2.InBounds() {
		return false
	}
	a, c := b.At(p1), b.At(p2)
	return (a.Colour() == b.turn && a.CanSwap(c)) || (c.Colour() == b.turn && c.CanSwap(a))
}

// Swap exchanges two adjacent pieces and moves the turn into its action phase.
func (b *Board) Swap(p1, p2 Position) error {
	if b.winner != None {
		return fmt.Errorf("%w: %w", ErrSwap, ErrGameOver)
	}
	if b.phase != SwapPhase {
		return fmt.Errorf("%w: %s %s: %s must act, not swap", ErrSwap, p1, p2, b.turn)
	}
	if !b.CanSwap(p1, p2) {
		return fmt.Errorf("%w: %s and %s cannot be swapped", ErrSwap, p1, p2)
	}

	next := *b
	next.exchange(p1, p2)
	next.refreshActivity()
	next.phase = ActionPhase
	next.winner = next.isolated()
	*b = next
	return nil
}

// Action performs the acting piece's ability and passes the turn.
func (b *Board) Action(pos Position, targets []Position) error {
	if b.winner != None {
		return fmt.Errorf("%w: %w", ErrAction, ErrGameOver)
	}
	if b.phase != ActionPhase {
		return actionError(pos, targets, "%s must swap, not act", b.turn)
	}
	if !pos.InBounds() {
		return actionError(pos, targets, "actor is off the board")
	}
	if owner := b.At(pos).Colour(); owner != b.turn {
		return actionError(pos, targets, "piece belongs to %s, not %s", owner, b.turn)
	}

	next := *b
	if err := next.ApplyAction(pos, targets); err != nil {
		return err
	}
	next.passes[sideIndex(b.turn)] = 0
	next.endTurn()
	next.winner = next.outcome()
	*b = next
	return nil
}

// SkipAction passes the action phase. A side that passes more than
// MaxPasses times in a row forfeits.
func (b *Board) SkipAction() error {
	if b.winner != None {
		return fmt.Errorf("%w: %w", ErrAction, ErrGameOver)
	}
	if b.phase != ActionPhase {
		return fmt.Errorf("%w: %s cannot skip during the swap phase", ErrAction, b.turn)
	}

	next := *b
	side := sideIndex(b.turn)
	next.passes[side]++
	if next.passes[side] > MaxPasses {
		next.winner = b.turn.Opponent()
	}
	next.endTurn()
	*b = next
	return nil
}

func (b *Board) endTurn() {
	b.turn = b.turn.Opponent()
	b.phase = SwapPhase
}

// isolated returns the winner implied by sides without active pieces.
func (b *Board) isolated() Colour {
	var active [2]bool
	for _, p := range b.cells {
		if p.Active {
			active[sideIndex(p.Colour())] = true
		}
	}
	return loser(!active[0], !active[1])
}

// outcome checks isolation first, then dead kings.
func (b *Board) outcome() Colour {
	if winner := b.isolated(); winner != None {
		return winner
	}
	return b.kingDead()
}

// kingDead returns the winner implied by dead kings.
func (b *Board) kingDead() Colour {
	return loser(!b.King(Black).Alive(), !b.King(White).Alive())
}

func loser(blackLost, whiteLost bool) Colour {
	switch {
	case blackLost && whiteLost:
		return Both
	case blackLost:
		return White
	case whiteLost:
		return Black
	default:
		return None
	}
}

// Apply dispatches a move to the matching validated entry point.
func (b *Board) Apply(m Move) error {
	switch m.Kind {
	case SwapMove:
		if len(m.Positions) != 2 {
			return fmt.Errorf("%w: a swap needs two cells, got %d", ErrSwap, len(m.Positions))
		}
		return b.Swap(m.Positions[0], m.Positions[1])
	case ActionMove:
		if len(m.Positions) < 2 {
			return fmt.Errorf("%w: an action needs an actor and a target", ErrAction)
		}
		return b.Action(m.Actor(), m.Targets())
	case SkipMove:
		return b.SkipAction()
	default:
		return fmt.Errorf("%w: unknown move kind %d", ErrInput, m.Kind)
	}
}

// Play returns the successor board, leaving b untouched. Moves come from the
// move generator, so an illegal one is a bug and panics.
func (b *Board) Play(m Move) *Board {
	next := b.Copy()
	if err := next.Apply(m); err != nil {
		panic(fmt.Sprintf("illegal generated move %q: %v", m, err))
	}
	return next
}

// Hash fingerprints the full state.
func (b *Board) Hash() uint64 {
	var buf [(5 + 3*Cells) * 8]byte
	fields := buf[:0]
	for _, v := range [...]int{int(b.turn), int(b.phase), int(b.winner), b.passes[0], b.passes[1]} {
		fields = binary.LittleEndian.AppendUint64(fields, uint64(v))
	}
	for _, p := range b.cells {
		fields = binary.LittleEndian.AppendUint64(fields, uint64(p.Kind))
		fields = binary.LittleEndian.AppendUint64(fields, uint64(p.Team))
		fields = binary.LittleEndian.AppendUint64(fields, uint64(p.HP))
	}
	hasher := fnv.New64a()
	hasher.Write(fields)
	return hasher.Sum64()
}

// String serializes the board: a status line, then one line per row with a
// '+' after active pieces.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "turn=%s phase=%s passes=%d/%d winner=%s\n", b.turn, b.phase, b.passes[0], b.passes[1], b.winner)
	for row := 0; row < Height; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < Width; col++ {
			p := b.At(Pos(col, row))
			marker := " "
			if p.Active {
				marker = "+"
			}
			sb.WriteString(p.String() + marker)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  ")
	for col := 0; col < Width; col++ {
		fmt.Fprintf(&sb, " %c  ", 'a'+rune(col))
	}
	return sb.String()
}

func sideIndex(c Colour) int {
	switch c {
	case Black:
		return 0
	case White:
		return 1
	default:
		return -1
	}
}

func actionError(pos Position, targets []Position, format string, args ...any) error {
	return fmt.Errorf("%w: %s -> %s: %s", ErrAction, pos, formatPositions(targets), fmt.Sprintf(format, args...))
}
