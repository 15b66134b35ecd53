package game

import "fmt"

// Kind is the closed set of piece variants.
type Kind int

const (
	Empty Kind = iota
	Archer
	King
	Knight
	Medic
	Shield
	Wizard
)

var kindLetters = [...]byte{Empty: '.', Archer: 'A', King: 'K', Knight: 'N', Medic: 'M', Shield: 'S', Wizard: 'W'}

func (k Kind) String() string {
	switch k {
	case Archer:
		return "Archer"
	case King:
		return "King"
	case Knight:
		return "Knight"
	case Medic:
		return "Medic"
	case Shield:
		return "Shield"
	case Wizard:
		return "Wizard"
	default:
		return "Empty"
	}
}

// Piece is the occupant of one cell. Every cell holds a piece; unoccupied
// cells hold an Empty one. Pieces are plain values so a Board copies by
// assignment.
type Piece struct {
	Kind   Kind
	Team   Colour // owning side; kept after death so the king can still be found
	HP     int
	Active bool
	Pos    Position
}

// NewPiece returns a full-health piece of the given kind.
func NewPiece(kind Kind, team Colour) Piece {
	if kind == Empty {
		team = None
	}
	return Piece{Kind: kind, Team: team, HP: kindStats[kind].maxHP}
}

// Wounded returns a piece of the given kind with a specific hit-point total.
func Wounded(kind Kind, team Colour, hp int) Piece {
	p := NewPiece(kind, team)
	p.HP = min(max(hp, 0), p.MaxHP())
	return p
}

func (p Piece) MaxHP() int {
	return kindStats[p.Kind].maxHP
}

func (p Piece) MaxTargets() int {
	return kindStats[p.Kind].maxTargets
}

func (p Piece) Alive() bool {
	return p.Kind != Empty && p.HP > 0
}

// Colour is the side the piece currently fights for: None once dead.
func (p Piece) Colour() Colour {
	if !p.Alive() {
		return None
	}
	return p.Team
}

// Blocks reports whether the piece obstructs an enemy Archer's line of sight.
func (p Piece) Blocks() bool {
	return p.Alive() && kindStats[p.Kind].blocks
}

// Swapable reports whether an adjacent opposing piece may swap with it.
func (p Piece) Swapable() bool {
	return p.Alive() && kindStats[p.Kind].swapable
}

func (p Piece) CanAct() bool {
	return p.Alive() && p.Active && p.MaxTargets() > 0
}

// CanSwap is the shared swap-eligibility rule.
func (p Piece) CanSwap(other Piece) bool {
	return p.Active &&
		Manhattan(p.Pos, other.Pos) == 1 &&
		(p.Colour() == other.Colour() || other.Swapable())
}

func (p *Piece) takeDamage() {
	p.HP = max(p.HP-1, 0)
	if p.HP == 0 {
		p.Active = false
	}
}

func (p *Piece) heal() {
	p.HP = min(p.HP+1, p.MaxHP())
}

// String renders a piece as three characters: side, kind and hit points,
// e.g. "bK4". Empty cells and dead pieces keep their kind but show no side.
func (p Piece) String() string {
	if p.Kind == Empty {
		return " . "
	}
	side := byte('-')
	switch p.Colour() {
	case Black:
		side = 'b'
	case White:
		side = 'w'
	}
	return fmt.Sprintf("%c%c%d", side, kindLetters[p.Kind], p.HP)
}
