package game

// PieceView is the wire form of one cell.
type PieceView struct {
	Pos    string `json:"pos"`
	Kind   string `json:"kind"`
	Colour string `json:"colour"`
	Team   string `json:"team"`
	HP     int    `json:"hp"`
	MaxHP  int    `json:"max_hp"`
	Active bool   `json:"active"`
}

// Snapshot is the wire form of a board, used by the observer API and the
// change notifications.
type Snapshot struct {
	Turn   string         `json:"turn"`
	Phase  string         `json:"phase"`
	Winner string         `json:"winner"`
	Passes map[string]int `json:"passes"`
	Cells  []PieceView    `json:"cells"`
}

func (p Piece) View() PieceView {
	return PieceView{
		Pos:    p.Pos.String(),
		Kind:   p.Kind.String(),
		Colour: p.Colour().String(),
		Team:   p.Team.String(),
		HP:     p.HP,
		MaxHP:  p.MaxHP(),
		Active: p.Active,
	}
}

func (b *Board) Snapshot() Snapshot {
	cells := make([]PieceView, 0, Cells)
	for _, p := range b.cells {
		cells = append(cells, p.View())
	}
	return Snapshot{
		Turn:   b.turn.String(),
		Phase:  b.phase.String(),
		Winner: b.winner.String(),
		Passes: map[string]int{
			Black.String(): b.passes[0],
			White.String(): b.passes[1],
		},
		Cells: cells,
	}
}
