package engine

import "feud/game"

// Event is a change notification published by a Controller.
type Event interface {
	event()
}

// TileChanged reports the new occupant of a cell.
type TileChanged struct {
	Pos   game.Position
	Piece game.Piece
}

// TurnChanged reports the side and phase now expected to move.
type TurnChanged struct {
	Turn  game.Colour
	Phase game.Phase
}

type GameFinished struct {
	Winner game.Colour
}

func (TileChanged) event()  {}
func (TurnChanged) event()  {}
func (GameFinished) event() {}

// Subscriber receives events synchronously, in registration order. It must
// not call back into the controller's Apply.
type Subscriber func(Event)

// diff lists the events that turn before into after. A decided game reports
// GameFinished instead of a turn change.
func diff(before, after *game.Board) []Event {
	var events []Event
	old := before.Pieces()
	for i, p := range after.Pieces() {
		if old[i] != p {
			events = append(events, TileChanged{Pos: p.Pos, Piece: p})
		}
	}

	switch {
	case after.IsTerminal():
		if !before.IsTerminal() {
			events = append(events, GameFinished{Winner: after.Winner()})
		}
	case before.Turn() != after.Turn() || before.Phase() != after.Phase():
		events = append(events, TurnChanged{Turn: after.Turn(), Phase: after.Phase()})
	}
	return events
}

// announce lists every tile and the current turn, for new observers.
func announce(b *game.Board) []Event {
	events := make([]Event, 0, game.Cells+1)
	for _, p := range b.Pieces() {
		events = append(events, TileChanged{Pos: p.Pos, Piece: p})
	}
	if b.IsTerminal() {
		return append(events, GameFinished{Winner: b.Winner()})
	}
	return append(events, TurnChanged{Turn: b.Turn(), Phase: b.Phase()})
}
