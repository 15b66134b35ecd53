package player

import (
	"sync"

	"feud/engine"
	"feud/game"
	"feud/searcher"

	"github.com/rs/zerolog/log"
)

// Bot plays one side of a controller's game. It searches on its own goroutine
// whenever its side is to move and submits the result through the input
// queue like any other move source.
type Bot struct {
	Colour     game.Colour
	controller *engine.Controller
	searcher   searcher.Searcher
	mu         sync.Mutex // one search at a time
	wg         sync.WaitGroup
}

// NewBot creates a bot and subscribes it to the controller's events.
func NewBot(colour game.Colour, controller *engine.Controller, s searcher.Searcher) *Bot {
	b := &Bot{
		Colour:     colour,
		controller: controller,
		searcher:   s,
	}
	controller.Subscribe(b.notify)
	return b
}

func (b *Bot) notify(e engine.Event) {
	turn, ok := e.(engine.TurnChanged)
	if !ok || turn.Turn != b.Colour {
		return
	}
	b.wg.Add(1)
	go b.move(turn.Phase)
}

func (b *Bot) move(phase game.Phase) {
	defer b.wg.Done()
	b.mu.Lock()
	defer b.mu.Unlock()

	board := b.controller.Board()
	if board.IsTerminal() || board.Turn() != b.Colour || board.Phase() != phase {
		return
	}

	move, metric := b.searcher.FindNextMove(board)
	log.Info().Msgf("bot %s chose %s %q (episodes=%d nodes=%d duration=%s)",
		b.Colour, phase, move, metric.Episodes, metric.Nodes, metric.Duration)

	if err := <-b.controller.Submit(move.String()); err != nil {
		log.Error().Err(err).Msgf("bot %s move %q was rejected", b.Colour, move)
	}
}

// Wait blocks until every search started so far has been submitted.
func (b *Bot) Wait() {
	b.wg.Wait()
}
