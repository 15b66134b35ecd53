package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"feud/game"

	"github.com/rs/zerolog/log"
)

// ErrStopped is returned for moves submitted after the game loop has exited.
var ErrStopped = errors.New("controller stopped")

const queueSize = 16

type request struct {
	text  string
	reply chan error
}

// Controller owns the live board. Moves reach it either through the input
// queue serviced by Run or directly through Apply; both go through the
// board's validated entry points.
type Controller struct {
	mu    sync.Mutex
	board *game.Board

	subMu       sync.RWMutex
	subscribers []Subscriber

	running  atomic.Bool
	submitMu sync.Mutex
	stopped  bool
	inputs   chan request
	done     chan struct{}
}

// NewController starts from a copy of b, or from the standard layout when b
// is nil.
func NewController(b *game.Board) *Controller {
	if b == nil {
		b = game.NewStandardBoard()
	}
	return &Controller{
		board:  b.Copy(),
		inputs: make(chan request, queueSize),
		done:   make(chan struct{}),
	}
}

// Board returns a copy of the live board.
func (c *Controller) Board() *game.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.board.Copy()
}

func (c *Controller) Subscribe(fn Subscriber) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) publish(events []Event) {
	c.subMu.RLock()
	subscribers := make([]Subscriber, len(c.subscribers))
	copy(subscribers, c.subscribers)
	c.subMu.RUnlock()

	for _, e := range events {
		for _, fn := range subscribers {
			fn(e)
		}
	}
}

// Submit queues a move string for the game loop. The returned channel
// receives the validation result once the move has been processed.
func (c *Controller) Submit(text string) <-chan error {
	reply := make(chan error, 1)

	c.submitMu.Lock()
	defer c.submitMu.Unlock()
	if c.stopped {
		reply <- ErrStopped
		return reply
	}
	select {
	case c.inputs <- request{text: text, reply: reply}:
	case <-c.done:
		reply <- ErrStopped
	}
	return reply
}

// Apply validates and plays a move string, then publishes the resulting
// events. The board is unchanged when an error is returned.
func (c *Controller) Apply(text string) error {
	c.mu.Lock()
	before := c.board.Copy()
	move, err := game.ParseMove(text, c.board.Phase())
	if err == nil {
		err = c.board.Apply(move)
	}
	if err != nil {
		c.mu.Unlock()
		log.Warn().Err(err).Msgf("rejected %s move %q", before.Turn(), text)
		return err
	}
	after := c.board.Copy()
	c.mu.Unlock()

	log.Info().Msgf("%s played %s %q", before.Turn(), before.Phase(), text)
	if after.IsTerminal() && !before.IsTerminal() {
		log.Info().Msgf("game over, winner: %s", after.Winner())
	}
	c.publish(diff(before, after))
	return nil
}

// Run is the game loop: it announces the current state, then applies queued
// moves until the game is decided or ctx is done. A controller runs once;
// later calls return ErrStopped.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrStopped
	}
	defer c.stop()

	c.publish(announce(c.Board()))
	for !c.Board().IsTerminal() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-c.inputs:
			req.reply <- c.Apply(req.text)
		}
	}
	return nil
}

// stop rejects queued and future submissions.
func (c *Controller) stop() {
	close(c.done)

	c.submitMu.Lock()
	c.stopped = true
	c.submitMu.Unlock()

	for {
		select {
		case req := <-c.inputs:
			req.reply <- ErrStopped
		default:
			return
		}
	}
}
