package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"feud/engine"
	"feud/game"
)

// Console connects a terminal to a controller: it prints the board whenever
// the turn changes and submits typed lines for the human sides.
type Console struct {
	controller *engine.Controller
	humans     map[game.Colour]bool
	out        io.Writer
}

func NewConsole(controller *engine.Controller, out io.Writer, humans ...game.Colour) *Console {
	c := &Console{
		controller: controller,
		humans:     make(map[game.Colour]bool),
		out:        out,
	}
	for _, colour := range humans {
		c.humans[colour] = true
	}
	controller.Subscribe(c.notify)
	return c
}

func (c *Console) notify(e engine.Event) {
	switch e := e.(type) {
	case engine.TurnChanged:
		fmt.Fprintf(c.out, "%s\n%s to %s\n", c.controller.Board(), e.Turn, strings.ToLower(e.Phase.String()))
	case engine.GameFinished:
		fmt.Fprintf(c.out, "%s\nwinner: %s\n", c.controller.Board(), e.Winner)
	}
}

// Read submits lines from in until it is exhausted or ctx is done.
func (c *Console) Read(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		board := c.controller.Board()
		if board.IsTerminal() {
			return nil
		}
		if !c.humans[board.Turn()] {
			fmt.Fprintf(c.out, "waiting for %s\n", board.Turn())
			continue
		}
		if err := <-c.controller.Submit(scanner.Text()); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}
