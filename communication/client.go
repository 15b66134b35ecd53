package communication

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"feud/engine"
	"feud/game"
	"feud/player"

	"github.com/rs/zerolog/log"
)

// Client plays one side of a networked game. It mirrors the game on a local
// controller by applying every move the server relays.
type Client struct {
	conn       net.Conn
	ID         int
	Colour     game.Colour
	controller *engine.Controller
	source     player.MoveSource
}

// Dial connects to a server and waits for the player id.
func Dial(ctx context.Context, addr string, source player.MoveSource) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	greeting, err := ReadPacket(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to read greeting: %w", err)
	}
	id, err := strconv.Atoi(greeting.Body)
	if greeting.Status != StatusOK || greeting.Command != Connected || err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: unexpected greeting %q", ErrPacket, greeting)
	}

	colour := game.Black
	if id == 1 {
		colour = game.White
	}
	log.Info().Msgf("connected to %s as player %d (%s)", addr, id, colour)
	return &Client{
		conn:       conn,
		ID:         id,
		Colour:     colour,
		controller: engine.NewController(nil),
		source:     source,
	}, nil
}

// Controller exposes the local mirror of the game.
func (c *Client) Controller() *engine.Controller {
	return c.controller
}

// Play answers sync requests and applies relayed moves until the server
// ends the game.
func (c *Client) Play(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	for {
		p, err := ReadPacket(c.conn)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to read from server: %w", err)
		}

		if p.Status != StatusOK {
			log.Warn().Msgf("server rejected the last move: %s", p.Body)
			continue
		}

		switch p.Command {
		case Quit:
			log.Info().Msgf("server ended the game: %s", p.Body)
			return nil
		case Sync:
			if err := c.answer(p.Body); err != nil {
				return err
			}
		case Swap, Action:
			if err := c.controller.Apply(p.Body); err != nil {
				return fmt.Errorf("local game diverged from the server: %w", err)
			}
		default:
			log.Warn().Msgf("ignoring unexpected packet %q", p)
		}
	}
}

func (c *Client) answer(request string) error {
	command := Command(request)
	if command != Swap && command != Action {
		return fmt.Errorf("%w: bad sync request %q", ErrPacket, request)
	}

	move, err := c.source.NextMove(c.controller.Board())
	if err != nil {
		c.Quit()
		return fmt.Errorf("no move to send: %w", err)
	}
	return WritePacket(c.conn, OK(command, move))
}

// Quit tells the server this player is leaving.
func (c *Client) Quit() error {
	return WritePacket(c.conn, OK(Quit, "Bye"))
}

func (c *Client) Close() error {
	err := c.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
