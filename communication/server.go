package communication

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"feud/engine"
	"feud/game"

	"github.com/rs/zerolog/log"
)

const NumPlayers = 2

// Server referees a game between two TCP players. Player 0 plays Black and
// player 1 plays White. Every move is validated by the server's controller
// before it is relayed to both players.
type Server struct {
	listener   net.Listener
	controller *engine.Controller
	mu         sync.Mutex
	players    []net.Conn
}

func Listen(addr string, controller *engine.Controller) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	log.Info().Msgf("server started on %s", listener.Addr())
	return &Server{listener: listener, controller: controller}, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) Controller() *engine.Controller {
	return s.controller
}

// Serve connects both players and referees the game until it ends.
func (s *Server) Serve(ctx context.Context) error {
	defer s.Close()
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	if err := s.connectPlayers(); err != nil {
		return err
	}
	err := s.play()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *Server) connectPlayers() error {
	for i := 0; i < NumPlayers; i++ {
		conn, err := s.listener.Accept()
		if err != nil {
			return fmt.Errorf("failed to accept player %d: %w", i, err)
		}
		s.mu.Lock()
		s.players = append(s.players, conn)
		s.mu.Unlock()
		if err := WritePacket(conn, OK(Connected, strconv.Itoa(i))); err != nil {
			return fmt.Errorf("failed to greet player %d: %w", i, err)
		}
		log.Info().Msgf("player %d connected from %s", i, conn.RemoteAddr())
	}
	return nil
}

func (s *Server) play() error {
	for {
		board := s.controller.Board()
		if board.IsTerminal() {
			return s.broadcast(OK(Quit, fmt.Sprintf("winner %s", board.Winner())))
		}

		player := s.players[playerIndex(board.Turn())]
		request := Swap
		if board.Phase() == game.ActionPhase {
			request = Action
		}
		if err := WritePacket(player, OK(Sync, string(request))); err != nil {
			return s.abort(board.Turn(), err)
		}

		reply, err := ReadPacket(player)
		if errors.Is(err, ErrPacket) {
			log.Warn().Err(err).Msgf("bad packet from %s", board.Turn())
			if err := WritePacket(player, Fail(Error, "bad command")); err != nil {
				return s.abort(board.Turn(), err)
			}
			continue
		}
		if err != nil {
			return s.abort(board.Turn(), err)
		}

		switch reply.Command {
		case Quit:
			log.Info().Msgf("%s quit", board.Turn())
			return s.broadcast(OK(Quit, fmt.Sprintf("%s quit", board.Turn())))
		case Swap, Action:
			if reply.Command != request {
				err = fmt.Errorf("%w: expected %s, got %s", game.ErrInput, request, reply.Command)
			} else {
				err = s.controller.Apply(reply.Body)
			}
		default:
			err = fmt.Errorf("%w: unknown command %s", game.ErrInput, reply.Command)
		}

		if err != nil {
			if err := WritePacket(player, Fail(Error, err.Error())); err != nil {
				return s.abort(board.Turn(), err)
			}
			continue
		}
		if err := s.broadcast(OK(reply.Command, reply.Body)); err != nil {
			return err
		}
	}
}

// abort tells the remaining players that the game cannot go on.
func (s *Server) abort(turn game.Colour, cause error) error {
	log.Error().Err(cause).Msgf("lost connection to %s", turn)
	s.broadcast(OK(Quit, fmt.Sprintf("%s disconnected", turn)))
	return fmt.Errorf("connection to %s failed: %w", turn, cause)
}

func (s *Server) broadcast(p Packet) error {
	var errs []error
	for i, conn := range s.players {
		if err := WritePacket(conn, p); err != nil {
			errs = append(errs, fmt.Errorf("player %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Server) Close() error {
	err := s.listener.Close()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conn := range s.players {
		conn.Close()
	}
	return err
}

func playerIndex(c game.Colour) int {
	if c == game.White {
		return 1
	}
	return 0
}
