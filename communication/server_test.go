package communication

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"feud/engine"
	"feud/game"

	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) (*Server, <-chan error) {
	t.Helper()
	s, err := Listen("127.0.0.1:0", engine.NewController(nil))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	result := make(chan error, 1)
	go func() { result <- s.Serve(ctx) }()
	return s, result
}

func expect(t *testing.T, conn net.Conn, want Packet) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	got, err := ReadPacket(conn)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestServerProtocol(t *testing.T) {
	s, result := startServer(t)

	black, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer black.Close()
	expect(t, black, OK(Connected, "0"))

	white, err := net.Dial("tcp", s.Addr().String())
	require.NoError(t, err)
	defer white.Close()
	expect(t, white, OK(Connected, "1"))

	t.Run("wrong command for the phase", func(t *testing.T) {
		expect(t, black, OK(Sync, "SWAP"))
		require.NoError(t, WritePacket(black, OK(Action, "b2 c2")))
		black.SetReadDeadline(time.Now().Add(5 * time.Second))
		reply, err := ReadPacket(black)
		require.NoError(t, err)
		require.Equal(t, StatusFail, reply.Status)
		require.Equal(t, Error, reply.Command)
		require.Contains(t, reply.Body, "expected SWAP")
	})

	t.Run("unknown command", func(t *testing.T) {
		expect(t, black, OK(Sync, "SWAP"))
		require.NoError(t, WritePacket(black, Packet{Status: StatusOK, Command: "JUMP", Body: "a1"}))
		expect(t, black, Fail(Error, "bad command"))
	})

	t.Run("illegal move", func(t *testing.T) {
		expect(t, black, OK(Sync, "SWAP"))
		require.NoError(t, WritePacket(black, OK(Swap, "a1 c1")))
		black.SetReadDeadline(time.Now().Add(5 * time.Second))
		reply, err := ReadPacket(black)
		require.NoError(t, err)
		require.Equal(t, StatusFail, reply.Status)
		require.Contains(t, reply.Body, "cannot be swapped")
	})

	t.Run("accepted move is relayed to both players", func(t *testing.T) {
		expect(t, black, OK(Sync, "SWAP"))
		require.NoError(t, WritePacket(black, OK(Swap, "a1 b1")))
		expect(t, black, OK(Swap, "a1 b1"))
		expect(t, white, OK(Swap, "a1 b1"))
		require.Equal(t, game.ActionPhase, s.Controller().Board().Phase())
	})

	t.Run("quit ends the game for both", func(t *testing.T) {
		expect(t, black, OK(Sync, "ACTION"))
		require.NoError(t, WritePacket(black, OK(Quit, "Bye")))
		expect(t, black, OK(Quit, "Black quit"))
		expect(t, white, OK(Quit, "Black quit"))
		require.NoError(t, <-result)
	})
}

// script is a move source that replays fixed moves, then gives up.
type script struct {
	moves []string
}

func (s *script) NextMove(b *game.Board) (string, error) {
	if len(s.moves) == 0 {
		return "", errors.New("script exhausted")
	}
	move := s.moves[0]
	s.moves = s.moves[1:]
	return move, nil
}

func TestClient(t *testing.T) {
	s, result := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	black, err := Dial(ctx, s.Addr().String(), &script{moves: []string{"a1 c1", "a1 b1", ""}})
	require.NoError(t, err)
	defer black.Close()
	require.Equal(t, game.Black, black.Colour)

	white, err := Dial(ctx, s.Addr().String(), &script{moves: []string{"a4 b4", ""}})
	require.NoError(t, err)
	defer white.Close()
	require.Equal(t, 1, white.ID)
	require.Equal(t, game.White, white.Colour)

	blackDone := make(chan error, 1)
	go func() { blackDone <- black.Play(ctx) }()
	require.NoError(t, white.Play(ctx), "White leaves when the server quits")
	require.ErrorContains(t, <-blackDone, "script exhausted")
	require.NoError(t, <-result)

	want := s.Controller().Board().String()
	require.Equal(t, want, white.Controller().Board().String())
	require.Equal(t, want, black.Controller().Board().String())

	b := s.Controller().Board()
	require.Equal(t, game.King, b.At(game.Pos(0, 0)).Kind)
	require.Equal(t, game.King, b.At(game.Pos(0, 3)).Kind)
	require.Equal(t, 1, b.Passes(game.Black))
	require.Equal(t, 1, b.Passes(game.White))
}
