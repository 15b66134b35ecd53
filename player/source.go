package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"feud/game"
	"feud/searcher"
)

// MoveSource answers a request for the next move on a board.
type MoveSource interface {
	NextMove(b *game.Board) (string, error)
}

// Human reads moves line by line, prompting on Out.
type Human struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{scanner: bufio.NewScanner(in), out: out}
}

func (h *Human) NextMove(b *game.Board) (string, error) {
	fmt.Fprintf(h.out, "%s\n%s %s> ", b, b.Turn(), b.Phase())
	if !h.scanner.Scan() {
		if err := h.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(h.scanner.Text()), nil
}

// Auto answers with a searcher's choice.
type Auto struct {
	Searcher searcher.Searcher
}

func (a Auto) NextMove(b *game.Board) (string, error) {
	if b.IsTerminal() {
		return "", errors.New("game is already decided")
	}
	move, _ := a.Searcher.FindNextMove(b)
	return move.String(), nil
}
