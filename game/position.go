package game

import (
	"fmt"
	"strings"

	"feud/meta"
)

const (
	Width  = meta.WIDTH
	Height = meta.HEIGHT
	Cells  = Width * Height
)

// Position is a (column, row) cell address, 0-indexed.
type Position struct {
	Col int
	Row int
}

func Pos(col, row int) Position {
	return Position{Col: col, Row: row}
}

func (p Position) InBounds() bool {
	return 0 <= p.Col && p.Col < Width && 0 <= p.Row && p.Row < Height
}

// Index is the board-order index used for canonical swap ordering.
func (p Position) Index() int {
	return p.Col + p.Row*Width
}

func positionAt(index int) Position {
	return Position{Col: index % Width, Row: index / Width}
}

// Neighbours returns the up/down/left/right cells clipped to the board.
func (p Position) Neighbours() []Position {
	candidates := [4]Position{
		{p.Col - 1, p.Row},
		{p.Col, p.Row + 1},
		{p.Col + 1, p.Row},
		{p.Col, p.Row - 1},
	}
	out := make([]Position, 0, 4)
	for _, c := range candidates {
		if c.InBounds() {
			out = append(out, c)
		}
	}
	return out
}

func Manhattan(a, b Position) int {
	return abs(a.Col-b.Col) + abs(a.Row-b.Row)
}

// Direction returns the unit step from a toward b along each axis.
func Direction(a, b Position) Position {
	return Position{Col: sign(b.Col - a.Col), Row: sign(b.Row - a.Row)}
}

func (p Position) Add(step Position) Position {
	return Position{Col: p.Col + step.Col, Row: p.Row + step.Row}
}

// String formats the position as a letter column and a 1-based row, e.g. "a1".
func (p Position) String() string {
	return fmt.Sprintf("%c%d", 'a'+rune(p.Col), p.Row+1)
}

// ParsePosition reads a coordinate such as "a1" or "D4".
func ParsePosition(text string) (Position, error) {
	if len(text) != 2 {
		return Position{}, fmt.Errorf("%w: coordinate %q must be a letter and a digit", ErrInput, text)
	}
	letter := strings.ToLower(text[:1])[0]
	digit := text[1]
	if letter < 'a' || letter >= 'a'+Width {
		return Position{}, fmt.Errorf("%w: column %q out of range a-%c", ErrInput, text[:1], 'a'+Width-1)
	}
	if digit < '1' || digit >= '1'+Height {
		return Position{}, fmt.Errorf("%w: row %q out of range 1-%d", ErrInput, text[1:], Height)
	}
	return Position{Col: int(letter - 'a'), Row: int(digit - '1')}, nil
}

// ParsePositions reads whitespace-separated coordinates.
func ParsePositions(text string) ([]Position, error) {
	fields := strings.Fields(text)
	out := make([]Position, 0, len(fields))
	for _, field := range fields {
		p, err := ParsePosition(field)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
