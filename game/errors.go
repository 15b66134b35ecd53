package game

import "errors"

var (
	ErrInput    = errors.New("input error")
	ErrSwap     = errors.New("swap error")
	ErrAction   = errors.New("action error")
	ErrBoard    = errors.New("board error")
	ErrGameOver = errors.New("game is over")
)
