// meta/meta.go
package meta

// WIDTH defines the number of board columns.
const WIDTH = 4

// HEIGHT defines the number of board rows.
const HEIGHT = 4

// MAX_PASSES defines how many skipped actions a side may accumulate before it forfeits.
const MAX_PASSES = 2

// SIMULATIONS defines the number of MCTS iterations per move.
const SIMULATIONS = 1000

// PLAYOUT_CAP defines the maximum number of random moves in an MCTS playout.
const PLAYOUT_CAP = 50

// EXPLORATION defines the UCT exploration constant.
const EXPLORATION = 1.41

// BASE_DEPTH defines the alpha-beta depth before subtracting half the living pieces.
const BASE_DEPTH = 12

// MAX_MOVES caps headless matches so a pass-free shuffle cannot run forever.
const MAX_MOVES = 400
