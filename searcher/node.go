package searcher

import (
	"feud/game"

	"golang.org/x/exp/rand"
)

// node is one state of a search tree. Each tree is owned by a single
// goroutine, so nodes carry no locks.
type node struct {
	parent   *node
	move     game.Move // move that led here from parent
	board    *game.Board
	children []*node
	wins     int
	visits   int
}

func newNode(parent *node, move game.Move, board *game.Board) *node {
	return &node{parent: parent, move: move, board: board}
}

// expand adds one child per legal move. Decided boards get no children.
func (n *node) expand() {
	moves := n.board.LegalMoves()
	n.children = make([]*node, 0, len(moves))
	for _, m := range moves {
		n.children = append(n.children, newNode(n, m, n.board.Play(m)))
	}
}

// selectChild returns the first child with the highest UCT score.
func (n *node) selectChild(c float64, simulations int) *node {
	policy := newUCT(c, n.visits, simulations)
	best := n.children[0]
	bestScore := policy.evaluate(best.wins, best.visits)
	for _, child := range n.children[1:] {
		if score := policy.evaluate(child.wins, child.visits); score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

func (n *node) randomChild(rng *rand.Rand) *node {
	return n.children[rng.Intn(len(n.children))]
}

// backup walks to the root crediting a win to every node whose state the
// winner moved into: swap-phase nodes where the side to move lost, and
// action-phase nodes where the side to move won.
func (n *node) backup(winner game.Colour) {
	for cur := n; cur != nil; cur = cur.parent {
		cur.visits++
		turn := cur.board.Turn()
		switch cur.board.Phase() {
		case game.SwapPhase:
			if turn != winner {
				cur.wins++
			}
		case game.ActionPhase:
			if turn == winner {
				cur.wins++
			}
		}
	}
}

// winRate is the final-choice score; unvisited children never win it.
func (n *node) winRate() float64 {
	if n.visits == 0 {
		return -1
	}
	return float64(n.wins) / float64(n.visits)
}
