package searcher

import (
	"sync"
	"time"

	"feud/experiments/metrics"
	"feud/game"
	"feud/meta"

	"golang.org/x/exp/rand"
)

type Option func(m *MCTS)

// MCTS is a Monte-Carlo tree searcher. With more than one goroutine it runs
// root parallelisation: every goroutine grows its own tree and the root
// statistics are summed per move before the final choice. A search is only
// reproducible from a fixed seed with a single goroutine.
type MCTS struct {
	goroutines  int
	simulations int
	duration    time.Duration
	playoutCap  int
	exploration float64
	seed        uint64
	rngs        []*rand.Rand
	metrics     metrics.Collector
}

// tree is the state owned by one search goroutine.
type tree struct {
	root        *node
	simulations int
	rng         *rand.Rand
}

// WithSimulations sets a fixed simulation budget, replacing any duration.
func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
			m.duration = 0
		}
	}
}

// WithDuration sets a time budget, replacing any simulation budget.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
			m.simulations = 0
		}
	}
}

// WithPlayoutCap bounds the number of random moves in one playout.
func WithPlayoutCap(moves int) Option {
	return func(m *MCTS) {
		if moves > 0 {
			m.playoutCap = moves
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  1,
		simulations: meta.SIMULATIONS,
		playoutCap:  meta.PLAYOUT_CAP,
		exploration: Exploration,
		seed:        uint64(time.Now().UnixNano()),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}

	m.rngs = make([]*rand.Rand, m.goroutines)
	for i := range m.rngs {
		m.rngs[i] = rand.New(rand.NewSource(m.seed + uint64(i)))
	}
	return m
}

func (m *MCTS) FindNextMove(b *game.Board) (game.Move, metrics.SearchMetric) {
	m.metrics.Start(m.goroutines, 0)
	trees := m.search(b)
	metric := m.metrics.Complete()
	return bestMove(trees), metric
}

// search grows one tree per goroutine from a copy of b.
func (m *MCTS) search(b *game.Board) []*tree {
	trees := make([]*tree, m.goroutines)
	for i := range trees {
		trees[i] = &tree{root: newNode(nil, game.Move{}, b.Copy()), rng: m.rngs[i]}
	}

	if m.simulations > 0 {
		m.iterate(trees)
	} else {
		m.countdown(trees)
	}
	return trees
}

func (m *MCTS) iterate(trees []*tree) {
	task := make(chan any, m.simulations)
	for i := 0; i < m.simulations; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for _, t := range trees {
		wg.Add(1)
		go func(t *tree) {
			defer wg.Done()

			for range task {
				m.simulate(t)
				m.metrics.AddEpisode()
			}
		}(t)
	}

	wg.Wait()
}

func (m *MCTS) countdown(trees []*tree) {
	done := make(chan any)

	var wg sync.WaitGroup
	for _, t := range trees {
		wg.Add(1)
		go func(t *tree) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(t)
					m.metrics.AddEpisode()
				}
			}
		}(t)
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) simulate(t *tree) {
	t.simulations++

	// Selection
	promising := t.root
	for len(promising.children) > 0 {
		promising = promising.selectChild(m.exploration, t.simulations)
	}

	// Expansion
	if !promising.board.IsTerminal() {
		promising.expand()
	}

	explore := promising
	if len(promising.children) > 0 {
		explore = promising.randomChild(t.rng)
	}

	winner := m.playout(explore.board, t.rng)
	explore.backup(winner)
}

// playout plays uniformly random moves until the game is decided or the cap
// is reached, and returns the winner (None on cap-out).
func (m *MCTS) playout(b *game.Board, rng *rand.Rand) game.Colour {
	state := b
	for i := 0; i < m.playoutCap && !state.IsTerminal(); i++ {
		moves := state.LegalMoves()
		state = state.Play(moves[rng.Intn(len(moves))])
	}

	if state.IsTerminal() {
		m.metrics.AddFullPlayout()
	}
	return state.Winner()
}

// bestMove sums the root children of every tree per move and returns the
// first move with the highest win rate.
func bestMove(trees []*tree) game.Move {
	var expanded *node
	for _, t := range trees {
		if len(t.root.children) > 0 {
			expanded = t.root
			break
		}
	}
	if expanded == nil {
		// No simulation completed within the budget
		root := trees[0].root
		root.expand()
		if len(root.children) == 0 {
			panic("cannot search a decided game")
		}
		return root.children[0].move
	}

	total := make([]node, len(expanded.children))
	for _, t := range trees {
		for i, child := range t.root.children {
			total[i].wins += child.wins
			total[i].visits += child.visits
		}
	}

	best := 0
	for i := range total {
		if total[i].winRate() > total[best].winRate() {
			best = i
		}
	}
	return expanded.children[best].move
}
