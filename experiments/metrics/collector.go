package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes the work done by one move search.
type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int // MCTS simulations
	FullPlayouts int // playouts that reached a decided game before the cap
	Nodes        int // AlphaBeta nodes visited
	Depth        int // AlphaBeta depth budget
}

type MoveMetric struct {
	Step   int
	Player string // Colour
	Move   string
	SearchMetric
}

type GameMetric struct {
	Starting   string // Colour
	Winner     string // Colour, "None" when the move cap is hit
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(goroutines, depth int)
	AddEpisode()
	AddFullPlayout()
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	depth        int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	nodes        atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, depth int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.depth = depth
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Nodes:        int(m.nodes.Load()),
		Depth:        m.depth,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, depth int) {}
func (m *dummyCollector) AddEpisode()                 {}
func (m *dummyCollector) AddFullPlayout()             {}
func (m *dummyCollector) AddNode()                    {}
func (m *dummyCollector) Complete() SearchMetric      { return SearchMetric{} }
