package experiments

import (
	"fmt"

	"feud/engine"
	"feud/experiments/metrics"
	"feud/game"
	"feud/searcher"

	"github.com/rs/zerolog/log"
)

const NumGames = 20 // Per match up

const (
	kindRandom    = "random"
	kindAlphaBeta = "alphabeta"
	kindMCTS      = "mcts"
)

// OutputDir is the root the CSV results are written under.
var OutputDir = "experiments"

var randomBaseline = metrics.AgentConfig{ID: 0, Kind: kindRandom, Seed: 1}

var convergenceConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: kindMCTS, Goroutines: 1, Simulations: 10, Seed: 1},
	{ID: 2, Kind: kindMCTS, Goroutines: 1, Simulations: 100, Seed: 1},
	{ID: 3, Kind: kindMCTS, Goroutines: 1, Simulations: 1000, Seed: 1},
	{ID: 4, Kind: kindMCTS, Goroutines: 4, Simulations: 1000, Seed: 1},
}

// RunConvergence pits MCTS agents of growing budgets against the random agent.
func RunConvergence(games int) error {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range convergenceConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{randomBaseline, config})
	}
	return runExperiment("convergence", append(convergenceConfigs, randomBaseline), matchUps, games)
}

// RunMatchUps pits AlphaBeta at its default budget against MCTS agents.
func RunMatchUps(games int) error {
	alphaBeta := metrics.AgentConfig{ID: 0, Kind: kindAlphaBeta}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: kindMCTS, Goroutines: 1, Simulations: 1000, Seed: 1},
		{ID: 2, Kind: kindMCTS, Goroutines: 8, Simulations: 1000, Seed: 1},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{alphaBeta, config})
	}
	return runExperiment("matchups", append(configs, alphaBeta), matchUps, games)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, games int) error {
	if games <= 0 {
		games = NumGames
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			// Alternate colours so neither agent always moves first
			black, white := matchup[0], matchup[1]
			if i%2 == 1 {
				black, white = white, black
			}

			winner, gameMetric, moveMetrics := runGame(black, white, i)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(OutputDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return nil
}

// runGame plays one game, offsetting seeds by the game number so repeated
// games of a match-up differ.
func runGame(black, white metrics.AgentConfig, n int) (game.Colour, metrics.GameMetric, []metrics.MoveMetric) {
	var e engine.Engine = engine.NewMatch(createSearcher(black, n), createSearcher(white, n))
	return e.Run()
}

func createSearcher(config metrics.AgentConfig, offset int) searcher.Searcher {
	seed := config.Seed
	if seed != 0 {
		seed += uint64(offset)
	}

	switch config.Kind {
	case kindRandom:
		return searcher.NewRandom(seed)
	case kindAlphaBeta:
		return searcher.NewAlphaBeta(searcher.WithMaxDepth(config.MaxDepth))
	case kindMCTS:
		options := []searcher.Option{searcher.WithMetrics()}
		if config.Simulations > 0 {
			options = append(options, searcher.WithSimulations(config.Simulations))
		}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		if config.PlayoutCap > 0 {
			options = append(options, searcher.WithPlayoutCap(config.PlayoutCap))
		}
		if config.Goroutines > 0 {
			options = append(options, searcher.WithGoroutines(config.Goroutines))
		}
		if seed != 0 {
			options = append(options, searcher.WithSeed(seed))
		}
		return searcher.NewMCTS(options...)
	default:
		panic(fmt.Sprintf("unknown agent kind %q", config.Kind))
	}
}
