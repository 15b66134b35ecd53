package config

import "feud/meta"

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		Black: AgentHuman,
		White: AgentMCTS,
		MCTS: MCTSConfig{
			Simulations: meta.SIMULATIONS,
			Goroutines:  1,
			PlayoutCap:  meta.PLAYOUT_CAP,
			Exploration: meta.EXPLORATION,
		},
		AlphaBeta: AlphaBetaConfig{},
		Server:    ServerConfig{Addr: "localhost:60555"},
		Observer:  ObserverConfig{Addr: "localhost:8080"},
		LogLevel:  "info",
	}
}
