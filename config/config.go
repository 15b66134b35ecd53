package config

import (
	"encoding/json"
	"fmt"
	"os"

	"feud/game"
	"feud/searcher"
	"feud/utils"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "feud/config.json"
)

// Agent kinds for the two sides.
const (
	AgentHuman     = "human"
	AgentRandom    = "random"
	AgentAlphaBeta = "alphabeta"
	AgentMCTS      = "mcts"
)

var agents = []string{AgentHuman, AgentRandom, AgentAlphaBeta, AgentMCTS}

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type MCTSConfig struct {
	Simulations int     `json:"simulations"`
	Goroutines  int     `json:"goroutines"`
	PlayoutCap  int     `json:"playout_cap"`
	Exploration float64 `json:"exploration"`
	Seed        uint64  `json:"seed"` // 0 seeds from the clock
}

type AlphaBetaConfig struct {
	MaxDepth int `json:"max_depth"` // 0 keeps the piece-count budget
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type ObserverConfig struct {
	Addr string `json:"addr"`
}

type Config struct {
	Black     string          `json:"black"`
	White     string          `json:"white"`
	MCTS      MCTSConfig      `json:"mcts"`
	AlphaBeta AlphaBetaConfig `json:"alphabeta"`
	Server    ServerConfig    `json:"server"`
	Observer  ObserverConfig  `json:"observer"`
	LogLevel  string          `json:"log_level"`
}

// InitConfig loads the user's config file over the defaults. A missing file
// is not an error.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return LoadFile(absPath)
}

// LoadFile reads a config file over the defaults and validates the result.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &InvalidConfig{fmt.Sprintf("%s: %v", path, err)}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, agent := range []string{c.Black, c.White} {
		if utils.FindIndex(agents, agent) < 0 {
			return &InvalidConfig{fmt.Sprintf("unknown agent %q", agent)}
		}
	}
	if c.MCTS.Simulations <= 0 {
		return &InvalidConfig{"mcts.simulations must be positive"}
	}
	if c.MCTS.Goroutines <= 0 {
		return &InvalidConfig{"mcts.goroutines must be positive"}
	}
	if c.MCTS.PlayoutCap <= 0 {
		return &InvalidConfig{"mcts.playout_cap must be positive"}
	}
	if c.MCTS.Exploration < 0 {
		return &InvalidConfig{"mcts.exploration cannot be negative"}
	}
	if c.AlphaBeta.MaxDepth < 0 {
		return &InvalidConfig{"alphabeta.max_depth cannot be negative"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	return nil
}

// Level is the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Agent returns the agent kind playing colour.
func (c *Config) Agent(colour game.Colour) string {
	if colour == game.White {
		return c.White
	}
	return c.Black
}

// Searcher builds the searcher for colour, or nil for a human side.
func (c *Config) Searcher(colour game.Colour) searcher.Searcher {
	return c.NewSearcher(c.Agent(colour))
}

// NewSearcher builds a searcher of the given agent kind from the search
// settings, or nil for a human.
func (c *Config) NewSearcher(kind string) searcher.Searcher {
	switch kind {
	case AgentRandom:
		return searcher.NewRandom(c.MCTS.Seed)
	case AgentAlphaBeta:
		return searcher.NewAlphaBeta(searcher.WithMaxDepth(c.AlphaBeta.MaxDepth))
	case AgentMCTS:
		options := []searcher.Option{
			searcher.WithSimulations(c.MCTS.Simulations),
			searcher.WithGoroutines(c.MCTS.Goroutines),
			searcher.WithPlayoutCap(c.MCTS.PlayoutCap),
			searcher.WithExploration(c.MCTS.Exploration),
			searcher.WithMetrics(),
		}
		if c.MCTS.Seed != 0 {
			options = append(options, searcher.WithSeed(c.MCTS.Seed))
		}
		return searcher.NewMCTS(options...)
	default:
		return nil
	}
}

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to locate config file: %w", err)
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a any, perm os.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
