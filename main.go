package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"feud/communication"
	"feud/config"
	"feud/engine"
	"feud/experiments"
	"feud/game"
	"feud/player"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "local", "local, server, client, observer or experiment")
	cfgPath := flag.String("config", "", "Config file (defaults to the XDG config location)")
	black := flag.String("black", "", "Agent playing Black: human, random, alphabeta or mcts")
	white := flag.String("white", "", "Agent playing White: human, random, alphabeta or mcts")
	agent := flag.String("agent", "", "Agent answering for this client")
	addr := flag.String("addr", "", "Game server address")
	observe := flag.String("observe", "", "Serve the observer API on this address")
	experiment := flag.String("experiment", "convergence", "convergence or matchups")
	games := flag.Int("games", experiments.NumGames, "Games per match-up")
	save := flag.Bool("save", false, "Write the effective config back to the XDG config location")
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *black != "" {
		cfg.Black = *black
	}
	if *white != "" {
		cfg.White = *white
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *observe != "" {
		cfg.Observer.Addr = *observe
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *save {
		if err := cfg.Save(); err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	switch *mode {
	case "local":
		err = runLocal(ctx, cfg, *observe != "")
	case "server":
		err = runServer(ctx, cfg, *observe != "")
	case "client":
		kind := *agent
		if kind == "" {
			kind = config.AgentHuman
		}
		err = runClient(ctx, cfg, kind, *observe != "")
	case "observer":
		err = runObserver(ctx, cfg)
	case "experiment":
		err = runExperiment(*experiment, *games)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msgf("%s mode failed", *mode)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.InitConfig()
	}
	return config.LoadFile(path)
}

// observeInBackground serves the observer API until ctx is done.
func observeInBackground(ctx context.Context, controller *engine.Controller, addr string, options ...communication.ObserverOption) {
	observer := communication.NewObserver(controller, options...)
	go func() {
		if err := observer.ListenAndServe(ctx, addr); err != nil {
			log.Error().Err(err).Msg("observer stopped")
		}
	}()
}

// startBots attaches a bot to every side the config does not give a human.
func startBots(cfg *config.Config, controller *engine.Controller) []game.Colour {
	var humans []game.Colour
	for _, colour := range []game.Colour{game.Black, game.White} {
		s := cfg.Searcher(colour)
		if s == nil {
			humans = append(humans, colour)
			continue
		}
		player.NewBot(colour, controller, s)
	}
	return humans
}

func runLocal(ctx context.Context, cfg *config.Config, observe bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controller := engine.NewController(nil)
	humans := startBots(cfg, controller)
	console := player.NewConsole(controller, os.Stdout, humans...)
	if observe {
		observeInBackground(ctx, controller, cfg.Observer.Addr, communication.ReadOnly())
	}

	if len(humans) > 0 {
		go func() {
			// Closing stdin ends the game
			defer cancel()
			if err := console.Read(ctx, os.Stdin); err != nil {
				log.Error().Err(err).Msg("failed to read input")
			}
		}()
	}
	return controller.Run(ctx)
}

func runServer(ctx context.Context, cfg *config.Config, observe bool) error {
	server, err := communication.Listen(cfg.Server.Addr, engine.NewController(nil))
	if err != nil {
		return err
	}
	defer server.Close()

	if observe {
		observeInBackground(ctx, server.Controller(), cfg.Observer.Addr, communication.ReadOnly())
	}
	return server.Serve(ctx)
}

func runClient(ctx context.Context, cfg *config.Config, kind string, observe bool) error {
	var source player.MoveSource = player.NewHuman(os.Stdin, os.Stdout)
	if s := cfg.NewSearcher(kind); s != nil {
		source = player.Auto{Searcher: s}
	}

	client, err := communication.Dial(ctx, cfg.Server.Addr, source)
	if err != nil {
		return err
	}
	defer client.Close()

	if observe {
		observeInBackground(ctx, client.Controller(), cfg.Observer.Addr, communication.ReadOnly())
	}
	return client.Play(ctx)
}

// runObserver plays a local game whose human sides move through the HTTP API.
func runObserver(ctx context.Context, cfg *config.Config) error {
	controller := engine.NewController(nil)
	startBots(cfg, controller)
	observeInBackground(ctx, controller, cfg.Observer.Addr)

	if err := controller.Run(ctx); err != nil {
		return err
	}
	// Keep serving so clients can read the final board
	<-ctx.Done()
	return nil
}

func runExperiment(name string, games int) error {
	switch name {
	case "convergence":
		return experiments.RunConvergence(games)
	case "matchups":
		return experiments.RunMatchUps(games)
	default:
		return fmt.Errorf("unknown experiment %q", name)
	}
}
