package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thraizz/hearthsim/internal/cards"
	"github.com/thraizz/hearthsim/internal/cards/script"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/config"
	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/sim"
	"github.com/thraizz/hearthsim/internal/tournament"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	games      = flag.Int("games", 0, "number of games, overrides simulation.games")
	seed       = flag.Uint64("seed", 0, "seed of the first game, overrides game.seed")
	aggressive = flag.Bool("aggressive", false, "seat 0 plays the aggressive policy")
	roundRobin = flag.Bool("tournament", false, "play a round robin between every deck in the list")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *games > 0 {
		cfg.Simulation.Games = *games
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting simulation",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalogue(ctx, cfg.Catalogue, logger)
	if err != nil {
		logger.Fatal("failed to load catalogue", zap.Error(err))
	}

	reg := game.NewEffectRegistry(logger)
	cards.Register(reg)
	if cfg.Catalogue.ScriptsDir != "" {
		reg.AddSource(script.NewLoader(cfg.Catalogue.ScriptsDir, logger))
		logger.Info("card scripts enabled", zap.String("dir", cfg.Catalogue.ScriptsDir))
	}
	logger.Info("effect registry initialized", zap.Int("cards", reg.Len()))

	gameCfg := cfg.Game.GameConfig()
	if gameCfg.Seed == 0 {
		gameCfg.Seed = uint64(time.Now().UnixNano())
	}

	opts := sim.Options{
		Games:     cfg.Simulation.Games,
		Parallel:  cfg.Simulation.Parallel,
		Seed:      gameCfg.Seed,
		Config:    gameCfg,
		Catalogue: cat,
		Registry:  reg,
		ReplayDir: cfg.Simulation.ReplayDir,
	}
	if *aggressive {
		opts.NewPolicy = func(seed uint64, seat int) sim.Policy {
			random := sim.NewRandomPolicy(seed*2 + uint64(seat))
			if seat == 0 {
				return &sim.AggressivePolicy{Random: random}
			}
			return random
		}
	}

	if *roundRobin {
		runTournament(ctx, cfg, cat, opts, logger)
		return
	}

	decks, err := selectDecks(cfg, cat)
	if err != nil {
		logger.Fatal("failed to select decks", zap.Error(err))
	}
	opts.Decks = decks

	start := time.Now()
	res, err := sim.NewRunner(opts, logger).Run(ctx)
	if err != nil {
		logger.Fatal("simulation failed", zap.Error(err), zap.Uint64("seed", gameCfg.Seed))
	}

	fmt.Printf("%s vs %s: %d games in %s (seed %d)\n",
		decks[0].Name, decks[1].Name, len(res.Games), time.Since(start).Round(time.Millisecond), gameCfg.Seed)
	fmt.Printf("  %-20s %d\n", decks[0].Name, res.Wins[0])
	fmt.Printf("  %-20s %d\n", decks[1].Name, res.Wins[1])
	fmt.Printf("  %-20s %d\n", "ties", res.Ties)
	fmt.Printf("  %-20s %d\n", "faults", res.Faults)
}

func runTournament(ctx context.Context, cfg *config.Config, cat *catalogue.Catalogue, opts sim.Options, logger *zap.Logger) {
	decks, err := deckList(cfg)
	if err != nil {
		logger.Fatal("failed to load decks", zap.Error(err))
	}
	for _, d := range decks {
		if err := d.Validate(cat); err != nil {
			logger.Fatal("invalid deck", zap.Error(err))
		}
	}
	tour, err := tournament.New("round robin", decks, opts, logger)
	if err != nil {
		logger.Fatal("failed to create tournament", zap.Error(err))
	}
	if err := tour.Run(ctx); err != nil {
		logger.Fatal("tournament failed", zap.Error(err), zap.Uint64("seed", opts.Seed))
	}

	fmt.Printf("%d decks, %d games per match (seed %d)\n", len(decks), opts.Games, opts.Seed)
	fmt.Printf("  %-20s %6s %4s %4s %4s %9s\n", "deck", "points", "W", "L", "D", "games")
	for _, s := range tour.Standings() {
		fmt.Printf("  %-20s %6d %4d %4d %4d %4d-%-4d\n",
			s.Name, s.Points, s.Wins, s.Losses, s.Draws, s.GameWins, s.GameLosses)
	}
}

// loadCatalogue layers the configured card sources over the embedded set:
// the YAML file first, then the database.
func loadCatalogue(ctx context.Context, cfg config.CatalogueConfig, logger *zap.Logger) (*catalogue.Catalogue, error) {
	cat := catalogue.Default()
	if cfg.Path != "" {
		extra, err := catalogue.LoadFile(cfg.Path)
		if err != nil {
			return nil, err
		}
		cat = cat.Merge(extra)
		logger.Info("card file merged", zap.String("path", cfg.Path), zap.Int("cards", extra.Len()))
	}
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("ping database: %w", err)
		}
		extra, err := catalogue.LoadPostgres(ctx, pool)
		if err != nil {
			return nil, err
		}
		cat = cat.Merge(extra)
		logger.Info("database cards merged", zap.Int("cards", extra.Len()))
	}
	logger.Info("catalogue initialized", zap.Int("cards", cat.Len()))
	return cat, nil
}

// selectDecks picks deck_a and deck_b by name; an empty name takes the
// first and second deck of the list respectively.
func selectDecks(cfg *config.Config, cat *catalogue.Catalogue) ([2]catalogue.Deck, error) {
	var out [2]catalogue.Deck
	decks, err := deckList(cfg)
	if err != nil {
		return out, err
	}
	for i, name := range []string{cfg.Simulation.DeckA, cfg.Simulation.DeckB} {
		deck, err := findDeck(decks, name, i)
		if err != nil {
			return out, err
		}
		if err := deck.Validate(cat); err != nil {
			return out, err
		}
		out[i] = deck
	}
	return out, nil
}

func deckList(cfg *config.Config) ([]catalogue.Deck, error) {
	if cfg.Catalogue.DecksPath == "" {
		return catalogue.DefaultDecks(), nil
	}
	return catalogue.LoadDecks(cfg.Catalogue.DecksPath)
}

func findDeck(decks []catalogue.Deck, name string, fallback int) (catalogue.Deck, error) {
	if name == "" {
		if fallback >= len(decks) {
			return catalogue.Deck{}, fmt.Errorf("need at least %d decks, have %d", fallback+1, len(decks))
		}
		return decks[fallback], nil
	}
	for _, d := range decks {
		if d.Name == name {
			return d, nil
		}
	}
	return catalogue.Deck{}, fmt.Errorf("deck %q not found", name)
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
