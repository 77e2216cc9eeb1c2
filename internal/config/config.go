// Package config loads hsim settings. HSIM_* environment variables override
// the YAML file, which overrides the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/thraizz/hearthsim/internal/game"
)

// Config is the root configuration.
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Catalogue  CatalogueConfig  `mapstructure:"catalogue"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// GameConfig holds per-game limits.
type GameConfig struct {
	MaxTurns          int    `mapstructure:"max_turns"`
	MaxActionsPerTurn int    `mapstructure:"max_actions_per_turn"`
	StartingHealth    int    `mapstructure:"starting_health"`
	Seed              uint64 `mapstructure:"seed"`
}

// LoggingConfig selects the log level and encoding.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogueConfig points at card data beyond the embedded set.
type CatalogueConfig struct {
	// Path is a YAML card file merged over the embedded catalogue.
	Path string `mapstructure:"path"`
	// PostgresDSN, when set, loads cards from a cards table.
	PostgresDSN string `mapstructure:"postgres_dsn"`
	// ScriptsDir holds Lua effect scripts as <set>/<id>.lua.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// DecksPath is a YAML deck list; empty uses the starter decks.
	DecksPath string `mapstructure:"decks_path"`
}

// SimulationConfig drives the self-play runner.
type SimulationConfig struct {
	Games     int    `mapstructure:"games"`
	Parallel  int    `mapstructure:"parallel"`
	DeckA     string `mapstructure:"deck_a"`
	DeckB     string `mapstructure:"deck_b"`
	ReplayDir string `mapstructure:"replay_dir"`
}

// GameConfig converts the game section into engine limits.
func (c GameConfig) GameConfig() game.Config {
	return game.Config{
		MaxTurns:          c.MaxTurns,
		MaxActionsPerTurn: c.MaxActionsPerTurn,
		StartingHealth:    c.StartingHealth,
		Seed:              c.Seed,
	}
}

func setDefaults(v *viper.Viper) {
	def := game.DefaultConfig()
	v.SetDefault("game.max_turns", def.MaxTurns)
	v.SetDefault("game.max_actions_per_turn", def.MaxActionsPerTurn)
	v.SetDefault("game.starting_health", def.StartingHealth)
	v.SetDefault("game.seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("catalogue.path", "")
	v.SetDefault("catalogue.postgres_dsn", "")
	v.SetDefault("catalogue.scripts_dir", "")
	v.SetDefault("catalogue.decks_path", "")

	v.SetDefault("simulation.games", 10)
	v.SetDefault("simulation.parallel", 4)
	v.SetDefault("simulation.deck_a", "")
	v.SetDefault("simulation.deck_b", "")
	v.SetDefault("simulation.replay_dir", "")
}

// Load reads configuration from path. An empty path uses defaults and the
// environment only; a path that does not exist is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("HSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("game.max_turns must be positive, got %d", c.Game.MaxTurns))
	}
	if c.Game.MaxActionsPerTurn <= 0 {
		errs = append(errs, fmt.Errorf("game.max_actions_per_turn must be positive, got %d", c.Game.MaxActionsPerTurn))
	}
	if c.Game.StartingHealth <= 0 {
		errs = append(errs, fmt.Errorf("game.starting_health must be positive, got %d", c.Game.StartingHealth))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	if c.Simulation.Games < 0 {
		errs = append(errs, fmt.Errorf("simulation.games must not be negative, got %d", c.Simulation.Games))
	}
	if c.Simulation.Parallel <= 0 {
		errs = append(errs, fmt.Errorf("simulation.parallel must be positive, got %d", c.Simulation.Parallel))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
