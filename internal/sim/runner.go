// Package sim plays seeded self-play games between two decks and checks
// the engine's invariants after every action.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Tie marks a game without a winner in GameResult.Winner.
const Tie = -1

// Options configures a Runner.
type Options struct {
	Games    int
	Parallel int
	// Seed is the seed of game 0; game i uses Seed+i.
	Seed   uint64
	Config game.Config
	Decks  [2]catalogue.Deck
	// Catalogue and Registry are shared by every game.
	Catalogue *catalogue.Catalogue
	Registry  *game.EffectRegistry
	// NewPolicy builds the policy for one seat of one game. Nil means random.
	NewPolicy func(seed uint64, seat int) Policy
	// ReplayDir, when set, receives a replay file per game.
	ReplayDir string
	// SkipInvariants turns off the per-action invariant check.
	SkipInvariants bool
}

// GameResult summarises one game. Winner is the index of the winning deck
// in Options.Decks, or Tie.
type GameResult struct {
	Index      int
	Seed       uint64
	GameID     string
	Winner     int
	Turns      int
	Actions    int
	Faulted    bool
	Digest     string
	ReplayPath string
	Duration   time.Duration
}

// Result aggregates a run.
type Result struct {
	Games  []GameResult
	Wins   [2]int
	Ties   int
	Faults int
}

// Runner plays games in parallel.
type Runner struct {
	opts   Options
	logger *zap.Logger
}

// NewRunner creates a runner. Zero Parallel means one game at a time.
func NewRunner(opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Parallel <= 0 {
		opts.Parallel = 1
	}
	if opts.Catalogue == nil {
		opts.Catalogue = catalogue.Default()
	}
	if opts.Registry == nil {
		opts.Registry = game.NewEffectRegistry(logger)
	}
	if opts.NewPolicy == nil {
		opts.NewPolicy = func(seed uint64, seat int) Policy {
			return NewRandomPolicy(seed*2 + uint64(seat))
		}
	}
	return &Runner{opts: opts, logger: logger}
}

// Run plays every game and aggregates the results. The first engine error
// or invariant violation cancels the remaining games.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	results := make([]GameResult, r.opts.Games)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.opts.Parallel)
	for i := range results {
		eg.Go(func() error {
			res, err := r.PlayGame(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, res.Seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Games: results}
	for _, res := range results {
		switch {
		case res.Faulted:
			out.Faults++
		case res.Winner == Tie:
			out.Ties++
		default:
			out.Wins[res.Winner]++
		}
	}
	r.logger.Info("simulation finished",
		zap.Int("games", len(results)),
		zap.Int("wins_a", out.Wins[0]),
		zap.Int("wins_b", out.Wins[1]),
		zap.Int("ties", out.Ties),
		zap.Int("faults", out.Faults),
	)
	return out, nil
}

// seats orders the decks for game index. Odd games let deck B go first.
func (r *Runner) seats(index int) [2]int {
	if index%2 == 1 {
		return [2]int{1, 0}
	}
	return [2]int{0, 1}
}

// maxSteps bounds a game so a stuck engine fails instead of hanging.
func maxSteps(cfg game.Config) int {
	return (cfg.MaxTurns + 1) * (cfg.MaxActionsPerTurn + 2) * 2
}

// PlayGame plays game index to completion.
func (r *Runner) PlayGame(ctx context.Context, index int) (GameResult, error) {
	start := time.Now()
	seed := r.opts.Seed + uint64(index)
	res := GameResult{Index: index, Seed: seed, Winner: Tie}

	cfg := r.opts.Config
	cfg.Seed = seed
	seats := r.seats(index)
	var players [2]game.ReplayPlayer
	for i, d := range seats {
		deck := r.opts.Decks[d]
		players[i] = game.ReplayPlayer{Name: deck.Name, Hero: deck.Hero, Deck: deck.CardIDs()}
	}
	replay := game.NewReplay("", cfg, players)

	g, err := replay.Build(
		game.WithLogger(r.logger),
		game.WithCatalogue(r.opts.Catalogue),
		game.WithRegistry(r.opts.Registry),
	)
	if err != nil {
		return res, fmt.Errorf("build game: %w", err)
	}
	replay.GameID = g.ID()
	res.GameID = g.ID()

	policies := [2]Policy{r.opts.NewPolicy(seed, 0), r.opts.NewPolicy(seed, 1)}
	limit := maxSteps(g.Config())
	for !g.Ended() && !g.Faulted() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Actions >= limit {
			return res, fmt.Errorf("no result after %d actions", limit)
		}
		actions := g.ValidActions()
		if len(actions) == 0 {
			return res, fmt.Errorf("no legal actions on turn %d in phase %s", g.Turn(), g.Phase())
		}
		seat := actingSeat(g)
		a := policies[seat].Choose(g, actions)
		replay.Record(a)
		res.Actions++
		if err := g.Apply(a); err != nil {
			if errors.Is(err, game.ErrHandlerFault) {
				r.logger.Warn("game faulted", zap.String("game_id", g.ID()), zap.Error(err))
				res.Faulted = true
				break
			}
			return res, fmt.Errorf("apply %s: %w", a, err)
		}
		if !r.opts.SkipInvariants {
			if err := game.CheckInvariants(g); err != nil {
				return res, fmt.Errorf("after %s: %w", a, err)
			}
		}
	}

	res.Turns = g.Turn()
	if w := g.Winner(); w != nil {
		res.Winner = seats[w.Index]
	}
	if err := replay.Finish(g); err != nil {
		return res, err
	}
	res.Digest = replay.Digest
	if r.opts.ReplayDir != "" {
		path, err := replay.SaveToFile(r.opts.ReplayDir, r.logger)
		if err != nil {
			return res, err
		}
		res.ReplayPath = path
	}
	res.Duration = time.Since(start)

	r.logger.Debug("game finished",
		zap.String("game_id", res.GameID),
		zap.Int("index", index),
		zap.Int("winner", res.Winner),
		zap.Int("turns", res.Turns),
		zap.Int("actions", res.Actions),
	)
	return res, nil
}

// actingSeat is the seat that owns the next decision: the chooser of an
// open discover, the first player still to mulligan, or the current player.
func actingSeat(g *game.Game) int {
	if pc := g.PendingChoice(); pc != nil {
		return pc.Player.Index
	}
	if g.Phase() == rules.PhaseMulligan {
		for _, p := range g.Players() {
			if p.MulliganState == rules.MulliganInput {
				return p.Index
			}
		}
	}
	return g.CurrentPlayer().Index
}
