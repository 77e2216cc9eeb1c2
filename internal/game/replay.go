package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thraizz/hearthsim/internal/game/encoding"
	"go.uber.org/zap"
)

const replayVersion = 1

// ReplayPlayer is a seat as it was before Setup.
type ReplayPlayer struct {
	Name string
	Hero string
	Deck []string
}

// Replay records everything needed to rebuild a game: the config with its
// seed, both seats and every action applied, plus the final digest.
type Replay struct {
	GameID  string
	Config  Config
	Players [2]ReplayPlayer
	Actions []encoding.Action
	Digest  string
}

// NewReplay starts a recording for a game about to be built with cfg.
func NewReplay(gameID string, cfg Config, players [2]ReplayPlayer) *Replay {
	for i := range players {
		players[i].Deck = append([]string(nil), players[i].Deck...)
	}
	return &Replay{GameID: gameID, Config: cfg, Players: players}
}

// Record appends an applied action.
func (r *Replay) Record(a encoding.Action) {
	r.Actions = append(r.Actions, a)
}

// Finish stores g's digest as the expected outcome.
func (r *Replay) Finish(g *Game) error {
	d, err := g.Digest()
	if err != nil {
		return err
	}
	r.Digest = d
	return nil
}

// Build creates the game the replay starts from: seats set up and opening
// hands dealt, waiting for mulligans.
func (r *Replay) Build(opts ...Option) (*Game, error) {
	g := New(r.Config, opts...)
	seats := make([]*Player, 2)
	for i, rp := range r.Players {
		p := g.NewPlayer(rp.Name)
		if rp.Hero != "" {
			if err := p.SetHero(rp.Hero); err != nil {
				return nil, fmt.Errorf("seat %d hero: %w", i, err)
			}
		}
		if err := g.AddCardsToDeck(p, rp.Deck...); err != nil {
			return nil, fmt.Errorf("seat %d deck: %w", i, err)
		}
		seats[i] = p
	}
	if err := g.Setup(seats[0], seats[1]); err != nil {
		return nil, err
	}
	if err := g.StartMulligan(); err != nil {
		return nil, err
	}
	return g, nil
}

// Run rebuilds the game, applies every recorded action and checks the
// result against the recorded digest.
func (r *Replay) Run(opts ...Option) (*Game, error) {
	g, err := r.Build(opts...)
	if err != nil {
		return nil, err
	}
	for i, a := range r.Actions {
		if err := g.Apply(a); err != nil {
			return g, fmt.Errorf("replay action %d (%s): %w", i, a, err)
		}
	}
	if r.Digest == "" {
		return g, nil
	}
	d, err := g.Digest()
	if err != nil {
		return g, err
	}
	if d != r.Digest {
		return g, fmt.Errorf("replay diverged: digest %s, recorded %s", d, r.Digest)
	}
	return g, nil
}

type replayMetadata struct {
	GameID      string
	Timestamp   time.Time
	Version     int
	ActionCount int
}

// SaveToFile writes the replay to <directory>/<game id>.replay as gzipped gob.
func (r *Replay) SaveToFile(directory string, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", r.GameID))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	enc := gob.NewEncoder(gz)
	meta := replayMetadata{
		GameID:      r.GameID,
		Timestamp:   time.Now(),
		Version:     replayVersion,
		ActionCount: len(r.Actions),
	}
	if err := enc.Encode(&meta); err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode replay: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to flush replay: %w", err)
	}

	if logger != nil {
		logger.Info("saved replay to disk",
			zap.String("game_id", r.GameID),
			zap.Int("actions", len(r.Actions)),
			zap.String("file", filename),
		)
	}
	return filename, nil
}

// LoadReplayFile reads a replay written by SaveToFile.
func LoadReplayFile(filename string) (*Replay, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	dec := gob.NewDecoder(gz)
	var meta replayMetadata
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if meta.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", meta.Version)
	}
	var r Replay
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if len(r.Actions) != meta.ActionCount {
		return nil, fmt.Errorf("replay has %d actions, header says %d", len(r.Actions), meta.ActionCount)
	}
	return &r, nil
}
