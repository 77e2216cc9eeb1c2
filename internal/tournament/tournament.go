// Package tournament runs round-robin deck tournaments on top of the
// self-play runner. Every pairing is a match of sim games; match wins are
// worth three points and drawn matches one.
package tournament

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/sim"
	"go.uber.org/zap"
)

// State is the lifecycle of a tournament.
type State int

const (
	StateWaiting State = iota
	StateInProgress
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "WAITING"
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Entrant is a deck in the tournament.
type Entrant struct {
	Deck       catalogue.Deck
	Points     int
	Wins       int
	Losses     int
	Draws      int
	Byes       int
	GameWins   int
	GameLosses int
}

// Pairing is one match. Winner is empty for a drawn match.
type Pairing struct {
	Deck1     string
	Deck2     string
	Winner    string
	Deck1Wins int
	Deck2Wins int
	Ties      int
	Faults    int
}

// Round is a set of matches no deck appears in twice.
type Round struct {
	Number   int
	Pairings []*Pairing
	Bye      string
	Finished bool
}

// Standing is a read-only copy of an entrant's record.
type Standing struct {
	Name       string
	Points     int
	Wins       int
	Losses     int
	Draws      int
	GameWins   int
	GameLosses int
}

// Tournament is a round robin between decks.
type Tournament struct {
	ID   string
	Name string

	state    State
	entrants map[string]*Entrant
	order    []string
	rounds   []*Round
	base     sim.Options

	mu     sync.RWMutex
	logger *zap.Logger
}

// New creates a tournament between decks. base carries the per-match
// settings; its Decks field is ignored and Seed is offset per match.
func New(name string, decks []catalogue.Deck, base sim.Options, logger *zap.Logger) (*Tournament, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(decks) < 2 {
		return nil, fmt.Errorf("tournament needs at least 2 decks, got %d", len(decks))
	}
	t := &Tournament{
		ID:       uuid.NewString(),
		Name:     name,
		state:    StateWaiting,
		entrants: make(map[string]*Entrant, len(decks)),
		base:     base,
		logger:   logger,
	}
	for _, d := range decks {
		if d.Name == "" {
			return nil, fmt.Errorf("deck without name")
		}
		if _, exists := t.entrants[d.Name]; exists {
			return nil, fmt.Errorf("deck %q entered twice", d.Name)
		}
		t.entrants[d.Name] = &Entrant{Deck: d}
		t.order = append(t.order, d.Name)
	}
	t.rounds = roundRobin(t.order)
	return t, nil
}

// roundRobin schedules every pair exactly once using the circle method.
// With an odd number of names one name sits out each round.
func roundRobin(names []string) []*Round {
	slots := append([]string(nil), names...)
	if len(slots)%2 == 1 {
		slots = append(slots, "")
	}
	n := len(slots)
	rounds := make([]*Round, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := &Round{Number: r + 1}
		for i := 0; i < n/2; i++ {
			a, b := slots[i], slots[n-1-i]
			switch {
			case a == "":
				round.Bye = b
			case b == "":
				round.Bye = a
			default:
				round.Pairings = append(round.Pairings, &Pairing{Deck1: a, Deck2: b})
			}
		}
		rounds = append(rounds, round)
		// slot 0 stays, the rest rotate by one
		last := slots[n-1]
		copy(slots[2:], slots[1:n-1])
		slots[1] = last
	}
	return rounds
}

// State returns the lifecycle state.
func (t *Tournament) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Run plays every round in order. Matches run one after another; each
// match parallelises its own games.
func (t *Tournament) Run(ctx context.Context) error {
	t.mu.Lock()
	if t.state != StateWaiting {
		t.mu.Unlock()
		return fmt.Errorf("tournament already started")
	}
	start := time.Now()
	t.state = StateInProgress
	t.mu.Unlock()

	t.logger.Info("tournament started",
		zap.String("tournament_id", t.ID),
		zap.String("name", t.Name),
		zap.Int("decks", len(t.order)),
		zap.Int("rounds", len(t.rounds)),
	)

	match := 0
	for _, round := range t.rounds {
		if round.Bye != "" {
			t.recordBye(round.Bye)
		}
		for _, p := range round.Pairings {
			opts := t.base
			opts.Decks = [2]catalogue.Deck{t.entrants[p.Deck1].Deck, t.entrants[p.Deck2].Deck}
			opts.Seed = t.base.Seed + uint64(match)*uint64(max(t.base.Games, 1))
			match++

			res, err := sim.NewRunner(opts, t.logger).Run(ctx)
			if err != nil {
				return fmt.Errorf("round %d %s vs %s: %w", round.Number, p.Deck1, p.Deck2, err)
			}
			if err := t.RecordMatchResult(round.Number, p.Deck1, p.Deck2, res); err != nil {
				return err
			}
		}
		t.mu.Lock()
		round.Finished = true
		t.mu.Unlock()
	}

	t.mu.Lock()
	t.state = StateFinished
	t.mu.Unlock()

	t.logger.Info("tournament finished",
		zap.String("tournament_id", t.ID),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (t *Tournament) recordBye(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entrants[name]
	e.Byes++
	e.Wins++
	e.Points += pointsWin
}

// RecordMatchResult stores the outcome of a match between deck1 and deck2,
// where res.Wins[0] belongs to deck1.
func (t *Tournament) RecordMatchResult(roundNum int, deck1, deck2 string, res *sim.Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if roundNum <= 0 || roundNum > len(t.rounds) {
		return fmt.Errorf("invalid round number %d", roundNum)
	}
	for _, p := range t.rounds[roundNum-1].Pairings {
		if p.Deck1 != deck1 || p.Deck2 != deck2 {
			continue
		}
		p.Deck1Wins, p.Deck2Wins = res.Wins[0], res.Wins[1]
		p.Ties, p.Faults = res.Ties, res.Faults

		e1, e2 := t.entrants[deck1], t.entrants[deck2]
		e1.GameWins += res.Wins[0]
		e1.GameLosses += res.Wins[1]
		e2.GameWins += res.Wins[1]
		e2.GameLosses += res.Wins[0]
		switch {
		case res.Wins[0] > res.Wins[1]:
			p.Winner = deck1
			e1.Wins++
			e1.Points += pointsWin
			e2.Losses++
		case res.Wins[1] > res.Wins[0]:
			p.Winner = deck2
			e2.Wins++
			e2.Points += pointsWin
			e1.Losses++
		default:
			e1.Draws++
			e1.Points += pointsDraw
			e2.Draws++
			e2.Points += pointsDraw
		}
		t.logger.Debug("match recorded",
			zap.Int("round", roundNum),
			zap.String("deck1", deck1),
			zap.String("deck2", deck2),
			zap.String("winner", p.Winner),
		)
		return nil
	}
	return fmt.Errorf("round %d has no pairing %s vs %s", roundNum, deck1, deck2)
}

// Rounds returns a copy of the schedule.
func (t *Tournament) Rounds() []Round {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Round, len(t.rounds))
	for i, r := range t.rounds {
		out[i] = *r
		out[i].Pairings = make([]*Pairing, len(r.Pairings))
		for j, p := range r.Pairings {
			cp := *p
			out[i].Pairings[j] = &cp
		}
	}
	return out
}

// Standings orders entrants by points, then game wins, then name.
func (t *Tournament) Standings() []Standing {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Standing, 0, len(t.order))
	for _, name := range t.order {
		e := t.entrants[name]
		out = append(out, Standing{
			Name:       name,
			Points:     e.Points,
			Wins:       e.Wins,
			Losses:     e.Losses,
			Draws:      e.Draws,
			GameWins:   e.GameWins,
			GameLosses: e.GameLosses,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GameWins != out[j].GameWins {
			return out[i].GameWins > out[j].GameWins
		}
		return out[i].Name < out[j].Name
	})
	return out
}
