package sim

import (
	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/game/encoding"
	"golang.org/x/exp/rand"
)

// Policy picks the next action from the legal ones. actions is never empty.
type Policy interface {
	Choose(g *game.Game, actions []encoding.Action) encoding.Action
}

// RandomPolicy picks uniformly among legal actions.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy creates a policy with its own generator, independent of
// the game's.
func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomPolicy) Choose(_ *game.Game, actions []encoding.Action) encoding.Action {
	return actions[p.rng.Intn(len(actions))]
}

// AggressivePolicy attacks the enemy hero whenever it can (defender slot 0)
// and otherwise plays the first playable card. Remaining choices fall back
// to Random, which ends the turn only when nothing else is legal.
type AggressivePolicy struct {
	Random *RandomPolicy
}

func (p *AggressivePolicy) Choose(g *game.Game, actions []encoding.Action) encoding.Action {
	for _, a := range actions {
		if a.Kind == encoding.KindAttack && a.Target == 0 {
			return a
		}
	}
	for _, a := range actions {
		if a.Kind == encoding.KindPlayCard {
			return a
		}
	}
	if len(actions) == 1 || actions[len(actions)-1].Kind != encoding.KindEndTurn {
		return p.Random.Choose(g, actions)
	}
	return p.Random.Choose(g, actions[:len(actions)-1])
}
