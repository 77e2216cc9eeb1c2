package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"go.uber.org/zap/zaptest"
)

// vanilla is a 2/3 with no text, used to fill decks.
const vanilla = "CS2_120"

// testHarness sets up a started two-player game for rules tests.
type testHarness struct {
	t     *testing.T
	g     *Game
	reg   *EffectRegistry
	alice *Player
	bob   *Player
}

// newHarness builds a game whose players have 30-card vanilla decks and
// skips the mulligan, so Alice is on turn 1 with one mana crystal. register
// may add handlers before any card is created.
func newHarness(t *testing.T, register func(reg *EffectRegistry), opts ...Option) *testHarness {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := NewEffectRegistry(logger)
	if register != nil {
		register(reg)
	}
	opts = append([]Option{WithLogger(logger), WithRegistry(reg), WithSeed(7)}, opts...)
	g := New(DefaultConfig(), opts...)

	alice := g.NewPlayer("Alice")
	bob := g.NewPlayer("Bob")
	for _, p := range []*Player{alice, bob} {
		ids := make([]string, 30)
		for i := range ids {
			ids[i] = vanilla
		}
		require.NoError(t, g.AddCardsToDeck(p, ids...))
	}
	require.NoError(t, g.Setup(alice, bob))
	require.NoError(t, g.SkipMulligan())

	return &testHarness{t: t, g: g, reg: reg, alice: alice, bob: bob}
}

// minion puts a ready-to-attack copy of cardID on p's board.
func (h *testHarness) minion(p *Player, cardID string) *Entity {
	h.t.Helper()
	e, err := h.g.CreateCard(cardID)
	require.NoError(h.t, err)
	ok, err := h.g.summon(e, p, -1)
	require.NoError(h.t, err)
	require.True(h.t, ok, "board of %s is full", p.Name)
	e.Exhausted = false
	return e
}

// card adds a fresh copy of cardID to p's hand.
func (h *testHarness) card(p *Player, cardID string) *Entity {
	h.t.Helper()
	e, err := h.g.CreateCard(cardID)
	require.NoError(h.t, err)
	e.Owner = p
	require.True(h.t, p.AddToHand(e), "hand of %s is full", p.Name)
	return e
}

// mana gives p n full crystals.
func (h *testHarness) mana(p *Player, n int) {
	p.Mana.Crystals = n
	p.Mana.Available = n
}

// emptyHand moves p's hand to the graveyard.
func (h *testHarness) emptyHand(p *Player) {
	for len(p.Hand) > 0 {
		h.g.move(p.Hand[0], p, ZoneGraveyard, -1)
	}
}

func (h *testHarness) checkInvariants() {
	h.t.Helper()
	require.NoError(h.t, CheckInvariants(h.g))
}

// countEvents registers a game-wide trigger and returns a pointer to the
// number of times event fired.
func (h *testHarness) countEvents(event rules.EventType) *int {
	n := new(int)
	h.g.RegisterTrigger(event, nil, func(*Game, *Entity, *Event) error {
		*n++
		return nil
	})
	return n
}

// enemyCharacters lists the opponent's hero and minions.
func enemyCharacters(g *Game, source *Entity) []*Entity {
	var out []*Entity
	for _, e := range source.Owner.Opponent().Characters() {
		if e.Targetable(source.Owner) {
			out = append(out, e)
		}
	}
	return out
}

// allCharacters lists every targetable character, friendly first.
func allCharacters(g *Game, source *Entity) []*Entity {
	var out []*Entity
	for _, e := range append(source.Owner.Characters(), source.Owner.Opponent().Characters()...) {
		if e.Targetable(source.Owner) {
			out = append(out, e)
		}
	}
	return out
}

// damageSpell deals n damage to any character.
func damageSpell(n int) Handlers {
	return Handlers{
		ValidTargets: allCharacters,
		OnPlay: func(g *Game, source, target *Entity) error {
			_, err := g.DealDamage(target, n, source)
			return err
		},
	}
}

func registerCoin(reg *EffectRegistry) {
	reg.Register(CoinID, Handlers{OnPlay: func(g *Game, source, _ *Entity) error {
		source.Owner.Mana.AddTemp(1)
		return nil
	}})
}
