package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"go.uber.org/zap/zaptest"
)

type countingSource struct {
	loads    int
	handlers map[string]*Handlers
	err      error
}

func (s *countingSource) Load(card *catalogue.Card) (*Handlers, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.handlers[card.ID], nil
}

func TestRegistryPrefersBuiltins(t *testing.T) {
	reg := NewEffectRegistry(zaptest.NewLogger(t))
	src := &countingSource{handlers: map[string]*Handlers{"CS2_189": {}}}
	reg.AddSource(src)
	reg.Register("CS2_189", Handlers{Battlecry: func(*Game, *Entity, *Entity) error { return nil }})

	h, err := reg.Lookup(catalogue.Default().Get("CS2_189"))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.Battlecry)
	assert.Equal(t, 0, src.loads)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryCachesSourceResults(t *testing.T) {
	reg := NewEffectRegistry(zaptest.NewLogger(t))
	src := &countingSource{handlers: map[string]*Handlers{
		"EX1_096": {Deathrattle: func(*Game, *Entity) error { return nil }},
	}}
	reg.AddSource(src)
	cat := catalogue.Default()

	for i := 0; i < 3; i++ {
		h, err := reg.Lookup(cat.Get("EX1_096"))
		require.NoError(t, err)
		require.NotNil(t, h)
		h, err = reg.Lookup(cat.Get(vanilla))
		require.NoError(t, err)
		assert.Nil(t, h)
	}
	assert.Equal(t, 2, src.loads, "one load per card, misses included")
}

func TestRegistryHeroPowerTable(t *testing.T) {
	reg := NewEffectRegistry(nil)
	reg.RegisterHeroPower("HERO_01bp", Handlers{Battlecry: func(g *Game, source, _ *Entity) error {
		g.GainArmor(source.Owner.Hero, 2)
		return nil
	}})
	h, err := reg.Lookup(catalogue.Default().Get("HERO_01bp"))
	require.NoError(t, err)
	require.NotNil(t, h)

	g := New(DefaultConfig(), WithRegistry(reg))
	alice, bob := g.NewPlayer("Alice"), g.NewPlayer("Bob")
	require.NoError(t, alice.SetHero("HERO_01"))
	require.NoError(t, g.Setup(alice, bob))
	require.NoError(t, g.SkipMulligan())
	alice.Mana.Crystals, alice.Mana.Available = 2, 2

	require.NoError(t, g.UseHeroPower(nil))
	assert.Equal(t, 2, alice.Hero.Armor)
}

func TestSourceErrorsLeaveCardVanilla(t *testing.T) {
	reg := NewEffectRegistry(zaptest.NewLogger(t))
	reg.AddSource(&countingSource{err: errors.New("script broken")})
	g := New(DefaultConfig(), WithRegistry(reg), WithLogger(zaptest.NewLogger(t)))

	e, err := g.CreateCard("EX1_096")
	require.NoError(t, err)
	assert.Nil(t, e.Handlers())
}

func TestSetupHookRuns(t *testing.T) {
	reg := NewEffectRegistry(nil)
	reg.Register("NEW1_019", Handlers{Setup: func(g *Game, source *Entity) error {
		source.Tags.Set("setup", 1)
		return nil
	}})
	g := New(DefaultConfig(), WithRegistry(reg))
	e, err := g.CreateCard("NEW1_019")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Tags.Get("setup"))
}
