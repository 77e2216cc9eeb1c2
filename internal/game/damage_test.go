package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thraizz/hearthsim/internal/game/rules"
)

func TestDealDamage(t *testing.T) {
	t.Run("divine shield absorbs one hit", func(t *testing.T) {
		h := newHarness(t, nil)
		squire := h.minion(h.bob, "EX1_008")
		dealt, err := h.g.DealDamage(squire, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, dealt)
		assert.Equal(t, 1, squire.Health())
		assert.False(t, squire.Has(KeywordDivineShield))
	})

	t.Run("immune takes nothing", func(t *testing.T) {
		h := newHarness(t, nil)
		h.bob.Hero.Immune = true
		dealt, err := h.g.DealDamage(h.bob.Hero, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, dealt)
		assert.Equal(t, 30, h.bob.Hero.Health())
	})

	t.Run("armor soaks hero damage first", func(t *testing.T) {
		h := newHarness(t, nil)
		h.g.GainArmor(h.bob.Hero, 3)
		var amounts []int
		h.g.RegisterTrigger(rules.EventDamageTaken, nil, func(_ *Game, _ *Entity, ev *Event) error {
			amounts = append(amounts, ev.Amount)
			return nil
		})
		dealt, err := h.g.DealDamage(h.bob.Hero, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, dealt)
		assert.Equal(t, 0, h.bob.Hero.Armor)
		assert.Equal(t, 28, h.bob.Hero.Health())
		assert.Equal(t, 2, h.bob.Turn.DamageTaken)
		assert.Equal(t, []int{2}, amounts)
	})

	t.Run("fully absorbed hit fires nothing", func(t *testing.T) {
		h := newHarness(t, nil)
		h.g.GainArmor(h.bob.Hero, 5)
		fired := 0
		h.g.RegisterTrigger(rules.EventDamageTaken, nil, func(*Game, *Entity, *Event) error {
			fired++
			return nil
		})
		dealt, err := h.g.DealDamage(h.bob.Hero, 3, nil)
		require.NoError(t, err)
		assert.Zero(t, dealt)
		assert.Equal(t, 2, h.bob.Hero.Armor)
		assert.Equal(t, 30, h.bob.Hero.Health())
		assert.Zero(t, h.bob.Turn.DamageTaken)
		assert.Zero(t, fired)
	})

	t.Run("lifesteal heals only what got through armor", func(t *testing.T) {
		h := newHarness(t, nil)
		h.alice.Hero.Damage = 10
		h.g.GainArmor(h.bob.Hero, 3)
		m := h.minion(h.alice, "CS2_182")
		m.SetKeyword(KeywordLifesteal, true)
		dealt, err := h.g.DealDamage(h.bob.Hero, 4, m)
		require.NoError(t, err)
		assert.Equal(t, 1, dealt)
		assert.Equal(t, 21, h.alice.Hero.Health())
	})

	t.Run("lifesteal heals the source's hero", func(t *testing.T) {
		h := newHarness(t, nil)
		h.alice.Hero.Damage = 10
		m := h.minion(h.alice, "CS2_182")
		m.SetKeyword(KeywordLifesteal, true)
		require.NoError(t, h.g.Attack(m, h.bob.Hero))
		assert.Equal(t, 24, h.alice.Hero.Health())
		assert.Equal(t, 26, h.bob.Hero.Health())
	})

	t.Run("poisonous destroys minions", func(t *testing.T) {
		h := newHarness(t, nil)
		cobra := h.minion(h.alice, "EX1_170")
		yeti := h.minion(h.bob, "CS2_182")
		require.NoError(t, h.g.Attack(cobra, yeti))
		assert.Equal(t, ZoneGraveyard, yeti.Zone)
		assert.Equal(t, ZoneGraveyard, cobra.Zone)
	})

	t.Run("damage event carries the amount", func(t *testing.T) {
		h := newHarness(t, nil)
		var got Event
		h.g.RegisterTrigger(rules.EventDamageTaken, nil, func(_ *Game, _ *Entity, ev *Event) error {
			got = *ev
			return nil
		})
		m := h.minion(h.bob, vanilla)
		_, err := h.g.DealDamage(m, 2, h.alice.Hero)
		require.NoError(t, err)
		assert.Equal(t, m, got.Entity)
		assert.Equal(t, h.alice.Hero, got.Source)
		assert.Equal(t, 2, got.Amount)
		assert.Equal(t, h.bob, got.Player)
	})
}

func TestHeal(t *testing.T) {
	h := newHarness(t, nil)
	h.alice.Hero.Damage = 3

	healed, err := h.g.Heal(h.alice.Hero, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, healed)
	assert.Equal(t, 30, h.alice.Hero.Health())

	_, err = h.g.Heal(h.alice.Hero, -4, nil)
	require.NoError(t, err)
	assert.Equal(t, 26, h.alice.Hero.Health(), "negative healing is damage")
}

func TestRebornReturnsAtSameSlot(t *testing.T) {
	h := newHarness(t, nil)
	left := h.minion(h.bob, vanilla)
	assassin := h.minion(h.bob, "ULD_274")
	right := h.minion(h.bob, vanilla)

	_, err := h.g.DealDamage(assassin, 6, nil)
	require.NoError(t, err)
	require.NoError(t, h.g.settle())

	require.Len(t, h.bob.Board, 3)
	revived := h.bob.Board[1]
	assert.Equal(t, left, h.bob.Board[0])
	assert.Equal(t, right, h.bob.Board[2])
	assert.NotEqual(t, assassin.ID, revived.ID)
	assert.Equal(t, "ULD_274", revived.CardID)
	assert.Equal(t, 1, revived.Health())
	assert.False(t, revived.Has(KeywordReborn))
	assert.True(t, revived.Has(KeywordStealth))
	assert.Equal(t, ZoneGraveyard, assassin.Zone)
	h.checkInvariants()

	_, err = h.g.DealDamage(revived, 1, nil)
	require.NoError(t, err)
	require.NoError(t, h.g.settle())
	assert.Len(t, h.bob.Board, 2)
}

func TestSilence(t *testing.T) {
	h := newHarness(t, nil)
	grizzly := h.minion(h.bob, "CS2_125")
	h.g.Buff(grizzly, 2, 2)
	grizzly.Damage = 1
	h.g.RegisterTrigger(rules.EventTurnStart, grizzly, func(*Game, *Entity, *Event) error { return nil })

	h.g.Silence(grizzly)
	assert.Equal(t, 3, grizzly.Attack)
	assert.Equal(t, 3, grizzly.MaxHealth)
	assert.Equal(t, 3, grizzly.Health())
	assert.False(t, grizzly.Has(KeywordTaunt))
	assert.Empty(t, grizzly.Keywords().Names())
	assert.Equal(t, 0, h.g.TriggerCount(rules.EventTurnStart))
	before := entityState(grizzly)

	h.g.Silence(grizzly)
	assert.Equal(t, before, entityState(grizzly))
}

func TestSilencedDeathrattleDoesNotRun(t *testing.T) {
	ran := false
	h := newHarness(t, func(reg *EffectRegistry) {
		reg.Register("EX1_096", Handlers{Deathrattle: func(*Game, *Entity) error {
			ran = true
			return nil
		}})
	})
	hoarder := h.minion(h.bob, "EX1_096")
	h.g.Silence(hoarder)
	h.g.Destroy(hoarder)
	require.NoError(t, h.g.settle())
	assert.False(t, ran)
	assert.Equal(t, ZoneGraveyard, hoarder.Zone)
}

func TestTransformKeepsSlot(t *testing.T) {
	h := newHarness(t, nil)
	h.minion(h.bob, vanilla)
	yeti := h.minion(h.bob, "CS2_182")
	h.minion(h.bob, vanilla)
	h.g.RegisterTrigger(rules.EventTurnEnd, yeti, func(*Game, *Entity, *Event) error { return nil })

	sheep, err := h.g.Transform(yeti, "CS2_tk1")
	require.NoError(t, err)
	assert.Equal(t, sheep, h.bob.Board[1])
	assert.Equal(t, 1, sheep.Position)
	assert.Equal(t, h.bob, sheep.Owner)
	assert.Equal(t, ZoneRemoved, yeti.Zone)
	assert.Equal(t, 0, h.g.TriggerCount(rules.EventTurnEnd))
	h.checkInvariants()
}

func TestDestroyedLocationLeavesBoard(t *testing.T) {
	h := newHarness(t, nil)
	loc, err := h.g.CreateCard("REV_290")
	require.NoError(t, err)
	require.Equal(t, 3, loc.Durability)
	require.True(t, h.g.move(loc, h.alice, ZonePlay, -1))
	loc.Durability = 0
	require.NoError(t, h.g.settle())
	assert.Empty(t, h.alice.Board)
	assert.Equal(t, ZoneGraveyard, loc.Zone)
}
