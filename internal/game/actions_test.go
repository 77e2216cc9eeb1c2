package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/encoding"
	"github.com/thraizz/hearthsim/internal/game/rules"
)

func registerDiscover(reg *EffectRegistry) {
	reg.Register("UNG_072", Handlers{Battlecry: func(g *Game, source, _ *Entity) error {
		options := g.DiscoverOptions(3, func(c *catalogue.Card) bool {
			return c.Collectible && c.Type == catalogue.TypeMinion && c.HasKeyword("TAUNT")
		})
		g.StartDiscover(source.Owner, source, options, func(g *Game, source *Entity, choice string) error {
			_, err := g.GiveCard(source.Owner, choice)
			return err
		})
		return nil
	}})
}

func TestDiscoverSuspendsTheGame(t *testing.T) {
	h := newHarness(t, registerDiscover)
	h.mana(h.alice, 10)
	defender := h.card(h.alice, "UNG_072")
	next := h.card(h.alice, vanilla)

	require.NoError(t, h.g.PlayCard(defender, nil))
	pc := h.g.PendingChoice()
	require.NotNil(t, pc)
	require.Len(t, pc.Options, 3)
	assert.Equal(t, h.alice, pc.Player)

	err := h.g.PlayCard(next, nil)
	require.ErrorIs(t, err, ErrPendingChoice)
	require.ErrorIs(t, err, ErrIllegalAction)
	require.ErrorIs(t, h.g.EndTurn(), ErrPendingChoice)

	actions := h.g.ValidActions()
	require.Len(t, actions, 3)
	for i, a := range actions {
		assert.Equal(t, encoding.Action{Kind: encoding.KindChoose, Choice: i}, a)
	}

	require.ErrorIs(t, h.g.ChooseDiscover(3), ErrIllegalAction)
	hand := len(h.alice.Hand)
	require.NoError(t, h.g.ChooseDiscover(0))
	assert.Nil(t, h.g.PendingChoice())
	require.Len(t, h.alice.Hand, hand+1)
	assert.Equal(t, pc.Options[0], h.alice.Hand[hand].CardID)

	require.NoError(t, h.g.PlayCard(next, nil))
	h.checkInvariants()
}

func TestDiscoverWithoutOptionsDoesNothing(t *testing.T) {
	h := newHarness(t, nil)
	h.g.StartDiscover(h.alice, nil, nil, func(*Game, *Entity, string) error { return nil })
	assert.Nil(t, h.g.PendingChoice())
}

func TestPlayCardPreconditions(t *testing.T) {
	h := newHarness(t, nil)

	t.Run("not enough mana", func(t *testing.T) {
		yeti := h.card(h.alice, "CS2_182")
		require.ErrorIs(t, h.g.PlayCard(yeti, nil), ErrIllegalAction)
		assert.Equal(t, ZoneHand, yeti.Zone)
		assert.False(t, h.g.CanPlayCard(yeti))
	})

	t.Run("not your card", func(t *testing.T) {
		require.ErrorIs(t, h.g.PlayCard(h.bob.Hand[1], nil), ErrIllegalAction)
	})

	t.Run("full board keeps mana", func(t *testing.T) {
		for !h.alice.BoardFull() {
			h.minion(h.alice, vanilla)
		}
		h.mana(h.alice, 2)
		card := h.card(h.alice, vanilla)
		require.ErrorIs(t, h.g.PlayCard(card, nil), ErrIllegalAction)
		assert.Equal(t, 2, h.alice.Mana.Available)
		assert.Equal(t, ZoneHand, card.Zone)
		assert.Len(t, h.alice.Board, MaxBoardSize)
	})
}

func TestPlayMinionAtPosition(t *testing.T) {
	h := newHarness(t, nil)
	h.mana(h.alice, 10)
	a := h.minion(h.alice, vanilla)
	b := h.minion(h.alice, vanilla)
	boar := h.card(h.alice, "CS2_171")
	summons := h.countEvents(rules.EventMinionSummon)

	require.NoError(t, h.g.PlayCardAt(boar, nil, 1, 0))
	assert.Equal(t, []*Entity{a, boar, b}, h.alice.Board)
	assert.Equal(t, 1, boar.Position)
	assert.Equal(t, 1, *summons)
	assert.Equal(t, 1, h.alice.Turn.MinionsPlayed)
	assert.Equal(t, []string{"CS2_171"}, h.alice.History.MinionsPlayed)
	assert.Equal(t, 9, h.alice.Mana.Available)
	h.checkInvariants()
}

func TestTargetedSpell(t *testing.T) {
	h := newHarness(t, func(reg *EffectRegistry) {
		reg.Register("CS2_029", damageSpell(6))
	})
	h.mana(h.alice, 10)
	yeti := h.minion(h.bob, "CS2_182")
	hidden := h.minion(h.bob, "ULD_274")
	fireball := h.card(h.alice, "CS2_029")

	targets := h.g.ValidTargets(fireball)
	assert.Contains(t, targets, yeti)
	assert.NotContains(t, targets, hidden, "stealth hides from enemy effects")

	require.ErrorIs(t, h.g.PlayCard(fireball, nil), ErrIllegalAction)
	require.ErrorIs(t, h.g.PlayCard(fireball, hidden), ErrIllegalAction)
	require.NoError(t, h.g.PlayCard(fireball, yeti))
	assert.Equal(t, ZoneGraveyard, yeti.Zone)
	assert.Equal(t, ZoneGraveyard, fireball.Zone)
	assert.Equal(t, 1, h.alice.Turn.SpellsPlayed)
	assert.Equal(t, 6, h.alice.Mana.Available)
}

func TestBattlecryWithoutTargetsMayBePlayed(t *testing.T) {
	h := newHarness(t, func(reg *EffectRegistry) {
		reg.Register("CS2_189", Handlers{
			ValidTargets: func(g *Game, source *Entity) []*Entity {
				var out []*Entity
				for _, m := range source.Owner.Opponent().Minions() {
					out = append(out, m)
				}
				return out
			},
			Battlecry: func(g *Game, source, target *Entity) error {
				_, err := g.DealDamage(target, 1, source)
				return err
			},
		})
	})
	archer := h.card(h.alice, "CS2_189")
	require.True(t, h.g.CanPlayCard(archer))
	require.NoError(t, h.g.PlayCard(archer, nil))
	assert.Equal(t, ZonePlay, archer.Zone)
}

func TestOverload(t *testing.T) {
	h := newHarness(t, func(reg *EffectRegistry) {
		reg.Register("EX1_238", damageSpell(3))
	})
	h.mana(h.alice, 5)
	bolt := h.card(h.alice, "EX1_238")

	require.NoError(t, h.g.PlayCard(bolt, h.bob.Hero))
	assert.Equal(t, 27, h.bob.Hero.Health())
	assert.Equal(t, 1, h.alice.Mana.OverloadNext)
	assert.Equal(t, 4, h.alice.Mana.Available, "overload does not touch this turn")

	require.NoError(t, h.g.EndTurn())
	require.NoError(t, h.g.EndTurn())
	assert.Equal(t, 6, h.alice.Mana.Crystals)
	assert.Equal(t, 1, h.alice.Mana.Overload)
	assert.Equal(t, 5, h.alice.Mana.Available)
	assert.Equal(t, 0, h.alice.Mana.OverloadNext)

	require.NoError(t, h.g.EndTurn())
	require.NoError(t, h.g.EndTurn())
	assert.Equal(t, 0, h.alice.Mana.Overload)
	assert.Equal(t, 7, h.alice.Mana.Available)
}

func registerFireblast(reg *EffectRegistry) {
	reg.RegisterHeroPower("HERO_08bp", Handlers{
		ValidTargets: allCharacters,
		Battlecry: func(g *Game, source, target *Entity) error {
			_, err := g.DealDamage(target, 1, source)
			return err
		},
	})
}

func TestHeroPowerOncePerTurn(t *testing.T) {
	h := newHarness(t, registerFireblast)
	h.mana(h.alice, 4)
	uses := h.countEvents(rules.EventHeroPower)

	require.True(t, h.g.CanUseHeroPower())
	require.ErrorIs(t, h.g.UseHeroPower(nil), ErrIllegalAction, "fireblast needs a target")
	require.NoError(t, h.g.UseHeroPower(h.bob.Hero))
	assert.Equal(t, 29, h.bob.Hero.Health())
	assert.Equal(t, 2, h.alice.Mana.Available)
	assert.Equal(t, 1, *uses)
	assert.True(t, h.alice.HeroPower().UsedThisTurn)

	assert.False(t, h.g.CanUseHeroPower())
	require.ErrorIs(t, h.g.UseHeroPower(h.bob.Hero), ErrIllegalAction)

	require.NoError(t, h.g.EndTurn())
	require.NoError(t, h.g.EndTurn())
	assert.False(t, h.alice.HeroPower().UsedThisTurn)
	assert.True(t, h.g.CanUseHeroPower())
}

func TestHeroPowerNeedsMana(t *testing.T) {
	h := newHarness(t, registerFireblast)
	assert.False(t, h.g.CanUseHeroPower())
	require.ErrorIs(t, h.g.UseHeroPower(h.bob.Hero), ErrIllegalAction)
}

func registerCathedral(reg *EffectRegistry) {
	reg.Register("REV_290", Handlers{
		ValidTargets: func(g *Game, source *Entity) []*Entity {
			return source.Owner.Minions()
		},
		Battlecry: func(g *Game, source, target *Entity) error {
			g.Buff(target, 2, 1)
			_, err := source.Owner.Draw(1)
			return err
		},
	})
}

func TestLocationCooldownAndDurability(t *testing.T) {
	h := newHarness(t, registerCathedral)
	h.mana(h.alice, 10)
	m := h.minion(h.alice, vanilla)
	loc := h.card(h.alice, "REV_290")

	require.NoError(t, h.g.PlayCard(loc, nil))
	require.Equal(t, ZonePlay, loc.Zone)
	require.Equal(t, []*Entity{m, loc}, h.alice.Board)
	assert.True(t, h.g.CanUseLocation(loc))

	hand := len(h.alice.Hand)
	require.NoError(t, h.g.UseLocation(loc, m))
	assert.Equal(t, 4, m.Attack)
	assert.Equal(t, 4, m.Health())
	assert.Len(t, h.alice.Hand, hand+1)
	assert.Equal(t, 1, loc.Cooldown)
	assert.Equal(t, 2, loc.Durability)
	require.ErrorIs(t, h.g.UseLocation(loc, m), ErrIllegalAction)

	for _, want := range []int{1, 0} {
		require.NoError(t, h.g.EndTurn())
		require.NoError(t, h.g.EndTurn())
		assert.Equal(t, 0, loc.Cooldown)
		require.NoError(t, h.g.UseLocation(loc, m))
		assert.Equal(t, want, loc.Durability)
	}
	assert.Equal(t, ZoneGraveyard, loc.Zone)
	assert.Equal(t, []*Entity{m}, h.alice.Board)
	h.checkInvariants()
}

func TestLocationCannotAttack(t *testing.T) {
	h := newHarness(t, registerCathedral)
	loc, err := h.g.CreateCard("REV_290")
	require.NoError(t, err)
	require.True(t, h.g.move(loc, h.alice, ZonePlay, -1))
	assert.False(t, loc.CanAttack())
	assert.False(t, h.g.CanUseLocation(loc), "no friendly minion to target")
}
