package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game"
	"go.uber.org/zap/zaptest"
)

const crocolisk = "CS2_120"

type table struct {
	t     *testing.T
	g     *game.Game
	alice *game.Player
	bob   *game.Player
}

// newTable starts a game with every built-in card registered. Alice plays
// hero, or the default hero when empty, and is on turn 1 with ten mana.
func newTable(t *testing.T, hero string) *table {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := game.NewEffectRegistry(logger)
	Register(reg)
	g := game.New(game.DefaultConfig(), game.WithLogger(logger), game.WithRegistry(reg), game.WithSeed(3))

	alice := g.NewPlayer("Alice")
	bob := g.NewPlayer("Bob")
	if hero != "" {
		require.NoError(t, alice.SetHero(hero))
	}
	for _, p := range []*game.Player{alice, bob} {
		ids := make([]string, 20)
		for i := range ids {
			ids[i] = crocolisk
		}
		require.NoError(t, g.AddCardsToDeck(p, ids...))
	}
	require.NoError(t, g.Setup(alice, bob))
	require.NoError(t, g.SkipMulligan())
	alice.Mana.Crystals = 10
	alice.Mana.Available = 10
	return &table{t: t, g: g, alice: alice, bob: bob}
}

func (tb *table) minion(p *game.Player, id string) *game.Entity {
	tb.t.Helper()
	e, err := tb.g.SummonToken(p, id, -1)
	require.NoError(tb.t, err)
	require.NotNil(tb.t, e)
	e.Exhausted = false
	return e
}

func (tb *table) card(p *game.Player, id string) *game.Entity {
	tb.t.Helper()
	e, err := tb.g.GiveCard(p, id)
	require.NoError(tb.t, err)
	require.Equal(tb.t, game.ZoneHand, e.Zone)
	return e
}

// play refills Alice's crystals and plays a fresh copy of id.
func (tb *table) play(id string, target *game.Entity) *game.Entity {
	tb.t.Helper()
	tb.alice.Mana.Available = tb.alice.Mana.Crystals
	tb.alice.Mana.Temp = 0
	c := tb.card(tb.alice, id)
	require.NoError(tb.t, tb.g.PlayCard(c, target))
	require.NoError(tb.t, game.CheckInvariants(tb.g))
	return c
}

func TestEveryCardWithTextHasHandlers(t *testing.T) {
	cat := catalogue.Default()
	for _, c := range cat.All() {
		if c.Text != "" {
			assert.True(t, Has(c.ID), "%s (%s) has text but no handlers", c.ID, c.Name)
		}
	}
	for _, id := range IDs() {
		_, ok := cat.Lookup(id)
		assert.True(t, ok, "%s is not in the catalogue", id)
	}
}

func TestRegisterFillsRegistry(t *testing.T) {
	reg := game.NewEffectRegistry(nil)
	Register(reg)
	assert.Equal(t, len(IDs()), reg.Len())

	h, err := reg.Lookup(catalogue.Default().Get("HERO_08bp"))
	require.NoError(t, err)
	assert.True(t, h.TakesTarget())
}

func TestDamageSpells(t *testing.T) {
	tb := newTable(t, "")
	tb.play("CS2_029", tb.bob.Hero)
	assert.Equal(t, 24, tb.bob.Hero.Health())

	tb.play("EX1_238", tb.bob.Hero)
	assert.Equal(t, 21, tb.bob.Hero.Health())
	assert.Equal(t, 1, tb.alice.Mana.OverloadNext)

	yeti := tb.minion(tb.bob, "CS2_182")
	tb.play("CS2_024", yeti)
	assert.Equal(t, 2, yeti.Health())
	assert.True(t, yeti.Frozen)
}

func TestAreaSpells(t *testing.T) {
	tb := newTable(t, "")
	mine := tb.minion(tb.alice, "CS2_182")
	yeti := tb.minion(tb.bob, "CS2_182")
	croc := tb.minion(tb.bob, crocolisk)

	tb.play("CS2_093", nil)
	assert.Equal(t, 28, tb.bob.Hero.Health())
	assert.Equal(t, 3, yeti.Health())
	assert.Equal(t, 1, croc.Health())
	assert.Equal(t, 5, mine.Health())
	assert.Equal(t, 30, tb.alice.Hero.Health())

	tb.play("CS2_032", nil)
	assert.Equal(t, game.ZoneGraveyard, yeti.Zone)
	assert.Equal(t, game.ZoneGraveyard, croc.Zone)
	assert.Equal(t, 28, tb.bob.Hero.Health())
	assert.Empty(t, tb.bob.Board)
}

func TestArcaneMissilesOnlyHitsEnemies(t *testing.T) {
	tb := newTable(t, "")
	mine := tb.minion(tb.alice, crocolisk)
	yeti := tb.minion(tb.bob, "CS2_182")

	tb.play("EX1_277", nil)
	assert.Equal(t, 3, 30-tb.bob.Hero.Health()+yeti.Damage)
	assert.Equal(t, 3, mine.Health())
	assert.Equal(t, 30, tb.alice.Hero.Health())
}

func TestPolymorphKeepsSlot(t *testing.T) {
	tb := newTable(t, "")
	tb.minion(tb.bob, crocolisk)
	yeti := tb.minion(tb.bob, "CS2_182")
	tb.minion(tb.bob, crocolisk)

	tb.play("CS2_022", yeti)
	sheep := tb.bob.Board[1]
	assert.Equal(t, "CS2_tk1", sheep.CardID)
	assert.Equal(t, 1, sheep.AttackValue())
	assert.Equal(t, 1, sheep.Health())
	assert.Equal(t, game.ZoneRemoved, yeti.Zone)
}

func TestDestroySpellTargets(t *testing.T) {
	tb := newTable(t, "")
	yeti := tb.minion(tb.bob, "CS2_182")
	croc := tb.minion(tb.bob, crocolisk)

	pain := tb.card(tb.alice, "CS2_234")
	assert.Equal(t, []*game.Entity{croc}, tb.g.ValidTargets(pain))
	require.ErrorIs(t, tb.g.PlayCard(pain, yeti), game.ErrIllegalAction)
	require.NoError(t, tb.g.PlayCard(pain, croc))
	assert.Equal(t, game.ZoneGraveyard, croc.Zone)

	execute := tb.card(tb.alice, "CS2_108")
	assert.Empty(t, tb.g.ValidTargets(execute))
	assert.False(t, tb.g.CanPlayCard(execute))

	yeti.Damage = 1
	require.NoError(t, tb.g.PlayCard(execute, yeti))
	assert.Equal(t, game.ZoneGraveyard, yeti.Zone)
}

func TestSilenceStopsTriggers(t *testing.T) {
	tb := newTable(t, "")
	ghoul := tb.minion(tb.alice, "tt_004")
	tb.play("EX1_332", ghoul)
	assert.True(t, ghoul.Silenced)

	croc := tb.minion(tb.bob, crocolisk)
	tb.play("CS2_029", croc)
	assert.Equal(t, 2, ghoul.AttackValue())
}

func TestManaSpells(t *testing.T) {
	tb := newTable(t, "")
	tb.play("EX1_169", nil)
	assert.Equal(t, 1, tb.alice.Mana.Temp)

	tb.alice.Mana.Crystals = 5
	tb.play("CS2_013", nil)
	assert.Equal(t, 6, tb.alice.Mana.Crystals)
	assert.Equal(t, 2, tb.alice.Mana.Available)

	tb.alice.Mana.Crystals = 10
	hand := len(tb.alice.Hand)
	tb.play("CS2_013", nil)
	assert.Equal(t, 10, tb.alice.Mana.Crystals)
	require.Len(t, tb.alice.Hand, hand+1)
	excess := tb.alice.Hand[hand]
	assert.Equal(t, "CS2_013t", excess.CardID)

	require.NoError(t, tb.g.PlayCard(excess, nil))
	assert.Len(t, tb.alice.Hand, hand+1)
}

func TestArcaneIntellectDraws(t *testing.T) {
	tb := newTable(t, "")
	hand := len(tb.alice.Hand)
	deck := len(tb.alice.Deck)
	tb.play("CS2_023", nil)
	assert.Len(t, tb.alice.Hand, hand+2)
	assert.Len(t, tb.alice.Deck, deck-2)
}

func TestKnifeJugglerReactsToFriendlySummons(t *testing.T) {
	tb := newTable(t, "")
	juggler := tb.minion(tb.alice, "NEW1_019")
	assert.Equal(t, 30, tb.bob.Hero.Health())

	tb.play("EX1_506", nil)
	require.Len(t, tb.alice.Board, 3)
	assert.Equal(t, juggler, tb.alice.Board[0])
	assert.Equal(t, "EX1_506", tb.alice.Board[1].CardID)
	assert.Equal(t, "EX1_506a", tb.alice.Board[2].CardID)
	assert.Equal(t, 28, tb.bob.Hero.Health())

	tb.minion(tb.bob, crocolisk)
	assert.Equal(t, 28, tb.bob.Hero.Health())
}

func TestBattlecries(t *testing.T) {
	tb := newTable(t, "")

	t.Run("elven archer", func(t *testing.T) {
		tb.play("CS2_189", tb.bob.Hero)
		assert.Equal(t, 29, tb.bob.Hero.Health())
	})

	t.Run("ooze destroys the weapon", func(t *testing.T) {
		axe, err := tb.g.CreateCard("CS2_106")
		require.NoError(t, err)
		require.NoError(t, tb.g.EquipWeapon(tb.bob, axe))
		require.NotNil(t, tb.bob.Weapon())

		tb.play("EX1_066", nil)
		assert.Nil(t, tb.bob.Weapon())
		assert.Equal(t, game.ZoneGraveyard, axe.Zone)
	})

	t.Run("ooze without a weapon", func(t *testing.T) {
		tb.play("EX1_066", nil)
	})
}

func TestDeathrattles(t *testing.T) {
	tb := newTable(t, "")

	t.Run("harvest golem leaves a golem in its slot", func(t *testing.T) {
		tb.minion(tb.bob, crocolisk)
		golem := tb.minion(tb.bob, "EX1_556")
		tb.minion(tb.bob, crocolisk)

		tb.play("CS2_029", golem)
		require.Len(t, tb.bob.Board, 3)
		assert.Equal(t, "EX1_556t", tb.bob.Board[1].CardID)
	})

	t.Run("loot hoarder draws", func(t *testing.T) {
		hoarder := tb.minion(tb.bob, "EX1_096")
		hand := len(tb.bob.Hand)
		tb.play("CS2_029", hoarder)
		assert.Len(t, tb.bob.Hand, hand+1)
	})
}

func TestAbominationChainsIntoLeperGnome(t *testing.T) {
	tb := newTable(t, "")
	gnome := tb.minion(tb.alice, "EX1_029")
	abom := tb.minion(tb.bob, "EX1_097")

	tb.play("CS2_029", abom)
	assert.Equal(t, game.ZoneGraveyard, abom.Zone)
	assert.Equal(t, game.ZoneGraveyard, gnome.Zone)
	assert.Equal(t, 28, tb.alice.Hero.Health())
	assert.Equal(t, 26, tb.bob.Hero.Health())
}

func TestAcolyteDrawsOnDamage(t *testing.T) {
	tb := newTable(t, "")
	acolyte := tb.minion(tb.alice, "EX1_007")
	hand := len(tb.alice.Hand)

	tb.play("CS2_189", acolyte)
	assert.Len(t, tb.alice.Hand, hand+1)
	assert.Equal(t, 2, acolyte.Health())

	// A divine shield pop is not damage.
	acolyte.SetKeyword(game.KeywordDivineShield, true)
	tb.play("CS2_189", acolyte)
	assert.Len(t, tb.alice.Hand, hand+1)
}

func TestFlesheatingGhoulCountsDeaths(t *testing.T) {
	tb := newTable(t, "")
	ghoul := tb.minion(tb.alice, "tt_004")
	tb.play("CS2_032", nil)
	assert.Equal(t, 2, ghoul.AttackValue())

	tb.minion(tb.bob, "CS2_168")
	tb.minion(tb.alice, "CS2_168")
	tb.play("CS2_093", nil)
	assert.Equal(t, 3, ghoul.AttackValue())

	// Only in play.
	inHand := tb.card(tb.alice, "tt_004")
	tb.play("CS2_029", tb.alice.Board[1])
	assert.Equal(t, 4, ghoul.AttackValue())
	assert.Equal(t, 2, inHand.AttackValue())
}

func TestHealingTotemAtEndOfTurn(t *testing.T) {
	tb := newTable(t, "")
	totem := tb.minion(tb.alice, "NEW1_009")
	yeti := tb.minion(tb.alice, "CS2_182")
	enemy := tb.minion(tb.bob, "CS2_182")
	yeti.Damage = 3
	enemy.Damage = 3

	require.NoError(t, tb.g.EndTurn())
	assert.Equal(t, 2, yeti.Damage)
	assert.Equal(t, 3, enemy.Damage)
	assert.Equal(t, 0, totem.Damage)

	require.NoError(t, tb.g.EndTurn())
	assert.Equal(t, 2, yeti.Damage)
	require.NoError(t, tb.g.EndTurn())
	assert.Equal(t, 1, yeti.Damage)
}

func TestStonehillDefenderDiscovers(t *testing.T) {
	tb := newTable(t, "")
	tb.play("UNG_072", nil)

	pc := tb.g.PendingChoice()
	require.NotNil(t, pc)
	require.NotEmpty(t, pc.Options)
	hand := len(tb.alice.Hand)
	require.NoError(t, tb.g.ChooseDiscover(len(pc.Options)-1))

	require.Len(t, tb.alice.Hand, hand+1)
	got := tb.alice.Hand[hand]
	assert.Equal(t, pc.Options[len(pc.Options)-1], got.CardID)
	assert.True(t, got.Has(game.KeywordTaunt))
	assert.True(t, got.Def.Collectible)
}

func TestCathedralOfAtonement(t *testing.T) {
	tb := newTable(t, "")
	croc := tb.minion(tb.alice, crocolisk)
	loc := tb.play("REV_290", nil)
	require.Equal(t, game.ZonePlay, loc.Zone)

	hand := len(tb.alice.Hand)
	require.NoError(t, tb.g.UseLocation(loc, croc))
	assert.Equal(t, 4, croc.AttackValue())
	assert.Equal(t, 4, croc.Health())
	assert.Len(t, tb.alice.Hand, hand+1)
	assert.Equal(t, catalogue.DefaultLocationDurability-1, loc.Durability)
	assert.False(t, tb.g.CanUseLocation(loc))
}

func TestHeroPowers(t *testing.T) {
	tests := []struct {
		hero   string
		target func(tb *table) *game.Entity
		check  func(t *testing.T, tb *table)
	}{
		{
			hero: "HERO_01",
			check: func(t *testing.T, tb *table) {
				assert.Equal(t, 2, tb.alice.Hero.Armor)
			},
		},
		{
			hero: "HERO_02",
			check: func(t *testing.T, tb *table) {
				require.Len(t, tb.alice.Board, 1)
				assert.Contains(t, basicTotems, tb.alice.Board[0].CardID)
			},
		},
		{
			hero: "HERO_03",
			check: func(t *testing.T, tb *table) {
				w := tb.alice.Weapon()
				require.NotNil(t, w)
				assert.Equal(t, "CS2_082", w.CardID)
				assert.Equal(t, 1, tb.alice.Hero.AttackValue())
			},
		},
		{
			hero: "HERO_04",
			check: func(t *testing.T, tb *table) {
				require.Len(t, tb.alice.Board, 1)
				assert.Equal(t, "CS2_101t", tb.alice.Board[0].CardID)
			},
		},
		{
			hero: "HERO_05",
			check: func(t *testing.T, tb *table) {
				assert.Equal(t, 28, tb.bob.Hero.Health())
			},
		},
		{
			hero: "HERO_06",
			check: func(t *testing.T, tb *table) {
				assert.Equal(t, 1, tb.alice.Hero.AttackValue())
				assert.Equal(t, 1, tb.alice.Hero.Armor)
				require.NoError(t, tb.g.EndTurn())
				assert.Equal(t, 0, tb.alice.Hero.AttackValue())
			},
		},
		{
			hero: "HERO_07",
			check: func(t *testing.T, tb *table) {
				assert.Equal(t, 28, tb.alice.Hero.Health())
				assert.Len(t, tb.alice.Hand, 5)
			},
		},
		{
			hero:   "HERO_08",
			target: func(tb *table) *game.Entity { return tb.bob.Hero },
			check: func(t *testing.T, tb *table) {
				assert.Equal(t, 29, tb.bob.Hero.Health())
			},
		},
		{
			hero: "HERO_09",
			target: func(tb *table) *game.Entity {
				tb.alice.Hero.Damage = 5
				return tb.alice.Hero
			},
			check: func(t *testing.T, tb *table) {
				assert.Equal(t, 27, tb.alice.Hero.Health())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.hero, func(t *testing.T) {
			tb := newTable(t, tt.hero)
			var target *game.Entity
			if tt.target != nil {
				target = tt.target(tb)
			}
			require.True(t, tb.g.CanUseHeroPower())
			require.NoError(t, tb.g.UseHeroPower(target))
			assert.Equal(t, 8, tb.alice.Mana.Available)
			require.NoError(t, game.CheckInvariants(tb.g))
			tt.check(t, tb)
		})
	}
}

func TestTotemicCallSkipsTotemsInPlay(t *testing.T) {
	tb := newTable(t, "HERO_02")
	for _, id := range basicTotems[:3] {
		tb.minion(tb.alice, id)
	}
	require.NoError(t, tb.g.UseHeroPower(nil))
	require.Len(t, tb.alice.Board, 4)
	assert.Equal(t, basicTotems[3], tb.alice.Board[3].CardID)
}

func TestTargetRules(t *testing.T) {
	tb := newTable(t, "")
	mine := tb.minion(tb.alice, crocolisk)
	theirs := tb.minion(tb.bob, crocolisk)
	assassin := tb.minion(tb.bob, "ULD_274")
	source := tb.card(tb.alice, "CS2_029")

	tests := map[string][]*game.Entity{
		"any_character":      {tb.alice.Hero, mine, tb.bob.Hero, theirs},
		"any_minion":         {mine, theirs},
		"enemy_character":    {tb.bob.Hero, theirs},
		"enemy_minion":       {theirs},
		"friendly_character": {tb.alice.Hero, mine},
		"friendly_minion":    {mine},
	}
	for name, want := range tests {
		fn, ok := TargetRule(name)
		require.True(t, ok, name)
		got := fn(tb.g, source)
		assert.Equal(t, want, got, name)
		assert.NotContains(t, got, assassin, name)
	}
	_, ok := TargetRule("everything")
	assert.False(t, ok)
}
