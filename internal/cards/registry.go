// Package cards holds the built-in effect handlers of the bundled card set.
package cards

import (
	"sort"

	"github.com/thraizz/hearthsim/internal/game"
)

// cardRegistry maps card ids to their handler constructors.
var cardRegistry = map[string]func() game.Handlers{
	// Neutral
	game.CoinID: TheCoin,
	"CS2_189":   ElvenArcher,
	"EX1_029":   LeperGnome,
	"EX1_096":   LootHoarder,
	"NEW1_019":  KnifeJuggler,
	"EX1_066":   AcidicSwampOoze,
	"EX1_506":   MurlocTidehunter,
	"EX1_556":   HarvestGolem,
	"EX1_007":   AcolyteOfPain,
	"tt_004":    FlesheatingGhoul,
	"UNG_072":   StonehillDefender,
	"EX1_097":   Abomination,

	// Mage
	"CS2_029": Fireball,
	"CS2_024": Frostbolt,
	"CS2_023": ArcaneIntellect,
	"CS2_032": Flamestrike,
	"EX1_277": ArcaneMissiles,
	"CS2_022": Polymorph,

	// Shaman
	"EX1_238":  LightningBolt,
	"NEW1_009": HealingTotem,

	// Druid
	"EX1_169":  Innervate,
	"CS2_013":  WildGrowth,
	"CS2_013t": ExcessMana,

	// Priest
	"EX1_332": Silence,
	"CS2_234": ShadowWordPain,
	"REV_290": CathedralOfAtonement,

	// Warrior
	"CS2_108": Execute,

	// Paladin
	"CS2_093": Consecration,
}

// heroPowerRegistry maps hero power ids to their handler constructors.
var heroPowerRegistry = map[string]func() game.Handlers{
	"HERO_01bp": ArmorUp,
	"HERO_02bp": TotemicCall,
	"HERO_03bp": DaggerMastery,
	"HERO_04bp": Reinforce,
	"HERO_05bp": SteadyShot,
	"HERO_06bp": Shapeshift,
	"HERO_07bp": LifeTap,
	"HERO_08bp": Fireblast,
	"HERO_09bp": LesserHeal,
}

// Register binds every built-in card and hero power to reg.
func Register(reg *game.EffectRegistry) {
	for id, ctor := range cardRegistry {
		reg.Register(id, ctor())
	}
	for id, ctor := range heroPowerRegistry {
		reg.RegisterHeroPower(id, ctor())
	}
}

// IDs returns the ids of all built-in cards and hero powers, sorted.
func IDs() []string {
	ids := make([]string, 0, len(cardRegistry)+len(heroPowerRegistry))
	for id := range cardRegistry {
		ids = append(ids, id)
	}
	for id := range heroPowerRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether id has built-in handlers.
func Has(id string) bool {
	if _, ok := cardRegistry[id]; ok {
		return true
	}
	_, ok := heroPowerRegistry[id]
	return ok
}
