package cards

import (
	"slices"

	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/game/tags"
)

// basicTotems are the totems Totemic Call picks from.
var basicTotems = []string{"CS2_050", "NEW1_009", "CS2_051", "CS2_052"}

// ArmorUp - Gain 2 Armor.
func ArmorUp() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			g.GainArmor(source.Owner.Hero, 2)
			return nil
		},
	}
}

// TotemicCall - Summon a random basic Totem not already on the board.
func TotemicCall() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			p := source.Owner
			var missing []string
			for _, id := range basicTotems {
				if !slices.ContainsFunc(p.Board, func(e *game.Entity) bool { return e.CardID == id }) {
					missing = append(missing, id)
				}
			}
			if len(missing) == 0 {
				return nil
			}
			_, err := g.SummonToken(p, missing[g.RandomInt(len(missing))], -1)
			return err
		},
	}
}

// DaggerMastery - Equip a 1/2 Dagger.
func DaggerMastery() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			dagger, err := g.CreateCard("CS2_082")
			if err != nil {
				return err
			}
			dagger.Tags.Set(tags.Generated, 1)
			return g.EquipWeapon(source.Owner, dagger)
		},
	}
}

// Reinforce - Summon a 1/1 Silver Hand Recruit.
func Reinforce() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			_, err := g.SummonToken(source.Owner, "CS2_101t", -1)
			return err
		},
	}
}

// SteadyShot - Deal 2 damage to the enemy hero.
func SteadyShot() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			_, err := g.DealDamage(source.Owner.Opponent().Hero, 2, source)
			return err
		},
	}
}

// Shapeshift - +1 Attack this turn. +1 Armor.
func Shapeshift() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			hero := source.Owner.Hero
			hero.TempAttack++
			g.GainArmor(hero, 1)
			return nil
		},
	}
}

// LifeTap - Draw a card and take 2 damage.
func LifeTap() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			p := source.Owner
			if _, err := p.Draw(1); err != nil {
				return err
			}
			_, err := g.DealDamage(p.Hero, 2, source)
			return err
		},
	}
}

// Fireblast - Deal 1 damage.
func Fireblast() game.Handlers {
	return game.Handlers{ValidTargets: anyCharacter, Battlecry: dealDamage(1)}
}

// LesserHeal - Restore 2 Health.
func LesserHeal() game.Handlers {
	return game.Handlers{
		ValidTargets: anyCharacter,
		Battlecry: func(g *game.Game, source, target *game.Entity) error {
			_, err := g.Heal(target, 2, source)
			return err
		},
	}
}
