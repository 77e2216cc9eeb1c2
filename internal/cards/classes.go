package cards

import (
	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/game/rules"
)

// Fireball - Deal 6 damage.
func Fireball() game.Handlers {
	return game.Handlers{ValidTargets: anyCharacter, OnPlay: dealDamage(6)}
}

// Frostbolt - Deal 3 damage to a character and Freeze it.
func Frostbolt() game.Handlers {
	return game.Handlers{
		ValidTargets: anyCharacter,
		OnPlay: func(g *game.Game, source, target *game.Entity) error {
			if _, err := g.DealDamage(target, 3, source); err != nil {
				return err
			}
			g.Freeze(target)
			return nil
		},
	}
}

// ArcaneIntellect - Draw 2 cards.
func ArcaneIntellect() game.Handlers {
	return game.Handlers{OnPlay: draw(2)}
}

// Flamestrike - Deal 4 damage to all enemy minions.
func Flamestrike() game.Handlers {
	return game.Handlers{
		OnPlay: func(g *game.Game, source, _ *game.Entity) error {
			return damageAll(g, source.Owner.Opponent().Minions(), 4, source)
		},
	}
}

// ArcaneMissiles - Deal 3 damage randomly split among all enemies.
// Each missile picks among the enemies still alive.
func ArcaneMissiles() game.Handlers {
	return game.Handlers{
		OnPlay: func(g *game.Game, source, _ *game.Entity) error {
			for range 3 {
				target := g.RandomChoice(living(source.Owner.Opponent().Characters()))
				if target == nil {
					return nil
				}
				if _, err := g.DealDamage(target, 1, source); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Polymorph - Transform a minion into a 1/1 Sheep.
func Polymorph() game.Handlers {
	return game.Handlers{
		ValidTargets: anyMinion,
		OnPlay: func(g *game.Game, _, target *game.Entity) error {
			_, err := g.Transform(target, "CS2_tk1")
			return err
		},
	}
}

// LightningBolt - Deal 3 damage. Overload: (1)
func LightningBolt() game.Handlers {
	return game.Handlers{ValidTargets: anyCharacter, OnPlay: dealDamage(3)}
}

// HealingTotem - At the end of your turn, restore 1 Health to all friendly minions.
func HealingTotem() game.Handlers {
	return game.Handlers{
		Setup: func(g *game.Game, source *game.Entity) error {
			g.RegisterTrigger(rules.EventTurnEnd, source, func(g *game.Game, source *game.Entity, ev *game.Event) error {
				if !inPlay(source) || ev.Player != source.Owner {
					return nil
				}
				for _, m := range source.Owner.Minions() {
					if _, err := g.Heal(m, 1, source); err != nil {
						return err
					}
				}
				return nil
			})
			return nil
		},
	}
}

// Innervate - Gain 1 Mana Crystal this turn only.
func Innervate() game.Handlers {
	return game.Handlers{OnPlay: gainTempMana}
}

// WildGrowth - Gain an empty Mana Crystal. At ten crystals the player gets
// Excess Mana instead.
func WildGrowth() game.Handlers {
	return game.Handlers{
		OnPlay: func(g *game.Game, source, _ *game.Entity) error {
			p := source.Owner
			if p.GainManaCrystal(1, false) > 0 {
				return nil
			}
			_, err := g.GiveCard(p, "CS2_013t")
			return err
		},
	}
}

// ExcessMana - Draw a card.
func ExcessMana() game.Handlers {
	return game.Handlers{OnPlay: draw(1)}
}

// Silence - Silence a minion.
func Silence() game.Handlers {
	return game.Handlers{
		ValidTargets: anyMinion,
		OnPlay: func(g *game.Game, _, target *game.Entity) error {
			g.Silence(target)
			return nil
		},
	}
}

// ShadowWordPain - Destroy a minion with 3 or less Attack.
func ShadowWordPain() game.Handlers {
	return game.Handlers{
		ValidTargets: minionsWhere(false, func(e *game.Entity) bool { return e.AttackValue() <= 3 }),
		OnPlay: func(g *game.Game, _, target *game.Entity) error {
			g.Destroy(target)
			return nil
		},
	}
}

// CathedralOfAtonement - Give a minion +2/+1 and draw a card.
func CathedralOfAtonement() game.Handlers {
	return game.Handlers{
		ValidTargets: anyMinion,
		Battlecry: func(g *game.Game, source, target *game.Entity) error {
			g.Buff(target, 2, 1)
			_, err := source.Owner.Draw(1)
			return err
		},
	}
}

// Execute - Destroy a damaged enemy minion.
func Execute() game.Handlers {
	return game.Handlers{
		ValidTargets: minionsWhere(true, func(e *game.Entity) bool { return e.Damage > 0 }),
		OnPlay: func(g *game.Game, _, target *game.Entity) error {
			g.Destroy(target)
			return nil
		},
	}
}

// Consecration - Deal 2 damage to all enemies.
func Consecration() game.Handlers {
	return game.Handlers{
		OnPlay: func(g *game.Game, source, _ *game.Entity) error {
			return damageAll(g, source.Owner.Opponent().Characters(), 2, source)
		},
	}
}
