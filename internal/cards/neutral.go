package cards

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/game/rules"
)

// TheCoin - Gain 1 Mana Crystal this turn only.
func TheCoin() game.Handlers {
	return game.Handlers{OnPlay: gainTempMana}
}

// ElvenArcher - Battlecry: Deal 1 damage.
func ElvenArcher() game.Handlers {
	return game.Handlers{
		ValidTargets: anyCharacter,
		Battlecry:    dealDamage(1),
	}
}

// LeperGnome - Deathrattle: Deal 2 damage to the enemy hero.
func LeperGnome() game.Handlers {
	return game.Handlers{
		Deathrattle: func(g *game.Game, source *game.Entity) error {
			_, err := g.DealDamage(source.Owner.Opponent().Hero, 2, source)
			return err
		},
	}
}

// LootHoarder - Deathrattle: Draw a card.
func LootHoarder() game.Handlers {
	return game.Handlers{
		Deathrattle: func(g *game.Game, source *game.Entity) error {
			_, err := source.Owner.Draw(1)
			return err
		},
	}
}

// KnifeJuggler - After you summon a minion, deal 1 damage to a random enemy.
func KnifeJuggler() game.Handlers {
	return game.Handlers{
		Setup: func(g *game.Game, source *game.Entity) error {
			g.RegisterTrigger(rules.EventMinionSummon, source, func(g *game.Game, source *game.Entity, ev *game.Event) error {
				if !inPlay(source) || ev.Player != source.Owner || ev.Entity == source {
					return nil
				}
				target := g.RandomChoice(living(source.Owner.Opponent().Characters()))
				_, err := g.DealDamage(target, 1, source)
				return err
			})
			return nil
		},
	}
}

// AcidicSwampOoze - Battlecry: Destroy your opponent's weapon.
func AcidicSwampOoze() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			g.DestroyWeapon(source.Owner.Opponent())
			return nil
		},
	}
}

// MurlocTidehunter - Battlecry: Summon a 1/1 Murloc Scout.
func MurlocTidehunter() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			_, err := g.SummonToken(source.Owner, "EX1_506a", source.Position+1)
			return err
		},
	}
}

// HarvestGolem - Deathrattle: Summon a 2/1 Damaged Golem.
func HarvestGolem() game.Handlers {
	return game.Handlers{
		Deathrattle: func(g *game.Game, source *game.Entity) error {
			_, err := g.SummonToken(source.Owner, "EX1_556t", source.Position)
			return err
		},
	}
}

// AcolyteOfPain - Whenever this minion takes damage, draw a card.
func AcolyteOfPain() game.Handlers {
	return game.Handlers{
		Setup: func(g *game.Game, source *game.Entity) error {
			g.RegisterTrigger(rules.EventDamageTaken, source, func(g *game.Game, source *game.Entity, ev *game.Event) error {
				if !inPlay(source) || ev.Entity != source {
					return nil
				}
				_, err := source.Owner.Draw(1)
				return err
			})
			return nil
		},
	}
}

// FlesheatingGhoul - Whenever a minion dies, gain +1 Attack.
func FlesheatingGhoul() game.Handlers {
	return game.Handlers{
		Setup: func(g *game.Game, source *game.Entity) error {
			g.RegisterTrigger(rules.EventMinionDeath, source, func(g *game.Game, source *game.Entity, ev *game.Event) error {
				if inPlay(source) && ev.Entity != source {
					g.Buff(source, 1, 0)
				}
				return nil
			})
			return nil
		},
	}
}

// StonehillDefender - Battlecry: Discover a Taunt minion.
func StonehillDefender() game.Handlers {
	return game.Handlers{
		Battlecry: func(g *game.Game, source, _ *game.Entity) error {
			options := g.DiscoverOptions(3, func(c *catalogue.Card) bool {
				return c.Collectible && c.Type == catalogue.TypeMinion && c.HasKeyword("TAUNT")
			})
			g.StartDiscover(source.Owner, source, options, func(g *game.Game, source *game.Entity, choice string) error {
				_, err := g.GiveCard(source.Owner, choice)
				return err
			})
			return nil
		},
	}
}

// Abomination - Deathrattle: Deal 2 damage to ALL characters.
func Abomination() game.Handlers {
	return game.Handlers{
		Deathrattle: func(g *game.Game, source *game.Entity) error {
			p := source.Owner
			return damageAll(g, append(p.Characters(), p.Opponent().Characters()...), 2, source)
		},
	}
}
