package cards

import "github.com/thraizz/hearthsim/internal/game"

// targetable keeps the entities source's controller may target.
func targetable(source *game.Entity, list []*game.Entity) []*game.Entity {
	var out []*game.Entity
	for _, e := range list {
		if e.Targetable(source.Owner) {
			out = append(out, e)
		}
	}
	return out
}

// anyCharacter lists every targetable character, friendly first.
func anyCharacter(_ *game.Game, source *game.Entity) []*game.Entity {
	p := source.Owner
	return targetable(source, append(p.Characters(), p.Opponent().Characters()...))
}

// anyMinion lists every targetable minion, friendly first.
func anyMinion(_ *game.Game, source *game.Entity) []*game.Entity {
	p := source.Owner
	return targetable(source, append(p.Minions(), p.Opponent().Minions()...))
}

// minionsWhere builds a target list of minions matching pred.
func minionsWhere(enemyOnly bool, pred func(*game.Entity) bool) func(*game.Game, *game.Entity) []*game.Entity {
	return func(g *game.Game, source *game.Entity) []*game.Entity {
		list := source.Owner.Opponent().Minions()
		if !enemyOnly {
			list = append(source.Owner.Minions(), list...)
		}
		var out []*game.Entity
		for _, e := range targetable(source, list) {
			if pred(e) {
				out = append(out, e)
			}
		}
		return out
	}
}

// living keeps the entities that have not died yet.
func living(list []*game.Entity) []*game.Entity {
	var out []*game.Entity
	for _, e := range list {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// damageAll deals n damage to each entity of a snapshot of list.
func damageAll(g *game.Game, list []*game.Entity, n int, source *game.Entity) error {
	for _, e := range append([]*game.Entity(nil), list...) {
		if _, err := g.DealDamage(e, n, source); err != nil {
			return err
		}
	}
	return nil
}

func dealDamage(n int) func(g *game.Game, source, target *game.Entity) error {
	return func(g *game.Game, source, target *game.Entity) error {
		_, err := g.DealDamage(target, n, source)
		return err
	}
}

func draw(n int) func(g *game.Game, source, _ *game.Entity) error {
	return func(g *game.Game, source, _ *game.Entity) error {
		_, err := source.Owner.Draw(n)
		return err
	}
}

func gainTempMana(g *game.Game, source, _ *game.Entity) error {
	source.Owner.Mana.AddTemp(1)
	return nil
}

// inPlay reports whether a trigger registered by source should act.
func inPlay(source *game.Entity) bool {
	return source != nil && source.Zone == game.ZonePlay
}

// TargetFunc lists the legal targets of a card.
type TargetFunc = func(g *game.Game, source *game.Entity) []*game.Entity

var targetRules = map[string]TargetFunc{
	"any_character": anyCharacter,
	"any_minion":    anyMinion,
	"enemy_character": func(_ *game.Game, source *game.Entity) []*game.Entity {
		return targetable(source, source.Owner.Opponent().Characters())
	},
	"enemy_minion": func(_ *game.Game, source *game.Entity) []*game.Entity {
		return targetable(source, source.Owner.Opponent().Minions())
	},
	"friendly_character": func(_ *game.Game, source *game.Entity) []*game.Entity {
		return targetable(source, source.Owner.Characters())
	},
	"friendly_minion": func(_ *game.Game, source *game.Entity) []*game.Entity {
		return targetable(source, source.Owner.Minions())
	},
}

// TargetRule returns a named targeting rule such as "enemy_minion".
func TargetRule(name string) (TargetFunc, bool) {
	fn, ok := targetRules[name]
	return fn, ok
}
