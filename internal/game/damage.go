package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"go.uber.org/zap"
)

// DealDamage deals amount damage from source (which may be nil) to target
// and returns the damage that reached health. Immune targets take nothing;
// a divine shield absorbs the whole hit; hero armor soaks damage before
// health. on_damage_taken fires only when health was lost, and lifesteal
// heals that same amount.
func (g *Game) DealDamage(target *Entity, amount int, source *Entity) (int, error) {
	if target == nil || amount <= 0 || target.Immune {
		return 0, nil
	}
	if target.Has(KeywordDivineShield) {
		target.SetKeyword(KeywordDivineShield, false)
		return 0, nil
	}
	actual := amount
	if target.Type == catalogue.TypeHero && target.Armor > 0 {
		absorbed := min(target.Armor, amount)
		target.Armor -= absorbed
		actual -= absorbed
	}
	if actual == 0 {
		g.logger.Debug("damage absorbed by armor",
			zap.Stringer("target", target),
			zap.Int("amount", amount),
		)
		return 0, nil
	}
	target.Damage += actual
	if target.Owner != nil {
		target.Owner.Turn.DamageTaken += actual
	}

	g.logger.Debug("damage",
		zap.Stringer("target", target),
		zap.Int("amount", actual),
		zap.Int("health", target.Health()),
	)

	if err := g.FireEvent(Event{
		Type:   rules.EventDamageTaken,
		Player: target.Owner,
		Entity: target,
		Source: source,
		Amount: actual,
	}); err != nil {
		return actual, err
	}

	if source != nil && source.Has(KeywordLifesteal) && source.Owner != nil && source.Owner.Hero != nil {
		if _, err := g.Heal(source.Owner.Hero, actual, source); err != nil {
			return actual, err
		}
	}
	if source != nil && source.Has(KeywordPoisonous) && target.Type == catalogue.TypeMinion {
		g.Destroy(target)
	}
	return actual, nil
}

// Heal restores up to amount health to target and returns the amount
// restored. A negative amount is dealt as damage instead.
func (g *Game) Heal(target *Entity, amount int, source *Entity) (int, error) {
	if amount < 0 {
		return g.DealDamage(target, -amount, source)
	}
	if target == nil || amount == 0 {
		return 0, nil
	}
	healed := min(amount, target.Damage)
	target.Damage -= healed
	if healed > 0 && target.Owner != nil {
		target.Owner.Turn.Healing += healed
	}
	return healed, nil
}

// Destroy queues target for the death pipeline.
func (g *Game) Destroy(target *Entity) {
	if target == nil || target.Zone != ZonePlay || target.pendingDeath {
		return
	}
	target.pendingDeath = true
	g.pendingDeaths = append(g.pendingDeaths, target)
}

func (g *Game) collectDeaths() {
	for _, p := range g.players {
		if p == nil {
			continue
		}
		for _, e := range p.Board {
			switch e.Type {
			case catalogue.TypeMinion:
				if e.Health() <= 0 {
					g.Destroy(e)
				}
			case catalogue.TypeLocation:
				if e.Durability <= 0 {
					g.Destroy(e)
				}
			}
		}
		if w := p.Weapon(); w != nil && w.Durability <= 0 {
			g.Destroy(w)
		}
	}
}

// processDeaths resolves queued and lethal deaths until none remain. Each
// pass removes the dead from play, runs deathrattles, applies reborn and
// fires on_minion_death; further deaths caused along the way are handled
// in the next pass.
func (g *Game) processDeaths() error {
	for {
		g.collectDeaths()
		if len(g.pendingDeaths) == 0 {
			break
		}
		batch := g.pendingDeaths
		g.pendingDeaths = nil
		for _, e := range batch {
			e.pendingDeath = false
			if e.Zone != ZonePlay {
				continue
			}
			if err := g.resolveDeath(e); err != nil {
				return err
			}
		}
	}
	g.pruneTriggers()
	return nil
}

func (g *Game) resolveDeath(e *Entity) error {
	owner := e.Owner
	slot := e.Position

	switch e.Type {
	case catalogue.TypeWeapon:
		if owner != nil && owner.Hero != nil && owner.Hero.Weapon == e {
			owner.Hero.Weapon = nil
		}
	case catalogue.TypeMinion, catalogue.TypeLocation:
		g.move(e, owner, ZoneSetAside, -1)
	}

	g.logger.Debug("death", zap.Stringer("entity", e))

	if h := e.handlers; h != nil && h.Deathrattle != nil && !e.Silenced {
		e.Position = slot
		if err := h.Deathrattle(g, e); err != nil {
			return wrapHandler(e, "deathrattle", err)
		}
	}

	if e.Type == catalogue.TypeMinion && e.Has(KeywordReborn) && owner != nil {
		revived, err := g.CreateCard(e.CardID)
		if err != nil {
			return err
		}
		revived.SetHealth(1)
		revived.SetKeyword(KeywordReborn, false)
		if _, err := g.summon(revived, owner, slot); err != nil {
			return err
		}
	}

	g.move(e, owner, ZoneGraveyard, -1)
	if e.Type == catalogue.TypeMinion {
		if owner != nil {
			owner.History.DeadMinions = append(owner.History.DeadMinions, e.CardID)
		}
		return g.FireEvent(Event{Type: rules.EventMinionDeath, Player: owner, Entity: e})
	}
	return nil
}
