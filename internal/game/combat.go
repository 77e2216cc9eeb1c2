package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"go.uber.org/zap"
)

// ValidAttackTargets returns what attacker may attack: the enemy hero
// first, then enemy minions left to right. Stealthed minions are never
// included. When an unstealthed enemy taunt exists only taunts are listed.
// A rush minion on its first turn cannot attack the hero.
func (g *Game) ValidAttackTargets(attacker *Entity) []*Entity {
	if attacker == nil || attacker.Owner == nil {
		return nil
	}
	opp := attacker.Owner.Opponent()
	if opp == nil {
		return nil
	}
	var minions, taunts []*Entity
	for _, m := range opp.Board {
		if m.Type != catalogue.TypeMinion || m.Has(KeywordStealth) || !m.Alive() {
			continue
		}
		minions = append(minions, m)
		if m.Has(KeywordTaunt) {
			taunts = append(taunts, m)
		}
	}
	if len(taunts) > 0 {
		return taunts
	}
	if attacker.rushOnly() || opp.Hero == nil {
		return minions
	}
	return append([]*Entity{opp.Hero}, minions...)
}

// Attack has attacker attack defender.
func (g *Game) Attack(attacker, defender *Entity) error {
	if err := g.checkAction(false); err != nil {
		return err
	}
	if attacker == nil || defender == nil {
		return illegal("attack needs an attacker and a defender")
	}
	if attacker.Owner != g.CurrentPlayer() {
		return illegal("%s is not controlled by the current player", attacker)
	}
	if !attacker.CanAttack() {
		return illegal("%s cannot attack", attacker)
	}
	if indexOf(g.ValidAttackTargets(attacker), defender) < 0 {
		return illegal("%s cannot attack %s", attacker, defender)
	}

	g.turns.RecordAction()
	if err := g.turns.Transition(rules.PhaseMainCombat); err != nil {
		return g.finish(err)
	}
	g.record(HistoryEntry{
		Action:   "attack",
		Player:   attacker.Owner.Index,
		CardID:   attacker.CardID,
		EntityID: attacker.ID,
		TargetID: defender.ID,
	})
	g.logger.Debug("attack",
		zap.Int("turn", g.turns.Turn()),
		zap.Stringer("attacker", attacker),
		zap.Stringer("defender", defender),
	)
	if err := g.resolveAttack(attacker, defender); err != nil {
		return g.finish(err)
	}
	if err := g.settle(); err != nil {
		return g.finish(err)
	}
	if !g.Ended() {
		return g.finish(g.turns.Transition(rules.PhaseMainAction))
	}
	return nil
}

// resolveAttack trades damage between attacker and defender. Only minion
// defenders strike back, and never against a hero wielding a weapon. A hero
// attacking with a weapon wears it down.
func (g *Game) resolveAttack(attacker, defender *Entity) error {
	attacker.SetKeyword(KeywordStealth, false)
	attacker.AttacksThisTurn++

	if err := g.FireEvent(Event{
		Type:   rules.EventAttack,
		Player: attacker.Owner,
		Entity: attacker,
		Target: defender,
	}); err != nil {
		return err
	}
	// on_attack triggers may have removed either side.
	if attacker.Zone != ZonePlay || defender.Zone != ZonePlay {
		return nil
	}

	atk := attacker.AttackValue()
	retaliation := 0
	if defender.Type == catalogue.TypeMinion && !(attacker.Type == catalogue.TypeHero && attacker.Weapon != nil) {
		retaliation = defender.AttackValue()
	}
	if _, err := g.DealDamage(defender, atk, attacker); err != nil {
		return err
	}
	if retaliation > 0 {
		if _, err := g.DealDamage(attacker, retaliation, defender); err != nil {
			return err
		}
	}

	if attacker.Type == catalogue.TypeHero && attacker.Weapon != nil {
		w := attacker.Weapon
		w.Durability--
		if w.Durability <= 0 {
			g.Destroy(w)
		}
	}

	return g.FireEvent(Event{
		Type:   rules.EventAfterAttack,
		Player: attacker.Owner,
		Entity: attacker,
		Target: defender,
	})
}
