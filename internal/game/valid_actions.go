package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/encoding"
	"github.com/thraizz/hearthsim/internal/game/rules"
)

// targetSlot maps target to its sub-index from p's point of view. The
// second result is false for targets without one, such as friendly minions.
func targetSlot(p *Player, target *Entity) (int, bool) {
	opp := p.Opponent()
	switch {
	case target == nil:
		return encoding.TargetNone, true
	case opp != nil && target == opp.Hero:
		return encoding.TargetEnemyHero, true
	case target == p.Hero:
		return encoding.TargetFriendlyHero, true
	case opp != nil && target.Owner == opp && target.Zone == ZonePlay:
		if i := indexOf(opp.Board, target); i >= 0 && i < encoding.BoardSlots {
			return i + 1, true
		}
	}
	return 0, false
}

// resolveTarget is the inverse of targetSlot.
func (g *Game) resolveTarget(p *Player, a encoding.Action) (*Entity, error) {
	if a.TargetID != 0 {
		e := g.Entity(a.TargetID)
		if e == nil {
			return nil, illegal("no entity %d", a.TargetID)
		}
		return e, nil
	}
	opp := p.Opponent()
	switch a.Target {
	case encoding.TargetNone:
		return nil, nil
	case encoding.TargetEnemyHero:
		return opp.Hero, nil
	case encoding.TargetFriendlyHero:
		return p.Hero, nil
	}
	if i := a.Target - 1; i >= 0 && i < len(opp.Board) {
		return opp.Board[i], nil
	}
	return nil, illegal("no target in slot %d", a.Target)
}

func withTargets(base encoding.Action, p *Player, targets []*Entity) []encoding.Action {
	var out []encoding.Action
	for _, t := range targets {
		a := base
		if slot, ok := targetSlot(p, t); ok {
			a.Target = slot
		} else {
			a.TargetID = t.ID
		}
		out = append(out, a)
	}
	return out
}

// ValidActions enumerates every legal action for the player to act.
func (g *Game) ValidActions() []encoding.Action {
	if g.faulted || g.Ended() {
		return nil
	}
	if pc := g.pending; pc != nil {
		out := make([]encoding.Action, len(pc.Options))
		for i := range pc.Options {
			out[i] = encoding.Action{Kind: encoding.KindChoose, Choice: i}
		}
		return out
	}
	if g.turns.Phase() == rules.PhaseMulligan {
		for _, p := range g.players {
			if p.MulliganState == rules.MulliganInput {
				return mulliganActions(p)
			}
		}
		return nil
	}
	if !g.turns.Phase().InMain() {
		return nil
	}

	endTurn := encoding.Action{Kind: encoding.KindEndTurn}
	if g.turns.ActionsThisTurn() >= g.cfg.MaxActionsPerTurn {
		return []encoding.Action{endTurn}
	}

	p := g.CurrentPlayer()
	var out []encoding.Action

	for i, card := range p.Hand {
		if i >= encoding.HandSlots || !g.CanPlayCard(card) {
			continue
		}
		base := encoding.Action{Kind: encoding.KindPlayCard, Hand: i}
		if targets := g.PlayTargets(card); len(targets) > 0 {
			out = append(out, withTargets(base, p, targets)...)
			continue
		}
		out = append(out, base)
	}

	attackers := append([]*Entity{p.Hero}, p.Board...)
	for slot, a := range attackers {
		if slot >= encoding.AttackerSlots || a == nil || !a.CanAttack() {
			continue
		}
		for _, d := range g.ValidAttackTargets(a) {
			ds, ok := targetSlot(p, d)
			if !ok || ds == encoding.TargetFriendlyHero {
				continue
			}
			if ds == encoding.TargetEnemyHero {
				ds = 0
			}
			out = append(out, encoding.Action{Kind: encoding.KindAttack, Attacker: slot, Target: ds})
		}
	}

	if g.CanUseHeroPower() {
		hp := p.HeroPower()
		base := encoding.Action{Kind: encoding.KindHeroPower}
		if targets := g.ValidTargets(hp); len(targets) > 0 {
			out = append(out, withTargets(base, p, targets)...)
		} else {
			out = append(out, base)
		}
	}

	for i, e := range p.Board {
		if e.Type != catalogue.TypeLocation || !g.CanUseLocation(e) {
			continue
		}
		base := encoding.Action{Kind: encoding.KindUseLocation, Board: i}
		if targets := g.ValidTargets(e); len(targets) > 0 {
			out = append(out, withTargets(base, p, targets)...)
		} else {
			out = append(out, base)
		}
	}

	return append(out, endTurn)
}

// mulliganActions lists every subset of p's hand that may be replaced.
func mulliganActions(p *Player) []encoding.Action {
	var coin uint16
	for i, c := range p.Hand {
		if c.CardID == CoinID {
			coin |= 1 << uint(i)
		}
	}
	n := min(len(p.Hand), 16)
	var out []encoding.Action
	for m := 0; m < 1<<uint(n); m++ {
		mask := uint16(m)
		if mask&coin != 0 {
			continue
		}
		out = append(out, encoding.Action{Kind: encoding.KindMulligan, Player: p.Index, Mask: mask})
	}
	return out
}

// ActionMask returns the encoding mask of ValidActions.
func (g *Game) ActionMask() []bool {
	return encoding.Mask(g.ValidActions())
}

// Apply performs a decoded action for the player to act.
func (g *Game) Apply(a encoding.Action) error {
	switch a.Kind {
	case encoding.KindChoose:
		return g.ChooseDiscover(a.Choice)
	case encoding.KindMulligan:
		if a.Player < 0 || a.Player > 1 || g.players[a.Player] == nil {
			return illegal("no player %d", a.Player)
		}
		p := g.players[a.Player]
		var replace []*Entity
		for i, c := range p.Hand {
			if a.Mask&(1<<uint(i)) != 0 {
				replace = append(replace, c)
			}
		}
		_, err := g.DoMulligan(p, replace)
		return err
	case encoding.KindEndTurn:
		return g.EndTurn()
	}

	if err := g.checkAction(false); err != nil {
		return err
	}
	p := g.CurrentPlayer()
	switch a.Kind {
	case encoding.KindPlayCard:
		if a.Hand < 0 || a.Hand >= len(p.Hand) {
			return illegal("no card in hand slot %d", a.Hand)
		}
		target, err := g.resolveTarget(p, a)
		if err != nil {
			return err
		}
		return g.PlayCard(p.Hand[a.Hand], target)
	case encoding.KindHeroPower:
		target, err := g.resolveTarget(p, a)
		if err != nil {
			return err
		}
		return g.UseHeroPower(target)
	case encoding.KindAttack:
		var attacker *Entity
		switch {
		case a.Attacker == 0:
			attacker = p.Hero
		case a.Attacker > 0 && a.Attacker-1 < len(p.Board):
			attacker = p.Board[a.Attacker-1]
		default:
			return illegal("no attacker in slot %d", a.Attacker)
		}
		opp := p.Opponent()
		var defender *Entity
		switch {
		case a.Target == 0:
			defender = opp.Hero
		case a.Target > 0 && a.Target-1 < len(opp.Board):
			defender = opp.Board[a.Target-1]
		default:
			return illegal("no defender in slot %d", a.Target)
		}
		return g.Attack(attacker, defender)
	case encoding.KindUseLocation:
		if a.Board < 0 || a.Board >= len(p.Board) {
			return illegal("no location in board slot %d", a.Board)
		}
		target, err := g.resolveTarget(p, a)
		if err != nil {
			return err
		}
		return g.UseLocation(p.Board[a.Board], target)
	}
	return illegal("unknown action kind %s", a.Kind)
}

// ApplyIndex decodes and applies an integer action.
func (g *Game) ApplyIndex(i int) error {
	a, err := encoding.FromIndex(i)
	if err != nil {
		return illegal("%v", err)
	}
	return g.Apply(a)
}
