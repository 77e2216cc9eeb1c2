package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"go.uber.org/zap"
)

// DiscoverFunc resolves a discover choice with the picked card id.
type DiscoverFunc func(g *Game, source *Entity, choice string) error

// PendingChoice is an open discover choice. Only ChooseDiscover is legal
// while one exists.
type PendingChoice struct {
	Player  *Player
	Source  *Entity
	Options []string
	resolve DiscoverFunc
}

// StartDiscover suspends the game until p picks one of options. An empty
// option list does nothing.
func (g *Game) StartDiscover(p *Player, source *Entity, options []string, fn DiscoverFunc) {
	if len(options) == 0 || fn == nil {
		return
	}
	g.pending = &PendingChoice{
		Player:  p,
		Source:  source,
		Options: append([]string(nil), options...),
		resolve: fn,
	}
}

// PendingChoice returns a copy of the open discover choice, or nil.
func (g *Game) PendingChoice() *PendingChoice {
	if g.pending == nil {
		return nil
	}
	pc := *g.pending
	pc.Options = append([]string(nil), pc.Options...)
	return &pc
}

// ChooseDiscover resolves the pending discover choice with option idx.
func (g *Game) ChooseDiscover(idx int) error {
	if g.faulted {
		return ErrGameFaulted
	}
	if g.Ended() {
		return ErrGameOver
	}
	pc := g.pending
	if pc == nil {
		return illegal("no discover choice pending")
	}
	if idx < 0 || idx >= len(pc.Options) {
		return illegal("discover option %d out of range [0,%d)", idx, len(pc.Options))
	}
	g.pending = nil
	choice := pc.Options[idx]
	g.record(HistoryEntry{
		Action:   "choose_discover",
		Player:   pc.Player.Index,
		CardID:   choice,
		EntityID: entityID(pc.Source),
		Amount:   idx,
	})
	if err := pc.resolve(g, pc.Source, choice); err != nil {
		return g.finish(wrapHandler(pc.Source, "discover", err))
	}
	return g.finish(g.settle())
}

// ValidTargets returns the legal targets for card, hero power or location.
// It is nil for entities that take no target.
func (g *Game) ValidTargets(card *Entity) []*Entity {
	if card == nil || !card.handlers.TakesTarget() {
		return nil
	}
	return card.handlers.ValidTargets(g, card)
}

// checkTarget validates target for source. Sources without a targeting
// rule ignore any target given. Minion, weapon and hero battlecries may go
// untargeted when nothing is targetable; everything else needs a target.
func (g *Game) checkTarget(source, target *Entity) (*Entity, error) {
	if !source.handlers.TakesTarget() || source.Type == catalogue.TypeLocation && source.Zone == ZoneHand {
		return nil, nil
	}
	valid := source.handlers.ValidTargets(g, source)
	if target == nil {
		switch source.Type {
		case catalogue.TypeMinion, catalogue.TypeWeapon, catalogue.TypeHero:
			if len(valid) == 0 {
				return nil, nil
			}
		}
		return nil, illegal("%s needs a target", source)
	}
	if indexOf(valid, target) < 0 {
		return nil, illegal("%s is not a valid target for %s", target, source)
	}
	return target, nil
}

func (g *Game) checkPlayable(card *Entity) error {
	if err := g.checkAction(false); err != nil {
		return err
	}
	p := g.CurrentPlayer()
	if card == nil || card.Owner != p || card.Zone != ZoneHand {
		return illegal("card is not in the current player's hand")
	}
	if !p.Mana.CanAfford(card.Cost) {
		return illegal("%s costs %d, %d available", card, card.Cost, p.Mana.Total())
	}
	switch card.Type {
	case catalogue.TypeMinion, catalogue.TypeLocation:
		if p.BoardFull() {
			return illegal("board is full")
		}
	case catalogue.TypeHeroPower:
		return illegal("%s cannot be played from hand", card)
	}
	return nil
}

// CanPlayCard reports whether the current player may play card now with
// some choice of target.
func (g *Game) CanPlayCard(card *Entity) bool {
	if g.checkPlayable(card) != nil {
		return false
	}
	if card.Type == catalogue.TypeSpell && card.handlers.TakesTarget() {
		return len(card.handlers.ValidTargets(g, card)) > 0
	}
	return true
}

// PlayCard plays card from hand onto the right end of the board.
func (g *Game) PlayCard(card, target *Entity) error {
	return g.PlayCardAt(card, target, -1, 0)
}

// PlayCardAt plays card with an explicit board position (-1 for the right
// end) and choose-one option.
func (g *Game) PlayCardAt(card, target *Entity, position, choice int) error {
	if err := g.checkPlayable(card); err != nil {
		return err
	}
	target, err := g.checkTarget(card, target)
	if err != nil {
		return err
	}
	return g.finish(g.resolvePlay(card, target, position, choice))
}

// PlayTargets returns the legal targets for playing card from hand.
// Locations are played untargeted; their targets apply to activation.
func (g *Game) PlayTargets(card *Entity) []*Entity {
	if card == nil || card.Type == catalogue.TypeLocation {
		return nil
	}
	return g.ValidTargets(card)
}

// Choice returns the choose-one option of the card being played.
func (g *Game) Choice() int {
	return g.choice
}

func (g *Game) resolvePlay(card, target *Entity, position, choice int) error {
	p := card.Owner
	g.turns.RecordAction()
	if err := g.turns.Transition(rules.PhaseMainAction); err != nil {
		return err
	}
	p.Mana.Spend(card.Cost)
	if card.Def != nil && card.Def.Overload > 0 {
		p.Mana.AddOverload(card.Def.Overload)
	}

	p.Turn.CardsPlayed++
	p.History.CardsPlayed = append(p.History.CardsPlayed, card.CardID)
	switch card.Type {
	case catalogue.TypeMinion:
		p.Turn.MinionsPlayed++
		p.History.MinionsPlayed = append(p.History.MinionsPlayed, card.CardID)
	case catalogue.TypeSpell:
		p.Turn.SpellsPlayed++
		p.History.SpellsPlayed = append(p.History.SpellsPlayed, card.CardID)
	}

	if card.Type == catalogue.TypeSpell {
		g.move(card, p, ZonePlay, -1)
	} else {
		g.move(card, p, ZoneSetAside, -1)
	}
	g.record(HistoryEntry{
		Action:   "play_card",
		Player:   p.Index,
		CardID:   card.CardID,
		EntityID: card.ID,
		TargetID: entityID(target),
	})
	g.logger.Debug("play card",
		zap.Int("turn", g.turns.Turn()),
		zap.String("player", p.Name),
		zap.Stringer("card", card),
		zap.Int("target", entityID(target)),
	)

	g.choice = choice
	defer func() { g.choice = 0 }()

	if err := g.FireEvent(Event{Type: rules.EventCardPlayed, Player: p, Entity: card, Target: target}); err != nil {
		return err
	}

	h := card.handlers
	switch card.Type {
	case catalogue.TypeMinion:
		ok, err := g.summon(card, p, position)
		if err != nil {
			return err
		}
		if !ok {
			g.move(card, p, ZoneGraveyard, -1)
			break
		}
		if err := g.battlecry(h, card, target); err != nil {
			return err
		}
	case catalogue.TypeSpell:
		if fn := h.effect(); fn != nil {
			if err := fn(g, card, target); err != nil {
				return wrapHandler(card, "on_play", err)
			}
		}
		if card.Zone == ZonePlay {
			g.move(card, p, ZoneGraveyard, -1)
		}
	case catalogue.TypeWeapon:
		if err := g.EquipWeapon(p, card); err != nil {
			return err
		}
		if err := g.battlecry(h, card, target); err != nil {
			return err
		}
	case catalogue.TypeLocation:
		if !g.move(card, p, ZonePlay, position) {
			g.move(card, p, ZoneGraveyard, -1)
			break
		}
		card.Cooldown = 0
	case catalogue.TypeHero:
		if err := g.replaceHero(p, card); err != nil {
			return err
		}
		if err := g.battlecry(h, card, target); err != nil {
			return err
		}
	}
	return g.settle()
}

func (g *Game) battlecry(h *Handlers, card, target *Entity) error {
	if h == nil || h.Battlecry == nil {
		return nil
	}
	if err := h.Battlecry(g, card, target); err != nil {
		return wrapHandler(card, "battlecry", err)
	}
	return nil
}

// replaceHero swaps p's hero for a played hero card. Damage, max health,
// armor and weapon carry over; the card's armor is added and its hero
// power replaces the old one.
func (g *Game) replaceHero(p *Player, card *Entity) error {
	old := p.Hero
	g.move(card, p, ZonePlay, -1)
	if old != nil {
		card.MaxHealth = old.MaxHealth
		card.Damage = old.Damage
		card.Armor = old.Armor
		card.Weapon = old.Weapon
		card.TempAttack = old.TempAttack
		card.AttacksThisTurn = old.AttacksThisTurn
		card.Frozen = old.Frozen
		old.Weapon = nil
	}
	card.Armor += card.Def.Armor
	p.Hero = card

	var oldPower *Entity
	if old != nil {
		oldPower = old.HeroPower
		old.Zone = ZoneRemoved
		g.UnregisterTriggers(old)
	}
	if card.Def.HeroPower == "" {
		card.HeroPower = oldPower
		return nil
	}
	if oldPower != nil {
		oldPower.Zone = ZoneRemoved
		g.UnregisterTriggers(oldPower)
	}
	return g.setHeroPower(card, card.Def.HeroPower)
}

func (g *Game) checkHeroPower() (*Entity, error) {
	if err := g.checkAction(false); err != nil {
		return nil, err
	}
	hp := g.CurrentPlayer().HeroPower()
	if hp == nil {
		return nil, illegal("no hero power")
	}
	if hp.UsedThisTurn {
		return nil, illegal("hero power already used this turn")
	}
	if !g.CurrentPlayer().Mana.CanAfford(hp.Cost) {
		return nil, illegal("hero power costs %d", hp.Cost)
	}
	return hp, nil
}

// CanUseHeroPower reports whether the current player may use the hero
// power with some choice of target.
func (g *Game) CanUseHeroPower() bool {
	hp, err := g.checkHeroPower()
	if err != nil {
		return false
	}
	return !hp.handlers.TakesTarget() || len(hp.handlers.ValidTargets(g, hp)) > 0
}

// UseHeroPower activates the current player's hero power.
func (g *Game) UseHeroPower(target *Entity) error {
	hp, err := g.checkHeroPower()
	if err != nil {
		return err
	}
	target, err = g.checkTarget(hp, target)
	if err != nil {
		return err
	}
	p := g.CurrentPlayer()
	g.turns.RecordAction()
	p.Mana.Spend(hp.Cost)
	hp.UsedThisTurn = true
	p.Turn.HeroPowerUses++
	g.record(HistoryEntry{Action: "hero_power", Player: p.Index, CardID: hp.CardID, EntityID: hp.ID, TargetID: entityID(target)})
	g.logger.Debug("hero power",
		zap.Int("turn", g.turns.Turn()),
		zap.String("player", p.Name),
		zap.String("power", hp.CardID),
	)
	return g.finish(g.resolveActivation(hp, target, rules.EventHeroPower, "hero_power"))
}

func (g *Game) resolveActivation(source, target *Entity, event rules.EventType, hook string) error {
	if err := g.turns.Transition(rules.PhaseMainAction); err != nil {
		return err
	}
	if fn := source.handlers.effect(); fn != nil {
		if err := fn(g, source, target); err != nil {
			return wrapHandler(source, hook, err)
		}
	}
	if event != "" {
		if err := g.FireEvent(Event{Type: event, Player: source.Owner, Entity: source, Target: target}); err != nil {
			return err
		}
	}
	return g.settle()
}

func (g *Game) checkLocation(loc *Entity) error {
	if err := g.checkAction(false); err != nil {
		return err
	}
	if loc == nil || loc.Type != catalogue.TypeLocation || loc.Owner != g.CurrentPlayer() || loc.Zone != ZonePlay {
		return illegal("not a location of the current player in play")
	}
	if loc.Cooldown > 0 {
		return illegal("%s is on cooldown", loc)
	}
	if loc.Durability <= 0 {
		return illegal("%s has no durability", loc)
	}
	return nil
}

// CanUseLocation reports whether loc may be activated with some target.
func (g *Game) CanUseLocation(loc *Entity) bool {
	if g.checkLocation(loc) != nil {
		return false
	}
	return !loc.handlers.TakesTarget() || len(loc.handlers.ValidTargets(g, loc)) > 0
}

// UseLocation activates a location. It goes on cooldown until its owner's
// next turn and loses one durability; at zero it is destroyed.
func (g *Game) UseLocation(loc, target *Entity) error {
	if err := g.checkLocation(loc); err != nil {
		return err
	}
	target, err := g.checkTarget(loc, target)
	if err != nil {
		return err
	}
	g.turns.RecordAction()
	loc.Cooldown = 1
	loc.Durability--
	g.record(HistoryEntry{Action: "use_location", Player: loc.Owner.Index, CardID: loc.CardID, EntityID: loc.ID, TargetID: entityID(target)})
	if loc.Durability <= 0 {
		g.Destroy(loc)
	}
	return g.finish(g.resolveActivation(loc, target, "", "location"))
}
