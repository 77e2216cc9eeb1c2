package game

import (
	"errors"
	"fmt"

	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/mana"
)

// CheckInvariants verifies structural consistency of a settled game and
// returns every violation found, joined.
func CheckInvariants(g *Game) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	seen := make(map[int]*Entity)
	g.eachEntity(func(e *Entity) bool {
		if other, ok := seen[e.ID]; ok && other != e {
			fail("entity id %d used by %s and %s", e.ID, other, e)
		}
		seen[e.ID] = e
		return true
	})

	for _, p := range g.players {
		if p == nil {
			continue
		}
		if len(p.Hand) > MaxHandSize {
			fail("%s hand has %d cards", p.Name, len(p.Hand))
		}
		if len(p.Board) > MaxBoardSize {
			fail("%s board has %d entities", p.Name, len(p.Board))
		}
		if len(p.Deck) > MaxDeckSize {
			fail("%s deck has %d cards", p.Name, len(p.Deck))
		}
		lists := []struct {
			zone Zone
			list []*Entity
		}{
			{ZoneDeck, p.Deck},
			{ZoneHand, p.Hand},
			{ZonePlay, p.Board},
			{ZoneGraveyard, p.Graveyard},
			{ZoneSecret, p.Secrets},
		}
		for _, l := range lists {
			for _, e := range l.list {
				if e.Owner != p {
					fail("%s in %s of %s is owned by someone else", e, l.zone, p.Name)
				}
				if e.Zone != l.zone {
					fail("%s listed in %s of %s but has zone %s", e, l.zone, p.Name, e.Zone)
				}
			}
		}
		for i, e := range p.Board {
			if e.Position != i {
				fail("%s at board slot %d has position %d", e, i, e.Position)
			}
			if e.Type == catalogue.TypeMinion && e.Health() <= 0 {
				fail("%s is on the board with %d health", e, e.Health())
			}
		}
		if h := p.Hero; h != nil {
			if h.Zone != ZonePlay || h.Owner != p {
				fail("hero %s of %s is in %s", h, p.Name, h.Zone)
			}
			if h.Damage < 0 || h.Armor < 0 {
				fail("hero %s has damage %d armor %d", h, h.Damage, h.Armor)
			}
			if w := h.Weapon; w != nil && (w.Durability <= 0 || w.Owner != p) {
				fail("weapon %s of %s has durability %d", w, p.Name, w.Durability)
			}
		}
		m := p.Mana
		if m.Crystals < 0 || m.Crystals > mana.MaxCrystals {
			fail("%s has %d mana crystals", p.Name, m.Crystals)
		}
		if m.Available < 0 || m.Available > m.Crystals {
			fail("%s has %d of %d mana available", p.Name, m.Available, m.Crystals)
		}
		if m.Overload < 0 || m.OverloadNext < 0 || m.Temp < 0 {
			fail("%s has negative mana counters", p.Name)
		}
		if !g.Ended() && p.PlayState.Final() {
			fail("%s is %s in a running game", p.Name, p.PlayState)
		}
	}

	if g.Ended() {
		for _, p := range g.players {
			if p != nil && !p.PlayState.Final() {
				fail("%s is %s in a finished game", p.Name, p.PlayState)
			}
		}
	} else if g.players[0] != nil && g.turns.Phase().InMain() {
		for _, p := range g.players {
			if p.Dead() {
				fail("%s is dead in a running game", p.Name)
			}
		}
	}
	for ev, list := range g.triggers.byEvent {
		for _, t := range list {
			if stale(t.source) {
				fail("%s trigger of %s survives in %s", ev, t.source, t.source.Zone)
			}
		}
	}
	if len(g.pendingDeaths) > 0 && g.pending == nil {
		fail("%d deaths left unresolved", len(g.pendingDeaths))
	}
	return errors.Join(errs...)
}
