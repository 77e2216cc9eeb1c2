package game

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// cloner deep-copies a game, mapping every original entity to its copy so
// cross references can be rewired.
type cloner struct {
	dst  *Game
	seen map[*Entity]*Entity
}

func (c *cloner) entity(e *Entity) *Entity {
	if e == nil {
		return nil
	}
	if cp, ok := c.seen[e]; ok {
		return cp
	}
	cp := *e
	cp.game = c.dst
	cp.Tags = e.Tags.Copy()
	c.seen[e] = &cp
	cp.Weapon = c.entity(e.Weapon)
	cp.HeroPower = c.entity(e.HeroPower)
	return &cp
}

func (c *cloner) list(src []*Entity) []*Entity {
	if src == nil {
		return nil
	}
	out := make([]*Entity, len(src))
	for i, e := range src {
		out[i] = c.entity(e)
	}
	return out
}

func (c *cloner) player(p *Player) *Player {
	if p == nil {
		return nil
	}
	cp := *p
	cp.game = c.dst
	cp.Hero = c.entity(p.Hero)
	cp.Deck = c.list(p.Deck)
	cp.Hand = c.list(p.Hand)
	cp.Board = c.list(p.Board)
	cp.Graveyard = c.list(p.Graveyard)
	cp.Secrets = c.list(p.Secrets)
	cp.SetAside = c.list(p.SetAside)
	cp.History = p.History.copy()
	cp.Attrs = p.Attrs.Copy()
	return &cp
}

// Clone returns an independent deep copy of the game. The copy shares the
// immutable catalogue and effect registry, continues the random sequence
// from the same state and gets a fresh id. Triggers whose source entities
// are no longer reachable are dropped.
func (g *Game) Clone() *Game {
	ng := &Game{
		id:           uuid.NewString(),
		cfg:          g.cfg,
		catalogue:    g.catalogue,
		registry:     g.registry,
		nextEntityID: g.nextEntityID,
		turns:        g.turns,
		triggers:     newTriggerTable(),
		history:      append([]HistoryEntry(nil), g.history...),
		choice:       g.choice,
		faulted:      g.faulted,
	}
	ng.logger = g.logger.With(zap.String("clone_of", g.id))

	src := *g.rngSrc
	ng.rngSrc = &src
	ng.rng = rand.New(ng.rngSrc)

	c := &cloner{dst: ng, seen: make(map[*Entity]*Entity)}
	for i, p := range g.players {
		ng.players[i] = c.player(p)
	}
	// Owners point at the new players once every entity exists.
	for orig, cp := range c.seen {
		if orig.Owner != nil && orig.Owner.Index >= 0 && orig.Owner.Index < 2 {
			cp.Owner = ng.players[orig.Owner.Index]
		} else {
			cp.Owner = nil
		}
	}

	ng.triggers.next = g.triggers.next
	for ev, list := range g.triggers.byEvent {
		for _, t := range list {
			var source *Entity
			if t.source != nil {
				var ok bool
				if source, ok = c.seen[t.source]; !ok {
					continue
				}
			}
			ng.triggers.byEvent[ev] = append(ng.triggers.byEvent[ev], &trigger{
				handle: t.handle,
				event:  t.event,
				source: source,
				fn:     t.fn,
			})
		}
	}

	for _, e := range g.pendingDeaths {
		if cp, ok := c.seen[e]; ok {
			ng.pendingDeaths = append(ng.pendingDeaths, cp)
		}
	}

	if pc := g.pending; pc != nil {
		ng.pending = &PendingChoice{
			Source:  c.seen[pc.Source],
			Options: append([]string(nil), pc.Options...),
			resolve: pc.resolve,
		}
		if pc.Player != nil {
			ng.pending.Player = ng.players[pc.Player.Index]
		}
	}
	return ng
}
