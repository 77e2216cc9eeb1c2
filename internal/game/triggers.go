package game

import (
	"github.com/thraizz/hearthsim/internal/game/rules"
)

// Event is delivered to triggers. Fields not meaningful for an event type
// are left nil or zero.
type Event struct {
	Type rules.EventType
	// Player is the player the event is about: the one whose turn starts,
	// who played or drew the card, or who controls the subject entity.
	Player *Player
	// Entity is the subject: the card played, drawn or discarded, the
	// minion summoned or killed, the damaged character or the attacker.
	Entity *Entity
	// Target is the chosen target of a play or the defender of an attack.
	Target *Entity
	// Source is the entity that dealt damage, if any.
	Source *Entity
	Amount int
}

// TriggerFunc runs when its event fires. source is the entity that
// registered the trigger; it may be nil for game-wide triggers.
type TriggerFunc func(g *Game, source *Entity, ev *Event) error

type trigger struct {
	handle  int
	event   rules.EventType
	source  *Entity
	fn      TriggerFunc
	removed bool
}

type triggerTable struct {
	byEvent map[rules.EventType][]*trigger
	next    int
}

func newTriggerTable() triggerTable {
	return triggerTable{byEvent: make(map[rules.EventType][]*trigger)}
}

// RegisterTrigger subscribes fn to event on behalf of source and returns a
// handle for UnregisterTrigger.
func (g *Game) RegisterTrigger(event rules.EventType, source *Entity, fn TriggerFunc) int {
	g.triggers.next++
	t := &trigger{handle: g.triggers.next, event: event, source: source, fn: fn}
	g.triggers.byEvent[event] = append(g.triggers.byEvent[event], t)
	return t.handle
}

// UnregisterTrigger removes one trigger by handle.
func (g *Game) UnregisterTrigger(handle int) {
	for ev, list := range g.triggers.byEvent {
		for i, t := range list {
			if t.handle == handle {
				t.removed = true
				g.triggers.byEvent[ev] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// UnregisterTriggers removes every trigger registered by source.
func (g *Game) UnregisterTriggers(source *Entity) {
	for ev, list := range g.triggers.byEvent {
		kept := make([]*trigger, 0, len(list))
		for _, t := range list {
			if t.source == source {
				t.removed = true
				continue
			}
			kept = append(kept, t)
		}
		g.triggers.byEvent[ev] = kept
	}
}

// TriggerCount returns how many triggers are registered for event.
func (g *Game) TriggerCount(event rules.EventType) int {
	return len(g.triggers.byEvent[event])
}

// listening reports whether source's triggers should run. Heroes in play
// always listen; other sources listen from the board or the hand.
func listening(source *Entity) bool {
	if source == nil {
		return true
	}
	if source.IsCurrentHero() {
		return true
	}
	return source.Zone == ZonePlay || source.Zone == ZoneHand
}

func stale(source *Entity) bool {
	if source == nil || source.IsCurrentHero() {
		return false
	}
	return source.Zone == ZoneGraveyard || source.Zone == ZoneRemoved
}

// FireEvent runs every listening trigger registered for ev.Type in
// registration order. Triggers registered while the event is being
// dispatched first run on the next firing. The first error stops dispatch.
func (g *Game) FireEvent(ev Event) error {
	list := g.triggers.byEvent[ev.Type]
	if len(list) == 0 {
		return nil
	}
	snapshot := make([]*trigger, 0, len(list))
	kept := list[:0:0]
	for _, t := range list {
		if stale(t.source) {
			t.removed = true
			continue
		}
		kept = append(kept, t)
		snapshot = append(snapshot, t)
	}
	g.triggers.byEvent[ev.Type] = kept

	for _, t := range snapshot {
		if t.removed || !listening(t.source) {
			continue
		}
		if err := t.fn(g, t.source, &ev); err != nil {
			return wrapHandler(t.source, string(ev.Type), err)
		}
	}
	return nil
}

// pruneTriggers drops triggers whose sources have left the game.
func (g *Game) pruneTriggers() {
	for ev, list := range g.triggers.byEvent {
		kept := make([]*trigger, 0, len(list))
		for _, t := range list {
			if stale(t.source) {
				t.removed = true
				continue
			}
			kept = append(kept, t)
		}
		if len(kept) == 0 {
			delete(g.triggers.byEvent, ev)
			continue
		}
		g.triggers.byEvent[ev] = kept
	}
}
