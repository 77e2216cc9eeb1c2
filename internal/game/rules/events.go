package rules

import "fmt"

// EventType names a point in the game at which registered triggers run.
type EventType string

const (
	EventTurnStart     EventType = "on_turn_start"
	EventTurnEnd       EventType = "on_turn_end"
	EventCardPlayed    EventType = "on_card_played"
	EventMinionSummon  EventType = "on_minion_summon"
	EventMinionDeath   EventType = "on_minion_death"
	EventDamageTaken   EventType = "on_damage_taken"
	EventAttack        EventType = "on_attack"
	EventAfterAttack   EventType = "on_after_attack"
	EventHeroPower     EventType = "on_hero_power"
	EventCardDrawn     EventType = "on_card_drawn"
	EventCardDiscarded EventType = "on_card_discarded"
	EventHeroDeath     EventType = "on_hero_death"
)

// AllEvents lists every event type in a stable order.
var AllEvents = []EventType{
	EventTurnStart,
	EventTurnEnd,
	EventCardPlayed,
	EventMinionSummon,
	EventMinionDeath,
	EventDamageTaken,
	EventAttack,
	EventAfterAttack,
	EventHeroPower,
	EventCardDrawn,
	EventCardDiscarded,
	EventHeroDeath,
}

var knownEvents = func() map[EventType]struct{} {
	m := make(map[EventType]struct{}, len(AllEvents))
	for _, e := range AllEvents {
		m[e] = struct{}{}
	}
	return m
}()

// Valid reports whether e is a known event type.
func (e EventType) Valid() bool {
	_, ok := knownEvents[e]
	return ok
}

// ParseEventType converts a name such as "on_attack" into an EventType.
func ParseEventType(name string) (EventType, error) {
	e := EventType(name)
	if !e.Valid() {
		return "", fmt.Errorf("unknown event %q", name)
	}
	return e, nil
}
