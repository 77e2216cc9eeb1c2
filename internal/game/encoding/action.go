// Package encoding maps player actions to and from a fixed integer space.
//
// The space is laid out as contiguous segments:
//
//	0          end turn
//	1..10      hero power, by target sub-index
//	11..110    play card, hand slot*10 + target sub-index
//	111..174   attack, attacker slot*8 + defender slot
//
// Target sub-indices for hero powers and cards are 0 for no target, 1..7 for
// enemy board slots, 8 for the enemy hero and 9 for the friendly hero.
// Attacker slot 0 is the hero and 1..7 are board slots; defender slot 0 is
// the enemy hero and 1..7 are enemy board slots.
//
// Discover choices, mulligan masks and location use are not part of the
// integer space and travel on the Action value only.
package encoding

import "fmt"

// Kind identifies what an action does.
type Kind int

const (
	KindEndTurn Kind = iota
	KindHeroPower
	KindPlayCard
	KindAttack
	KindUseLocation
	KindChoose
	KindMulligan
)

var kindNames = map[Kind]string{
	KindEndTurn:     "END_TURN",
	KindHeroPower:   "HERO_POWER",
	KindPlayCard:    "PLAY_CARD",
	KindAttack:      "ATTACK",
	KindUseLocation: "USE_LOCATION",
	KindChoose:      "CHOOSE",
	KindMulligan:    "MULLIGAN",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// Target sub-indices.
const (
	TargetNone         = 0
	TargetEnemyHero    = 8
	TargetFriendlyHero = 9
	targetSlots        = 10
)

const (
	HandSlots     = 10
	AttackerSlots = 8
	DefenderSlots = 8
	BoardSlots    = 7
)

// Action is a decoded player action.
type Action struct {
	Kind     Kind   `json:"kind"`
	Hand     int    `json:"hand,omitempty"`
	Attacker int    `json:"attacker,omitempty"`
	Target   int    `json:"target,omitempty"`
	Board    int    `json:"board,omitempty"`
	Choice   int    `json:"choice,omitempty"`
	Player   int    `json:"player,omitempty"`
	Mask     uint16 `json:"mask,omitempty"`
	// TargetID names the target entity directly when it has no sub-index,
	// such as a friendly minion. Zero means Target is authoritative.
	TargetID int `json:"target_id,omitempty"`
}

func (a Action) String() string {
	switch a.Kind {
	case KindEndTurn:
		return "END_TURN"
	case KindHeroPower:
		return fmt.Sprintf("HERO_POWER(target=%d)", a.Target)
	case KindPlayCard:
		return fmt.Sprintf("PLAY_CARD(hand=%d, target=%d)", a.Hand, a.Target)
	case KindAttack:
		return fmt.Sprintf("ATTACK(%d->%d)", a.Attacker, a.Target)
	case KindUseLocation:
		return fmt.Sprintf("USE_LOCATION(board=%d, target=%d)", a.Board, a.Target)
	case KindChoose:
		return fmt.Sprintf("CHOOSE(%d)", a.Choice)
	case KindMulligan:
		return fmt.Sprintf("MULLIGAN(player=%d, mask=%b)", a.Player, a.Mask)
	}
	return a.Kind.String()
}

type segment struct {
	kind   Kind
	offset int
	size   int
}

var layout = []segment{
	{KindEndTurn, 0, 1},
	{KindHeroPower, 1, targetSlots},
	{KindPlayCard, 1 + targetSlots, HandSlots * targetSlots},
	{KindAttack, 1 + targetSlots + HandSlots*targetSlots, AttackerSlots * DefenderSlots},
}

// Size is the number of integer-encodable actions.
var Size = func() int {
	last := layout[len(layout)-1]
	return last.offset + last.size
}()

func segmentFor(k Kind) (segment, bool) {
	for _, s := range layout {
		if s.kind == k {
			return s, true
		}
	}
	return segment{}, false
}

// ToIndex encodes a. The second result is false for actions outside the
// integer space or with out-of-range fields.
func ToIndex(a Action) (int, bool) {
	seg, ok := segmentFor(a.Kind)
	if !ok || a.TargetID != 0 {
		return 0, false
	}
	var rel int
	switch a.Kind {
	case KindEndTurn:
		rel = 0
	case KindHeroPower:
		if a.Target < 0 || a.Target >= targetSlots {
			return 0, false
		}
		rel = a.Target
	case KindPlayCard:
		if a.Hand < 0 || a.Hand >= HandSlots || a.Target < 0 || a.Target >= targetSlots {
			return 0, false
		}
		rel = a.Hand*targetSlots + a.Target
	case KindAttack:
		if a.Attacker < 0 || a.Attacker >= AttackerSlots || a.Target < 0 || a.Target >= DefenderSlots {
			return 0, false
		}
		rel = a.Attacker*DefenderSlots + a.Target
	}
	return seg.offset + rel, true
}

// FromIndex decodes an integer produced by ToIndex.
func FromIndex(i int) (Action, error) {
	for _, seg := range layout {
		if i < seg.offset || i >= seg.offset+seg.size {
			continue
		}
		rel := i - seg.offset
		switch seg.kind {
		case KindEndTurn:
			return Action{Kind: KindEndTurn}, nil
		case KindHeroPower:
			return Action{Kind: KindHeroPower, Target: rel}, nil
		case KindPlayCard:
			return Action{Kind: KindPlayCard, Hand: rel / targetSlots, Target: rel % targetSlots}, nil
		case KindAttack:
			return Action{Kind: KindAttack, Attacker: rel / DefenderSlots, Target: rel % DefenderSlots}, nil
		}
	}
	return Action{}, fmt.Errorf("action index %d out of range [0,%d)", i, Size)
}

// Mask returns a Size-length slice with true at the index of every
// encodable action in actions.
func Mask(actions []Action) []bool {
	mask := make([]bool, Size)
	for _, a := range actions {
		if i, ok := ToIndex(a); ok {
			mask[i] = true
		}
	}
	return mask
}
