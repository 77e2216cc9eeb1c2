package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/thraizz/hearthsim/internal/game/mana"
)

// EntityState is the observable state of one entity.
type EntityState struct {
	ID         int            `json:"id"`
	CardID     string         `json:"card_id"`
	Type       string         `json:"type"`
	Zone       string         `json:"zone"`
	Position   int            `json:"position"`
	Cost       int            `json:"cost"`
	Attack     int            `json:"attack,omitempty"`
	Health     int            `json:"health,omitempty"`
	MaxHealth  int            `json:"max_health,omitempty"`
	Armor      int            `json:"armor,omitempty"`
	Durability int            `json:"durability,omitempty"`
	Cooldown   int            `json:"cooldown,omitempty"`
	Keywords   []string       `json:"keywords,omitempty"`
	Exhausted  bool           `json:"exhausted,omitempty"`
	Frozen     bool           `json:"frozen,omitempty"`
	Silenced   bool           `json:"silenced,omitempty"`
	Immune     bool           `json:"immune,omitempty"`
	CantAttack bool           `json:"cant_attack,omitempty"`
	Untargeted bool           `json:"cant_be_targeted,omitempty"`
	TempAttack int            `json:"temp_attack,omitempty"`
	Attacks    int            `json:"attacks_this_turn,omitempty"`
	Tags       map[string]int `json:"tags,omitempty"`
	Weapon     *EntityState   `json:"weapon,omitempty"`
	HeroPower  *EntityState   `json:"hero_power,omitempty"`
}

// PlayerState is the observable state of one player.
type PlayerState struct {
	Name      string         `json:"name"`
	Index     int            `json:"index"`
	Hero      *EntityState   `json:"hero"`
	Deck      []EntityState  `json:"deck"`
	Hand      []EntityState  `json:"hand"`
	Board     []EntityState  `json:"board"`
	Graveyard []EntityState  `json:"graveyard"`
	Mana      mana.Pool      `json:"mana"`
	Fatigue   int            `json:"fatigue"`
	PlayState string         `json:"play_state"`
	Mulligan  string         `json:"mulligan"`
	Turn      TurnCounters   `json:"turn_counters"`
	History   PlayerHistory  `json:"history"`
	Attrs     map[string]int `json:"attrs,omitempty"`
}

// State is a snapshot of a game. It contains nothing that differs between
// two games run with the same seed and actions, so the game id is left out.
type State struct {
	Turn     int            `json:"turn"`
	Current  int            `json:"current"`
	Phase    string         `json:"phase"`
	Actions  int            `json:"actions_this_turn"`
	Faulted  bool           `json:"faulted,omitempty"`
	Players  []PlayerState  `json:"players"`
	Pending  []string       `json:"pending_choice,omitempty"`
	History  []HistoryEntry `json:"history"`
	EntityID int            `json:"next_entity_id"`
}

func entityState(e *Entity) *EntityState {
	if e == nil {
		return nil
	}
	s := &EntityState{
		ID:         e.ID,
		CardID:     e.CardID,
		Type:       string(e.Type),
		Zone:       e.Zone.String(),
		Position:   e.Position,
		Cost:       e.Cost,
		Attack:     e.Attack,
		Health:     e.Health(),
		MaxHealth:  e.MaxHealth,
		Armor:      e.Armor,
		Durability: e.Durability,
		Cooldown:   e.Cooldown,
		Keywords:   e.Keywords().Names(),
		Exhausted:  e.Exhausted,
		Frozen:     e.Frozen,
		Silenced:   e.Silenced,
		Immune:     e.Immune,
		CantAttack: e.CantAttack,
		Untargeted: e.CantBeTargeted,
		TempAttack: e.TempAttack,
		Attacks:    e.AttacksThisTurn,
		Weapon:     entityState(e.Weapon),
		HeroPower:  entityState(e.HeroPower),
	}
	if len(e.Tags) > 0 {
		s.Tags = make(map[string]int, len(e.Tags))
		for _, k := range e.Tags.Keys() {
			s.Tags[string(k)] = e.Tags.Get(k)
		}
	}
	return s
}

func entityStates(list []*Entity) []EntityState {
	out := make([]EntityState, len(list))
	for i, e := range list {
		out[i] = *entityState(e)
	}
	return out
}

// State captures the game. Map-valued fields are keyed by string, which
// encoding/json writes in sorted order, so the JSON form is canonical.
func (g *Game) State() State {
	s := State{
		Turn:     g.turns.Turn(),
		Current:  g.turns.Current(),
		Phase:    g.turns.Phase().String(),
		Actions:  g.turns.ActionsThisTurn(),
		Faulted:  g.faulted,
		History:  g.History(),
		EntityID: g.nextEntityID,
	}
	for _, p := range g.players {
		if p == nil {
			continue
		}
		ps := PlayerState{
			Name:      p.Name,
			Index:     p.Index,
			Hero:      entityState(p.Hero),
			Deck:      entityStates(p.Deck),
			Hand:      entityStates(p.Hand),
			Board:     entityStates(p.Board),
			Graveyard: entityStates(p.Graveyard),
			Mana:      p.Mana,
			Fatigue:   p.FatigueCounter,
			PlayState: p.PlayState.String(),
			Mulligan:  p.MulliganState.String(),
			Turn:      p.Turn,
			History:   p.History.copy(),
		}
		if len(p.Attrs) > 0 {
			ps.Attrs = make(map[string]int, len(p.Attrs))
			for _, k := range p.Attrs.Keys() {
				ps.Attrs[string(k)] = p.Attrs.Get(k)
			}
		}
		s.Players = append(s.Players, ps)
	}
	if g.pending != nil {
		s.Pending = append([]string(nil), g.pending.Options...)
	}
	return s
}

// MarshalState returns the JSON encoding of State.
func (g *Game) MarshalState() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g.State()); err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return buf.Bytes(), nil
}

// Digest returns a SHA-256 over the canonical state encoding. Two games
// with equal digests are observably identical.
func (g *Game) Digest() (string, error) {
	data, err := g.MarshalState()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
