package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/mana"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"github.com/thraizz/hearthsim/internal/game/tags"
	"go.uber.org/zap"
)

const (
	MaxHandSize  = 10
	MaxBoardSize = 7
	MaxDeckSize  = 60
	StartingHand = 3
)

// TurnCounters are reset at the start of each of the player's turns.
type TurnCounters struct {
	CardsPlayed   int `json:"cards_played"`
	MinionsPlayed int `json:"minions_played"`
	SpellsPlayed  int `json:"spells_played"`
	HeroPowerUses int `json:"hero_power_uses"`
	DamageTaken   int `json:"damage_taken"`
	Healing       int `json:"healing"`
}

// PlayerHistory records card ids over the whole game.
type PlayerHistory struct {
	CardsPlayed   []string `json:"cards_played"`
	MinionsPlayed []string `json:"minions_played"`
	SpellsPlayed  []string `json:"spells_played"`
	DrawnCards    []string `json:"drawn_cards"`
	DeadMinions   []string `json:"dead_minions"`
}

func (h PlayerHistory) copy() PlayerHistory {
	return PlayerHistory{
		CardsPlayed:   append([]string(nil), h.CardsPlayed...),
		MinionsPlayed: append([]string(nil), h.MinionsPlayed...),
		SpellsPlayed:  append([]string(nil), h.SpellsPlayed...),
		DrawnCards:    append([]string(nil), h.DrawnCards...),
		DeadMinions:   append([]string(nil), h.DeadMinions...),
	}
}

// Player is one side of a game. Zone lists are ordered; index 0 of Deck is
// the top card and Board is left to right.
type Player struct {
	Name  string
	Index int

	Hero      *Entity
	Deck      []*Entity
	Hand      []*Entity
	Board     []*Entity
	Graveyard []*Entity
	Secrets   []*Entity
	SetAside  []*Entity

	Mana           mana.Pool
	FatigueCounter int
	PlayState      rules.PlayState
	MulliganState  rules.MulliganState
	Turn           TurnCounters
	History        PlayerHistory
	Attrs          tags.Tags

	game *Game
}

// NewPlayer creates a player bound to g. Its index is assigned by Setup.
func (g *Game) NewPlayer(name string) *Player {
	return &Player{
		Name:  name,
		Index: -1,
		Attrs: tags.Tags{},
		game:  g,
	}
}

// Game returns the game the player belongs to.
func (p *Player) Game() *Game {
	return p.game
}

// Opponent returns the other player.
func (p *Player) Opponent() *Player {
	if p.Index < 0 {
		return nil
	}
	return p.game.players[1-p.Index]
}

// Weapon returns the equipped weapon, or nil.
func (p *Player) Weapon() *Entity {
	if p.Hero == nil {
		return nil
	}
	return p.Hero.Weapon
}

// HeroPower returns the hero power, or nil.
func (p *Player) HeroPower() *Entity {
	if p.Hero == nil {
		return nil
	}
	return p.Hero.HeroPower
}

// Minions returns the minions on the board, left to right.
func (p *Player) Minions() []*Entity {
	out := make([]*Entity, 0, len(p.Board))
	for _, e := range p.Board {
		if e.Type == catalogue.TypeMinion {
			out = append(out, e)
		}
	}
	return out
}

// BoardFull reports whether no more board entities fit.
func (p *Player) BoardFull() bool {
	return len(p.Board) >= MaxBoardSize
}

// Characters returns the hero followed by the board minions.
func (p *Player) Characters() []*Entity {
	out := make([]*Entity, 0, len(p.Board)+1)
	if p.Hero != nil {
		out = append(out, p.Hero)
	}
	return append(out, p.Minions()...)
}

// SetHero gives the player a fresh hero and hero power from the catalogue.
// The hero starts at the game's configured health.
func (p *Player) SetHero(cardID string) error {
	g := p.game
	def := g.catalogue.Get(cardID)
	if def.Type != catalogue.TypeHero {
		return illegal("%s is not a hero card", cardID)
	}
	hero, err := g.createEntity(def)
	if err != nil {
		return err
	}
	hero.SetHealth(g.cfg.StartingHealth)
	hero.Owner = p
	hero.Zone = ZonePlay
	p.Hero = hero
	return g.setHeroPower(hero, def.HeroPower)
}

// Draw moves up to n cards from the top of the deck to the hand. An empty
// deck deals increasing fatigue damage instead; a full hand burns the card.
func (p *Player) Draw(n int) ([]*Entity, error) {
	g := p.game
	var drawn []*Entity
	for i := 0; i < n; i++ {
		if len(p.Deck) == 0 {
			p.FatigueCounter++
			g.logger.Debug("fatigue",
				zap.String("player", p.Name),
				zap.Int("damage", p.FatigueCounter),
			)
			if _, err := g.DealDamage(p.Hero, p.FatigueCounter, nil); err != nil {
				return drawn, err
			}
			continue
		}
		card := p.Deck[0]
		if len(p.Hand) >= MaxHandSize {
			g.move(card, p, ZoneGraveyard, -1)
			g.logger.Debug("card burned",
				zap.String("player", p.Name),
				zap.String("card", card.CardID),
			)
			continue
		}
		g.move(card, p, ZoneHand, -1)
		p.History.DrawnCards = append(p.History.DrawnCards, card.CardID)
		drawn = append(drawn, card)
		if err := g.FireEvent(Event{Type: rules.EventCardDrawn, Player: p, Entity: card}); err != nil {
			return drawn, err
		}
	}
	return drawn, nil
}

// AddToHand puts card into the hand. With a full hand the card goes to the
// graveyard and false is returned.
func (p *Player) AddToHand(card *Entity) bool {
	if len(p.Hand) >= MaxHandSize {
		p.game.move(card, p, ZoneGraveyard, -1)
		return false
	}
	return p.game.move(card, p, ZoneHand, -1)
}

// AddToDeck inserts card into the deck at pos, or on top when pos is 0 and
// at the bottom when pos is -1.
func (p *Player) AddToDeck(card *Entity, pos int) bool {
	return p.game.move(card, p, ZoneDeck, pos)
}

// Discard moves a card from hand to the graveyard.
func (p *Player) Discard(card *Entity) error {
	if card == nil || card.Owner != p || card.Zone != ZoneHand {
		return nil
	}
	p.game.move(card, p, ZoneGraveyard, -1)
	return p.game.FireEvent(Event{Type: rules.EventCardDiscarded, Player: p, Entity: card})
}

// GainManaCrystal adds n crystals, full or empty, up to the cap.
func (p *Player) GainManaCrystal(n int, filled bool) int {
	return p.Mana.GainCrystals(n, filled)
}

// Dead reports whether the hero has no health left.
func (p *Player) Dead() bool {
	return p.Hero != nil && p.Hero.Health() <= 0
}
