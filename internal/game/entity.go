package game

import (
	"fmt"
	"strings"

	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/tags"
)

// Zone is where an entity currently lives.
type Zone int

const (
	ZoneInvalid Zone = iota
	ZoneDeck
	ZoneHand
	ZonePlay
	ZoneGraveyard
	ZoneSecret
	ZoneSetAside
	ZoneRemoved
)

var zoneNames = map[Zone]string{
	ZoneInvalid:   "INVALID",
	ZoneDeck:      "DECK",
	ZoneHand:      "HAND",
	ZonePlay:      "PLAY",
	ZoneGraveyard: "GRAVEYARD",
	ZoneSecret:    "SECRET",
	ZoneSetAside:  "SETASIDE",
	ZoneRemoved:   "REMOVEDFROMGAME",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}

// Keyword is a bit set of printed or granted keyword abilities.
type Keyword uint16

const (
	KeywordTaunt Keyword = 1 << iota
	KeywordDivineShield
	KeywordCharge
	KeywordWindfury
	KeywordStealth
	KeywordPoisonous
	KeywordLifesteal
	KeywordRush
	KeywordReborn
)

var keywordNames = []struct {
	k    Keyword
	name string
}{
	{KeywordTaunt, "TAUNT"},
	{KeywordDivineShield, "DIVINE_SHIELD"},
	{KeywordCharge, "CHARGE"},
	{KeywordWindfury, "WINDFURY"},
	{KeywordStealth, "STEALTH"},
	{KeywordPoisonous, "POISONOUS"},
	{KeywordLifesteal, "LIFESTEAL"},
	{KeywordRush, "RUSH"},
	{KeywordReborn, "REBORN"},
}

// ParseKeyword converts a catalogue keyword name.
func ParseKeyword(name string) (Keyword, bool) {
	name = strings.ToUpper(name)
	for _, kn := range keywordNames {
		if kn.name == name {
			return kn.k, true
		}
	}
	return 0, false
}

// Names lists the keywords set in k.
func (k Keyword) Names() []string {
	var out []string
	for _, kn := range keywordNames {
		if k&kn.k != 0 {
			out = append(out, kn.name)
		}
	}
	return out
}

func (k Keyword) String() string {
	return strings.Join(k.Names(), "|")
}

// Entity is a card instance or hero in a game.
//
// Health is derived as MaxHealth minus Damage. Keyword reads go through Has,
// which reports nothing for a silenced entity.
type Entity struct {
	ID     int
	CardID string
	Type   catalogue.CardType
	Def    *catalogue.Card

	Owner    *Player
	Zone     Zone
	Position int
	Tags     tags.Tags

	Cost       int
	Attack     int
	MaxHealth  int
	Damage     int
	Armor      int
	Durability int
	Cooldown   int
	// TempAttack is attack granted until end of turn.
	TempAttack int

	Exhausted       bool
	AttacksThisTurn int
	Frozen          bool
	Silenced        bool
	Immune          bool
	CantAttack      bool
	CantBeTargeted  bool
	// UsedThisTurn is set on hero powers after activation.
	UsedThisTurn bool

	// Weapon and HeroPower are only set on heroes.
	Weapon    *Entity
	HeroPower *Entity

	keywords     Keyword
	handlers     *Handlers
	game         *Game
	pendingDeath bool
}

func newEntity(g *Game, def *catalogue.Card) *Entity {
	e := &Entity{
		ID:         g.allocID(),
		CardID:     def.ID,
		Type:       def.Type,
		Def:        def,
		Tags:       tags.Tags{},
		Cost:       def.Cost,
		Attack:     def.Attack,
		MaxHealth:  def.Health,
		Durability: def.Durability,
		Armor:      def.Armor,
		game:       g,
	}
	e.keywords = printedKeywords(def)
	return e
}

func printedKeywords(def *catalogue.Card) Keyword {
	var k Keyword
	for _, name := range def.Keywords {
		if kw, ok := ParseKeyword(name); ok {
			k |= kw
		}
	}
	return k
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d", e.CardID, e.ID)
}

// Game returns the game the entity belongs to.
func (e *Entity) Game() *Game {
	return e.game
}

// Handlers returns the effect handlers bound to the entity, or nil.
func (e *Entity) Handlers() *Handlers {
	return e.handlers
}

// Health returns remaining health.
func (e *Entity) Health() int {
	return e.MaxHealth - e.Damage
}

// SetHealth sets both max and current health to h.
func (e *Entity) SetHealth(h int) {
	e.MaxHealth = h
	e.Damage = 0
}

// Has reports whether the entity currently has keyword k.
func (e *Entity) Has(k Keyword) bool {
	if e.Silenced {
		return false
	}
	return e.keywords&k != 0
}

// Keywords returns the live keyword set.
func (e *Entity) Keywords() Keyword {
	if e.Silenced {
		return 0
	}
	return e.keywords
}

// SetKeyword grants or removes keyword k.
func (e *Entity) SetKeyword(k Keyword, on bool) {
	if on {
		e.keywords |= k
	} else {
		e.keywords &^= k
	}
}

func (e *Entity) IsMinion() bool { return e.Type == catalogue.TypeMinion }
func (e *Entity) IsHero() bool   { return e.Type == catalogue.TypeHero }

// IsCurrentHero reports whether e is its owner's hero.
func (e *Entity) IsCurrentHero() bool {
	return e.Owner != nil && e.Owner.Hero == e
}

// InPlay reports whether e is on the battlefield.
func (e *Entity) InPlay() bool {
	return e.Zone == ZonePlay
}

// Alive reports whether e is in play, has health left and is not queued to die.
func (e *Entity) Alive() bool {
	return e.Zone == ZonePlay && !e.pendingDeath && (e.Type != catalogue.TypeMinion && e.Type != catalogue.TypeHero || e.Health() > 0)
}

// AttackValue returns the attack the entity strikes with. Heroes include
// their weapon.
func (e *Entity) AttackValue() int {
	atk := e.Attack + e.TempAttack
	if e.Type == catalogue.TypeHero && e.Weapon != nil {
		atk += e.Weapon.Attack
	}
	return max(0, atk)
}

func (e *Entity) maxAttacks() int {
	windfury := e.Has(KeywordWindfury)
	if e.Type == catalogue.TypeHero && e.Weapon != nil && e.Weapon.Has(KeywordWindfury) {
		windfury = true
	}
	if windfury {
		return 2
	}
	return 1
}

// CanAttack reports whether the entity may declare an attack right now.
func (e *Entity) CanAttack() bool {
	g := e.game
	if g == nil || e.Zone != ZonePlay || e.Owner == nil || e.Owner != g.CurrentPlayer() {
		return false
	}
	if e.Type != catalogue.TypeMinion && e.Type != catalogue.TypeHero {
		return false
	}
	if e.Type == catalogue.TypeHero && !e.IsCurrentHero() {
		return false
	}
	if e.Frozen || e.CantAttack || e.AttackValue() <= 0 || e.Health() <= 0 {
		return false
	}
	if e.AttacksThisTurn >= e.maxAttacks() {
		return false
	}
	if e.Type == catalogue.TypeMinion && e.Exhausted && !e.Has(KeywordCharge) && !e.Has(KeywordRush) {
		return false
	}
	return true
}

// rushOnly reports whether the entity may only attack minions this turn.
func (e *Entity) rushOnly() bool {
	return e.Type == catalogue.TypeMinion && e.Exhausted && e.Has(KeywordRush) && !e.Has(KeywordCharge)
}

// Targetable reports whether by's controller may target e with an effect.
func (e *Entity) Targetable(by *Player) bool {
	if e.Zone != ZonePlay || e.CantBeTargeted {
		return false
	}
	if e.Owner != by && e.Has(KeywordStealth) {
		return false
	}
	return true
}
