package catalogue

import "strings"

// CardType identifies the broad kind of a card definition.
type CardType string

const (
	TypeMinion    CardType = "MINION"
	TypeSpell     CardType = "SPELL"
	TypeWeapon    CardType = "WEAPON"
	TypeHero      CardType = "HERO"
	TypeHeroPower CardType = "HERO_POWER"
	TypeLocation  CardType = "LOCATION"
)

// Valid reports whether t is one of the known card types.
func (t CardType) Valid() bool {
	switch t {
	case TypeMinion, TypeSpell, TypeWeapon, TypeHero, TypeHeroPower, TypeLocation:
		return true
	}
	return false
}

// ClassNeutral is the class of cards playable by every hero.
const ClassNeutral = "NEUTRAL"

// DefaultLocationDurability is applied to locations that omit a durability.
const DefaultLocationDurability = 3

// Card is an immutable card definition.
type Card struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Type        CardType `yaml:"type" json:"type"`
	Class       string   `yaml:"class" json:"class"`
	Set         string   `yaml:"set" json:"set"`
	Rarity      string   `yaml:"rarity,omitempty" json:"rarity,omitempty"`
	Cost        int      `yaml:"cost" json:"cost"`
	Attack      int      `yaml:"attack,omitempty" json:"attack,omitempty"`
	Health      int      `yaml:"health,omitempty" json:"health,omitempty"`
	Durability  int      `yaml:"durability,omitempty" json:"durability,omitempty"`
	Armor       int      `yaml:"armor,omitempty" json:"armor,omitempty"`
	Overload    int      `yaml:"overload,omitempty" json:"overload,omitempty"`
	Text        string   `yaml:"text,omitempty" json:"text,omitempty"`
	Collectible bool     `yaml:"collectible,omitempty" json:"collectible,omitempty"`
	Keywords    []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	HeroPower   string   `yaml:"hero_power,omitempty" json:"hero_power,omitempty"`
}

// HasKeyword reports whether the printed card carries keyword k.
func (c *Card) HasKeyword(k string) bool {
	for _, kw := range c.Keywords {
		if kw == k {
			return true
		}
	}
	return false
}

// placeholder is returned for unknown ids so that callers never see nil.
func placeholder(id string) *Card {
	return &Card{
		ID:    id,
		Name:  id,
		Type:  TypeSpell,
		Class: ClassNeutral,
	}
}

func normalize(c *Card) {
	c.Type = CardType(strings.ToUpper(string(c.Type)))
	if c.Class == "" {
		c.Class = ClassNeutral
	}
	c.Class = strings.ToUpper(c.Class)
	for i, kw := range c.Keywords {
		c.Keywords[i] = strings.ToUpper(strings.TrimSpace(kw))
	}
	if c.Type == TypeLocation && c.Durability == 0 {
		c.Durability = DefaultLocationDurability
	}
}
