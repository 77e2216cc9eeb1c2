package catalogue

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/decks.yaml
var defaultDecks []byte

// DeckEntry is one line of a deck list.
type DeckEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// Deck is a named deck list with its hero.
type Deck struct {
	Name  string      `yaml:"name"`
	Hero  string      `yaml:"hero"`
	Cards []DeckEntry `yaml:"cards"`
}

type deckFile struct {
	Decks []Deck `yaml:"decks"`
}

// CardIDs expands the deck list into one id per copy, in list order.
func (d Deck) CardIDs() []string {
	var ids []string
	for _, e := range d.Cards {
		count := e.Count
		if count <= 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Validate checks the deck against a catalogue.
func (d Deck) Validate(c *Catalogue) error {
	hero, ok := c.Lookup(d.Hero)
	if !ok || hero.Type != TypeHero {
		return fmt.Errorf("deck %q: unknown hero %q", d.Name, d.Hero)
	}
	for _, e := range d.Cards {
		if _, ok := c.Lookup(e.ID); !ok {
			return fmt.Errorf("deck %q: unknown card %q", d.Name, e.ID)
		}
	}
	return nil
}

// ParseDecks reads a YAML document with a top-level "decks" list.
func ParseDecks(data []byte) ([]Deck, error) {
	var f deckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse decks: %w", err)
	}
	return f.Decks, nil
}

// LoadDecks parses a YAML deck file from disk.
func LoadDecks(path string) ([]Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	return ParseDecks(data)
}

// DefaultDecks returns the built-in starter decks.
func DefaultDecks() []Deck {
	decks, err := ParseDecks(defaultDecks)
	if err != nil {
		panic(fmt.Sprintf("catalogue: embedded deck data is invalid: %v", err))
	}
	return decks
}
