package catalogue

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/cards.yaml
var defaultCards []byte

// Catalogue is a read-only set of card definitions keyed by card id.
// It is safe for concurrent use once built.
type Catalogue struct {
	cards map[string]*Card
	order []string
}

type cardFile struct {
	Cards []*Card `yaml:"cards"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalogue
	defaultErr  error
)

// Default returns the built-in catalogue. It is parsed once per process.
func Default() *Catalogue {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Parse(defaultCards)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("catalogue: embedded card data is invalid: %v", defaultErr))
	}
	return defaultCat
}

// New builds a catalogue from the given definitions. Later duplicates win.
func New(cards []*Card) (*Catalogue, error) {
	c := &Catalogue{cards: make(map[string]*Card, len(cards))}
	for _, card := range cards {
		if card == nil || card.ID == "" {
			return nil, fmt.Errorf("card without id")
		}
		cp := *card
		cp.Keywords = append([]string(nil), card.Keywords...)
		normalize(&cp)
		if !cp.Type.Valid() {
			return nil, fmt.Errorf("card %s: unknown type %q", cp.ID, cp.Type)
		}
		if _, exists := c.cards[cp.ID]; !exists {
			c.order = append(c.order, cp.ID)
		}
		c.cards[cp.ID] = &cp
	}
	sort.Strings(c.order)
	return c, nil
}

// Parse reads a YAML document with a top-level "cards" list.
func Parse(data []byte) (*Catalogue, error) {
	var f cardFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}
	return New(f.Cards)
}

// LoadFile parses a YAML card file from disk.
func LoadFile(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	return Parse(data)
}

// Merge returns a new catalogue holding c's cards overlaid by other's.
func (c *Catalogue) Merge(other *Catalogue) *Catalogue {
	out := &Catalogue{cards: make(map[string]*Card, len(c.cards)+len(other.cards))}
	for _, src := range []*Catalogue{c, other} {
		for _, id := range src.order {
			if _, exists := out.cards[id]; !exists {
				out.order = append(out.order, id)
			}
			out.cards[id] = src.cards[id]
		}
	}
	sort.Strings(out.order)
	return out
}

// Get returns the definition for id. Unknown ids yield a neutral zero-cost
// spell placeholder rather than nil.
func (c *Catalogue) Get(id string) *Card {
	if card, ok := c.cards[id]; ok {
		return card
	}
	return placeholder(id)
}

// Lookup returns the definition for id and whether it exists.
func (c *Catalogue) Lookup(id string) (*Card, bool) {
	card, ok := c.cards[id]
	return card, ok
}

// Len returns the number of definitions.
func (c *Catalogue) Len() int {
	return len(c.order)
}

// All returns every definition ordered by id.
func (c *Catalogue) All() []*Card {
	out := make([]*Card, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.cards[id])
	}
	return out
}

// AllCollectible returns collectible definitions ordered by id.
func (c *Catalogue) AllCollectible() []*Card {
	var out []*Card
	for _, id := range c.order {
		if card := c.cards[id]; card.Collectible {
			out = append(out, card)
		}
	}
	return out
}

// ByClass returns collectible definitions of the given class ordered by id.
func (c *Catalogue) ByClass(class string) []*Card {
	var out []*Card
	for _, card := range c.AllCollectible() {
		if card.Class == class {
			out = append(out, card)
		}
	}
	return out
}

// Filter returns collectible definitions matching pred ordered by id.
func (c *Catalogue) Filter(pred func(*Card) bool) []*Card {
	var out []*Card
	for _, card := range c.AllCollectible() {
		if pred(card) {
			out = append(out, card)
		}
	}
	return out
}
