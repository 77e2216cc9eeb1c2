package game

import (
	"fmt"
	"sync"

	"github.com/thraizz/hearthsim/internal/catalogue"
	"go.uber.org/zap"
)

// Handlers are the effect hooks of one card. Any hook may be nil.
type Handlers struct {
	// Battlecry runs when a minion, weapon or hero card is played, and is
	// the effect of hero powers and locations.
	Battlecry func(g *Game, source, target *Entity) error
	// OnPlay is the effect of a spell. Spells without OnPlay fall back to Battlecry.
	OnPlay func(g *Game, source, target *Entity) error
	// Deathrattle runs when the entity dies.
	Deathrattle func(g *Game, source *Entity) error
	// Setup runs once when the entity is created, typically to register triggers.
	Setup func(g *Game, source *Entity) error
	// ValidTargets lists legal targets. A nil func means the card takes no target.
	ValidTargets func(g *Game, source *Entity) []*Entity
}

// TakesTarget reports whether the card is played with a target.
func (h *Handlers) TakesTarget() bool {
	return h != nil && h.ValidTargets != nil
}

func (h *Handlers) effect() func(g *Game, source, target *Entity) error {
	if h == nil {
		return nil
	}
	if h.OnPlay != nil {
		return h.OnPlay
	}
	return h.Battlecry
}

// Source supplies handlers for cards not registered in code, such as
// scripted cards loaded per expansion. A nil result with a nil error means
// the source has nothing for the card.
type Source interface {
	Load(card *catalogue.Card) (*Handlers, error)
}

// EffectRegistry maps card ids to handlers. Built-in handlers take
// precedence; sources are consulted lazily and their results cached.
// It is safe to share one registry between games.
type EffectRegistry struct {
	mu         sync.RWMutex
	handlers   map[string]*Handlers
	heroPowers map[string]*Handlers
	sources    []Source
	cache      map[string]*Handlers
	logger     *zap.Logger
}

// NewEffectRegistry creates an empty registry.
func NewEffectRegistry(logger *zap.Logger) *EffectRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EffectRegistry{
		handlers:   make(map[string]*Handlers),
		heroPowers: make(map[string]*Handlers),
		cache:      make(map[string]*Handlers),
		logger:     logger,
	}
}

// Register binds handlers to a card id, replacing any earlier binding.
func (r *EffectRegistry) Register(cardID string, h Handlers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[cardID] = &h
}

// RegisterHeroPower binds handlers to a hero power id.
func (r *EffectRegistry) RegisterHeroPower(cardID string, h Handlers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.heroPowers[cardID] = &h
}

// AddSource appends a fallback handler source.
func (r *EffectRegistry) AddSource(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, s)
}

// Len returns the number of cards with built-in handlers.
func (r *EffectRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers) + len(r.heroPowers)
}

// Lookup returns the handlers for card, or nil for a vanilla card.
func (r *EffectRegistry) Lookup(card *catalogue.Card) (*Handlers, error) {
	r.mu.RLock()
	if card.Type == catalogue.TypeHeroPower {
		if h, ok := r.heroPowers[card.ID]; ok {
			r.mu.RUnlock()
			return h, nil
		}
	}
	if h, ok := r.handlers[card.ID]; ok {
		r.mu.RUnlock()
		return h, nil
	}
	if h, ok := r.cache[card.ID]; ok {
		r.mu.RUnlock()
		return h, nil
	}
	sources := r.sources
	r.mu.RUnlock()

	var found *Handlers
	for _, s := range sources {
		h, err := s.Load(card)
		if err != nil {
			return nil, fmt.Errorf("load handlers for %s: %w", card.ID, err)
		}
		if h != nil {
			found = h
			break
		}
	}

	r.mu.Lock()
	r.cache[card.ID] = found
	r.mu.Unlock()
	if found != nil {
		r.logger.Debug("loaded card handlers", zap.String("card_id", card.ID))
	}
	return found, nil
}
