// Package script loads card effects written in Lua. A card's script lives at
// <dir>/<set>/<id>.lua and returns a table of hooks:
//
//	return {
//	  targets = "any_character",
//	  on_play = function(self, target) hs.damage(target, 6) end,
//	}
//
// Hooks receive entity ids; the hs table exposes the game to the script.
package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Shopify/go-lua"
	"github.com/thraizz/hearthsim/internal/cards"
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game"
	"go.uber.org/zap"
)

// Hook names a script may define.
const (
	HookBattlecry   = "battlecry"
	HookOnPlay      = "on_play"
	HookDeathrattle = "deathrattle"
	HookSetup       = "setup"
	HookTargets     = "targets"
)

// Loader is a game.Source backed by Lua scripts. Lua states are pooled and
// each keeps its own copy of the card modules it has run.
type Loader struct {
	dir    string
	logger *zap.Logger

	mu      sync.RWMutex
	scripts map[string]string

	pool sync.Pool
}

// NewLoader creates a loader reading scripts below dir.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{
		dir:     dir,
		logger:  logger,
		scripts: make(map[string]string),
	}
	l.pool.New = func() any { return newVM(l) }
	return l
}

// Path returns where the script for card is expected.
func (l *Loader) Path(card *catalogue.Card) string {
	return filepath.Join(l.dir, card.Set, card.ID+".lua")
}

// Load implements game.Source. Cards without a script yield nil handlers.
func (l *Loader) Load(card *catalogue.Card) (*game.Handlers, error) {
	path := l.Path(card)
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	l.mu.Lock()
	l.scripts[card.ID] = string(src)
	l.mu.Unlock()

	v := l.acquire()
	defer l.release(v)
	hooks, rule, err := v.inspect(card.ID)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loaded card script",
		zap.String("card_id", card.ID),
		zap.String("path", path),
		zap.Strings("hooks", hookNames(hooks)),
	)
	return l.handlers(card.ID, hooks, rule)
}

func (l *Loader) script(cardID string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	src, ok := l.scripts[cardID]
	return src, ok
}

func (l *Loader) acquire() *vm {
	return l.pool.Get().(*vm)
}

func (l *Loader) release(v *vm) {
	v.g, v.self, v.err = nil, nil, nil
	l.pool.Put(v)
}

func hookNames(hooks map[string]bool) []string {
	var out []string
	for _, name := range []string{HookBattlecry, HookOnPlay, HookDeathrattle, HookSetup, HookTargets} {
		if hooks[name] {
			out = append(out, name)
		}
	}
	return out
}

// handlers binds the hooks a script defines. Closures capture only the
// card id; entities always come from the arguments.
func (l *Loader) handlers(cardID string, hooks map[string]bool, rule string) (*game.Handlers, error) {
	h := &game.Handlers{}
	if hooks[HookBattlecry] {
		h.Battlecry = func(g *game.Game, source, target *game.Entity) error {
			return l.run(g, cardID, HookBattlecry, source, target)
		}
	}
	if hooks[HookOnPlay] {
		h.OnPlay = func(g *game.Game, source, target *game.Entity) error {
			return l.run(g, cardID, HookOnPlay, source, target)
		}
	}
	if hooks[HookDeathrattle] {
		h.Deathrattle = func(g *game.Game, source *game.Entity) error {
			return l.run(g, cardID, HookDeathrattle, source, nil)
		}
	}
	if hooks[HookSetup] {
		h.Setup = func(g *game.Game, source *game.Entity) error {
			return l.run(g, cardID, HookSetup, source, nil)
		}
	}
	switch {
	case rule != "":
		fn, ok := cards.TargetRule(rule)
		if !ok {
			return nil, fmt.Errorf("%s: unknown target rule %q", cardID, rule)
		}
		h.ValidTargets = fn
	case hooks[HookTargets]:
		h.ValidTargets = func(g *game.Game, source *game.Entity) []*game.Entity {
			targets, err := l.targets(g, cardID, source)
			if err != nil {
				l.logger.Warn("script targets failed", zap.String("card_id", cardID), zap.Error(err))
			}
			return targets
		}
	}
	return h, nil
}

func (l *Loader) run(g *game.Game, cardID, hook string, source, target *game.Entity) error {
	v := l.acquire()
	defer l.release(v)
	return v.call(g, source, cardID, hook, 0, func(state *lua.State) int {
		pushEntity(state, source)
		if hook == HookBattlecry || hook == HookOnPlay {
			pushEntity(state, target)
			return 2
		}
		return 1
	}, nil)
}

func (l *Loader) targets(g *game.Game, cardID string, source *game.Entity) ([]*game.Entity, error) {
	v := l.acquire()
	defer l.release(v)
	var out []*game.Entity
	err := v.call(g, source, cardID, HookTargets, 1, func(state *lua.State) int {
		pushEntity(state, source)
		return 1
	}, func(state *lua.State) {
		for _, id := range toIDs(state, -1) {
			if e := g.Entity(id); e != nil {
				out = append(out, e)
			}
		}
	})
	return out, err
}

func (l *Loader) trigger(g *game.Game, source *game.Entity, handler string, ev *game.Event) error {
	if source == nil {
		return nil
	}
	v := l.acquire()
	defer l.release(v)
	return v.call(g, source, source.CardID, handler, 0, func(state *lua.State) int {
		pushEntity(state, source)
		pushEvent(state, ev)
		return 2
	}, nil)
}
