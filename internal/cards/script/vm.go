package script

import (
	"fmt"

	"github.com/Shopify/go-lua"
	"github.com/thraizz/hearthsim/internal/game"
)

// modulesKey is the global table holding the card modules a state has run.
const modulesKey = "__cards"

// sandboxed globals are removed from every state.
var sandboxed = []string{"io", "os", "dofile", "loadfile", "require", "package"}

// vm is one pooled Lua state. g is set only while a hook runs.
type vm struct {
	loader *Loader
	state  *lua.State
	g      *game.Game
	// self is the entity whose hook runs. It may not be in any zone yet.
	self *game.Entity
	// err carries a game error out of an hs call through the Lua unwind.
	err error
}

func newVM(l *Loader) *vm {
	v := &vm{loader: l, state: lua.NewState()}
	state := v.state
	lua.OpenLibraries(state)
	for _, name := range sandboxed {
		state.PushNil()
		state.SetGlobal(name)
	}

	state.NewTable()
	state.SetGlobal(modulesKey)

	state.NewTable()
	lua.SetFunctions(state, v.api(), 0)
	state.SetGlobal("hs")

	// Scripts share the game's generator so replays stay deterministic.
	state.Global("math")
	state.PushGoFunction(v.random)
	state.SetField(-2, "random")
	state.Pop(1)
	return v
}

// module pushes the module table for cardID, running the script the first
// time this state sees it.
func (v *vm) module(cardID string) error {
	state := v.state
	state.Global(modulesKey)
	state.Field(-1, cardID)
	if state.IsTable(-1) {
		state.Remove(-2)
		return nil
	}
	state.Pop(2)

	src, ok := v.loader.script(cardID)
	if !ok {
		return fmt.Errorf("%s: no script loaded", cardID)
	}
	if err := lua.LoadBuffer(state, src, "@"+cardID, ""); err != nil {
		return fmt.Errorf("load %s: %w", cardID, err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return fmt.Errorf("run %s: %w", cardID, err)
	}
	if !state.IsTable(-1) {
		state.Pop(1)
		return fmt.Errorf("%s: script must return a table", cardID)
	}
	state.Global(modulesKey)
	state.PushValue(-2)
	state.SetField(-2, cardID)
	state.Pop(1)
	return nil
}

// inspect reports which hooks the script defines and its named target
// rule, if targets is a string.
func (v *vm) inspect(cardID string) (map[string]bool, string, error) {
	state := v.state
	top := state.Top()
	defer state.SetTop(top)
	if err := v.module(cardID); err != nil {
		return nil, "", err
	}
	hooks := make(map[string]bool)
	var rule string
	for _, name := range []string{HookBattlecry, HookOnPlay, HookDeathrattle, HookSetup, HookTargets} {
		state.Field(-1, name)
		switch {
		case state.IsFunction(-1):
			hooks[name] = true
		case name == HookTargets && state.TypeOf(-1) == lua.TypeString:
			rule, _ = state.ToString(-1)
		case !state.IsNil(-1):
			state.Pop(1)
			return nil, "", fmt.Errorf("%s: %s must be a function", cardID, name)
		}
		state.Pop(1)
	}
	return hooks, rule, nil
}

// call runs module function fn of cardID. Missing functions are skipped.
// push places the arguments and returns their count; read, if set, sees
// the results before the stack is reset.
func (v *vm) call(g *game.Game, self *game.Entity, cardID, fn string, results int, push func(*lua.State) int, read func(*lua.State)) error {
	state := v.state
	top := state.Top()
	defer state.SetTop(top)
	if err := v.module(cardID); err != nil {
		return err
	}
	state.Field(-1, fn)
	if !state.IsFunction(-1) {
		return nil
	}
	n := push(state)

	v.g, v.self, v.err = g, self, nil
	err := state.ProtectedCall(n, results, 0)
	v.g, v.self = nil, nil
	if v.err != nil {
		return v.err
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", cardID, fn, err)
	}
	if read != nil {
		read(state)
	}
	return nil
}

func pushEntity(state *lua.State, e *game.Entity) {
	if e == nil {
		state.PushNil()
		return
	}
	state.PushInteger(e.ID)
}

func pushEntities(state *lua.State, list []*game.Entity) {
	state.CreateTable(len(list), 0)
	for i, e := range list {
		state.PushInteger(e.ID)
		state.RawSetInt(-2, i+1)
	}
}

func pushEvent(state *lua.State, ev *game.Event) {
	state.NewTable()
	state.PushString(string(ev.Type))
	state.SetField(-2, "type")
	if ev.Player != nil {
		state.PushInteger(ev.Player.Index)
		state.SetField(-2, "player")
	}
	for name, e := range map[string]*game.Entity{"entity": ev.Entity, "target": ev.Target, "source": ev.Source} {
		if e != nil {
			state.PushInteger(e.ID)
			state.SetField(-2, name)
		}
	}
	state.PushInteger(ev.Amount)
	state.SetField(-2, "amount")
}

// toIDs reads an array of entity ids at index.
func toIDs(state *lua.State, index int) []int {
	if !state.IsTable(index) {
		return nil
	}
	index = state.AbsIndex(index)
	var ids []int
	for i := 1; ; i++ {
		state.RawGetInt(index, i)
		id, ok := state.ToInteger(-1)
		state.Pop(1)
		if !ok {
			return ids
		}
		ids = append(ids, id)
	}
}
