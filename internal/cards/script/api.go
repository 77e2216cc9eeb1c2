package script

import (
	"github.com/Shopify/go-lua"
	"github.com/thraizz/hearthsim/internal/game"
	"github.com/thraizz/hearthsim/internal/game/rules"
)

// api returns the functions of the hs table. Players are passed as seat
// indexes (0 or 1) and entities as ids.
func (v *vm) api() []lua.RegistryFunction {
	return []lua.RegistryFunction{
		{Name: "damage", Function: v.damage},
		{Name: "heal", Function: v.heal},
		{Name: "destroy", Function: v.destroy},
		{Name: "freeze", Function: v.freeze},
		{Name: "silence", Function: v.silence},
		{Name: "buff", Function: v.buff},
		{Name: "transform", Function: v.transform},
		{Name: "summon", Function: v.summon},
		{Name: "give", Function: v.give},
		{Name: "draw", Function: v.draw},
		{Name: "armor", Function: v.armor},
		{Name: "temp_mana", Function: v.tempMana},
		{Name: "random", Function: v.random},
		{Name: "register_trigger", Function: v.registerTrigger},
		{Name: "owner", Function: v.owner},
		{Name: "opponent", Function: v.opponent},
		{Name: "current_player", Function: v.currentPlayer},
		{Name: "hero", Function: v.hero},
		{Name: "minions", Function: v.minions},
		{Name: "characters", Function: v.characters},
		{Name: "attack", Function: v.attack},
		{Name: "health", Function: v.health},
		{Name: "card_id", Function: v.cardID},
		{Name: "in_play", Function: v.inPlay},
	}
}

func (v *vm) game(state *lua.State) *game.Game {
	if v.g == nil {
		lua.Errorf(state, "hs called outside a card hook")
	}
	return v.g
}

// fail stores err and raises it as a Lua error.
func (v *vm) fail(state *lua.State, err error) int {
	v.err = err
	lua.Errorf(state, "%s", err.Error())
	return 0
}

// entity resolves the entity id at arg. A nil argument yields nil.
func (v *vm) entity(state *lua.State, arg int) *game.Entity {
	g := v.game(state)
	if state.IsNoneOrNil(arg) {
		return nil
	}
	id := lua.CheckInteger(state, arg)
	if v.self != nil && v.self.ID == id {
		return v.self
	}
	e := g.Entity(id)
	if e == nil {
		lua.ArgumentError(state, arg, "unknown entity")
	}
	return e
}

func (v *vm) player(state *lua.State, arg int) *game.Player {
	g := v.game(state)
	i := lua.CheckInteger(state, arg)
	if i < 0 || i > 1 || g.Players()[i] == nil {
		lua.ArgumentError(state, arg, "player must be 0 or 1")
	}
	return g.Players()[i]
}

func (v *vm) damage(state *lua.State) int {
	target := v.entity(state, 1)
	n := lua.CheckInteger(state, 2)
	source := v.entity(state, 3)
	dealt, err := v.g.DealDamage(target, n, source)
	if err != nil {
		return v.fail(state, err)
	}
	state.PushInteger(dealt)
	return 1
}

func (v *vm) heal(state *lua.State) int {
	target := v.entity(state, 1)
	n := lua.CheckInteger(state, 2)
	source := v.entity(state, 3)
	healed, err := v.g.Heal(target, n, source)
	if err != nil {
		return v.fail(state, err)
	}
	state.PushInteger(healed)
	return 1
}

func (v *vm) destroy(state *lua.State) int {
	v.g.Destroy(v.entity(state, 1))
	return 0
}

func (v *vm) freeze(state *lua.State) int {
	v.g.Freeze(v.entity(state, 1))
	return 0
}

func (v *vm) silence(state *lua.State) int {
	v.g.Silence(v.entity(state, 1))
	return 0
}

func (v *vm) buff(state *lua.State) int {
	e := v.entity(state, 1)
	v.g.Buff(e, lua.CheckInteger(state, 2), lua.OptInteger(state, 3, 0))
	return 0
}

func (v *vm) transform(state *lua.State) int {
	e := v.entity(state, 1)
	cardID := lua.CheckString(state, 2)
	ne, err := v.g.Transform(e, cardID)
	if err != nil {
		return v.fail(state, err)
	}
	pushEntity(state, ne)
	return 1
}

func (v *vm) summon(state *lua.State) int {
	p := v.player(state, 1)
	cardID := lua.CheckString(state, 2)
	pos := lua.OptInteger(state, 3, -1)
	e, err := v.g.SummonToken(p, cardID, pos)
	if err != nil {
		return v.fail(state, err)
	}
	pushEntity(state, e)
	return 1
}

func (v *vm) give(state *lua.State) int {
	p := v.player(state, 1)
	e, err := v.g.GiveCard(p, lua.CheckString(state, 2))
	if err != nil {
		return v.fail(state, err)
	}
	pushEntity(state, e)
	return 1
}

func (v *vm) draw(state *lua.State) int {
	p := v.player(state, 1)
	drawn, err := p.Draw(lua.OptInteger(state, 2, 1))
	if err != nil {
		return v.fail(state, err)
	}
	pushEntities(state, drawn)
	return 1
}

func (v *vm) armor(state *lua.State) int {
	p := v.player(state, 1)
	v.g.GainArmor(p.Hero, lua.CheckInteger(state, 2))
	return 0
}

func (v *vm) tempMana(state *lua.State) int {
	p := v.player(state, 1)
	p.Mana.AddTemp(lua.CheckInteger(state, 2))
	return 0
}

// random returns an integer in [1, n].
func (v *vm) random(state *lua.State) int {
	g := v.game(state)
	n := lua.OptInteger(state, 1, 0)
	if n <= 0 {
		lua.ArgumentError(state, 1, "interval is empty")
	}
	state.PushInteger(g.RandomInt(n) + 1)
	return 1
}

// registerTrigger subscribes the module function named by the third
// argument to an event on behalf of the entity given first.
func (v *vm) registerTrigger(state *lua.State) int {
	g := v.game(state)
	source := v.entity(state, 1)
	event, err := rules.ParseEventType(lua.CheckString(state, 2))
	if err != nil {
		lua.ArgumentError(state, 2, err.Error())
	}
	handler := lua.CheckString(state, 3)
	loader := v.loader
	handle := g.RegisterTrigger(event, source, func(g *game.Game, source *game.Entity, ev *game.Event) error {
		return loader.trigger(g, source, handler, ev)
	})
	state.PushInteger(handle)
	return 1
}

func (v *vm) owner(state *lua.State) int {
	e := v.entity(state, 1)
	if e == nil || e.Owner == nil {
		state.PushNil()
		return 1
	}
	state.PushInteger(e.Owner.Index)
	return 1
}

func (v *vm) opponent(state *lua.State) int {
	p := v.player(state, 1)
	state.PushInteger(p.Opponent().Index)
	return 1
}

func (v *vm) currentPlayer(state *lua.State) int {
	state.PushInteger(v.game(state).CurrentPlayer().Index)
	return 1
}

func (v *vm) hero(state *lua.State) int {
	pushEntity(state, v.player(state, 1).Hero)
	return 1
}

func (v *vm) minions(state *lua.State) int {
	pushEntities(state, v.player(state, 1).Minions())
	return 1
}

func (v *vm) characters(state *lua.State) int {
	pushEntities(state, v.player(state, 1).Characters())
	return 1
}

func (v *vm) attack(state *lua.State) int {
	e := v.entity(state, 1)
	if e == nil {
		state.PushInteger(0)
		return 1
	}
	state.PushInteger(e.AttackValue())
	return 1
}

func (v *vm) health(state *lua.State) int {
	e := v.entity(state, 1)
	if e == nil {
		state.PushInteger(0)
		return 1
	}
	state.PushInteger(e.Health())
	return 1
}

func (v *vm) cardID(state *lua.State) int {
	e := v.entity(state, 1)
	if e == nil {
		state.PushNil()
		return 1
	}
	state.PushString(e.CardID)
	return 1
}

func (v *vm) inPlay(state *lua.State) int {
	e := v.entity(state, 1)
	state.PushBoolean(e != nil && e.Zone == game.ZonePlay)
	return 1
}
