package game

import (
	"github.com/thraizz/hearthsim/internal/catalogue"
	"github.com/thraizz/hearthsim/internal/game/rules"
	"github.com/thraizz/hearthsim/internal/game/tags"
)

// summon puts e onto p's board at pos (-1 for the right end) and fires
// on_minion_summon. It reports false when the board is full.
func (g *Game) summon(e *Entity, p *Player, pos int) (bool, error) {
	if p == nil || p.BoardFull() {
		return false, nil
	}
	if !g.move(e, p, ZonePlay, pos) {
		return false, nil
	}
	e.Exhausted = !e.Has(KeywordCharge)
	e.AttacksThisTurn = 0
	if e.Type != catalogue.TypeMinion {
		return true, nil
	}
	return true, g.FireEvent(Event{Type: rules.EventMinionSummon, Player: p, Entity: e})
}

// SummonToken creates cardID and summons it for p at pos. It returns nil
// without error when the board is full.
func (g *Game) SummonToken(p *Player, cardID string, pos int) (*Entity, error) {
	if p == nil || p.BoardFull() {
		return nil, nil
	}
	e, err := g.CreateCard(cardID)
	if err != nil {
		return nil, err
	}
	e.Tags.Set(tags.Generated, 1)
	ok, err := g.summon(e, p, pos)
	if !ok {
		return nil, err
	}
	return e, err
}

// GiveCard creates cardID and adds it to p's hand. The card is burned when
// the hand is full.
func (g *Game) GiveCard(p *Player, cardID string) (*Entity, error) {
	e, err := g.CreateCard(cardID)
	if err != nil {
		return nil, err
	}
	e.Owner = p
	e.Tags.Set(tags.Generated, 1)
	p.AddToHand(e)
	return e, nil
}

// ForceAttack makes attacker attack defender without legality checks.
func (g *Game) ForceAttack(attacker, defender *Entity) error {
	if attacker == nil || defender == nil || !attacker.Alive() || !defender.Alive() {
		return nil
	}
	return g.resolveAttack(attacker, defender)
}

// EquipWeapon equips w for p. A weapon already equipped is destroyed.
func (g *Game) EquipWeapon(p *Player, w *Entity) error {
	if p == nil || p.Hero == nil || w == nil {
		return nil
	}
	hero := p.Hero
	if old := hero.Weapon; old != nil && old != w {
		hero.Weapon = nil
		old.pendingDeath = false
		if err := g.resolveDeath(old); err != nil {
			return err
		}
	}
	g.move(w, p, ZonePlay, -1)
	hero.Weapon = w
	return nil
}

// DestroyWeapon queues p's weapon for destruction.
func (g *Game) DestroyWeapon(p *Player) {
	if p != nil {
		g.Destroy(p.Weapon())
	}
}

// Transform replaces e in place with a new entity for cardID. The old
// entity is removed from the game along with its triggers.
func (g *Game) Transform(e *Entity, cardID string) (*Entity, error) {
	if e == nil {
		return nil, nil
	}
	ne, err := g.CreateCard(cardID)
	if err != nil {
		return nil, err
	}
	ne.Owner = e.Owner
	ne.Zone = e.Zone
	ne.Position = e.Position
	ne.Exhausted = e.Exhausted
	if list := g.zoneList(e.Owner, e.Zone, e); list != nil {
		if i := indexOf(*list, e); i >= 0 {
			(*list)[i] = ne
		}
	}
	g.UnregisterTriggers(e)
	e.Zone = ZoneRemoved
	e.pendingDeath = false
	return ne, nil
}

// Silence strips e's keywords, buffs and triggers and restores its printed
// stats. Damage taken is kept but health never rises above the printed value.
func (g *Game) Silence(e *Entity) {
	if e == nil {
		return
	}
	if e.Def != nil {
		e.Attack = e.Def.Attack
		if e.Type == catalogue.TypeMinion {
			cur := min(e.Health(), e.Def.Health)
			e.MaxHealth = e.Def.Health
			e.Damage = e.MaxHealth - cur
		}
	}
	e.TempAttack = 0
	e.Silenced = true
	e.Frozen = false
	e.CantAttack = false
	e.CantBeTargeted = false
	g.UnregisterTriggers(e)
}

// Freeze freezes e; it cannot attack until it thaws.
func (g *Game) Freeze(e *Entity) {
	if e != nil {
		e.Frozen = true
	}
}

// Buff adds attack and max health to e.
func (g *Game) Buff(e *Entity, attack, health int) {
	if e == nil {
		return
	}
	e.Attack += attack
	e.MaxHealth += health
}

// GainArmor adds armor to a hero.
func (g *Game) GainArmor(hero *Entity, n int) {
	if hero != nil && n > 0 {
		hero.Armor += n
	}
}

// RandomInt returns a value in [0, n) from the game's generator.
func (g *Game) RandomInt(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.Intn(n)
}

// RandomChoice picks one entity uniformly, or nil from an empty list.
func (g *Game) RandomChoice(list []*Entity) *Entity {
	if len(list) == 0 {
		return nil
	}
	return list[g.rng.Intn(len(list))]
}

// Shuffle permutes list in place with the game's generator.
func (g *Game) Shuffle(list []*Entity) {
	g.rng.Shuffle(len(list), func(i, j int) {
		list[i], list[j] = list[j], list[i]
	})
}

// DiscoverOptions picks up to n distinct collectible card ids matching pred.
func (g *Game) DiscoverOptions(n int, pred func(*catalogue.Card) bool) []string {
	pool := g.catalogue.Filter(pred)
	g.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > n {
		pool = pool[:n]
	}
	out := make([]string, len(pool))
	for i, c := range pool {
		out[i] = c.ID
	}
	return out
}

// Entity finds a live entity by id, or returns nil.
func (g *Game) Entity(id int) *Entity {
	var found *Entity
	g.eachEntity(func(e *Entity) bool {
		if e.ID == id {
			found = e
			return false
		}
		return true
	})
	return found
}

// eachEntity visits every entity reachable from the players until fn
// returns false.
func (g *Game) eachEntity(fn func(*Entity) bool) {
	for _, p := range g.players {
		if p == nil {
			continue
		}
		if h := p.Hero; h != nil {
			if !fn(h) {
				return
			}
			if h.Weapon != nil && !fn(h.Weapon) {
				return
			}
			if h.HeroPower != nil && !fn(h.HeroPower) {
				return
			}
		}
		for _, list := range [][]*Entity{p.Board, p.Hand, p.Deck, p.Graveyard, p.Secrets, p.SetAside} {
			for _, e := range list {
				if !fn(e) {
					return
				}
			}
		}
	}
}
