package game

import "github.com/thraizz/hearthsim/internal/catalogue"

func (g *Game) zoneList(p *Player, z Zone, e *Entity) *[]*Entity {
	if p == nil {
		return nil
	}
	switch z {
	case ZoneDeck:
		return &p.Deck
	case ZoneHand:
		return &p.Hand
	case ZonePlay:
		if e.Type == catalogue.TypeMinion || e.Type == catalogue.TypeLocation {
			return &p.Board
		}
	case ZoneGraveyard:
		return &p.Graveyard
	case ZoneSecret:
		return &p.Secrets
	case ZoneSetAside:
		return &p.SetAside
	}
	return nil
}

func zoneCapacity(z Zone) int {
	switch z {
	case ZoneDeck:
		return MaxDeckSize
	case ZoneHand:
		return MaxHandSize
	case ZonePlay:
		return MaxBoardSize
	}
	return 0
}

// move transfers e into zone of player to at pos (-1 appends). The entity is
// removed from whatever list it was in. It returns false, leaving e where it
// was, when the destination list is full.
func (g *Game) move(e *Entity, to *Player, zone Zone, pos int) bool {
	if to == nil {
		to = e.Owner
	}
	src := g.zoneList(e.Owner, e.Zone, e)
	dst := g.zoneList(to, zone, e)
	if dst != nil && dst != src {
		if limit := zoneCapacity(zone); limit > 0 && len(*dst) >= limit {
			return false
		}
	}
	if src != nil {
		*src = removeEntity(*src, e)
		if e.Zone == ZonePlay {
			renumber(*src)
		}
	}
	e.Owner = to
	e.Zone = zone
	if dst != nil {
		*dst = insertEntity(*dst, e, pos)
		if zone == ZonePlay {
			renumber(*dst)
		}
	}
	return true
}

func removeEntity(list []*Entity, e *Entity) []*Entity {
	for i, x := range list {
		if x == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

func insertEntity(list []*Entity, e *Entity, pos int) []*Entity {
	if pos < 0 || pos >= len(list) {
		return append(list, e)
	}
	list = append(list, nil)
	copy(list[pos+1:], list[pos:])
	list[pos] = e
	return list
}

func renumber(board []*Entity) {
	for i, e := range board {
		e.Position = i
	}
}

func indexOf(list []*Entity, e *Entity) int {
	for i, x := range list {
		if x == e {
			return i
		}
	}
	return -1
}
