package mana

// MaxCrystals is the cap on a player's mana crystals.
const MaxCrystals = 10

// Pool holds a player's mana crystals for the turn.
//
// Temporary mana (The Coin, Innervate) lives apart from crystal mana and is
// spent first. Overload accrued this turn is carried in OverloadNext and
// locks crystals at the start of the player's next turn.
type Pool struct {
	Crystals     int `json:"crystals"`
	Available    int `json:"available"`
	Temp         int `json:"temp"`
	Overload     int `json:"overload"`
	OverloadNext int `json:"overload_next"`
}

// Total returns the mana that can be spent right now.
func (p Pool) Total() int {
	return p.Available + p.Temp
}

// CanAfford reports whether cost can be paid.
func (p Pool) CanAfford(cost int) bool {
	if cost <= 0 {
		return true
	}
	return p.Total() >= cost
}

// Spend pays cost, drawing on temporary mana first.
// It returns false and leaves the pool untouched when cost cannot be paid.
func (p *Pool) Spend(cost int) bool {
	if cost <= 0 {
		return true
	}
	if !p.CanAfford(cost) {
		return false
	}
	fromTemp := min(cost, p.Temp)
	p.Temp -= fromTemp
	p.Available -= cost - fromTemp
	return true
}

// AddTemp adds mana usable only this turn.
func (p *Pool) AddTemp(n int) {
	if n > 0 {
		p.Temp += n
	}
}

// AddOverload locks n crystals at the start of the next turn.
func (p *Pool) AddOverload(n int) {
	if n > 0 {
		p.OverloadNext += n
	}
}

// GainCrystals adds up to n crystals, filled or empty, and returns how many
// were added before hitting the cap.
func (p *Pool) GainCrystals(n int, filled bool) int {
	if n <= 0 {
		return 0
	}
	added := min(n, MaxCrystals-p.Crystals)
	if added <= 0 {
		return 0
	}
	p.Crystals += added
	if filled {
		p.Available += added
	}
	return added
}

// DestroyCrystals removes up to n crystals, full ones last.
func (p *Pool) DestroyCrystals(n int) {
	if n <= 0 {
		return
	}
	p.Crystals = max(0, p.Crystals-n)
	p.Available = min(p.Available, p.Crystals)
}

// Refresh restores n spent crystals.
func (p *Pool) Refresh(n int) {
	if n > 0 {
		p.Available = min(p.Crystals, p.Available+n)
	}
}

// StartTurn grows the pool by one crystal, refills it and applies overload
// accrued during the previous turn.
func (p *Pool) StartTurn() {
	if p.Crystals < MaxCrystals {
		p.Crystals++
	}
	p.Overload = p.OverloadNext
	p.OverloadNext = 0
	p.Available = max(0, p.Crystals-p.Overload)
	p.Temp = 0
}

// EndTurn discards unspent temporary mana.
func (p *Pool) EndTurn() {
	p.Temp = 0
}
