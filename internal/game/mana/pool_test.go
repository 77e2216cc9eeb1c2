package mana

import "testing"

func TestPool_StartTurnGrowsAndCaps(t *testing.T) {
	var p Pool
	for i := 1; i <= 12; i++ {
		p.StartTurn()
		want := i
		if want > MaxCrystals {
			want = MaxCrystals
		}
		if p.Crystals != want || p.Available != want {
			t.Fatalf("turn %d: expected %d/%d, got %d/%d", i, want, want, p.Available, p.Crystals)
		}
	}
}

func TestPool_SpendUsesTempFirst(t *testing.T) {
	p := Pool{Crystals: 2, Available: 2}
	p.AddTemp(1)

	if !p.CanAfford(3) {
		t.Fatalf("expected to afford 3 with temp mana")
	}
	if !p.Spend(2) {
		t.Fatalf("expected spend to succeed")
	}
	if p.Temp != 0 {
		t.Errorf("expected temp mana spent first, have %d", p.Temp)
	}
	if p.Available != 1 {
		t.Errorf("expected 1 mana left, got %d", p.Available)
	}

	if p.Spend(2) {
		t.Fatalf("expected overspend to fail")
	}
	if p.Available != 1 {
		t.Errorf("failed spend must not change pool, got %d", p.Available)
	}
}

func TestPool_Overload(t *testing.T) {
	p := Pool{Crystals: 3, Available: 3}
	p.AddOverload(2)
	if p.Available != 3 {
		t.Fatalf("overload must not lock crystals this turn")
	}

	p.StartTurn()
	if p.Overload != 2 || p.OverloadNext != 0 {
		t.Fatalf("expected overload to slide, got overload=%d next=%d", p.Overload, p.OverloadNext)
	}
	if p.Available != 2 {
		t.Errorf("expected 4 crystals minus 2 overload, got %d", p.Available)
	}

	p.StartTurn()
	if p.Overload != 0 || p.Available != 5 {
		t.Errorf("expected overload cleared, got overload=%d available=%d", p.Overload, p.Available)
	}
}

func TestPool_GainAndDestroyCrystals(t *testing.T) {
	p := Pool{Crystals: 9, Available: 4}
	if added := p.GainCrystals(3, false); added != 1 {
		t.Fatalf("expected 1 crystal added at cap, got %d", added)
	}
	if p.Crystals != 10 || p.Available != 4 {
		t.Errorf("expected empty crystal, got %d/%d", p.Available, p.Crystals)
	}

	p.DestroyCrystals(8)
	if p.Crystals != 2 || p.Available != 2 {
		t.Errorf("expected 2/2 after destroy, got %d/%d", p.Available, p.Crystals)
	}

	p.Refresh(5)
	if p.Available != 2 {
		t.Errorf("refresh must not exceed crystals, got %d", p.Available)
	}
}

func TestPool_EndTurnClearsTemp(t *testing.T) {
	p := Pool{}
	p.AddTemp(2)
	p.EndTurn()
	if p.Temp != 0 {
		t.Errorf("expected temp cleared, got %d", p.Temp)
	}
}
