package game

// HistoryEntry records one resolved player action.
type HistoryEntry struct {
	Turn     int    `json:"turn"`
	Player   int    `json:"player"`
	Action   string `json:"action"`
	CardID   string `json:"card_id,omitempty"`
	EntityID int    `json:"entity_id,omitempty"`
	TargetID int    `json:"target_id,omitempty"`
	Amount   int    `json:"amount,omitempty"`
}

func (g *Game) record(e HistoryEntry) {
	e.Turn = g.turns.Turn()
	g.history = append(g.history, e)
}

// History returns a copy of the action log, oldest first.
func (g *Game) History() []HistoryEntry {
	return append([]HistoryEntry(nil), g.history...)
}

func entityID(e *Entity) int {
	if e == nil {
		return 0
	}
	return e.ID
}
