package rules

import "fmt"

// Phase is the coarse state of a game.
type Phase int

const (
	PhaseDeckBuilding Phase = iota
	PhaseMulligan
	PhaseMainAction
	PhaseMainCombat
	PhaseMainEnd
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseDeckBuilding: "DECK_BUILDING",
	PhaseMulligan:     "MULLIGAN",
	PhaseMainAction:   "MAIN_ACTION",
	PhaseMainCombat:   "MAIN_COMBAT",
	PhaseMainEnd:      "MAIN_END",
	PhaseGameOver:     "GAME_OVER",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// InMain reports whether p is one of the in-turn phases.
func (p Phase) InMain() bool {
	return p == PhaseMainAction || p == PhaseMainCombat || p == PhaseMainEnd
}

// Any phase may move to GAME_OVER; other moves must appear here.
var transitions = map[Phase][]Phase{
	PhaseDeckBuilding: {PhaseMulligan},
	PhaseMulligan:     {PhaseMainAction},
	PhaseMainAction:   {PhaseMainCombat, PhaseMainEnd},
	PhaseMainCombat:   {PhaseMainAction, PhaseMainEnd},
	PhaseMainEnd:      {PhaseMainAction, PhaseMainCombat},
}

// CanTransition reports whether a game may move from one phase to another.
func CanTransition(from, to Phase) bool {
	if from == to && from != PhaseGameOver {
		return true
	}
	if to == PhaseGameOver {
		return from != PhaseGameOver
	}
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// TurnManager tracks the turn number, the player whose turn it is and the
// game phase. It is a plain value so that copying it copies the turn state.
type TurnManager struct {
	turn    int
	current int
	phase   Phase
	actions int
}

// NewTurnManager creates a manager in DECK_BUILDING before turn 1.
func NewTurnManager() TurnManager {
	return TurnManager{phase: PhaseDeckBuilding}
}

// Turn returns the turn number. It is 0 before the game starts.
func (tm *TurnManager) Turn() int {
	return tm.turn
}

// Current returns the index (0 or 1) of the player whose turn it is.
func (tm *TurnManager) Current() int {
	return tm.current
}

// Phase returns the current phase.
func (tm *TurnManager) Phase() Phase {
	return tm.phase
}

// ActionsThisTurn returns how many actions the current player has taken.
func (tm *TurnManager) ActionsThisTurn() int {
	return tm.actions
}

// Transition moves to phase to, rejecting moves not in the phase graph.
func (tm *TurnManager) Transition(to Phase) error {
	if !CanTransition(tm.phase, to) {
		return fmt.Errorf("invalid phase transition %s -> %s", tm.phase, to)
	}
	tm.phase = to
	return nil
}

// Begin starts turn 1 for the player at index first.
func (tm *TurnManager) Begin(first int) error {
	if err := tm.Transition(PhaseMainAction); err != nil {
		return err
	}
	tm.turn = 1
	tm.current = first
	tm.actions = 0
	return nil
}

// Advance hands the turn to the other player and returns the new turn number.
func (tm *TurnManager) Advance() int {
	tm.turn++
	tm.current = 1 - tm.current
	tm.actions = 0
	return tm.turn
}

// RecordAction counts one action for the current turn.
func (tm *TurnManager) RecordAction() {
	tm.actions++
}
