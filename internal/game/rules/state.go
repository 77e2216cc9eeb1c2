package rules

import "fmt"

// PlayState is a player's standing in the game.
type PlayState int

const (
	PlayStatePlaying PlayState = iota
	PlayStateWon
	PlayStateLost
	PlayStateTied
)

var playStateNames = map[PlayState]string{
	PlayStatePlaying: "PLAYING",
	PlayStateWon:     "WON",
	PlayStateLost:    "LOST",
	PlayStateTied:    "TIED",
}

func (s PlayState) String() string {
	if name, ok := playStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PLAYSTATE_%d", int(s))
}

// Final reports whether the game is over for the player.
func (s PlayState) Final() bool {
	return s != PlayStatePlaying
}

// MulliganState tracks a player's progress through the opening mulligan.
type MulliganState int

const (
	MulliganInactive MulliganState = iota
	MulliganInput
	MulliganDone
)

var mulliganNames = map[MulliganState]string{
	MulliganInactive: "INACTIVE",
	MulliganInput:    "INPUT",
	MulliganDone:     "DONE",
}

func (s MulliganState) String() string {
	if name, ok := mulliganNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MULLIGAN_%d", int(s))
}
