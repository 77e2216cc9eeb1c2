package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is returned when a player action fails a legality check.
	// The game is left unchanged.
	ErrIllegalAction = errors.New("illegal action")

	// ErrPendingChoice is returned for actions other than ChooseDiscover
	// while a discover choice is open.
	ErrPendingChoice = fmt.Errorf("%w: a discover choice is pending", ErrIllegalAction)

	// ErrGameOver is returned for actions after the game has ended.
	ErrGameOver = fmt.Errorf("%w: game is over", ErrIllegalAction)

	// ErrHandlerFault marks errors raised by card effect code.
	ErrHandlerFault = errors.New("effect handler fault")

	// ErrGameFaulted is returned by every action once a handler fault has
	// escaped an action. The game state is no longer trustworthy.
	ErrGameFaulted = errors.New("game faulted by effect handler")
)

// HandlerError wraps an error returned by a card's effect code.
type HandlerError struct {
	CardID string
	Hook   string
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.CardID, e.Hook, e.Err)
}

// Unwrap exposes both the fault marker and the underlying error.
func (e *HandlerError) Unwrap() []error {
	return []error{ErrHandlerFault, e.Err}
}

func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalAction, fmt.Sprintf(format, args...))
}

// wrapHandler attributes err to source's hook unless it is already attributed.
func wrapHandler(source *Entity, hook string, err error) error {
	if err == nil {
		return nil
	}
	var he *HandlerError
	if errors.As(err, &he) {
		return err
	}
	cardID := ""
	if source != nil {
		cardID = source.CardID
	}
	return &HandlerError{CardID: cardID, Hook: hook, Err: err}
}
