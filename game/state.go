// Package game runs one hot-seat match: the turn and stage state machine,
// card effects and the prompts they raise.
package game

import "errors"

// State is where the turn flow currently stands.
type State int

const (
	StateIdle State = iota
	StateCardShown
	// StateOverlayPending is reserved for a client-side overlay step and is
	// never entered by the engine.
	StateOverlayPending
	StateAnimating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCardShown:
		return "CARD_SHOWN"
	case StateOverlayPending:
		return "OVERLAY_PENDING"
	case StateAnimating:
		return "ANIMATING"
	default:
		return "UNKNOWN"
	}
}

// Command rejections. Game flow itself never fails; these only tell an API
// caller why nothing happened.
var (
	ErrNotIdle      = errors.New("game is busy")
	ErrNoCard       = errors.New("no card is shown")
	ErrMandatory    = errors.New("card is mandatory")
	ErrNoPrompt     = errors.New("no matching prompt is open")
	ErrGameOver     = errors.New("game is over")
	ErrUnknownOrder = errors.New("order is not on offer")
)
