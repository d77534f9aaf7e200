// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on ebiten or any
// graphics library so the dedicated server binary stays headless.
package netconfig

// HandState reports which hand carries the bomb, for animation sync. It is
// always derived from the replicated bomb state, never toggled in place, so
// it self-corrects after any authority-driven side change.
type HandState int

const (
	HandNone HandState = iota
	HandLeft
	HandRight
)

func (h HandState) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	default:
		return "none"
	}
}

// Bomb lifecycle states as replicated to clients.
const (
	BombCarried  = 0
	BombInFlight = 1
	BombExploded = 2
)

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionAim
	ActionSwapHands
	ActionPause
	ActionMenuUp
	ActionMenuDown
	ActionMenuSelect
	ActionMenuBack
	ActionCount // Must be last - used for array sizing
)
