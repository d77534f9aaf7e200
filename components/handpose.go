package components

import (
	"github.com/automoto/kaboomer-mp/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// HandPoseData drives the local hand/carry presentation. State is always
// set from the aim controller's derived hand state; Swing runs the eased
// sideways slide of the carried bomb sprite when the hand changes, and
// ThrowFlash counts down the optimistic throw animation started on release.
type HandPoseData struct {
	State netconfig.HandState

	// Swing eases the carry offset from the previous side to the new one.
	// Nil when the pose is at rest.
	Swing *gween.Tween

	// Current sideways offset of the carried bomb sprite, in world units.
	// Positive = right hand.
	Offset float64

	// ThrowFlash frames remaining for the optimistic throw feedback.
	ThrowFlash int
}

var HandPose = donburi.NewComponentType[HandPoseData]()
