package systems

import (
	"github.com/automoto/kaboomer-mp/components"
	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/shared/netconfig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const (
	handSwingDuration = 0.18 // seconds
	throwFlashFrames  = 12
)

// startHandSwing begins an eased slide of the carry offset toward the side
// given by the new hand state. Called from the aim controller's hand sink
// whenever the derived hand state changes.
func startHandSwing(pose *components.HandPoseData, hand netconfig.HandState) {
	pose.State = hand

	target := float32(0)
	switch hand {
	case netconfig.HandRight:
		target = float32(cfg.Bomb.CarryOffsetX)
	case netconfig.HandLeft:
		target = float32(-cfg.Bomb.CarryOffsetX)
	}

	pose.Swing = gween.New(float32(pose.Offset), target, handSwingDuration, ease.OutQuad)
}

// UpdateHandPose advances the carry swing tween and the throw flash timer.
func UpdateHandPose(e *ecs.ECS) {
	entry, ok := components.HandPose.First(e.World)
	if !ok {
		return
	}
	pose := components.HandPose.Get(entry)

	if pose.Swing != nil {
		value, done := pose.Swing.Update(1.0 / 60.0)
		pose.Offset = float64(value)
		if done {
			pose.Swing = nil
		}
	}

	if pose.ThrowFlash > 0 {
		pose.ThrowFlash--
	}
}
