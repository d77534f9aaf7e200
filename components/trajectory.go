package components

import (
	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// TrajectoryData is the predicted arc as published by the aim controller,
// consumed by the render system. Fully replaced every prediction tick —
// never patched in place — so it is always consistent with the origin,
// profile, and gravity of the tick that produced it.
type TrajectoryData struct {
	Points    []gamemath.Vec3
	RightHand bool // Selects the arc color
	Width     float64
	Visible   bool
}

var Trajectory = donburi.NewComponentType[TrajectoryData]()
