package components

import "github.com/yohamta/donburi"

// NetInterpData stores interpolation state for smooth rendering of remote
// networked entities between server snapshots.
type NetInterpData struct {
	PrevX, PrevY, PrevZ       float64
	TargetX, TargetY, TargetZ float64
	T                         float64
	Initialized               bool
	VelX, VelY, VelZ          float64 // Velocity at snapshot (for extrapolation)
}

var NetInterp = donburi.NewComponentType[NetInterpData]()
