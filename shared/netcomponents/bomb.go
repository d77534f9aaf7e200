package netcomponents

import (
	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// NetBombData is the authoritative state of a bomb as replicated to clients.
// While Held, position follows the holder server-side; clients only read the
// carry fields (Held, HolderNetworkID, OnRightSide) plus the two throw
// profiles when predicting an arc. The profiles ride on the bomb rather than
// client config so the authority can tune them without a client update.
type NetBombData struct {
	X, Y, Z          float64
	VelX, VelY, VelZ float64 // Client extrapolation between snapshots
	Held             bool
	HolderNetworkID  uint // NetworkId of carrying player (meaningless unless Held)
	OnRightSide      bool // Which hand carries it; selects the throw profile
	State            int  // netconfig.BombCarried / BombInFlight / BombExploded
	FuseLeft         float64

	// Throw profiles, selected by OnRightSide.
	RightSpeed      float64
	RightUpwardBias float64
	LeftSpeed       float64
	LeftUpwardBias  float64
}

var NetBomb = donburi.NewComponentType[NetBombData]()

// Profile returns the throw profile for the carrying hand. Recomputed on
// every call; the carrying hand can flip between any two reads.
func (b *NetBombData) Profile() gamemath.ThrowProfile {
	if b.OnRightSide {
		return gamemath.ThrowProfile{Speed: b.RightSpeed, UpwardBias: b.RightUpwardBias}
	}
	return gamemath.ThrowProfile{Speed: b.LeftSpeed, UpwardBias: b.LeftUpwardBias}
}

// LerpNetBomb interpolates between two bomb states
func LerpNetBomb(from, to NetBombData, t float64) *NetBombData {
	out := to
	if !to.Held {
		// Only smooth free flight; a carried bomb snaps to its holder.
		out.X = from.X + (to.X-from.X)*t
		out.Y = from.Y + (to.Y-from.Y)*t
		out.Z = from.Z + (to.Z-from.Z)*t
	}
	return &out
}
