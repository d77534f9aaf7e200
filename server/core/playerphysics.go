package core

import (
	"github.com/automoto/kaboomer-mp/shared/tuning"
	"github.com/automoto/kaboomer-mp/tags"
	"github.com/solarlune/resolv"
)

// PlayerPhysics holds per-player movement state on the server. This is not a
// donburi component; it exists only on the server and is never synced. The
// resolv object's 2D Y axis carries world Z.
type PlayerPhysics struct {
	Object     *resolv.Object
	VelX, VelZ float64

	// Latest input snapshot (written by onPlayerInput, read by physics tick)
	MoveX, MoveZ     float64
	FacingX, FacingZ float64

	// Last processed input sequence (for client-side prediction reconciliation)
	LastInputSeq uint32

	// Respawn countdown in ticks; positive means the player is out of play.
	RespawnTimer int
	SpawnIndex   int
}

func newPlayerPhysics(arena *ServerArena, spawnX, spawnZ float64) *PlayerPhysics {
	size := tuning.Player.Radius * 2
	obj := resolv.NewObject(spawnX-tuning.Player.Radius, spawnZ-tuning.Player.Radius, size, size, tags.ResolvPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	arena.Ground.Add(obj)

	return &PlayerPhysics{
		Object:  obj,
		FacingZ: 1,
	}
}

func removePlayerPhysics(arena *ServerArena, pp *PlayerPhysics) {
	arena.Ground.Remove(pp.Object)
}

// CenterX returns the player center on the X axis.
func (pp *PlayerPhysics) CenterX() float64 {
	return pp.Object.X + pp.Object.W/2
}

// CenterZ returns the player center on the Z axis.
func (pp *PlayerPhysics) CenterZ() float64 {
	return pp.Object.Y + pp.Object.H/2
}
