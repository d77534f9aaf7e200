package leveldata

import (
	"github.com/automoto/kaboomer-mp/shared/collide"
	"github.com/automoto/kaboomer-mp/shared/gamemath"
)

// Tags used for obstruction boxes built from arena data.
const (
	TagSolid = "solid"
	TagFloor = "floor"
)

const floorThickness = 1.0

// BuildSpace extrudes the arena's wall footprints into 3D boxes and adds a
// floor slab, returning the obstruction space used for arc prediction on the
// client and bomb flight on the server.
func BuildSpace(arena *ArenaData) *collide.Space {
	space := collide.NewSpace()

	space.Add(collide.NewBox(
		gamemath.Vec3{X: 0, Y: -floorThickness, Z: 0},
		gamemath.Vec3{X: arena.Width, Y: 0, Z: arena.Depth},
		TagFloor, TagSolid,
	))

	for _, w := range arena.Walls {
		space.Add(collide.NewBox(
			gamemath.Vec3{X: w.X, Y: 0, Z: w.Z},
			gamemath.Vec3{X: w.X + w.W, Y: arena.WallHeight, Z: w.Z + w.D},
			TagSolid,
		))
	}

	return space
}
