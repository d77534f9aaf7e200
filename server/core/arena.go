package core

import (
	"fmt"
	"log"

	"github.com/automoto/kaboomer-mp/assets"
	"github.com/automoto/kaboomer-mp/shared/collide"
	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/automoto/kaboomer-mp/tags"
	"github.com/solarlune/resolv"
)

// ServerArena holds the server's collision state for one arena. Player
// movement resolves against the 2D ground-plane space; bomb flight casts
// segments through the extruded 3D space.
type ServerArena struct {
	Data   *leveldata.ArenaData
	Ground *resolv.Space  // XZ plane, walls only
	Flight *collide.Space // extruded walls plus floor
}

// NewServerArena builds both collision spaces from parsed arena data.
func NewServerArena(data *leveldata.ArenaData) *ServerArena {
	ground := resolv.NewSpace(int(data.Width)+1, int(data.Depth)+1, 1, 1)
	for _, w := range data.Walls {
		obj := resolv.NewObject(w.X, w.Z, w.W, w.D, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, w.W, w.D))
		ground.Add(obj)
	}

	log.Printf("Loaded arena %q: %d walls, %d player spawns, %.0fx%.0f",
		data.Name, len(data.Walls), len(data.PlayerSpawns), data.Width, data.Depth)

	return &ServerArena{
		Data:   data,
		Ground: ground,
		Flight: leveldata.BuildSpace(data),
	}
}

// LoadArena loads one embedded arena by name and builds its collision state.
func LoadArena(name string) (*ServerArena, error) {
	data, err := assets.LoadArena(name)
	if err != nil {
		return nil, fmt.Errorf("load arena %q: %w", name, err)
	}
	return NewServerArena(data), nil
}

// PlayerSpawn returns the world position for the given join order.
func (a *ServerArena) PlayerSpawn(index int) (float64, float64) {
	spawns := a.Data.PlayerSpawns
	if len(spawns) == 0 {
		return a.Data.Width / 2, a.Data.Depth / 2
	}
	sp := spawns[index%len(spawns)]
	return sp.X, sp.Z
}

// BombSpawn returns the arena's bomb spawn position.
func (a *ServerArena) BombSpawn() (float64, float64) {
	if len(a.Data.BombSpawns) == 0 {
		return a.Data.Width / 2, a.Data.Depth / 2
	}
	return a.Data.BombSpawns[0].X, a.Data.BombSpawns[0].Z
}
