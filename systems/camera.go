package systems

import (
	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi/ecs"
)

// Pixels per world unit, and the screen lift applied per unit of height.
const (
	camScale = 32.0
	camLift  = 0.8 * camScale
)

// cam is the scene camera on the ground plane. Render systems read it
// through worldToScreen; only the camera system writes it.
var cam struct {
	X, Z        float64
	initialized bool
}

// NewNetCameraSystem returns an ECS system that eases the camera toward the
// local player.
func NewNetCameraSystem(localNetID func() esync.NetworkId) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		id := localNetID()
		if id == 0 {
			return
		}
		entity := esync.FindByNetworkId(e.World, id)
		if !e.World.Valid(entity) {
			return
		}
		entry := e.World.Entry(entity)
		if !entry.HasComponent(netcomponents.NetPosition) {
			return
		}
		pos := netcomponents.NetPosition.Get(entry)

		if !cam.initialized {
			cam.X = pos.X
			cam.Z = pos.Z
			cam.initialized = true
			return
		}
		cam.X += (pos.X - cam.X) * 0.12
		cam.Z += (pos.Z - cam.Z) * 0.12
	}
}

// ResetCamera clears camera state when leaving an arena.
func ResetCamera() {
	cam.X = 0
	cam.Z = 0
	cam.initialized = false
}

// worldToScreen projects a world point with a fixed oblique view: X maps
// right, Z maps down the screen, and height lifts the point up.
func worldToScreen(x, y, z float64) (float32, float32) {
	sx := float64(cfg.C.Width)/2 + (x-cam.X)*camScale
	sy := float64(cfg.C.Height)/2 + (z-cam.Z)*camScale - y*camLift
	return float32(sx), float32(sy)
}
