package systems

import (
	"math"

	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/network"
	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/automoto/kaboomer-mp/shared/messages"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/tags"
	"github.com/solarlune/resolv"
)

// Client-side movement constants mirror server/core/playerphysics.go. The
// ground plane is X/Z; resolv's 2D Y axis carries world Z.
const (
	predStep = 1.0 / 60.0

	// Reconciliation snaps when the server disagrees by more than this.
	predSnapThreshold = 0.05
)

// NetPrediction owns client-side movement prediction for the local player.
type NetPrediction struct {
	Buffer *network.PredictionBuffer

	// Ground-plane velocity (mirrors server PlayerPhysics)
	VelX, VelZ  float64
	Initialized bool // True after first server snapshot has been applied

	// Collision space for prediction
	Space     *resolv.Space
	PlayerObj *resolv.Object
}

// NewNetPrediction creates a new prediction system.
func NewNetPrediction() *NetPrediction {
	return &NetPrediction{
		Buffer: &network.PredictionBuffer{},
	}
}

// InitCollision builds a resolv.Space from the arena's wall footprints for
// client-side prediction, so predicted movement slides along the same walls
// the server resolves against.
func (p *NetPrediction) InitCollision(arena *leveldata.ArenaData, spawnX, spawnZ float64) {
	p.Space = resolv.NewSpace(int(arena.Width)+1, int(arena.Depth)+1, 1, 1)

	for _, w := range arena.Walls {
		obj := resolv.NewObject(w.X, w.Z, w.W, w.D, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, w.W, w.D))
		p.Space.Add(obj)
	}

	size := cfg.Player.Radius * 2
	p.PlayerObj = resolv.NewObject(spawnX-cfg.Player.Radius, spawnZ-cfg.Player.Radius, size, size, tags.ResolvPlayer)
	p.PlayerObj.SetShape(resolv.NewRectangle(0, 0, size, size))
	p.Space.Add(p.PlayerObj)
}

// PredictStep applies one 60 Hz movement sub-step using the given input and
// updates the local player entity's NetPosition. It stores the result in the
// prediction buffer for later reconciliation.
func (p *NetPrediction) PredictStep(input messages.PlayerInput, pos *netcomponents.NetPositionData) {
	// Acceleration toward the input direction, friction when idle
	if input.MoveX != 0 || input.MoveZ != 0 {
		p.VelX += input.MoveX * cfg.Player.Acceleration * predStep
		p.VelZ += input.MoveZ * cfg.Player.Acceleration * predStep
	} else {
		p.VelX = gamemath.ApplyFriction(p.VelX, cfg.Player.Friction*predStep)
		p.VelZ = gamemath.ApplyFriction(p.VelZ, cfg.Player.Friction*predStep)
	}

	// Clamp overall ground speed
	speed := math.Sqrt(p.VelX*p.VelX + p.VelZ*p.VelZ)
	if speed > cfg.Player.MoveSpeed {
		scale := cfg.Player.MoveSpeed / speed
		p.VelX *= scale
		p.VelZ *= scale
	}

	if p.PlayerObj != nil {
		p.PlayerObj.X = pos.X - cfg.Player.Radius
		p.PlayerObj.Y = pos.Z - cfg.Player.Radius
		p.PlayerObj.Update()
		p.resolveAxis(p.VelX*predStep, 0)
		p.resolveAxis(0, p.VelZ*predStep)
		pos.X = p.PlayerObj.X + cfg.Player.Radius
		pos.Z = p.PlayerObj.Y + cfg.Player.Radius
	} else {
		// No collision space yet, bare movement
		pos.X += p.VelX * predStep
		pos.Z += p.VelZ * predStep
	}

	if input.FacingX != 0 || input.FacingZ != 0 {
		pos.FacingX = input.FacingX
		pos.FacingZ = input.FacingZ
	}

	// Store prediction
	p.Buffer.Store(input, pos.X, pos.Z)
}

// resolveAxis moves the player object along one axis, stopping at walls.
// Axis-separated resolution makes the player slide along a wall instead of
// sticking to it.
func (p *NetPrediction) resolveAxis(dx, dz float64) {
	if dx == 0 && dz == 0 {
		return
	}
	alongX := dx != 0

	if check := p.PlayerObj.Check(dx, dz, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			contact := check.ContactWithObject(solids[0])
			dx = contact.X()
			dz = contact.Y()
			if alongX {
				p.VelX = 0
			} else {
				p.VelZ = 0
			}
		}
	}
	p.PlayerObj.X += dx
	p.PlayerObj.Y += dz
	p.PlayerObj.Update()
}

// Reconcile applies an authoritative server position for a processed input
// sequence. When the prediction for that sequence differs, the server
// position wins and all unacknowledged inputs are replayed on top of it.
func (p *NetPrediction) Reconcile(lastAcked uint32, serverX, serverZ float64, pos *netcomponents.NetPositionData) {
	if !p.Initialized {
		pos.X = serverX
		pos.Z = serverZ
		if p.PlayerObj != nil {
			p.PlayerObj.X = serverX - cfg.Player.Radius
			p.PlayerObj.Y = serverZ - cfg.Player.Radius
			p.PlayerObj.Update()
		}
		p.Initialized = true
		return
	}

	if p.Buffer.PredictionError(lastAcked, serverX, serverZ) <= predSnapThreshold {
		return
	}

	// Rewind to the server's state and replay pending inputs
	pos.X = serverX
	pos.Z = serverZ
	for _, record := range p.Buffer.GetUnacknowledged(lastAcked) {
		p.PredictStep(record.Input, pos)
	}
}
