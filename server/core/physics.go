package core

import (
	"math"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/shared/tuning"
	"github.com/automoto/kaboomer-mp/tags"
)

// Movement is integrated in fixed 60 Hz sub-steps so the same tuning
// constants work at any server tick rate, and so client prediction can run
// the identical step.
const physicsStep = 1.0 / 60.0

// updatePhysics runs sub-stepped movement for all players. Called once per
// server tick; LoadConfig only accepts tick rates that divide 60, so the
// sub-step count is exact.
func (s *Server) updatePhysics() {
	stepsPerTick := 60 / s.loop.tickRate
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}

	for step := 0; step < stepsPerTick; step++ {
		for entity, pp := range s.playerPhysics {
			if !s.world.Valid(entity) || pp.RespawnTimer > 0 {
				continue
			}
			s.stepPlayerPhysics(pp)
		}
	}

	// After all sub-steps, write final positions to net components.
	for entity, pp := range s.playerPhysics {
		if !s.world.Valid(entity) {
			continue
		}
		entry := s.world.Entry(entity)
		pos := netcomponents.NetPosition.Get(entry)
		vel := netcomponents.NetVelocity.Get(entry)
		state := netcomponents.NetPlayerState.Get(entry)

		pos.X = pp.CenterX()
		pos.Z = pp.CenterZ()
		pos.FacingX = pp.FacingX
		pos.FacingZ = pp.FacingZ
		vel.SpeedX = pp.VelX
		vel.SpeedZ = pp.VelZ
		state.LastSequence = pp.LastInputSeq
	}
}

// stepPlayerPhysics performs a single 60 Hz movement sub-step for one player.
// Mirrors systems/netprediction.go on the client.
func (s *Server) stepPlayerPhysics(pp *PlayerPhysics) {
	if pp.MoveX != 0 || pp.MoveZ != 0 {
		pp.VelX += pp.MoveX * tuning.Player.Acceleration * physicsStep
		pp.VelZ += pp.MoveZ * tuning.Player.Acceleration * physicsStep
	} else {
		pp.VelX = gamemath.ApplyFriction(pp.VelX, tuning.Player.Friction*physicsStep)
		pp.VelZ = gamemath.ApplyFriction(pp.VelZ, tuning.Player.Friction*physicsStep)
	}

	speed := math.Sqrt(pp.VelX*pp.VelX + pp.VelZ*pp.VelZ)
	if speed > tuning.Player.MoveSpeed {
		scale := tuning.Player.MoveSpeed / speed
		pp.VelX *= scale
		pp.VelZ *= scale
	}

	s.resolvePlayerAxis(pp, pp.VelX*physicsStep, 0)
	s.resolvePlayerAxis(pp, 0, pp.VelZ*physicsStep)
}

// resolvePlayerAxis moves along one axis, stopping at walls. Axis-separated
// resolution lets players slide along walls.
func (s *Server) resolvePlayerAxis(pp *PlayerPhysics, dx, dz float64) {
	if dx == 0 && dz == 0 {
		return
	}
	alongX := dx != 0

	if check := pp.Object.Check(dx, dz, tags.ResolvSolid); check != nil {
		if solids := check.ObjectsByTags(tags.ResolvSolid); len(solids) > 0 {
			contact := check.ContactWithObject(solids[0])
			dx = contact.X()
			dz = contact.Y()
			if alongX {
				pp.VelX = 0
			} else {
				pp.VelZ = 0
			}
		}
	}
	pp.Object.X += dx
	pp.Object.Y += dz
	pp.Object.Update()
}
