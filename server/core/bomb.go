package core

import (
	"log"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/automoto/kaboomer-mp/shared/messages"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/shared/netconfig"
	"github.com/automoto/kaboomer-mp/shared/tuning"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
)

const (
	blastRadius      = 2.5
	respawnDelayTick = 60 // ticks until a blasted player respawns, at default 20 Hz = 3s
)

// BombPhysics is the authoritative flight state of the arena's bomb. Flight
// position is computed closed-form from the launch state so it matches what
// aiming clients predict.
type BombPhysics struct {
	Entity donburi.Entity

	Held        bool
	Holder      donburi.Entity
	OnRightSide bool
	State       int

	// Launch state; position during flight derives from these.
	Origin     gamemath.Vec3
	LaunchVel  gamemath.Vec3
	FlightTime float64
	FuseLeft   float64

	// Current position (carry anchor while held, sampled arc in flight)
	Pos  gamemath.Vec3
	Vel  gamemath.Vec3
	Dead bool
}

// spawnBomb creates the arena bomb at its spawn marker, unheld.
func (s *Server) spawnBomb() {
	x, z := s.activeArena.BombSpawn()

	entity := s.world.Create(netcomponents.NetBomb)
	entry := s.world.Entry(entity)
	netcomponents.NetBomb.Set(entry, &netcomponents.NetBombData{
		X:               x,
		Y:               0,
		Z:               z,
		State:           netconfig.BombCarried,
		RightSpeed:      tuning.Bomb.RightSpeed,
		RightUpwardBias: tuning.Bomb.RightUpwardBias,
		LeftSpeed:       tuning.Bomb.LeftSpeed,
		LeftUpwardBias:  tuning.Bomb.LeftUpwardBias,
	})

	if err := srvsync.NetworkSync(s.world, &entity, netcomponents.NetBomb); err != nil {
		log.Printf("Failed to sync bomb: %v", err)
	}

	s.bomb = &BombPhysics{
		Entity:      entity,
		OnRightSide: true,
		Pos:         gamemath.Vec3{X: x, Z: z},
	}
}

// updateBomb advances carry, pickup, and flight each server tick.
func (s *Server) updateBomb() {
	if s.bomb == nil {
		return
	}
	dt := 1.0 / float64(s.loop.tickRate)

	switch {
	case s.bomb.Held:
		s.updateCarriedBomb()
	case s.bomb.State == netconfig.BombInFlight:
		s.updateFlyingBomb(dt)
	default:
		s.checkBombPickup()
	}

	s.tickRespawns()
	s.writeBombState()
}

// updateCarriedBomb pins the bomb to its holder's carry anchor.
func (s *Server) updateCarriedBomb() {
	b := s.bomb
	pp, ok := s.playerPhysics[b.Holder]
	if !ok || !s.world.Valid(b.Holder) {
		// Holder left; drop the bomb where they stood.
		b.Held = false
		b.State = netconfig.BombCarried
		return
	}

	side := -tuning.Bomb.CarryOffsetX
	if b.OnRightSide {
		side = tuning.Bomb.CarryOffsetX
	}
	b.Pos = gamemath.Vec3{
		X: pp.CenterX() + side,
		Y: tuning.Bomb.CarryOffsetY,
		Z: pp.CenterZ(),
	}
	b.Vel = gamemath.Vec3{}
}

// updateFlyingBomb samples the ballistic arc and tests the swept segment
// for impact. The fuse detonates a bomb that flies too long.
func (s *Server) updateFlyingBomb(dt float64) {
	b := s.bomb

	b.FuseLeft -= dt
	if b.FuseLeft <= 0 {
		s.explodeBomb(b.Pos, true)
		return
	}

	gravity := gamemath.Vec3{Y: -tuning.Bomb.Gravity}
	b.FlightTime += dt
	t := b.FlightTime
	next := b.Origin.
		Add(b.LaunchVel.Scale(t)).
		Add(gravity.Scale(0.5 * t * t))

	if hit, ok := s.activeArena.Flight.Segment(b.Pos, next, leveldata.TagSolid, leveldata.TagFloor); ok {
		s.explodeBomb(hit, false)
		return
	}

	b.Vel = b.LaunchVel.Add(gravity.Scale(t))
	b.Pos = next

	// Direct hits on players explode on contact.
	for entity, pp := range s.playerPhysics {
		if entity == b.Holder || pp.RespawnTimer > 0 {
			continue
		}
		dx := b.Pos.X - pp.CenterX()
		dz := b.Pos.Z - pp.CenterZ()
		if dx*dx+dz*dz <= tuning.Player.Radius*tuning.Player.Radius && b.Pos.Y <= tuning.Player.ThrowHeight {
			s.explodeBomb(b.Pos, false)
			return
		}
	}
}

// checkBombPickup hands a free bomb to the first player inside the pickup
// radius.
func (s *Server) checkBombPickup() {
	b := s.bomb
	for entity, pp := range s.playerPhysics {
		if !s.world.Valid(entity) || pp.RespawnTimer > 0 {
			continue
		}
		dx := b.Pos.X - pp.CenterX()
		dz := b.Pos.Z - pp.CenterZ()
		if dx*dx+dz*dz > tuning.Bomb.PickupRadius*tuning.Bomb.PickupRadius {
			continue
		}

		b.Held = true
		b.Holder = entity
		b.OnRightSide = true
		b.State = netconfig.BombCarried
		b.FuseLeft = 0

		holderID := s.networkIDOf(entity)
		s.setPlayerHand(entity, netconfig.HandRight)
		s.broadcastEvent(messages.BombPickupEvent{HolderNetworkID: holderID})
		return
	}
}

// onSwapRequest validates and applies a hand swap. Requests from anyone but
// the current holder are dropped.
func (s *Server) onSwapRequest(entity donburi.Entity) {
	b := s.bomb
	if b == nil || !b.Held || b.Holder != entity {
		return
	}

	b.OnRightSide = !b.OnRightSide
	hand := netconfig.HandLeft
	if b.OnRightSide {
		hand = netconfig.HandRight
	}
	s.setPlayerHand(entity, hand)

	s.broadcastEvent(messages.BombSwapEvent{
		HolderNetworkID: s.networkIDOf(entity),
		OnRightSide:     b.OnRightSide,
	})
}

// onThrowRequest validates and launches a throw. The throw uses the server's
// view of the holder's facing and the carrying hand's profile, never
// anything from the request itself.
func (s *Server) onThrowRequest(entity donburi.Entity) {
	b := s.bomb
	if b == nil || !b.Held || b.Holder != entity {
		return
	}
	pp, ok := s.playerPhysics[entity]
	if !ok {
		return
	}

	profile := gamemath.ThrowProfile{Speed: tuning.Bomb.LeftSpeed, UpwardBias: tuning.Bomb.LeftUpwardBias}
	if b.OnRightSide {
		profile = gamemath.ThrowProfile{Speed: tuning.Bomb.RightSpeed, UpwardBias: tuning.Bomb.RightUpwardBias}
	}

	forward := gamemath.Vec3{X: pp.FacingX, Z: pp.FacingZ}.Normalized()
	if forward.Length() == 0 {
		forward = gamemath.Vec3{Z: 1}
	}

	origin := gamemath.Vec3{X: pp.CenterX(), Y: tuning.Player.ThrowHeight, Z: pp.CenterZ()}
	velocity := gamemath.ThrowVelocity(forward, gamemath.Up, profile)
	fromRight := b.OnRightSide

	b.Held = false
	b.State = netconfig.BombInFlight
	b.Origin = origin
	b.LaunchVel = velocity
	b.FlightTime = 0
	b.FuseLeft = tuning.Bomb.FuseSeconds
	b.Pos = origin
	b.Vel = velocity

	s.setPlayerHand(entity, netconfig.HandNone)

	s.broadcastEvent(messages.BombThrowEvent{
		ThrowerNetworkID: s.networkIDOf(entity),
		X:                origin.X,
		Y:                origin.Y,
		Z:                origin.Z,
		VelX:             velocity.X,
		VelY:             velocity.Y,
		VelZ:             velocity.Z,
		FromRightHand:    fromRight,
	})
}

// explodeBomb detonates at the given point, costs nearby players a life,
// and resets the bomb to its spawn.
func (s *Server) explodeBomb(at gamemath.Vec3, onFuse bool) {
	b := s.bomb
	b.State = netconfig.BombExploded
	b.Pos = at

	for entity, pp := range s.playerPhysics {
		if !s.world.Valid(entity) || pp.RespawnTimer > 0 {
			continue
		}
		dx := at.X - pp.CenterX()
		dz := at.Z - pp.CenterZ()
		if dx*dx+dz*dz > blastRadius*blastRadius {
			continue
		}
		s.blastPlayer(entity, pp)
	}

	s.broadcastEvent(messages.BombExplodeEvent{
		X:      at.X,
		Y:      at.Y,
		Z:      at.Z,
		OnFuse: onFuse,
	})

	// Reset to spawn as a free bomb
	x, z := s.activeArena.BombSpawn()
	var noHolder donburi.Entity
	b.Held = false
	b.Holder = noHolder
	b.State = netconfig.BombCarried
	b.FuseLeft = 0
	b.FlightTime = 0
	b.Pos = gamemath.Vec3{X: x, Z: z}
	b.Vel = gamemath.Vec3{}
}

// blastPlayer takes a life and parks the player for respawn.
func (s *Server) blastPlayer(entity donburi.Entity, pp *PlayerPhysics) {
	entry := s.world.Entry(entity)
	state := netcomponents.NetPlayerState.Get(entry)
	if state.Lives > 0 {
		state.Lives--
	}
	pp.RespawnTimer = respawnDelayTick
	pp.VelX = 0
	pp.VelZ = 0
}

// tickRespawns counts down respawn timers and returns players to a spawn.
func (s *Server) tickRespawns() {
	for entity, pp := range s.playerPhysics {
		if pp.RespawnTimer <= 0 || !s.world.Valid(entity) {
			continue
		}
		pp.RespawnTimer--
		if pp.RespawnTimer > 0 {
			continue
		}
		x, z := s.activeArena.PlayerSpawn(pp.SpawnIndex)
		pp.Object.X = x - tuning.Player.Radius
		pp.Object.Y = z - tuning.Player.Radius
		pp.Object.Update()
	}
}

// writeBombState copies authoritative bomb state to the replicated component.
func (s *Server) writeBombState() {
	b := s.bomb
	if !s.world.Valid(b.Entity) {
		return
	}
	entry := s.world.Entry(b.Entity)
	nb := netcomponents.NetBomb.Get(entry)

	nb.X, nb.Y, nb.Z = b.Pos.X, b.Pos.Y, b.Pos.Z
	nb.VelX, nb.VelY, nb.VelZ = b.Vel.X, b.Vel.Y, b.Vel.Z
	nb.Held = b.Held
	nb.HolderNetworkID = s.networkIDOf(b.Holder)
	nb.OnRightSide = b.OnRightSide
	nb.State = b.State
	nb.FuseLeft = b.FuseLeft
}

// setPlayerHand updates the replicated carry-hand state for a player.
func (s *Server) setPlayerHand(entity donburi.Entity, hand netconfig.HandState) {
	if !s.world.Valid(entity) {
		return
	}
	entry := s.world.Entry(entity)
	if entry.HasComponent(netcomponents.NetPlayerState) {
		netcomponents.NetPlayerState.Get(entry).Hand = hand
	}
}

// networkIDOf returns the entity's replicated id, or 0.
func (s *Server) networkIDOf(entity donburi.Entity) uint {
	if !s.world.Valid(entity) {
		return 0
	}
	entry := s.world.Entry(entity)
	if nid := esync.GetNetworkId(entry); nid != nil {
		return uint(*nid)
	}
	return 0
}
