package systems

import (
	"github.com/automoto/kaboomer-mp/components"
	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/control"
	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ecsAimSinks adapts the aim controller's output interfaces onto the ECS
// presentation components. One instance per arena session; the pointer to
// the running ECS is refreshed at the top of every tick.
type ecsAimSinks struct {
	e *ecs.ECS
}

func (s *ecsAimSinks) PublishTrajectory(points []gamemath.Vec3, rightHand bool, width float64) {
	traj := getOrCreateTrajectory(s.e)
	traj.Points = append(traj.Points[:0], points...)
	traj.RightHand = rightHand
	traj.Width = width
	traj.Visible = len(points) > 0
}

func (s *ecsAimSinks) ClearTrajectory() {
	traj := getOrCreateTrajectory(s.e)
	traj.Points = traj.Points[:0]
	traj.Visible = false
}

func (s *ecsAimSinks) SetHandState(hand netconfig.HandState) {
	pose := getOrCreateHandPose(s.e)
	startHandSwing(pose, hand)
}

func (s *ecsAimSinks) TriggerThrowFeedback() {
	pose := getOrCreateHandPose(s.e)
	pose.ThrowFlash = throwFlashFrames
}

// NewAimSystem wires an aim controller into the ECS loop. Each tick it
// feeds input edges to the controller as logical events, then runs the
// controller's per-tick prediction step against a fresh snapshot of the
// replicated bomb.
func NewAimSystem(authority control.AuthorityRequester, localNetID func() esync.NetworkId) func(*ecs.ECS) {
	sinks := &ecsAimSinks{}

	var space segmentSpace
	controller := control.NewAimController(control.AimControllerDeps{
		LocalID:   func() uint { return uint(localNetID()) },
		Origin:    func() (gamemath.Vec3, gamemath.Vec3, bool) { return localThrowOrigin(sinks.e, localNetID()) },
		Collide:   space.test,
		Sink:      sinks,
		Hand:      sinks,
		Feedback:  sinks,
		Authority: authority,

		Gravity:    gamemath.Vec3{Y: -cfg.Bomb.Gravity},
		TimeStep:   cfg.Trajectory.TimeStep,
		MaxSamples: cfg.Trajectory.MaxSamples,
		LineWidth:  cfg.Trajectory.LineWidth,
	})

	return func(e *ecs.ECS) {
		sinks.e = e
		space.update(e)

		in := getOrCreateInput(e)
		view := bombView(e)

		if in.JustPressed(cfg.ActionSwapHands) {
			controller.HandleSwapRequested(view)
		}
		if in.JustPressed(cfg.ActionAim) {
			controller.HandleAimStarted(view)
		}
		if in.JustReleased(cfg.ActionAim) {
			controller.HandleAimReleased(view)
		}

		controller.Tick(view)
	}
}

// segmentSpace lazily tracks the arena's obstruction space so the controller
// can hold a stable SegmentTest func across arena loads.
type segmentSpace struct {
	arena *components.ArenaData
}

func (s *segmentSpace) update(e *ecs.ECS) {
	if entry, ok := components.Arena.First(e.World); ok {
		s.arena = components.Arena.Get(entry)
	}
}

func (s *segmentSpace) test(from, to gamemath.Vec3) (gamemath.Vec3, bool) {
	if s.arena == nil || s.arena.Space == nil {
		return gamemath.Vec3{}, false
	}
	return s.arena.Space.Segment(from, to, leveldata.TagSolid, leveldata.TagFloor)
}

// bombView snapshots the replicated bomb for the aim controller. Rebuilt on
// every call; the controller must never see a stale carry state.
func bombView(e *ecs.ECS) control.BombView {
	var view control.BombView
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetBomb) {
			return
		}
		bomb := netcomponents.NetBomb.Get(entry)
		view = control.BombView{
			Held:        bomb.Held,
			HolderID:    bomb.HolderNetworkID,
			OnRightSide: bomb.OnRightSide,
			Right:       gamemath.ThrowProfile{Speed: bomb.RightSpeed, UpwardBias: bomb.RightUpwardBias},
			Left:        gamemath.ThrowProfile{Speed: bomb.LeftSpeed, UpwardBias: bomb.LeftUpwardBias},
		}
	})
	return view
}

// localThrowOrigin reports the throw anchor and aim heading of the local
// player, or ok=false when the local entity has not been replicated yet.
func localThrowOrigin(e *ecs.ECS, localID esync.NetworkId) (origin, forward gamemath.Vec3, ok bool) {
	if e == nil || localID == 0 {
		return gamemath.Vec3{}, gamemath.Vec3{}, false
	}
	entity := esync.FindByNetworkId(e.World, localID)
	if !e.World.Valid(entity) {
		return gamemath.Vec3{}, gamemath.Vec3{}, false
	}
	entry := e.World.Entry(entity)
	if !entry.HasComponent(netcomponents.NetPosition) {
		return gamemath.Vec3{}, gamemath.Vec3{}, false
	}

	pos := netcomponents.NetPosition.Get(entry)
	origin = gamemath.Vec3{X: pos.X, Y: pos.Y + cfg.Player.ThrowHeight, Z: pos.Z}
	forward = gamemath.Vec3{X: pos.FacingX, Z: pos.FacingZ}.Normalized()
	if forward.Length() == 0 {
		forward = gamemath.Vec3{Z: 1}
	}
	return origin, forward, true
}

func getOrCreateTrajectory(e *ecs.ECS) *components.TrajectoryData {
	entry, ok := components.Trajectory.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Trajectory))
	}
	return components.Trajectory.Get(entry)
}

func getOrCreateHandPose(e *ecs.ECS) *components.HandPoseData {
	entry, ok := components.HandPose.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.HandPose))
	}
	return components.HandPose.Get(entry)
}
