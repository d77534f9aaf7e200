// Package control holds the client-side bomb controller: the aim/throw state
// machine that turns logical input events into authoritative requests, and
// the per-tick arc prediction loop that runs while aiming. It is headless by
// design — presentation and networking are injected as narrow interfaces so
// the controller never touches ebiten, donburi, or necs types.
package control

import (
	"log"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/netconfig"
)

// Phase is the aiming phase of the local player.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAiming
)

// BombView is a read-only snapshot of the replicated bomb taken at one tick.
// It must be rebuilt from replicated state every tick, never cached: the
// authority can clear or re-side the bomb between any two ticks. The zero
// value means "nothing carried" and is legal at any time.
type BombView struct {
	Held        bool
	HolderID    uint
	OnRightSide bool
	Right, Left gamemath.ThrowProfile
}

// TrajectorySink receives the predicted arc for display.
type TrajectorySink interface {
	PublishTrajectory(points []gamemath.Vec3, rightHand bool, width float64)
	ClearTrajectory()
}

// HandStateSink receives carry-hand changes for the hand pose animation.
type HandStateSink interface {
	SetHandState(netconfig.HandState)
}

// ThrowFeedbackSink triggers the local optimistic throw animation.
type ThrowFeedbackSink interface {
	TriggerThrowFeedback()
}

// AuthorityRequester sends the two fire-and-forget bomb requests to the
// server. Send failures are logged and dropped; there is no retry and no
// acknowledgment tracked here.
type AuthorityRequester interface {
	RequestSwap() error
	RequestThrow() error
}

// AimOriginFn reports the current throw origin and normalized aim direction.
// ok=false means the anchor is unavailable this tick (e.g. the local player
// entity has not been replicated yet); prediction degrades to an empty arc.
type AimOriginFn func() (origin, forward gamemath.Vec3, ok bool)

// AimControllerDeps wires an AimController to its collaborators.
type AimControllerDeps struct {
	LocalID   func() uint // confirmed local player network id
	Origin    AimOriginFn
	Collide   gamemath.SegmentTest // may be nil (no obstruction testing)
	Sink      TrajectorySink
	Hand      HandStateSink
	Feedback  ThrowFeedbackSink
	Authority AuthorityRequester

	Gravity    gamemath.Vec3
	TimeStep   float64
	MaxSamples int
	LineWidth  float64
}

// AimController drives the Idle/Aiming state machine. All methods run on the
// simulation goroutine; calling Tick once per fixed simulation step while
// aiming is the prediction loop, and leaving PhaseAiming at any tick
// boundary is its cooperative cancellation point.
type AimController struct {
	deps  AimControllerDeps
	phase Phase

	lastHand   netconfig.HandState
	handPrimed bool

	// Ticks left before hand-state derivation resumes after an optimistic
	// empty-hands reset; the replicated bomb lags the throw request.
	throwGrace int
}

const throwGraceTicks = 30

func NewAimController(deps AimControllerDeps) *AimController {
	return &AimController{deps: deps}
}

func (c *AimController) Phase() Phase {
	return c.phase
}

// heldBySelf reports whether the snapshot shows the bomb in the local
// player's hands.
func (c *AimController) heldBySelf(view BombView) bool {
	return view.Held && view.HolderID == c.deps.LocalID()
}

// HandleAimStarted begins aiming if the local player carries the bomb.
// Without a carried bomb this is a logged no-op in every phase.
func (c *AimController) HandleAimStarted(view BombView) {
	if c.phase != PhaseIdle {
		return
	}
	if !c.heldBySelf(view) {
		log.Println("[aim] aim pressed with no carried bomb, ignoring")
		return
	}
	c.phase = PhaseAiming
}

// HandleAimReleased leaves aiming. With the bomb still carried it applies
// optimistic feedback and fires the throw request; without it there is
// nothing to throw and only the trajectory is cleared. Releases while Idle
// are no-ops (AimStarted logically precedes any release we act on).
func (c *AimController) HandleAimReleased(view BombView) {
	if c.phase != PhaseAiming {
		return
	}
	c.phase = PhaseIdle

	if !c.heldBySelf(view) {
		c.deps.Sink.ClearTrajectory()
		return
	}

	// Optimistic feedback first so the round trip to the authority is
	// invisible locally. The hands empty immediately; if the authority
	// disagrees, derivation resumes once the grace window runs out.
	c.lastHand = netconfig.HandNone
	c.handPrimed = true
	c.throwGrace = throwGraceTicks
	c.deps.Hand.SetHandState(netconfig.HandNone)
	c.deps.Feedback.TriggerThrowFeedback()
	c.deps.Sink.ClearTrajectory()
	if err := c.deps.Authority.RequestThrow(); err != nil {
		log.Printf("[aim] throw request failed: %v", err)
	}
}

// HandleSwapRequested asks the authority to flip the carrying hand. Aiming
// is unaffected; the next prediction tick picks up the new side's origin,
// profile, and color.
func (c *AimController) HandleSwapRequested(view BombView) {
	if !c.heldBySelf(view) {
		return
	}
	if err := c.deps.Authority.RequestSwap(); err != nil {
		log.Printf("[aim] swap request failed: %v", err)
	}
}

// Tick advances the controller by one fixed simulation step. It re-derives
// the hand state every tick and, while aiming, recomputes and publishes the
// predicted arc from the current snapshot.
func (c *AimController) Tick(view BombView) {
	c.syncHandState(view)

	if c.phase != PhaseAiming {
		return
	}

	// The bomb can vanish between any two ticks (thrown by the authority,
	// holder eliminated). Treated as a normal transition, not an error.
	if !c.heldBySelf(view) {
		c.phase = PhaseIdle
		c.deps.Sink.ClearTrajectory()
		return
	}

	origin, forward, ok := c.deps.Origin()
	if !ok {
		// Anchor unavailable; keep polling, it may come back.
		c.deps.Sink.ClearTrajectory()
		return
	}

	profile := view.Left
	if view.OnRightSide {
		profile = view.Right
	}
	velocity := gamemath.ThrowVelocity(forward, gamemath.Up, profile)

	points := gamemath.PredictArc(origin, velocity, c.deps.Gravity,
		c.deps.TimeStep, c.deps.MaxSamples, c.deps.Collide)
	c.deps.Sink.PublishTrajectory(points, view.OnRightSide, c.deps.LineWidth)
}

// syncHandState recomputes the carry hand from the snapshot and pushes it to
// the sink on change. Derivation is total: no bomb in local hands means
// HandNone, otherwise the replicated side decides.
func (c *AimController) syncHandState(view BombView) {
	if c.throwGrace > 0 {
		if !c.heldBySelf(view) {
			// Authority confirmed the throw; normal derivation resumes.
			c.throwGrace = 0
		} else {
			c.throwGrace--
			return
		}
	}

	state := netconfig.HandNone
	if c.heldBySelf(view) {
		if view.OnRightSide {
			state = netconfig.HandRight
		} else {
			state = netconfig.HandLeft
		}
	}
	if c.handPrimed && state == c.lastHand {
		return
	}
	c.lastHand = state
	c.handPrimed = true
	c.deps.Hand.SetHandState(state)
}
