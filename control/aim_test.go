package control

import (
	"testing"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/netconfig"
)

const localID = 7

// recorder implements every controller dependency and keeps an ordered call
// log so tests can assert both counts and ordering.
type recorder struct {
	calls      []string
	published  [][]gamemath.Vec3
	lastRight  bool
	handStates []netconfig.HandState
}

func (r *recorder) PublishTrajectory(points []gamemath.Vec3, rightHand bool, width float64) {
	r.calls = append(r.calls, "publish")
	r.published = append(r.published, points)
	r.lastRight = rightHand
}

func (r *recorder) ClearTrajectory() {
	r.calls = append(r.calls, "clear")
}

func (r *recorder) SetHandState(s netconfig.HandState) {
	r.calls = append(r.calls, "hand")
	r.handStates = append(r.handStates, s)
}

func (r *recorder) TriggerThrowFeedback() {
	r.calls = append(r.calls, "feedback")
}

func (r *recorder) RequestSwap() error {
	r.calls = append(r.calls, "swap")
	return nil
}

func (r *recorder) RequestThrow() error {
	r.calls = append(r.calls, "throw")
	return nil
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func newTestController(rec *recorder) *AimController {
	return NewAimController(AimControllerDeps{
		LocalID:    func() uint { return localID },
		Origin:     func() (gamemath.Vec3, gamemath.Vec3, bool) { return gamemath.Vec3{Y: 1}, gamemath.Vec3{X: 1}, true },
		Sink:       rec,
		Hand:       rec,
		Feedback:   rec,
		Authority:  rec,
		Gravity:    gamemath.Vec3{Y: -9.8},
		TimeStep:   1.0 / 60.0,
		MaxSamples: 30,
		LineWidth:  2,
	})
}

func heldView(right bool) BombView {
	return BombView{
		Held:        true,
		HolderID:    localID,
		OnRightSide: right,
		Right:       gamemath.ThrowProfile{Speed: 12, UpwardBias: 3},
		Left:        gamemath.ThrowProfile{Speed: 7, UpwardBias: 8},
	}
}

func TestAimStartWithoutBombStaysIdle(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(BombView{})
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want Idle", c.Phase())
	}

	c.Tick(BombView{})
	if rec.count("publish") != 0 {
		t.Error("trajectory published while idle without a bomb")
	}
}

func TestAimStartWithBombHeldByOther(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	view := heldView(true)
	view.HolderID = localID + 1
	c.HandleAimStarted(view)
	if c.Phase() != PhaseIdle {
		t.Error("aiming started on a bomb carried by another player")
	}
}

func TestAimingTickPublishesEveryTick(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(heldView(true))
	if c.Phase() != PhaseAiming {
		t.Fatalf("phase = %v, want Aiming", c.Phase())
	}

	for i := 0; i < 3; i++ {
		c.Tick(heldView(true))
	}
	if got := rec.count("publish"); got != 3 {
		t.Errorf("publish count = %d, want 3", got)
	}
	if len(rec.published[0]) != 31 {
		t.Errorf("arc length = %d, want maxSamples+1 = 31", len(rec.published[0]))
	}
	if rec.published[0][0] != (gamemath.Vec3{Y: 1}) {
		t.Errorf("arc starts at %v, want throw origin", rec.published[0][0])
	}
}

func TestBombLostMidAimReturnsToIdle(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(heldView(true))
	c.Tick(heldView(true))

	c.Tick(BombView{}) // authority cleared the bomb between ticks
	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want Idle after bomb loss", c.Phase())
	}
	if rec.count("clear") != 1 {
		t.Errorf("clear count = %d, want 1", rec.count("clear"))
	}

	// Loop is cancelled; further ticks publish nothing.
	c.Tick(BombView{})
	if rec.count("publish") != 1 {
		t.Errorf("publish count = %d after cancellation, want 1", rec.count("publish"))
	}
}

func TestReleaseWithBombOrdering(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(heldView(true))
	c.Tick(heldView(true))
	rec.calls = nil

	c.HandleAimReleased(heldView(true))

	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want Idle", c.Phase())
	}
	want := []string{"hand", "feedback", "clear", "throw"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", rec.calls, want)
		}
	}
}

func TestReleaseWithoutBombSendsNothing(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(heldView(true))
	rec.calls = nil

	c.HandleAimReleased(BombView{})

	if c.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, want Idle", c.Phase())
	}
	if rec.count("throw") != 0 || rec.count("feedback") != 0 {
		t.Errorf("release without bomb sent throw/feedback: %v", rec.calls)
	}
	if rec.count("clear") != 1 {
		t.Errorf("clear count = %d, want 1", rec.count("clear"))
	}
}

func TestReleaseWhileIdleIsNoop(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimReleased(heldView(true))
	if len(rec.calls) != 0 {
		t.Errorf("release while idle produced calls: %v", rec.calls)
	}
}

func TestSwapAllowedWhileAimingWithoutPhaseChange(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleSwapRequested(heldView(true))
	if rec.count("swap") != 1 {
		t.Fatalf("swap count = %d, want 1 while idle", rec.count("swap"))
	}

	c.HandleAimStarted(heldView(true))
	c.HandleSwapRequested(heldView(true))
	if rec.count("swap") != 2 {
		t.Errorf("swap count = %d, want 2", rec.count("swap"))
	}
	if c.Phase() != PhaseAiming {
		t.Error("swap request changed the aim phase")
	}

	c.HandleSwapRequested(BombView{})
	if rec.count("swap") != 2 {
		t.Error("swap sent without a carried bomb")
	}
}

func TestSideChangeUsesNewProfileNextTick(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(heldView(true))
	c.Tick(heldView(true))
	c.Tick(heldView(false)) // authority confirmed a swap between ticks

	if len(rec.published) != 2 {
		t.Fatalf("published %d arcs, want 2", len(rec.published))
	}
	if rec.lastRight {
		t.Error("second arc not flagged as left-hand")
	}

	// Right profile: v=(12,3,0); left lob: v=(7,8,0). Compare the first
	// step of each arc; a stale profile would repeat the first arc.
	if rec.published[0][1] == rec.published[1][1] {
		t.Error("side change did not alter the very next prediction tick")
	}

	// Left lob rises faster: y component of sample 1 must be higher.
	if rec.published[1][1].Y <= rec.published[0][1].Y {
		t.Errorf("lob sample y=%g not above flat throw y=%g",
			rec.published[1][1].Y, rec.published[0][1].Y)
	}
}

func TestMissingOriginClearsButKeepsAiming(t *testing.T) {
	rec := &recorder{}
	originOK := true
	c := NewAimController(AimControllerDeps{
		LocalID: func() uint { return localID },
		Origin: func() (gamemath.Vec3, gamemath.Vec3, bool) {
			return gamemath.Vec3{}, gamemath.Vec3{X: 1}, originOK
		},
		Sink:       rec,
		Hand:       rec,
		Feedback:   rec,
		Authority:  rec,
		Gravity:    gamemath.Vec3{Y: -9.8},
		TimeStep:   1.0 / 60.0,
		MaxSamples: 10,
		LineWidth:  2,
	})

	c.HandleAimStarted(heldView(true))

	originOK = false
	c.Tick(heldView(true))
	if c.Phase() != PhaseAiming {
		t.Fatal("missing anchor ended aiming; it should keep polling")
	}
	if rec.count("clear") != 1 || rec.count("publish") != 0 {
		t.Errorf("calls = %v, want a single clear and no publish", rec.calls)
	}

	// Anchor comes back.
	originOK = true
	c.Tick(heldView(true))
	if rec.count("publish") != 1 {
		t.Error("prediction did not resume when the anchor returned")
	}
}

func TestHandStateDerivation(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.Tick(BombView{})
	c.Tick(heldView(true))
	c.Tick(heldView(true)) // no change, no extra call
	c.Tick(heldView(false))
	c.Tick(BombView{})

	want := []netconfig.HandState{
		netconfig.HandNone,
		netconfig.HandRight,
		netconfig.HandLeft,
		netconfig.HandNone,
	}
	if len(rec.handStates) != len(want) {
		t.Fatalf("hand states = %v, want %v", rec.handStates, want)
	}
	for i := range want {
		if rec.handStates[i] != want[i] {
			t.Fatalf("hand states = %v, want %v", rec.handStates, want)
		}
	}
}

func TestOptimisticHandResetSurvivesReplicationLag(t *testing.T) {
	rec := &recorder{}
	c := newTestController(rec)

	c.HandleAimStarted(heldView(true))
	c.Tick(heldView(true))
	rec.handStates = nil

	c.HandleAimReleased(heldView(true))
	if len(rec.handStates) != 1 || rec.handStates[0] != netconfig.HandNone {
		t.Fatalf("hand states on release = %v, want immediate HandNone", rec.handStates)
	}

	// The replicated bomb still shows us as holder for a few ticks; the
	// optimistic empty hands must not flicker back.
	for i := 0; i < 5; i++ {
		c.Tick(heldView(true))
	}
	if len(rec.handStates) != 1 {
		t.Fatalf("hand states during lag = %v, want no extra calls", rec.handStates)
	}

	// Authority confirms: bomb gone, then picked up again later.
	c.Tick(BombView{})
	c.Tick(heldView(false))
	want := []netconfig.HandState{netconfig.HandNone, netconfig.HandLeft}
	if len(rec.handStates) != len(want) || rec.handStates[1] != want[1] {
		t.Fatalf("hand states after confirm = %v, want %v", rec.handStates, want)
	}
}

func TestObstructionTruncatesPublishedArc(t *testing.T) {
	rec := &recorder{}
	hit := gamemath.Vec3{X: 0.4, Y: 1.0}
	c := NewAimController(AimControllerDeps{
		LocalID: func() uint { return localID },
		Origin: func() (gamemath.Vec3, gamemath.Vec3, bool) {
			return gamemath.Vec3{Y: 1}, gamemath.Vec3{X: 1}, true
		},
		Collide: func(from, to gamemath.Vec3) (gamemath.Vec3, bool) {
			if to.X >= 0.4 {
				return hit, true
			}
			return gamemath.Vec3{}, false
		},
		Sink:       rec,
		Hand:       rec,
		Feedback:   rec,
		Authority:  rec,
		Gravity:    gamemath.Vec3{Y: -9.8},
		TimeStep:   1.0 / 60.0,
		MaxSamples: 60,
		LineWidth:  2,
	})

	c.HandleAimStarted(heldView(true))
	c.Tick(heldView(true))

	if len(rec.published) != 1 {
		t.Fatal("no arc published")
	}
	arc := rec.published[0]
	if arc[len(arc)-1] != hit {
		t.Errorf("arc ends at %v, want obstruction point %v", arc[len(arc)-1], hit)
	}
	if len(arc) >= 61 {
		t.Errorf("arc has %d points, expected truncation before horizon", len(arc))
	}
}
