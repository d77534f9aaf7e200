package systems

import (
	"math"
	"testing"

	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/automoto/kaboomer-mp/shared/messages"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
)

func testArena() *leveldata.ArenaData {
	return &leveldata.ArenaData{
		Name:       "test",
		Width:      20,
		Depth:      20,
		WallHeight: 3,
		Walls: []leveldata.WallRect{
			{X: 10, Z: 0, W: 1, D: 20}, // wall to the east
		},
	}
}

func TestPredictStepMovesAndClamps(t *testing.T) {
	p := NewNetPrediction()
	p.InitCollision(testArena(), 5, 5)

	pos := &netcomponents.NetPositionData{X: 5, Z: 5}
	input := messages.PlayerInput{Sequence: 1, MoveX: 0, MoveZ: 1, FacingX: 0, FacingZ: 1}

	for i := 0; i < 120; i++ {
		input.Sequence = uint32(i + 1)
		p.PredictStep(input, pos)
	}

	if pos.Z <= 5 {
		t.Fatalf("expected forward movement, z=%f", pos.Z)
	}
	if pos.X != 5 {
		t.Fatalf("expected no sideways drift, x=%f", pos.X)
	}
	// Two seconds of acceleration must be clamped to max ground speed.
	speed := math.Hypot(p.VelX, p.VelZ)
	if speed > 6.0+1e-9 {
		t.Fatalf("speed %f exceeds clamp", speed)
	}
}

func TestPredictStepStopsAtWall(t *testing.T) {
	p := NewNetPrediction()
	p.InitCollision(testArena(), 9, 5)

	pos := &netcomponents.NetPositionData{X: 9, Z: 5}
	input := messages.PlayerInput{MoveX: 1, FacingX: 1}

	for i := 0; i < 300; i++ {
		input.Sequence = uint32(i + 1)
		p.PredictStep(input, pos)
	}

	// Player footprint is 0.8 wide, wall starts at x=10, so the center can
	// never pass 10 - 0.4.
	if pos.X > 10-0.4+1e-6 {
		t.Fatalf("player pushed into wall, x=%f", pos.X)
	}
	if p.VelX != 0 {
		t.Fatalf("velocity into wall should be zeroed, velX=%f", p.VelX)
	}
}

func TestPredictStepSlidesAlongWall(t *testing.T) {
	p := NewNetPrediction()
	p.InitCollision(testArena(), 9, 5)

	pos := &netcomponents.NetPositionData{X: 9, Z: 5}
	diag := 1 / math.Sqrt2
	input := messages.PlayerInput{MoveX: diag, MoveZ: diag}

	for i := 0; i < 120; i++ {
		input.Sequence = uint32(i + 1)
		p.PredictStep(input, pos)
	}

	if pos.X > 10-0.4+1e-6 {
		t.Fatalf("player pushed into wall, x=%f", pos.X)
	}
	if pos.Z <= 5 {
		t.Fatalf("expected slide along wall, z=%f", pos.Z)
	}
}

func TestReconcileFirstSnapshotSnaps(t *testing.T) {
	p := NewNetPrediction()
	p.InitCollision(testArena(), 5, 5)

	pos := &netcomponents.NetPositionData{X: 5, Z: 5}
	p.Reconcile(0, 2, 3, pos)

	if !p.Initialized {
		t.Fatal("first reconcile should mark prediction initialized")
	}
	if pos.X != 2 || pos.Z != 3 {
		t.Fatalf("expected snap to server position, got (%f, %f)", pos.X, pos.Z)
	}
}

func TestReconcileKeepsPredictionWithinThreshold(t *testing.T) {
	p := NewNetPrediction()
	p.InitCollision(testArena(), 5, 5)

	pos := &netcomponents.NetPositionData{X: 5, Z: 5}
	p.Reconcile(0, 5, 5, pos)

	input := messages.PlayerInput{Sequence: 1, MoveZ: 1}
	p.PredictStep(input, pos)
	predicted := *pos

	// Server agrees within tolerance, prediction stands.
	p.Reconcile(1, predicted.X, predicted.Z+0.01, pos)
	if pos.X != predicted.X || pos.Z != predicted.Z {
		t.Fatalf("small error should not rewind, got (%f, %f)", pos.X, pos.Z)
	}
}

func TestReconcileReplaysUnackedInputs(t *testing.T) {
	p := NewNetPrediction()
	p.InitCollision(testArena(), 5, 5)

	pos := &netcomponents.NetPositionData{X: 5, Z: 5}
	p.Reconcile(0, 5, 5, pos)

	input := messages.PlayerInput{MoveZ: 1}
	for i := 0; i < 10; i++ {
		input.Sequence = uint32(i + 1)
		p.PredictStep(input, pos)
	}

	// Server disagrees heavily about input 5; positions after replay must
	// start from the server state, not the mispredicted one.
	p.Reconcile(5, 5, 8, pos)
	if pos.Z <= 8 {
		t.Fatalf("replayed position should be past server z, got %f", pos.Z)
	}
	if pos.Z > 9 {
		t.Fatalf("five replayed sub-steps cannot cover %f units", pos.Z-8)
	}
}
