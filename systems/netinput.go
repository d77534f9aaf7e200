package systems

import (
	"log"
	"time"

	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/shared/gamemath"
	"github.com/automoto/kaboomer-mp/shared/messages"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const resendInterval = 50 * time.Millisecond

type netInputState struct {
	lastMoveX    float64
	lastMoveZ    float64
	lastSendTime time.Time
}

// NewNetworkInputSystem returns an ECS system that reads the polled input
// state, applies it locally for prediction, and sends PlayerInput messages
// to the server when the movement state changes.
func NewNetworkInputSystem(sendFn func(any) error, prediction *NetPrediction, localNetID func() esync.NetworkId) func(*ecs.ECS) {
	state := &netInputState{}

	return func(e *ecs.ECS) {
		in := getOrCreateInput(e)

		move := gamemath.MoveDirection(
			in.Pressed(cfg.ActionMoveLeft),
			in.Pressed(cfg.ActionMoveRight),
			in.Pressed(cfg.ActionMoveUp),
			in.Pressed(cfg.ActionMoveDown),
		)

		// Facing follows movement; standing still keeps the last heading.
		facingX, facingZ := state.lastFacing(e, localNetID())
		if move.X != 0 || move.Z != 0 {
			facingX = move.X
			facingZ = move.Z
		}

		input := messages.PlayerInput{
			Sequence:  prediction.Buffer.NextSeq(),
			MoveX:     move.X,
			MoveZ:     move.Z,
			FacingX:   facingX,
			FacingZ:   facingZ,
			Timestamp: time.Now().UnixMilli(),
		}

		// Apply prediction locally every frame
		applyPrediction(e.World, prediction, input, localNetID())

		// Only send to server when input changes or the resend interval elapses
		changed := move.X != state.lastMoveX || move.Z != state.lastMoveZ
		now := time.Now()
		if !changed && now.Sub(state.lastSendTime) < resendInterval {
			return
		}

		if err := sendFn(input); err != nil {
			log.Printf("[netinput] send error: %v", err)
		}

		state.lastMoveX = move.X
		state.lastMoveZ = move.Z
		state.lastSendTime = now
	}
}

// lastFacing reads the local player's current heading so idle frames keep it.
func (s *netInputState) lastFacing(e *ecs.ECS, localID esync.NetworkId) (float64, float64) {
	if localID == 0 {
		return 0, 1
	}
	entity := esync.FindByNetworkId(e.World, localID)
	if !e.World.Valid(entity) {
		return 0, 1
	}
	entry := e.World.Entry(entity)
	if !entry.HasComponent(netcomponents.NetPosition) {
		return 0, 1
	}
	pos := netcomponents.NetPosition.Get(entry)
	if pos.FacingX == 0 && pos.FacingZ == 0 {
		return 0, 1
	}
	return pos.FacingX, pos.FacingZ
}

// applyPrediction finds the local player entity and runs one prediction step.
func applyPrediction(world donburi.World, pred *NetPrediction, input messages.PlayerInput, localID esync.NetworkId) {
	if pred == nil || localID == 0 {
		return
	}

	entity := esync.FindByNetworkId(world, localID)
	if !world.Valid(entity) {
		return
	}
	entry := world.Entry(entity)
	if !entry.HasComponent(netcomponents.NetPosition) {
		return
	}

	pos := netcomponents.NetPosition.Get(entry)
	pred.PredictStep(input, pos)
}
