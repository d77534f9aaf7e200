// Package tuning holds the gameplay constants shared by the client and the
// dedicated server. It stays free of engine imports so the headless server
// binary never links a renderer; client-only knobs (colors, key bindings,
// window size) live in the config package instead.
package tuning

// BombTuning contains bomb and throw tuning. The throw profiles here are the
// server defaults; the authoritative values ride on the replicated bomb, so
// the client only uses these before the first snapshot arrives.
type BombTuning struct {
	// Right hand: fast flat throw
	RightSpeed      float64
	RightUpwardBias float64

	// Left hand: slow high lob
	LeftSpeed      float64
	LeftUpwardBias float64

	FuseSeconds  float64
	PickupRadius float64
	Gravity      float64 // Positive magnitude, applied along -Y

	// Carry anchor relative to the holder, mirrored by carrying hand.
	CarryOffsetX float64 // Sideways, positive = right hand
	CarryOffsetY float64 // Height above the holder's feet
}

// PlayerTuning contains player movement tuning.
type PlayerTuning struct {
	MoveSpeed     float64
	Acceleration  float64
	Friction      float64
	Radius        float64 // Collision footprint on the ground plane
	ThrowHeight   float64 // Height of the throw origin above the feet
	StartingLives int
}

var (
	Bomb = BombTuning{
		RightSpeed:      14.0,
		RightUpwardBias: 3.0,
		LeftSpeed:       8.0,
		LeftUpwardBias:  7.5,
		FuseSeconds:     4.0,
		PickupRadius:    1.2,
		Gravity:         9.8,
		CarryOffsetX:    0.5,
		CarryOffsetY:    1.4,
	}

	Player = PlayerTuning{
		MoveSpeed:     6.0,
		Acceleration:  40.0,
		Friction:      30.0,
		Radius:        0.4,
		ThrowHeight:   1.5,
		StartingLives: 3,
	}
)
