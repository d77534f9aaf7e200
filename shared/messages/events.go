package messages

// BombThrowEvent is broadcast when the server launches a carried bomb.
type BombThrowEvent struct {
	ThrowerNetworkID uint
	X, Y, Z          float64
	VelX, VelY, VelZ float64
	FromRightHand    bool
}

// BombSwapEvent is broadcast when a carried bomb changes hands.
type BombSwapEvent struct {
	HolderNetworkID uint
	OnRightSide     bool
}

// BombPickupEvent is broadcast when a player picks up a free bomb.
type BombPickupEvent struct {
	HolderNetworkID uint
}

// BombExplodeEvent is broadcast when a bomb detonates (impact or fuse).
type BombExplodeEvent struct {
	X, Y, Z float64
	OnFuse  bool // true when the fuse ran out mid-flight
}

// SpawnEvent is broadcast when a new entity spawns.
type SpawnEvent struct {
	NetworkID  uint
	EntityType string // "player", "bomb"
	X, Y, Z    float64
}

// DespawnEvent is broadcast when an entity is removed.
type DespawnEvent struct {
	NetworkID uint
}
