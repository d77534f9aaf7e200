package components

import "github.com/yohamta/donburi"

// ExplosionData is a short-lived client-side blast effect spawned from a
// bomb explode event. Purely cosmetic; the authoritative outcome already
// arrived in the event.
type ExplosionData struct {
	X, Y, Z float64
	Age     float64 // Seconds since spawn
	Life    float64 // Total lifetime in seconds
	Radius  float64 // Peak radius in world units
}

var Explosion = donburi.NewComponentType[ExplosionData]()
