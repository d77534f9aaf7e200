package systems

import (
	"log"

	"github.com/automoto/kaboomer-mp/network"
	"github.com/yohamta/donburi/ecs"
)

// NewBombEventSystem returns an ECS system that drains bomb events from the
// network client each tick and triggers local presentation. Swap and pickup
// need no handling here; the hand pose and carry rendering follow the
// replicated bomb state directly. They are still drained so the channels
// never back up.
func NewBombEventSystem(client *network.Client) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		client.DrainSwapEvents()
		client.DrainPickupEvents()

		for _, evt := range client.DrainThrowEvents() {
			spawnLaunchPuff(e, evt.X, evt.Y, evt.Z)
		}

		for _, evt := range client.DrainExplodeEvents() {
			SpawnExplosion(e, evt.X, evt.Y, evt.Z)
		}

		for _, evt := range client.DrainSpawnEvents() {
			if evt.NetworkID != uint(client.NetworkID()) {
				spawnLaunchPuff(e, evt.X, evt.Y, evt.Z)
				log.Printf("[client] %s %d joined the arena", evt.EntityType, evt.NetworkID)
			}
		}

		for _, evt := range client.DrainDespawnEvents() {
			log.Printf("[client] entity %d left the arena", evt.NetworkID)
		}
	}
}
