package systems

import (
	"github.com/automoto/kaboomer-mp/components"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewNetInterpSystem returns an ECS system that advances remote entities
// toward their latest snapshot position. T runs from 0 to 1 over one server
// tick; past 1 the entity extrapolates along the snapshot velocity so fast
// bombs do not stutter between snapshots.
func NewNetInterpSystem(tickRate func() int) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		rate := tickRate()
		if rate <= 0 {
			rate = 20
		}
		// Fraction of a server tick covered by one 60 Hz frame
		step := float64(rate) / 60.0

		esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
			if !entry.HasComponent(components.NetInterp) || !entry.HasComponent(netcomponents.NetPosition) {
				return
			}

			interp := components.NetInterp.Get(entry)
			if !interp.Initialized || interp.T >= 1.0 {
				// Extrapolate a short distance beyond the last snapshot
				if interp.Initialized && interp.T < 2.0 {
					pos := netcomponents.NetPosition.Get(entry)
					pos.X += interp.VelX / 60.0
					pos.Y += interp.VelY / 60.0
					pos.Z += interp.VelZ / 60.0
					interp.T += step
				}
				return
			}

			interp.T += step
			t := interp.T
			if t > 1.0 {
				t = 1.0
			}

			pos := netcomponents.NetPosition.Get(entry)
			pos.X = interp.PrevX + (interp.TargetX-interp.PrevX)*t
			pos.Y = interp.PrevY + (interp.TargetY-interp.PrevY)*t
			pos.Z = interp.PrevZ + (interp.TargetZ-interp.PrevZ)*t
		})
	}
}
