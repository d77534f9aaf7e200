package systems

import (
	"image/color"

	"github.com/automoto/kaboomer-mp/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SpawnExplosion creates a blast effect entity at the given world point.
func SpawnExplosion(e *ecs.ECS, x, y, z float64) {
	entry := e.World.Entry(e.World.Create(components.Explosion))
	components.Explosion.SetValue(entry, components.ExplosionData{
		X: x, Y: y, Z: z,
		Life:   0.45,
		Radius: 2.2,
	})
}

// spawnLaunchPuff creates a small, short ring at a throw release point.
func spawnLaunchPuff(e *ecs.ECS, x, y, z float64) {
	entry := e.World.Entry(e.World.Create(components.Explosion))
	components.Explosion.SetValue(entry, components.ExplosionData{
		X: x, Y: y, Z: z,
		Life:   0.2,
		Radius: 0.6,
	})
}

// UpdateEffects ages explosion effects and removes expired ones.
func UpdateEffects(e *ecs.ECS) {
	var expired []donburi.Entity
	components.Explosion.Each(e.World, func(entry *donburi.Entry) {
		fx := components.Explosion.Get(entry)
		fx.Age += 1.0 / 60.0
		if fx.Age >= fx.Life {
			expired = append(expired, entry.Entity())
		}
	})
	for _, entity := range expired {
		e.World.Remove(entity)
	}
}

// DrawEffects renders explosion blasts as expanding, fading rings.
func DrawEffects(e *ecs.ECS, screen *ebiten.Image) {
	components.Explosion.Each(e.World, func(entry *donburi.Entry) {
		fx := components.Explosion.Get(entry)
		t := fx.Age / fx.Life

		sx, sy := worldToScreen(fx.X, fx.Y, fx.Z)
		radius := float32(fx.Radius * t * camScale)
		alpha := uint8(255 * (1 - t))

		vector.DrawFilledCircle(screen, sx, sy, radius*0.6, color.RGBA{R: 255, G: 200, B: 90, A: alpha}, false)
		vector.StrokeCircle(screen, sx, sy, radius, 3, color.RGBA{R: 255, G: 120, B: 50, A: alpha}, false)
	})
}
