package systems

import (
	"image/color"

	"github.com/automoto/kaboomer-mp/components"
	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

var (
	floorColor    = color.RGBA{R: 34, G: 38, B: 46, A: 255}
	gridColor     = color.RGBA{R: 48, G: 54, B: 64, A: 255}
	wallTopColor  = color.RGBA{R: 96, G: 104, B: 118, A: 255}
	wallFaceColor = color.RGBA{R: 70, G: 76, B: 88, A: 255}
)

// DrawArena renders the floor grid and extruded wall boxes. Walls draw
// their front face first and the lifted top last so the top edge reads as
// height.
func DrawArena(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Arena.First(e.World)
	if !ok {
		return
	}
	arena := components.Arena.Get(entry).Arena
	if arena == nil {
		return
	}

	// Floor
	x0, y0 := worldToScreen(0, 0, 0)
	x1, y1 := worldToScreen(arena.Width, 0, arena.Depth)
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, floorColor, false)

	// Grid lines every world unit
	for gx := 0.0; gx <= arena.Width; gx++ {
		ax, ay := worldToScreen(gx, 0, 0)
		_, by := worldToScreen(gx, 0, arena.Depth)
		vector.StrokeLine(screen, ax, ay, ax, by, 1, gridColor, false)
	}
	for gz := 0.0; gz <= arena.Depth; gz++ {
		ax, ay := worldToScreen(0, 0, gz)
		bx, _ := worldToScreen(arena.Width, 0, gz)
		vector.StrokeLine(screen, ax, ay, bx, ay, 1, gridColor, false)
	}

	// Walls
	for _, w := range arena.Walls {
		fx0, fy0 := worldToScreen(w.X, 0, w.Z+w.D)
		fx1, _ := worldToScreen(w.X+w.W, 0, w.Z+w.D)
		_, fyTop := worldToScreen(w.X, arena.WallHeight, w.Z+w.D)
		vector.DrawFilledRect(screen, fx0, fyTop, fx1-fx0, fy0-fyTop, wallFaceColor, false)

		tx0, ty0 := worldToScreen(w.X, arena.WallHeight, w.Z)
		tx1, ty1 := worldToScreen(w.X+w.W, arena.WallHeight, w.Z+w.D)
		vector.DrawFilledRect(screen, tx0, ty0, tx1-tx0, ty1-ty0, wallTopColor, false)

		if cfg.Debug.DrawColliders {
			gx0, gy0 := worldToScreen(w.X, 0, w.Z)
			gx1, gy1 := worldToScreen(w.X+w.W, 0, w.Z+w.D)
			vector.StrokeRect(screen, gx0, gy0, gx1-gx0, gy1-gy0, 1, cfg.BrightGreen, false)
		}
	}
}
