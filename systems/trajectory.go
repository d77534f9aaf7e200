package systems

import (
	"image/color"

	"github.com/automoto/kaboomer-mp/components"
	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawTrajectory renders the predicted arc as a polyline, colored by the
// throwing hand, with a marker on the terminal point.
func DrawTrajectory(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Trajectory.First(e.World)
	if !ok {
		return
	}
	traj := components.Trajectory.Get(entry)
	if !traj.Visible || len(traj.Points) < 2 {
		return
	}

	lineColor := cfg.Trajectory.LeftColor
	if traj.RightHand {
		lineColor = cfg.Trajectory.RightColor
	}
	width := float32(traj.Width)

	px, py := worldToScreen(traj.Points[0].X, traj.Points[0].Y, traj.Points[0].Z)
	segments := len(traj.Points) - 1
	for i, p := range traj.Points[1:] {
		x, y := worldToScreen(p.X, p.Y, p.Z)
		// Fade toward the far end of the arc
		fade := 1.0 - 0.65*float64(i)/float64(segments)
		vector.StrokeLine(screen, px, py, x, y, width, fadeColor(lineColor, fade), false)
		px, py = x, y
	}

	// Impact marker on the last point
	vector.StrokeCircle(screen, px, py, width*3, width, lineColor, false)
}

func fadeColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: uint8(float64(c.A) * f),
	}
}
