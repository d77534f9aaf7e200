package config

import (
	"image/color"

	"github.com/automoto/kaboomer-mp/shared/tuning"
	"github.com/yohamta/donburi/ecs"
)

// Config holds the window and render surface dimensions.
type Config struct {
	Width  int
	Height int
}

// C is the global screen configuration.
var C *Config

// Default is the single render layer; draw order within it is back to front.
const Default ecs.LayerID = 0

// Gameplay tuning lives in shared/tuning so the dedicated server can use
// the same values without importing this package (and ebiten with it).
type BombConfig = tuning.BombTuning

// PlayerConfig contains player movement tuning.
type PlayerConfig = tuning.PlayerTuning

// TrajectoryConfig tunes arc prediction and its presentation.
type TrajectoryConfig struct {
	// TimeStep matches the simulation step so the predicted arc lines up
	// with the server's flight integration.
	TimeStep   float64
	MaxSamples int
	LineWidth  float64

	RightColor color.RGBA // Flat throw arc
	LeftColor  color.RGBA // Lob arc
}

// NetworkConfig contains client connection defaults.
type NetworkConfig struct {
	DefaultAddress string
	DefaultName    string
	Version        string
}

// DebugConfig contains developer toggles.
type DebugConfig struct {
	SkipMenu      bool
	DrawColliders bool
}

var (
	Bomb       = tuning.Bomb
	Player     = tuning.Player
	Trajectory TrajectoryConfig
	Network    NetworkConfig
	Debug      DebugConfig
)

// UI colors
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	BrightGreen  = color.RGBA{R: 80, G: 230, B: 80, A: 255}
	LightGreen   = color.RGBA{R: 150, G: 220, B: 150, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255} // Selected menu items
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}  // Unselected menu items
)

// PlayerColors are assigned to remote players in join order.
var PlayerColors = []color.RGBA{
	{R: 230, G: 80, B: 80, A: 255},
	{R: 230, G: 180, B: 60, A: 255},
	{R: 170, G: 90, B: 230, A: 255},
	{R: 60, G: 200, B: 200, A: 255},
}

func init() {
	C = &Config{
		Width:  960,
		Height: 540,
	}
	Trajectory = TrajectoryConfig{
		TimeStep:   1.0 / 60.0,
		MaxSamples: 120,
		LineWidth:  2.0,
		RightColor: color.RGBA{240, 90, 60, 255},
		LeftColor:  color.RGBA{80, 170, 240, 255},
	}

	Network = NetworkConfig{
		DefaultAddress: "localhost:7373",
		DefaultName:    "player",
		Version:        "0.3.0",
	}
}
