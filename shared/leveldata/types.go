// Package leveldata provides TMX arena parsing shared between client and
// server. Arenas are authored in Tiled: wall rectangles in a "Walls" object
// group, spawn markers in "PlayerSpawn" and "BombSpawn" groups. Map X/Y maps
// to world X/Z; walls are extruded upward to WallHeight.
package leveldata

// ArenaData holds everything parsed from a TMX arena file.
type ArenaData struct {
	Walls        []WallRect
	PlayerSpawns []SpawnPoint
	BombSpawns   []SpawnPoint
	Width        float64 // World units along X
	Depth        float64 // World units along Z
	WallHeight   float64
	Name         string
}

// WallRect is a solid wall footprint on the ground plane.
type WallRect struct {
	X, Z, W, D float64
}

// SpawnPoint is a marker on the ground plane.
type SpawnPoint struct {
	X, Z  float64
	Index int
}
