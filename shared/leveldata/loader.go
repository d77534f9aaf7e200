package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const defaultWallHeight = 4.0

// LoadArena parses a TMX file into arena collision data. It takes an fs.FS
// so callers can pass embed.FS (client) or os.DirFS (server).
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	arenaMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	arena := &ArenaData{
		Width:      float64(arenaMap.Width * arenaMap.TileWidth),
		Depth:      float64(arenaMap.Height * arenaMap.TileHeight),
		WallHeight: defaultWallHeight,
		Name:       strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
	}
	if h := arenaMap.Properties.GetFloat("wallHeight"); h > 0 {
		arena.WallHeight = h
	}

	for _, og := range arenaMap.ObjectGroups {
		switch og.Name {
		case "Walls":
			for _, o := range og.Objects {
				arena.Walls = append(arena.Walls, WallRect{
					X: o.X,
					Z: o.Y,
					W: o.Width,
					D: o.Height,
				})
			}
		case "PlayerSpawn":
			for _, o := range og.Objects {
				arena.PlayerSpawns = append(arena.PlayerSpawns, SpawnPoint{
					X:     o.X,
					Z:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case "BombSpawn":
			for _, o := range og.Objects {
				arena.BombSpawns = append(arena.BombSpawns, SpawnPoint{
					X: o.X,
					Z: o.Y,
				})
			}
		}
	}

	// Sort spawns by index for consistent assignment
	sort.Slice(arena.PlayerSpawns, func(i, j int) bool {
		return arena.PlayerSpawns[i].Index < arena.PlayerSpawns[j].Index
	})

	return arena, nil
}

// LoadAllArenas discovers all .tmx files in arenasDir within fsys, loads each,
// and returns a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, arenasDir string) (map[string]*ArenaData, []string, error) {
	pattern := arenasDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", arenasDir)
	}

	arenas := make(map[string]*ArenaData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		arena, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		arenas[arena.Name] = arena
		names = append(names, arena.Name)
	}

	sort.Strings(names)
	return arenas, names, nil
}
