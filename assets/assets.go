// Package assets embeds the arena maps shipped with the game. Both the
// client and the dedicated server load arenas from here so the two sides
// always agree on wall geometry.
package assets

import (
	"embed"

	"github.com/automoto/kaboomer-mp/shared/leveldata"
)

//go:embed arenas
var arenaFS embed.FS

// LoadArena loads a single embedded arena by stem name.
func LoadArena(name string) (*leveldata.ArenaData, error) {
	return leveldata.LoadArena(arenaFS, "arenas/"+name+".tmx")
}

// LoadAllArenas loads every embedded arena, keyed by stem name.
func LoadAllArenas() (map[string]*leveldata.ArenaData, []string, error) {
	return leveldata.LoadAllArenas(arenaFS, "arenas")
}
