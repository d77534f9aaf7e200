package components

import (
	"github.com/automoto/kaboomer-mp/shared/collide"
	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/yohamta/donburi"
)

// ArenaData holds the loaded arena and its obstruction space on the client,
// shared by the trajectory predictor and the arena renderer.
type ArenaData struct {
	Arena *leveldata.ArenaData
	Space *collide.Space
}

var Arena = donburi.NewComponentType[ArenaData]()
