package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Bomb   = donburi.NewTag().SetName("Bomb")
)

// Resolv tags for server-side ground-plane collision
const (
	ResolvSolid  = "solid"
	ResolvPlayer = "Player"
)
