package components

import (
	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/yohamta/donburi"
)

// InputData stores the current and previous frame's pressed state for all
// actions. JustPressed/JustReleased are computed on-demand by comparing
// frames — the aim controller consumes exactly these edges (press = aim
// start, release = throw, swap press = swap request).
type InputData struct {
	Current  [cfg.ActionCount]bool // Current frame's Pressed state
	Previous [cfg.ActionCount]bool // Previous frame's Pressed state
}

func (i *InputData) Pressed(action cfg.ActionID) bool {
	return i.Current[action]
}

func (i *InputData) JustPressed(action cfg.ActionID) bool {
	return i.Current[action] && !i.Previous[action]
}

func (i *InputData) JustReleased(action cfg.ActionID) bool {
	return !i.Current[action] && i.Previous[action]
}

var Input = donburi.NewComponentType[InputData]()
