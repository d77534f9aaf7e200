package netcomponents

import (
	"github.com/automoto/kaboomer-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	Hand         netconfig.HandState // Which hand carries the bomb (HandNone if empty-handed)
	Lives        int
	LastSequence uint32 // Last input sequence processed by the server (for prediction reconciliation)
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
