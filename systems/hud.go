package systems

import (
	"fmt"
	"image/color"

	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/fonts"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 10
	hudFuseWidth  = 130
	hudFuseHeight = 10
)

// NewHUDSystem returns a renderer for the local player's lives, carry hand,
// and the bomb fuse bar.
func NewHUDSystem(localNetID func() esync.NetworkId) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		uiFont := fonts.UI.Get()

		var hand netconfig.HandState
		lives := -1
		id := localNetID()
		if id != 0 {
			entity := esync.FindByNetworkId(e.World, id)
			if e.World.Valid(entity) {
				entry := e.World.Entry(entity)
				if entry.HasComponent(netcomponents.NetPlayerState) {
					state := netcomponents.NetPlayerState.Get(entry)
					hand = state.Hand
					lives = state.Lives
				}
			}
		}

		y := hudMargin + 14
		if lives >= 0 {
			text.Draw(screen, fmt.Sprintf("Lives: %d", lives), uiFont, hudMargin, y, cfg.White)
			y += 18
		}
		if hand != netconfig.HandNone {
			text.Draw(screen, "Bomb: "+hand.String()+" hand", uiFont, hudMargin, y, cfg.LightGreen)
			y += 18
		}

		drawFuseBar(e, screen, y)

		entityCount := 0
		esync.NetworkEntityQuery.Each(e.World, func(_ *donburi.Entry) {
			entityCount++
		})
		info := fmt.Sprintf("Online - Entities: %d", entityCount)
		text.Draw(screen, info, fonts.UISmall.Get(), hudMargin, cfg.C.Height-hudMargin, cfg.LightGreen)
	}
}

// drawFuseBar renders the remaining fuse of a lit bomb in the top-left.
func drawFuseBar(e *ecs.ECS, screen *ebiten.Image, y int) {
	var bomb *netcomponents.NetBombData
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if entry.HasComponent(netcomponents.NetBomb) {
			bomb = netcomponents.NetBomb.Get(entry)
		}
	})
	if bomb == nil || bomb.State != netconfig.BombInFlight || cfg.Bomb.FuseSeconds <= 0 {
		return
	}

	ratio := float32(bomb.FuseLeft / cfg.Bomb.FuseSeconds)
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}

	vector.DrawFilledRect(screen,
		float32(hudMargin), float32(y),
		hudFuseWidth, hudFuseHeight,
		color.RGBA{R: 40, G: 40, B: 40, A: 255}, false)
	vector.DrawFilledRect(screen,
		float32(hudMargin), float32(y),
		hudFuseWidth*ratio, hudFuseHeight,
		color.RGBA{R: 230, G: 120, B: 40, A: 255}, false)
}
