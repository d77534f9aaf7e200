package systems

import (
	"strconv"

	"github.com/automoto/kaboomer-mp/components"
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

var (
	playerDrawRadius = float32(cfg.Player.Radius * camScale)
	bombDrawRadius   = float32(0.35 * camScale)
)

// DrawNetworkedPlayers renders every replicated player as a grounded disc
// with a height-lifted body, plus its network ID label.
func DrawNetworkedPlayers(e *ecs.ECS, screen *ebiten.Image) {
	smallFont := fonts.UISmall.Get()
	colorIndex := 0

	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetPosition) || entry.HasComponent(netcomponents.NetBomb) {
			return
		}

		pos := netcomponents.NetPosition.Get(entry)
		var state *netcomponents.NetPlayerStateData
		if entry.HasComponent(netcomponents.NetPlayerState) {
			state = netcomponents.NetPlayerState.Get(entry)
		}

		bodyColor := cfg.PlayerColors[colorIndex%len(cfg.PlayerColors)]
		colorIndex++
		if state != nil && state.IsLocal {
			bodyColor = cfg.BrightGreen
		}

		// Ground shadow, then the body lifted by height
		sx, sy := worldToScreen(pos.X, 0, pos.Z)
		vector.DrawFilledCircle(screen, sx, sy, playerDrawRadius, cfg.BlackOverlay, false)

		bx, by := worldToScreen(pos.X, pos.Y, pos.Z)
		vector.DrawFilledCircle(screen, bx, by-playerDrawRadius, playerDrawRadius*1.2, bodyColor, false)

		// Facing tick
		fx := bx + float32(pos.FacingX)*playerDrawRadius*1.4
		fy := by - playerDrawRadius + float32(pos.FacingZ)*playerDrawRadius*1.4
		vector.DrawFilledCircle(screen, fx, fy, 3, cfg.White, false)

		if nid := esync.GetNetworkId(entry); nid != nil {
			label := "ID:" + strconv.Itoa(int(*nid))
			text.Draw(screen, label, smallFont, int(bx)-len(label)*3, int(by)-int(playerDrawRadius*3), cfg.White)
		}
	})
}

// DrawBomb renders the replicated bomb. A carried bomb rides its holder's
// carry anchor; the local holder additionally applies the hand-swing offset
// and the optimistic throw flash.
func DrawBomb(e *ecs.ECS, screen *ebiten.Image) {
	esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(netcomponents.NetBomb) {
			return
		}
		bomb := netcomponents.NetBomb.Get(entry)

		x, y, z := bomb.X, bomb.Y, bomb.Z
		flash := false
		if bomb.Held {
			if hx, hy, hz, local, ok := holderAnchor(e, bomb); ok {
				x, y, z = hx, hy, hz
				if local {
					x, flash = applyLocalHandPose(e, x, bomb.OnRightSide)
				} else if bomb.OnRightSide {
					x += cfg.Bomb.CarryOffsetX
				} else {
					x -= cfg.Bomb.CarryOffsetX
				}
			}
		}

		// Ground shadow
		sx, sy := worldToScreen(x, 0, z)
		vector.DrawFilledCircle(screen, sx, sy, bombDrawRadius*0.8, cfg.BlackOverlay, false)

		bodyColor := cfg.DarkBlue
		if bomb.State == netconfig.BombInFlight {
			bodyColor = cfg.LightBlue
		}
		if flash {
			bodyColor = cfg.White
		}
		bx, by := worldToScreen(x, y, z)
		vector.DrawFilledCircle(screen, bx, by, bombDrawRadius, bodyColor, false)

		// Fuse spark shrinks as the fuse burns down
		if bomb.FuseLeft > 0 && bomb.FuseLeft < cfg.Bomb.FuseSeconds {
			sparkR := bombDrawRadius * 0.4 * float32(bomb.FuseLeft/cfg.Bomb.FuseSeconds)
			vector.DrawFilledCircle(screen, bx, by-bombDrawRadius, sparkR+1, cfg.BrightGreen, false)
		}
	})
}

// holderAnchor resolves the carrying player's carry position. Returns
// ok=false when the holder entity is not replicated yet; the bomb then
// falls back to its snapshot position.
func holderAnchor(e *ecs.ECS, bomb *netcomponents.NetBombData) (x, y, z float64, local, ok bool) {
	entity := esync.FindByNetworkId(e.World, esync.NetworkId(bomb.HolderNetworkID))
	if !e.World.Valid(entity) {
		return 0, 0, 0, false, false
	}
	entry := e.World.Entry(entity)
	if !entry.HasComponent(netcomponents.NetPosition) {
		return 0, 0, 0, false, false
	}
	pos := netcomponents.NetPosition.Get(entry)
	if entry.HasComponent(netcomponents.NetPlayerState) {
		local = netcomponents.NetPlayerState.Get(entry).IsLocal
	}
	return pos.X, pos.Y + cfg.Bomb.CarryOffsetY, pos.Z, local, true
}

// applyLocalHandPose shifts the carried bomb by the animated swing offset
// and reports whether the throw flash is active.
func applyLocalHandPose(e *ecs.ECS, x float64, onRight bool) (float64, bool) {
	entry, ok := components.HandPose.First(e.World)
	if !ok {
		if onRight {
			return x + cfg.Bomb.CarryOffsetX, false
		}
		return x - cfg.Bomb.CarryOffsetX, false
	}
	pose := components.HandPose.Get(entry)
	return x + pose.Offset, pose.ThrowFlash > 0
}
