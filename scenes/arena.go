package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/kaboomer-mp/assets"
	"github.com/automoto/kaboomer-mp/components"
	"github.com/automoto/kaboomer-mp/network"
	"github.com/automoto/kaboomer-mp/shared/leveldata"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/kaboomer-mp/config"
)

// ArenaScene runs a joined match: snapshot application, prediction, aiming,
// and rendering.
type ArenaScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	netClient    *network.Client
	prediction   *systems.NetPrediction
	once         sync.Once
	presentIDs   map[esync.NetworkId]bool
}

func NewArenaScene(sc SceneChanger, client *network.Client) *ArenaScene {
	return &ArenaScene{
		sceneChanger: sc,
		netClient:    client,
		prediction:   systems.NewNetPrediction(),
		presentIDs:   make(map[esync.NetworkId]bool),
	}
}

func (as *ArenaScene) Update() {
	as.once.Do(as.configure)

	state := as.netClient.State()
	if state == network.StateDisconnected || state == network.StateError {
		log.Println("[arena] disconnected, returning to connect screen")
		as.leave()
		return
	}

	if snap := as.netClient.LatestSnapshot(); snap != nil {
		as.applySnapshot(*snap)
	}

	as.ecsWorld.Update()

	if entry, ok := components.Input.First(as.ecsWorld.World); ok {
		if components.Input.Get(entry).JustPressed(cfg.ActionPause) {
			as.leave()
		}
	}
}

func (as *ArenaScene) leave() {
	as.netClient.Disconnect()
	systems.ResetCamera()
	as.sceneChanger.ChangeScene(NewConnectScene(as.sceneChanger))
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if as.ecsWorld == nil {
		return
	}

	as.ecsWorld.Draw(screen)
}

func (as *ArenaScene) configure() {
	as.ecsWorld = ecs.NewECS(donburi.NewWorld())

	arena := as.loadArena()
	if arena != nil {
		entry := as.ecsWorld.World.Entry(as.ecsWorld.World.Create(components.Arena))
		components.Arena.SetValue(entry, components.ArenaData{
			Arena: arena,
			Space: leveldata.BuildSpace(arena),
		})

		spawnX, spawnZ := arena.Width/2, arena.Depth/2
		if len(arena.PlayerSpawns) > 0 {
			spawnX = arena.PlayerSpawns[0].X
			spawnZ = arena.PlayerSpawns[0].Z
		}
		as.prediction.InitCollision(arena, spawnX, spawnZ)
	}

	sendFn := func(msg any) error {
		if as.netClient.State() != network.StateJoinedGame {
			return nil
		}
		return as.netClient.SendMessage(msg)
	}
	localNetID := func() esync.NetworkId {
		return as.netClient.NetworkID()
	}

	as.ecsWorld.AddSystem(systems.UpdateInput)
	as.ecsWorld.AddSystem(systems.NewNetworkInputSystem(sendFn, as.prediction, localNetID))
	as.ecsWorld.AddSystem(systems.NewAimSystem(as.netClient, localNetID))
	as.ecsWorld.AddSystem(systems.NewNetInterpSystem(as.netClient.TickRate))
	as.ecsWorld.AddSystem(systems.NewNetCameraSystem(localNetID))
	as.ecsWorld.AddSystem(systems.UpdateHandPose)
	as.ecsWorld.AddSystem(systems.NewBombEventSystem(as.netClient))
	as.ecsWorld.AddSystem(systems.UpdateEffects)

	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawArena)
	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawTrajectory)
	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawNetworkedPlayers)
	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawBomb)
	as.ecsWorld.AddRenderer(cfg.Default, systems.DrawEffects)
	as.ecsWorld.AddRenderer(cfg.Default, systems.NewHUDSystem(localNetID))
}

// loadArena loads the arena the server told us it is running.
func (as *ArenaScene) loadArena() *leveldata.ArenaData {
	name := as.netClient.Arena()
	arena, err := assets.LoadArena(name)
	if err == nil {
		return arena
	}
	log.Printf("[arena] unknown arena %q, falling back: %v", name, err)

	arenas, names, err := assets.LoadAllArenas()
	if err != nil || len(names) == 0 {
		log.Printf("[arena] no arenas available: %v", err)
		return nil
	}
	return arenas[names[0]]
}

func (as *ArenaScene) applySnapshot(snapshot esync.WorldSnapshot) {
	world := as.ecsWorld.World
	myNetID := as.netClient.NetworkID()

	clear(as.presentIDs)

	for _, ent := range snapshot {
		as.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			ctypes := componentTypesFromInstances(compData)
			entity = world.Create(ctypes...)

			entry := world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)

			if ent.Id != myNetID {
				entry.AddComponent(components.NetInterp)
			}
		}

		entry := world.Entry(entity)

		if ent.Id == myNetID {
			// Local player: reconcile prediction instead of overwriting
			as.reconcileLocal(entry, compData)
		} else {
			as.applyRemote(entry, compData)
		}
	}

	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !as.presentIDs[*id] {
			entry.Remove()
		}
	})
}

// applyRemote applies snapshot state to a remote entity. Positions feed the
// interpolator instead of being written directly.
func (as *ArenaScene) applyRemote(entry *donburi.Entry, compData []any) {
	var remoteVel *netcomponents.NetVelocityData
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetVelocityData); ok {
			remoteVel = &v
			break
		}
	}

	for _, data := range compData {
		v, ok := data.(netcomponents.NetPositionData)
		if !ok || !entry.HasComponent(components.NetInterp) {
			applyComponentToEntry(entry, data)
			continue
		}

		interp := components.NetInterp.Get(entry)
		if !interp.Initialized {
			// First snapshot: set position directly, no interpolation
			applyComponentToEntry(entry, data)
			interp.PrevX, interp.PrevY, interp.PrevZ = v.X, v.Y, v.Z
			interp.TargetX, interp.TargetY, interp.TargetZ = v.X, v.Y, v.Z
			interp.T = 1.0
			interp.Initialized = true
		} else {
			// Subsequent snapshots: interpolate from the current position
			pos := netcomponents.NetPosition.Get(entry)
			interp.PrevX, interp.PrevY, interp.PrevZ = pos.X, pos.Y, pos.Z
			interp.TargetX, interp.TargetY, interp.TargetZ = v.X, v.Y, v.Z
			interp.T = 0
			pos.FacingX = v.FacingX
			pos.FacingZ = v.FacingZ
		}
		if remoteVel != nil {
			interp.VelX = remoteVel.SpeedX
			interp.VelY = remoteVel.SpeedY
			interp.VelZ = remoteVel.SpeedZ
		}
	}
}

// reconcileLocal handles server state for the local player using prediction
// reconciliation. Instead of overwriting position, it compares with the
// predicted position and corrects if needed.
func (as *ArenaScene) reconcileLocal(entry *donburi.Entry, compData []any) {
	var serverPos *netcomponents.NetPositionData
	var serverState *netcomponents.NetPlayerStateData

	for _, data := range compData {
		switch v := data.(type) {
		case netcomponents.NetPositionData:
			cp := v
			serverPos = &cp
		case netcomponents.NetPlayerStateData:
			cp := v
			serverState = &cp
		default:
			applyComponentToEntry(entry, data)
		}
	}

	if serverState != nil {
		if !entry.HasComponent(netcomponents.NetPlayerState) {
			entry.AddComponent(netcomponents.NetPlayerState)
		}
		localState := netcomponents.NetPlayerState.Get(entry)
		localState.Hand = serverState.Hand
		localState.Lives = serverState.Lives
		localState.LastSequence = serverState.LastSequence
		localState.IsLocal = true
	}

	if serverPos == nil {
		return
	}
	if !entry.HasComponent(netcomponents.NetPosition) {
		entry.AddComponent(netcomponents.NetPosition)
		netcomponents.NetPosition.SetValue(entry, *serverPos)
	}

	localPos := netcomponents.NetPosition.Get(entry)
	localPos.Y = serverPos.Y

	lastAcked := uint32(0)
	if serverState != nil {
		lastAcked = serverState.LastSequence
	}
	as.prediction.Reconcile(lastAcked, serverPos.X, serverPos.Z, localPos)
}

func componentTypesFromInstances(compData []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range compData {
		switch data.(type) {
		case netcomponents.NetPositionData:
			ctypes = append(ctypes, netcomponents.NetPosition)
		case netcomponents.NetVelocityData:
			ctypes = append(ctypes, netcomponents.NetVelocity)
		case netcomponents.NetPlayerStateData:
			ctypes = append(ctypes, netcomponents.NetPlayerState)
		case netcomponents.NetBombData:
			ctypes = append(ctypes, netcomponents.NetBomb)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		if !entry.HasComponent(netcomponents.NetPosition) {
			entry.AddComponent(netcomponents.NetPosition)
		}
		netcomponents.NetPosition.SetValue(entry, v)
	case netcomponents.NetVelocityData:
		if !entry.HasComponent(netcomponents.NetVelocity) {
			entry.AddComponent(netcomponents.NetVelocity)
		}
		netcomponents.NetVelocity.SetValue(entry, v)
	case netcomponents.NetPlayerStateData:
		if !entry.HasComponent(netcomponents.NetPlayerState) {
			entry.AddComponent(netcomponents.NetPlayerState)
		}
		netcomponents.NetPlayerState.SetValue(entry, v)
	case netcomponents.NetBombData:
		if !entry.HasComponent(netcomponents.NetBomb) {
			entry.AddComponent(netcomponents.NetBomb)
		}
		netcomponents.NetBomb.SetValue(entry, v)
	}
}
