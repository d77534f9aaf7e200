package scenes

import (
	"image/color"
	"os"
	"sync"

	cfg "github.com/automoto/kaboomer-mp/config"
	"github.com/automoto/kaboomer-mp/network"
	"github.com/automoto/kaboomer-mp/systems"
	"github.com/automoto/kaboomer-mp/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneChanger allows scenes to trigger transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// ConnectScene is the title screen: enter a name and server address, then
// join.
type ConnectScene struct {
	sceneChanger SceneChanger
	connectUI    *ui.ConnectUI
	netClient    *network.Client
	once         sync.Once
}

func NewConnectScene(sc SceneChanger) *ConnectScene {
	return &ConnectScene{sceneChanger: sc}
}

func (cs *ConnectScene) Update() {
	cs.once.Do(cs.configure)

	cs.connectUI.Update()

	if cs.netClient == nil {
		return
	}

	switch cs.netClient.State() {
	case network.StateJoinedGame:
		cs.connectUI.SetStatus("Joined! Loading arena...")
		client := cs.netClient
		cs.netClient = nil
		cs.sceneChanger.ChangeScene(NewArenaScene(cs.sceneChanger, client))

	case network.StateError:
		errMsg := "Connection failed"
		if err := cs.netClient.LastError(); err != nil {
			errMsg = err.Error()
		}
		cs.connectUI.SetStatus(errMsg)
		cs.connectUI.SetConnecting(false)
		cs.netClient.Disconnect()
		cs.netClient = nil

	case network.StateConnecting:
		cs.connectUI.SetStatus("Connecting...")

	case network.StateConnected:
		cs.connectUI.SetStatus("Connected, joining game...")

	case network.StateDisconnected:
		cs.connectUI.SetStatus("Disconnected")
		cs.connectUI.SetConnecting(false)
		cs.netClient = nil
	}
}

func (cs *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	if cs.connectUI == nil {
		return
	}
	cs.connectUI.UI.Draw(screen)
}

func (cs *ConnectScene) configure() {
	cs.connectUI = ui.NewConnectUI(
		func(address, name string) { cs.onConnect(address, name) },
		func() { os.Exit(0) },
	)

	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		cs.connectUI.Prefill(saved.PlayerName, saved.ServerAddress)
		if saved.TrajectoryWidth > 0 {
			cfg.Trajectory.LineWidth = saved.TrajectoryWidth
		}
	}

	if cfg.Debug.SkipMenu {
		cs.onConnect(cs.connectUI.Address(), cs.connectUI.Name())
	}
}

func (cs *ConnectScene) onConnect(address, name string) {
	if cs.netClient != nil {
		cs.netClient.Disconnect()
	}

	cs.connectUI.SetStatus("Connecting...")
	cs.connectUI.SetConnecting(true)

	_ = systems.SaveSettings(&systems.SavedSettings{
		PlayerName:      name,
		ServerAddress:   address,
		TrajectoryWidth: cfg.Trajectory.LineWidth,
	})

	cs.netClient = network.NewClient()
	cs.netClient.Connect(address, cfg.Network.Version, name)
}
