package core

import (
	"log"
	"sync"

	"github.com/automoto/kaboomer-mp/shared/messages"
	"github.com/automoto/kaboomer-mp/shared/netcomponents"
	"github.com/automoto/kaboomer-mp/shared/tuning"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// playerSession survives a dropped connection for a short while so a
// rejoining client keeps its lives.
type playerSession struct {
	Token string
	Lives int
}

// Server manages the authoritative game state and client connections.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	config    *Config

	activeArena *ServerArena
	bomb        *BombPhysics

	mu             sync.RWMutex
	clientEntities map[*router.NetworkClient]donburi.Entity
	playerPhysics  map[donburi.Entity]*PlayerPhysics
	sessions       map[string]*playerSession // reconnect token -> session
	entityTokens   map[donburi.Entity]string
	joinCount      int

	// Commands queued by router callbacks, drained at the top of each tick.
	pendingMu sync.Mutex
	pending   []func()
}

// NewServer creates a game server for the configured arena.
func NewServer(config *Config) (*Server, error) {
	arena, err := LoadArena(config.Arena)
	if err != nil {
		return nil, err
	}

	world := donburi.NewWorld()
	s := &Server{
		world:          world,
		config:         config,
		activeArena:    arena,
		clientEntities: make(map[*router.NetworkClient]donburi.Entity),
		playerPhysics:  make(map[donburi.Entity]*PlayerPhysics),
		sessions:       make(map[string]*playerSession),
		entityTokens:   make(map[donburi.Entity]string),
	}
	s.loop = NewGameLoop(s, config.TickRate)

	srvsync.UseEsync(world)
	s.setupRouterCallbacks()
	s.spawnBomb()

	return s, nil
}

// Start begins the server on the configured port. Blocks.
func (s *Server) Start() error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(s.config.Port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

// setupRouterCallbacks registers the network handlers. Router callbacks run
// on per-connection goroutines, so anything touching the world, the physics
// map, or the bomb is queued and applied on the loop goroutine instead of
// mutating mid-tick.
func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		s.queueCommand(func() { s.onDisconnect(client, err) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.queueCommand(func() { s.onJoinRequest(client, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.queueCommand(func() { s.onPlayerInput(client, input) })
	})

	router.On(func(client *router.NetworkClient, _ messages.SwapHandsRequest) {
		s.queueCommand(func() {
			if entity, ok := s.lookupEntity(client); ok {
				s.onSwapRequest(entity)
			}
		})
	})

	router.On(func(client *router.NetworkClient, _ messages.ThrowRequest) {
		s.queueCommand(func() {
			if entity, ok := s.lookupEntity(client); ok {
				s.onThrowRequest(entity)
			}
		})
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Client error: %v", err)
	})
}

// queueCommand defers a state mutation to the start of the next tick.
func (s *Server) queueCommand(cmd func()) {
	s.pendingMu.Lock()
	s.pending = append(s.pending, cmd)
	s.pendingMu.Unlock()
}

// runQueuedCommands applies every command queued since the previous tick,
// in arrival order. Called only from the loop goroutine.
func (s *Server) runQueuedCommands() {
	s.pendingMu.Lock()
	cmds := s.pending
	s.pending = nil
	s.pendingMu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.config.Version != "" && req.Version != s.config.Version {
		_ = client.SendMessage(messages.JoinRejected{
			Reason: "version mismatch, server requires " + s.config.Version,
		})
		return
	}

	s.mu.Lock()
	if len(s.clientEntities) >= s.config.MaxPlayers {
		s.mu.Unlock()
		_ = client.SendMessage(messages.JoinRejected{Reason: "server full"})
		return
	}

	lives := tuning.Player.StartingLives
	token := req.ReconnectToken
	if session, ok := s.sessions[token]; ok {
		lives = session.Lives
		delete(s.sessions, token)
	} else {
		token = uuid.NewString()
	}

	spawnIndex := s.joinCount
	s.joinCount++
	s.mu.Unlock()

	entity := s.spawnPlayer(spawnIndex, lives)

	s.mu.Lock()
	s.clientEntities[client] = entity
	s.sessions[token] = &playerSession{Token: token, Lives: lives}
	s.entityTokens[entity] = token
	s.mu.Unlock()

	nid := s.networkIDOf(entity)

	err := client.SendMessage(messages.JoinAccepted{
		NetworkID:      esync.NetworkId(nid),
		ReconnectToken: token,
		ServerName:     s.config.Name,
		TickRate:       s.config.TickRate,
		Arena:          s.activeArena.Data.Name,
	})
	if err != nil {
		log.Printf("Failed to send join accept: %v", err)
		return
	}

	if s.world.Valid(entity) {
		pos := netcomponents.NetPosition.Get(s.world.Entry(entity))
		s.broadcastEvent(messages.SpawnEvent{
			NetworkID:  nid,
			EntityType: "player",
			X:          pos.X,
			Y:          pos.Y,
			Z:          pos.Z,
		})
	}

	log.Printf("Player %q joined (networkID=%d, spawn=%d)", req.PlayerName, nid, spawnIndex)
}

// spawnPlayer creates a replicated player entity with server-side physics.
func (s *Server) spawnPlayer(spawnIndex, lives int) donburi.Entity {
	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
	)
	entry := s.world.Entry(entity)

	x, z := s.activeArena.PlayerSpawn(spawnIndex)
	netcomponents.NetPosition.Set(entry, &netcomponents.NetPositionData{
		X:       x,
		Z:       z,
		FacingZ: 1,
	})
	netcomponents.NetVelocity.Set(entry, &netcomponents.NetVelocityData{})
	netcomponents.NetPlayerState.Set(entry, &netcomponents.NetPlayerStateData{
		Lives: lives,
	})

	err := srvsync.NetworkSync(s.world, &entity,
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
	)
	if err != nil {
		log.Printf("Failed to setup network sync for player: %v", err)
	}

	pp := newPlayerPhysics(s.activeArena, x, z)
	pp.SpawnIndex = spawnIndex

	s.mu.Lock()
	s.playerPhysics[entity] = pp
	s.mu.Unlock()

	return entity
}

func (s *Server) onDisconnect(client *router.NetworkClient, err error) {
	if err != nil {
		log.Printf("Client %s disconnected with error: %v", client.Id(), err)
	} else {
		log.Printf("Client %s disconnected", client.Id())
	}

	s.mu.Lock()
	entity, exists := s.clientEntities[client]
	if exists {
		delete(s.clientEntities, client)
	}
	var pp *PlayerPhysics
	if exists {
		pp = s.playerPhysics[entity]
		delete(s.playerPhysics, entity)
	}
	s.mu.Unlock()

	if !exists {
		return
	}

	// Preserve remaining lives for a reconnect
	if s.world.Valid(entity) {
		entry := s.world.Entry(entity)
		state := netcomponents.NetPlayerState.Get(entry)
		s.mu.Lock()
		if token, ok := s.entityTokens[entity]; ok {
			if session, ok := s.sessions[token]; ok {
				session.Lives = state.Lives
			}
			delete(s.entityTokens, entity)
		}
		s.mu.Unlock()
	}
	if pp != nil {
		removePlayerPhysics(s.activeArena, pp)
	}

	nid := s.networkIDOf(entity)

	if s.world.Valid(entity) {
		s.world.Remove(entity)
	}

	if nid != 0 {
		s.broadcastEvent(messages.DespawnEvent{NetworkID: nid})
	}
}

func (s *Server) onPlayerInput(client *router.NetworkClient, input messages.PlayerInput) {
	entity, ok := s.lookupEntity(client)
	if !ok || !s.world.Valid(entity) {
		return
	}

	s.mu.RLock()
	pp := s.playerPhysics[entity]
	s.mu.RUnlock()
	if pp == nil {
		return
	}

	// Reject stale or replayed sequences
	if input.Sequence <= pp.LastInputSeq && pp.LastInputSeq != 0 {
		return
	}

	pp.MoveX = clampUnit(input.MoveX)
	pp.MoveZ = clampUnit(input.MoveZ)
	if input.FacingX != 0 || input.FacingZ != 0 {
		pp.FacingX = input.FacingX
		pp.FacingZ = input.FacingZ
	}
	pp.LastInputSeq = input.Sequence
}

func (s *Server) lookupEntity(client *router.NetworkClient) (donburi.Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entity, ok := s.clientEntities[client]
	return entity, ok
}

// broadcastEvent sends a message to every joined client.
func (s *Server) broadcastEvent(msg any) {
	s.mu.RLock()
	clients := make([]*router.NetworkClient, 0, len(s.clientEntities))
	for client := range s.clientEntities {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		if err := client.SendMessage(msg); err != nil {
			log.Printf("Failed to broadcast to %s: %v", client.Id(), err)
		}
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of connected players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clientEntities)
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
