package network

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/kaboomer-mp/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// Reconnect tokens survive the Client that earned them, keyed by server
// address, so a fresh connection to the same server resumes the old
// session's lives.
var (
	tokenMu       sync.Mutex
	sessionTokens = map[string]string{}
)

func savedToken(address string) string {
	tokenMu.Lock()
	defer tokenMu.Unlock()
	return sessionTokens[address]
}

func saveToken(address, token string) {
	tokenMu.Lock()
	defer tokenMu.Unlock()
	sessionTokens[address] = token
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state          ClientState
	lastError      error
	networkID      esync.NetworkId
	reconnectToken string
	serverName     string
	tickRate       int
	arena          string
	conn           *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	throwCh   chan messages.BombThrowEvent
	swapCh    chan messages.BombSwapEvent
	pickupCh  chan messages.BombPickupEvent
	explodeCh chan messages.BombExplodeEvent
	spawnCh   chan messages.SpawnEvent
	despawnCh chan messages.DespawnEvent
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		throwCh:    make(chan messages.BombThrowEvent, 4),
		swapCh:     make(chan messages.BombSwapEvent, 4),
		pickupCh:   make(chan messages.BombPickupEvent, 4),
		explodeCh:  make(chan messages.BombExplodeEvent, 4),
		spawnCh:    make(chan messages.SpawnEvent, 8),
		despawnCh:  make(chan messages.DespawnEvent, 8),
	}
}

// Connect dials the server in a background goroutine and initiates the join handshake.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	token := c.reconnectToken
	if token == "" {
		token = savedToken(address)
	}
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		payload, err := router.Serialize(messages.JoinRequest{
			Version:        version,
			PlayerName:     playerName,
			ReconnectToken: token,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to serialize join request: %w", err))
			return
		}

		c.mu.RLock()
		conn := c.conn
		c.mu.RUnlock()

		if conn != nil {
			if err := conn.Write(context.Background(), websocket.MessageBinary, payload); err != nil {
				c.setError(fmt.Errorf("failed to send join request: %w", err))
			}
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] join accepted: networkID=%d server=%s tickRate=%d arena=%s",
			msg.NetworkID, msg.ServerName, msg.TickRate, msg.Arena)
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.reconnectToken = msg.ReconnectToken
		saveToken(address, msg.ReconnectToken)
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.arena = msg.Arena
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.BombThrowEvent) {
		select {
		case c.throwCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.BombSwapEvent) {
		select {
		case c.swapCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.BombPickupEvent) {
		select {
		case c.pickupCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.BombExplodeEvent) {
		select {
		case c.explodeCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.SpawnEvent) {
		select {
		case c.spawnCh <- evt:
		default:
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.DespawnEvent) {
		select {
		case c.despawnCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

func (c *Client) Arena() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.arena
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// RequestSwap asks the authority to flip the carrying hand. Fire-and-forget:
// the reply, if any, arrives as replicated bomb state.
func (c *Client) RequestSwap() error {
	return c.SendMessage(messages.SwapHandsRequest{})
}

// RequestThrow asks the authority to launch the carried bomb.
func (c *Client) RequestThrow() error {
	return c.SendMessage(messages.ThrowRequest{})
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainThrowEvents returns all pending throw events, non-blocking.
func (c *Client) DrainThrowEvents() []messages.BombThrowEvent {
	return drainChan(c.throwCh)
}

// DrainSwapEvents returns all pending swap events, non-blocking.
func (c *Client) DrainSwapEvents() []messages.BombSwapEvent {
	return drainChan(c.swapCh)
}

// DrainPickupEvents returns all pending pickup events, non-blocking.
func (c *Client) DrainPickupEvents() []messages.BombPickupEvent {
	return drainChan(c.pickupCh)
}

// DrainExplodeEvents returns all pending explode events, non-blocking.
func (c *Client) DrainExplodeEvents() []messages.BombExplodeEvent {
	return drainChan(c.explodeCh)
}

// DrainSpawnEvents returns all pending spawn notices, non-blocking.
func (c *Client) DrainSpawnEvents() []messages.SpawnEvent {
	return drainChan(c.spawnCh)
}

// DrainDespawnEvents returns all pending despawn notices, non-blocking.
func (c *Client) DrainDespawnEvents() []messages.DespawnEvent {
	return drainChan(c.despawnCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case evt := <-ch:
			out = append(out, evt)
		default:
			return out
		}
	}
}
