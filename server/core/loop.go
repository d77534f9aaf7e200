package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// GameLoop drives the authoritative simulation at a fixed tick rate. Each
// tick first applies the commands queued by router callbacks, then advances
// player movement and the bomb, then replicates world state to every
// connected client. All world mutation happens on this goroutine.
type GameLoop struct {
	server   *Server
	tickRate int
	tick     uint64
	stopChan chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	interval := time.Second / time.Duration(g.tickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Printf("Game loop stopped after %d ticks", g.tick)
			return
		case <-ticker.C:
			start := time.Now()
			g.step()
			if elapsed := time.Since(start); elapsed > interval {
				log.Printf("Tick %d overran: %s (budget %s)", g.tick, elapsed, interval)
			}
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) step() {
	g.tick++
	g.server.runQueuedCommands()
	g.server.updatePhysics()
	g.server.updateBomb()

	if err := srvsync.DoSync(); err != nil {
		log.Printf("Sync error: %v", err)
	}
}
