package core

import (
	"sync"
	"testing"
	"time"
)

// Joins arriving from connection goroutines must not touch the physics map
// while the loop iterates it; they are queued and applied at the top of a
// tick instead.
func TestJoinWhileLoopTicksIsAppliedOnTheTick(t *testing.T) {
	s := newTestServer(t)
	go s.loop.Run()
	defer s.loop.Stop()

	const joins = 8
	var wg sync.WaitGroup
	for i := 0; i < joins; i++ {
		wg.Add(1)
		go func(spawn int) {
			defer wg.Done()
			s.queueCommand(func() { s.spawnPlayer(spawn, 3) })
		}(i)
	}
	wg.Wait()

	deadline := time.Now().Add(2 * time.Second)
	for {
		s.mu.RLock()
		n := len(s.playerPhysics)
		s.mu.RUnlock()
		if n == joins {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("queued joins not applied: %d of %d players", n, joins)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Commands run in arrival order before the tick's physics, so a swap queued
// after a throw sees the bomb already in flight and is dropped.
func TestQueuedCommandsRunInArrivalOrder(t *testing.T) {
	s := newTestServer(t)
	holder := s.spawnPlayer(0, 3)
	s.bomb.Held = true
	s.bomb.Holder = holder
	s.bomb.OnRightSide = true

	s.queueCommand(func() { s.onThrowRequest(holder) })
	s.queueCommand(func() { s.onSwapRequest(holder) })
	s.loop.step()

	if s.bomb.Held {
		t.Fatal("throw should have launched the bomb")
	}
	if !s.bomb.OnRightSide {
		t.Error("swap after throw should have been dropped")
	}
}
