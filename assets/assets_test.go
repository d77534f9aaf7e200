package assets

import "testing"

func TestLoadEmbeddedArenas(t *testing.T) {
	arenas, names, err := LoadAllArenas()
	if err != nil {
		t.Fatalf("LoadAllArenas: %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("expected 2 embedded arenas, got %v", names)
	}

	for name, arena := range arenas {
		if len(arena.Walls) == 0 {
			t.Errorf("%s: no walls", name)
		}
		if len(arena.PlayerSpawns) < 4 {
			t.Errorf("%s: expected at least 4 player spawns, got %d", name, len(arena.PlayerSpawns))
		}
		if len(arena.BombSpawns) == 0 {
			t.Errorf("%s: no bomb spawn", name)
		}
		if arena.WallHeight <= 0 {
			t.Errorf("%s: wall height %f", name, arena.WallHeight)
		}
	}
}

func TestLoadCourtyard(t *testing.T) {
	arena, err := LoadArena("courtyard")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}
	if arena.Width != 24 || arena.Depth != 18 {
		t.Fatalf("unexpected dimensions %fx%f", arena.Width, arena.Depth)
	}

	// Spawns must sit inside the walled border.
	for _, sp := range arena.PlayerSpawns {
		if sp.X <= 1 || sp.X >= arena.Width-1 || sp.Z <= 1 || sp.Z >= arena.Depth-1 {
			t.Errorf("spawn %d at (%f, %f) outside playable area", sp.Index, sp.X, sp.Z)
		}
	}
}

func TestLoadArenaUnknown(t *testing.T) {
	if _, err := LoadArena("does-not-exist"); err == nil {
		t.Fatal("expected error for unknown arena")
	}
}
