package leveldata

import (
	"testing"
	"testing/fstest"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
)

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="20" height="15" tilewidth="2" tileheight="2">
 <properties>
  <property name="wallHeight" type="float" value="6"/>
 </properties>
 <objectgroup name="Walls">
  <object id="1" x="0" y="0" width="40" height="2"/>
  <object id="2" x="10" y="10" width="4" height="6"/>
 </objectgroup>
 <objectgroup name="PlayerSpawn">
  <object id="3" x="30" y="20">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
  </object>
  <object id="4" x="5" y="5">
   <properties>
    <property name="spawnIndex" type="int" value="0"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup name="BombSpawn">
  <object id="5" x="20" y="15"/>
 </objectgroup>
</map>
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"arenas/yard.tmx": &fstest.MapFile{Data: []byte(testTMX)},
	}
}

func TestLoadArena(t *testing.T) {
	arena, err := LoadArena(testFS(), "arenas/yard.tmx")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}

	if arena.Name != "yard" {
		t.Errorf("Name = %q, want yard", arena.Name)
	}
	if arena.Width != 40 || arena.Depth != 30 {
		t.Errorf("size = %gx%g, want 40x30", arena.Width, arena.Depth)
	}
	if arena.WallHeight != 6 {
		t.Errorf("WallHeight = %g, want 6 (from map property)", arena.WallHeight)
	}
	if len(arena.Walls) != 2 {
		t.Fatalf("walls = %d, want 2", len(arena.Walls))
	}
	if w := arena.Walls[1]; w.X != 10 || w.Z != 10 || w.W != 4 || w.D != 6 {
		t.Errorf("wall[1] = %+v, want {10 10 4 6}", w)
	}

	// Spawns sorted by index.
	if len(arena.PlayerSpawns) != 2 || arena.PlayerSpawns[0].Index != 0 || arena.PlayerSpawns[1].Index != 1 {
		t.Errorf("player spawns not sorted by index: %+v", arena.PlayerSpawns)
	}
	if len(arena.BombSpawns) != 1 || arena.BombSpawns[0].X != 20 {
		t.Errorf("bomb spawns = %+v, want one at x=20", arena.BombSpawns)
	}
}

func TestLoadAllArenas(t *testing.T) {
	arenas, names, err := LoadAllArenas(testFS(), "arenas")
	if err != nil {
		t.Fatalf("LoadAllArenas: %v", err)
	}
	if len(names) != 1 || names[0] != "yard" {
		t.Fatalf("names = %v, want [yard]", names)
	}
	if arenas["yard"] == nil {
		t.Fatal("missing yard arena")
	}
}

func TestBuildSpace(t *testing.T) {
	arena, err := LoadArena(testFS(), "arenas/yard.tmx")
	if err != nil {
		t.Fatalf("LoadArena: %v", err)
	}

	space := BuildSpace(arena)
	if space.Len() != 3 { // floor + two walls
		t.Fatalf("space has %d boxes, want 3", space.Len())
	}

	// Wall at (10,10)-(14,16) extruded to height 6 blocks a low shot...
	if _, ok := space.Segment(gamemath.Vec3{X: 12, Y: 2, Z: 20}, gamemath.Vec3{X: 12, Y: 2, Z: 5}, TagSolid); !ok {
		t.Error("low segment through wall did not hit")
	}
	// ...but not one above wall height.
	hit, ok := space.Segment(gamemath.Vec3{X: 12, Y: 7, Z: 20}, gamemath.Vec3{X: 12, Y: 7, Z: 12}, TagSolid)
	if ok {
		t.Errorf("segment above wall height hit at %v", hit)
	}

	// A falling segment ends on the floor.
	hit, ok = space.Segment(gamemath.Vec3{X: 20, Y: 3, Z: 20}, gamemath.Vec3{X: 20, Y: -1, Z: 20}, TagFloor)
	if !ok || hit.Y != 0 {
		t.Errorf("floor hit = %v ok=%v, want y=0 hit", hit, ok)
	}
}
