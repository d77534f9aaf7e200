package collide

import (
	"math"
	"testing"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
)

func TestSegmentHitsNearestBox(t *testing.T) {
	space := NewSpace()
	space.Add(
		NewBox(gamemath.Vec3{X: 10, Y: 0, Z: -1}, gamemath.Vec3{X: 12, Y: 5, Z: 1}, "solid"),
		NewBox(gamemath.Vec3{X: 4, Y: 0, Z: -1}, gamemath.Vec3{X: 6, Y: 5, Z: 1}, "solid"),
	)

	hit, ok := space.Segment(gamemath.Vec3{Y: 1}, gamemath.Vec3{X: 20, Y: 1}, "solid")
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.X-4) > 1e-9 || math.Abs(hit.Y-1) > 1e-9 {
		t.Errorf("hit = %v, want entry of nearer box at x=4", hit)
	}
}

func TestSegmentMiss(t *testing.T) {
	space := NewSpace()
	space.Add(NewBox(gamemath.Vec3{X: 10, Y: 0, Z: 10}, gamemath.Vec3{X: 12, Y: 5, Z: 12}, "solid"))

	if _, ok := space.Segment(gamemath.Vec3{}, gamemath.Vec3{X: 5}, "solid"); ok {
		t.Error("segment far from box reported a hit")
	}
}

func TestSegmentTagFilter(t *testing.T) {
	space := NewSpace()
	space.Add(NewBox(gamemath.Vec3{X: 1, Y: -1, Z: -1}, gamemath.Vec3{X: 2, Y: 1, Z: 1}, "player"))

	if _, ok := space.Segment(gamemath.Vec3{}, gamemath.Vec3{X: 5}, "solid"); ok {
		t.Error("tag filter let a non-matching box through")
	}
	if _, ok := space.Segment(gamemath.Vec3{}, gamemath.Vec3{X: 5}, "player"); !ok {
		t.Error("matching tag did not hit")
	}
	if _, ok := space.Segment(gamemath.Vec3{}, gamemath.Vec3{X: 5}); !ok {
		t.Error("no tags should match every box")
	}
}

func TestSegmentStartingInsideReportsStart(t *testing.T) {
	space := NewSpace()
	space.Add(NewBox(gamemath.Vec3{X: -1, Y: -1, Z: -1}, gamemath.Vec3{X: 1, Y: 1, Z: 1}, "solid"))

	from := gamemath.Vec3{X: 0.5}
	hit, ok := space.Segment(from, gamemath.Vec3{X: 5}, "solid")
	if !ok {
		t.Fatal("expected a hit when starting inside")
	}
	if hit != from {
		t.Errorf("hit = %v, want segment start %v", hit, from)
	}
}

func TestSegmentVerticalDrop(t *testing.T) {
	space := NewSpace()
	// Floor slab.
	space.Add(NewBox(gamemath.Vec3{X: -100, Y: -1, Z: -100}, gamemath.Vec3{X: 100, Y: 0, Z: 100}, "solid"))

	hit, ok := space.Segment(gamemath.Vec3{X: 3, Y: 5, Z: 2}, gamemath.Vec3{X: 3, Y: -2, Z: 2}, "solid")
	if !ok {
		t.Fatal("expected floor hit")
	}
	want := gamemath.Vec3{X: 3, Y: 0, Z: 2}
	if math.Abs(hit.Y-want.Y) > 1e-9 || hit.X != want.X || hit.Z != want.Z {
		t.Errorf("hit = %v, want %v", hit, want)
	}
}
