// Package collide provides axis-aligned box collision queries in 3D for bomb
// flight. Player ground movement uses resolv on the XZ plane; this package
// exists because the predicted and simulated bomb arc leaves the ground
// plane, and segment casts against walls and floor have to happen in 3D.
package collide

import (
	"math"

	"github.com/automoto/kaboomer-mp/shared/gamemath"
)

// Box is an axis-aligned box with resolv-style string tags for filtering.
type Box struct {
	Min, Max gamemath.Vec3
	tags     map[string]struct{}
}

func NewBox(min, max gamemath.Vec3, tags ...string) *Box {
	b := &Box{Min: min, Max: max, tags: make(map[string]struct{}, len(tags))}
	for _, tag := range tags {
		b.tags[tag] = struct{}{}
	}
	return b
}

func (b *Box) HasTag(tag string) bool {
	_, ok := b.tags[tag]
	return ok
}

// Space holds the static obstruction geometry of an arena.
type Space struct {
	boxes []*Box
}

func NewSpace() *Space {
	return &Space{}
}

func (s *Space) Add(boxes ...*Box) {
	s.boxes = append(s.boxes, boxes...)
}

func (s *Space) Len() int {
	return len(s.boxes)
}

// Segment casts the segment from..to against every box carrying at least one
// of the given tags (no tags = every box) and returns the nearest entry
// point. Segments starting inside a box report the start point itself.
func (s *Space) Segment(from, to gamemath.Vec3, tags ...string) (gamemath.Vec3, bool) {
	dir := to.Sub(from)

	nearest := math.Inf(1)
	for _, box := range s.boxes {
		if !matchesAny(box, tags) {
			continue
		}
		if t, ok := segmentBox(from, dir, box); ok && t < nearest {
			nearest = t
		}
	}

	if math.IsInf(nearest, 1) {
		return gamemath.Vec3{}, false
	}
	return from.Add(dir.Scale(nearest)), true
}

func matchesAny(box *Box, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if box.HasTag(tag) {
			return true
		}
	}
	return false
}

// segmentBox is the slab method over the parametric segment from + dir*t,
// t in [0,1]. Returns the entry parameter.
func segmentBox(from, dir gamemath.Vec3, box *Box) (float64, bool) {
	tMin, tMax := 0.0, 1.0

	axes := [3][2]float64{
		{from.X, dir.X},
		{from.Y, dir.Y},
		{from.Z, dir.Z},
	}
	mins := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	maxs := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		origin, delta := axes[i][0], axes[i][1]
		if delta == 0 {
			if origin < mins[i] || origin > maxs[i] {
				return 0, false
			}
			continue
		}

		t1 := (mins[i] - origin) / delta
		t2 := (maxs[i] - origin) / delta
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}
