package gamemath

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Z-b.Z) < eps
}

func TestPredictArcNoCollisionBound(t *testing.T) {
	origin := Vec3{0, 1, 0}
	velocity := Vec3{5, 2, 0}
	gravity := Vec3{0, -9.8, 0}

	points := PredictArc(origin, velocity, gravity, 0.1, 50, nil)

	if len(points) != 51 {
		t.Fatalf("expected 51 points, got %d", len(points))
	}
	if points[0] != origin {
		t.Errorf("first point = %v, want origin %v", points[0], origin)
	}

	// Last point must equal the closed-form position at t = 50*0.1.
	tEnd := 5.0
	want := origin.Add(velocity.Scale(tEnd)).Add(gravity.Scale(0.5 * tEnd * tEnd))
	if !vecNear(points[50], want, tolerance) {
		t.Errorf("last point = %v, want %v", points[50], want)
	}

	// Sample 25 from the design doc: (12.5, 2.1875, 0) at t = 2.5.
	if !vecNear(points[25], Vec3{12.5, 2.1875, 0}, 1e-6) {
		t.Errorf("point 25 = %v, want (12.5, 2.1875, 0)", points[25])
	}
}

func TestPredictArcDeterminism(t *testing.T) {
	origin := Vec3{1, 2, 3}
	velocity := Vec3{-4, 6, 2}
	gravity := Vec3{0, -9.8, 0}

	never := func(from, to Vec3) (Vec3, bool) { return Vec3{}, false }

	first := PredictArc(origin, velocity, gravity, 1.0/60.0, 120, never)
	for run := 0; run < 3; run++ {
		again := PredictArc(origin, velocity, gravity, 1.0/60.0, 120, never)
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("run %d: point %d = %v, want %v", run, i, again[i], first[i])
			}
		}
	}
}

func TestPredictArcTruncatesAtFirstHit(t *testing.T) {
	origin := Vec3{0, 1, 0}
	velocity := Vec3{5, 2, 0}
	gravity := Vec3{0, -9.8, 0}
	hitPoint := Vec3{2.0, 0.5, 0}

	calls := 0
	test := func(from, to Vec3) (Vec3, bool) {
		calls++
		if calls == 3 { // segment ending at sample index 3
			return hitPoint, true
		}
		return Vec3{}, false
	}

	points := PredictArc(origin, velocity, gravity, 0.1, 50, test)

	if len(points) != 4 {
		t.Fatalf("expected 4 points (origin, p1, p2, hit), got %d", len(points))
	}
	if points[0] != origin {
		t.Errorf("first point = %v, want %v", points[0], origin)
	}
	if points[3] != hitPoint {
		t.Errorf("last point = %v, want hit point %v", points[3], hitPoint)
	}
	if calls != 3 {
		t.Errorf("collision test ran %d times, want 3 (no segments past the hit)", calls)
	}
}

func TestPredictArcSegmentsChainFromLastEmitted(t *testing.T) {
	origin := Vec3{0, 0, 0}
	velocity := Vec3{10, 0, 0}

	var segments [][2]Vec3
	test := func(from, to Vec3) (Vec3, bool) {
		segments = append(segments, [2]Vec3{from, to})
		return Vec3{}, false
	}

	points := PredictArc(origin, velocity, Vec3{}, 0.5, 4, test)

	if len(segments) != 4 {
		t.Fatalf("expected 4 segment tests, got %d", len(segments))
	}
	for i, seg := range segments {
		if seg[0] != points[i] {
			t.Errorf("segment %d starts at %v, want previous sample %v", i, seg[0], points[i])
		}
		if seg[1] != points[i+1] {
			t.Errorf("segment %d ends at %v, want next sample %v", i, seg[1], points[i+1])
		}
	}
}

func TestThrowVelocity(t *testing.T) {
	cases := []struct {
		name    string
		forward Vec3
		profile ThrowProfile
		want    Vec3
	}{
		{
			name:    "flat right-hand throw",
			forward: Vec3{1, 0, 0},
			profile: ThrowProfile{Speed: 12, UpwardBias: 3},
			want:    Vec3{12, 3, 0},
		},
		{
			name:    "left-hand lob",
			forward: Vec3{0, 0, -1},
			profile: ThrowProfile{Speed: 7, UpwardBias: 8},
			want:    Vec3{0, 8, -7},
		},
		{
			name:    "zero profile",
			forward: Vec3{1, 0, 0},
			profile: ThrowProfile{},
			want:    Vec3{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ThrowVelocity(tc.forward, Up, tc.profile)
			if !vecNear(got, tc.want, tolerance) {
				t.Errorf("ThrowVelocity = %v, want %v", got, tc.want)
			}
		})
	}
}
