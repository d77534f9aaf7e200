package gamemath

import (
	"math"
	"testing"
)

func TestVec3Normalized(t *testing.T) {
	v := Vec3{3, 4, 0}.Normalized()
	if math.Abs(v.Length()-1) > tolerance {
		t.Errorf("normalized length = %f, want 1", v.Length())
	}
	if !vecNear(v, Vec3{0.6, 0.8, 0}, tolerance) {
		t.Errorf("normalized = %v, want (0.6, 0.8, 0)", v)
	}

	if got := (Vec3{}).Normalized(); got != (Vec3{}) {
		t.Errorf("normalizing zero vector = %v, want zero", got)
	}
}

func TestMoveDirectionDiagonalIsUnit(t *testing.T) {
	d := MoveDirection(false, true, true, false)
	if math.Abs(d.Length()-1) > tolerance {
		t.Errorf("diagonal direction length = %f, want 1", d.Length())
	}

	if got := MoveDirection(true, true, false, false); got != (Vec3{}) {
		t.Errorf("opposing inputs = %v, want zero", got)
	}
}
