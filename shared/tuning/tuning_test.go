package tuning

import "testing"

// The two throw profiles must stay distinct: right is the fast flat throw,
// left the slow high lob. Server flight and client prediction both key off
// these defaults until the replicated bomb overrides them.
func TestThrowProfileShapes(t *testing.T) {
	if Bomb.RightSpeed <= Bomb.LeftSpeed {
		t.Errorf("right throw should be faster than left: %f <= %f", Bomb.RightSpeed, Bomb.LeftSpeed)
	}
	if Bomb.RightUpwardBias >= Bomb.LeftUpwardBias {
		t.Errorf("right throw should be flatter than left: %f >= %f", Bomb.RightUpwardBias, Bomb.LeftUpwardBias)
	}
	if Bomb.Gravity <= 0 {
		t.Errorf("gravity magnitude must be positive, got %f", Bomb.Gravity)
	}
	if Bomb.FuseSeconds <= 0 {
		t.Errorf("fuse must be positive, got %f", Bomb.FuseSeconds)
	}
}

func TestPlayerTuningSane(t *testing.T) {
	if Player.Radius <= 0 || Player.MoveSpeed <= 0 {
		t.Fatalf("degenerate player tuning: radius %f, speed %f", Player.Radius, Player.MoveSpeed)
	}
	if Player.ThrowHeight <= Player.Radius {
		t.Errorf("throw origin %f should sit above the collision footprint %f", Player.ThrowHeight, Player.Radius)
	}
	if Player.StartingLives <= 0 {
		t.Errorf("starting lives must be positive, got %d", Player.StartingLives)
	}
}
