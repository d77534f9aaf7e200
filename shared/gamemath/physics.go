package gamemath

// ApplyFriction reduces speed toward zero by friction amount.
func ApplyFriction(speed, friction float64) float64 {
	if speed > friction {
		return speed - friction
	}
	if speed < -friction {
		return speed + friction
	}
	return 0
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}

// MoveDirection returns a normalized ground-plane direction from digital
// input state. Returns the zero vector when no direction is held.
func MoveDirection(left, right, up, down bool) Vec3 {
	var d Vec3
	if left {
		d.X -= 1
	}
	if right {
		d.X += 1
	}
	if up {
		d.Z -= 1
	}
	if down {
		d.Z += 1
	}
	return d.Normalized()
}
