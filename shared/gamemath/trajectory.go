package gamemath

// ThrowProfile shapes the initial velocity of a thrown bomb. Which profile
// applies depends on the hand carrying it: the right hand throws a fast flat
// arc, the left hand lobs.
type ThrowProfile struct {
	Speed      float64
	UpwardBias float64
}

// ThrowVelocity returns the launch velocity for a throw aimed along forward.
// forward is expected to be normalized; the profile must be re-read from the
// carried bomb on every call because the carrying hand can change mid-aim.
func ThrowVelocity(forward, up Vec3, p ThrowProfile) Vec3 {
	return forward.Scale(p.Speed).Add(up.Scale(p.UpwardBias))
}

// SegmentTest checks the segment from..to against the environment and
// returns the nearest obstruction point, if any.
type SegmentTest func(from, to Vec3) (Vec3, bool)

// PredictArc samples the ballistic path of a projectile launched from origin
// with the given velocity under constant gravity. Each sample is the
// closed-form position at t = i*timeStep measured from the original origin
// rather than an Euler step from the previous sample, so error does not
// accumulate along the arc. The segment between consecutive samples is
// checked with test (nil disables obstruction testing); the first hit
// truncates the arc with the hit point as the final element.
//
// The result always starts at origin. Without a hit it has maxSamples+1
// points and the last point is the prediction horizon, not an impact.
func PredictArc(origin, velocity, gravity Vec3, timeStep float64, maxSamples int, test SegmentTest) []Vec3 {
	points := make([]Vec3, 0, maxSamples+1)
	points = append(points, origin)

	last := origin
	for i := 1; i <= maxSamples; i++ {
		t := float64(i) * timeStep
		next := origin.
			Add(velocity.Scale(t)).
			Add(gravity.Scale(0.5 * t * t))

		if test != nil {
			if hit, ok := test(last, next); ok {
				return append(points, hit)
			}
		}

		points = append(points, next)
		last = next
	}

	return points
}
