package gamemath

// ApplyDeadzone snaps values whose magnitude is below threshold to exactly zero.
func ApplyDeadzone(v, threshold float32) float32 {
	if v < threshold && v > -threshold {
		return 0
	}
	return v
}

// ClampRange clamps a value to [lo, hi].
func ClampRange(v, lo, hi float32) float32 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

// ClampUnit clamps a value to [-1, 1].
func ClampUnit(v float32) float32 {
	return ClampRange(v, -1, 1)
}
