package gamemath

import "math"

// Axes6 is a vector over the six canonical ship movement axes: three linear
// (forward, right, upward) and three angular (turn right, tilt up, roll right).
type Axes6 struct {
	Forward   float32
	Right     float32
	Upward    float32
	TurnRight float32
	TiltUp    float32
	RollRight float32
}

// ForceAxis expresses how firing one thruster lines up with each ship axis.
type ForceAxis = Axes6

// IntendedVelocity is the motion a pilot asked for this tick.
type IntendedVelocity = Axes6

// ActualVelocity is the motion the physics state reports this tick.
type ActualVelocity = Axes6

// Array returns the components in canonical order.
func (a Axes6) Array() [6]float32 {
	return [6]float32{a.Forward, a.Right, a.Upward, a.TurnRight, a.TiltUp, a.RollRight}
}

// FromArray builds an Axes6 from components in canonical order.
func FromArray(v [6]float32) Axes6 {
	return Axes6{
		Forward:   v[0],
		Right:     v[1],
		Upward:    v[2],
		TurnRight: v[3],
		TiltUp:    v[4],
		RollRight: v[5],
	}
}

// Add returns the component-wise sum.
func (a Axes6) Add(b Axes6) Axes6 {
	return Axes6{
		Forward:   a.Forward + b.Forward,
		Right:     a.Right + b.Right,
		Upward:    a.Upward + b.Upward,
		TurnRight: a.TurnRight + b.TurnRight,
		TiltUp:    a.TiltUp + b.TiltUp,
		RollRight: a.RollRight + b.RollRight,
	}
}

// Sub returns the component-wise difference.
func (a Axes6) Sub(b Axes6) Axes6 {
	return Axes6{
		Forward:   a.Forward - b.Forward,
		Right:     a.Right - b.Right,
		Upward:    a.Upward - b.Upward,
		TurnRight: a.TurnRight - b.TurnRight,
		TiltUp:    a.TiltUp - b.TiltUp,
		RollRight: a.RollRight - b.RollRight,
	}
}

// Scale multiplies every component by s.
func (a Axes6) Scale(s float32) Axes6 {
	return Axes6{
		Forward:   a.Forward * s,
		Right:     a.Right * s,
		Upward:    a.Upward * s,
		TurnRight: a.TurnRight * s,
		TiltUp:    a.TiltUp * s,
		RollRight: a.RollRight * s,
	}
}

// Dot returns the six-dimensional dot product.
func (a Axes6) Dot(b Axes6) float32 {
	return a.Forward*b.Forward +
		a.Right*b.Right +
		a.Upward*b.Upward +
		a.TurnRight*b.TurnRight +
		a.TiltUp*b.TiltUp +
		a.RollRight*b.RollRight
}

// LenSq returns the squared magnitude.
func (a Axes6) LenSq() float32 {
	return a.Dot(a)
}

// Len returns the magnitude.
func (a Axes6) Len() float32 {
	return float32(math.Sqrt(float64(a.LenSq())))
}

// IsZero reports whether every component is exactly zero.
func (a Axes6) IsZero() bool {
	return a == Axes6{}
}

// Normalize returns a unit vector in the same direction, or the zero vector
// when a has no magnitude.
func (a Axes6) Normalize() Axes6 {
	l := a.Len()
	if l == 0 {
		return Axes6{}
	}
	return a.Scale(1 / l)
}

// Clamp clamps every component to [lo, hi].
func (a Axes6) Clamp(lo, hi float32) Axes6 {
	return Axes6{
		Forward:   ClampRange(a.Forward, lo, hi),
		Right:     ClampRange(a.Right, lo, hi),
		Upward:    ClampRange(a.Upward, lo, hi),
		TurnRight: ClampRange(a.TurnRight, lo, hi),
		TiltUp:    ClampRange(a.TiltUp, lo, hi),
		RollRight: ClampRange(a.RollRight, lo, hi),
	}
}

// Similarity is the cosine similarity of a and b, clamped to [-1, 1]. It is 0
// when either operand has zero magnitude.
func Similarity(a, b Axes6) float32 {
	na, nb := a.Normalize(), b.Normalize()
	if na.IsZero() || nb.IsZero() {
		return 0
	}
	return ClampUnit(na.Dot(nb))
}
