package math

import "math"

// NormalizedTolerance is the default tolerance which is used to decide
// whether a quaternion still counts as unit-norm. The viewer uses this to
// decide when to offer a normalization action.
const NormalizedTolerance = 0.001

// Vec3 is a position or scale triple
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec4 is a quaternion in x/y/z/w component order where w is the scalar part
type Vec4 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Magnitude returns the Euclidean norm of the quaternion
func (q Vec4) Magnitude() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize rescales the quaternion to unit length. A zero quaternion has no
// direction, so the caller needs to check Magnitude before calling this.
func (q Vec4) Normalize() Vec4 {
	inv := 1.0 / q.Magnitude()
	return Vec4{
		X: q.X * inv,
		Y: q.Y * inv,
		Z: q.Z * inv,
		W: q.W * inv,
	}
}

// IsNormalized reports whether the quaternion norm is within the given
// tolerance of 1. Use NormalizedTolerance unless you have a reason not to.
func (q Vec4) IsNormalized(tolerance float64) bool {
	return math.Abs(q.Magnitude()-1.0) < tolerance
}

// Mul returns the Hamilton product q*r. As a rotation this applies r first
// and q second, matching the matrix product of the two rotations.
func (q Vec4) Mul(r Vec4) Vec4 {
	return Vec4{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}
