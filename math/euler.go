package math

import "math"

// RotationOrder selects the axis sequence for an Euler angle triple. The
// rotations are intrinsic: each one is applied about the already rotated
// axis of the previous step.
type RotationOrder string

// The six supported rotation orders
const (
	OrderXYZ RotationOrder = "XYZ"
	OrderXZY RotationOrder = "XZY"
	OrderYXZ RotationOrder = "YXZ"
	OrderYZX RotationOrder = "YZX"
	OrderZXY RotationOrder = "ZXY"
	OrderZYX RotationOrder = "ZYX"
)

// ParseRotationOrder maps an order string onto a RotationOrder. The second
// return value is false for anything but the six supported orders.
func ParseRotationOrder(s string) (RotationOrder, bool) {
	switch RotationOrder(s) {
	case OrderXYZ, OrderXZY, OrderYXZ, OrderYZX, OrderZXY, OrderZYX:
		return RotationOrder(s), true
	}
	return OrderXYZ, false
}

// EulerToQuaternion composes the intrinsic rotations about x, y and z (in
// radians) in the given order into a quaternion. Unknown orders return the
// identity quaternion.
func EulerToQuaternion(x, y, z float64, order RotationOrder) Vec4 {
	c1, s1 := math.Cos(x/2), math.Sin(x/2)
	c2, s2 := math.Cos(y/2), math.Sin(y/2)
	c3, s3 := math.Cos(z/2), math.Sin(z/2)

	switch order {
	case OrderXYZ:
		return Vec4{
			X: s1*c2*c3 + c1*s2*s3,
			Y: c1*s2*c3 - s1*c2*s3,
			Z: c1*c2*s3 + s1*s2*c3,
			W: c1*c2*c3 - s1*s2*s3,
		}
	case OrderYXZ:
		return Vec4{
			X: s1*c2*c3 + c1*s2*s3,
			Y: c1*s2*c3 - s1*c2*s3,
			Z: c1*c2*s3 - s1*s2*c3,
			W: c1*c2*c3 + s1*s2*s3,
		}
	case OrderZXY:
		return Vec4{
			X: s1*c2*c3 - c1*s2*s3,
			Y: c1*s2*c3 + s1*c2*s3,
			Z: c1*c2*s3 + s1*s2*c3,
			W: c1*c2*c3 - s1*s2*s3,
		}
	case OrderZYX:
		return Vec4{
			X: s1*c2*c3 - c1*s2*s3,
			Y: c1*s2*c3 + s1*c2*s3,
			Z: c1*c2*s3 - s1*s2*c3,
			W: c1*c2*c3 + s1*s2*s3,
		}
	case OrderYZX:
		return Vec4{
			X: s1*c2*c3 + c1*s2*s3,
			Y: c1*s2*c3 + s1*c2*s3,
			Z: c1*c2*s3 - s1*s2*c3,
			W: c1*c2*c3 - s1*s2*s3,
		}
	case OrderXZY:
		return Vec4{
			X: s1*c2*c3 - c1*s2*s3,
			Y: c1*s2*c3 - s1*c2*s3,
			Z: c1*c2*s3 + s1*s2*c3,
			W: c1*c2*c3 + s1*s2*s3,
		}
	}
	return Vec4{X: 0, Y: 0, Z: 0, W: 1}
}

// gimbalEps is the threshold on the critical matrix entry beyond which the
// extraction switches to the gimbal lock branch
const gimbalEps = 0.9999999

// QuaternionToEuler extracts the x/y/z angles (radians) of the rotation for
// the given order. At gimbal lock one conventional solution is returned; it
// represents the same rotation but need not match the triple the quaternion
// was built from. Unknown orders return all zeros.
func QuaternionToEuler(q Vec4, order RotationOrder) (x, y, z float64) {
	m := NewTransformMatrix(Pose{Rotation: q})

	m11, m21, m31 := m[0], m[1], m[2]
	m12, m22, m32 := m[4], m[5], m[6]
	m13, m23, m33 := m[8], m[9], m[10]

	switch order {
	case OrderXYZ:
		y = math.Asin(clamp(m13, -1, 1))
		if math.Abs(m13) < gimbalEps {
			x = math.Atan2(-m23, m33)
			z = math.Atan2(-m12, m11)
		} else {
			x = math.Atan2(m32, m22)
			z = 0
		}
	case OrderYXZ:
		x = math.Asin(-clamp(m23, -1, 1))
		if math.Abs(m23) < gimbalEps {
			y = math.Atan2(m13, m33)
			z = math.Atan2(m21, m22)
		} else {
			y = math.Atan2(-m31, m11)
			z = 0
		}
	case OrderZXY:
		x = math.Asin(clamp(m32, -1, 1))
		if math.Abs(m32) < gimbalEps {
			y = math.Atan2(-m31, m33)
			z = math.Atan2(-m12, m22)
		} else {
			y = 0
			z = math.Atan2(m21, m11)
		}
	case OrderZYX:
		y = math.Asin(-clamp(m31, -1, 1))
		if math.Abs(m31) < gimbalEps {
			x = math.Atan2(m32, m33)
			z = math.Atan2(m21, m11)
		} else {
			x = 0
			z = math.Atan2(-m12, m22)
		}
	case OrderYZX:
		z = math.Asin(clamp(m21, -1, 1))
		if math.Abs(m21) < gimbalEps {
			x = math.Atan2(-m23, m22)
			y = math.Atan2(-m31, m11)
		} else {
			x = 0
			y = math.Atan2(m13, m33)
		}
	case OrderXZY:
		z = math.Asin(-clamp(m12, -1, 1))
		if math.Abs(m12) < gimbalEps {
			x = math.Atan2(m32, m22)
			y = math.Atan2(m13, m11)
		} else {
			x = math.Atan2(-m23, m33)
			y = 0
		}
	}
	return x, y, z
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(v, max))
}
