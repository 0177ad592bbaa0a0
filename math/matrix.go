package math

import "math"

// Mat4 is a 4x4 homogeneous transformation matrix stored in column-major
// order, i.e. the translation sits in elements 12-14. Use Array to get the
// row-major view for display.
type Mat4 [16]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// NewTransformMatrix builds the homogeneous matrix for the given pose with
// unit scale. The rotation quaternion is taken as-is: a non-unit quaternion
// composes too, but implicitly adds scale/shear to the result.
func NewTransformMatrix(p Pose) Mat4 {
	x, y, z, w := p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W

	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		p.Translation.X, p.Translation.Y, p.Translation.Z, 1,
	}
}

// Mul returns the matrix product m*n. Composing a pose matrix with a
// transform matrix this way applies the transform in the local frame of the
// pose; the reversed product would apply it in the world frame instead.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// Decompose splits the matrix into a pose and a scale triple. The rotation
// comes back as a unit quaternion. If the matrix carries anisotropic scale
// or shear (e.g. it was composed from a non-unit quaternion) the rotation
// part is not meaningful; this is not corrected here.
func (m Mat4) Decompose() (Pose, Vec3) {
	sx := math.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	sy := math.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	sz := math.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])

	// a negative determinant means one axis is mirrored
	if m.det3() < 0 {
		sx = -sx
	}

	invSX, invSY, invSZ := 1.0/sx, 1.0/sy, 1.0/sz

	m11, m21, m31 := m[0]*invSX, m[1]*invSX, m[2]*invSX
	m12, m22, m32 := m[4]*invSY, m[5]*invSY, m[6]*invSY
	m13, m23, m33 := m[8]*invSZ, m[9]*invSZ, m[10]*invSZ

	var q Vec4
	trace := m11 + m22 + m33

	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		q.W = 0.25 / s
		q.X = (m32 - m23) * s
		q.Y = (m13 - m31) * s
		q.Z = (m21 - m12) * s
	case m11 > m22 && m11 > m33:
		s := 2.0 * math.Sqrt(1.0+m11-m22-m33)
		q.W = (m32 - m23) / s
		q.X = 0.25 * s
		q.Y = (m12 + m21) / s
		q.Z = (m13 + m31) / s
	case m22 > m33:
		s := 2.0 * math.Sqrt(1.0+m22-m11-m33)
		q.W = (m13 - m31) / s
		q.X = (m12 + m21) / s
		q.Y = 0.25 * s
		q.Z = (m23 + m32) / s
	default:
		s := 2.0 * math.Sqrt(1.0+m33-m11-m22)
		q.W = (m21 - m12) / s
		q.X = (m13 + m31) / s
		q.Y = (m23 + m32) / s
		q.Z = 0.25 * s
	}

	pose := Pose{
		Translation: Vec3{m[12], m[13], m[14]},
		Rotation:    q,
	}
	return pose, Vec3{sx, sy, sz}
}

// Pose decomposes the matrix and discards the scale
func (m Mat4) Pose() Pose {
	p, _ := m.Decompose()
	return p
}

// Array returns the matrix as a row-major grid for display: row i, column j
// is the entry that maps input coordinate j onto output coordinate i, with
// the translation in column 3 of rows 0-2.
func (m Mat4) Array() [4][4]float64 {
	var a [4][4]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			a[row][col] = m[col*4+row]
		}
	}
	return a
}

// FromArray builds a matrix from the row-major grid produced by Array
func FromArray(a [4][4]float64) Mat4 {
	var m Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = a[row][col]
		}
	}
	return m
}

// det3 is the determinant of the upper-left 3x3 block, which is the full
// determinant for an affine matrix with a 0/0/0/1 bottom row
func (m Mat4) det3() float64 {
	return m[0]*(m[5]*m[10]-m[6]*m[9]) -
		m[4]*(m[1]*m[10]-m[2]*m[9]) +
		m[8]*(m[1]*m[6]-m[2]*m[5])
}
