package math

import "math"

// Pose is used for any rigid-body placement in the composer. It uses
// quaternions for rotation. The standard pose does not carry any scale
// value; use PoseWithScale when a viewer scale is needed.
// The rotation quaternion is expected to be unit-norm for the pose to be a
// pure rotation, but this is not enforced here. Use NewPose() to get a pose
// where the rotation is set properly.
type Pose struct {
	Translation Vec3 `json:"translation"` // x/y/z
	Rotation    Vec4 `json:"rotation"`    // x/y/z/w
}

// PoseWithScale takes a normal pose and adds a scale value to it.
// Scale=1 means real-world scale [meters]
type PoseWithScale struct {
	Pose
	Scale float64 `json:"scale" example:"0.5"` // one scale for all axis
}

// NewPose generates a valid pose where rotation is set properly
func NewPose() Pose {
	return Pose{
		Translation: Vec3{0.0, 0.0, 0.0},
		Rotation:    Vec4{0.0, 0.0, 0.0, 1.0},
	}
}

// NewPoseWithScale generates a valid pose where scale is set to 1
func NewPoseWithScale() PoseWithScale {
	p := NewPose()
	return PoseWithScale{
		Pose:  p,
		Scale: 1.0,
	}
}

// ConvertToPoseWithScale converts a pose container to a pose with scale 1.0
func ConvertToPoseWithScale(p Pose) PoseWithScale {
	return PoseWithScale{
		Pose:  p,
		Scale: 1.0,
	}
}

// IsFinite reports whether every component of the pose is a real number.
// Decomposing a degenerate matrix (zero columns, NaN or Inf entries)
// produces non-finite components; callers that hand poses to a JSON encoder
// need to check this first.
func (p Pose) IsFinite() bool {
	for _, v := range []float64{
		p.Translation.X, p.Translation.Y, p.Translation.Z,
		p.Rotation.X, p.Rotation.Y, p.Rotation.Z, p.Rotation.W,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
