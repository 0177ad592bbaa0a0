package scene

import (
	"github.com/tidwall/gjson"

	"github.com/poselab/gopose/math"
)

// Document is a named pose as stored in the workspace directory
type Document struct {
	Name string             `json:"name"`
	Pose math.PoseWithScale `json:"pose"`
}

// ParseDocument reads a pose out of an arbitrary JSON document. Different
// exporters use different key names, so both `translation`/`position` and
// `rotation`/`quaternion` are accepted. Missing components fall back to the
// identity pose, a missing scale falls back to 1.
func ParseDocument(name string, data []byte) Document {
	pose := math.NewPoseWithScale()

	if t := firstOf(data, "pose.translation", "pose.position", "translation", "position"); t.Exists() {
		pose.Translation = math.Vec3{
			X: t.Get("x").Float(),
			Y: t.Get("y").Float(),
			Z: t.Get("z").Float(),
		}
	}

	if r := firstOf(data, "pose.rotation", "pose.quaternion", "rotation", "quaternion"); r.Exists() {
		pose.Rotation = math.Vec4{
			X: r.Get("x").Float(),
			Y: r.Get("y").Float(),
			Z: r.Get("z").Float(),
			W: r.Get("w").Float(),
		}
	}

	if s := firstOf(data, "pose.scale", "scale"); s.Exists() {
		pose.Scale = s.Float()
	}

	if n := gjson.GetBytes(data, "name"); n.Exists() {
		name = n.String()
	}

	return Document{Name: name, Pose: pose}
}

func firstOf(data []byte, paths ...string) gjson.Result {
	for _, path := range paths {
		if r := gjson.GetBytes(data, path); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}
