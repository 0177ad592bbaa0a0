package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poselab/gopose/event"
	"github.com/poselab/gopose/math"
	"github.com/poselab/gopose/scene"
	"github.com/poselab/gopose/status"
)

// DisplayPrecision is the number of decimal digits the formatted response
// fields carry
const DisplayPrecision = 6

type composeRequest struct {
	Pose      math.Pose `json:"pose"`
	Transform math.Pose `json:"transform"`
}

type composeResponse struct {
	Pose            math.Pose     `json:"pose"`
	PoseMatrix      [4][4]float64 `json:"poseMatrix"`
	TransformMatrix [4][4]float64 `json:"transformMatrix"`
	Matrix          [4][4]float64 `json:"matrix"`
	Display         displayPose   `json:"display"`
}

// displayPose carries the formatted strings the UI renders directly
type displayPose struct {
	Translation [3]string `json:"translation"`
	Rotation    [4]string `json:"rotation"`
}

func formatVec3(v math.Vec3) [3]string {
	return [3]string{
		math.FormatNumber(v.X, DisplayPrecision),
		math.FormatNumber(v.Y, DisplayPrecision),
		math.FormatNumber(v.Z, DisplayPrecision),
	}
}

func formatVec4(q math.Vec4) [4]string {
	return [4]string{
		math.FormatNumber(q.X, DisplayPrecision),
		math.FormatNumber(q.Y, DisplayPrecision),
		math.FormatNumber(q.Z, DisplayPrecision),
		math.FormatNumber(q.W, DisplayPrecision),
	}
}

func newDisplayPose(p math.Pose) displayPose {
	return displayPose{
		Translation: formatVec3(p.Translation),
		Rotation:    formatVec4(p.Rotation),
	}
}

// compose applies the transform pose in the local frame of the input pose
// and returns the decomposed result together with the row-major matrices of
// both inputs and of the product
func (s *Server) compose(c *gin.Context) {
	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}

	poseMatrix := math.NewTransformMatrix(req.Pose)
	transformMatrix := math.NewTransformMatrix(req.Transform)
	result := poseMatrix.Mul(transformMatrix)

	pose := result.Pose()
	if !pose.IsFinite() {
		status.NewHTTPStatus(c, http.StatusBadRequest,
			fmt.Errorf("composed matrix does not decompose to a finite pose"))
		return
	}

	c.JSON(http.StatusOK, composeResponse{
		Pose:            pose,
		PoseMatrix:      poseMatrix.Array(),
		TransformMatrix: transformMatrix.Array(),
		Matrix:          result.Array(),
		Display:         newDisplayPose(pose),
	})
}

type poseRequest struct {
	Pose math.Pose `json:"pose"`
}

func (s *Server) convertMatrix(c *gin.Context) {
	var req poseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matrix": math.NewTransformMatrix(req.Pose).Array()})
}

type matrixRequest struct {
	Matrix [4][4]float64 `json:"matrix"`
}

func (s *Server) convertPose(c *gin.Context) {
	var req matrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}
	pose := math.FromArray(req.Matrix).Pose()
	if !pose.IsFinite() {
		status.NewHTTPStatus(c, http.StatusBadRequest,
			fmt.Errorf("matrix does not decompose to a finite pose"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"pose": pose, "display": newDisplayPose(pose)})
}

type eulerRequest struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Order string  `json:"order"`
}

func (s *Server) convertEuler(c *gin.Context) {
	var req eulerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}
	order, ok := parseOrder(c, req.Order)
	if !ok {
		return
	}
	q := math.EulerToQuaternion(req.X, req.Y, req.Z, order)
	c.JSON(http.StatusOK, gin.H{"rotation": q, "display": formatVec4(q)})
}

type quaternionRequest struct {
	Rotation math.Vec4 `json:"rotation"`
	Order    string    `json:"order"`
}

func (s *Server) convertQuaternion(c *gin.Context) {
	var req quaternionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}
	order, ok := parseOrder(c, req.Order)
	if !ok {
		return
	}
	x, y, z := math.QuaternionToEuler(req.Rotation, order)
	c.JSON(http.StatusOK, gin.H{
		"x": x, "y": y, "z": z,
		"order":   order,
		"display": formatVec3(math.Vec3{X: x, Y: y, Z: z}),
	})
}

// normalize carries the caller-side guard: the math core leaves a zero
// quaternion undefined, so it gets rejected here before normalizing
func (s *Server) normalize(c *gin.Context) {
	var req quaternionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}

	magnitude := req.Rotation.Magnitude()
	if magnitude == 0 {
		status.NewHTTPStatus(c, http.StatusBadRequest,
			fmt.Errorf("cannot normalize a zero quaternion"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rotation":   req.Rotation.Normalize(),
		"magnitude":  magnitude,
		"normalized": req.Rotation.IsNormalized(math.NormalizedTolerance),
	})
}

func (s *Server) listPoses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"poses": s.library.List()})
}

func (s *Server) getPose(c *gin.Context) {
	name := c.Param("name")
	doc, ok := s.library.Get(name)
	if !ok {
		status.NewStatus(http.StatusNotFound, "pose "+name+" does not exist").Send(c)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) savePose(c *gin.Context) {
	var doc scene.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		status.NewHTTPStatus(c, http.StatusBadRequest, err)
		return
	}
	if !validPoseName(doc.Name) {
		status.NewHTTPStatus(c, http.StatusBadRequest, fmt.Errorf("invalid pose name %q", doc.Name))
		return
	}

	// clients that only know plain poses send no scale; treat that as 1
	if doc.Pose.Scale == 0 {
		doc.Pose = math.ConvertToPoseWithScale(doc.Pose.Pose)
	}

	if err := s.library.Save(doc); err != nil {
		log.WithFields(event.Fields{
			"pose": doc.Name,
		}).Error("Failed to save pose: ", err)
		status.NewHTTPStatus(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

func (s *Server) deletePose(c *gin.Context) {
	name := c.Param("name")
	if err := s.library.Delete(name); err != nil {
		status.NewStatus(http.StatusNotFound, err.Error()).Send(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseOrder validates the rotation order field and answers the request on
// failure
func parseOrder(c *gin.Context, raw string) (math.RotationOrder, bool) {
	if raw == "" {
		return math.OrderXYZ, true
	}
	order, ok := math.ParseRotationOrder(raw)
	if !ok {
		status.NewHTTPStatus(c, http.StatusBadRequest, fmt.Errorf("unknown rotation order %q", raw))
		return order, false
	}
	return order, true
}

func validPoseName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return name != "." && name != ".."
}
