package api

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poselab/gopose/math"
	"github.com/poselab/gopose/scene"
)

func newTestServer(t *testing.T, enableAuth bool) *Server {
	gin.SetMode(gin.TestMode)

	dir, err := ioutil.TempDir("", "gopose-api")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	library, err := scene.NewLibrary(dir)
	require.NoError(t, err)
	t.Cleanup(library.Close)

	config := scene.DefaultConfig()
	config.WorkspaceDir = dir
	config.EnableAuth = enableAuth
	config.Vault.JwtSigningKey = "test-signing-key"

	return NewServer(config, library)
}

func doJSON(s *Server, method, url string, body interface{}, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestComposeIdentityWithTranslation(t *testing.T) {
	s := newTestServer(t, false)

	transform := math.NewPose()
	transform.Translation = math.Vec3{X: 1}

	w := doJSON(s, "POST", "/v1/compose", composeRequest{
		Pose:      math.NewPose(),
		Transform: transform,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp composeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.InDelta(t, 1, resp.Pose.Translation.X, 1e-9)
	assert.InDelta(t, 0, resp.Pose.Translation.Y, 1e-9)
	assert.InDelta(t, 1, resp.Pose.Rotation.W, 1e-9)
	assert.Equal(t, "1", resp.Display.Translation[0])
	assert.Equal(t, "0", resp.Display.Translation[1])
	assert.Equal(t, "1", resp.Display.Rotation[3])
	assert.InDelta(t, 1, resp.Matrix[0][3], 1e-9)

	// both input matrices come along with the product
	assert.InDelta(t, 0, resp.PoseMatrix[0][3], 1e-9)
	assert.InDelta(t, 1, resp.PoseMatrix[0][0], 1e-9)
	assert.InDelta(t, 1, resp.TransformMatrix[0][3], 1e-9)
}

func TestComposeLocalFrameRotation(t *testing.T) {
	s := newTestServer(t, false)

	pose := math.NewPose()
	pose.Translation = math.Vec3{X: 1}
	transform := math.NewPose()
	transform.Rotation = math.Vec4{Z: 0.7071067811865476, W: 0.7071067811865476}

	w := doJSON(s, "POST", "/v1/compose", composeRequest{Pose: pose, Transform: transform}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp composeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// local frame: the translation stays, the rotation is taken over
	assert.InDelta(t, 1, resp.Pose.Translation.X, 1e-9)
	assert.InDelta(t, 0, resp.Pose.Translation.Y, 1e-9)
	assert.InDelta(t, 0.7071067811865476, resp.Pose.Rotation.Z, 1e-9)
	assert.Equal(t, "0.707107", resp.Display.Rotation[2])
}

func TestNormalize(t *testing.T) {
	s := newTestServer(t, false)

	w := doJSON(s, "POST", "/v1/normalize", quaternionRequest{
		Rotation: math.Vec4{W: 2},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rotation   math.Vec4 `json:"rotation"`
		Magnitude  float64   `json:"magnitude"`
		Normalized bool      `json:"normalized"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1, resp.Rotation.W, 1e-9)
	assert.InDelta(t, 2, resp.Magnitude, 1e-9)
	assert.False(t, resp.Normalized)
}

func TestNormalizeZeroQuaternionFails(t *testing.T) {
	s := newTestServer(t, false)

	w := doJSON(s, "POST", "/v1/normalize", quaternionRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvertEulerRoundTrip(t *testing.T) {
	s := newTestServer(t, false)

	w := doJSON(s, "POST", "/v1/convert/euler", eulerRequest{X: 0.3, Y: -0.8, Z: 1.2, Order: "ZYX"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var toQuat struct {
		Rotation math.Vec4 `json:"rotation"`
		Display  [4]string `json:"display"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toQuat))
	assert.Equal(t, math.FormatNumber(toQuat.Rotation.W, DisplayPrecision), toQuat.Display[3])

	w = doJSON(s, "POST", "/v1/convert/quaternion", quaternionRequest{Rotation: toQuat.Rotation, Order: "ZYX"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var toEuler struct {
		X, Y, Z float64
		Display [3]string `json:"display"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toEuler))
	assert.InDelta(t, 0.3, toEuler.X, 1e-9)
	assert.InDelta(t, -0.8, toEuler.Y, 1e-9)
	assert.InDelta(t, 1.2, toEuler.Z, 1e-9)
	assert.Equal(t, "0.3", toEuler.Display[0])
	assert.Equal(t, "-0.8", toEuler.Display[1])
}

func TestConvertEulerUnknownOrder(t *testing.T) {
	s := newTestServer(t, false)
	w := doJSON(s, "POST", "/v1/convert/euler", eulerRequest{Order: "XWZ"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConvertMatrixAndBack(t *testing.T) {
	s := newTestServer(t, false)

	pose := math.NewPose()
	pose.Translation = math.Vec3{X: 1, Y: 2, Z: 3}

	w := doJSON(s, "POST", "/v1/convert/matrix", poseRequest{Pose: pose}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var grid struct {
		Matrix [4][4]float64 `json:"matrix"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.Equal(t, 2.0, grid.Matrix[1][3])

	w = doJSON(s, "POST", "/v1/convert/pose", grid, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var back struct {
		Pose math.Pose `json:"pose"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &back))
	assert.InDelta(t, 3, back.Pose.Translation.Z, 1e-9)
	assert.InDelta(t, 1, back.Pose.Rotation.W, 1e-9)
}

func TestConvertPoseRejectsDegenerateMatrix(t *testing.T) {
	s := newTestServer(t, false)

	// the zero matrix has no decomposable rotation; it must come back as a
	// clean 400 instead of a failed JSON encoding
	w := doJSON(s, "POST", "/v1/convert/pose", matrixRequest{}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NotEmpty(t, resp.Message)
}

func TestSavePoseDefaultsScale(t *testing.T) {
	s := newTestServer(t, false)

	// a document without a scale field arrives with scale 0
	doc := scene.Document{Name: "flat"}
	doc.Pose.Rotation = math.Vec4{W: 1}

	w := doJSON(s, "POST", "/v1/poses", doc, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(s, "GET", "/v1/poses/flat", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got scene.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 1.0, got.Pose.Scale)
}

func TestPoseLibraryEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	doc := scene.Document{Name: "anchor", Pose: math.NewPoseWithScale()}
	doc.Pose.Translation = math.Vec3{Y: 4}

	w := doJSON(s, "POST", "/v1/poses", doc, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(s, "GET", "/v1/poses/anchor", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got scene.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 4.0, got.Pose.Translation.Y)

	w = doJSON(s, "GET", "/v1/poses", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(s, "DELETE", "/v1/poses/anchor", nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(s, "GET", "/v1/poses/anchor", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSavePoseRejectsBadNames(t *testing.T) {
	s := newTestServer(t, false)

	for _, name := range []string{"", "../escape", "a/b", ".."} {
		w := doJSON(s, "POST", "/v1/poses", scene.Document{Name: name}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "name %q must be rejected", name)
	}
}

func TestAuthGuardsLibraryRoutes(t *testing.T) {
	s := newTestServer(t, true)

	doc := scene.Document{Name: "secured", Pose: math.NewPoseWithScale()}

	w := doJSON(s, "POST", "/v1/poses", doc, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(s, "POST", "/v1/poses", doc, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	claims := CustomClaims{
		UserID: "tester",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	w = doJSON(s, "POST", "/v1/poses", doc, map[string]string{
		"Authorization": "Bearer " + signed,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// conversions stay open, auth only guards the library
	w = doJSON(s, "POST", "/v1/convert/euler", eulerRequest{Order: "XYZ"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
