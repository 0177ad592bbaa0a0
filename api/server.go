// Package api is the HTTP boundary of the pose service. The UI layer sends
// user-edited poses here and renders whatever comes back; everything
// numerical happens in the math package.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/poselab/gopose/event"
	"github.com/poselab/gopose/scene"
)

var log = event.Log

// Server wires the pose math endpoints and the pose library
type Server struct {
	config  scene.Config
	library *scene.Library
	router  *gin.Engine
}

// NewServer creates the gin router for the given config and pose library
func NewServer(config scene.Config, library *scene.Library) *Server {

	s := &Server{
		config:  config,
		library: library,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)

	v1 := router.Group("/v1")
	v1.POST("/compose", s.compose)
	v1.POST("/convert/matrix", s.convertMatrix)
	v1.POST("/convert/pose", s.convertPose)
	v1.POST("/convert/euler", s.convertEuler)
	v1.POST("/convert/quaternion", s.convertQuaternion)
	v1.POST("/normalize", s.normalize)

	poses := v1.Group("/poses")
	if config.EnableAuth {
		poses.Use(ValidateToken(config.Vault.JwtSigningKey))
	}
	poses.GET("", s.listPoses)
	poses.GET("/:name", s.getPose)
	poses.POST("", s.savePose)
	poses.DELETE("/:name", s.deletePose)

	s.router = router
	return s
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails
func (s *Server) Run() error {
	log.Info("Serving pose API on ", s.config.ListenAddr)
	return s.router.Run(s.config.ListenAddr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "up"})
}
