package api

import (
	"net/http"
	"strings"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/poselab/gopose/event"
)

const (
	// AuthorizationKey is the key for getting the HTTP header authorization
	AuthorizationKey = "authorization"

	// KeyUserID is used as an identifier
	KeyUserID = "UserID"
)

// CustomClaims is our custom metadata of the JWT
type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.StandardClaims
}

// ValidateToken checks the bearer token of a request against the given
// signing key. Used on the mutating pose library routes when auth is
// enabled.
func ValidateToken(signingKey string) gin.HandlerFunc {
	return func(c *gin.Context) {

		tokenString := c.GetHeader(AuthorizationKey)
		if tokenString == "" {
			log.Error("Missing authentication token in header")
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		split := strings.Split(tokenString, " ")
		if len(split) < 2 || strings.ToLower(split[0]) != "bearer" {
			log.Error("Missing bearer keyword in token")
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		token, err := jwt.ParseWithClaims(split[1], &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(signingKey), nil
		})
		if err != nil {
			log.Error(err)
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
			c.Set(KeyUserID, claims.UserID)
			t := time.Unix(claims.StandardClaims.ExpiresAt, 0)
			log.WithFields(event.Fields{
				"UserID": claims.UserID,
			}).Debugf("Token is valid. Expires in %v\n", t.Sub(time.Now()))
		} else {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
