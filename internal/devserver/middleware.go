package devserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
)

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func (s *Server) respondWithError(c *gin.Context, statusCode int, err error, message string) {
	s.logger.Warn().Err(err).Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
	c.Abort()
}

// jwtAuthMiddleware validates the access token and loads the user
func (s *Server) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			s.respondWithError(c, http.StatusUnauthorized, err, "Unauthorized")
			return
		}

		claims, err := s.tokens.Validate(token, tokenTypeAccess)
		if err != nil {
			s.respondWithError(c, http.StatusUnauthorized, err, "Invalid or expired token")
			return
		}

		var user User
		if err := s.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
			s.respondWithError(c, http.StatusUnauthorized, err, "User not found")
			return
		}

		c.Set("user", &user)
		c.Next()
	}
}

// currentUser returns the authenticated user set by jwtAuthMiddleware
func currentUser(c *gin.Context) (*User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*User)
	return user, ok
}

// adminOnlyMiddleware ensures the authenticated user is administrative
func (s *Server) adminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			s.respondWithError(c, http.StatusUnauthorized, errors.New("no user in context"), "Unauthorized")
			return
		}

		if !user.IsAdministrative() {
			s.respondWithError(c, http.StatusForbidden, errors.New("not admin"), "Admin access required")
			return
		}

		c.Next()
	}
}
