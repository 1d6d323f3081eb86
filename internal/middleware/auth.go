package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/sdma/internal/access"
	"github.com/stwalsh4118/sdma/internal/models"
)

// UserKey is the context key for the authenticated user.
const UserKey = "user"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// Auth rejects requests without a valid bearer token and stores the
// resolved user in the context.
func Auth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			if log := GetLogger(c); log != nil {
				log.Warn("Token rejected", map[string]interface{}{
					"request_id": GetRequestID(c),
					"error":      err.Error(),
				})
			}
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireFeature lets a request through only when the signed-in role may
// view feature. It must run after Auth.
func RequireFeature(feature access.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Login required")
			return
		}
		if !access.CanView(user.Role, feature) {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Your role cannot access "+string(feature))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	if v, exists := c.Get(UserKey); exists {
		if user, ok := v.(models.User); ok {
			return user, true
		}
	}
	return models.User{}, false
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// abortWithError writes the standard error envelope. The errors package
// depends on this one, so the envelope is built inline as in Recovery.
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":       code,
			"message":    message,
			"request_id": GetRequestID(c),
		},
	})
}
