package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/response"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "nota_session"

var errNoSession = apperror.NewAppError(http.StatusUnauthorized, "Please log in to continue")

const (
	ctxUserID      = "user_id"
	ctxUsername    = "username"
	ctxDisplayName = "display_name"
)

func sessionToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, auth *service.AuthService) error {
	token := sessionToken(c)
	if token == "" {
		return errNoSession
	}
	claims, err := auth.Authenticate(token)
	if err != nil {
		return err
	}

	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxUsername, claims.Username)
	display := claims.FullName
	if display == "" {
		display = claims.Username
	}
	c.Set(ctxDisplayName, display)
	return nil
}

// AuthMiddleware guards API routes: requests without a valid session get 401.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, auth); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// PageAuthMiddleware guards HTML pages: requests without a valid session are
// sent to the login page.
func PageAuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c, auth); err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// GetUsername extracts the username from the Gin context
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

// GetDisplayName is the signed-in user's full name, or username when blank
func GetDisplayName(c *gin.Context) string {
	return c.GetString(ctxDisplayName)
}
