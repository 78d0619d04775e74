package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/services"
	"github.com/yigit/studybuddy/internal/pkg/apperrors"
	"github.com/yigit/studybuddy/internal/pkg/auth"
)

// MsgNotAuthenticated is the body message of every 401 for a missing session
const MsgNotAuthenticated = "Not authenticated"

const identityKey = "identity"

// SessionCookie describes the cookie carrying the session token
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set writes token as an HttpOnly browser-session cookie
func (sc SessionCookie) Set(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, token, 0, "/", "", sc.Secure, true)
}

// Clear expires the cookie in the browser
func (sc SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sc.Name, "", -1, "/", "", sc.Secure, true)
}

// AuthMiddleware resolves the session cookie into an auth.Identity
type AuthMiddleware struct {
	authService services.AuthService
	cookie      SessionCookie
	logger      zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService services.AuthService, cookie SessionCookie, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// RequireAuth rejects requests without a live session with 401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolve(c)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				code := dto.ErrorCodeUnauthorized
				if errors.Is(err, auth.ErrExpiredToken) {
					code = dto.ErrorCodeExpiredToken
				}
				errorDetail := dto.NewErrorDetail(code, MsgNotAuthenticated)
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequirePageAuth sends browsers without a live session back to the login page
func (m *AuthMiddleware) RequirePageAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolve(c)
		if err != nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when there is one and never rejects
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := m.resolve(c); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (auth.Identity, error) {
	token, err := c.Cookie(m.cookie.Name)
	if err != nil || token == "" {
		return auth.Identity{}, apperrors.ErrUnauthorized
	}

	identity, err := m.authService.Authenticate(c.Request.Context(), token)
	if err != nil {
		m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Session rejected")
		return auth.Identity{}, err
	}
	return identity, nil
}

// IdentityFrom returns the caller resolved by one of the auth middlewares
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}
