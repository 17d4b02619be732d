package middleware

import (
	"net/http"
	"strings"

	"github.com/MorgandeCesso/regulus-back/internal/user"
	appErrors "github.com/MorgandeCesso/regulus-back/pkg/errors"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"
	"github.com/MorgandeCesso/regulus-back/pkg/token"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

type AuthMiddleware struct {
	tokens *token.Manager
	users  user.UserUsecase
	logger *logger.Logger
}

func NewAuthMiddleware(tokens *token.Manager, users user.UserUsecase, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// RequireAuth validates the bearer access token and loads the current user
// into the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			abortUnauthorized(c)
			return
		}

		subject, err := m.tokens.ParseAccessToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		u, err := m.users.GetByUsername(c.Request.Context(), subject)
		if err != nil {
			m.logger.Warn("token subject has no matching user", "subject", subject)
			abortUnauthorized(c)
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the user placed in the context by RequireAuth.
func CurrentUser(c *gin.Context) (*user.UserDTO, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.UserDTO)
	return u, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": appErrors.Convert(appErrors.ErrInvalidAccessToken),
	})
}
