package http

import (
	"github.com/MorgandeCesso/regulus-back/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes binds the auth endpoints under the given group.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandlers, auth *middleware.AuthMiddleware) {
	g.POST("/register", h.Register)
	g.POST("/token", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/verify-email", h.VerifyEmail)
	g.POST("/logout", auth.RequireAuth(), h.Logout)
}
