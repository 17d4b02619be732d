package http

import (
	"github.com/MorgandeCesso/regulus-back/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes binds the chat endpoints under the given group. Everything
// here requires authentication.
func RegisterRoutes(g *gin.RouterGroup, h *ChatHandlers, auth *middleware.AuthMiddleware) {
	g.Use(auth.RequireAuth())

	g.POST("", h.CreateChat)
	g.GET("", h.ListChats)
	g.POST("/messages", h.SendMessage)
	g.GET("/:chatID/messages", h.ListMessages)
	g.DELETE("/:chatID", h.DeleteChat)
	g.POST("/:chatID/reset", h.ResetChat)
	g.POST("/:chatID/files", h.UploadFile)
	g.GET("/:chatID/files", h.ListFiles)
	g.DELETE("/:chatID/files/:fileID", h.DeleteFile)
}
