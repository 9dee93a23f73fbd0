package router

import (
	"github.com/labstack/echo/v4"

	"socialconnect/internal/adapter/api/handler"
	"socialconnect/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, chatHandler *handler.ChatHandler) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("/rooms", chatHandler.GetOrCreateRoom)
	chats.GET("/rooms", chatHandler.GetRooms)
	chats.POST("/rooms/:id/messages", chatHandler.SendMessage)
	chats.GET("/rooms/:id/messages", chatHandler.GetMessages)
}
