package router

import (
	"github.com/labstack/echo/v4"

	"socialconnect/internal/adapter/api/handler"
	"socialconnect/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Social    *handler.SocialHandler
	Post      *handler.PostHandler
	Chat      *handler.ChatHandler
	WebSocket *handler.WebSocketHandler
}

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, h Handlers) {
	SetupAuthRouter(e, h.Auth)
	SetupUserRouter(e, authMiddleware, h.User)
	SetupSocialRouter(e, authMiddleware, h.Social)
	SetupPostRouter(e, authMiddleware, h.Post)
	SetupChatRouter(e, authMiddleware, h.Chat)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e)
}
