package router

import (
	"github.com/labstack/echo/v4"

	"socialconnect/internal/adapter/api/handler"
	"socialconnect/internal/adapter/api/middleware"
)

func SetupSocialRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, socialHandler *handler.SocialHandler) {
	social := e.Group("/v1/social")
	social.Use(authMiddleware.Authenticate)

	social.PUT("/follow/:id", socialHandler.Follow)
	social.DELETE("/follow/:id", socialHandler.Unfollow)
	social.GET("/follow/:id", socialHandler.GetFollowState)
	social.GET("/stats/:id", socialHandler.GetStats)
	social.GET("/relationship/:id", socialHandler.GetRelationship)

	social.POST("/friend-requests", socialHandler.SendFriendRequest)
	social.GET("/friend-requests", socialHandler.ListPendingRequests)
	social.POST("/friend-requests/:id/respond", socialHandler.RespondToRequest)
	social.GET("/friends", socialHandler.ListFriends)
}
