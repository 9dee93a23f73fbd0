package router

import (
	"github.com/labstack/echo/v4"

	"socialconnect/internal/adapter/api/handler"
	"socialconnect/internal/adapter/api/middleware"
)

func SetupPostRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, postHandler *handler.PostHandler) {
	posts := e.Group("/v1/posts")
	posts.Use(authMiddleware.Authenticate)

	posts.POST("", postHandler.CreatePost)
	posts.GET("", postHandler.GetFeed)
	posts.GET("/following", postHandler.GetFollowingFeed)
	posts.GET("/search", postHandler.SearchPosts)
	posts.GET("/user/:id", postHandler.GetUserPosts)
	posts.PATCH("/:id", postHandler.UpdatePost)
	posts.DELETE("/:id", postHandler.DeletePost)
	posts.POST("/:id/like", postHandler.ToggleLike)
	posts.POST("/:id/comments", postHandler.AddComment)
	posts.GET("/:id/comments", postHandler.GetComments)
}
