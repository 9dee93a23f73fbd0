package router

import (
	"github.com/labstack/echo/v4"

	"socialconnect/internal/adapter/api/handler"
	"socialconnect/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, userHandler *handler.UserHandler) {
	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetMe)
	users.PATCH("/me", userHandler.UpdateMe)
	users.PUT("/me/device-token", userHandler.RegisterDeviceToken)
	users.GET("/search", userHandler.SearchUsers)
	users.GET("/:id", userHandler.GetUser)
}
