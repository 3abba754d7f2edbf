package routes

import (
	"github.com/gin-gonic/gin"

	"vaultdrive/controllers"
	"vaultdrive/middleware"
)

func RegisterAuthRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	authController := controllers.NewAuthController()

	auth := api.Group("/auth")
	auth.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		auth.GET("/me", authController.Me)
	}
}
