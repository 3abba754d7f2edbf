package routes

import (
	"github.com/gin-gonic/gin"

	"vaultdrive/controllers"
	"vaultdrive/middleware"
)

func RegisterFileRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	fileController := controllers.NewFileController(container.Hierarchy, container.Blobs)

	files := api.Group("/files")
	files.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		files.POST("", fileController.CreateFile)
		files.GET("/:id", fileController.GetFile)
		files.GET("/:id/url", fileController.GetDownloadURL)
		files.PATCH("/:id", fileController.RenameFile)
		files.POST("/:id/move", fileController.MoveFile)
		files.DELETE("/:id", fileController.DeleteFile)
	}
}
