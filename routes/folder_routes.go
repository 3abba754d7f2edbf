package routes

import (
	"github.com/gin-gonic/gin"

	"vaultdrive/controllers"
	"vaultdrive/middleware"
)

func RegisterFolderRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	folderController := controllers.NewFolderController(container.Hierarchy, container.Paths)

	folders := api.Group("/folders")
	folders.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		folders.POST("", folderController.CreateFolder)
		folders.POST("/root", folderController.EnsureRoot)
		folders.GET("/resolve", folderController.ResolvePath)
		folders.GET("/:id", folderController.GetFolder)
		folders.GET("/:id/children", folderController.ListChildren)
		folders.GET("/:id/tree", folderController.GetTree)
		folders.GET("/:id/path", folderController.GetPath)
		folders.PATCH("/:id", folderController.RenameFolder)
		folders.POST("/:id/move", folderController.MoveFolder)
		folders.DELETE("/:id", folderController.DeleteFolder)
	}
}
