package routes

import (
	"github.com/gin-gonic/gin"

	"vaultdrive/controllers"
	"vaultdrive/middleware"
)

func RegisterExportRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	exportController := controllers.NewExportController(container.Archives, container.Cleaner)

	export := api.Group("/export")
	export.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		export.POST("/zip", exportController.ExportZip)
		export.POST("/zip/link", exportController.ExportZipLink)
	}
}
