package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/controllers"
	"github.com/medinatrips/medina-api/middlewares"
)

func SettingRoutes(server *gin.Engine) {
	settings := server.Group("/settings", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		settings.GET("/sections", controllers.GetSectionSettings)
		settings.PUT("/sections/:section", controllers.UpdateSectionSetting)
	}
}
