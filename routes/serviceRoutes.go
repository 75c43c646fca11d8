package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/controllers"
	"github.com/medinatrips/medina-api/middlewares"
)

func ServiceRoutes(server *gin.Engine) {
	server.GET("/services", controllers.GetServices)

	admin := server.Group("/services", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/admin", controllers.GetServicesAdmin)
		admin.POST("", controllers.CreateService)
		admin.PUT("/:id", controllers.UpdateService)
		admin.DELETE("/:id", controllers.DeleteService)
	}
}
