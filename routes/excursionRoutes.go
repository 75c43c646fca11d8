package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/controllers"
	"github.com/medinatrips/medina-api/middlewares"
)

func ExcursionRoutes(server *gin.Engine) {
	server.GET("/excursions", controllers.GetExcursions)
	server.GET("/excursions/:slug", controllers.GetExcursion)

	admin := server.Group("/excursions", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("/admin", controllers.GetExcursionsAdmin)
		admin.POST("", controllers.CreateExcursion)
		admin.PUT("/:slug", controllers.UpdateExcursion)
		admin.DELETE("/:slug", controllers.DeleteExcursion)
	}
}
