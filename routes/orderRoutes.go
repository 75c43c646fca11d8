package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/controllers"
	"github.com/medinatrips/medina-api/middlewares"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/orders", controllers.CreateOrder)

	admin := server.Group("/orders", middlewares.RequireAuth(), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetOrders)
		admin.GET("/:id", controllers.GetOrderByID)
		admin.GET("/:id/voucher", controllers.GetOrderVoucher)
		admin.PUT("/:id", controllers.UpdateOrder)
		admin.PUT("/payment/:orderNumber", controllers.UpdateOrderPayment)
		admin.DELETE("/:id", controllers.DeleteOrder)
	}
}
