package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/controllers"
	"github.com/medinatrips/medina-api/middlewares"
)

func PaymentRoutes(server *gin.Engine) {
	server.POST("/payments/initiate", controllers.InitiatePayment)
	server.POST("/payments/callback", controllers.HandleCallback)
	server.GET("/payments/status/:orderNumber", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.GetPaymentStatus)
}
