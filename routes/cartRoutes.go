package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/controllers"
)

func CartRoutes(server *gin.Engine) {
	server.POST("/cart/quote", controllers.QuoteCart)
}
