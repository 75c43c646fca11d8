package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Medina Trips API.

PUBLIC
- GET "/excursions" - List excursions (optional ?section=)
- GET "/excursions/:slug" - Excursion detail
- GET "/services" - List services
- POST "/cart/quote" - Price a cart
- POST "/orders" - Create an order
- POST "/payments/initiate" - Start a card payment
- POST "/payments/callback" - Gateway callback (CMI only)

AUTH
- POST "/auth/signup" - Create staff account
- POST "/auth/login" - Obtain a token

ADMIN
- GET/PUT/DELETE "/orders..." - Manage orders
- GET "/orders/:id/voucher" - Booking voucher PDF
- GET "/payments/status/:orderNumber" - Gateway status inquiry
- POST/PUT/DELETE "/excursions..." - Manage catalog
- POST/PUT/DELETE "/services..." - Manage services
- GET/PUT "/settings/sections..." - Price visibility flags
- GET/POST/PUT/DELETE "/users..." - Manage accounts`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
