package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/pricing"
)

type QuoteInput struct {
	Items []pricing.Line `json:"items" binding:"required"`
}

// QuoteCart prices the client-held cart. The client owns the cart; this
// endpoint only hands back authoritative line totals for display and for the
// checkout submission.
func QuoteCart(ctx *gin.Context) {
	var input QuoteInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if len(input.Items) == 0 {
		sendOrderError(ctx, http.StatusBadRequest, "EMPTY_CART", "Cart has no items")
		return
	}

	lines, total := pricing.QuoteTotal(input.Items)
	ctx.JSON(http.StatusOK, gin.H{
		"items":    lines,
		"totalMad": total,
	})
}
