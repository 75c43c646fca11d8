package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/cmi"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/models"
	"github.com/medinatrips/medina-api/utils"
	"gorm.io/gorm"
)

type InitiatePaymentInput struct {
	OrderNumber  string  `json:"orderNumber" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	Email        string  `json:"email"`
	CustomerName string  `json:"customerName"`
	Language     string  `json:"language"`
}

// InitiatePayment builds the signed hosted-payment-page URL for an order and
// hands it back for a browser redirect.
func InitiatePayment(ctx *gin.Context) {
	var input InitiatePaymentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	var order models.Order
	if err := initializers.DB.Where("order_number = ?", input.OrderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	if order.PaymentMethod != models.PaymentMethodCMI {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_PAYMENT_METHOD", "Only card orders can be sent to the payment page")
		return
	}

	client, err := cmi.GetClient()
	if err != nil {
		log.Println("Gateway configuration error:", err)
		sendOrderError(ctx, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "Payment gateway is not configured")
		return
	}

	redirectURL := client.BuildRedirectURL(cmi.PaymentRequest{
		OrderNumber:  order.OrderNumber,
		Amount:       input.Amount,
		Email:        input.Email,
		CustomerName: input.CustomerName,
		Language:     input.Language,
	})

	if err := initializers.DB.Model(&order).Update("payment_status", models.PaymentStatusProcessing).Error; err != nil {
		log.Println("Failed to mark order as processing:", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"redirectUrl": redirectURL})
}

// HandleCallback receives the gateway's asynchronous POST. The hash is
// verified before any other field is trusted; a mismatch leaves the order
// untouched.
func HandleCallback(ctx *gin.Context) {
	oid := ctx.PostForm("oid")
	amount := ctx.PostForm("amount")
	currency := ctx.PostForm("currency")
	response := ctx.PostForm("Response")
	gatewayHash := ctx.PostForm("HASH")

	if oid == "" || gatewayHash == "" {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_CALLBACK", "Missing oid or HASH")
		return
	}

	client, err := cmi.GetClient()
	if err != nil {
		log.Println("Gateway configuration error:", err)
		sendOrderError(ctx, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "Payment gateway is not configured")
		return
	}

	var order models.Order
	if err := initializers.DB.Where("order_number = ?", oid).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	if !client.VerifyCallback(oid, amount, currency, response, gatewayHash) {
		log.Printf("Callback signature mismatch for order %s", oid)
		sendOrderError(ctx, http.StatusUnauthorized, "INVALID_SIGNATURE", "Callback signature verification failed")
		return
	}

	paymentStatus := models.PaymentStatusFailed
	if response == "Approved" {
		paymentStatus = models.PaymentStatusSuccess
	}

	transactionID := ctx.PostForm("tranid")
	authCode := ctx.PostForm("AuthCode")
	rawResponse := ctx.Request.PostForm.Encode()

	updates, _ := applyPaymentUpdate(order, PaymentUpdate{
		PaymentStatus:   &paymentStatus,
		TransactionID:   &transactionID,
		AuthCode:        &authCode,
		PaymentResponse: &rawResponse,
	})
	if err := initializers.DB.Model(&order).Updates(updates).Error; err != nil {
		sendOrderError(ctx, http.StatusInternalServerError, "ORDER_UPDATE_FAILED", "Failed to record payment result: "+err.Error())
		return
	}

	if paymentStatus == models.PaymentStatusSuccess {
		if err := utils.SendOrderConfirmation(order); err != nil {
			log.Println("Error sending confirmation email:", err)
		}
		ctx.String(http.StatusOK, "ACTION=POSTAUTH")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"received":      true,
		"orderNumber":   oid,
		"paymentStatus": paymentStatus,
		"errMsg":        ctx.PostForm("ErrMsg"),
	})
}

// GetPaymentStatus queries the gateway's merchant API for the current state
// of an order and folds the answer back onto the order record.
func GetPaymentStatus(ctx *gin.Context) {
	orderNumber := ctx.Param("orderNumber")

	var order models.Order
	if err := initializers.DB.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	client, err := cmi.GetClient()
	if err != nil {
		sendOrderError(ctx, http.StatusInternalServerError, "GATEWAY_NOT_CONFIGURED", "Payment gateway is not configured")
		return
	}

	status, err := client.QueryTransaction(orderNumber)
	if err != nil {
		log.Println("Gateway status query error:", err)
		sendOrderError(ctx, http.StatusInternalServerError, "GATEWAY_QUERY_FAILED", "Failed to query payment status")
		return
	}

	if status.Response == "Approved" && order.PaymentStatus != models.PaymentStatusSuccess {
		paymentStatus := models.PaymentStatusSuccess
		updates, _ := applyPaymentUpdate(order, PaymentUpdate{
			PaymentStatus: &paymentStatus,
			TransactionID: &status.TransactionID,
			AuthCode:      &status.AuthCode,
		})
		if err := initializers.DB.Model(&order).Updates(updates).Error; err != nil {
			log.Println("Failed to sync payment status:", err)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"order":   order,
		"gateway": status,
	})
}
