package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/models"
	"github.com/medinatrips/medina-api/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// How many times order creation retries a fresh order number when the unique
// index rejects the insert.
const orderNumberAttempts = 3

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// sendOrderError emits the {error, code} shape the checkout client keys its
// toast messages on.
func sendOrderError(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, gin.H{"error": message, "code": code})
}

type CreateOrderInput struct {
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	Passport          string  `json:"passport"`
	City              string  `json:"city"`
	AccommodationType string  `json:"accommodationType"`
	HotelName         string  `json:"hotelName"`
	Address           string  `json:"address"`
	PaymentMethod     string  `json:"paymentMethod"`
	CartItems         string  `json:"cartItems"`
	TotalMad          float64 `json:"totalMad"`
	UserID            string  `json:"userId"`
	Status            string  `json:"status"`
}

func validateCreateOrder(input CreateOrderInput) (code, message string) {
	required := []struct {
		value string
		code  string
		label string
	}{
		{input.FirstName, "MISSING_FIRST_NAME", "firstName"},
		{input.LastName, "MISSING_LAST_NAME", "lastName"},
		{input.Email, "MISSING_EMAIL", "email"},
		{input.Phone, "MISSING_PHONE", "phone"},
		{input.Passport, "MISSING_PASSPORT", "passport"},
		{input.City, "MISSING_CITY", "city"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return field.code, field.label + " is required"
		}
	}
	if !emailPattern.MatchString(input.Email) {
		return "INVALID_EMAIL", "email is not a valid address"
	}
	if !models.IsValidAccommodationType(input.AccommodationType) {
		return "INVALID_ACCOMMODATION_TYPE", "accommodationType must be hotel or riad"
	}
	if !models.IsValidPaymentMethod(input.PaymentMethod) {
		return "INVALID_PAYMENT_METHOD", "paymentMethod must be cash, cmi or bank_transfer"
	}
	if input.TotalMad <= 0 {
		return "INVALID_TOTAL_MAD", "totalMad must be a positive number"
	}
	if !json.Valid([]byte(input.CartItems)) {
		return "INVALID_CART_ITEMS_JSON", "cartItems must be a valid JSON string"
	}
	if input.Status != "" && !models.IsValidOrderStatus(input.Status) {
		return "INVALID_STATUS", "status is not a recognized order status"
	}
	return "", ""
}

func CreateOrder(ctx *gin.Context) {
	var input CreateOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	if code, message := validateCreateOrder(input); code != "" {
		sendOrderError(ctx, http.StatusBadRequest, code, message)
		return
	}

	status := input.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := models.Order{
		UserRef:           input.UserID,
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		Phone:             input.Phone,
		Passport:          input.Passport,
		City:              input.City,
		AccommodationType: input.AccommodationType,
		HotelName:         input.HotelName,
		Address:           input.Address,
		PaymentMethod:     input.PaymentMethod,
		CartItems:         datatypes.JSON(input.CartItems),
		TotalMad:          input.TotalMad,
		Status:            status,
		PaymentStatus:     models.PaymentStatusPending,
	}

	// The unique index on order_number is the authority; on the vanishingly
	// unlikely collision we draw a new token and try again.
	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		orderNumber, err := utils.GenerateOrderNumber()
		if err != nil {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_NUMBER_GENERATION_FAILED", "Failed to generate order number")
			return
		}
		order.OrderNumber = orderNumber

		lastErr = initializers.DB.Create(&order).Error
		if lastErr == nil {
			ctx.JSON(http.StatusCreated, order)
			return
		}
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			break
		}
	}

	log.Println("Order creation error:", lastErr)
	sendOrderError(ctx, http.StatusInternalServerError, "ORDER_CREATE_FAILED", "Failed to create order: "+lastErr.Error())
}

func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		query = query.Where("order_number LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		sendOrderError(ctx, http.StatusInternalServerError, "ORDER_LIST_FAILED", "Unable to fetch orders: "+result.Error.Error())
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if search := ctx.Query("search"); search != "" {
		countQuery = countQuery.Where("order_number LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrderByID(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_ORDER_ID", "Failed to parse order id")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// forbiddenUpdateFields can never be rewritten once an order exists.
var forbiddenUpdateFields = map[string]bool{
	"id":          true,
	"ordernumber": true,
	"createdat":   true,
}

// updatableStringFields maps JSON body keys onto their database columns.
var updatableStringFields = map[string]string{
	"firstName":       "first_name",
	"lastName":        "last_name",
	"phone":           "phone",
	"passport":        "passport",
	"city":            "city",
	"hotelName":       "hotel_name",
	"address":         "address",
	"transactionId":   "transaction_id",
	"authCode":        "auth_code",
	"paymentResponse": "payment_response",
	"userId":          "user_ref",
}

// validateUpdateField type-checks one body field and returns its column and
// value, or an error code.
func validateUpdateField(key string, value any) (column string, out any, code, message string) {
	if column, ok := updatableStringFields[key]; ok {
		s, ok := value.(string)
		if !ok {
			return "", nil, "INVALID_" + fieldCode(key), key + " must be a string"
		}
		return column, s, "", ""
	}

	switch key {
	case "email":
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(s) {
			return "", nil, "INVALID_EMAIL", "email is not a valid address"
		}
		return "email", s, "", ""
	case "accommodationType":
		s, ok := value.(string)
		if !ok || !models.IsValidAccommodationType(s) {
			return "", nil, "INVALID_ACCOMMODATION_TYPE", "accommodationType must be hotel or riad"
		}
		return "accommodation_type", s, "", ""
	case "paymentMethod":
		s, ok := value.(string)
		if !ok || !models.IsValidPaymentMethod(s) {
			return "", nil, "INVALID_PAYMENT_METHOD", "paymentMethod must be cash, cmi or bank_transfer"
		}
		return "payment_method", s, "", ""
	case "status":
		s, ok := value.(string)
		if !ok || !models.IsValidOrderStatus(s) {
			return "", nil, "INVALID_STATUS", "status is not a recognized order status"
		}
		return "status", s, "", ""
	case "paymentStatus":
		s, ok := value.(string)
		if !ok || !models.IsValidPaymentStatus(s) {
			return "", nil, "INVALID_PAYMENT_STATUS", "paymentStatus is not a recognized payment status"
		}
		return "payment_status", s, "", ""
	case "totalMad":
		f, ok := value.(float64)
		if !ok || f <= 0 {
			return "", nil, "INVALID_TOTAL_MAD", "totalMad must be a positive number"
		}
		return "total_mad", f, "", ""
	case "cartItems":
		s, ok := value.(string)
		if !ok || !json.Valid([]byte(s)) {
			return "", nil, "INVALID_CART_ITEMS_JSON", "cartItems must be a valid JSON string"
		}
		return "cart_items", datatypes.JSON(s), "", ""
	case "paidAt":
		s, ok := value.(string)
		if !ok {
			return "", nil, "INVALID_PAID_AT", "paidAt must be an RFC 3339 timestamp"
		}
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return "", nil, "INVALID_PAID_AT", "paidAt must be an RFC 3339 timestamp"
		}
		return "paid_at", ts, "", ""
	}

	// Unknown keys are ignored rather than rejected.
	return "", nil, "", ""
}

func fieldCode(key string) string {
	var out strings.Builder
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			out.WriteByte('_')
		}
		out.WriteRune(r)
	}
	return strings.ToUpper(out.String())
}

func UpdateOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_ORDER_ID", "Failed to parse order id")
		return
	}

	var body map[string]any
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	for key := range body {
		if forbiddenUpdateFields[strings.ToLower(key)] {
			sendOrderError(ctx, http.StatusBadRequest, "FORBIDDEN_FIELDS", "id, orderNumber and createdAt cannot be updated")
			return
		}
	}

	updates := map[string]any{}
	for key, value := range body {
		column, out, code, message := validateUpdateField(key, value)
		if code != "" {
			sendOrderError(ctx, http.StatusBadRequest, code, message)
			return
		}
		if column != "" {
			updates[column] = out
		}
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	// A body of only ignored keys still touches the row so updatedAt moves.
	if len(updates) == 0 {
		updates["updated_at"] = time.Now()
	}
	if err := initializers.DB.Model(&order).Updates(updates).Error; err != nil {
		sendOrderError(ctx, http.StatusInternalServerError, "ORDER_UPDATE_FAILED", "Failed to update order: "+err.Error())
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// PaymentUpdate is the partial payment-state patch applied by the gateway
// callback and by the internal payment update endpoint.
type PaymentUpdate struct {
	PaymentStatus   *string    `json:"paymentStatus"`
	TransactionID   *string    `json:"transactionId"`
	AuthCode        *string    `json:"authCode"`
	PaymentResponse *string    `json:"paymentResponse"`
	PaidAt          *time.Time `json:"paidAt"`
}

// applyPaymentUpdate turns a PaymentUpdate into a column map. paidAt is
// stamped exactly once: a replayed success callback cannot move it.
func applyPaymentUpdate(order models.Order, upd PaymentUpdate) (map[string]any, string) {
	updates := map[string]any{}
	if upd.PaymentStatus != nil {
		if !models.IsValidPaymentStatus(*upd.PaymentStatus) {
			return nil, "INVALID_PAYMENT_STATUS"
		}
		updates["payment_status"] = *upd.PaymentStatus
	}
	if upd.TransactionID != nil {
		updates["transaction_id"] = *upd.TransactionID
	}
	if upd.AuthCode != nil {
		updates["auth_code"] = *upd.AuthCode
	}
	if upd.PaymentResponse != nil {
		updates["payment_response"] = *upd.PaymentResponse
	}
	if upd.PaidAt != nil {
		updates["paid_at"] = *upd.PaidAt
	} else if upd.PaymentStatus != nil && *upd.PaymentStatus == models.PaymentStatusSuccess && order.PaidAt == nil {
		updates["paid_at"] = time.Now()
	}
	return updates, ""
}

func UpdateOrderPayment(ctx *gin.Context) {
	orderNumber := ctx.Param("orderNumber")

	var upd PaymentUpdate
	if err := ctx.ShouldBindJSON(&upd); err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	var order models.Order
	if err := initializers.DB.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	updates, code := applyPaymentUpdate(order, upd)
	if code != "" {
		sendOrderError(ctx, http.StatusBadRequest, code, "paymentStatus is not a recognized payment status")
		return
	}

	if len(updates) > 0 {
		if err := initializers.DB.Model(&order).Updates(updates).Error; err != nil {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_UPDATE_FAILED", "Failed to update payment state: "+err.Error())
			return
		}
	}

	ctx.JSON(http.StatusOK, order)
}

func DeleteOrder(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_ORDER_ID", "Failed to parse order id")
		return
	}

	if result := initializers.DB.Delete(&models.Order{}, orderID); result.Error != nil {
		sendOrderError(ctx, http.StatusInternalServerError, "ORDER_DELETE_FAILED", "Failed to delete order: "+result.Error.Error())
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

func GetOrderVoucher(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendOrderError(ctx, http.StatusBadRequest, "INVALID_ORDER_ID", "Failed to parse order id")
		return
	}

	var order models.Order
	if err := initializers.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendOrderError(ctx, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			sendOrderError(ctx, http.StatusInternalServerError, "ORDER_FETCH_FAILED", "Failed to fetch order: "+err.Error())
		}
		return
	}

	buf, err := utils.BuildOrderVoucher(order)
	if err != nil {
		log.Println("Voucher generation error:", err)
		sendOrderError(ctx, http.StatusInternalServerError, "VOUCHER_FAILED", "Failed to generate voucher")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="voucher-`+order.OrderNumber+`.pdf"`)
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
