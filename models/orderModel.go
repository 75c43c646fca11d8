package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusSuccess    = "success"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"

	PaymentMethodCash         = "cash"
	PaymentMethodCMI          = "cmi"
	PaymentMethodBankTransfer = "bank_transfer"

	AccommodationHotel = "hotel"
	AccommodationRiad  = "riad"
)

type Order struct {
	gorm.Model
	OrderNumber       string         `json:"orderNumber" gorm:"uniqueIndex;size:32"`
	UserRef           string         `json:"userId"`
	FirstName         string         `json:"firstName"`
	LastName          string         `json:"lastName"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	Passport          string         `json:"passport"`
	City              string         `json:"city"`
	AccommodationType string         `json:"accommodationType"`
	HotelName         string         `json:"hotelName"`
	Address           string         `json:"address"`
	PaymentMethod     string         `json:"paymentMethod"`
	CartItems         datatypes.JSON `json:"cartItems"`
	TotalMad          float64        `json:"totalMad"`
	Status            string         `json:"status"`
	PaymentStatus     string         `json:"paymentStatus"`
	TransactionID     string         `json:"transactionId"`
	AuthCode          string         `json:"authCode"`
	PaymentResponse   string         `json:"paymentResponse"`
	PaidAt            *time.Time     `json:"paidAt"`
}

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusProcessing, PaymentStatusSuccess, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

func IsValidPaymentMethod(s string) bool {
	switch s {
	case PaymentMethodCash, PaymentMethodCMI, PaymentMethodBankTransfer:
		return true
	}
	return false
}

func IsValidAccommodationType(s string) bool {
	return s == AccommodationHotel || s == AccommodationRiad
}
