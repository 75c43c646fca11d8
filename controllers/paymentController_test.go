package controllers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/cmi"
	"github.com/stretchr/testify/assert"
)

func paymentTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/payments/initiate", InitiatePayment)
	router.POST("/payments/callback", HandleCallback)
	return router
}

func testGatewayClient() *cmi.Client {
	return cmi.NewClient(&cmi.Client{
		MerchantID:  "600001234",
		StoreKey:    "TEST_STORE_KEY",
		GatewayURL:  "https://testpayment.cmi.co.ma/fim/est3Dgate",
		OkURL:       "https://medinatrips.example/payment/ok",
		FailURL:     "https://medinatrips.example/payment/fail",
		CallbackURL: "https://medinatrips.example/payments/callback",
	})
}

func TestInitiatePaymentReturnsRedirectURL(t *testing.T) {
	client := testGatewayClient()
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(orderRows("pending"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `{"orderNumber":"ORD-0011223344556677","amount":1800,"email":"sara@example.com","customerName":"Sara Alami","language":"fr"}`
	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/initiate", strings.NewReader(body), "application/json")

	assert.Equal(t, http.StatusOK, resp.Code)

	var result map[string]string
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.True(t, strings.HasPrefix(result["redirectUrl"], client.GatewayURL+"?"))
	assert.Contains(t, result["redirectUrl"], "oid=ORD-0011223344556677")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitiatePaymentRejectsCashOrder(t *testing.T) {
	testGatewayClient()
	mock := newMockDB(t)
	rows := sqlmock.NewRows([]string{
		"id", "order_number", "first_name", "last_name", "email",
		"payment_method", "total_mad", "status", "payment_status",
	}).AddRow(2, "ORD-8899AABBCCDDEEFF", "Omar", "Berrada", "omar@example.com",
		"cash", 950.0, "pending", "pending")
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(rows)

	body := `{"orderNumber":"ORD-8899AABBCCDDEEFF","amount":950}`
	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/initiate", strings.NewReader(body), "application/json")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	var errBody map[string]any
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "INVALID_PAYMENT_METHOD", errBody["code"])

	// No write was expected: the order must not be flipped to processing.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitiatePaymentUnknownOrder(t *testing.T) {
	testGatewayClient()
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body := `{"orderNumber":"ORD-MISSING","amount":100}`
	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/initiate", strings.NewReader(body), "application/json")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	var errBody map[string]any
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "ORDER_NOT_FOUND", errBody["code"])
}

func approvedCallbackForm(client *cmi.Client) url.Values {
	form := url.Values{}
	form.Set("clientid", client.MerchantID)
	form.Set("oid", "ORD-0011223344556677")
	form.Set("amount", "1800.00")
	form.Set("currency", cmi.CurrencyMAD)
	form.Set("Response", "Approved")
	form.Set("tranid", "TX-778899")
	form.Set("AuthCode", "A1B2C3")
	form.Set("ProcReturnCode", "00")
	form.Set("HASH", client.SignCallback("ORD-0011223344556677", "1800.00", cmi.CurrencyMAD, "Approved"))
	return form
}

func TestCallbackApprovedMarksSuccess(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	client := testGatewayClient()
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(orderRows("pending"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	form := approvedCallbackForm(client)
	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/callback",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ACTION=POSTAUTH", resp.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallbackInvalidHashLeavesOrderUntouched(t *testing.T) {
	client := testGatewayClient()
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(orderRows("pending"))

	form := approvedCallbackForm(client)
	form.Set("HASH", "bm90LXRoZS1yaWdodC1oYXNo")
	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/callback",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	var errBody map[string]any
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "INVALID_SIGNATURE", errBody["code"])

	// No UPDATE was expected; a write here fails the test.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallbackTamperedAmountRejected(t *testing.T) {
	client := testGatewayClient()
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(orderRows("pending"))

	form := approvedCallbackForm(client)
	form.Set("amount", "1.00")
	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/callback",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallbackDeclinedMarksFailed(t *testing.T) {
	client := testGatewayClient()
	mock := newMockDB(t)
	mock.ExpectQuery("SELECT (.+) FROM `orders`").WillReturnRows(orderRows("pending"))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `orders`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	form := approvedCallbackForm(client)
	form.Set("Response", "Declined")
	form.Set("ErrMsg", "Insufficient funds")
	form.Set("HASH", client.SignCallback("ORD-0011223344556677", "1800.00", cmi.CurrencyMAD, "Declined"))

	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/callback",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusOK, resp.Code)

	var ack map[string]any
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &ack))
	assert.Equal(t, true, ack["received"])
	assert.Equal(t, "failed", ack["paymentStatus"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCallbackMissingFields(t *testing.T) {
	testGatewayClient()
	newMockDB(t)

	resp := performRequest(paymentTestRouter(), http.MethodPost, "/payments/callback",
		strings.NewReader("Response=Approved"), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
