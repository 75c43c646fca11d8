package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func orderRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	OrderRoutes(router)
	return router
}

func signToken(t *testing.T, role, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %s", err)
	}
	return signed
}

func TestPaymentStatusUpdateRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/orders/payment/ORD-0011223344556677",
		strings.NewReader(`{"paymentStatus": "success"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()

	orderRouter().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPaymentStatusUpdateRejectsNonAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "routes-test-secret")

	req := httptest.NewRequest(http.MethodPut, "/orders/payment/ORD-0011223344556677",
		strings.NewReader(`{"paymentStatus": "success"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "staff", "routes-test-secret"))
	recorder := httptest.NewRecorder()

	orderRouter().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
