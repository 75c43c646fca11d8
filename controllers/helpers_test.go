package controllers

import (
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/initializers"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newMockDB swaps the shared gorm handle for one backed by sqlmock.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	initializers.DB = gormDB
	t.Cleanup(func() { db.Close() })
	return mock
}

func performRequest(router *gin.Engine, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// orderRows builds a single-order result set for lookup expectations.
func orderRows(paymentStatus string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_number", "first_name", "last_name", "email",
		"payment_method", "total_mad", "status", "payment_status",
	}).AddRow(1, "ORD-0011223344556677", "Sara", "Alami", "sara@example.com",
		"cmi", 1800.0, "pending", paymentStatus)
}
