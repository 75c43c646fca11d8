package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func cartTestRouter() *gin.Engine {
	router := gin.New()
	router.POST("/cart/quote", QuoteCart)
	return router
}

func TestQuoteCartComputesTotals(t *testing.T) {
	body := `{"items": [
		{"excursionId": "agafay-sunset", "priceMad": 500, "adult": 2, "child": 1,
		 "extras": [{"id": "lunch", "price": 100, "selected": true}]},
		{"excursionId": "ourika-valley", "priceMad": 300, "adult": 1}
	]}`

	resp := performRequest(cartTestRouter(), http.MethodPost, "/cart/quote", strings.NewReader(body), "application/json")

	assert.Equal(t, http.StatusOK, resp.Code)

	var result struct {
		Items []struct {
			Total float64 `json:"total"`
		} `json:"items"`
		TotalMad float64 `json:"totalMad"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 1800.0, result.Items[0].Total)
	assert.Equal(t, 300.0, result.Items[1].Total)
	assert.Equal(t, 2100.0, result.TotalMad)
}

func TestQuoteCartRejectsEmptyCart(t *testing.T) {
	resp := performRequest(cartTestRouter(), http.MethodPost, "/cart/quote", strings.NewReader(`{"items": []}`), "application/json")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	var errBody map[string]any
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errBody))
	assert.Equal(t, "EMPTY_CART", errBody["code"])
}
