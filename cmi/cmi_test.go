package cmi

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testClient() *Client {
	return &Client{
		MerchantID:  "600001234",
		StoreKey:    "TEST_STORE_KEY",
		GatewayURL:  "https://testpayment.cmi.co.ma/fim/est3Dgate",
		OkURL:       "https://example.com/payment/ok",
		FailURL:     "https://example.com/payment/fail",
		CallbackURL: "https://example.com/payments/callback",
	}
}

func TestSignRequestDeterministic(t *testing.T) {
	c := testClient()
	h1 := c.SignRequest("ORD-1", "1800.00", CurrencyMAD)
	h2 := c.SignRequest("ORD-1", "1800.00", CurrencyMAD)
	assert.Equal(t, h1, h2)
	assert.NotEmpty(t, h1)
}

func TestCallbackRoundTrip(t *testing.T) {
	c := testClient()
	hash := c.SignCallback("ORD-42", "500.00", CurrencyMAD, "Approved")
	assert.True(t, c.VerifyCallback("ORD-42", "500.00", CurrencyMAD, "Approved", hash))
}

func TestCallbackRejectsTampering(t *testing.T) {
	c := testClient()
	hash := c.SignCallback("ORD-42", "500.00", CurrencyMAD, "Approved")

	assert.False(t, c.VerifyCallback("ORD-43", "500.00", CurrencyMAD, "Approved", hash), "tampered oid")
	assert.False(t, c.VerifyCallback("ORD-42", "501.00", CurrencyMAD, "Approved", hash), "tampered amount")
	assert.False(t, c.VerifyCallback("ORD-42", "500.00", "978", "Approved", hash), "tampered currency")
	assert.False(t, c.VerifyCallback("ORD-42", "500.00", CurrencyMAD, "Declined", hash), "tampered response")
	assert.False(t, c.VerifyCallback("ORD-42", "500.00", CurrencyMAD, "Approved", hash[:len(hash)-1]+"x"), "tampered hash")
}

func TestCallbackHashDiffersFromRequestHash(t *testing.T) {
	c := testClient()
	assert.NotEqual(t,
		c.SignRequest("ORD-42", "500.00", CurrencyMAD),
		c.SignCallback("ORD-42", "500.00", CurrencyMAD, "Approved"))
}

func TestBuildRedirectURL(t *testing.T) {
	c := testClient()
	raw := c.BuildRedirectURL(PaymentRequest{
		OrderNumber:  "ORD-ABCDEF",
		Amount:       1249.5,
		Email:        "guest@example.com",
		CustomerName: "Sara Alami",
		Language:     "fr",
	})

	assert.True(t, strings.HasPrefix(raw, c.GatewayURL+"?"))

	parsed, err := url.Parse(raw)
	assert.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "600001234", q.Get("clientid"))
	assert.Equal(t, "1249.50", q.Get("amount"))
	assert.Equal(t, CurrencyMAD, q.Get("currency"))
	assert.Equal(t, "ORD-ABCDEF", q.Get("oid"))
	assert.Equal(t, "fr", q.Get("lang"))
	assert.Equal(t, "3D_PAY_HOSTING", q.Get("storetype"))
	assert.Equal(t, c.SignRequest("ORD-ABCDEF", "1249.50", CurrencyMAD), q.Get("hash"))
	assert.NotEmpty(t, q.Get("rnd"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1800.00", FormatAmount(1800))
	assert.Equal(t, "0.50", FormatAmount(0.5))
	assert.Equal(t, "1249.50", FormatAmount(1249.5))
}
