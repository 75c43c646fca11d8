// Package cmi integrates the CMI hosted payment page: signed redirect
// requests out, hash-verified callbacks in. No state is held between the two
// legs; correlation is by order number, which the gateway echoes back.
package cmi

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"

	"github.com/google/uuid"
)

// MAD ISO 4217 numeric code, the only currency the gateway is configured for.
const CurrencyMAD = "504"

type Client struct {
	MerchantID  string
	StoreKey    string
	GatewayURL  string
	APIURL      string
	OkURL       string
	FailURL     string
	CallbackURL string
}

var client *Client

// GetClient returns the shared gateway client, building it from the
// environment on first use. Missing credentials are a hard error: there is no
// fallback payment path once the customer chose card payment.
func GetClient() (*Client, error) {
	if client != nil {
		return client, nil
	}
	c := &Client{
		MerchantID:  os.Getenv("CMI_MERCHANT_ID"),
		StoreKey:    os.Getenv("CMI_STORE_KEY"),
		GatewayURL:  os.Getenv("CMI_GATEWAY_URL"),
		APIURL:      os.Getenv("CMI_API_URL"),
		OkURL:       os.Getenv("CMI_OK_URL"),
		FailURL:     os.Getenv("CMI_FAIL_URL"),
		CallbackURL: os.Getenv("CMI_CALLBACK_URL"),
	}
	if c.MerchantID == "" || c.StoreKey == "" || c.GatewayURL == "" {
		return nil, fmt.Errorf("cmi gateway credentials are not set")
	}
	client = c
	return c, nil
}

// NewClient replaces the shared gateway client, for tests.
func NewClient(c *Client) *Client {
	client = c
	return client
}

// FormatAmount renders an amount the way the gateway hashes it.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// SignRequest computes the outbound redirect hash:
// base64(SHA-512(storeKey || oid || amount || currency || merchantID)).
func (c *Client) SignRequest(oid, amount, currency string) string {
	sum := sha512.Sum512([]byte(c.StoreKey + oid + amount + currency + c.MerchantID))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// SignCallback computes the callback hash, which concatenates the gateway
// response text instead of the merchant id:
// base64(SHA-512(storeKey || oid || amount || currency || response)).
func (c *Client) SignCallback(oid, amount, currency, response string) string {
	sum := sha512.Sum512([]byte(c.StoreKey + oid + amount + currency + response))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyCallback recomputes the callback hash from our own store key and
// requires an exact match before any other field may be trusted.
func (c *Client) VerifyCallback(oid, amount, currency, response, gatewayHash string) bool {
	expected := c.SignCallback(oid, amount, currency, response)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(gatewayHash)) == 1
}

// PaymentRequest carries everything needed to send a customer to the hosted
// payment page.
type PaymentRequest struct {
	OrderNumber  string
	Amount       float64
	Email        string
	CustomerName string
	Language     string
}

// BuildRedirectURL assembles the signed hosted-payment-page URL the browser
// is redirected to.
func (c *Client) BuildRedirectURL(req PaymentRequest) string {
	amount := FormatAmount(req.Amount)
	lang := req.Language
	if lang == "" {
		lang = "en"
	}

	v := url.Values{}
	v.Set("clientid", c.MerchantID)
	v.Set("amount", amount)
	v.Set("currency", CurrencyMAD)
	v.Set("oid", req.OrderNumber)
	v.Set("okUrl", c.OkURL)
	v.Set("failUrl", c.FailURL)
	v.Set("callbackUrl", c.CallbackURL)
	v.Set("TranType", "PreAuth")
	v.Set("encoding", "UTF-8")
	v.Set("storetype", "3D_PAY_HOSTING")
	v.Set("hashAlgorithm", "ver1")
	v.Set("hash", c.SignRequest(req.OrderNumber, amount, CurrencyMAD))
	v.Set("lang", lang)
	v.Set("email", req.Email)
	v.Set("BillToName", req.CustomerName)
	v.Set("rnd", uuid.NewString())

	return c.GatewayURL + "?" + v.Encode()
}
