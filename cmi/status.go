package cmi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// TransactionStatus is the merchant-API view of a payment, queried after the
// fact when the callback is in doubt.
type TransactionStatus struct {
	OrderNumber   string `json:"oid"`
	Response      string `json:"Response"`
	ProcReturn    string `json:"ProcReturnCode"`
	TransactionID string `json:"TransID"`
	AuthCode      string `json:"AuthCode"`
	ErrMsg        string `json:"ErrMsg"`
}

// QueryTransaction asks the gateway's merchant API for the current state of
// an order's payment. Requires CMI_API_URL plus the API credentials.
func (c *Client) QueryTransaction(orderNumber string) (*TransactionStatus, error) {
	if c.APIURL == "" {
		return nil, fmt.Errorf("cmi api url is not set")
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).
		R().
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"clientid": c.MerchantID,
			"oid":      orderNumber,
			"type":     "Query",
			"hash":     c.SignRequest(orderNumber, "", CurrencyMAD),
		}).
		Post(c.APIURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("cmi status query failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var status TransactionStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %w", err)
	}
	return &status, nil
}
