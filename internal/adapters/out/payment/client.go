// Package payment provides the outbound adapter to the payment provider.
//
// Client talks JSON over HTTP to the provider's API and implements both
// payment ports: ports.PaymentGateway for verifying and reversing card
// payments, and ports.RefundExecutor for paying out completed returns
// through the customer's chosen channel. Every provider failure surfaces
// as errs.ExternalFailureError so callers can tell an unreachable provider
// apart from a domain rejection.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client is an HTTP client for the payment provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a payment client for the given provider endpoint.
// The API key is sent as a bearer token on every request.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// VerifyPayment checks that the payment behind paymentRef settled.
// A 2xx answer means settled; anything else fails verification.
func (c *Client) VerifyPayment(ctx context.Context, paymentRef string) error {
	return c.post(ctx, "/v1/payments/"+paymentRef+"/verify", nil)
}

// Refund reverses the settled payment behind paymentRef up to amount.
func (c *Client) Refund(ctx context.Context, paymentRef string, amount kernel.Money) error {
	body := refundRequest{
		Amount: amount.Amount().StringFixed(2),
	}
	return c.post(ctx, "/v1/payments/"+paymentRef+"/refunds", body)
}

// Execute pays amount to the customer through the chosen refund channel.
// Original-payment refunds are settled earlier against the payment itself
// via Refund; this endpoint covers store credit, bank transfer and wallet.
func (c *Client) Execute(ctx context.Context, customerID kernel.UUID, method rma.RefundMethod, amount kernel.Money) error {
	body := payoutRequest{
		CustomerID: customerID.String(),
		Method:     method.String(),
		Amount:     amount.Amount().StringFixed(2),
	}
	return c.post(ctx, "/v1/payouts", body)
}

type refundRequest struct {
	Amount string `json:"amount"`
}

type payoutRequest struct {
	CustomerID string `json:"customer_id"`
	Method     string `json:"method"`
	Amount     string `json:"amount"`
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return errs.NewExternalFailureErrorWithCause("payment provider", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return errs.NewExternalFailureErrorWithCause("payment provider", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewExternalFailureErrorWithCause("payment provider", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errs.NewExternalFailureErrorWithCause("payment provider",
			fmt.Errorf("%s returned status %d", path, resp.StatusCode))
	}

	return nil
}
