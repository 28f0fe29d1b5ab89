// Package payment implements the payment gateway port as an HTTP client for
// the external payment collaborator. Capture confirmations and intent expiry
// travel the other way, as webhooks into the HTTP adapter; this client only
// creates intents and requests refunds.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
)

// HTTPGateway talks to the payment collaborator's REST API. It implements
// ports.PaymentGateway.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given API base URL.
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type createIntentRequest struct {
	OrderID     string `json:"order_id"`
	AmountCents int64  `json:"amount_cents"`
}

type createIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type refundRequest struct {
	OrderID    string `json:"order_id"`
	Percentage int    `json:"percentage"`
}

// CreateIntent registers a payment intent for the order total and returns
// the client secret the customer uses to complete payment.
func (g *HTTPGateway) CreateIntent(
	ctx context.Context, orderID kernel.UUID, totalCents int64,
) (string, error) {
	payload := createIntentRequest{
		OrderID:     orderID.String(),
		AmountCents: totalCents,
	}

	var resp createIntentResponse
	if err := g.post(ctx, "/v1/intents", payload, &resp); err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}

	return resp.ClientSecret, nil
}

// Refund requests a refund of the given percentage of the order total.
func (g *HTTPGateway) Refund(ctx context.Context, orderID kernel.UUID, percentage int) error {
	payload := refundRequest{
		OrderID:    orderID.String(),
		Percentage: percentage,
	}

	if err := g.post(ctx, "/v1/refunds", payload, nil); err != nil {
		return fmt.Errorf("request refund: %w", err)
	}

	return nil
}

func (g *HTTPGateway) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("payment api returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
