package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/eventflow-booking/internal/model"
)

// DefaultRazorpayBaseURL is the production Razorpay API root.  Test and
// live modes share it; the key pair decides the mode.
const DefaultRazorpayBaseURL = "https://api.razorpay.com"

// OrderInput is what the gateway needs to open an order.
type OrderInput struct {
	AmountMinor int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Receipt     string            `json:"receipt"`
	Notes       map[string]string `json:"notes,omitempty"`
}

// Gateway is the external payment provider.
type Gateway interface {
	CreateOrder(ctx context.Context, in OrderInput) (*model.Order, error)
}

// GatewayError is a non-2xx answer from the gateway.
type GatewayError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s %s", e.StatusCode, e.Code, e.Description)
}

// RazorpayClient talks to the Razorpay orders API using basic auth with the
// key id and key secret.
type RazorpayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

// NewRazorpayClient builds a client.  An empty baseURL uses the production
// API root.  The timeout caps every request regardless of the caller's
// context.
func NewRazorpayClient(baseURL, keyID, keySecret string, timeout time.Duration) *RazorpayClient {
	if baseURL == "" {
		baseURL = DefaultRazorpayBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RazorpayClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: timeout},
	}
}

// CreateOrder posts to /v1/orders and decodes the created order.
func (c *RazorpayClient) CreateOrder(ctx context.Context, in OrderInput) (*model.Order, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send order request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		_ = json.Unmarshal(raw, &eb)
		return nil, &GatewayError{StatusCode: resp.StatusCode, Code: eb.Error.Code, Description: eb.Error.Description}
	}

	var order model.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &order, nil
}
