package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client of the Razorpay orders API.
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	log        Logger
}

func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// KeyID is the publishable key handed to the checkout widget.
func (c *Client) KeyID() string {
	return c.keyID
}

func (c *Client) configured() bool {
	return c.keyID != "" && c.keySecret != ""
}

// CreateOrder registers a payment intent with the gateway. Failures are not retried.
func (c *Client) CreateOrder(ctx context.Context, in OrderRequest) (*Order, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	c.log.Info("razorpay: creating order receipt=%s amount=%d %s", in.Receipt, in.Amount, in.Currency)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("razorpay: request failed receipt=%s: %v", in.Receipt, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var gwErr errorResponse
		if json.Unmarshal(raw, &gwErr) == nil && gwErr.Error.Description != "" {
			c.log.Error("razorpay: order rejected receipt=%s status=%d code=%s", in.Receipt, resp.StatusCode, gwErr.Error.Code)
			return nil, fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, gwErr.Error.Description)
		}
		c.log.Error("razorpay: unexpected status receipt=%s status=%d", in.Receipt, resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrGateway, resp.StatusCode, string(raw))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: order id missing", ErrInvalidResponse)
	}

	c.log.Info("razorpay: order created order_id=%s receipt=%s", order.ID, in.Receipt)
	return &order, nil
}
