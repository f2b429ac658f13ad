// Package advisor is the HTTP client for the external AI/ML service.
// The collaborator is best-effort: callers are expected to absorb
// failures rather than surface them to API clients.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spendwise/spendwise/internal/model"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 2 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 2 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 3 * time.Second
)

// Client talks to the advisor (ML) service over JSON HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the advisor service at baseURL.
// timeout caps each call end to end so a slow collaborator never
// stalls expense creation materially.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   TLSHandshakeTimeout,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				MaxIdleConns:          50,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// Classification is a successful categorizer response.
type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Categorize asks the collaborator to classify a transaction.
// Returns the suggested category name.
func (c *Client) Categorize(ctx context.Context, merchant string, amount float64) (*Classification, error) {
	req := struct {
		Merchant string  `json:"merchant"`
		Amount   float64 `json:"amount"`
	}{Merchant: merchant, Amount: amount}

	var resp Classification
	if err := c.post(ctx, "/api/ml/categorize", req, &resp); err != nil {
		return nil, err
	}

	if resp.Category == "" {
		return nil, fmt.Errorf("categorize: empty category in response")
	}

	return &resp, nil
}

// Audit sends the user's expenses for analysis and returns insight strings.
func (c *Client) Audit(ctx context.Context, expenses []*model.Expense) ([]string, error) {
	req := struct {
		Expenses []*model.Expense `json:"expenses"`
	}{Expenses: expenses}

	var resp struct {
		Insights []string `json:"insights"`
	}
	if err := c.post(ctx, "/api/ml/audit", req, &resp); err != nil {
		return nil, err
	}

	return resp.Insights, nil
}

// Chat forwards a chat message with prior context and returns the reply.
func (c *Client) Chat(ctx context.Context, message string, history []string) (string, error) {
	req := struct {
		Message string   `json:"message"`
		Context []string `json:"context"`
	}{Message: message, Context: history}

	var resp struct {
		Response string `json:"response"`
	}
	if err := c.post(ctx, "/api/ml/chat", req, &resp); err != nil {
		return "", err
	}

	return resp.Response, nil
}

// post sends a JSON request and decodes a JSON response.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("advisor returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
