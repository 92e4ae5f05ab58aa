// Package provider integrates the external payment processor that funds
// deposits. The processor speaks JSON over HTTP and reports charge outcomes
// asynchronously through signed webhooks.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/usecase"
)

const (
	initializePath = "/transaction/initialize"

	defaultRequestTimeout = 15 * time.Second
	maxInitializeRetries  = 2
)

// Client implements usecase.PaymentProvider against the processor's HTTP API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a new provider Client.
func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

type initializeRequest struct {
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Email     string `json:"email"`
}

type initializeResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"message"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// RequestPaymentHandle initializes a charge with the processor. The amount
// crosses the boundary in the processor's minor-unit convention.
func (c *Client) RequestPaymentHandle(ctx context.Context, reference string, amount domain.Amount, payerEmail string) (*usecase.PaymentHandle, error) {
	body, err := json.Marshal(initializeRequest{
		Reference: reference,
		Amount:    amount.Minor(),
		Email:     payerEmail,
	})
	if err != nil {
		return nil, err
	}

	var handle *usecase.PaymentHandle

	operation := func() error {
		handle, err = c.initialize(ctx, body)
		return err
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxInitializeRetries)
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}

	return handle, nil
}

func (c *Client) initialize(ctx context.Context, body []byte) (*usecase.PaymentHandle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+initializePath, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var parsed initializeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, backoff.Permanent(err)
	}

	if !parsed.Status {
		return nil, backoff.Permanent(fmt.Errorf("provider rejected charge: %s", parsed.Msg))
	}

	return &usecase.PaymentHandle{
		AuthorizationURL:  parsed.Data.AuthorizationURL,
		ProviderReference: parsed.Data.Reference,
	}, nil
}
