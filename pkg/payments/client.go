package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// IntentStatus mirrors the processor's payment-intent lifecycle.
type IntentStatus string

const (
	IntentRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentRequiresConfirmation  IntentStatus = "requires_confirmation"
	IntentProcessing            IntentStatus = "processing"
	IntentSucceeded             IntentStatus = "succeeded"
	IntentCanceled              IntentStatus = "canceled"
)

// Event types delivered on the webhook endpoint.
const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

type Intent struct {
	ID                string            `json:"id"`
	Amount            int64             `json:"amount"`
	Currency          string            `json:"currency"`
	Status            IntentStatus      `json:"status"`
	PaymentMethodType string            `json:"payment_method_type"`
	ClientSecret      string            `json:"client_secret"`
	Metadata          map[string]string `json:"metadata"`
}

type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Invoice struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
	HostedURL  string `json:"hosted_url"`
}

type Refund struct {
	ID       string `json:"id"`
	IntentID string `json:"payment_intent"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
}

// Event is a signed webhook delivery. Data.Object carries the intent.
type Event struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object Intent `json:"object"`
	} `json:"data"`
}

type CreateIntentParams struct {
	Amount            int64             `json:"amount"`
	Currency          string            `json:"currency"`
	PaymentMethodType string            `json:"payment_method_type"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

// Processor is the outbound surface consumed by the payment service.
// Injected so tests can substitute a fake.
type Processor interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetIntent(ctx context.Context, intentID string) (*Intent, error)
	UpdateIntentAmount(ctx context.Context, intentID string, amount int64) (*Intent, error)
	CancelIntent(ctx context.Context, intentID string) (*Intent, error)
	CreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	CreateInvoice(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*Invoice, error)
	CreateRefund(ctx context.Context, intentID string) (*Refund, error)
	ConstructEvent(payload []byte, sigHeader string) (*Event, error)
}

var (
	ErrNotFound      = errors.New("processor object not found")
	ErrBadStatusCode = errors.New("invalid status code from payment processor")
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	httpClient    HTTPClient
	baseURL       string
	secretKey     string
	webhookSecret string
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

func NewClient(secretKey, webhookSecret string, opts ...Option) *Client {
	client := &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		baseURL:       "https://api.payproc.dev/v1",
		secretKey:     secretKey,
		webhookSecret: webhookSecret,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *Client) CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/payment_intents", params, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) GetIntent(ctx context.Context, intentID string) (*Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodGet, "/payment_intents/"+intentID, nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) UpdateIntentAmount(ctx context.Context, intentID string, amount int64) (*Intent, error) {
	body := map[string]int64{"amount": amount}
	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/payment_intents/"+intentID, body, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) CancelIntent(ctx context.Context, intentID string) (*Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/payment_intents/"+intentID+"/cancel", nil, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func (c *Client) CreateCustomer(ctx context.Context, email, name string) (*Customer, error) {
	body := map[string]string{"email": email, "name": name}
	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/customers", body, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) CreateInvoice(ctx context.Context, customerID string, amount int64, currency string, metadata map[string]string) (*Invoice, error) {
	body := map[string]any{
		"customer": customerID,
		"amount":   amount,
		"currency": currency,
		"metadata": metadata,
	}
	var invoice Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", body, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (c *Client) CreateRefund(ctx context.Context, intentID string) (*Refund, error) {
	body := map[string]string{"payment_intent": intentID}
	var refund Refund
	if err := c.do(ctx, http.MethodPost, "/refunds", body, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("processor request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrBadStatusCode, resp.StatusCode)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode processor response: %w", err)
	}

	return nil
}
