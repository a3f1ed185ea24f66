package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// KhaltiClient talks to the Khalti ePayment JSON API.
type KhaltiClient struct {
	config *khaltiConfig
	client *http.Client
}

// InitiateParams describes a payment to start at the gateway.
type InitiateParams struct {
	AmountPaisa       int64  `json:"amount"`
	PurchaseOrderID   string `json:"purchase_order_id"`
	PurchaseOrderName string `json:"purchase_order_name"`
	ReturnURL         string `json:"return_url"`
	WebsiteURL        string `json:"website_url"`
}

// InitiateResult is the gateway's answer to an initiate call.
type InitiateResult struct {
	PIDX       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
	ExpiresAt  string `json:"expires_at"`
}

// LookupResult is the gateway's answer to a transaction lookup.
type LookupResult struct {
	PIDX          string `json:"pidx"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// NewKhaltiClient creates a KhaltiClient configured from environment
// variables.
func NewKhaltiClient(logger *zerolog.Logger) *KhaltiClient {
	cfg := newKhaltiConfig(logger)

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate Khalti configuration")
	}

	return &KhaltiClient{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Initiate starts a payment at the gateway and returns the URL the customer
// must be redirected to.
func (k *KhaltiClient) Initiate(ctx context.Context, params InitiateParams) (*InitiateResult, error) {
	var result InitiateResult
	if err := k.post(ctx, "/epayment/initiate/", params, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Lookup fetches the current state of a payment identified by its pidx.
func (k *KhaltiClient) Lookup(ctx context.Context, pidx string) (*LookupResult, error) {
	var result LookupResult
	if err := k.post(ctx, "/epayment/lookup/", map[string]string{"pidx": pidx}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (k *KhaltiClient) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+k.config.SecretKey)

	resp, err := k.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("khalti returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// khaltiConfig holds the Khalti gateway configuration.
type khaltiConfig struct {
	BaseURL   string `env:"KHALTI_BASE_URL" envDefault:"https://a.khalti.com/api/v2"`
	SecretKey string `env:"KHALTI_SECRET_KEY"`
}

func newKhaltiConfig(logger *zerolog.Logger) *khaltiConfig {
	cfg, err := env.ParseAs[khaltiConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

func (c *khaltiConfig) validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("missing KHALTI_SECRET_KEY environment variable")
	}

	return nil
}
