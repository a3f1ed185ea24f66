package sms

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

// Sender delivers short text messages through the SMS gateway's JSON API.
type Sender struct {
	config *smsConfig
	client *http.Client
	logger *zerolog.Logger
}

type sendRequest struct {
	APIKey  string `json:"apiKey"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewSender creates a Sender configured from environment variables.
func NewSender(logger *zerolog.Logger) *Sender {
	cfg := newSMSConfig(logger)

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate SMS configuration")
	}

	return &Sender{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: logger,
	}
}

// Send delivers a single message to the given phone number.
func (s *Sender) Send(ctx context.Context, phone, message string) error {
	payload, err := json.Marshal(sendRequest{
		APIKey:  s.config.APIKey,
		To:      phone,
		Message: message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error().Str("status", resp.Status).Msg("sms gateway returned error")
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	return nil
}

// SendCode delivers a one-time passcode to the given phone number.
func (s *Sender) SendCode(ctx context.Context, phone, code string) error {
	return s.Send(ctx, phone, fmt.Sprintf("Your verification code is %s", code))
}

// smsConfig holds the SMS gateway configuration.
type smsConfig struct {
	URL    string `env:"SMS_GATEWAY_URL"`
	APIKey string `env:"SMS_API_KEY"`
}

func newSMSConfig(logger *zerolog.Logger) *smsConfig {
	cfg, err := env.ParseAs[smsConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}

func (c *smsConfig) validate() error {
	if c.URL == "" {
		return fmt.Errorf("missing SMS_GATEWAY_URL environment variable")
	}
	if c.APIKey == "" {
		return fmt.Errorf("missing SMS_API_KEY environment variable")
	}

	return nil
}
