package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// AppConfig aggregates the service configuration parsed from environment
// variables. Mailer, SMS and payment gateway settings live next to their
// packages under shared/.
type AppConfig struct {
	Server ServerConfig
	Mongo  MongoConfig
	Token  TokenConfig
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port           int    `env:"SERVER_PORT"     envDefault:"5000"`
	UploadDir      string `env:"UPLOAD_DIR"      envDefault:"./uploads"`
	AllowedOrigin  string `env:"ALLOWED_ORIGIN"  envDefault:"http://localhost:3000"`
	PaymentBaseURL string `env:"PAYMENT_BASE_URL" envDefault:"http://localhost:5000"`
}

// MongoConfig holds the MongoDB connection configuration.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DATABASE" envDefault:"glowcart"`
}

// TokenConfig holds the session token configuration. Every issued token
// expires; there is no long-lived issuance path.
type TokenConfig struct {
	Secret           string        `env:"JWT_SECRET"`
	Issuer           string        `env:"JWT_ISSUER"            envDefault:"glowcart-api"`
	SessionExpiresIn time.Duration `env:"SESSION_EXPIRES_IN"    envDefault:"1h"`
}

// New parses the application configuration from environment variables and
// fails fast on anything invalid.
func New(logger *zerolog.Logger) *AppConfig {
	cfg, err := env.ParseAs[AppConfig]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate application configuration")
	}

	return &cfg
}

func (c *AppConfig) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}

	return nil
}
