package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary Primary      `koanf:"primary"`
	Server  ServerConfig `koanf:"server"`
	PayPal  PayPalConfig `koanf:"paypal"`
	Retry   RetryConfig  `koanf:"retry"`
	Logger  LoggerConfig `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig: request_timeout bounds one inbound payment request and must
// cover the outbound worst case, timeout*(retries+1) plus backoff delays
// (~127s on defaults).
type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required"`
}

// PayPalConfig carries everything the gateway client needs. Credentials are
// deliberately not "required": a missing client id/secret must fail on the
// first payment operation, not stop the service from booting.
type PayPalConfig struct {
	ClientID       string        `koanf:"client_id"`
	ClientSecret   string        `koanf:"client_secret"`
	Environment    string        `koanf:"environment" validate:"required,oneof=sandbox live"`
	BaseURL        string        `koanf:"base_url"`
	Currency       string        `koanf:"currency" validate:"required"`
	MinAmountCents int64         `koanf:"min_amount_cents" validate:"required"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
}

// APIBaseURL resolves the gateway base URL from the environment selector.
// An explicit base_url wins, which is how tests point the client at a stub.
func (c PayPalConfig) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Environment == "live" {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}

type RetryConfig struct {
	BaseDelay  time.Duration `koanf:"base_delay"`
	MaxRetries int           `koanf:"max_retries"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

func (l LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(l.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":             "development",
		"server.port":             "8080",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "180s",
		"server.idle_timeout":     "60s",
		"server.request_timeout":  "150s",
		"paypal.environment":      "sandbox",
		"paypal.currency":         "USD",
		"paypal.min_amount_cents": 50,
		"paypal.conn_timeout":     "30s",
		"retry.base_delay":        "1s",
		"retry.max_retries":       3,
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load default configuration", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("PAYMENT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "PAYMENT_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
