package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	FanoutRedis = "redis"
	FanoutLocal = "local"
)

type Config struct {
	Port     string `env:"PORT, default=5000"`
	Env      string `env:"ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	CORSOrigins []string `env:"CORS_ORIGINS"`

	Auth     AuthConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Realtime RealtimeConfig
	Payment  PaymentConfig
}

type AuthConfig struct {
	TokenSecret string        `env:"ACCESS_TOKEN_SECRET, required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL, default=1h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=Bristo_DB"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RealtimeConfig struct {
	// Fanout selects how events reach connections held by other instances:
	// "redis" publishes through Redis pub/sub, "local" delivers in-process only.
	Fanout         string        `env:"REALTIME_FANOUT, default=redis"`
	Channel        string        `env:"REALTIME_CHANNEL, default=bistro:realtime"`
	QueueSize      int           `env:"BROADCAST_QUEUE_SIZE, default=256"`
	SendBuffer     int           `env:"WS_SEND_BUFFER, default=64"`
	OriginPatterns []string      `env:"WS_ORIGINS"`
	ChatRateLimit  int           `env:"CHAT_RATE_LIMIT, default=30"`
	ChatRateWindow time.Duration `env:"CHAT_RATE_WINDOW, default=1m"`
}

type PaymentConfig struct {
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	Currency        string `env:"PAYMENT_CURRENCY, default=usd"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Realtime.Fanout {
	case FanoutRedis, FanoutLocal:
	default:
		return fmt.Errorf("REALTIME_FANOUT must be %q or %q, got %q", FanoutRedis, FanoutLocal, c.Realtime.Fanout)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool { return c.Env == "production" }
