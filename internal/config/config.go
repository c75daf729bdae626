package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the API service.
type Config struct {
	Addr              string        `env:"ADDR,default=:8080"`
	DatabaseURL       string        `env:"DATABASE_URL,required"`
	JWTSecret         string        `env:"JWT_SECRET,required"`
	TokenTTL          time.Duration `env:"TOKEN_TTL,default=24h"`
	BcryptCost        int           `env:"BCRYPT_COST,default=10"`
	Environment       string        `env:"APP_ENV,default=development"`
	AllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	OTLPEndpoint      string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SessionSweepSpec  string        `env:"SESSION_SWEEP_SPEC,default=@every 1h"`
	SeedAdminEmail    string        `env:"SEED_ADMIN_EMAIL,default=admin@farmacia.local"`
	SeedAdminPassword string        `env:"SEED_ADMIN_PASSWORD,default=changeme"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Production reports whether the service runs with production hardening
// (secure cookies).
func (c Config) Production() bool {
	return c.Environment == "production"
}
