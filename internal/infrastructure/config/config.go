package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, read once at startup and passed
// by injection into the components that need it. Business logic never reads
// the environment directly.
type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	JWTSecret      string        `env:"JWT_SECRET,      required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=168h"`
	ResetTokenTTL  time.Duration `env:"RESET_TOKEN_TTL, default=1h"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskify"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
