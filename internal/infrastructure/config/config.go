package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=1h"`
	JWTIssuer string        `env:"JWT_ISSUER, default=volunteerhub"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	Seed  SeedConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type SeedConfig struct {
	AdminEmail      string `env:"SEED_ADMIN_EMAIL,      default=admin@volunteerhub.local"`
	AdminPassword   string `env:"SEED_ADMIN_PASSWORD,   default=admin"`
	ManagerEmail    string `env:"SEED_MANAGER_EMAIL,    default=manager@volunteerhub.local"`
	ManagerPassword string `env:"SEED_MANAGER_PASSWORD, default=manager"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=volunteerhub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
