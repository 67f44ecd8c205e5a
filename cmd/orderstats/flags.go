package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Config struct {
	Address            string        `env:"RUN_ADDRESS" envDefault:"localhost:8080"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	DatabaseConnection string        `env:"DATABASE_URI"`
	Timezone           string        `env:"STATS_TIMEZONE" envDefault:"Europe/Warsaw"`
	CacheBackend       string        `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisAddress       string        `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	AdminPassword      string        `env:"ADMIN_PASSWORD"`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTTTL             time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

func NewConfig() (*Config, error) {
	// Optional .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	address := flag.String("a", cfg.Address, "{Host:port} for server")
	loglevel := flag.String("l", cfg.LogLevel, "Log level for server")
	databaseConnection := flag.String("d", cfg.DatabaseConnection, "Database connection string")
	timezone := flag.String("z", cfg.Timezone, "Business time zone for reporting windows")
	cacheBackend := flag.String("c", cfg.CacheBackend, "Cache backend: memory or redis")
	redisAddress := flag.String("r", cfg.RedisAddress, "Redis address when cache backend is redis")
	jwtTTL := flag.Duration("t", cfg.JWTTTL, "TTL for admin JWT token(e.g. 24h; 30m )")

	flag.Parse()

	cfg.Address = *address
	cfg.LogLevel = *loglevel
	cfg.DatabaseConnection = *databaseConnection
	cfg.Timezone = *timezone
	cfg.CacheBackend = *cacheBackend
	cfg.RedisAddress = *redisAddress
	cfg.JWTTTL = *jwtTTL

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("ENV JWT_SECRET must be set")
	}
	if cfg.AdminPassword == "" {
		return fmt.Errorf("ENV ADMIN_PASSWORD must be set")
	}
	if cfg.CacheBackend != "memory" && cfg.CacheBackend != "redis" {
		return fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
	return nil
}
