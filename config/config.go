package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"PORT" envDefault:"8080"`

		// Comma-separated list of allowed CORS origins
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	}

	// Database configuration
	Database struct {
		// Driver is either "sqlite" or "postgres"
		Driver string `env:"DB_DRIVER" envDefault:"sqlite"`

		// Path to the sqlite database file (sqlite driver only)
		Path string `env:"DB_PATH" envDefault:"database/honestspace.db"`

		// Postgres connection settings (postgres driver only)
		Host     string `env:"DB_HOST" envDefault:"localhost"`
		Port     int    `env:"DB_PORT" envDefault:"5432"`
		User     string `env:"DB_USER" envDefault:"honestspace"`
		Password string `env:"DB_PASSWORD" envDefault:"honestspace"`
		Name     string `env:"DB_NAME" envDefault:"honestspace"`
		SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	}

	// Auth configuration
	Auth struct {
		// Secret used to sign JWT access and refresh tokens
		JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

		// Access token lifetime in minutes
		AccessTokenMinutes int `env:"JWT_ACCESS_MINUTES" envDefault:"30"`

		// Refresh token lifetime in hours
		RefreshTokenHours int `env:"JWT_REFRESH_HOURS" envDefault:"168"`

		// Optional Redis address for the shared token blacklist.
		// When empty the in-memory blacklist is used.
		RedisAddr     string `env:"REDIS_ADDR"`
		RedisPassword string `env:"REDIS_PASSWORD"`
		RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	// Listing configuration
	Listings struct {
		// Default currency for rent and deposit amounts
		DefaultCurrency string `env:"LISTING_CURRENCY" envDefault:"KES"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
