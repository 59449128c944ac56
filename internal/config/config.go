// Package config loads runtime settings from the environment and holds the
// fixed limits of the resident workflows.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the API server and admin tool.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`

	DB struct {
		Host     string `env:"DB_HOST" env-default:"localhost"`
		Port     string `env:"DB_PORT" env-default:"5432"`
		User     string `env:"DB_USER" env-default:"user"`
		Password string `env:"DB_PASSWORD" env-default:"password"`
		Name     string `env:"DB_NAME" env-default:"smartsocietydb"`
		SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
	}

	Redis struct {
		Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
		Password string `env:"REDIS_PASSWORD"`
		DB       int    `env:"REDIS_DB" env-default:"0"`
	}

	JWT struct {
		Secret string        `env:"JWT_SECRET" env-required:"true"`
		Issuer string        `env:"JWT_ISSUER" env-default:"smartsociety-service"`
		TTL    time.Duration `env:"JWT_TTL" env-default:"72h"`
	}

	Login struct {
		MaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS" env-default:"5"`
		AttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW" env-default:"15m"`
	}

	LocalizationDir string `env:"LOCALIZATION_DIR" env-default:"internal/localization"`
	CORSOrigins     string `env:"CORS_ORIGINS" env-default:"http://localhost:8081,http://localhost:19006"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARN: no .env file loaded, using process environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.DB.SSLMode)
}

// AllowedOrigins splits CORSOrigins into a clean list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
