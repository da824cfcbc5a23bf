package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MinSecretLength is the shortest HS256 signing key accepted.
const MinSecretLength = 32

// Config keeps runtime settings for the server.
type Config struct {
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"INFO"`
	DatabaseURL    string        `yaml:"database_url" env:"DATABASE_URL" env-default:"task_manager.db"`
	SeedCategories bool          `yaml:"seed_categories" env:"SEED_CATEGORIES" env-default:"true"`
	HTTPAddress    string        `yaml:"http_address" env:"HTTP_ADDRESS" env-default:":8080"`
	HTTPTimeout    time.Duration `yaml:"http_timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
	JWTSecret      string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer" env:"JWT_ISSUER" env-default:"task-manager"`
	JWTAudience    string        `yaml:"jwt_audience" env:"JWT_AUDIENCE" env-default:"task-manager-clients"`
	JWTExpiry      time.Duration `yaml:"jwt_expiry" env:"JWT_EXPIRY" env-default:"60m"`
	BcryptCost     int           `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"10"`
}

// Load reads the YAML file at path, falling back to environment variables
// when path is empty or the file does not exist. Environment variables
// always override file values.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
		return cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return cfg, fmt.Errorf("read config %q: %w", path, err)
		}
		cfg = Config{}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("read env: %w", err)
		}
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if len(c.JWTSecret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET_KEY must be at least %d bytes", MinSecretLength)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	if c.JWTExpiry <= 0 {
		return errors.New("JWT_EXPIRY must be positive")
	}
	return nil
}

// Usage describes every environment variable Load understands.
func Usage() (string, error) {
	return cleanenv.GetDescription(&Config{}, nil)
}
