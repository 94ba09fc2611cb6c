package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every value the server cannot run without is
// present. Redis stays optional in development so the rate limiter can be
// disabled locally.
func ValidateConfig(cfg *Config) error {
	var errs []string

	required := map[string]string{
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"DB_NAME":     cfg.DBName,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			errs = append(errs, fmt.Sprintf("required environment variable %s is not set", name))
		}
	}

	if IsProduction() {
		if cfg.RedisURL == "" && cfg.RedisPassword == "" {
			errs = append(errs, "REDIS_URL or REDIS_PASSWORD is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errs = append(errs, "DB_SSL_MODE must not be disable in production")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "\n"))
	}
	return nil
}
