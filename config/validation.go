package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks if the configuration meets the requirements for the
// current environment. Development and test get permissive defaults; in
// production credentials must be set explicitly.
func ValidateConfig(cfg *Config) error {
	var errors []string

	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		errors = append(errors, fmt.Sprintf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}

	if GetEnvironment() == Production {
		if cfg.JWTSecret == "" {
			errors = append(errors, "jwt_secret secret or JWT_SECRET is required in production")
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			errors = append(errors, "db_password secret or DB_PASSWORD is required in production")
		}
	} else if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret"
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
