package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

var validate = validator.New()

// Validate checks the loaded configuration against its struct tags
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, describe(err))
	}
	return nil
}

// Warnings returns non-fatal issues with the configuration
func Warnings(cfg *Config) []string {
	var warnings []string
	if cfg.CheckInterval < MinRecommendedInterval {
		warnings = append(warnings, fmt.Sprintf("FARM_CHECK_INTERVAL %s is below %s and increases remote call volume", cfg.CheckInterval, MinRecommendedInterval))
	}
	if !strings.HasPrefix(cfg.WSURL, "wss://") {
		warnings = append(warnings, "FARM_WS_URL is not using TLS")
	}
	if cfg.AdminEnabled() && cfg.AdminAPIKey == "" {
		warnings = append(warnings, "ADMIN_API_KEY is empty; admin API endpoints are unauthenticated")
	}
	return warnings
}

// describe flattens validator errors into "Field:tag" pairs
func describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s:%s", e.Field(), e.Tag()))
	}
	return strings.Join(parts, ", ")
}
