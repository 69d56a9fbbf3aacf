// Package config loads configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Defaults for optional configuration.
const (
	// DefaultNotifyKeyAgeDays applies when NOTIFYKEYAGE is not set.
	DefaultNotifyKeyAgeDays = 30

	// DefaultMailRegion is the SES region used when SESREGION is not set.
	DefaultMailRegion = "eu-west-1"
)

// Env holds the configuration values for the application.
type Env struct {
	NotifyKeyAgeDays int
	SourceMail       string
	MailRegion       string
	RoleARN          string
	ExternalID       string
}

// Load reads the environment once at startup. Missing or malformed values
// fall back to defaults with a logged notice; configuration is never fatal.
func Load(logger *slog.Logger) Env {
	return Env{
		NotifyKeyAgeDays: notifyKeyAge(logger),
		SourceMail:       os.Getenv("SOURCEMAIL"),
		MailRegion:       get("SESREGION", DefaultMailRegion),
		RoleARN:          os.Getenv("ROLE_ARN"),
		ExternalID:       os.Getenv("EXTERNAL_ID"),
	}
}

// notifyKeyAge reads NOTIFYKEYAGE with a logged fallback.
func notifyKeyAge(logger *slog.Logger) int {
	raw := os.Getenv("NOTIFYKEYAGE")
	if raw == "" {
		logger.Info("NOTIFYKEYAGE environment variable not found")
		logger.Info("Fallback to default", "days", DefaultNotifyKeyAgeDays)
		return DefaultNotifyKeyAgeDays
	}

	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		logger.Warn("NOTIFYKEYAGE is not a valid day count, falling back to default",
			"value", raw, "days", DefaultNotifyKeyAgeDays)
		return DefaultNotifyKeyAgeDays
	}
	return days
}

// get returns the value of the environment variable k or def if not set.
func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
