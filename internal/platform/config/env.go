// Package config wraps environment-driven configuration loading.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by the services.
const EnvPrefix = "MISSION_CONTROL_"

// ParseEnv loads configuration from environment variables.
//
// Struct tags are resolved under EnvPrefix, so `env:"HTTP_ADDR"` reads
// MISSION_CONTROL_HTTP_ADDR.
func ParseEnv(target any) error {
	return ParseEnvWithPrefix(target, EnvPrefix)
}

// ParseEnvWithPrefix loads configuration using an explicit variable prefix.
func ParseEnvWithPrefix(target any, prefix string) error {
	if target == nil {
		return fmt.Errorf("parse env: target is required")
	}
	opts := env.Options{Prefix: strings.TrimSpace(prefix)}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
