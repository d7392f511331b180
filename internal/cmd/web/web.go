// Package web parses dashboard configuration and launches the web service.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/orbitwatch/missioncontrol/internal/platform/cmd"
	"github.com/orbitwatch/missioncontrol/internal/services/web"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/cache"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/observatory"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr    string `env:"WEB_HTTP_ADDR" envDefault:"localhost:8086"`
	AuthBaseURL string `env:"WEB_AUTH_BASE_URL" envDefault:"http://localhost:8084"`
	// AuthGRPCAddr is the auth health endpoint; empty disables the watch.
	AuthGRPCAddr string `env:"WEB_AUTH_GRPC_ADDR" envDefault:"localhost:8083"`
	// CatalogPath is a YAML catalog reloaded on change; empty serves the
	// built-in catalog.
	CatalogPath           string        `env:"WEB_CATALOG_PATH"`
	FrameRate             int           `env:"WEB_FRAME_RATE" envDefault:"30"`
	FallbackURL           string        `env:"WEB_FALLBACK_URL" envDefault:"/login"`
	AuthenticatedRedirect string        `env:"WEB_AUTHENTICATED_REDIRECT" envDefault:"/telemetry"`
	TrustForwardedProto   bool          `env:"WEB_TRUST_FORWARDED_PROTO"`
	SessionCacheTTL       time.Duration `env:"WEB_SESSION_CACHE_TTL" envDefault:"5s"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The dashboard HTTP address")
		fs.StringVar(&cfg.AuthBaseURL, "auth-base-url", cfg.AuthBaseURL, "The auth service HTTP base URL")
		fs.StringVar(&cfg.AuthGRPCAddr, "auth-grpc-addr", cfg.AuthGRPCAddr, "The auth service gRPC health address")
		fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Path to a mission catalog YAML file")
		fs.IntVar(&cfg.FrameRate, "frame-rate", cfg.FrameRate, "Observatory frames per second")
	})
	if err != nil {
		return Config{}, err
	}
	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.AuthBaseURL) == "" {
		return fmt.Errorf("auth base url is required")
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = observatory.DefaultFrameRate
	}
	if cfg.SessionCacheTTL < 0 {
		cfg.SessionCacheTTL = cache.DefaultSessionTTL
	}
	for name, value := range map[string]string{
		"fallback url":           cfg.FallbackURL,
		"authenticated redirect": cfg.AuthenticatedRedirect,
	} {
		if value != "" && !redirectguard.IsLocalPath(value) {
			return fmt.Errorf("%s %q must be a local path", name, value)
		}
	}
	return nil
}

// Run starts the web dashboard.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return web.Run(ctx, web.Config{
			HTTPAddr:              cfg.HTTPAddr,
			AuthBaseURL:           cfg.AuthBaseURL,
			AuthGRPCAddr:          cfg.AuthGRPCAddr,
			CatalogPath:           cfg.CatalogPath,
			FrameRate:             cfg.FrameRate,
			FallbackURL:           cfg.FallbackURL,
			AuthenticatedRedirect: cfg.AuthenticatedRedirect,
			TrustForwardedProto:   cfg.TrustForwardedProto,
			SessionCacheTTL:       cfg.SessionCacheTTL,
		})
	})
}
