// Package auth parses auth service configuration and launches the service.
package auth

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/orbitwatch/missioncontrol/internal/platform/cmd"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/api/httpapi"
	server "github.com/orbitwatch/missioncontrol/internal/services/auth/app"
)

// Config holds auth command configuration.
type Config struct {
	HTTPAddr        string        `env:"AUTH_HTTP_ADDR" envDefault:"localhost:8084"`
	GRPCAddr        string        `env:"AUTH_GRPC_ADDR" envDefault:"localhost:8083"`
	DBPath          string        `env:"AUTH_DB_PATH" envDefault:"data/auth.db"`
	TokenSecret     string        `env:"AUTH_TOKEN_SECRET"`
	SessionTTL      time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"AUTH_CLEANUP_INTERVAL" envDefault:"5m"`
	// BootstrapUsers entries are "username:password" or
	// "username:email:password".
	BootstrapUsers []string `env:"AUTH_BOOTSTRAP_USERS" envSeparator:","`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	err := entrypoint.ParseConfigFromArgs(&cfg, fs, args, func(fs *flag.FlagSet, cfg *Config) {
		fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The auth HTTP API address")
		fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "The auth gRPC health address")
		fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The auth SQLite database path")
		fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Web session lifetime")
	})
	if err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = httpapi.DefaultSessionTTL
	}
	if _, err := parseBootstrapUsers(cfg.BootstrapUsers); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the auth service.
func Run(ctx context.Context, cfg Config) error {
	bootstrap, err := parseBootstrapUsers(cfg.BootstrapUsers)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAuth, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:        cfg.HTTPAddr,
			GRPCAddr:        cfg.GRPCAddr,
			DBPath:          cfg.DBPath,
			TokenSecret:     cfg.TokenSecret,
			SessionTTL:      cfg.SessionTTL,
			CleanupInterval: cfg.CleanupInterval,
			BootstrapUsers:  bootstrap,
		})
	})
}

func parseBootstrapUsers(entries []string) ([]server.BootstrapUser, error) {
	users := make([]server.BootstrapUser, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		switch len(parts) {
		case 2:
			users = append(users, server.BootstrapUser{Username: parts[0], Password: parts[1]})
		case 3:
			users = append(users, server.BootstrapUser{Username: parts[0], Email: parts[1], Password: parts[2]})
		default:
			return nil, fmt.Errorf("bootstrap user %q: want username:password or username:email:password", entry)
		}
	}
	return users, nil
}
