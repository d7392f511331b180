package server

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/orbitwatch/missioncontrol/internal/platform/timeouts"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/api/httpapi"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/storage"
	authsqlite "github.com/orbitwatch/missioncontrol/internal/services/auth/storage/sqlite"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/token"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/user"
)

// HealthService is the gRPC health service name reported alongside the
// overall ("") status.
const HealthService = "missioncontrol.auth.v1.Auth"

const defaultCleanupInterval = 5 * time.Minute

// BootstrapUser is an account created at startup when its username is free.
type BootstrapUser struct {
	Username string
	Email    string
	Password string
}

// Config describes the auth process.
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	DBPath          string
	TokenSecret     string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	BootstrapUsers  []BootstrapUser
}

// Server hosts the auth service.
type Server struct {
	listener        net.Listener
	grpcServer      *grpc.Server
	health          *health.Server
	store           *authsqlite.Store
	httpListener    net.Listener
	httpServer      *http.Server
	service         *httpapi.AuthService
	cleanupInterval time.Duration
}

// New creates a configured auth server bound to the configured addresses.
func New(cfg Config) (*Server, error) {
	secret := []byte(cfg.TokenSecret)
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		generated, err := ephemeralSecret()
		if err != nil {
			return nil, err
		}
		log.Printf("auth token secret not configured; using an ephemeral secret")
		secret = generated
	}
	issuer, err := token.NewIssuer(token.Config{Secret: secret})
	if err != nil {
		return nil, fmt.Errorf("configure token issuer: %w", err)
	}

	store, err := openAuthStore(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	service := httpapi.NewAuthService(store, store, issuer, cfg.SessionTTL)
	if err := bootstrapUsers(context.Background(), service, store, cfg.BootstrapUsers); err != nil {
		_ = store.Close()
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on grpc addr %s: %w", cfg.GRPCAddr, err)
	}
	httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}

	mux := http.NewServeMux()
	httpapi.NewServer(service, log.Default()).RegisterRoutes(mux)
	httpServer := &http.Server{Handler: mux, ReadHeaderTimeout: timeouts.ReadHeader}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(HealthService, grpc_health_v1.HealthCheckResponse_SERVING)

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}

	return &Server{
		listener:        listener,
		grpcServer:      grpcServer,
		health:          healthServer,
		store:           store,
		httpListener:    httpListener,
		httpServer:      httpServer,
		service:         service,
		cleanupInterval: cleanupInterval,
	}, nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// HTTPAddr returns the HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Run creates and serves an auth server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the auth server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.closeStore()

	s.StartCleanup(serverCtx, s.cleanupInterval)

	log.Printf("auth gRPC health listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	log.Printf("auth HTTP API listening at %v", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}

	shutdownGRPC := func() {
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
	}
	shutdownHTTP := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		_ = s.httpServer.Shutdown(shutdownCtx)
	}

	select {
	case <-ctx.Done():
		shutdownGRPC()
		shutdownHTTP()
		err := <-serveErr
		return handleErr(err)
	case err := <-serveErr:
		shutdownHTTP()
		return handleErr(err)
	case err := <-httpErr:
		shutdownGRPC()
		grpcErr := <-serveErr
		if handled := handleErr(grpcErr); handled != nil {
			return handled
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

// StartCleanup periodically removes expired sessions and refreshes the
// health status from the store until ctx ends.
func (s *Server) StartCleanup(ctx context.Context, interval time.Duration) {
	if s == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *Server) sweep(ctx context.Context) {
	removed, err := s.service.CleanupExpired(ctx)
	if err != nil {
		log.Printf("auth session cleanup: %v", err)
	} else if removed > 0 {
		log.Printf("auth session cleanup removed=%d", removed)
	}

	stats, err := s.store.GetAuthStatistics(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("auth statistics: %v", err)
		s.setServing(false)
		return
	}
	s.setServing(true)
	log.Printf("auth statistics users=%d active_sessions=%d", stats.UserCount, stats.ActiveSessionCount)
}

func (s *Server) setServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(HealthService, status)
}

func openAuthStore(path string) (*authsqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "auth.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := authsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open auth sqlite store: %w", err)
	}
	return store, nil
}

func (s *Server) closeStore() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close auth store: %v", err)
	}
}

// bootstrapUsers creates configured accounts whose username is still free.
func bootstrapUsers(ctx context.Context, service *httpapi.AuthService, users storage.UserStore, bootstrap []BootstrapUser) error {
	if service == nil || users == nil {
		return nil
	}
	for _, candidate := range bootstrap {
		username := strings.ToLower(strings.TrimSpace(candidate.Username))
		if username == "" || strings.TrimSpace(candidate.Password) == "" {
			continue
		}
		if _, err := users.GetUserByUsername(ctx, username); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("lookup bootstrap user %s: %w", username, err)
		}
		email := strings.TrimSpace(candidate.Email)
		if email == "" {
			email = username + "@localhost"
		}
		created, err := service.Signup(ctx, user.CreateUserInput{
			Username: username,
			Email:    email,
			Password: candidate.Password,
		})
		if err != nil {
			return fmt.Errorf("create bootstrap user %s: %w", username, err)
		}
		log.Printf("auth bootstrap user created user_id=%s username=%s", created.ID, created.Username)
	}
	return nil
}

func ephemeralSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate token secret: %w", err)
	}
	return secret, nil
}
