package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/grpc"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/platform/timeouts"
	"github.com/orbitwatch/missioncontrol/internal/services/web/app"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/cache"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/grpcdial"
	module "github.com/orbitwatch/missioncontrol/internal/services/web/module"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/public"
	"github.com/orbitwatch/missioncontrol/internal/services/web/modules/settings"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	webi18n "github.com/orbitwatch/missioncontrol/internal/services/web/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/observability"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/weberror"
	"github.com/orbitwatch/missioncontrol/internal/services/web/routepath"
	"github.com/orbitwatch/missioncontrol/internal/services/web/static"
)

// authHealthService is the gRPC health service name the auth process reports.
const authHealthService = "missioncontrol.auth.v1.Auth"

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr    string
	AuthBaseURL string
	// AuthGRPCAddr is the auth health endpoint. When empty, session lookups
	// are not gated on backend health.
	AuthGRPCAddr          string
	CatalogPath           string
	FrameRate             int
	FallbackURL           string
	AuthenticatedRedirect string
	TrustForwardedProto   bool
	SessionCacheTTL       time.Duration
}

// AuthBackend is everything the dashboard asks of the auth service.
type AuthBackend interface {
	public.AuthGateway
	settings.ProfileGateway
}

// HandlerConfig wires the root handler. NewServer fills it from Config;
// tests build it directly with fakes.
type HandlerConfig struct {
	Auth         AuthBackend
	Health       HealthSource
	Catalog      catalogview.Source
	Guard        redirectguard.Options
	SchemePolicy requestmeta.SchemePolicy
	FrameRate    int
	// Clock drives orbit propagation; nil uses the wall clock.
	Clock           func() time.Time
	SessionCacheTTL time.Duration
	Logger          *log.Logger
}

// Server hosts the web dashboard.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	authConn   *grpc.ClientConn
	stop       context.CancelFunc
	done       chan struct{}
}

// NewHandler builds the dashboard root handler: static assets and the health
// probe outside the guard, every other route behind it.
func NewHandler(cfg HandlerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	guard := redirectguard.New(cfg.Guard)

	var backend SessionBackend
	var authGateway public.AuthGateway
	var profileGateway settings.ProfileGateway
	if cfg.Auth != nil {
		backend, authGateway, profileGateway = cfg.Auth, cfg.Auth, cfg.Auth
	}
	resolver := newSessionResolver(backend, cfg.Health, cfg.SessionCacheTTL, logger)

	res := module.Dependencies{ResolveLanguage: webi18n.ResolveLanguage}
	deps := modules.Dependencies{
		AuthGateway:    authGateway,
		ProfileGateway: profileGateway,
		Catalog:        cfg.Catalog,
		Guard:          &guard,
		SchemePolicy:   cfg.SchemePolicy,
		FrameRate:      cfg.FrameRate,
		Clock:          cfg.Clock,
		SessionChanged: resolver.Invalidate,
	}
	root, err := app.Build(app.Config{
		PublicModules:    modules.DefaultPublicModules(deps, res),
		ProtectedModules: modules.DefaultProtectedModules(deps, res),
		Routes:           guard.Options().Routes,
		LoginPath:        guard.Options().FallbackURL,
		SchemePolicy:     cfg.SchemePolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("compose modules: %w", err)
	}

	guardMiddleware, err := guard.Middleware(redirectguard.MiddlewareOptions{
		Resolver:     resolver,
		SchemePolicy: cfg.SchemePolicy,
		Deferred:     weberror.SessionPending(res.ResolveLanguage),
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build redirect guard: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(static.FS))))
	mux.HandleFunc("GET "+routepath.Health, healthHandler(cfg.Health, cfg.Catalog, root))
	mux.Handle(routepath.Root, httpx.Chain(root, guardMiddleware))

	return httpx.Chain(mux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		observability.RequestLogger(logger),
	), nil
}

type healthReport struct {
	Status   string   `json:"status"`
	Auth     string   `json:"auth"`
	Catalog  string   `json:"catalog"`
	Degraded []string `json:"degraded_modules,omitempty"`
}

// healthHandler reports process liveness. Backend state is informational;
// the probe stays 200 while the process serves.
func healthHandler(health HealthSource, src catalogview.Source, root *app.Root) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		report := healthReport{Status: "ok", Auth: "serving", Catalog: "loaded", Degraded: root.Degraded()}
		if health != nil && !health.Serving() {
			report.Auth = "not_serving"
		}
		if _, err := catalogview.Load(src); err != nil {
			report.Catalog = "missing"
		}
		_ = httpx.WriteJSON(w, http.StatusOK, report)
	}
}

// NewServer builds a configured web server. Background workers (catalog
// hot reload and auth health) run until Close.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if strings.TrimSpace(cfg.AuthBaseURL) == "" {
		return nil, errors.New("auth base url is required")
	}
	if cfg.SessionCacheTTL == 0 {
		cfg.SessionCacheTTL = cache.DefaultSessionTTL
	}

	authClient, err := authclient.New(cfg.AuthBaseURL, &http.Client{Timeout: timeouts.AuthRequest})
	if err != nil {
		return nil, err
	}
	holder, err := catalog.NewHolder(cfg.CatalogPath, log.Default())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	authConn, err := grpcdial.DialAuth(cfg.AuthGRPCAddr)
	if err != nil {
		return nil, err
	}

	bgCtx, stop := context.WithCancel(context.Background())
	var health HealthSource
	if authConn != nil {
		health = grpcdial.WatchHealth(bgCtx, authConn, authHealthService, log.Printf)
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := holder.Watch(bgCtx); err != nil {
			log.Printf("catalog watch stopped: %v", err)
		}
	}()

	handler, err := NewHandler(HandlerConfig{
		Auth:    authClient,
		Health:  health,
		Catalog: holder,
		Guard: redirectguard.Options{
			Routes:                redirectguard.DefaultRoutes(),
			FallbackURL:           cfg.FallbackURL,
			AuthenticatedRedirect: cfg.AuthenticatedRedirect,
		},
		SchemePolicy:    requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		FrameRate:       cfg.FrameRate,
		SessionCacheTTL: cfg.SessionCacheTTL,
	})
	if err != nil {
		stop()
		<-done
		if authConn != nil {
			_ = authConn.Close()
		}
		return nil, err
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		authConn: authConn,
		stop:     stop,
		done:     done,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web dashboard listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops background workers and releases the auth connection.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.stop != nil {
		s.stop()
	}
	if s.done != nil {
		<-s.done
	}
	if s.authConn != nil {
		if err := s.authConn.Close(); err != nil {
			log.Printf("close auth gRPC connection: %v", err)
		}
	}
}

// Run builds a server, serves until ctx ends, and closes it.
func Run(ctx context.Context, cfg Config) error {
	srv, err := NewServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer srv.Close()
	return srv.ListenAndServe(ctx)
}
