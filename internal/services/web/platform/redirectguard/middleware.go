package redirectguard

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/pendingredirect"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/net/http/httpguts"
)

const (
	meterName = "github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"

	// DefaultRetryAfter is advertised while a protected view waits on the
	// session check.
	DefaultRetryAfter = 2 * time.Second
)

// SessionResolver reports the session status for a request.
type SessionResolver interface {
	ResolveSession(r *http.Request) (Status, *Session)
}

// SessionResolverFunc adapts a function to SessionResolver.
type SessionResolverFunc func(r *http.Request) (Status, *Session)

// ResolveSession calls f(r).
func (f SessionResolverFunc) ResolveSession(r *http.Request) (Status, *Session) {
	return f(r)
}

// MiddlewareOptions wires the guard into an HTTP handler chain.
type MiddlewareOptions struct {
	Resolver     SessionResolver
	SchemePolicy requestmeta.SchemePolicy
	// Deferred renders protected paths while the session status is loading.
	// The response must not include protected content.
	Deferred   http.Handler
	RetryAfter time.Duration
	Logger     *log.Logger
	// Meter defaults to the global OpenTelemetry meter provider.
	Meter metric.Meter
}

// Middleware runs the guard on every request. Redirect decisions are written
// as responses; otherwise the resolved session is attached to the request
// context for downstream handlers.
//
// Only navigations (GET and HEAD) record a pending redirect. A form post
// bounced to login would otherwise be replayed as a GET after sign-in.
func (g Guard) Middleware(opts MiddlewareOptions) (httpx.Middleware, error) {
	if opts.Resolver == nil {
		return nil, fmt.Errorf("session resolver is required")
	}
	meter := opts.Meter
	if meter == nil {
		meter = otel.Meter(meterName)
	}
	redirects, err := meter.Int64Counter(
		"missioncontrol.web.guard.redirects",
		metric.WithDescription("Navigations issued by the session redirect guard"),
	)
	if err != nil {
		return nil, fmt.Errorf("create redirect counter: %w", err)
	}
	deferred, err := meter.Int64Counter(
		"missioncontrol.web.guard.deferred",
		metric.WithDescription("Protected requests held back while the session status was loading"),
	)
	if err != nil {
		return nil, fmt.Errorf("create deferred counter: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	retryAfter := opts.RetryAfter
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	deferredHandler := opts.Deferred
	if deferredHandler == nil {
		deferredHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}

	guard := g.WithObserver(func(ctx context.Context, input Input, decision Decision) {
		redirects.Add(ctx, 1, metric.WithAttributes(
			attribute.String("reason", string(decision.Reason)),
			attribute.String("status", string(input.Status)),
		))
	})

	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			status, session := opts.Resolver.ResolveSession(r)
			input := Input{Status: status, Session: session, Path: requestmeta.LocalTarget(r)}

			var store Storage = pendingredirect.New(w, r, opts.SchemePolicy)
			if !isNavigation(r) {
				store = skipSet{Storage: store}
			}
			target := ""
			decision := guard.Apply(r.Context(), input, store, NavigatorFunc(func(path string) {
				target = path
			}))

			if target != "" {
				logger.Printf(
					"guard redirect reason=%s status=%s from=%s to=%s request_id=%s",
					decision.Reason, status, input.Path, target, httpx.RequestIDFrom(r),
				)
				httpx.WriteRedirect(w, r, target)
				return
			}

			ctx := WithSession(r.Context(), status, session)
			if decision.Reason == ReasonProtectedDeferred {
				deferred.Add(ctx, 1)
				logger.Printf("guard deferred path=%s request_id=%s", input.Path, httpx.RequestIDFrom(r))
				w.Header().Set("Retry-After", strconv.Itoa(int((retryAfter+time.Second-1)/time.Second)))
				w.Header().Set("Cache-Control", "no-store")
				deferredHandler.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// isNavigation reports whether r is a page load worth returning to after
// sign-in. Protocol upgrades (the observatory stream) are not.
func isNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return !isUpgrade(r)
}

func isUpgrade(r *http.Request) bool {
	return r.Header.Get("Upgrade") != "" && httpguts.HeaderValuesContainsToken(r.Header["Connection"], "upgrade")
}

// skipSet drops pending-redirect writes while still allowing consumption.
type skipSet struct {
	Storage
}

func (skipSet) Set(string, string) {}
