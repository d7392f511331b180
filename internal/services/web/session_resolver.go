package web

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/platform/timeouts"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/cache"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/httpx"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/redirectguard"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/sessioncookie"
)

// SessionBackend is the narrow auth surface needed by session validation.
type SessionBackend interface {
	Session(ctx context.Context, sessionID string) (authclient.Session, error)
}

// HealthSource reports whether the auth backend is currently serving.
type HealthSource interface {
	Serving() bool
}

// sessionResolver maps the session cookie to a guard status. Answers it
// cannot give with confidence are reported as loading, never as signed out.
type sessionResolver struct {
	backend SessionBackend
	health  HealthSource
	cache   *cache.TTL[redirectguard.Session]
	timeout time.Duration
	logger  *log.Logger
}

func newSessionResolver(backend SessionBackend, health HealthSource, ttl time.Duration, logger *log.Logger) *sessionResolver {
	if logger == nil {
		logger = log.Default()
	}
	return &sessionResolver{
		backend: backend,
		health:  health,
		cache:   cache.NewTTL[redirectguard.Session](ttl),
		timeout: timeouts.AuthRequest,
		logger:  logger,
	}
}

// ResolveSession implements redirectguard.SessionResolver.
func (r *sessionResolver) ResolveSession(req *http.Request) (redirectguard.Status, *redirectguard.Session) {
	sessionID, ok := sessioncookie.Read(req)
	if !ok {
		return redirectguard.StatusUnauthenticated, nil
	}
	if cached, ok := r.cache.Get(sessionID); ok {
		return redirectguard.StatusAuthenticated, &cached
	}
	if r.backend == nil {
		return redirectguard.StatusLoading, nil
	}
	if r.health != nil && !r.health.Serving() {
		return redirectguard.StatusLoading, nil
	}

	ctx, cancel := context.WithTimeout(req.Context(), r.timeout)
	defer cancel()
	resolved, err := r.backend.Session(ctx, sessionID)
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindUnauthorized, apperrors.KindNotFound:
			return redirectguard.StatusUnauthenticated, nil
		default:
			r.logger.Printf("session lookup failed request_id=%s err=%v", httpx.RequestIDFrom(req), err)
			return redirectguard.StatusLoading, nil
		}
	}

	session := toGuardSession(resolved)
	if session.ID == "" {
		session.ID = sessionID
	}
	r.cache.Put(sessionID, session)
	return redirectguard.StatusAuthenticated, &session
}

// Invalidate drops a cached session so the next request asks the backend.
func (r *sessionResolver) Invalidate(sessionID string) {
	r.cache.Invalidate(strings.TrimSpace(sessionID))
}

func toGuardSession(s authclient.Session) redirectguard.Session {
	return redirectguard.Session{
		ID:          strings.TrimSpace(s.ID),
		AccessToken: s.AccessToken,
		User: &redirectguard.User{
			ID:          s.User.ID,
			Username:    s.User.Username,
			Email:       s.User.Email,
			DisplayName: s.User.DisplayName,
		},
	}
}
