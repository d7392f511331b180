package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/orbitwatch/missioncontrol/internal/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/platform/id"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/storage"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/token"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/user"
)

// DefaultSessionTTL bounds a web session when none is configured.
const DefaultSessionTTL = 24 * time.Hour

var (
	errSessionRequired = apperrors.New(apperrors.CodeSessionRequired, "session is required")
	errSessionInvalid  = apperrors.New(apperrors.CodeSessionInvalid, "session is invalid")
)

// SessionGrant is an active session with its user and access token.
type SessionGrant struct {
	Session     storage.WebSession
	User        user.User
	AccessToken string
}

// AuthService owns account and web session rules.
type AuthService struct {
	users              storage.UserStore
	sessions           storage.WebSessionStore
	tokens             *token.Issuer
	sessionTTL         time.Duration
	clock              func() time.Time
	idGenerator        func() (string, error)
	sessionIDGenerator func() (string, error)
}

// NewAuthService builds a service with production defaults.
func NewAuthService(users storage.UserStore, sessions storage.WebSessionStore, tokens *token.Issuer, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		users:              users,
		sessions:           sessions,
		tokens:             tokens,
		sessionTTL:         sessionTTL,
		clock:              time.Now,
		idGenerator:        id.NewID,
		sessionIDGenerator: id.NewToken,
	}
}

func (s *AuthService) configured() error {
	if s == nil || s.users == nil || s.sessions == nil || s.tokens == nil {
		return errors.New("auth service is not configured")
	}
	return nil
}

// Signup creates an account. It does not open a session.
func (s *AuthService) Signup(ctx context.Context, input user.CreateUserInput) (user.User, error) {
	if err := s.configured(); err != nil {
		return user.User{}, err
	}
	created, err := user.CreateUser(input, s.clock, s.idGenerator)
	if err != nil {
		return user.User{}, err
	}
	if err := s.users.PutUser(ctx, created); err != nil {
		return user.User{}, err
	}
	return created, nil
}

// Login checks credentials and opens a web session.
func (s *AuthService) Login(ctx context.Context, username string, password string) (SessionGrant, error) {
	if err := s.configured(); err != nil {
		return SessionGrant{}, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return SessionGrant{}, user.ErrInvalidCredentials
	}
	found, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return SessionGrant{}, user.ErrInvalidCredentials
		}
		return SessionGrant{}, err
	}
	if err := found.CheckPassword(password); err != nil {
		return SessionGrant{}, err
	}

	sessionID, err := s.sessionIDGenerator()
	if err != nil {
		return SessionGrant{}, fmt.Errorf("generate web session id: %w", err)
	}
	now := s.clock().UTC()
	session := storage.WebSession{ID: sessionID, UserID: found.ID, CreatedAt: now, ExpiresAt: now.Add(s.sessionTTL)}
	if err := s.sessions.PutWebSession(ctx, session); err != nil {
		return SessionGrant{}, err
	}
	return s.grant(session, found)
}

// ResolveSession returns the grant for an active session.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (SessionGrant, error) {
	if err := s.configured(); err != nil {
		return SessionGrant{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return SessionGrant{}, errSessionRequired
	}
	session, err := s.sessions.GetWebSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return SessionGrant{}, errSessionInvalid
		}
		return SessionGrant{}, err
	}
	if !session.Active(s.clock().UTC()) {
		return SessionGrant{}, errSessionInvalid
	}
	found, err := s.users.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return SessionGrant{}, errSessionInvalid
		}
		return SessionGrant{}, err
	}
	return s.grant(session, found)
}

// Introspect verifies an access token and the session it is bound to.
func (s *AuthService) Introspect(ctx context.Context, accessToken string) (SessionGrant, error) {
	if err := s.configured(); err != nil {
		return SessionGrant{}, err
	}
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		return SessionGrant{}, err
	}
	grant, err := s.ResolveSession(ctx, claims.SessionID)
	if err != nil {
		return SessionGrant{}, err
	}
	if grant.User.ID != claims.UserID {
		return SessionGrant{}, errSessionInvalid
	}
	return grant, nil
}

// UpdateProfile changes the session user's display name and locale. Blank
// values keep the current ones.
func (s *AuthService) UpdateProfile(ctx context.Context, sessionID string, displayName string, locale string) (user.User, error) {
	grant, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		return user.User{}, err
	}
	current := grant.User
	if trimmed := strings.TrimSpace(displayName); trimmed != "" {
		current.DisplayName = trimmed
	}
	if strings.TrimSpace(locale) != "" {
		current.Locale = user.NormalizeLocale(locale)
	}
	current.UpdatedAt = s.clock().UTC()
	if err := s.users.UpdateUserProfile(ctx, current.ID, current.DisplayName, current.Locale, current.UpdatedAt); err != nil {
		return user.User{}, err
	}
	return current, nil
}

// Logout revokes a session. Unknown sessions are not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.configured(); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errSessionRequired
	}
	err := s.sessions.RevokeWebSession(ctx, sessionID, s.clock().UTC())
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// CleanupExpired removes expired and revoked sessions.
func (s *AuthService) CleanupExpired(ctx context.Context) (int64, error) {
	if err := s.configured(); err != nil {
		return 0, err
	}
	return s.sessions.DeleteExpiredWebSessions(ctx, s.clock().UTC())
}

func (s *AuthService) grant(session storage.WebSession, u user.User) (SessionGrant, error) {
	accessToken, err := s.tokens.Issue(u.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return SessionGrant{}, err
	}
	return SessionGrant{Session: session, User: u, AccessToken: accessToken}, nil
}
