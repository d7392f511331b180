package storage

import (
	"context"
	"time"

	"github.com/orbitwatch/missioncontrol/internal/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/user"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// ErrAlreadyExists indicates a unique constraint rejected a write.
var ErrAlreadyExists = errors.New(errors.CodeAlreadyExists, "record already exists")

// UserStore persists auth user records.
type UserStore interface {
	// PutUser inserts a new user. A username or email collision returns an
	// error matching ErrAlreadyExists.
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
	// UpdateUserProfile changes the display name and locale of a user.
	UpdateUserProfile(ctx context.Context, userID string, displayName string, locale string, updatedAt time.Time) error
}

// WebSession is a durable authenticated browser session.
type WebSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session is usable at now.
func (s WebSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}

// WebSessionStore persists web sessions.
type WebSessionStore interface {
	PutWebSession(ctx context.Context, session WebSession) error
	GetWebSession(ctx context.Context, id string) (WebSession, error)
	RevokeWebSession(ctx context.Context, id string, revokedAt time.Time) error
	// DeleteExpiredWebSessions removes sessions expired or revoked before now
	// and returns how many rows were removed.
	DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error)
}

// AuthStatistics contains aggregate counts across auth data.
type AuthStatistics struct {
	UserCount          int64
	ActiveSessionCount int64
}

// StatisticsStore provides aggregate auth statistics.
type StatisticsStore interface {
	GetAuthStatistics(ctx context.Context, now time.Time) (AuthStatistics, error)
}
