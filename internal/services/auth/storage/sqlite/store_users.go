package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/orbitwatch/missioncontrol/internal/platform/errors"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/storage"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/user"
)

const userColumns = `id, username, email, display_name, locale, password_hash, created_at, updated_at`

// PutUser inserts a user record.
func (s *Store) PutUser(ctx context.Context, u user.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email is required")
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.Email,
		u.DisplayName,
		u.Locale,
		u.PasswordHash,
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
	)
	if err != nil {
		if conflict := uniqueConflict(err, u); conflict != nil {
			return conflict
		}
		return fmt.Errorf("put user: %w", err)
	}
	return nil
}

// GetUser fetches a user record by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	if strings.TrimSpace(userID) == "" {
		return user.User{}, fmt.Errorf("user id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	return scanUser(row, "get user")
}

// GetUserByUsername fetches a user record by its normalized username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	if err := s.ready(ctx); err != nil {
		return user.User{}, err
	}
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return user.User{}, fmt.Errorf("username is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row, "get user by username")
}

// UpdateUserProfile changes a user's display name and locale.
func (s *Store) UpdateUserProfile(ctx context.Context, userID string, displayName string, locale string, updatedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE users SET display_name = ?, locale = ?, updated_at = ?
WHERE id = ?`, displayName, locale, toMillis(updatedAt), userID)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row, op string) (user.User, error) {
	var u user.User
	var createdAt, updatedAt int64
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.Locale, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("%s: %w", op, err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// uniqueConflict maps SQLite unique violations on users to domain errors
// that still match storage.ErrAlreadyExists.
func uniqueConflict(err error, u user.User) error {
	message := err.Error()
	if !strings.Contains(message, "UNIQUE constraint failed") {
		return nil
	}
	switch {
	case strings.Contains(message, "users.username"):
		return &apperrors.Error{
			Code:     apperrors.CodeUserUsernameTaken,
			Message:  "username already exists",
			Metadata: map[string]string{"Username": u.Username},
			Cause:    storage.ErrAlreadyExists,
		}
	case strings.Contains(message, "users.email"):
		return apperrors.Wrap(apperrors.CodeUserEmailTaken, "email already exists", storage.ErrAlreadyExists)
	default:
		return apperrors.Wrap(apperrors.CodeAlreadyExists, "user already exists", storage.ErrAlreadyExists)
	}
}
