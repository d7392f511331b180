package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/orbitwatch/missioncontrol/internal/platform/storage/sqlitemigrate"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/storage"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const authStatisticsQuery = `
SELECT
    (SELECT COUNT(*) FROM users),
    (SELECT COUNT(*) FROM web_sessions WHERE revoked_at IS NULL AND expires_at > ?1);
`

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements auth persistence over SQLite.
//
// A single SQLite file backs users and web sessions so session lookups can
// join against the owning user in one query.
type Store struct {
	sqlDB *sql.DB
}

// DB returns the raw database handle.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Open opens an auth SQLite store and applies bundled migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := "file:" + cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}
	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// runMigrations applies embedded DDL snapshots for known schema versions.
func (s *Store) runMigrations() error {
	return sqlitemigrate.Apply(context.Background(), s.sqlDB, migrations.FS, "")
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// GetAuthStatistics returns user and active session counts.
func (s *Store) GetAuthStatistics(ctx context.Context, now time.Time) (storage.AuthStatistics, error) {
	if err := s.ready(ctx); err != nil {
		return storage.AuthStatistics{}, err
	}

	var stats storage.AuthStatistics
	row := s.sqlDB.QueryRowContext(ctx, authStatisticsQuery, toMillis(now))
	if err := row.Scan(&stats.UserCount, &stats.ActiveSessionCount); err != nil {
		return storage.AuthStatistics{}, fmt.Errorf("get auth statistics: %w", err)
	}
	return stats, nil
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.WebSessionStore = (*Store)(nil)
var _ storage.StatisticsStore = (*Store)(nil)
