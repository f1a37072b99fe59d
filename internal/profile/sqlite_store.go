// internal/profile/sqlite_store.go
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scholarship-workers/internal/models"
)

// SQLiteStore is the embedded alternative to RedisStore for single-node
// deployments.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore migrates db and returns the store.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if err := migrateSQLite(ctx, db); err != nil {
		return nil, fmt.Errorf("migrate profile store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS student_profiles (
  uid TEXT PRIMARY KEY,
  current_step INTEGER NOT NULL DEFAULT 1,
  is_complete INTEGER NOT NULL DEFAULT 0,
  data TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Load(ctx context.Context, uid string) (*models.StudentProfile, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM student_profiles WHERE uid = ?`, uid).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", uid, err)
	}

	var p models.StudentProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	return &p, nil
}

func (s *SQLiteStore) Save(ctx context.Context, p *models.StudentProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.UID, err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO student_profiles (uid, current_step, is_complete, data, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(uid) DO UPDATE SET
  current_step = excluded.current_step,
  is_complete = excluded.is_complete,
  data = excluded.data,
  updated_at = excluded.updated_at`,
		p.UID, p.CurrentStep, p.IsProfileComplete, string(raw), p.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save profile %s: %w", p.UID, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, uid string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM student_profiles WHERE uid = ?`, uid); err != nil {
		return fmt.Errorf("clear profile %s: %w", uid, err)
	}
	return nil
}
