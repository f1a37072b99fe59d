// internal/profile/mirror.go
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"scholarship-workers/internal/models"
)

// Mirror is the remote copy of the profile. Writes are best-effort.
type Mirror interface {
	Mirror(ctx context.Context, p *models.StudentProfile) error
	Fetch(ctx context.Context, uid string) (*models.StudentProfile, error)
	Delete(ctx context.Context, uid string) error
}

const mirrorSchema = `
CREATE TABLE IF NOT EXISTS student_profiles (
  uid TEXT PRIMARY KEY,
  email TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  current_step INTEGER NOT NULL DEFAULT 1,
  is_complete BOOLEAN NOT NULL DEFAULT FALSE,
  data JSONB NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const upsertProfile = `
INSERT INTO student_profiles (uid, email, state, current_step, is_complete, data, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
ON CONFLICT (uid) DO UPDATE SET
  email = EXCLUDED.email,
  state = EXCLUDED.state,
  current_step = EXCLUDED.current_step,
  is_complete = EXCLUDED.is_complete,
  data = EXCLUDED.data,
  updated_at = NOW()`

// PostgresMirror stores the profile document as JSONB.
type PostgresMirror struct {
	db *sql.DB
}

func NewPostgresMirror(db *sql.DB) *PostgresMirror {
	return &PostgresMirror{db: db}
}

// EnsureSchema creates the mirror table if it does not exist.
func (m *PostgresMirror) EnsureSchema(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, mirrorSchema); err != nil {
		return fmt.Errorf("create student_profiles: %w", err)
	}
	return nil
}

func (m *PostgresMirror) Mirror(ctx context.Context, p *models.StudentProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.UID, err)
	}
	if _, err := m.db.ExecContext(ctx, upsertProfile,
		p.UID, p.Email, p.State, p.CurrentStep, p.IsProfileComplete, raw); err != nil {
		return fmt.Errorf("mirror profile %s: %w", p.UID, err)
	}
	return nil
}

func (m *PostgresMirror) Fetch(ctx context.Context, uid string) (*models.StudentProfile, error) {
	var raw []byte
	err := m.db.QueryRowContext(ctx, `SELECT data FROM student_profiles WHERE uid = $1`, uid).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w", uid, err)
	}

	var p models.StudentProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	return &p, nil
}

func (m *PostgresMirror) Delete(ctx context.Context, uid string) error {
	if _, err := m.db.ExecContext(ctx, `DELETE FROM student_profiles WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("delete profile %s: %w", uid, err)
	}
	return nil
}
