// internal/profile/repository.go
package profile

import (
	"context"
	"time"

	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"
)

// Loader is the read side used by eligibility and recommendation call sites.
type Loader interface {
	Get(ctx context.Context, uid string) (*models.StudentProfile, error)
}

type ttlSaver interface {
	SaveWithTTL(ctx context.Context, p *models.StudentProfile, ttl time.Duration) error
}

// Repository reads the local store first and falls back to the mirror,
// repopulating the local store on a mirror hit.
type Repository struct {
	local  Store
	mirror Mirror
	ttl    time.Duration
	logger logger.Logger
}

func NewRepository(local Store, mirror Mirror, ttl time.Duration, log logger.Logger) *Repository {
	return &Repository{
		local:  local,
		mirror: mirror,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-repository"}),
	}
}

// Get returns the profile or ErrProfileNotFound.
func (r *Repository) Get(ctx context.Context, uid string) (*models.StudentProfile, error) {
	if uid == "" {
		return nil, ErrMissingUserID
	}

	p, err := r.local.Load(ctx, uid)
	if err != nil {
		r.logger.Warn("local profile read failed, trying mirror", map[string]interface{}{
			"uid":   uid,
			"error": err.Error(),
		})
	}
	if p != nil {
		return p, nil
	}

	if r.mirror == nil {
		if err != nil {
			return nil, err
		}
		return nil, ErrProfileNotFound
	}

	p, mirrorErr := r.mirror.Fetch(ctx, uid)
	if mirrorErr != nil {
		return nil, mirrorErr
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if err := r.repopulate(ctx, p); err != nil {
		r.logger.Warn("profile cache repopulate failed", map[string]interface{}{
			"uid":   uid,
			"error": err.Error(),
		})
	}
	return p, nil
}

func (r *Repository) repopulate(ctx context.Context, p *models.StudentProfile) error {
	if s, ok := r.local.(ttlSaver); ok && r.ttl > 0 {
		return s.SaveWithTTL(ctx, p, r.ttl)
	}
	return r.local.Save(ctx, p)
}
