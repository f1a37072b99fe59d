// internal/profile/repository_test.go
package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_LocalHit(t *testing.T) {
	store := newMemStore()
	store.profiles["u1"] = sampleProfile()
	mirror := &fakeMirror{err: errors.New("must not be called")}

	repo := NewRepository(store, mirror, time.Hour, logger.NewTestLogger(t))
	p, err := repo.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "Asha Kumari", p.FullName)
}

func TestRepository_MirrorFallbackRepopulates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	mirror := &fakeMirror{stored: map[string]*models.StudentProfile{"u1": sampleProfile()}}
	repo := NewRepository(NewRedisStore(rdb), mirror, 30*time.Minute, logger.NewTestLogger(t))

	p, err := repo.Get(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "Bihar", p.State)
	assert.True(t, mr.Exists("student_profile_u1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("student_profile_u1"))
}

func TestRepository_NotFound(t *testing.T) {
	tests := []struct {
		name    string
		mirror  Mirror
		uid     string
		wantErr error
	}{
		{"no mirror", nil, "u1", ErrProfileNotFound},
		{"mirror miss", &fakeMirror{stored: map[string]*models.StudentProfile{}}, "u1", ErrProfileNotFound},
		{"empty uid", nil, "", ErrMissingUserID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository(newMemStore(), tt.mirror, time.Hour, logger.NewTestLogger(t))
			_, err := repo.Get(context.Background(), tt.uid)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type recordingPublisher struct {
	name, key string
	vars      map[string]interface{}
}

func (r *recordingPublisher) Publish(_ context.Context, name, key string, vars map[string]interface{}) error {
	r.name, r.key, r.vars = name, key, vars
	return nil
}

func TestPublishCompletion(t *testing.T) {
	pub := &recordingPublisher{}
	hook := PublishCompletion(pub)

	require.NoError(t, hook(context.Background(), sampleProfile()))

	assert.Equal(t, "profile-completed", pub.name)
	assert.Equal(t, "u1", pub.key)
	assert.Equal(t, "Bihar", pub.vars["state"])
}
