// internal/profile/store.go
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scholarship-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "student_profile_"

var (
	ErrProfileNotFound        = errors.New("PROFILE_NOT_FOUND")
	ErrProfileAlreadyComplete = errors.New("PROFILE_ALREADY_COMPLETE")
	ErrInvalidStep            = errors.New("INVALID_STEP")
	ErrStepOutOfOrder         = errors.New("STEP_OUT_OF_ORDER")
	ErrMissingUserID          = errors.New("USER_ID_REQUIRED")
)

// Store is the local, synchronous profile store. Load returns (nil, nil)
// when the user has no profile yet.
type Store interface {
	Load(ctx context.Context, uid string) (*models.StudentProfile, error)
	Save(ctx context.Context, p *models.StudentProfile) error
	Clear(ctx context.Context, uid string) error
}

// Key is the storage key for uid.
func Key(uid string) string {
	return keyPrefix + uid
}

// RedisStore keeps one JSON document per user.
type RedisStore struct {
	rdb redis.Cmdable
}

func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, uid string) (*models.StudentProfile, error) {
	raw, err := s.rdb.Get(ctx, Key(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", uid, err)
	}

	var p models.StudentProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	return &p, nil
}

func (s *RedisStore) Save(ctx context.Context, p *models.StudentProfile) error {
	return s.SaveWithTTL(ctx, p, 0)
}

// SaveWithTTL writes p with an expiry; the repository uses it when it
// repopulates the cache from the mirror.
func (s *RedisStore) SaveWithTTL(ctx context.Context, p *models.StudentProfile, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.UID, err)
	}
	if err := s.rdb.Set(ctx, Key(p.UID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("save profile %s: %w", p.UID, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, uid string) error {
	if err := s.rdb.Del(ctx, Key(uid)).Err(); err != nil {
		return fmt.Errorf("clear profile %s: %w", uid, err)
	}
	return nil
}
