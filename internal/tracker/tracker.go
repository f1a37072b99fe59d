// internal/tracker/tracker.go
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"scholarship-workers/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scholarship_applications:"

var (
	ErrApplicationNotFound = errors.New("APPLICATION_NOT_FOUND")
	ErrInvalidApplication  = errors.New("APPLICATION_INVALID")
)

// Summary counts a user's applications by status.
type Summary struct {
	Total    int                              `json:"total"`
	ByStatus map[models.ApplicationStatus]int `json:"byStatus"`
}

// Tracker keeps each user's applications in one Redis hash keyed by id.
type Tracker struct {
	rdb redis.Cmdable
	now func() time.Time
}

func New(rdb redis.Cmdable) *Tracker {
	return &Tracker{rdb: rdb, now: time.Now}
}

func Key(uid string) string {
	return keyPrefix + uid
}

// Add stores a new application and returns it with its generated id.
// Status defaults to Applied and AppliedDate to today.
func (t *Tracker) Add(ctx context.Context, uid string, app models.SavedApplication) (*models.SavedApplication, error) {
	if app.Status == "" {
		app.Status = models.StatusApplied
	}
	if app.AppliedDate == "" {
		app.AppliedDate = t.now().Format("2006-01-02")
	}
	if err := check(uid, app); err != nil {
		return nil, err
	}

	app.ID = uuid.NewString()
	if err := t.put(ctx, uid, app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Update replaces the stored application with the same id.
func (t *Tracker) Update(ctx context.Context, uid string, app models.SavedApplication) (*models.SavedApplication, error) {
	if app.ID == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidApplication)
	}
	existing, err := t.get(ctx, uid, app.ID)
	if err != nil {
		return nil, err
	}
	if app.Status == "" {
		app.Status = existing.Status
	}
	if app.AppliedDate == "" {
		app.AppliedDate = existing.AppliedDate
	}
	if err := check(uid, app); err != nil {
		return nil, err
	}
	if err := t.put(ctx, uid, app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (t *Tracker) UpdateStatus(ctx context.Context, uid, id string, status models.ApplicationStatus) (*models.SavedApplication, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidApplication, status)
	}
	app, err := t.get(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	app.Status = status
	if err := t.put(ctx, uid, *app); err != nil {
		return nil, err
	}
	return app, nil
}

func (t *Tracker) Remove(ctx context.Context, uid, id string) error {
	n, err := t.rdb.HDel(ctx, Key(uid), id).Result()
	if err != nil {
		return fmt.Errorf("remove application %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
	}
	return nil
}

// List returns the user's applications, most recently applied first.
func (t *Tracker) List(ctx context.Context, uid string) ([]models.SavedApplication, error) {
	raw, err := t.rdb.HGetAll(ctx, Key(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	apps := make([]models.SavedApplication, 0, len(raw))
	for id, v := range raw {
		var app models.SavedApplication
		if err := json.Unmarshal([]byte(v), &app); err != nil {
			return nil, fmt.Errorf("decode application %s: %w", id, err)
		}
		apps = append(apps, app)
	}

	sort.SliceStable(apps, func(i, j int) bool {
		if apps[i].AppliedDate != apps[j].AppliedDate {
			return apps[i].AppliedDate > apps[j].AppliedDate
		}
		return apps[i].ID < apps[j].ID
	})
	return apps, nil
}

func (t *Tracker) Summary(ctx context.Context, uid string) (*Summary, error) {
	apps, err := t.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return Summarize(apps), nil
}

// Summarize counts apps; every known status is present in ByStatus.
func Summarize(apps []models.SavedApplication) *Summary {
	s := &Summary{Total: len(apps), ByStatus: make(map[models.ApplicationStatus]int, len(models.ApplicationStatuses))}
	for _, st := range models.ApplicationStatuses {
		s.ByStatus[st] = 0
	}
	for _, a := range apps {
		s.ByStatus[a.Status]++
	}
	return s
}

func (t *Tracker) get(ctx context.Context, uid, id string) (*models.SavedApplication, error) {
	v, err := t.rdb.HGet(ctx, Key(uid), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load application %s: %w", id, err)
	}
	var app models.SavedApplication
	if err := json.Unmarshal([]byte(v), &app); err != nil {
		return nil, fmt.Errorf("decode application %s: %w", id, err)
	}
	return &app, nil
}

func (t *Tracker) put(ctx context.Context, uid string, app models.SavedApplication) error {
	raw, err := json.Marshal(app)
	if err != nil {
		return err
	}
	if err := t.rdb.HSet(ctx, Key(uid), app.ID, raw).Err(); err != nil {
		return fmt.Errorf("save application %s: %w", app.ID, err)
	}
	return nil
}

func check(uid string, app models.SavedApplication) error {
	switch {
	case uid == "":
		return fmt.Errorf("%w: userId is required", ErrInvalidApplication)
	case strings.TrimSpace(app.PortalName) == "":
		return fmt.Errorf("%w: portalName is required", ErrInvalidApplication)
	case !app.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidApplication, app.Status)
	}
	return nil
}
