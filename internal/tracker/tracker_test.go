// internal/tracker/tracker_test.go
package tracker

import (
	"context"
	"testing"
	"time"

	"scholarship-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*Tracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tr := New(rdb)
	tr.now = func() time.Time { return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC) }
	return tr, mr
}

func TestTracker_AddDefaults(t *testing.T) {
	tr, mr := newTestTracker(t)

	app, err := tr.Add(context.Background(), "u1", models.SavedApplication{PortalName: "National Scholarship Portal"})

	require.NoError(t, err)
	assert.NotEmpty(t, app.ID)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Equal(t, "2026-08-15", app.AppliedDate)
	assert.True(t, mr.Exists("scholarship_applications:u1"))
}

func TestTracker_AddValidation(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	tests := []struct {
		name string
		uid  string
		app  models.SavedApplication
	}{
		{"missing user", "", models.SavedApplication{PortalName: "NSP"}},
		{"missing portal", "u1", models.SavedApplication{PortalName: "  "}},
		{"bad status", "u1", models.SavedApplication{PortalName: "NSP", Status: "Pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Add(ctx, tt.uid, tt.app)
			assert.ErrorIs(t, err, ErrInvalidApplication)
		})
	}
}

func TestTracker_ListNewestFirst(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	for _, d := range []string{"2026-06-01", "2026-08-01", "2026-07-01"} {
		_, err := tr.Add(ctx, "u1", models.SavedApplication{PortalName: "Portal " + d, AppliedDate: d})
		require.NoError(t, err)
	}

	apps, err := tr.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "2026-08-01", apps[0].AppliedDate)
	assert.Equal(t, "2026-07-01", apps[1].AppliedDate)
	assert.Equal(t, "2026-06-01", apps[2].AppliedDate)

	empty, err := tr.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTracker_UpdateStatusRemoveSummary(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.Add(ctx, "u1", models.SavedApplication{PortalName: "Bihar Post Matric"})
	require.NoError(t, err)
	b, err := tr.Add(ctx, "u1", models.SavedApplication{PortalName: "HDFC Badhte Kadam"})
	require.NoError(t, err)

	updated, err := tr.UpdateStatus(ctx, "u1", a.ID, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, updated.Status)

	b.Notes = "interview on Monday"
	b.Status = ""
	edited, err := tr.Update(ctx, "u1", *b)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApplied, edited.Status)
	assert.Equal(t, "interview on Monday", edited.Notes)

	s, err := tr.Summary(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.ByStatus[models.StatusAccepted])
	assert.Equal(t, 1, s.ByStatus[models.StatusApplied])
	assert.Equal(t, 0, s.ByStatus[models.StatusRejected])

	require.NoError(t, tr.Remove(ctx, "u1", a.ID))
	assert.ErrorIs(t, tr.Remove(ctx, "u1", a.ID), ErrApplicationNotFound)

	_, err = tr.UpdateStatus(ctx, "u1", a.ID, models.StatusRejected)
	assert.ErrorIs(t, err, ErrApplicationNotFound)

	_, err = tr.UpdateStatus(ctx, "u1", b.ID, "Lost")
	assert.ErrorIs(t, err, ErrInvalidApplication)
}
