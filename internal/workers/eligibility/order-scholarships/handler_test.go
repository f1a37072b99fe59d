// internal/workers/eligibility/order-scholarships/handler_test.go
package orderscholarships

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/profile"
	"scholarship-workers/internal/scholarship"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeLoader struct {
	profiles map[string]*models.StudentProfile
	err      error
}

func (f *fakeLoader) Get(ctx context.Context, uid string) (*models.StudentProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[uid]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func newTestHandler(t *testing.T, loader profile.Loader) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, loader, logger.NewTestLogger(t))
}

func jurisdictions(portals []models.Portal) []models.Jurisdiction {
	out := make([]models.Jurisdiction, len(portals))
	for i, p := range portals {
		out[i] = p.Jurisdiction
	}
	return out
}

// ==========================
// Ordering Tests
// ==========================

func TestHandler_Execute_NoState(t *testing.T) {
	h := newTestHandler(t, nil)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Empty(t, output.State)
	require.NotEmpty(t, output.Portals)
	assert.Equal(t, models.JurisdictionCentral, output.Portals[0].Jurisdiction)
	require.NotEmpty(t, output.Scholarships)
	assert.Equal(t, models.JurisdictionPrivate, output.Scholarships[len(output.Scholarships)-1].Jurisdiction)

	want := jurisdictions(scholarship.OrderPortals(scholarship.Portals(), ""))
	if diff := cmp.Diff(want, jurisdictions(output.Portals)); diff != "" {
		t.Errorf("portal jurisdictions mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, output.PriorityList, "complete your profile")
}

func TestHandler_Execute_ExplicitState(t *testing.T) {
	h := newTestHandler(t, nil)

	output, err := h.Execute(context.Background(), &Input{State: "  Maharashtra "})

	require.NoError(t, err)
	assert.Equal(t, "Maharashtra", output.State)
	assert.Equal(t, "maharashtra", output.Portals[0].ID)
	assert.Equal(t, models.JurisdictionState, output.Scholarships[0].Jurisdiction)
	assert.Contains(t, output.PriorityList, "State: Maharashtra")
}

func TestHandler_Execute_StateFromProfile(t *testing.T) {
	loader := &fakeLoader{profiles: map[string]*models.StudentProfile{
		"student-1": {UID: "student-1", State: "Maharashtra"},
	}}
	h := newTestHandler(t, loader)

	fromProfile, err := h.Execute(context.Background(), &Input{UserID: "student-1"})
	require.NoError(t, err)

	explicit, err := h.Execute(context.Background(), &Input{State: "Maharashtra"})
	require.NoError(t, err)

	if diff := cmp.Diff(explicit, fromProfile); diff != "" {
		t.Errorf("profile-derived ordering mismatch (-explicit +profile):\n%s", diff)
	}
}

func TestHandler_Execute_ExplicitStateWins(t *testing.T) {
	loader := &fakeLoader{profiles: map[string]*models.StudentProfile{
		"student-1": {UID: "student-1", State: "Bihar"},
	}}
	h := newTestHandler(t, loader)

	output, err := h.Execute(context.Background(), &Input{UserID: "student-1", State: "Kerala"})

	require.NoError(t, err)
	assert.Equal(t, "Kerala", output.State)
}

func TestHandler_Execute_MissingProfileFallsBackToNational(t *testing.T) {
	h := newTestHandler(t, &fakeLoader{profiles: map[string]*models.StudentProfile{}})

	output, err := h.Execute(context.Background(), &Input{UserID: "ghost"})
	require.NoError(t, err)

	national, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	if diff := cmp.Diff(jurisdictions(national.Portals), jurisdictions(output.Portals)); diff != "" {
		t.Errorf("jurisdiction order mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_Execute_StoreFailure(t *testing.T) {
	h := newTestHandler(t, &fakeLoader{err: errors.New("redis down")})

	_, err := h.Execute(context.Background(), &Input{UserID: "student-1"})

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeProfileStoreFailed, commonerrors.Normalize(err).Code)
}
