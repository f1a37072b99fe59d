// cmd/tools/registry-updater/main_test.go
package main

import (
	"path/filepath"
	"testing"
	"time"

	"scholarship-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func exported(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, exportRegistry(path, fixedNow))
	return path
}

func TestExportAndValidate(t *testing.T) {
	path := exported(t)

	n, err := validateRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01T10:00:00Z", reg.LastUpdated)
}

func TestUpdateActivity(t *testing.T) {
	path := exported(t)

	require.NoError(t, updateActivity(path, "chatbot-reply", "timeout", "90s", fixedNow))
	require.NoError(t, updateActivity(path, "chatbot-reply", "retries", "2", fixedNow))

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, ok := reg.Find("chatbot-reply")
	require.True(t, ok)
	assert.Equal(t, "90s", a.Timeout)
	assert.Equal(t, 2, a.Retries)
}

func TestUpdateActivity_Errors(t *testing.T) {
	path := exported(t)

	tests := []struct {
		name  string
		id    string
		field string
		value string
	}{
		{"unknown activity", "crm-user-create", "status", "completed"},
		{"unknown field", "chatbot-reply", "owner", "x"},
		{"bad timeout", "chatbot-reply", "timeout", "later"},
		{"bad retries", "chatbot-reply", "retries", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, updateActivity(path, tt.id, tt.field, tt.value, fixedNow))
		})
	}
}

func TestValidateRegistry_Drift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.json")
	reg := registry.Builtin()
	reg.Activities = reg.Activities[1:]
	require.NoError(t, reg.Save(path))

	_, err := validateRegistry(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evaluate-eligibility")
}
