// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{"validation is a business error", NewProfileValidationFailedError("fullName"), "PROFILE_INVALID", 0},
		{"store failure retries", NewProfileStoreFailedError(fmt.Errorf("redis down")), "PROFILE_STORE_FAILED", 3},
		{"llm timeout retries once", NewLLMTimeoutError(), "LLM_TIMEOUT", 1},
		{"unmapped code falls back", NewBusinessRuleError("x", "y"), "BUSINESS_RULE_VIOLATION", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])
		})
	}
}

func TestConvertToBPMNError_CarriesMetadata(t *testing.T) {
	err := NewProfileValidationFailedError("2 fields").WithMetadata("step", 1)

	vars := ConvertToBPMNError(err).ToErrorVariables()

	assert.Equal(t, 1, vars["step"])
	assert.Equal(t, "PROFILE_INVALID", vars["errorCode"])
	assert.Equal(t, false, vars["retryable"])
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", NewProfileStoreFailedError(fmt.Errorf("timeout")))
	assert.Equal(t, ErrCodeProfileStoreFailed, Normalize(wrapped).Code)

	plain := Normalize(fmt.Errorf("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.False(t, plain.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PROFILE", GetErrorCategory(ErrCodeProfileNotFound))
	assert.Equal(t, "TRACKER", GetErrorCategory(ErrCodeApplicationNotFound))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeLLMTimeout))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidInput))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeScholarshipNotFound))
}
