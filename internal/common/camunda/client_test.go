// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"fmt"
	"testing"
	"time"

	"scholarship-workers/internal/common/errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: 2,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	c := newTestClient()
	calls := 0

	result, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("rpc error: code = Unavailable")
		}
		return "ok", nil
	}, "publish")

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnPermanentError(t *testing.T) {
	c := newTestClient()
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, fmt.Errorf("permission denied")
	}, "publish")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	std := errors.Normalize(err)
	assert.Equal(t, errors.ErrorCode("AUTHENTICATION_ERROR"), std.Code)
}

func TestExecuteWithRetry_MapsTimeout(t *testing.T) {
	c := newTestClient()

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		return nil, fmt.Errorf("context deadline exceeded")
	}, "publish")

	require.Error(t, err)
	assert.Equal(t, errors.ErrorCode("TIMEOUT_ERROR"), errors.Normalize(err).Code)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(fmt.Errorf("connection refused")))
	assert.True(t, isRetryableZeebeError(fmt.Errorf("Deadline Exceeded")))
	assert.False(t, isRetryableZeebeError(fmt.Errorf("invalid argument")))
}

func TestInstrument_CallsHandler(t *testing.T) {
	called := false
	h := Instrument("test-task", func(worker.JobClient, entities.Job) { called = true }, nil)

	h(nil, entities.Job{})

	assert.True(t, called)
}
