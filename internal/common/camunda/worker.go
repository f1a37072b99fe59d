// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// WorkerOptions mirrors the per-task worker settings from configuration.
type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
}

// Instrument wraps a job handler with the active-jobs gauge, the duration
// histogram and the OpenTelemetry job counters.
func Instrument(taskType string, handler worker.JobHandler, obs *observability.Observability) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		active := metrics.WorkerJobsActive.WithLabelValues(taskType)
		active.Inc()
		defer func() {
			active.Dec()
			elapsed := time.Since(start)
			metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())
			obs.RecordJobProcessed(context.Background(), taskType, "handled")
			obs.RecordJobDuration(context.Background(), taskType, elapsed, "handled")
		}()

		handler(client, job)
	}
}

// StartWorker opens an instrumented job worker for taskType.
func StartWorker(client zbc.Client, taskType string, opts WorkerOptions, handler worker.JobHandler, obs *observability.Observability, log *zap.Logger) worker.JobWorker {
	w := client.NewJobWorker().
		JobType(taskType).
		Handler(Instrument(taskType, handler, obs)).
		MaxJobsActive(opts.MaxJobsActive).
		Timeout(opts.Timeout).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", opts.MaxJobsActive),
		zap.Duration("timeout", opts.Timeout),
	)
	return w
}
