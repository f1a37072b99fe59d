// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	EligibilityEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_evaluations_total",
			Help: "Eligibility evaluations by outcome",
		},
		[]string{"result"},
	)

	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Profile wizard transitions by step and outcome",
		},
		[]string{"step", "outcome"},
	)

	ProfileMirrorFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_mirror_failures_total",
			Help: "Background profile mirror writes that failed",
		},
	)

	LinkResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "link_resolutions_total",
			Help: "Link resolver lookups by outcome",
		},
		[]string{"outcome"},
	)

	ChatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_replies_total",
			Help: "Chat assistant replies by source",
		},
		[]string{"source"},
	)
)

// RecordEligibility counts one evaluation outcome.
func RecordEligibility(eligible bool) {
	if eligible {
		EligibilityEvaluations.WithLabelValues("eligible").Inc()
		return
	}
	EligibilityEvaluations.WithLabelValues("ineligible").Inc()
}
