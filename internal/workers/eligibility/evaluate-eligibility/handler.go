// internal/workers/eligibility/evaluate-eligibility/handler.go
package evaluateeligibility

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/profile"
	"scholarship-workers/internal/scholarship"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-eligibility"
)

type Handler struct {
	config       *Config
	profiles     profile.Loader
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, profiles profile.Loader, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		profiles:     profiles,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	p, err := h.loadProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	if input.ScholarshipID != "" {
		return h.evaluateOne(p, input.ScholarshipID)
	}

	recs := scholarship.Recommend(p)
	h.logger.Info("recommendations computed", map[string]interface{}{
		"uid":      p.UID,
		"state":    p.State,
		"eligible": len(recs),
	})
	return &Output{Recommendations: recs, EligibleCount: len(recs)}, nil
}

func (h *Handler) evaluateOne(p *models.StudentProfile, id string) (*Output, error) {
	if _, ok := scholarship.ScholarshipByID(id); !ok {
		return nil, errors.NewScholarshipNotFoundError(id)
	}

	res := scholarship.EvaluateByID(p, id)
	metrics.RecordEligibility(res.IsEligible)

	score := 1
	if pred, ok := scholarship.PredicateFor(id); ok {
		score = scholarship.Score(p, pred)
	}

	out := &Output{
		Recommendations: []models.EligibleScholarship{},
		Result:          &res,
		MatchScore:      &score,
	}
	if res.IsEligible {
		out.EligibleCount = 1
	}
	return out, nil
}

func (h *Handler) loadProfile(ctx context.Context, input *Input) (*models.StudentProfile, error) {
	if input.Profile != nil {
		return input.Profile, nil
	}
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("either profile or userId is required")
	}
	if h.profiles == nil {
		return nil, errors.NewProfileNotFoundError(input.UserID)
	}

	p, err := h.profiles.Get(ctx, input.UserID)
	switch {
	case stderrors.Is(err, profile.ErrProfileNotFound):
		return nil, errors.NewProfileNotFoundError(input.UserID)
	case err != nil:
		return nil, errors.NewProfileStoreFailedError(err)
	}
	return p, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
