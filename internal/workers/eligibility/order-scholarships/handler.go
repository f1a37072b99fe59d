// internal/workers/eligibility/order-scholarships/handler.go
package orderscholarships

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/profile"
	"scholarship-workers/internal/scholarship"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "order-scholarships"
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
	state, err := h.resolveState(ctx, input)
	if err != nil {
		return nil, err
	}

	output := &Output{
		State:        state,
		Portals:      scholarship.OrderPortals(scholarship.Portals(), state),
		Scholarships: scholarship.OrderScholarships(scholarship.IndividualScholarships(), state),
		PriorityList: scholarship.FormatPriorityList(state),
	}

	h.logger.Debug("catalog ordered", map[string]interface{}{
		"state":        state,
		"portals":      len(output.Portals),
		"scholarships": len(output.Scholarships),
	})
	return output, nil
}

// resolveState prefers the explicit state, then the stored profile's. A
// student without a profile gets the national ordering.
func (h *Handler) resolveState(ctx context.Context, input *Input) (string, error) {
	if s := strings.TrimSpace(input.State); s != "" {
		return s, nil
	}
	if input.UserID == "" || h.profiles == nil {
		return "", nil
	}

	p, err := h.profiles.Get(ctx, input.UserID)
	switch {
	case stderrors.Is(err, profile.ErrProfileNotFound):
		return "", nil
	case err != nil:
		return "", errors.NewProfileStoreFailedError(err)
	}
	return p.State, nil
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
