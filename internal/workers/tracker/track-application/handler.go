// internal/workers/tracker/track-application/handler.go
package trackapplication

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/tracker"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "track-application"
)

type Handler struct {
	config       *Config
	tracker      *tracker.Tracker
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, t *tracker.Tracker, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		tracker:      t,
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
	if input.UserID == "" {
		return nil, errors.NewInvalidInputError("userId is required")
	}

	var (
		app *models.SavedApplication
		err error
	)

	switch input.Action {
	case ActionAdd:
		if input.Application == nil {
			return nil, errors.NewInvalidInputError("application is required")
		}
		app, err = h.tracker.Add(ctx, input.UserID, *input.Application)
	case ActionUpdate:
		if input.Application == nil {
			return nil, errors.NewInvalidInputError("application is required")
		}
		app, err = h.tracker.Update(ctx, input.UserID, *input.Application)
	case ActionUpdateStatus:
		app, err = h.tracker.UpdateStatus(ctx, input.UserID, input.ApplicationID, input.Status)
	case ActionRemove:
		if input.ApplicationID == "" {
			return nil, errors.NewInvalidInputError("applicationId is required")
		}
		err = h.tracker.Remove(ctx, input.UserID, input.ApplicationID)
	case ActionList, "":
	default:
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown action %q", input.Action))
	}
	if err != nil {
		return nil, mapError(input.Action, targetID(input), err)
	}

	apps, err := h.tracker.List(ctx, input.UserID)
	if err != nil {
		return nil, mapError(ActionList, "", err)
	}

	summary := tracker.Summarize(apps)
	h.logger.Info("applications tracked", map[string]interface{}{
		"userId": input.UserID,
		"action": input.Action,
		"total":  summary.Total,
	})

	return &Output{Application: app, Applications: apps, Summary: summary}, nil
}

func targetID(input *Input) string {
	if input.ApplicationID != "" {
		return input.ApplicationID
	}
	if input.Application != nil {
		return input.Application.ID
	}
	return ""
}

func mapError(action, id string, err error) error {
	switch {
	case stderrors.Is(err, tracker.ErrApplicationNotFound):
		return errors.NewApplicationNotFoundError(id)
	case stderrors.Is(err, tracker.ErrInvalidApplication):
		return errors.NewApplicationValidationFailedError(err.Error())
	default:
		return errors.NewQueryExecutionFailedError("applications "+action, err)
	}
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
