// internal/workers/profile/save-profile-step/handler.go
package saveprofilestep

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/common/validation"
	"scholarship-workers/internal/models"
	"scholarship-workers/internal/profile"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "save-profile-step"
)

type Handler struct {
	config       *Config
	wizard       *profile.Wizard
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, wizard *profile.Wizard, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		wizard:       wizard,
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

	action := input.Action
	if action == "" {
		action = ActionNext
	}

	h.logger.Debug("profile step action", map[string]interface{}{
		"uid":    input.UserID,
		"step":   input.Step,
		"action": action,
	})

	switch action {
	case ActionNext:
		return h.next(ctx, input)
	case ActionPrevious:
		step := h.wizard.Previous(input.Step)
		return h.output(input.UserID, step, profile.State(step), nil), nil
	case ActionResume:
		state, p, err := h.wizard.Resume(ctx, input.UserID)
		if err != nil {
			return nil, mapError(input.UserID, err)
		}
		return h.output(input.UserID, stepOf(p), state, nil), nil
	case ActionReopen:
		p, err := h.wizard.ReopenForEdit(ctx, input.UserID)
		if err != nil {
			return nil, mapError(input.UserID, err)
		}
		return h.output(input.UserID, stepOf(p), profile.State(stepOf(p)), nil), nil
	case ActionClear:
		if err := h.wizard.Clear(ctx, input.UserID); err != nil {
			return nil, mapError(input.UserID, err)
		}
		return h.output(input.UserID, profile.FirstStep, profile.Step1, nil), nil
	default:
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown action %q", action))
	}
}

func (h *Handler) next(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.wizard.Next(ctx, input.UserID, input.Email, input.Step, input.Form)
	if err != nil {
		return nil, mapError(input.UserID, err)
	}

	if len(res.Errors) > 0 {
		h.logger.Info("profile step rejected", map[string]interface{}{
			"uid":    input.UserID,
			"step":   input.Step,
			"errors": len(res.Errors),
		})
	}

	step := res.Step
	if res.Profile != nil && len(res.Errors) == 0 {
		step = stepOf(res.Profile)
	}
	out := h.output(input.UserID, step, res.State, res.Errors)
	out.Complete = res.Complete
	return out, nil
}

func (h *Handler) output(uid string, step int, state profile.State, errs []validation.ValidationError) *Output {
	if errs == nil {
		errs = []validation.ValidationError{}
	}
	return &Output{
		UserID:      uid,
		CurrentStep: step,
		State:       state.String(),
		Complete:    state == profile.Complete,
		Valid:       len(errs) == 0,
		Errors:      errs,
	}
}

func stepOf(p *models.StudentProfile) int {
	if p == nil || p.CurrentStep < profile.FirstStep {
		return profile.FirstStep
	}
	return p.CurrentStep
}

func mapError(uid string, err error) error {
	switch {
	case stderrors.Is(err, profile.ErrMissingUserID):
		return errors.NewInvalidInputError("userId is required")
	case stderrors.Is(err, profile.ErrInvalidStep), stderrors.Is(err, profile.ErrStepOutOfOrder):
		return errors.NewProfileValidationFailedError(err.Error())
	case stderrors.Is(err, profile.ErrProfileAlreadyComplete):
		return errors.NewProfileAlreadyCompleteError(uid)
	case stderrors.Is(err, profile.ErrProfileNotFound):
		return errors.NewProfileNotFoundError(uid)
	default:
		return errors.NewProfileStoreFailedError(err)
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
