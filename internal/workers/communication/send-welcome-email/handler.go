// internal/workers/communication/send-welcome-email/handler.go
package sendwelcomeemail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"scholarship-workers/internal/common/errors"
	"scholarship-workers/internal/common/logger"
	"scholarship-workers/internal/common/metrics"
	"scholarship-workers/internal/notify"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-welcome-email"
)

type Sender interface {
	Send(ctx context.Context, to notify.Recipient) (*notify.Result, error)
}

type Handler struct {
	config       *Config
	sender       Sender
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, sender Sender, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		sender:       sender,
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
	input.Email = strings.TrimSpace(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if result := inputValidator.Validate(toMap(input)); !result.Valid {
		return nil, errors.NewInvalidInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	res, err := h.sender.Send(ctx, notify.Recipient{
		Email:       input.Email,
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	h.logger.Info("welcome notification sent", map[string]interface{}{
		"messageId": res.MessageID,
		"smsSent":   res.SMSSent,
	})

	return &Output{
		MessageID: res.MessageID,
		EmailSent: res.EmailSent,
		SMSSent:   res.SMSSent,
	}, nil
}

func toMap(input *Input) map[string]interface{} {
	m := map[string]interface{}{"email": input.Email}
	if input.Name != "" {
		m["name"] = input.Name
	}
	if input.PhoneNumber != "" {
		m["phoneNumber"] = input.PhoneNumber
	}
	return m
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
