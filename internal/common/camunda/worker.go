// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/models"
)

// Execute is one worker's business logic.
type Execute[In, Out any] func(ctx context.Context, input *In) (*Out, error)

// JobRunner carries what every job needs besides its business logic.
type JobRunner struct {
	Timeout      time.Duration
	ErrorHandler *errors.ErrorHandler
	Logger       logger.Logger
}

// RunJob decodes the job variables into In, runs exec under the runner's
// timeout and completes the job with the result. Soft errors complete the
// job with an {"error": ...} variable; everything else goes through the
// ErrorHandler.
func RunJob[In, Out any](r JobRunner, client worker.JobClient, job entities.Job, exec Execute[In, Out]) {
	log := r.Logger.With(map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})
	log.Info("processing job", nil)

	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	input, err := DecodeVariables[In](job)
	if err != nil {
		r.ErrorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output, err := exec(ctx, input)
	variables, err := JobVariables(output, err)
	if err != nil {
		r.ErrorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.Key).VariablesFromObject(variables)
	if err != nil {
		r.ErrorHandler.HandleJobError(ctx, client, job, errors.NewInternalError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to complete job", map[string]interface{}{"error": err.Error()})
		return
	}
	log.Info("job completed", nil)
}

// DecodeVariables unmarshals job variables into a fresh In.
func DecodeVariables[In any](job entities.Job) (*In, error) {
	var input In
	raw := job.Variables
	if raw == "" {
		raw = "{}"
	}
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil, errors.NewInvalidRequestError("parse job variables", err)
	}
	return &input, nil
}

// JobVariables maps an action outcome onto the variables a completed job
// carries. Soft errors become an ErrorResult.
func JobVariables[Out any](output *Out, err error) (interface{}, error) {
	if err == nil {
		return output, nil
	}
	if body, ok := models.SoftResult(err); ok {
		return body, nil
	}
	return nil, err
}

// StartWorker opens a job worker for taskType using the worker's config.
func StartWorker(zb zbc.Client, taskType string, wcfg config.WorkerConfig, handler worker.JobHandler) worker.JobWorker {
	return zb.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Name(taskType).
		Open()
}
