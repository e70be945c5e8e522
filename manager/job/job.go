/*
 *     Copyright 2026 The Aquaforecast Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

//go:generate mockgen -destination mocks/job_mock.go -source job.go -package mocks

package job

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/events"
	"github.com/aquaforecast/aquaforecast/manager/metrics"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/service"
	"github.com/aquaforecast/aquaforecast/manager/types"
	"github.com/aquaforecast/aquaforecast/trainer/training"
)

// tracer is a global tracer for job.
var tracer = otel.Tracer("manager")

// Job accepts retraining requests and runs them in the background.
type Job interface {
	// RequestRetrain creates a pending task and schedules its training run,
	// it returns without waiting for the run.
	RequestRetrain(context.Context, types.CreateRetrainRequest, string) (*models.TrainingTask, error)

	// StreamTrainingTasks writes progress events of training tasks to w
	// until ctx is done.
	StreamTrainingTasks(context.Context, io.Writer) error

	// Running returns the number of runs holding a pool slot.
	Running() int64

	// Stop rejects new runs and waits for the scheduled ones until ctx is done.
	Stop(context.Context) error
}

type job struct {
	config   *config.TrainingConfig
	service  service.Service
	training training.Training
	bus      events.Bus
	pool     *pool
}

// New returns a new Job.
func New(cfg *config.Config, service service.Service, training training.Training, bus events.Bus) (Job, error) {
	pool, err := newPool(&cfg.Training)
	if err != nil {
		return nil, err
	}

	logger.JobLogger.Infof("training pool size is %d, nice is %d", pool.size, pool.nice)
	return &job{
		config:   &cfg.Training,
		service:  service,
		training: training,
		bus:      bus,
		pool:     pool,
	}, nil
}

// RequestRetrain creates a pending task and schedules its training run.
func (j *job) RequestRetrain(ctx context.Context, req types.CreateRetrainRequest, initiatedBy string) (*models.TrainingTask, error) {
	ctx, span := tracer.Start(ctx, config.SpanRequestRetrain, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(config.AttributeBaseModelID.String(req.BaseModelID))
	span.SetAttributes(config.AttributeNewVersion.String(req.NewVersion))

	if req.BaseModelID == "" {
		return nil, aferrors.New(aferrors.Validation, "base_model_id is required")
	}

	ids, err := j.service.GetUnusedFarmDataIDs(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if len(ids) < j.config.MinSamples {
		return nil, aferrors.Newf(aferrors.Validation, "insufficient unused farm data: %d samples (minimum %d required)", len(ids), j.config.MinSamples)
	}

	req.SetDefaults()
	task, err := j.service.CreateTrainingTask(ctx, req, initiatedBy)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(config.AttributeTrainingTaskID.String(task.ID))

	run := &training.Request{
		TaskID:       task.ID,
		BaseModelID:  req.BaseModelID,
		NewVersion:   req.NewVersion,
		InitiatedBy:  initiatedBy,
		Epochs:       req.Epochs,
		BatchSize:    req.BatchSize,
		LearningRate: req.LearningRate,
		Notes:        req.Notes,
	}

	// The run outlives the request, only the span link is carried over.
	runCtx := trace.ContextWithSpanContext(context.Background(), span.SpanContext())
	if err := j.pool.Go(func() { j.run(runCtx, run) }); err != nil {
		if failErr := j.service.FailTrainingTask(context.Background(), task.ID, err.Error()); failErr != nil {
			logger.WithTask(task.ID).Errorf("fail training task error: %s", failErr.Error())
		}

		return nil, err
	}

	metrics.TrainingTaskCount.Inc()
	logger.WithTaskAndVersion(task.ID, task.NewVersion).Infof("training task accepted by %s", initiatedBy)
	return task, nil
}

// run drives one task through the ledger. Failures end in the ledger and
// never reach the requester.
func (j *job) run(ctx context.Context, req *training.Request) {
	ctx, span := tracer.Start(ctx, config.SpanTrainModel, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(config.AttributeTrainingTaskID.String(req.TaskID))
	span.SetAttributes(config.AttributeNewVersion.String(req.NewVersion))

	log := logger.WithTaskAndVersion(req.TaskID, req.NewVersion)
	startedAt := time.Now()

	if err := j.service.StartTrainingTask(ctx, req.TaskID); err != nil {
		log.Errorf("start training task failed: %s", err.Error())
		j.fail(ctx, span, req.TaskID, err)
		return
	}
	j.bus.NotifyStarted(req.TaskID)
	span.AddEvent(config.EventTrainingStarted)

	metrics.RunningTrainingTaskGauge.Inc()
	defer metrics.RunningTrainingTaskGauge.Dec()

	modelVersion, err := j.train(ctx, req, func(stage string, percentage float64, epoch int) {
		if err := j.service.UpdateTrainingTaskProgress(ctx, req.TaskID, stage, percentage, epoch); err != nil {
			log.Warnf("update progress failed: %s", err.Error())
			return
		}

		span.AddEvent(config.EventTrainingProgress, trace.WithAttributes(config.AttributeTrainingStage.String(stage)))
		j.bus.NotifyUpdated(req.TaskID)
	})
	if err != nil {
		log.Errorf("training failed: %s", err.Error())
		j.fail(ctx, span, req.TaskID, err)
		return
	}

	if err := j.service.CompleteTrainingTask(ctx, req.TaskID, modelVersion.ID); err != nil {
		log.Errorf("complete training task failed: %s", err.Error())
		j.fail(ctx, span, req.TaskID, err)
		return
	}

	span.SetAttributes(config.AttributeResultModelID.String(modelVersion.ID))
	span.AddEvent(config.EventTrainingCompleted)
	metrics.TrainingTaskDuration.Observe(time.Since(startedAt).Seconds())
	metrics.TrainingTaskFinishedCount.WithLabelValues(models.TrainingTaskStatusCompleted).Inc()
	j.bus.NotifyCompleted(req.TaskID)
	log.Infof("training completed in %s, model %s", time.Since(startedAt).Truncate(time.Millisecond), modelVersion.ID)
}

// train runs the pipeline and turns a panic into a training error.
func (j *job) train(ctx context.Context, req *training.Request, progress training.ProgressFunc) (modelVersion *models.ModelVersion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = aferrors.Newf(aferrors.Training, "training panic: %v", r)
		}
	}()

	return j.training.Train(ctx, req, progress)
}

// fail records the failure in the ledger and wakes the streams.
func (j *job) fail(ctx context.Context, span trace.Span, taskID string, cause error) {
	span.RecordError(cause)
	span.SetStatus(codes.Error, cause.Error())
	span.AddEvent(config.EventTrainingFailed, trace.WithAttributes(config.AttributeTrainingErrorMsg.String(aferrors.MessageOf(cause))))

	if err := j.service.FailTrainingTask(ctx, taskID, aferrors.MessageOf(cause)); err != nil {
		logger.WithTask(taskID).Errorf("fail training task error: %s", err.Error())
	}

	metrics.TrainingTaskFailureCount.WithLabelValues(aferrors.CodeOf(cause).String()).Inc()
	metrics.TrainingTaskFinishedCount.WithLabelValues(models.TrainingTaskStatusFailed).Inc()
	j.bus.NotifyCompleted(taskID)
}

// Running returns the number of runs holding a pool slot.
func (j *job) Running() int64 {
	return j.pool.running.Load()
}

// Stop rejects new runs and waits for the scheduled ones until ctx is done.
func (j *job) Stop(ctx context.Context) error {
	return j.pool.Stop(ctx)
}
