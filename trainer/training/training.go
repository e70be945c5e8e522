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

//go:generate mockgen -destination mocks/training_mock.go -source training.go -package mocks

package training

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/metrics"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/pkg/digest"
	"github.com/aquaforecast/aquaforecast/trainer/storage"
)

// Request is a retraining run.
type Request struct {
	// TaskID is the ledger task of the run, it owns the sample reservations.
	TaskID string

	// BaseModelID is the model the run starts from.
	BaseModelID string

	// NewVersion is the version of the produced model.
	NewVersion string

	// InitiatedBy is the user who requested the run.
	InitiatedBy string

	Epochs       int
	BatchSize    int
	LearningRate float64
	Notes        string
}

// ProgressFunc receives stage checkpoints, epoch is zero outside the training loop.
type ProgressFunc func(stage string, percentage float64, epoch int)

// Training defines the interface to run the training pipeline.
type Training interface {
	// Train runs the pipeline and returns the committed model version.
	Train(context.Context, *Request, ProgressFunc) (*models.ModelVersion, error)
}

// training implements Training interface.
type training struct {
	// Training config.
	config *config.TrainingConfig

	// Store of samples and models.
	store Store

	// Local staging storage.
	storage storage.Storage

	// Object storage of artifacts.
	artifacts storage.Artifacts
}

// New returns a new Training.
func New(cfg *config.TrainingConfig, store Store, storage storage.Storage, artifacts storage.Artifacts) Training {
	return &training{
		config:    cfg,
		store:     store,
		storage:   storage,
		artifacts: artifacts,
	}
}

// Train runs the pipeline and returns the committed model version. Nothing is
// committed unless every stage succeeds.
func (t *training) Train(ctx context.Context, req *Request, progress ProgressFunc) (_ *models.ModelVersion, err error) {
	log := logger.WithTaskAndVersion(req.TaskID, req.NewVersion)
	startedAt := time.Now()
	if progress == nil {
		progress = func(string, float64, int) {}
	}

	progress(StageValidating, ProgressValidating, 0)
	base, err := t.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	progress(StageFetching, ProgressFetching, 0)
	ids, err := t.store.ClaimUnusedFarmData(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = aferrors.Newf(aferrors.Training, "training panicked: %v", r)
		}

		if err == nil {
			return
		}

		if releaseErr := t.store.ReleaseFarmData(context.Background(), req.TaskID); releaseErr != nil {
			log.Errorf("release farm data failed: %s", releaseErr.Error())
		}
	}()

	if len(ids) < t.minSamples() {
		return nil, aferrors.Newf(aferrors.Validation, "insufficient unused farm data: %d samples (minimum %d required)", len(ids), t.minSamples())
	}

	rows, err := t.store.ListFarmData(ctx, ids)
	if err != nil {
		return nil, err
	}

	progress(StageFeatures, ProgressFeatures, 0)
	ds := ExtractFeatures(rows)
	if ds.Len() < t.minSamples() {
		return nil, aferrors.Newf(aferrors.Validation, "insufficient data for training: %d samples available (minimum %d required before preprocessing)", ds.Len(), t.minSamples())
	}
	log.Infof("starting with %d samples before preprocessing", ds.Len())

	progress(StageCleaning, ProgressCleaning, 0)
	ds, report, err := Clean(ds)
	if err != nil {
		return nil, trainingError(StageCleaning, err)
	}

	progress(StageSplitting, ProgressSplitting, 0)
	partitions, err := Split(ds, TestSize, ValidationSize, RandomSeed)
	if err != nil {
		return nil, trainingError(StageSplitting, err)
	}

	progress(StageScaling, ProgressScaling, 0)
	scaler, err := FitRobustScaler(partitions.Train.X, FeatureNames)
	if err != nil {
		return nil, trainingError(StageScaling, err)
	}

	xTrain, xVal, xTest, err := scaleAll(scaler, partitions)
	if err != nil {
		return nil, trainingError(StageScaling, err)
	}

	progress(StagePreparing, ProgressPreparing, 0)
	network, err := t.prepare(ctx, base)
	if err != nil {
		return nil, err
	}
	network.Compile(req.LearningRate)
	log.Infof("transfer learning from %s (lr=%g)", base.Version, req.LearningRate)

	progress(StageTraining, ProgressTraining, 0)
	history, err := network.Fit(ctx, xTrain, toDense(partitions.Train.Y), xVal, toDense(partitions.Validation.Y), FitOptions{
		Epochs:    req.Epochs,
		BatchSize: req.BatchSize,
	}, func(epoch, epochs int) {
		progress(EpochStage(epoch, epochs), EpochProgress(epoch, epochs), epoch)
	})
	if err != nil {
		return nil, trainingError(StageTraining, err)
	}

	progress(StageEvaluating, ProgressEvaluating, 0)
	metrics, err := Evaluate(network.Predict(xTest), toDense(partitions.Test.Y), history, req.Epochs)
	if err != nil {
		return nil, trainingError(StageEvaluating, err)
	}
	log.Infof("training complete: %d epochs, r2=%.4f, rmse=%.1f, mae=%.1f",
		metrics.Training.ActualEpochs, metrics.Overall.R2, metrics.Overall.RMSE, metrics.Overall.MAE)

	progress(StageSerializing, ProgressSerializing, 0)
	if err := t.storage.Lock(req.TaskID); err != nil {
		return nil, trainingError(StageSerializing, err)
	}
	defer func() {
		if clearErr := t.storage.ClearRun(req.TaskID); clearErr != nil {
			log.Warnf("clear staging failed: %s", clearErr.Error())
		}
	}()

	if err := t.stage(req.TaskID, network, scaler, history); err != nil {
		return nil, trainingError(StageSerializing, err)
	}

	progress(StageUploading, ProgressUploading, 0)
	uploaded, err := t.upload(ctx, req.TaskID, req.NewVersion)
	if err != nil {
		return nil, err
	}

	progress(StageSaving, ProgressSaving, 0)
	modelVersion, session, err := t.build(req, base, network, uploaded, metrics, history, report, partitions, ids, startedAt)
	if err != nil {
		t.deleteArtifacts(uploaded)
		return nil, trainingError(StageSaving, err)
	}

	if err := t.store.CreateTrainedModel(ctx, req.TaskID, modelVersion, session); err != nil {
		t.deleteArtifacts(uploaded)
		return nil, err
	}

	log.Infof("model version %s saved in %s", modelVersion.ID, time.Since(startedAt).Round(time.Second))
	return modelVersion, nil
}

// validate checks the base model can seed a run and the version is free.
func (t *training) validate(ctx context.Context, req *Request) (*models.ModelVersion, error) {
	if req.BaseModelID == "" {
		return nil, aferrors.New(aferrors.Validation, "base_model_id is required")
	}

	if req.Epochs <= 0 || req.BatchSize <= 0 || req.LearningRate <= 0 {
		return nil, aferrors.New(aferrors.Validation, "epochs, batch_size and learning_rate must be positive")
	}

	base, err := t.store.GetModelVersion(ctx, req.BaseModelID)
	if err != nil {
		return nil, err
	}

	if base.Status != models.ModelVersionStatusCompleted && base.Status != models.ModelVersionStatusDeployed {
		return nil, aferrors.Newf(aferrors.Validation, "base model must be in completed status, got %s", base.Status)
	}

	exist, err := t.store.IsModelVersionExist(ctx, req.NewVersion)
	if err != nil {
		return nil, err
	}

	if exist {
		return nil, aferrors.Newf(aferrors.Validation, "model version %s already exists", req.NewVersion)
	}

	return base, nil
}

// prepare loads the base weights, a baseline without a local weights file
// starts from a fresh network of its architecture.
func (t *training) prepare(ctx context.Context, base *models.ModelVersion) (*Network, error) {
	var (
		network *Network
		err     error
	)

	if base.IsBaseline() {
		network, err = t.loadBaseline(base)
	} else {
		if base.FullObjectKey == "" {
			return nil, aferrors.Newf(aferrors.Validation, "base model %s has no weights", base.Version)
		}

		var data []byte
		if data, err = t.artifacts.Download(ctx, base.FullObjectKey); err != nil {
			return nil, err
		}

		network, err = UnmarshalModel(data)
	}

	if err != nil {
		return nil, trainingError(StagePreparing, err)
	}

	arch := network.Architecture()
	if arch.InputDim != len(FeatureNames) || arch.OutputDim() != len(TargetNames) {
		return nil, aferrors.Newf(aferrors.Training, "base model %s expects %d inputs and %d outputs", base.Version, arch.InputDim, arch.OutputDim())
	}

	return network, nil
}

func (t *training) loadBaseline(base *models.ModelVersion) (*Network, error) {
	path := t.config.BaselineWeightsPath
	if p, ok := base.PreprocessingConfig["local_weights_path"].(string); ok && p != "" {
		path = p
	}

	data, err := os.ReadFile(path)
	if err == nil {
		logger.TrainingLogger.Infof("loading baseline weights from %s", path)
		return UnmarshalModel(data)
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := ParseModelConfig(base.ModelConfig)
	if err != nil {
		return nil, err
	}

	logger.TrainingLogger.Infof("baseline weights %s not found, initializing a new network", path)
	return NewNetwork(cfg.Architecture, RandomSeed)
}

// stage writes the artifacts and the history of the run into local staging.
func (t *training) stage(runKey string, network *Network, scaler *RobustScaler, history *History) error {
	full, err := MarshalModel(network)
	if err != nil {
		return err
	}

	mobile, err := MarshalMobile(network)
	if err != nil {
		return err
	}

	scalerData, err := scaler.Marshal()
	if err != nil {
		return err
	}

	for name, data := range map[string][]byte{
		FullModelFileName:   full,
		MobileModelFileName: mobile,
		ScalerFileName:      scalerData,
	} {
		path, err := t.storage.CreateArtifact(runKey, name, data)
		if err != nil {
			return err
		}

		if d, err := digest.HashFile(path); err == nil {
			logger.TrainingLogger.Debugf("staged %s of run %s: %s", name, runKey, d)
		}
	}

	records := make([]storage.HistoryRecord, 0, history.Epochs())
	for i := range history.Loss {
		records = append(records, storage.HistoryRecord{
			Epoch:        i + 1,
			Loss:         history.Loss[i],
			ValLoss:      history.ValLoss[i],
			MAE:          history.MAE[i],
			ValMAE:       history.ValMAE[i],
			LearningRate: history.LearningRate[i],
		})
	}

	return t.storage.CreateHistory(runKey, records)
}

// upload puts the staged artifacts into object storage concurrently, a failed
// run removes whatever was uploaded.
func (t *training) upload(ctx context.Context, runKey, version string) (map[string]*storage.Artifact, error) {
	names := []string{FullModelFileName, MobileModelFileName, ScalerFileName}
	results := make([]*storage.Artifact, len(names))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			reader, err := t.storage.OpenArtifact(runKey, name)
			if err != nil {
				return err
			}
			defer reader.Close()

			data, err := io.ReadAll(reader)
			if err != nil {
				return err
			}

			artifact, err := t.artifacts.Upload(egCtx, ObjectKey(version, name), data)
			if err != nil {
				metrics.UploadArtifactFailureCount.Inc()
				return err
			}
			metrics.UploadArtifactCount.Inc()

			results[i] = artifact
			return nil
		})
	}

	uploaded := make(map[string]*storage.Artifact, len(names))
	err := eg.Wait()
	for i, name := range names {
		if results[i] != nil {
			uploaded[name] = results[i]
		}
	}

	if err != nil {
		t.deleteArtifacts(uploaded)
		if aferrors.CodeOf(err) == aferrors.Unknown {
			err = aferrors.Newf(aferrors.Storage, "upload artifacts failed: %s", err.Error())
		}

		return nil, err
	}

	return uploaded, nil
}

func (t *training) deleteArtifacts(uploaded map[string]*storage.Artifact) {
	for _, artifact := range uploaded {
		if err := t.artifacts.Delete(context.Background(), artifact.Key); err != nil {
			logger.TrainingLogger.Warnf("delete artifact %s failed: %s", artifact.Key, err.Error())
		}
	}
}

// build assembles the rows committed at the end of a run.
func (t *training) build(req *Request, base *models.ModelVersion, network *Network, uploaded map[string]*storage.Artifact,
	metrics *Metrics, history *History, report *CleanReport, partitions *Partitions, ids []string, startedAt time.Time) (*models.ModelVersion, *models.TrainingSession, error) {
	full, mobile, scaler := uploaded[FullModelFileName], uploaded[MobileModelFileName], uploaded[ScalerFileName]

	preprocessing := PreprocessingConfig()
	preprocessing["scaler_url"] = scaler.URL
	preprocessing["scaler_object_key"] = scaler.Key
	preprocessing["scaler_size_bytes"] = scaler.Size
	preprocessing["cleaning"] = map[string]any{
		"initial_rows":          report.InitialRows,
		"multivariate_outliers": report.MultivariateOutliers,
		"target_outliers":       report.TargetOutliers,
		"duplicates":            report.Duplicates,
		"final_rows":            report.FinalRows,
	}

	modelConfig, err := NewModelConfig(network.Architecture(), req.LearningRate, base.Version).JSONMap()
	if err != nil {
		return nil, nil, err
	}

	metricsDoc, err := metrics.JSONMap()
	if err != nil {
		return nil, nil, err
	}

	baseModelID := base.ID
	modelVersion := &models.ModelVersion{
		Version:                 req.NewVersion,
		MobileModelURL:          mobile.URL,
		MobileSizeBytes:         mobile.Size,
		MobileObjectKey:         mobile.Key,
		FullModelURL:            full.URL,
		FullSizeBytes:           full.Size,
		FullObjectKey:           full.Key,
		BaseModelID:             &baseModelID,
		PreprocessingConfig:     preprocessing,
		ModelConfig:             modelConfig,
		TrainingDataCount:       len(ids),
		TrainingDurationSeconds: int(time.Since(startedAt).Seconds()),
		TrainedBy:               req.InitiatedBy,
		Metrics:                 metricsDoc,
		Status:                  models.ModelVersionStatusCompleted,
		IsDeployed:              false,
		IsActive:                true,
		Notes:                   req.Notes,
	}

	completedAt := time.Now()
	session := &models.TrainingSession{
		FarmDataIDs:       models.Array(append([]string{}, ids...)),
		TrainingSamples:   partitions.Train.Len(),
		ValidationSamples: partitions.Validation.Len(),
		TestSamples:       partitions.Test.Len(),
		Epochs:            history.Epochs(),
		BatchSize:         req.BatchSize,
		LearningRate:      req.LearningRate,
		FinalMetrics:      metricsDoc,
		TrainingHistory: models.JSONMap{
			"loss":             history.Loss,
			"val_loss":         history.ValLoss,
			"mae":              history.MAE,
			"val_mae":          history.ValMAE,
			"lr":               history.LearningRate,
			"early_stopped":    metrics.Training.EarlyStopped,
			"requested_epochs": metrics.Training.RequestedEpochs,
			"actual_epochs":    metrics.Training.ActualEpochs,
		},
		StartedAt:   startedAt,
		CompletedAt: &completedAt,
	}

	return modelVersion, session, nil
}

func (t *training) minSamples() int {
	if t.config.MinSamples > 0 {
		return t.config.MinSamples
	}

	return DefaultMinSamples
}

// scaleAll applies the scaler to every partition.
func scaleAll(scaler *RobustScaler, p *Partitions) (*mat.Dense, *mat.Dense, *mat.Dense, error) {
	var out [3]*mat.Dense
	for i, ds := range []*Dataset{p.Train, p.Validation, p.Test} {
		scaled, err := scaler.Transform(ds.X)
		if err != nil {
			return nil, nil, nil, err
		}

		out[i] = toDense(scaled)
	}

	return out[0], out[1], out[2], nil
}

// toDense copies rows into a matrix.
func toDense(rows [][]float64) *mat.Dense {
	if len(rows) == 0 {
		return &mat.Dense{}
	}

	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}

	return m
}

// trainingError types an untyped stage failure.
func trainingError(stage string, err error) error {
	if aferrors.CodeOf(err) != aferrors.Unknown {
		return err
	}

	return aferrors.Newf(aferrors.Training, "%s: %s", stage, err.Error())
}
