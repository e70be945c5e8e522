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

package training

import (
	"fmt"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

const (
	// OptimalDissolvedOxygen is the biological optimum of dissolved oxygen in mg/L.
	OptimalDissolvedOxygen = 6.0

	// RollingWindow is the number of trailing readings in rolling features.
	RollingWindow = 7

	// WeightUnitScale converts stored kilograms to the grams the model predicts.
	WeightUnitScale = 1000.0
)

const (
	// DefaultMinSamples is the minimum number of unused samples for a run.
	DefaultMinSamples = 100

	// LowSampleWarning is the row count below which cleaned data is reported as degraded.
	LowSampleWarning = 50

	// Contamination is the expected share of multivariate outliers.
	Contamination = 0.01

	// MinOutlierDetectionRows is the row count below which outlier detection is skipped.
	MinOutlierDetectionRows = 10

	// TargetLowerPercentile and TargetUpperPercentile bound the accepted target values.
	TargetLowerPercentile = 5
	TargetUpperPercentile = 95

	// TestSize is the share of rows held out for evaluation.
	TestSize = 0.15

	// ValidationSize is the share of rows used for validation.
	ValidationSize = 0.15

	// RandomSeed makes splits, shuffles and initialization reproducible.
	RandomSeed = 42
)

const (
	// DefaultEpochs is the default epoch budget.
	DefaultEpochs = 100

	// DefaultBatchSize is the default mini batch size.
	DefaultBatchSize = 32

	// DefaultLearningRate is the default adam learning rate.
	DefaultLearningRate = 0.000006

	// DefaultL2Lambda is the kernel regularization of the hidden dense layers.
	DefaultL2Lambda = 0.06

	// DefaultDropoutRate is the dropout rate of the first two blocks.
	DefaultDropoutRate = 0.08

	// EarlyStopPatience is the number of epochs without val_loss improvement before stopping.
	EarlyStopPatience = 15

	// ReduceLRPatience is the number of epochs without val_loss improvement before decaying the learning rate.
	ReduceLRPatience = 5

	// ReduceLRFactor is the learning rate decay factor.
	ReduceLRFactor = 0.5

	// ReduceLRMinDelta is the minimum val_loss change counted as improvement when decaying.
	ReduceLRMinDelta = 1e-4

	// MinLearningRate is the floor of the learning rate decay.
	MinLearningRate = 1e-7
)

const (
	StageValidating    = "Validating base model"
	StageFetching      = "Fetching training data"
	StageFeatures      = "Processing features"
	StageCleaning      = "Cleaning data"
	StageSplitting     = "Splitting data"
	StageScaling       = "Scaling features"
	StagePreparing     = "Preparing model"
	StageTraining      = "Training model"
	StageEvaluating    = "Evaluating model"
	StageSerializing   = "Serializing model"
	StageUploading     = "Uploading artifacts"
	StageSaving        = "Saving model metadata"
	StageInitializing  = "Initializing training"
	StageCompleted     = "Training completed"
	stageEpochTemplate = "Training epoch %d/%d"
)

const (
	ProgressValidating   = 5.0
	ProgressFetching     = 10.0
	ProgressFeatures     = 15.0
	ProgressCleaning     = 17.0
	ProgressSplitting    = 20.0
	ProgressScaling      = 22.0
	ProgressPreparing    = 25.0
	ProgressTraining     = 30.0
	ProgressEpochSpan    = 50.0
	ProgressEvaluating   = 82.0
	ProgressSerializing  = 85.0
	ProgressUploading    = 90.0
	ProgressSaving       = 95.0
	ProgressCompleted    = 100.0
	ProgressInitializing = 0.0
)

const (
	// FullModelFileName is the full precision weights artifact.
	FullModelFileName = "model.json"

	// MobileModelFileName is the float16 weights artifact for mobile clients.
	MobileModelFileName = "model.f16"

	// ScalerFileName is the fitted feature scaler artifact.
	ScalerFileName = "scaler.json"

	// HistoryFileName is the per epoch history staged next to the artifacts.
	HistoryFileName = "history.csv"
)

var (
	// RawFeatureNames are the water quality readings used for outlier detection.
	RawFeatureNames = []string{"temperature", "ph", "dissolved_oxygen", "ammonia", "nitrate", "turbidity"}

	// FeatureNames are the model inputs in column order.
	FeatureNames = append(append([]string{}, RawFeatureNames...),
		"days_in_farm", "day_of_year", "hour", "sin_hour", "cos_hour",
		"temp_do_interaction", "avg_do_7d", "avg_wqi_7d",
	)

	// TargetNames are the model outputs in column order.
	TargetNames = []string{"fish_weight", "fish_length"}
)

// EpochStage returns the stage label of an epoch.
func EpochStage(epoch, epochs int) string {
	return fmt.Sprintf(stageEpochTemplate, epoch, epochs)
}

// EpochProgress returns the progress percentage of an epoch.
func EpochProgress(epoch, epochs int) float64 {
	if epochs <= 0 {
		return ProgressTraining
	}

	return ProgressTraining + float64(epoch)/float64(epochs)*ProgressEpochSpan
}

// ObjectKey returns the object storage key of a model artifact.
func ObjectKey(version, name string) string {
	return fmt.Sprintf("models/%s/%s", version, name)
}

// PreprocessingConfig returns the preprocessing descriptor stored with a model version.
func PreprocessingConfig() models.JSONMap {
	return models.JSONMap{
		"feature_names":  append([]string{}, FeatureNames...),
		"target_columns": append([]string{}, TargetNames...),
		"optimal_do":     OptimalDissolvedOxygen,
		"rolling_window": RollingWindow,
		"weight_unit":    "g",
	}
}

// BaselinePreprocessingConfig returns the preprocessing descriptor of the seeded baseline,
// it points at local files instead of object storage.
func BaselinePreprocessingConfig(scalerPath, weightsPath string) models.JSONMap {
	m := PreprocessingConfig()
	m["local_scaler_path"] = scalerPath
	m["local_weights_path"] = weightsPath
	return m
}

// BaselineModelConfig returns the model config of the seeded baseline.
func BaselineModelConfig() models.JSONMap {
	m, err := NewModelConfig(DefaultArchitecture(), DefaultLearningRate, "").JSONMap()
	if err != nil {
		panic(err)
	}

	return m
}
