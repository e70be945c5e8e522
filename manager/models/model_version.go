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

package models

import "time"

const (
	// ModelVersionStatusTraining represents the model version is being trained.
	ModelVersionStatusTraining = "training"

	// ModelVersionStatusCompleted represents the model version finished training and can be deployed.
	ModelVersionStatusCompleted = "completed"

	// ModelVersionStatusFailed represents the model version failed in training.
	ModelVersionStatusFailed = "failed"

	// ModelVersionStatusDeployed represents the model version currently served to clients.
	ModelVersionStatusDeployed = "deployed"

	// ModelVersionStatusArchived represents the model version is retired.
	ModelVersionStatusArchived = "archived"
)

const (
	// BaselineModelVersion is the reserved version of the seeded baseline.
	BaselineModelVersion = "0.0.0-default"
)

// ModelVersion is a trained model artifact set in the registry.
type ModelVersion struct {
	BaseModel
	Version                 string     `gorm:"column:version;type:varchar(50);uniqueIndex:uk_model_version;not null;comment:semantic version" json:"version"`
	MobileModelURL          string     `gorm:"column:mobile_model_url;type:text;comment:url of the quantized model" json:"mobile_model_url"`
	MobileSizeBytes         int64      `gorm:"column:mobile_size_bytes;comment:size of the quantized model" json:"mobile_size_bytes"`
	MobileObjectKey         string     `gorm:"column:mobile_object_key;type:varchar(255);comment:object key of the quantized model" json:"mobile_object_key"`
	FullModelURL            string     `gorm:"column:full_model_url;type:text;comment:url of the full precision model" json:"full_model_url"`
	FullSizeBytes           int64      `gorm:"column:full_size_bytes;comment:size of the full precision model" json:"full_size_bytes"`
	FullObjectKey           string     `gorm:"column:full_object_key;type:varchar(255);comment:object key of the full precision model" json:"full_object_key"`
	BaseModelID             *string    `gorm:"column:base_model_id;type:varchar(36);index;comment:parent model" json:"base_model_id"`
	PreprocessingConfig     JSONMap    `gorm:"column:preprocessing_config;comment:feature names, targets, scaler and domain constants" json:"preprocessing_config"`
	ModelConfig             JSONMap    `gorm:"column:model_config;comment:architecture and training config" json:"model_config"`
	TrainingDataCount       int        `gorm:"column:training_data_count;comment:number of samples used for training" json:"training_data_count"`
	TrainingDurationSeconds int        `gorm:"column:training_duration_seconds;comment:wall clock of training" json:"training_duration_seconds"`
	TrainedBy               string     `gorm:"column:trained_by;type:varchar(128);comment:initiator" json:"trained_by"`
	Metrics                 JSONMap    `gorm:"column:metrics;comment:r2, rmse and mae of weight and length" json:"metrics"`
	Status                  string     `gorm:"column:status;type:varchar(32);index;default:'training';not null;comment:status" json:"status"`
	IsDeployed              bool       `gorm:"column:is_deployed;index;default:false;not null;comment:currently deployed" json:"is_deployed"`
	IsActive                bool       `gorm:"column:is_active;default:true;not null;comment:offered for download" json:"is_active"`
	MinAppVersion           string     `gorm:"column:min_app_version;type:varchar(20);comment:minimum compatible client" json:"min_app_version"`
	DeployedAt              *time.Time `gorm:"column:deployed_at;comment:deployed at" json:"deployed_at"`
	Notes                   string     `gorm:"column:notes;type:text;comment:release or training notes" json:"notes"`
}

// IsBaseline reports whether the row is the seeded baseline.
func (m *ModelVersion) IsBaseline() bool {
	return m.Version == BaselineModelVersion
}

// ObjectKeys returns the stored artifact keys, the scaler key comes from the preprocessing descriptor.
func (m *ModelVersion) ObjectKeys() []string {
	var keys []string
	for _, key := range []string{m.FullObjectKey, m.MobileObjectKey} {
		if key != "" {
			keys = append(keys, key)
		}
	}

	if key, ok := m.PreprocessingConfig["scaler_object_key"].(string); ok && key != "" {
		keys = append(keys, key)
	}

	return keys
}
