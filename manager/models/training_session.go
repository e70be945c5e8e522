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

// TrainingSession records which samples a completed run consumed.
type TrainingSession struct {
	BaseModel
	ModelVersionID    string     `gorm:"column:model_version_id;type:varchar(36);index;not null;comment:produced model" json:"model_version_id"`
	FarmDataIDs       Array      `gorm:"column:farm_data_ids;not null;comment:ids of farm data used for training" json:"farm_data_ids"`
	TrainingSamples   int        `gorm:"column:training_samples;not null" json:"training_samples"`
	ValidationSamples int        `gorm:"column:validation_samples;not null" json:"validation_samples"`
	TestSamples       int        `gorm:"column:test_samples;not null" json:"test_samples"`
	Epochs            int        `gorm:"column:epochs" json:"epochs"`
	BatchSize         int        `gorm:"column:batch_size" json:"batch_size"`
	LearningRate      float64    `gorm:"column:learning_rate" json:"learning_rate"`
	FinalMetrics      JSONMap    `gorm:"column:final_metrics" json:"final_metrics"`
	TrainingHistory   JSONMap    `gorm:"column:training_history;comment:loss and metrics per epoch" json:"training_history"`
	StartedAt         time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	CompletedAt       *time.Time `gorm:"column:completed_at" json:"completed_at"`
}
