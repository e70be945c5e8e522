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
	// TrainingTaskStatusPending represents the task is accepted and waits for a worker.
	TrainingTaskStatusPending = "pending"

	// TrainingTaskStatusRunning represents the pipeline is running.
	TrainingTaskStatusRunning = "running"

	// TrainingTaskStatusCompleted represents the pipeline produced a model.
	TrainingTaskStatusCompleted = "completed"

	// TrainingTaskStatusFailed represents the pipeline failed.
	TrainingTaskStatusFailed = "failed"
)

// TrainingTask is a ledger entry of one training attempt.
type TrainingTask struct {
	BaseModel
	BaseModelID        *string    `gorm:"column:base_model_id;type:varchar(36);comment:base model" json:"base_model_id"`
	NewVersion         string     `gorm:"column:new_version;type:varchar(50);not null;comment:target version" json:"new_version"`
	InitiatedBy        string     `gorm:"column:initiated_by;type:varchar(128);not null;comment:initiator" json:"initiated_by"`
	Status             string     `gorm:"column:status;type:varchar(32);index;default:'pending';not null;comment:status" json:"status"`
	ProgressPercentage float64    `gorm:"column:progress_percentage;default:0" json:"progress_percentage"`
	CurrentEpoch       *int       `gorm:"column:current_epoch" json:"current_epoch"`
	TotalEpochs        *int       `gorm:"column:total_epochs" json:"total_epochs"`
	CurrentStage       string     `gorm:"column:current_stage;type:varchar(100)" json:"current_stage"`
	ErrorMessage       *string    `gorm:"column:error_message;type:text" json:"error_message"`
	ResultModelID      *string    `gorm:"column:result_model_id;type:varchar(36);index" json:"result_model_id"`
	TrainingParams     JSONMap    `gorm:"column:training_params" json:"training_params"`
	StartedAt          *time.Time `gorm:"column:started_at" json:"started_at"`
	CompletedAt        *time.Time `gorm:"column:completed_at" json:"completed_at"`
}

// IsTerminal reports whether the task finished.
func (t *TrainingTask) IsTerminal() bool {
	return t.Status == TrainingTaskStatusCompleted || t.Status == TrainingTaskStatusFailed
}
