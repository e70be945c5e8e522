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

package types

import (
	"encoding/json"

	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/trainer/training"
)

const (
	// DefaultTrainingTasksLimit is the default page size of the task list.
	DefaultTrainingTasksLimit = 50
)

type CreateRetrainRequest struct {
	BaseModelID  string  `json:"base_model_id" binding:"required"`
	NewVersion   string  `json:"new_version" binding:"required,version"`
	Epochs       int     `json:"epochs" binding:"omitempty,gte=1,lte=1000"`
	BatchSize    int     `json:"batch_size" binding:"omitempty,gte=1,lte=1024"`
	LearningRate float64 `json:"learning_rate" binding:"omitempty,gt=0,lt=1"`
	Notes        string  `json:"notes" binding:"omitempty,max=1000"`
}

// SetDefaults fills the training parameters left empty.
func (r *CreateRetrainRequest) SetDefaults() {
	if r.Epochs == 0 {
		r.Epochs = training.DefaultEpochs
	}

	if r.BatchSize == 0 {
		r.BatchSize = training.DefaultBatchSize
	}

	if r.LearningRate == 0 {
		r.LearningRate = training.DefaultLearningRate
	}
}

// TrainingParams is the document stored with the task.
func (r *CreateRetrainRequest) TrainingParams() models.JSONMap {
	return models.JSONMap{
		"epochs":        r.Epochs,
		"batch_size":    r.BatchSize,
		"learning_rate": r.LearningRate,
		"notes":         r.Notes,
	}
}

type CreateRetrainResponse struct {
	TaskID      string `json:"task_id"`
	BaseModelID string `json:"base_model_id"`
	NewVersion  string `json:"new_version"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

type TrainingTaskParams struct {
	ID string `uri:"id" binding:"required"`
}

type GetTrainingTasksQuery struct {
	StatusFilter string `form:"status_filter" binding:"omitempty"`
	Limit        int    `form:"limit" binding:"omitempty,gte=1,lte=100"`
}

// TrainingParams decodes the parameters stored with a task.
type TrainingParams struct {
	Epochs       int     `mapstructure:"epochs"`
	BatchSize    int     `mapstructure:"batch_size"`
	LearningRate float64 `mapstructure:"learning_rate"`
	Notes        string  `mapstructure:"notes"`
}

// TrainingTaskState is the observable tuple of a task, a stream emits a task
// again only when it changes.
type TrainingTaskState struct {
	Status   string
	Progress float64
	Epoch    int
	Stage    string
}

// NewTrainingTaskState returns the observable tuple of the task.
func NewTrainingTaskState(task *models.TrainingTask) TrainingTaskState {
	state := TrainingTaskState{
		Status:   task.Status,
		Progress: task.ProgressPercentage,
		Stage:    task.CurrentStage,
	}

	if task.CurrentEpoch != nil {
		state.Epoch = *task.CurrentEpoch
	}

	return state
}

// MarshalJSON encodes the tuple as [status, progress, epoch, stage].
func (s TrainingTaskState) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Status, s.Progress, s.Epoch, s.Stage})
}

type TrainingTaskEvent struct {
	TaskID string               `json:"task_id"`
	Task   *models.TrainingTask `json:"task"`
	State  TrainingTaskState    `json:"state"`
}

type GetTrainingTasksResponse struct {
	Tasks []models.TrainingTask `json:"tasks"`
	Total int                   `json:"total"`
}
