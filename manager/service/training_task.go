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

package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/types"
	"github.com/aquaforecast/aquaforecast/trainer/training"
)

// CreateTrainingTask validates the retrain request and records a pending task.
func (s *service) CreateTrainingTask(ctx context.Context, json types.CreateRetrainRequest, initiatedBy string) (*models.TrainingTask, error) {
	if json.BaseModelID == "" {
		return nil, aferrors.New(aferrors.Validation, "base_model_id is required")
	}

	base := models.ModelVersion{}
	if err := s.db.WithContext(ctx).First(&base, "id = ?", json.BaseModelID).Error; err != nil {
		return nil, notFound(err, "Base model %s not found", json.BaseModelID)
	}

	if base.Status != models.ModelVersionStatusCompleted && base.Status != models.ModelVersionStatusDeployed {
		return nil, aferrors.Newf(aferrors.Validation, "Base model must be in completed status, got %s", base.Status)
	}

	exist, err := s.IsModelVersionExist(ctx, json.NewVersion)
	if err != nil {
		return nil, err
	}

	if exist {
		return nil, aferrors.Newf(aferrors.Validation, "Model version %s already exists", json.NewVersion)
	}

	var inflight int64
	if err := s.db.WithContext(ctx).Model(&models.TrainingTask{}).Where("new_version = ? AND status IN ?", json.NewVersion, []string{
		models.TrainingTaskStatusPending,
		models.TrainingTaskStatusRunning,
	}).Count(&inflight).Error; err != nil {
		return nil, err
	}

	if inflight > 0 {
		return nil, aferrors.Newf(aferrors.Validation, "Model version %s is already being trained", json.NewVersion)
	}

	json.SetDefaults()
	epochs := json.Epochs
	task := models.TrainingTask{
		BaseModelID:    &base.ID,
		NewVersion:     json.NewVersion,
		InitiatedBy:    initiatedBy,
		Status:         models.TrainingTaskStatusPending,
		TotalEpochs:    &epochs,
		TrainingParams: json.TrainingParams(),
	}

	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

func (s *service) GetTrainingTask(ctx context.Context, id string) (*models.TrainingTask, error) {
	task := models.TrainingTask{}
	if err := s.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Training task %s not found", id)
	}

	return &task, nil
}

func (s *service) GetTrainingTasks(ctx context.Context, q types.GetTrainingTasksQuery) ([]models.TrainingTask, error) {
	tx := s.db.WithContext(ctx).Model(&models.TrainingTask{})
	if q.StatusFilter != "" {
		switch q.StatusFilter {
		case models.TrainingTaskStatusPending, models.TrainingTaskStatusRunning,
			models.TrainingTaskStatusCompleted, models.TrainingTaskStatusFailed:
		default:
			return nil, aferrors.Newf(aferrors.Validation, "Invalid status: %s", q.StatusFilter)
		}

		tx = tx.Where("status = ?", q.StatusFilter)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = types.DefaultTrainingTasksLimit
	}

	tasks := []models.TrainingTask{}
	if err := tx.Order("created_at DESC").Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// GetStreamingTrainingTasks returns the unfinished tasks and the tasks that
// finished within the recent window, newest first.
func (s *service) GetStreamingTrainingTasks(ctx context.Context, recentWindow time.Duration) ([]models.TrainingTask, error) {
	tasks := []models.TrainingTask{}
	if err := s.db.WithContext(ctx).
		Where("status IN ?", []string{models.TrainingTaskStatusPending, models.TrainingTaskStatusRunning}).
		Or("status IN ? AND completed_at >= ?", []string{models.TrainingTaskStatusCompleted, models.TrainingTaskStatusFailed}, time.Now().Add(-recentWindow)).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// StartTrainingTask marks a pending task running.
func (s *service) StartTrainingTask(ctx context.Context, id string) error {
	return s.updateTrainingTask(ctx, id, TrainingTaskEventRun, map[string]any{
		"started_at":          time.Now(),
		"current_stage":       training.StageInitializing,
		"progress_percentage": training.ProgressInitializing,
	})
}

// UpdateTrainingTaskProgress records a checkpoint, a finished task is left
// untouched.
func (s *service) UpdateTrainingTaskProgress(ctx context.Context, id, stage string, percentage float64, epoch int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task := models.TrainingTask{}
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return notFound(err, "Training task %s not found", id)
		}

		if task.IsTerminal() {
			return nil
		}

		values := map[string]any{
			"current_stage":       stage,
			"progress_percentage": percentage,
		}
		if epoch > 0 {
			values["current_epoch"] = epoch
		}

		return tx.Model(&models.TrainingTask{}).Where("id = ?", id).Updates(values).Error
	})
}

func (s *service) CompleteTrainingTask(ctx context.Context, id, resultModelID string) error {
	return s.updateTrainingTask(ctx, id, TrainingTaskEventSucceed, map[string]any{
		"completed_at":        time.Now(),
		"result_model_id":     resultModelID,
		"current_stage":       training.StageCompleted,
		"progress_percentage": training.ProgressCompleted,
	})
}

func (s *service) FailTrainingTask(ctx context.Context, id, message string) error {
	return s.updateTrainingTask(ctx, id, TrainingTaskEventFail, map[string]any{
		"completed_at":  time.Now(),
		"error_message": message,
	})
}

// updateTrainingTask applies the status event and its column values in one
// transaction.
func (s *service) updateTrainingTask(ctx context.Context, id, event string, values map[string]any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task := models.TrainingTask{}
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			return notFound(err, "Training task %s not found", id)
		}

		status, err := transitTrainingTask(ctx, &task, event)
		if err != nil {
			return err
		}

		values["status"] = status
		return tx.Model(&models.TrainingTask{}).Where("id = ?", id).Updates(values).Error
	})
}
