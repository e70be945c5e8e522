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
	"time"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

type ModelVersionParams struct {
	ID string `uri:"id" binding:"required"`
}

type GetModelVersionsQuery struct {
	IncludeArchived bool `form:"include_archived" binding:"omitempty"`
	Page            int  `form:"page" binding:"omitempty,gte=1"`
	PerPage         int  `form:"per_page" binding:"omitempty,gte=1,lte=100"`
}

type CheckForUpdateQuery struct {
	CurrentVersion string `form:"current_version" binding:"required,max=50"`
	AppVersion     string `form:"app_version" binding:"omitempty,max=20"`
}

type CheckForUpdateResponse struct {
	UpdateAvailable bool                 `json:"update_available"`
	CurrentVersion  string               `json:"current_version"`
	LatestVersion   string               `json:"latest_version,omitempty"`
	Model           *models.ModelVersion `json:"model,omitempty"`
	MinAppVersion   string               `json:"min_app_version,omitempty"`
	Compatible      bool                 `json:"compatible"`
	Message         string               `json:"message,omitempty"`
}

type ModelVersionMetricsResponse struct {
	ModelID                 string         `json:"model_id"`
	Version                 string         `json:"version"`
	Metrics                 models.JSONMap `json:"metrics"`
	TrainingDataCount       int            `json:"training_data_count"`
	TrainingDurationSeconds int            `json:"training_duration_seconds"`
	TrainingHistory         models.JSONMap `json:"training_history"`
	CreatedAt               time.Time      `json:"created_at"`
}

type DeployModelVersionRequest struct {
	ModelID string `json:"model_id" binding:"required"`
	Notes   string `json:"notes" binding:"omitempty,max=1000"`
}

type ArchiveModelVersionResponse struct {
	ModelID string `json:"model_id"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type DestroyModelVersionQuery struct {
	PurgeStorage *bool `form:"purge_storage" binding:"omitempty"`
}

// Purge reports whether stored artifacts are deleted, it defaults to true.
func (q DestroyModelVersionQuery) Purge() bool {
	return q.PurgeStorage == nil || *q.PurgeStorage
}

type DestroyModelVersionResponse struct {
	ModelID                 string            `json:"model_id"`
	Version                 string            `json:"version"`
	DeletedTrainingSessions int64             `json:"deleted_training_sessions"`
	DeletedTrainingTasks    int64             `json:"deleted_training_tasks"`
	DeletedArtifacts        []string          `json:"deleted_artifacts"`
	FailedArtifacts         map[string]string `json:"failed_artifacts"`
	Message                 string            `json:"message"`
}

type GetModelVersionsResponse struct {
	Models          []models.ModelVersion `json:"models"`
	TotalCount      int64                 `json:"total_count"`
	DeployedModelID *string               `json:"deployed_model_id"`
}
