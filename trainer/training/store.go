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

//go:generate mockgen -destination mocks/store_mock.go -source store.go -package mocks

package training

import (
	"context"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

// Store is the persistence the pipeline reads samples from and commits results to.
type Store interface {
	// GetModelVersion returns the model version of the id.
	GetModelVersion(context.Context, string) (*models.ModelVersion, error)

	// IsModelVersionExist reports whether the version string is taken.
	IsModelVersionExist(context.Context, string) (bool, error)

	// ClaimUnusedFarmData reserves the unused eligible samples for the task and returns their ids.
	ClaimUnusedFarmData(context.Context, string) ([]string, error)

	// ListFarmData returns the samples of the ids ordered by recorded time.
	ListFarmData(context.Context, []string) ([]models.FarmData, error)

	// CreateTrainedModel writes the model version and its training session in one
	// transaction and drops the reservations of the task.
	CreateTrainedModel(context.Context, string, *models.ModelVersion, *models.TrainingSession) error

	// ReleaseFarmData drops the reservations of the task.
	ReleaseFarmData(context.Context, string) error
}
