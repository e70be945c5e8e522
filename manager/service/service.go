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

//go:generate mockgen -destination mocks/service_mock.go -source service.go -package mocks

package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	"github.com/aquaforecast/aquaforecast/manager/cache"
	"github.com/aquaforecast/aquaforecast/manager/database"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/types"
	"github.com/aquaforecast/aquaforecast/trainer/storage"
)

// Service is the registry, provenance and task ledger of the manager.
type Service interface {
	GetModelVersion(context.Context, string) (*models.ModelVersion, error)
	IsModelVersionExist(context.Context, string) (bool, error)
	GetModelVersions(context.Context, types.GetModelVersionsQuery) ([]models.ModelVersion, int64, error)
	GetLatestModelVersion(context.Context) (*models.ModelVersion, error)
	GetDeployedModelVersion(context.Context) (*models.ModelVersion, error)
	GetModelVersionMetrics(context.Context, string) (*types.ModelVersionMetricsResponse, error)
	CheckForUpdate(context.Context, types.CheckForUpdateQuery) (*types.CheckForUpdateResponse, error)
	DeployModelVersion(context.Context, types.DeployModelVersionRequest) (*models.ModelVersion, error)
	UndeployModelVersion(context.Context, string) (*models.ModelVersion, error)
	ArchiveModelVersion(context.Context, string) (*models.ModelVersion, error)
	DestroyModelVersion(context.Context, string, bool) (*types.DestroyModelVersionResponse, error)

	GetUnusedFarmDataIDs(context.Context) ([]string, error)
	ClaimUnusedFarmData(context.Context, string) ([]string, error)
	ReleaseFarmData(context.Context, string) error
	ListFarmData(context.Context, []string) ([]models.FarmData, error)
	CreateTrainedModel(context.Context, string, *models.ModelVersion, *models.TrainingSession) error
	SyncFarmData(context.Context, string, types.SyncFarmDataRequest) (*types.SyncFarmDataResponse, error)
	GetFarmData(context.Context, string, types.GetFarmDataQuery) (*types.GetFarmDataResponse, error)
	DestroyUserFarmData(context.Context, string) (int64, error)

	CreateTrainingTask(context.Context, types.CreateRetrainRequest, string) (*models.TrainingTask, error)
	GetTrainingTask(context.Context, string) (*models.TrainingTask, error)
	GetTrainingTasks(context.Context, types.GetTrainingTasksQuery) ([]models.TrainingTask, error)
	GetStreamingTrainingTasks(context.Context, time.Duration) ([]models.TrainingTask, error)
	StartTrainingTask(context.Context, string) error
	UpdateTrainingTaskProgress(context.Context, string, string, float64, int) error
	CompleteTrainingTask(context.Context, string, string) error
	FailTrainingTask(context.Context, string, string) error
}

type service struct {
	db        *gorm.DB
	cache     *cache.Cache
	artifacts storage.Artifacts
}

// Option is a functional option for service
type Option func(s *service)

// WithDatabase set the database client
func WithDatabase(database *database.Database) Option {
	return func(s *service) {
		s.db = database.DB
	}
}

// WithCache set the cache client
func WithCache(cache *cache.Cache) Option {
	return func(s *service) {
		s.cache = cache
	}
}

// WithArtifacts set the object storage of model artifacts
func WithArtifacts(artifacts storage.Artifacts) Option {
	return func(s *service) {
		s.artifacts = artifacts
	}
}

// New returns a new Service instence
func New(options ...Option) Service {
	s := &service{}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// notFound maps a missing row to a NotFound error with the message.
func notFound(err error, format string, a ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return aferrors.Newf(aferrors.NotFound, format, a...)
	}

	return err
}
