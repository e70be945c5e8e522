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
	"errors"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	managercache "github.com/aquaforecast/aquaforecast/manager/cache"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

const (
	// DefaultModelVersionsPerPage is the page size of the model version list.
	DefaultModelVersionsPerPage = 20

	// deployAttempts bounds the retries of a deploy that lost a race.
	deployAttempts = 3

	// defaultUpdateMessage is offered when the latest model has no notes.
	defaultUpdateMessage = "New model version available with improved accuracy"
)

func (s *service) GetModelVersion(ctx context.Context, id string) (*models.ModelVersion, error) {
	modelVersion := models.ModelVersion{}
	if err := s.db.WithContext(ctx).First(&modelVersion, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Model %s not found", id)
	}

	return &modelVersion, nil
}

func (s *service) IsModelVersionExist(ctx context.Context, version string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ModelVersion{}).Where("version = ?", version).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (s *service) GetModelVersions(ctx context.Context, q types.GetModelVersionsQuery) ([]models.ModelVersion, int64, error) {
	if q.Page == 0 {
		q.Page = 1
	}

	if q.PerPage == 0 {
		q.PerPage = DefaultModelVersionsPerPage
	}

	tx := s.db.WithContext(ctx).Model(&models.ModelVersion{})
	if !q.IncludeArchived {
		tx = tx.Where("status <> ?", models.ModelVersionStatusArchived)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	modelVersions := []models.ModelVersion{}
	if err := tx.Scopes(models.Paginate(q.Page, q.PerPage)).Order("created_at DESC").Find(&modelVersions).Error; err != nil {
		return nil, 0, err
	}

	return modelVersions, count, nil
}

// GetLatestModelVersion returns the deployed model version, falling back to the
// newest active one.
func (s *service) GetLatestModelVersion(ctx context.Context) (*models.ModelVersion, error) {
	return s.cachedModelVersion(ctx, managercache.MakeLatestModelVersionCacheKey(), s.latestModelVersion)
}

func (s *service) GetDeployedModelVersion(ctx context.Context) (*models.ModelVersion, error) {
	return s.cachedModelVersion(ctx, managercache.MakeDeployedModelVersionCacheKey(), s.deployedModelVersion)
}

func (s *service) latestModelVersion(ctx context.Context) (*models.ModelVersion, error) {
	modelVersion, err := s.deployedModelVersion(ctx)
	if err == nil {
		return modelVersion, nil
	}

	if !aferrors.CheckError(err, aferrors.NotFound) {
		return nil, err
	}

	latest := models.ModelVersion{}
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").First(&latest).Error; err != nil {
		return nil, notFound(err, "No active model version found")
	}

	return &latest, nil
}

func (s *service) deployedModelVersion(ctx context.Context) (*models.ModelVersion, error) {
	modelVersion := models.ModelVersion{}
	if err := s.db.WithContext(ctx).Where("is_deployed = ?", true).First(&modelVersion).Error; err != nil {
		return nil, notFound(err, "No deployed model found")
	}

	return &modelVersion, nil
}

// cachedModelVersion loads the model version through the cache, lookups
// without a cache go to the database.
func (s *service) cachedModelVersion(ctx context.Context, key string, load func(context.Context) (*models.ModelVersion, error)) (*models.ModelVersion, error) {
	if s.cache == nil {
		return load(ctx)
	}

	var modelVersion models.ModelVersion
	if err := s.cache.Once(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: &modelVersion,
		TTL:   s.cache.TTL,
		Do: func(*cache.Item) (any, error) {
			return load(ctx)
		},
	}); err != nil {
		return nil, err
	}

	return &modelVersion, nil
}

// invalidateModelVersions drops the cached lookups after the registry changed.
func (s *service) invalidateModelVersions(ctx context.Context) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx, managercache.MakeLatestModelVersionCacheKey(), managercache.MakeDeployedModelVersionCacheKey()); err != nil {
		logger.Warnf("invalidate model version cache failed: %s", err.Error())
	}
}

func (s *service) GetModelVersionMetrics(ctx context.Context, id string) (*types.ModelVersionMetricsResponse, error) {
	modelVersion, err := s.GetModelVersion(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &types.ModelVersionMetricsResponse{
		ModelID:                 modelVersion.ID,
		Version:                 modelVersion.Version,
		Metrics:                 modelVersion.Metrics,
		TrainingDataCount:       modelVersion.TrainingDataCount,
		TrainingDurationSeconds: modelVersion.TrainingDurationSeconds,
		CreatedAt:               modelVersion.CreatedAt,
	}

	session := models.TrainingSession{}
	if err := s.db.WithContext(ctx).Where("model_version_id = ?", id).Order("created_at DESC").First(&session).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		return resp, nil
	}

	resp.TrainingHistory = session.TrainingHistory
	return resp, nil
}

func (s *service) CheckForUpdate(ctx context.Context, q types.CheckForUpdateQuery) (*types.CheckForUpdateResponse, error) {
	resp := &types.CheckForUpdateResponse{
		CurrentVersion: q.CurrentVersion,
		Compatible:     true,
	}

	latest, err := s.GetLatestModelVersion(ctx)
	if err != nil {
		if aferrors.CheckError(err, aferrors.NotFound) {
			return resp, nil
		}

		return nil, err
	}

	resp.LatestVersion = latest.Version
	resp.MinAppVersion = latest.MinAppVersion
	if latest.Version == q.CurrentVersion {
		return resp, nil
	}

	if !IsVersionCompatible(q.AppVersion, latest.MinAppVersion) {
		resp.Compatible = false
		resp.Message = "Update requires app version " + latest.MinAppVersion + " or higher"
		return resp, nil
	}

	resp.UpdateAvailable = true
	resp.Model = latest
	resp.Message = latest.Notes
	if resp.Message == "" {
		resp.Message = defaultUpdateMessage
	}

	return resp, nil
}

// IsVersionCompatible reports whether the client can run a model requiring
// minAppVersion, versions compare as plain strings.
func IsVersionCompatible(appVersion, minAppVersion string) bool {
	if minAppVersion == "" || appVersion == "" {
		return true
	}

	return appVersion >= minAppVersion
}

// DeployModelVersion makes the model version the only deployed one. Unsetting
// the current deployment and setting the new one share a transaction, the rows
// are locked and a concurrent deploy that commits first is retried.
func (s *service) DeployModelVersion(ctx context.Context, json types.DeployModelVersionRequest) (*models.ModelVersion, error) {
	var (
		modelVersion *models.ModelVersion
		err          error
	)

	for attempt := 1; attempt <= deployAttempts; attempt++ {
		modelVersion, err = s.deployModelVersion(ctx, json)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}

		logger.Warnf("deploy model %s conflicted, attempt %d", json.ModelID, attempt)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, aferrors.Newf(aferrors.InvalidState, "Model %s conflicts with a concurrent deployment", json.ModelID)
		}

		return nil, err
	}

	s.invalidateModelVersions(ctx)
	return modelVersion, nil
}

func (s *service) deployModelVersion(ctx context.Context, json types.DeployModelVersionRequest) (*models.ModelVersion, error) {
	modelVersion := models.ModelVersion{}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&modelVersion, "id = ?", json.ModelID).Error; err != nil {
			return notFound(err, "Model %s not found", json.ModelID)
		}

		if modelVersion.IsDeployed {
			return nil
		}

		status, err := transitModelVersion(ctx, &modelVersion, ModelVersionEventDeploy)
		if err != nil {
			return err
		}

		var deployed []string
		if err := tx.Model(&models.ModelVersion{}).Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("is_deployed = ?", true).Pluck("id", &deployed).Error; err != nil {
			return err
		}

		if len(deployed) > 0 {
			if err := tx.Model(&models.ModelVersion{}).Where("id IN ?", deployed).Updates(map[string]any{
				"is_deployed": false,
				"status":      models.ModelVersionStatusCompleted,
			}).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		notes := appendNotes(modelVersion.Notes, json.Notes)
		if err := tx.Model(&models.ModelVersion{}).Where("id = ?", modelVersion.ID).Updates(map[string]any{
			"is_deployed": true,
			"status":      status,
			"deployed_at": now,
			"notes":       notes,
		}).Error; err != nil {
			return err
		}

		modelVersion.IsDeployed = true
		modelVersion.Status = status
		modelVersion.DeployedAt = &now
		modelVersion.Notes = notes
		return nil
	}); err != nil {
		return nil, err
	}

	return &modelVersion, nil
}

func (s *service) UndeployModelVersion(ctx context.Context, id string) (*models.ModelVersion, error) {
	modelVersion := models.ModelVersion{}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&modelVersion, "id = ?", id).Error; err != nil {
			return notFound(err, "Model %s not found", id)
		}

		if !modelVersion.IsDeployed {
			return nil
		}

		status, err := transitModelVersion(ctx, &modelVersion, ModelVersionEventUndeploy)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.ModelVersion{}).Where("id = ?", id).Updates(map[string]any{
			"is_deployed": false,
			"status":      status,
		}).Error; err != nil {
			return err
		}

		modelVersion.IsDeployed = false
		modelVersion.Status = status
		return nil
	}); err != nil {
		return nil, err
	}

	s.invalidateModelVersions(ctx)
	return &modelVersion, nil
}

func (s *service) ArchiveModelVersion(ctx context.Context, id string) (*models.ModelVersion, error) {
	modelVersion := models.ModelVersion{}
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&modelVersion, "id = ?", id).Error; err != nil {
			return notFound(err, "Model %s not found", id)
		}

		if modelVersion.IsDeployed {
			return aferrors.New(aferrors.InvalidState, "Cannot archive deployed model. Undeploy first.")
		}

		if modelVersion.Status == models.ModelVersionStatusArchived {
			return nil
		}

		status, err := transitModelVersion(ctx, &modelVersion, ModelVersionEventArchive)
		if err != nil {
			return err
		}

		if err := tx.Model(&models.ModelVersion{}).Where("id = ?", id).Updates(map[string]any{
			"status":    status,
			"is_active": false,
		}).Error; err != nil {
			return err
		}

		modelVersion.Status = status
		modelVersion.IsActive = false
		return nil
	}); err != nil {
		return nil, err
	}

	s.invalidateModelVersions(ctx)
	return &modelVersion, nil
}

// DestroyModelVersion deletes the model version with its sessions and the
// tasks that produced it, then removes the stored artifacts. Artifact
// failures are reported, they never undo the deletion.
func (s *service) DestroyModelVersion(ctx context.Context, id string, purgeStorage bool) (*types.DestroyModelVersionResponse, error) {
	modelVersion := models.ModelVersion{}
	resp := &types.DestroyModelVersionResponse{
		ModelID:          id,
		DeletedArtifacts: []string{},
		FailedArtifacts:  map[string]string{},
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&modelVersion, "id = ?", id).Error; err != nil {
			return notFound(err, "Model %s not found", id)
		}

		if modelVersion.IsDeployed {
			return aferrors.New(aferrors.InvalidState, "Cannot delete deployed model. Undeploy first.")
		}

		sessions := tx.Where("model_version_id = ?", id).Delete(&models.TrainingSession{})
		if err := sessions.Error; err != nil {
			return err
		}
		resp.DeletedTrainingSessions = sessions.RowsAffected

		tasks := tx.Where("result_model_id = ?", id).Delete(&models.TrainingTask{})
		if err := tasks.Error; err != nil {
			return err
		}
		resp.DeletedTrainingTasks = tasks.RowsAffected

		// Children keep their row, the lineage pointer is cleared.
		if err := tx.Model(&models.ModelVersion{}).Where("base_model_id = ?", id).Update("base_model_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.ModelVersion{}, "id = ?", id).Error
	}); err != nil {
		return nil, err
	}

	s.invalidateModelVersions(ctx)
	resp.Version = modelVersion.Version

	if purgeStorage && s.artifacts != nil {
		var result *multierror.Error
		for _, key := range modelVersion.ObjectKeys() {
			if err := s.artifacts.Delete(ctx, key); err != nil {
				result = multierror.Append(result, err)
				resp.FailedArtifacts[key] = err.Error()
				continue
			}

			resp.DeletedArtifacts = append(resp.DeletedArtifacts, key)
		}

		if err := result.ErrorOrNil(); err != nil {
			logger.WithModel(modelVersion.ID, modelVersion.Version).Warnf("delete artifacts failed: %s", err.Error())
		}
	}

	resp.Message = "Model " + modelVersion.Version + " deleted successfully"
	return resp, nil
}

func appendNotes(notes, more string) string {
	if more == "" {
		return notes
	}

	if notes == "" {
		return more
	}

	return notes + "\n" + more
}
