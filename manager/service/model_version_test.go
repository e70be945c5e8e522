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
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	"github.com/aquaforecast/aquaforecast/manager/cache"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/database"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/types"
	"github.com/aquaforecast/aquaforecast/trainer/storage/mocks"
)

func TestService_GetModelVersion(t *testing.T) {
	s, db := newTestService(t)
	modelVersion := mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime)

	assert := assert.New(t)
	got, err := s.GetModelVersion(context.Background(), modelVersion.ID)
	assert.NoError(err)
	assert.Equal("1.0.0", got.Version)

	_, err = s.GetModelVersion(context.Background(), "foo")
	assert.True(aferrors.CheckError(err, aferrors.NotFound))
	assert.Equal("Model foo not found", aferrors.MessageOf(err))

	exist, err := s.IsModelVersionExist(context.Background(), "1.0.0")
	assert.NoError(err)
	assert.True(exist)

	exist, err = s.IsModelVersionExist(context.Background(), "2.0.0")
	assert.NoError(err)
	assert.False(exist)
}

func TestService_GetModelVersions(t *testing.T) {
	s, db := newTestService(t)
	mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime)
	mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime.Add(time.Hour))
	archived := mockModelVersion(t, db, "1.2.0", models.ModelVersionStatusCompleted, mockTime.Add(2*time.Hour))
	if _, err := s.ArchiveModelVersion(context.Background(), archived.ID); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		query  types.GetModelVersionsQuery
		expect func(t *testing.T, modelVersions []models.ModelVersion, total int64, err error)
	}{
		{
			name:  "exclude archived model versions",
			query: types.GetModelVersionsQuery{},
			expect: func(t *testing.T, modelVersions []models.ModelVersion, total int64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.EqualValues(3, total)
				assert.Len(modelVersions, 3)
				assert.Equal("1.1.0", modelVersions[0].Version)
			},
		},
		{
			name:  "include archived model versions",
			query: types.GetModelVersionsQuery{IncludeArchived: true},
			expect: func(t *testing.T, modelVersions []models.ModelVersion, total int64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.EqualValues(4, total)
				assert.Equal("1.2.0", modelVersions[0].Version)
			},
		},
		{
			name:  "paginate model versions",
			query: types.GetModelVersionsQuery{Page: 2, PerPage: 1},
			expect: func(t *testing.T, modelVersions []models.ModelVersion, total int64, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.EqualValues(3, total)
				assert.Len(modelVersions, 1)
				assert.Equal("1.0.0", modelVersions[0].Version)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			modelVersions, total, err := s.GetModelVersions(context.Background(), tc.query)
			tc.expect(t, modelVersions, total, err)
		})
	}
}

func TestService_GetLatestModelVersion(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, db *database.Database)
		expect func(t *testing.T, modelVersion *models.ModelVersion, err error)
	}{
		{
			name: "baseline is not offered",
			mock: func(t *testing.T, db *database.Database) {},
			expect: func(t *testing.T, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.True(aferrors.CheckError(err, aferrors.NotFound))
				assert.Equal("No active model version found", aferrors.MessageOf(err))
			},
		},
		{
			name: "newest active model version",
			mock: func(t *testing.T, db *database.Database) {
				mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime)
				mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime.Add(time.Hour))
			},
			expect: func(t *testing.T, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("1.1.0", modelVersion.Version)
			},
		},
		{
			name: "deployed model version wins over newer ones",
			mock: func(t *testing.T, db *database.Database) {
				mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime)
				mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime.Add(time.Hour))
			},
			expect: func(t *testing.T, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("1.0.0", modelVersion.Version)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, db := newTestService(t)
			tc.mock(t, db)
			modelVersion, err := s.GetLatestModelVersion(context.Background())
			tc.expect(t, modelVersion, err)
		})
	}
}

func TestService_GetDeployedModelVersion(t *testing.T) {
	s, db := newTestService(t)
	assert := assert.New(t)

	_, err := s.GetDeployedModelVersion(context.Background())
	assert.True(aferrors.CheckError(err, aferrors.NotFound))
	assert.Equal("No deployed model found", aferrors.MessageOf(err))

	mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime)
	modelVersion, err := s.GetDeployedModelVersion(context.Background())
	assert.NoError(err)
	assert.Equal("1.0.0", modelVersion.Version)
}

func TestService_CachedModelVersion(t *testing.T) {
	cfg := config.New()
	s, db := newTestService(t, WithCache(cache.New(cfg, nil)))
	mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime)

	assert := assert.New(t)
	modelVersion, err := s.GetLatestModelVersion(context.Background())
	assert.NoError(err)
	assert.Equal("1.0.0", modelVersion.Version)

	newer := mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime.Add(time.Hour))
	modelVersion, err = s.GetLatestModelVersion(context.Background())
	assert.NoError(err)
	assert.Equal("1.0.0", modelVersion.Version)

	_, err = s.DeployModelVersion(context.Background(), types.DeployModelVersionRequest{ModelID: newer.ID})
	assert.NoError(err)

	modelVersion, err = s.GetLatestModelVersion(context.Background())
	assert.NoError(err)
	assert.Equal("1.1.0", modelVersion.Version)
	assert.True(modelVersion.IsDeployed)
}

func TestService_GetModelVersionMetrics(t *testing.T) {
	s, db := newTestService(t)
	modelVersion := mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime)

	assert := assert.New(t)
	resp, err := s.GetModelVersionMetrics(context.Background(), modelVersion.ID)
	assert.NoError(err)
	assert.Equal("1.0.0", resp.Version)
	assert.Nil(resp.TrainingHistory)

	assert.NoError(db.DB.Create(&models.TrainingSession{
		ModelVersionID:  modelVersion.ID,
		FarmDataIDs:     models.Array{"foo"},
		TrainingHistory: models.JSONMap{"loss": []any{1.0, 0.5}},
		StartedAt:       mockTime,
	}).Error)

	resp, err = s.GetModelVersionMetrics(context.Background(), modelVersion.ID)
	assert.NoError(err)
	assert.Equal([]any{1.0, 0.5}, resp.TrainingHistory["loss"])
	assert.EqualValues(0.9, resp.Metrics["overall"].(map[string]any)["r2"])

	_, err = s.GetModelVersionMetrics(context.Background(), "foo")
	assert.True(aferrors.CheckError(err, aferrors.NotFound))
}

func TestService_CheckForUpdate(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, db *database.Database)
		query  types.CheckForUpdateQuery
		expect func(t *testing.T, resp *types.CheckForUpdateResponse, err error)
	}{
		{
			name:  "no model version available",
			mock:  func(t *testing.T, db *database.Database) {},
			query: types.CheckForUpdateQuery{CurrentVersion: "1.0.0"},
			expect: func(t *testing.T, resp *types.CheckForUpdateResponse, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(resp.UpdateAvailable)
				assert.True(resp.Compatible)
				assert.Empty(resp.LatestVersion)
			},
		},
		{
			name: "already on the latest model version",
			mock: func(t *testing.T, db *database.Database) {
				mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime)
			},
			query: types.CheckForUpdateQuery{CurrentVersion: "1.0.0"},
			expect: func(t *testing.T, resp *types.CheckForUpdateResponse, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(resp.UpdateAvailable)
				assert.Equal("1.0.0", resp.LatestVersion)
				assert.Nil(resp.Model)
			},
		},
		{
			name: "update available",
			mock: func(t *testing.T, db *database.Database) {
				mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusDeployed, mockTime)
			},
			query: types.CheckForUpdateQuery{CurrentVersion: "1.0.0", AppVersion: "1.0.0"},
			expect: func(t *testing.T, resp *types.CheckForUpdateResponse, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(resp.UpdateAvailable)
				assert.True(resp.Compatible)
				assert.Equal("1.1.0", resp.LatestVersion)
				assert.Equal("1.1.0", resp.Model.Version)
				assert.Equal(defaultUpdateMessage, resp.Message)
			},
		},
		{
			name: "update requires a newer app",
			mock: func(t *testing.T, db *database.Database) {
				modelVersion := mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusDeployed, mockTime)
				if err := db.DB.Model(modelVersion).Update("min_app_version", "2.0.0").Error; err != nil {
					t.Fatal(err)
				}
			},
			query: types.CheckForUpdateQuery{CurrentVersion: "1.0.0", AppVersion: "1.5.0"},
			expect: func(t *testing.T, resp *types.CheckForUpdateResponse, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(resp.UpdateAvailable)
				assert.False(resp.Compatible)
				assert.Equal("2.0.0", resp.MinAppVersion)
				assert.Equal("Update requires app version 2.0.0 or higher", resp.Message)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, db := newTestService(t)
			tc.mock(t, db)
			resp, err := s.CheckForUpdate(context.Background(), tc.query)
			tc.expect(t, resp, err)
		})
	}
}

func TestIsVersionCompatible(t *testing.T) {
	tests := []struct {
		appVersion    string
		minAppVersion string
		expect        bool
	}{
		{"", "", true},
		{"1.0.0", "", true},
		{"", "2.0.0", true},
		{"2.0.0", "2.0.0", true},
		{"2.1.0", "2.0.0", true},
		{"1.9.0", "2.0.0", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expect, IsVersionCompatible(tc.appVersion, tc.minAppVersion), "%s >= %s", tc.appVersion, tc.minAppVersion)
	}
}

func TestService_DeployModelVersion(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, db *database.Database) string
		notes  string
		expect func(t *testing.T, db *database.Database, modelVersion *models.ModelVersion, err error)
	}{
		{
			name: "deploy completed model version",
			mock: func(t *testing.T, db *database.Database) string {
				return mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime).ID
			},
			notes: "foo",
			expect: func(t *testing.T, db *database.Database, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(modelVersion.IsDeployed)
				assert.Equal(models.ModelVersionStatusDeployed, modelVersion.Status)
				assert.NotNil(modelVersion.DeployedAt)
				assert.Equal("foo", modelVersion.Notes)

				row := models.ModelVersion{}
				assert.NoError(db.DB.First(&row, "id = ?", modelVersion.ID).Error)
				assert.True(row.IsDeployed)
				assert.Equal(models.ModelVersionStatusDeployed, row.Status)
			},
		},
		{
			name: "deploy replaces the deployed model version",
			mock: func(t *testing.T, db *database.Database) string {
				mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime)
				return mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime.Add(time.Hour)).ID
			},
			expect: func(t *testing.T, db *database.Database, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("1.1.0", modelVersion.Version)

				var count int64
				assert.NoError(db.DB.Model(&models.ModelVersion{}).Where("is_deployed = ?", true).Count(&count).Error)
				assert.EqualValues(1, count)

				previous := models.ModelVersion{}
				assert.NoError(db.DB.First(&previous, "version = ?", "1.0.0").Error)
				assert.False(previous.IsDeployed)
				assert.Equal(models.ModelVersionStatusCompleted, previous.Status)
			},
		},
		{
			name: "deploy deployed model version is a no-op",
			mock: func(t *testing.T, db *database.Database) string {
				return mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime).ID
			},
			notes: "foo",
			expect: func(t *testing.T, db *database.Database, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(modelVersion.IsDeployed)
				assert.Nil(modelVersion.DeployedAt)
				assert.Empty(modelVersion.Notes)
			},
		},
		{
			name: "deploy failed model version",
			mock: func(t *testing.T, db *database.Database) string {
				return mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusFailed, mockTime).ID
			},
			expect: func(t *testing.T, db *database.Database, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.True(aferrors.CheckError(err, aferrors.InvalidState))
				assert.Equal("cannot deploy model version 1.0.0 with status failed", aferrors.MessageOf(err))
			},
		},
		{
			name: "deploy unknown model version",
			mock: func(t *testing.T, db *database.Database) string {
				return "foo"
			},
			expect: func(t *testing.T, db *database.Database, modelVersion *models.ModelVersion, err error) {
				assert := assert.New(t)
				assert.True(aferrors.CheckError(err, aferrors.NotFound))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, db := newTestService(t)
			id := tc.mock(t, db)
			modelVersion, err := s.DeployModelVersion(context.Background(), types.DeployModelVersionRequest{ModelID: id, Notes: tc.notes})
			tc.expect(t, db, modelVersion, err)
		})
	}
}

func TestService_DeployModelVersion_Concurrent(t *testing.T) {
	assert := assert.New(t)
	s, db := newTestService(t)
	mockModelVersion(t, db, "0.9.0", models.ModelVersionStatusDeployed, mockTime)

	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, mockModelVersion(t, db, fmt.Sprintf("1.%d.0", i), models.ModelVersionStatusCompleted, mockTime.Add(time.Duration(i)*time.Minute)).ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = s.DeployModelVersion(context.Background(), types.DeployModelVersionRequest{ModelID: id})
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(err)
	}

	var deployed []models.ModelVersion
	assert.NoError(db.DB.Where("is_deployed = ?", true).Find(&deployed).Error)
	assert.Len(deployed, 1)
	assert.Contains(ids, deployed[0].ID)
	assert.Equal(models.ModelVersionStatusDeployed, deployed[0].Status)

	var count int64
	assert.NoError(db.DB.Model(&models.ModelVersion{}).Where("status = ?", models.ModelVersionStatusDeployed).Count(&count).Error)
	assert.EqualValues(1, count)
}

func TestService_UndeployModelVersion(t *testing.T) {
	s, db := newTestService(t)
	deployed := mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime)
	completed := mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime)

	assert := assert.New(t)
	modelVersion, err := s.UndeployModelVersion(context.Background(), deployed.ID)
	assert.NoError(err)
	assert.False(modelVersion.IsDeployed)
	assert.Equal(models.ModelVersionStatusCompleted, modelVersion.Status)

	modelVersion, err = s.UndeployModelVersion(context.Background(), completed.ID)
	assert.NoError(err)
	assert.Equal(models.ModelVersionStatusCompleted, modelVersion.Status)

	_, err = s.UndeployModelVersion(context.Background(), "foo")
	assert.True(aferrors.CheckError(err, aferrors.NotFound))
}

func TestService_ArchiveModelVersion(t *testing.T) {
	s, db := newTestService(t)
	deployed := mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime)
	training := mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusTraining, mockTime)

	assert := assert.New(t)
	_, err := s.ArchiveModelVersion(context.Background(), deployed.ID)
	assert.True(aferrors.CheckError(err, aferrors.InvalidState))
	assert.Equal("Cannot archive deployed model. Undeploy first.", aferrors.MessageOf(err))

	_, err = s.UndeployModelVersion(context.Background(), deployed.ID)
	assert.NoError(err)

	modelVersion, err := s.ArchiveModelVersion(context.Background(), deployed.ID)
	assert.NoError(err)
	assert.Equal(models.ModelVersionStatusArchived, modelVersion.Status)
	assert.False(modelVersion.IsActive)

	row := models.ModelVersion{}
	assert.NoError(db.DB.First(&row, "id = ?", deployed.ID).Error)
	assert.Equal(models.ModelVersionStatusArchived, row.Status)
	assert.False(row.IsActive)

	modelVersion, err = s.ArchiveModelVersion(context.Background(), deployed.ID)
	assert.NoError(err)
	assert.Equal(models.ModelVersionStatusArchived, modelVersion.Status)

	_, err = s.ArchiveModelVersion(context.Background(), training.ID)
	assert.True(aferrors.CheckError(err, aferrors.InvalidState))

	_, err = s.DeployModelVersion(context.Background(), types.DeployModelVersionRequest{ModelID: deployed.ID})
	assert.True(aferrors.CheckError(err, aferrors.InvalidState))
}

func TestService_DestroyModelVersion(t *testing.T) {
	tests := []struct {
		name   string
		purge  bool
		mock   func(t *testing.T, db *database.Database, ma *mocks.MockArtifactsMockRecorder) string
		expect func(t *testing.T, db *database.Database, resp *types.DestroyModelVersionResponse, err error)
	}{
		{
			name:  "destroy model version with its lineage",
			purge: true,
			mock: func(t *testing.T, db *database.Database, ma *mocks.MockArtifactsMockRecorder) string {
				modelVersion := mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime)
				child := mockModelVersion(t, db, "1.1.0", models.ModelVersionStatusCompleted, mockTime)
				if err := db.DB.Model(child).Update("base_model_id", modelVersion.ID).Error; err != nil {
					t.Fatal(err)
				}

				if err := db.DB.Create(&models.TrainingSession{
					ModelVersionID: modelVersion.ID,
					FarmDataIDs:    models.Array{"foo"},
					StartedAt:      mockTime,
				}).Error; err != nil {
					t.Fatal(err)
				}

				task := mockTrainingTask(t, db, "1.0.0", models.TrainingTaskStatusCompleted)
				if err := db.DB.Model(task).Update("result_model_id", modelVersion.ID).Error; err != nil {
					t.Fatal(err)
				}

				gomock.InOrder(
					ma.Delete(gomock.Any(), "models/1.0.0/model.json").Return(nil).Times(1),
					ma.Delete(gomock.Any(), "models/1.0.0/model_mobile.json").Return(errors.New("foo")).Times(1),
					ma.Delete(gomock.Any(), "models/1.0.0/scaler.json").Return(nil).Times(1),
				)
				return modelVersion.ID
			},
			expect: func(t *testing.T, db *database.Database, resp *types.DestroyModelVersionResponse, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal("1.0.0", resp.Version)
				assert.EqualValues(1, resp.DeletedTrainingSessions)
				assert.EqualValues(1, resp.DeletedTrainingTasks)
				assert.Equal([]string{"models/1.0.0/model.json", "models/1.0.0/scaler.json"}, resp.DeletedArtifacts)
				assert.Equal(map[string]string{"models/1.0.0/model_mobile.json": "foo"}, resp.FailedArtifacts)

				var count int64
				assert.NoError(db.DB.Model(&models.ModelVersion{}).Where("version = ?", "1.0.0").Count(&count).Error)
				assert.EqualValues(0, count)

				child := models.ModelVersion{}
				assert.NoError(db.DB.First(&child, "version = ?", "1.1.0").Error)
				assert.Nil(child.BaseModelID)
			},
		},
		{
			name:  "destroy model version and keep storage",
			purge: false,
			mock: func(t *testing.T, db *database.Database, ma *mocks.MockArtifactsMockRecorder) string {
				return mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusCompleted, mockTime).ID
			},
			expect: func(t *testing.T, db *database.Database, resp *types.DestroyModelVersionResponse, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Empty(resp.DeletedArtifacts)
				assert.Empty(resp.FailedArtifacts)
			},
		},
		{
			name:  "destroy deployed model version",
			purge: true,
			mock: func(t *testing.T, db *database.Database, ma *mocks.MockArtifactsMockRecorder) string {
				return mockModelVersion(t, db, "1.0.0", models.ModelVersionStatusDeployed, mockTime).ID
			},
			expect: func(t *testing.T, db *database.Database, resp *types.DestroyModelVersionResponse, err error) {
				assert := assert.New(t)
				assert.True(aferrors.CheckError(err, aferrors.InvalidState))
				assert.Equal("Cannot delete deployed model. Undeploy first.", aferrors.MessageOf(err))
			},
		},
		{
			name:  "destroy unknown model version",
			purge: true,
			mock: func(t *testing.T, db *database.Database, ma *mocks.MockArtifactsMockRecorder) string {
				return "foo"
			},
			expect: func(t *testing.T, db *database.Database, resp *types.DestroyModelVersionResponse, err error) {
				assert := assert.New(t)
				assert.True(aferrors.CheckError(err, aferrors.NotFound))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			artifacts := mocks.NewMockArtifacts(ctl)

			s, db := newTestService(t, WithArtifacts(artifacts))
			id := tc.mock(t, db, artifacts.EXPECT())
			resp, err := s.DestroyModelVersion(context.Background(), id, tc.purge)
			tc.expect(t, db, resp, err)
		})
	}
}
