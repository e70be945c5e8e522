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
	"testing"
	"time"

	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/database"
	"github.com/aquaforecast/aquaforecast/manager/models"
)

// mockTime is later than the seeded baseline.
var mockTime = time.Now().Add(time.Hour).Truncate(time.Second)

// newTestService returns a service over a migrated in-memory sqlite holding
// the seeded baseline.
func newTestService(t *testing.T, options ...Option) (*service, *database.Database) {
	t.Helper()

	cfg := config.New()
	cfg.Database.Type = config.DatabaseTypeSqlite
	cfg.Database.Sqlite.Path = ":memory:"
	cfg.Database.Migrate = true

	db, err := database.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return New(append([]Option{WithDatabase(db)}, options...)...).(*service), db
}

func mockModelVersion(t *testing.T, db *database.Database, version, status string, createdAt time.Time) *models.ModelVersion {
	t.Helper()

	modelVersion := &models.ModelVersion{
		BaseModel: models.BaseModel{
			CreatedAt: createdAt,
		},
		Version:         version,
		Status:          status,
		IsDeployed:      status == models.ModelVersionStatusDeployed,
		FullObjectKey:   "models/" + version + "/model.json",
		MobileObjectKey: "models/" + version + "/model_mobile.json",
		PreprocessingConfig: models.JSONMap{
			"scaler_object_key": "models/" + version + "/scaler.json",
		},
		Metrics: models.JSONMap{
			"overall": map[string]any{"r2": 0.9},
		},
	}

	if err := db.DB.Create(modelVersion).Error; err != nil {
		t.Fatal(err)
	}

	return modelVersion
}

func mockFarmData(t *testing.T, db *database.Database, n int, labeled, verified bool) []string {
	t.Helper()

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		farmData := &models.FarmData{
			UserID:          "user",
			Temperature:     26,
			PH:              7.2,
			DissolvedOxygen: 6.1,
			Ammonia:         0.02,
			Nitrate:         5,
			Turbidity:       12,
			Verified:        verified,
			RecordedAt:      mockTime.Add(time.Duration(n-i) * time.Hour),
		}

		if labeled {
			weight, length := 0.5+float64(i)/100, 20+float64(i)/10
			farmData.FishWeight = &weight
			farmData.FishLength = &length
		}

		if err := db.DB.Create(farmData).Error; err != nil {
			t.Fatal(err)
		}

		ids = append(ids, farmData.ID)
	}

	return ids
}

func mockTrainingTask(t *testing.T, db *database.Database, version, status string) *models.TrainingTask {
	t.Helper()

	task := &models.TrainingTask{
		NewVersion:  version,
		InitiatedBy: "admin",
		Status:      status,
	}

	if err := db.DB.Create(task).Error; err != nil {
		t.Fatal(err)
	}

	return task
}
