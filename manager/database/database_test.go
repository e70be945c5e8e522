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

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/models"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	cfg := config.New()
	cfg.Database.Type = config.DatabaseTypeSqlite
	cfg.Database.Sqlite.Path = ":memory:"
	cfg.Database.Migrate = true

	db, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestMigrate(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(t *testing.T, db *Database)
		expect func(t *testing.T, db *Database, err error)
	}{
		{
			name: "migrate twice",
			mock: func(t *testing.T, db *Database) {},
			expect: func(t *testing.T, db *Database, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(db.DB.Migrator().HasIndex(&models.ModelVersion{}, DeployedModelVersionIndex))
			},
		},
		{
			name: "reject a second deployed model version",
			mock: func(t *testing.T, db *Database) {
				assert.NoError(t, db.DB.Create(&models.ModelVersion{Version: "1.0.0", Status: models.ModelVersionStatusDeployed, IsDeployed: true}).Error)
			},
			expect: func(t *testing.T, db *Database, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Error(db.DB.Create(&models.ModelVersion{Version: "1.1.0", Status: models.ModelVersionStatusDeployed, IsDeployed: true}).Error)
				assert.NoError(db.DB.Create(&models.ModelVersion{Version: "1.2.0", Status: models.ModelVersionStatusCompleted}).Error)
				assert.NoError(db.DB.Create(&models.ModelVersion{Version: "1.3.0", Status: models.ModelVersionStatusCompleted}).Error)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDatabase(t)
			tc.mock(t, db)
			tc.expect(t, db, Migrate(db.DB))
		})
	}
}

func TestSeed(t *testing.T) {
	assert := assert.New(t)
	db := newTestDatabase(t)
	assert.NoError(Seed(db.DB, &config.New().Training))

	var baselines []models.ModelVersion
	assert.NoError(db.DB.Where("version = ?", models.BaselineModelVersion).Find(&baselines).Error)
	assert.Len(baselines, 1)
	assert.Equal(models.ModelVersionStatusCompleted, baselines[0].Status)
	assert.False(baselines[0].IsActive)
	assert.False(baselines[0].IsDeployed)
}
