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
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"moul.io/zapgorm2"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/trainer/training"
)

type Database struct {
	DB  *gorm.DB
	RDB redis.UniversalClient
}

func New(cfg *config.Config) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Type {
	case config.DatabaseTypePostgres:
		db, err = newPostgres(cfg)
	case config.DatabaseTypeMysql:
		db, err = newMyqsl(cfg)
	case config.DatabaseTypeSqlite:
		db, err = newSqlite(cfg)
	default:
		return nil, fmt.Errorf("invalid database type %s", cfg.Database.Type)
	}
	if err != nil {
		logger.Errorf("%s: %s", cfg.Database.Type, err.Error())
		return nil, err
	}

	if cfg.Database.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	if err := Seed(db, &cfg.Training); err != nil {
		return nil, err
	}

	var rdb redis.UniversalClient
	if cfg.Database.Redis.Enable {
		rdb, err = NewRedis(&cfg.Database.Redis)
		if err != nil {
			logger.Errorf("redis: %s", err.Error())
			return nil, err
		}
	}

	return &Database{
		DB:  db,
		RDB: rdb,
	}, nil
}

// Close releases the sql pool and the redis client.
func (d *Database) Close() error {
	var result *multierror.Error
	if sqlDB, err := d.DB.DB(); err == nil {
		result = multierror.Append(result, sqlDB.Close())
	}

	if d.RDB != nil {
		result = multierror.Append(result, d.RDB.Close())
	}

	return result.ErrorOrNil()
}

func gormConfig(cfg *config.Config) *gorm.Config {
	logLevel := gormlogger.Info
	if !cfg.Verbose {
		logLevel = gormlogger.Warn
	}

	return &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   zapgorm2.New(logger.CoreLogger.Desugar()).LogMode(logLevel),
	}
}

// DeployedModelVersionIndex keeps at most one model version deployed.
const DeployedModelVersionIndex = "uniq_model_version_deployed"

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ModelVersion{},
		&models.TrainingSession{},
		&models.TrainingTask{},
		&models.FarmData{},
		&models.SampleReservation{},
	); err != nil {
		return err
	}

	return migrateDeployedIndex(db)
}

// migrateDeployedIndex creates a unique index over the deployed rows only,
// mysql has no partial index and indexes an expression that is null otherwise.
func migrateDeployedIndex(db *gorm.DB) error {
	if db.Migrator().HasIndex(&models.ModelVersion{}, DeployedModelVersionIndex) {
		return nil
	}

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(&models.ModelVersion{}); err != nil {
		return err
	}

	switch db.Dialector.Name() {
	case config.DatabaseTypeMysql:
		return db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s ((CASE WHEN is_deployed THEN 1 END))", DeployedModelVersionIndex, stmt.Schema.Table)).Error
	default:
		return db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (is_deployed) WHERE is_deployed", DeployedModelVersionIndex, stmt.Schema.Table)).Error
	}
}

// Seed creates the baseline model version unless it exists.
func Seed(db *gorm.DB, cfg *config.TrainingConfig) error {
	var baselineCount int64
	if err := db.Model(models.ModelVersion{}).Where("version = ?", models.BaselineModelVersion).Count(&baselineCount).Error; err != nil {
		return err
	}

	if baselineCount <= 0 {
		if err := db.Create(&models.ModelVersion{
			Version:             models.BaselineModelVersion,
			PreprocessingConfig: training.BaselinePreprocessingConfig(cfg.BaselineScalerPath, cfg.BaselineWeightsPath),
			ModelConfig:         training.BaselineModelConfig(),
			Status:              models.ModelVersionStatusCompleted,
			IsDeployed:          false,
			IsActive:            false,
			Notes:               "Default baseline configuration for initial model training",
		}).Error; err != nil {
			return err
		}

		// The column default would otherwise override the zero value.
		if err := db.Model(models.ModelVersion{}).Where("version = ?", models.BaselineModelVersion).Update("is_active", false).Error; err != nil {
			return err
		}

		logger.Infof("baseline model version %s created", models.BaselineModelVersion)
	}

	return nil
}
