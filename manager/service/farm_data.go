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
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

const (
	// farmDataBatchSize bounds the ids bound into one statement.
	farmDataBatchSize = 500
)

// eligibleFarmData scopes farm data to rows usable for training.
func eligibleFarmData(db *gorm.DB) *gorm.DB {
	return db.Where("fish_weight IS NOT NULL AND fish_length IS NOT NULL AND verified = ?", true)
}

// GetUnusedFarmDataIDs returns eligible farm data consumed by no training
// session and claimed by no in-flight task.
func (s *service) GetUnusedFarmDataIDs(ctx context.Context) ([]string, error) {
	return unusedFarmDataIDs(s.db.WithContext(ctx), "")
}

// unusedFarmDataIDs returns the unused pool as seen by the task, its own
// reservations stay in the pool.
func unusedFarmDataIDs(tx *gorm.DB, taskID string) ([]string, error) {
	var ids []string
	if err := tx.Model(&models.FarmData{}).Scopes(eligibleFarmData).Order("recorded_at").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	sessions := []models.TrainingSession{}
	if err := tx.Select("farm_data_ids").Find(&sessions).Error; err != nil {
		return nil, err
	}

	used := make(map[string]struct{})
	for _, session := range sessions {
		for _, id := range session.FarmDataIDs {
			used[id] = struct{}{}
		}
	}

	var reserved []string
	reservations := tx.Model(&models.SampleReservation{})
	if taskID != "" {
		reservations = reservations.Where("task_id <> ?", taskID)
	}

	if err := reservations.Pluck("farm_data_id", &reserved).Error; err != nil {
		return nil, err
	}

	for _, id := range reserved {
		used[id] = struct{}{}
	}

	unused := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := used[id]; !ok {
			unused = append(unused, id)
		}
	}

	return unused, nil
}

// ClaimUnusedFarmData reserves the unused pool for the task and returns the
// ids the task holds. Rows claimed concurrently by another task are skipped.
func (s *service) ClaimUnusedFarmData(ctx context.Context, taskID string) ([]string, error) {
	var claimed []string
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := unusedFarmDataIDs(tx, taskID)
		if err != nil {
			return err
		}

		if len(ids) > 0 {
			now := time.Now()
			reservations := make([]models.SampleReservation, 0, len(ids))
			for _, id := range ids {
				reservations = append(reservations, models.SampleReservation{
					FarmDataID: id,
					TaskID:     taskID,
					CreatedAt:  now,
				})
			}

			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&reservations, farmDataBatchSize).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.SampleReservation{}).Where("task_id = ?", taskID).Order("farm_data_id").Pluck("farm_data_id", &claimed).Error
	}); err != nil {
		return nil, err
	}

	logger.WithTask(taskID).Infof("claimed %d unused farm data", len(claimed))
	return claimed, nil
}

func (s *service) ReleaseFarmData(ctx context.Context, taskID string) error {
	return s.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&models.SampleReservation{}).Error
}

// ListFarmData returns the farm data of the ids ordered by recorded time.
func (s *service) ListFarmData(ctx context.Context, ids []string) ([]models.FarmData, error) {
	farmData := make([]models.FarmData, 0, len(ids))
	for start := 0; start < len(ids); start += farmDataBatchSize {
		end := start + farmDataBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch := []models.FarmData{}
		if err := s.db.WithContext(ctx).Where("id IN ?", ids[start:end]).Find(&batch).Error; err != nil {
			return nil, err
		}

		farmData = append(farmData, batch...)
	}

	sort.SliceStable(farmData, func(i, j int) bool {
		return farmData[i].RecordedAt.Before(farmData[j].RecordedAt)
	})

	return farmData, nil
}

// CreateTrainedModel writes the model version and the session that consumed
// the farm data, the reservations of the task are dropped in the same
// transaction.
func (s *service) CreateTrainedModel(ctx context.Context, taskID string, modelVersion *models.ModelVersion, session *models.TrainingSession) error {
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(modelVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return aferrors.Newf(aferrors.Validation, "Model version %s already exists", modelVersion.Version)
			}

			return err
		}

		session.ModelVersionID = modelVersion.ID
		if err := tx.Create(session).Error; err != nil {
			return err
		}

		return tx.Where("task_id = ?", taskID).Delete(&models.SampleReservation{}).Error
	}); err != nil {
		return err
	}

	s.invalidateModelVersions(ctx)
	return nil
}

// SyncFarmData stores the readings of the user in batches. When the batch
// insert fails the readings are stored one by one and the rejected ones are
// counted as failed.
func (s *service) SyncFarmData(ctx context.Context, userID string, json types.SyncFarmDataRequest) (*types.SyncFarmDataResponse, error) {
	syncedAt := time.Now().UTC()
	farmData := make([]models.FarmData, 0, len(json.Readings))
	for i := range json.Readings {
		farmData = append(farmData, json.Readings[i].FarmData(userID, json.DeviceID, syncedAt))
	}

	log := logger.With("user", userID)
	tx := s.db.WithContext(ctx)
	created := farmData
	if err := tx.CreateInBatches(&farmData, farmDataBatchSize).Error; err != nil {
		log.Warnf("batch sync of %d farm data failed, storing one by one: %s", len(farmData), err.Error())

		var lastErr error
		created = make([]models.FarmData, 0, len(farmData))
		for i := range farmData {
			if err := tx.Create(&farmData[i]).Error; err != nil {
				lastErr = err
				continue
			}

			created = append(created, farmData[i])
		}

		if len(created) == 0 {
			return nil, lastErr
		}
	}

	resp := &types.SyncFarmDataResponse{
		SyncedCount: len(created),
		FailedCount: len(farmData) - len(created),
		SyncID:      uuid.NewString(),
		SyncedAt:    syncedAt,
		Readings:    make([]types.SyncedReading, 0, len(created)),
	}
	for _, f := range created {
		resp.Readings = append(resp.Readings, types.SyncedReading{
			DataID:     f.ID,
			RecordedAt: f.RecordedAt,
			Status:     types.SyncedReadingStatusSuccess,
		})
	}

	log.Infof("synced %d farm data, %d failed", resp.SyncedCount, resp.FailedCount)
	return resp, nil
}

// GetFarmData returns a page of the readings of the user, newest first.
func (s *service) GetFarmData(ctx context.Context, userID string, q types.GetFarmDataQuery) (*types.GetFarmDataResponse, error) {
	if q.Limit == 0 {
		q.Limit = types.DefaultFarmDataLimit
	}

	tx := s.db.WithContext(ctx).Model(&models.FarmData{}).Where("user_id = ?", userID)
	if q.StartDate != nil {
		tx = tx.Where("recorded_at >= ?", *q.StartDate)
	}

	if q.EndDate != nil {
		tx = tx.Where("recorded_at <= ?", *q.EndDate)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	farmData := []models.FarmData{}
	if err := tx.Order("recorded_at DESC").Limit(q.Limit).Offset(q.Offset).Find(&farmData).Error; err != nil {
		return nil, err
	}

	return &types.GetFarmDataResponse{
		Readings: types.NewFarmDataResponse(farmData),
		Total:    total,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}, nil
}

// DestroyUserFarmData deletes every reading of the user together with the
// reservations held on them. Training sessions keep the ids they consumed.
func (s *service) DestroyUserFarmData(ctx context.Context, userID string) (int64, error) {
	var deleted int64
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.FarmData{}).Where("user_id = ?", userID).Pluck("id", &ids).Error; err != nil {
			return err
		}

		for start := 0; start < len(ids); start += farmDataBatchSize {
			end := start + farmDataBatchSize
			if end > len(ids) {
				end = len(ids)
			}

			if err := tx.Where("farm_data_id IN ?", ids[start:end]).Delete(&models.SampleReservation{}).Error; err != nil {
				return err
			}
		}

		result := tx.Where("user_id = ?", userID).Delete(&models.FarmData{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected
		return nil
	}); err != nil {
		return 0, err
	}

	logger.With("user", userID).Infof("destroyed %d farm data", deleted)
	return deleted, nil
}
