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

const (
	// DefaultFarmDataLimit is the default page size of the farm data list.
	DefaultFarmDataLimit = 100

	// SyncedReadingStatusSuccess is the status of a stored reading.
	SyncedReadingStatusSuccess = "success"

	// StartDateLayout is the layout of the cycle start date.
	StartDateLayout = "2006-01-02"
)

type FarmDataLocation struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

// FarmDataReading is one water quality reading uploaded by a device.
type FarmDataReading struct {
	Temperature     *float64          `json:"temperature" binding:"required,gte=0,lte=50"`
	PH              *float64          `json:"ph" binding:"required,gte=0,lte=14"`
	DissolvedOxygen *float64          `json:"dissolved_oxygen" binding:"required,gte=0,lte=20"`
	Ammonia         *float64          `json:"ammonia" binding:"required,gte=0,lte=10"`
	Nitrate         *float64          `json:"nitrate" binding:"required,gte=0,lte=100"`
	Turbidity       *float64          `json:"turbidity" binding:"required,gte=0,lte=1000"`
	Location        *FarmDataLocation `json:"location" binding:"required"`
	CountryCode     string            `json:"country_code" binding:"omitempty,len=2"`
	RecordedAt      time.Time         `json:"recorded_at" binding:"required"`
	FishWeight      *float64          `json:"fish_weight" binding:"omitempty,gt=0"`
	FishLength      *float64          `json:"fish_length" binding:"omitempty,gt=0"`
	Verified        bool              `json:"verified"`
	StartDate       string            `json:"start_date"`
}

// FarmData converts the reading into a row owned by the user. An unparsable
// start date is dropped.
func (r *FarmDataReading) FarmData(userID, deviceID string, syncedAt time.Time) models.FarmData {
	farmData := models.FarmData{
		UserID:          userID,
		Temperature:     *r.Temperature,
		PH:              *r.PH,
		DissolvedOxygen: *r.DissolvedOxygen,
		Ammonia:         *r.Ammonia,
		Nitrate:         *r.Nitrate,
		Turbidity:       *r.Turbidity,
		CountryCode:     r.CountryCode,
		FishWeight:      r.FishWeight,
		FishLength:      r.FishLength,
		Verified:        r.Verified,
		RecordedAt:      r.RecordedAt,
		DeviceID:        deviceID,
		SyncedAt:        &syncedAt,
	}

	if r.Location != nil {
		farmData.Latitude = r.Location.Latitude
		farmData.Longitude = r.Location.Longitude
	}

	if startDate, err := time.Parse(StartDateLayout, r.StartDate); err == nil {
		farmData.StartDate = &startDate
	}

	return farmData
}

type SyncFarmDataRequest struct {
	DeviceID string            `json:"device_id" binding:"omitempty,max=255"`
	Readings []FarmDataReading `json:"readings" binding:"required,min=1,max=100,dive"`
}

type SyncedReading struct {
	DataID     string    `json:"data_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Status     string    `json:"status"`
}

type SyncFarmDataResponse struct {
	SyncedCount int             `json:"synced_count"`
	FailedCount int             `json:"failed_count"`
	SyncID      string          `json:"sync_id"`
	SyncedAt    time.Time       `json:"synced_at"`
	Readings    []SyncedReading `json:"readings"`
}

type GetFarmDataQuery struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02T15:04:05Z07:00" binding:"omitempty"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02T15:04:05Z07:00" binding:"omitempty"`
	Limit     int        `form:"limit" binding:"omitempty,gte=1,lte=1000"`
	Offset    int        `form:"offset" binding:"omitempty,gte=0"`
}

type FarmDataResponse struct {
	DataID          string     `json:"data_id"`
	Temperature     float64    `json:"temperature"`
	PH              float64    `json:"ph"`
	DissolvedOxygen float64    `json:"dissolved_oxygen"`
	Ammonia         float64    `json:"ammonia"`
	Nitrate         float64    `json:"nitrate"`
	Turbidity       float64    `json:"turbidity"`
	FishWeight      *float64   `json:"fish_weight"`
	FishLength      *float64   `json:"fish_length"`
	Verified        bool       `json:"verified"`
	StartDate       *time.Time `json:"start_date"`
	CountryCode     string     `json:"country_code,omitempty"`
	RecordedAt      time.Time  `json:"recorded_at"`
	SyncedAt        *time.Time `json:"synced_at"`
}

// NewFarmDataResponse returns the readings as listed to their owner.
func NewFarmDataResponse(farmData []models.FarmData) []FarmDataResponse {
	readings := make([]FarmDataResponse, 0, len(farmData))
	for _, f := range farmData {
		readings = append(readings, FarmDataResponse{
			DataID:          f.ID,
			Temperature:     f.Temperature,
			PH:              f.PH,
			DissolvedOxygen: f.DissolvedOxygen,
			Ammonia:         f.Ammonia,
			Nitrate:         f.Nitrate,
			Turbidity:       f.Turbidity,
			FishWeight:      f.FishWeight,
			FishLength:      f.FishLength,
			Verified:        f.Verified,
			StartDate:       f.StartDate,
			CountryCode:     f.CountryCode,
			RecordedAt:      f.RecordedAt,
			SyncedAt:        f.SyncedAt,
		})
	}

	return readings
}

type GetFarmDataResponse struct {
	Readings []FarmDataResponse `json:"readings"`
	Total    int64              `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

type DestroyUserFarmDataResponse struct {
	DeletedCount int64  `json:"deleted_count"`
	Message      string `json:"message"`
}
