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

package models

import "time"

// FarmData is a water quality reading, rows carrying verified fish
// measurements are eligible for training.
type FarmData struct {
	BaseModel
	UserID          string     `gorm:"column:user_id;type:varchar(128);index;not null;comment:owner" json:"user_id"`
	Temperature     float64    `gorm:"column:temperature;not null" json:"temperature"`
	PH              float64    `gorm:"column:ph;not null" json:"ph"`
	DissolvedOxygen float64    `gorm:"column:dissolved_oxygen;not null" json:"dissolved_oxygen"`
	Ammonia         float64    `gorm:"column:ammonia;not null" json:"ammonia"`
	Nitrate         float64    `gorm:"column:nitrate;not null" json:"nitrate"`
	Turbidity       float64    `gorm:"column:turbidity;not null" json:"turbidity"`
	Latitude        float64    `gorm:"column:latitude" json:"latitude"`
	Longitude       float64    `gorm:"column:longitude" json:"longitude"`
	CountryCode     string     `gorm:"column:country_code;type:varchar(2);index" json:"country_code"`
	FishWeight      *float64   `gorm:"column:fish_weight;comment:kilograms" json:"fish_weight"`
	FishLength      *float64   `gorm:"column:fish_length;comment:centimeters" json:"fish_length"`
	Verified        bool       `gorm:"column:verified;default:false;not null" json:"verified"`
	StartDate       *time.Time `gorm:"column:start_date;comment:cycle start" json:"start_date"`
	RecordedAt      time.Time  `gorm:"column:recorded_at;index;not null" json:"recorded_at"`
	DeviceID        string     `gorm:"column:device_id;type:varchar(255)" json:"device_id"`
	SyncedAt        *time.Time `gorm:"column:synced_at;comment:synced at" json:"synced_at"`
}
