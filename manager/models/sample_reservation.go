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

// SampleReservation claims a farm data row for an in-flight training task.
type SampleReservation struct {
	FarmDataID string    `gorm:"column:farm_data_id;type:varchar(36);primarykey;comment:claimed farm data" json:"farm_data_id"`
	TaskID     string    `gorm:"column:task_id;type:varchar(36);index;not null;comment:claiming task" json:"task_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}
