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

package training

import (
	"math"
	"sort"

	"github.com/gammazero/deque"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

// Dataset is a feature matrix with targets, rows keep the id of their sample.
type Dataset struct {
	IDs []string
	X   [][]float64
	Y   [][]float64
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.X)
}

// subset returns the rows at the given indexes.
func (d *Dataset) subset(indexes []int) *Dataset {
	s := &Dataset{
		IDs: make([]string, 0, len(indexes)),
		X:   make([][]float64, 0, len(indexes)),
		Y:   make([][]float64, 0, len(indexes)),
	}

	for _, i := range indexes {
		s.IDs = append(s.IDs, d.IDs[i])
		s.X = append(s.X, d.X[i])
		s.Y = append(s.Y, d.Y[i])
	}

	return s
}

// column returns the feature values of column j.
func (d *Dataset) column(j int) []float64 {
	values := make([]float64, len(d.X))
	for i, row := range d.X {
		values[i] = row[j]
	}

	return values
}

// ExtractFeatures engineers the feature vector of every labeled row. Rows are
// processed in recorded order, rows missing a target are dropped and weights
// are converted from kilograms to grams.
func ExtractFeatures(rows []models.FarmData) *Dataset {
	sorted := make([]models.FarmData, 0, len(rows))
	for _, row := range rows {
		if row.FishWeight == nil || row.FishLength == nil {
			continue
		}

		sorted = append(sorted, row)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	windows := map[string]*deque.Deque[float64]{}
	ds := &Dataset{}
	for _, row := range sorted {
		window, ok := windows[row.UserID]
		if !ok {
			window = deque.New[float64](RollingWindow)
			windows[row.UserID] = window
		}

		window.PushBack(row.DissolvedOxygen)
		if window.Len() > RollingWindow {
			window.PopFront()
		}

		var sum float64
		for i := 0; i < window.Len(); i++ {
			sum += window.At(i)
		}
		avgDO := sum / float64(window.Len())

		recordedAt := row.RecordedAt.UTC()
		var daysInFarm float64
		if row.StartDate != nil {
			daysInFarm = math.Floor(recordedAt.Sub(row.StartDate.UTC()).Hours() / 24)
		}

		hour := float64(recordedAt.Hour())
		ds.IDs = append(ds.IDs, row.ID)
		ds.X = append(ds.X, []float64{
			row.Temperature,
			row.PH,
			row.DissolvedOxygen,
			row.Ammonia,
			row.Nitrate,
			row.Turbidity,
			daysInFarm,
			float64(recordedAt.YearDay()),
			hour,
			math.Sin(2 * math.Pi * hour / 24),
			math.Cos(2 * math.Pi * hour / 24),
			row.Temperature * row.DissolvedOxygen,
			avgDO,
			math.Abs(avgDO-OptimalDissolvedOxygen) / OptimalDissolvedOxygen,
		})
		ds.Y = append(ds.Y, []float64{*row.FishWeight * WeightUnitScale, *row.FishLength})
	}

	return ds
}
