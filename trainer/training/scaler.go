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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"
)

// RobustScaler centers features on the median and scales them by the
// interquartile range.
type RobustScaler struct {
	FeatureNames []string  `json:"feature_names"`
	Center       []float64 `json:"center"`
	Scale        []float64 `json:"scale"`
}

// FitRobustScaler fits the scaler on the rows of x.
func FitRobustScaler(x [][]float64, featureNames []string) (*RobustScaler, error) {
	if len(x) == 0 {
		return nil, errors.New("can not fit scaler on empty data")
	}

	dim := len(x[0])
	s := &RobustScaler{
		FeatureNames: featureNames,
		Center:       make([]float64, dim),
		Scale:        make([]float64, dim),
	}

	for j := 0; j < dim; j++ {
		values := make(stats.Float64Data, len(x))
		for i, row := range x {
			values[i] = row[j]
		}

		median, err := stats.Median(values)
		if err != nil {
			return nil, err
		}

		// A single row has no quartiles.
		iqr := 0.0
		if len(values) > 1 {
			if iqr, err = stats.InterQuartileRange(values); err != nil {
				return nil, err
			}
		}

		if iqr == 0 {
			iqr = 1
		}

		s.Center[j] = median
		s.Scale[j] = iqr
	}

	return s, nil
}

// Transform returns the scaled copy of x.
func (s *RobustScaler) Transform(x [][]float64) ([][]float64, error) {
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Center) {
			return nil, fmt.Errorf("row %d has %d features, scaler expects %d", i, len(row), len(s.Center))
		}

		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Center[j]) / s.Scale[j]
		}
		out[i] = scaled
	}

	return out, nil
}

// Marshal returns the json document of the scaler.
func (s *RobustScaler) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalRobustScaler decodes a scaler document.
func UnmarshalRobustScaler(data []byte) (*RobustScaler, error) {
	s := &RobustScaler{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	if len(s.Center) != len(s.Scale) {
		return nil, errors.New("scaler center and scale differ in length")
	}

	return s, nil
}
