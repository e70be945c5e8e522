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
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/montanaflynn/stats"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/trees"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
)

const (
	// isolationTrees is the number of trees of the outlier detector.
	isolationTrees = 100

	// isolationSubSpace is the maximum number of rows sampled per tree.
	isolationSubSpace = 256
)

// forestMu serializes forests, they draw from the global rand source.
var forestMu sync.Mutex

// CleanReport counts the rows removed by each cleaning step.
type CleanReport struct {
	InitialRows          int `json:"initial_rows"`
	MultivariateOutliers int `json:"multivariate_outliers"`
	TargetOutliers       int `json:"target_outliers"`
	Duplicates           int `json:"duplicates"`
	FinalRows            int `json:"final_rows"`
}

// Clean removes non finite values, multivariate outliers, target outliers and
// duplicate rows. Missing feature values are imputed with the column median.
func Clean(ds *Dataset) (*Dataset, *CleanReport, error) {
	report := &CleanReport{InitialRows: ds.Len()}

	ds = replaceNonFinite(ds)

	ds, removed, err := removeMultivariateOutliers(ds)
	if err != nil {
		return nil, nil, err
	}
	report.MultivariateOutliers = removed

	if err := imputeMedian(ds); err != nil {
		return nil, nil, err
	}

	ds, report.TargetOutliers = removeTargetOutliers(ds)
	ds, report.Duplicates = removeDuplicates(ds)
	report.FinalRows = ds.Len()

	var retention float64
	if report.InitialRows > 0 {
		retention = float64(report.FinalRows) / float64(report.InitialRows) * 100
	}

	logger.TrainingLogger.Infof("preprocessing: %d -> %d rows (%.1f%% retained), removed %d multivariate outliers, %d target outliers, %d duplicates",
		report.InitialRows, report.FinalRows, retention, report.MultivariateOutliers, report.TargetOutliers, report.Duplicates)
	if report.FinalRows < LowSampleWarning {
		logger.TrainingLogger.Warnf("low data after preprocessing: %d rows, model quality may be degraded", report.FinalRows)
	}

	return ds, report, nil
}

// replaceNonFinite replaces infinite values with NaN.
func replaceNonFinite(ds *Dataset) *Dataset {
	for _, rows := range [][][]float64{ds.X, ds.Y} {
		for _, row := range rows {
			for j, v := range row {
				if math.IsInf(v, 0) {
					row[j] = math.NaN()
				}
			}
		}
	}

	return ds
}

// removeMultivariateOutliers drops the rows an isolation forest scores as the
// most anomalous on the raw water quality readings.
func removeMultivariateOutliers(ds *Dataset) (*Dataset, int, error) {
	n := ds.Len()
	if n < MinOutlierDetectionRows {
		return ds, 0, nil
	}

	// The forest can not split on NaN, score on median filled readings.
	medians := make([]float64, len(RawFeatureNames))
	for j := range RawFeatureNames {
		medians[j] = finiteMedian(ds.column(j))
	}

	instances := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(RawFeatureNames))
	for j, name := range RawFeatureNames {
		specs[j] = instances.AddAttribute(base.NewFloatAttribute(name))
	}

	// The forest reads the class column as one more feature.
	if err := instances.AddClassAttribute(specs[len(specs)-1].GetAttribute()); err != nil {
		return nil, 0, err
	}

	if err := instances.Extend(n); err != nil {
		return nil, 0, err
	}

	for i, row := range ds.X {
		for j := range RawFeatureNames {
			v := row[j]
			if math.IsNaN(v) {
				v = medians[j]
			}

			instances.Set(specs[j], i, base.PackFloatToBytes(v))
		}
	}

	subSpace := isolationSubSpace
	if n < subSpace {
		subSpace = n
	}

	forestMu.Lock()
	rand.Seed(RandomSeed)
	forest := trees.NewIsolationForest(isolationTrees, int(math.Ceil(math.Log2(float64(subSpace)))), subSpace)
	forest.Fit(instances)
	scores := forest.Predict(instances)
	forestMu.Unlock()
	if len(scores) != n {
		return nil, 0, fmt.Errorf("isolation forest returned %d scores for %d rows", len(scores), n)
	}

	outliers := int(math.Ceil(Contamination * float64(n)))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	dropped := bitset.New(uint(n))
	for _, i := range order[:outliers] {
		dropped.Set(uint(i))
	}

	return keep(ds, dropped), int(dropped.Count()), nil
}

// imputeMedian fills missing feature values with the median of the column.
func imputeMedian(ds *Dataset) error {
	for j := range FeatureNames {
		values := ds.column(j)
		missing := false
		for _, v := range values {
			if math.IsNaN(v) {
				missing = true
				break
			}
		}

		if !missing {
			continue
		}

		median := finiteMedian(values)
		if math.IsNaN(median) {
			return fmt.Errorf("feature %s has no values", FeatureNames[j])
		}

		for _, row := range ds.X {
			if math.IsNaN(row[j]) {
				row[j] = median
			}
		}
	}

	return nil
}

// removeTargetOutliers keeps rows whose targets lie inside the percentile band,
// targets are filtered one after another.
func removeTargetOutliers(ds *Dataset) (*Dataset, int) {
	var total int
	for j := range TargetNames {
		values := make([]float64, 0, ds.Len())
		for _, row := range ds.Y {
			values = append(values, row[j])
		}

		lower := percentile(values, TargetLowerPercentile)
		upper := percentile(values, TargetUpperPercentile)

		dropped := bitset.New(uint(ds.Len()))
		for i, row := range ds.Y {
			if !(row[j] >= lower && row[j] <= upper) {
				dropped.Set(uint(i))
			}
		}

		total += int(dropped.Count())
		ds = keep(ds, dropped)
	}

	return ds, total
}

// removeDuplicates drops rows identical to an earlier row in features and targets.
func removeDuplicates(ds *Dataset) (*Dataset, int) {
	seen := make(map[string]struct{}, ds.Len())
	dropped := bitset.New(uint(ds.Len()))
	for i := range ds.X {
		key := rowKey(ds.X[i], ds.Y[i])
		if _, ok := seen[key]; ok {
			dropped.Set(uint(i))
			continue
		}

		seen[key] = struct{}{}
	}

	return keep(ds, dropped), int(dropped.Count())
}

// keep returns the rows not marked in dropped.
func keep(ds *Dataset, dropped *bitset.BitSet) *Dataset {
	if dropped.Count() == 0 {
		return ds
	}

	indexes := make([]int, 0, ds.Len()-int(dropped.Count()))
	for i := 0; i < ds.Len(); i++ {
		if !dropped.Test(uint(i)) {
			indexes = append(indexes, i)
		}
	}

	return ds.subset(indexes)
}

func rowKey(x, y []float64) string {
	var sb strings.Builder
	for _, values := range [][]float64{x, y} {
		for _, v := range values {
			fmt.Fprintf(&sb, "%x,", math.Float64bits(v))
		}
	}

	return sb.String()
}

// finiteMedian returns the median of the non NaN values.
func finiteMedian(values []float64) float64 {
	finite := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}

	median, err := stats.Median(finite)
	if err != nil {
		return math.NaN()
	}

	return median
}

// percentile returns the percentile of values, small inputs fall back to the extremes.
func percentile(values []float64, percent float64) float64 {
	p, err := stats.Percentile(values, percent)
	if err == nil {
		return p
	}

	if percent < 50 {
		min, _ := stats.Min(values)
		return min
	}

	max, _ := stats.Max(values)
	return max
}
