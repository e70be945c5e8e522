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
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

// Scores are the regression metrics of a prediction.
type Scores struct {
	R2   float64 `json:"r2"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// TrainingSummary describes how the training loop ended.
type TrainingSummary struct {
	EarlyStopped    bool    `json:"early_stopped"`
	RequestedEpochs int     `json:"requested_epochs"`
	ActualEpochs    int     `json:"actual_epochs"`
	BestValLoss     float64 `json:"best_val_loss"`
	FinalTrainLoss  float64 `json:"final_train_loss"`
	FinalValLoss    float64 `json:"final_val_loss"`
}

// Metrics is the document stored with a trained model.
type Metrics struct {
	Overall   Scores            `json:"overall"`
	PerTarget map[string]Scores `json:"per_target"`
	Training  TrainingSummary   `json:"training"`
}

// JSONMap converts the metrics into the stored document.
func (m *Metrics) JSONMap() (models.JSONMap, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	var doc models.JSONMap
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Evaluate scores predictions against targets. Overall r2 is the average of
// the per target r2, rmse and mae run over all elements.
func Evaluate(pred, y *mat.Dense, history *History, requestedEpochs int) (*Metrics, error) {
	rows, cols := pred.Dims()
	yr, yc := y.Dims()
	if rows != yr || cols != yc {
		return nil, errors.New("prediction and target shapes differ")
	}

	if rows == 0 || cols != len(TargetNames) {
		return nil, errors.New("invalid prediction shape")
	}

	m := &Metrics{
		PerTarget: make(map[string]Scores, cols),
	}

	var sse, sae, r2 float64
	for j, name := range TargetNames {
		truth := mat.Col(nil, j, y)
		predicted := mat.Col(nil, j, pred)

		var targetSSE, targetSAE float64
		for i := range truth {
			diff := predicted[i] - truth[i]
			targetSSE += diff * diff
			targetSAE += math.Abs(diff)
		}

		score := Scores{
			R2:   r2Score(truth, targetSSE),
			RMSE: math.Sqrt(targetSSE / float64(rows)),
			MAE:  targetSAE / float64(rows),
		}
		m.PerTarget[name] = score

		sse += targetSSE
		sae += targetSAE
		r2 += score.R2
	}

	count := float64(rows * cols)
	m.Overall = Scores{
		R2:   r2 / float64(cols),
		RMSE: math.Sqrt(sse / count),
		MAE:  sae / count,
	}

	if history != nil && history.Epochs() > 0 {
		last := history.Epochs() - 1
		m.Training = TrainingSummary{
			EarlyStopped:    history.Epochs() < requestedEpochs,
			RequestedEpochs: requestedEpochs,
			ActualEpochs:    history.Epochs(),
			BestValLoss:     history.BestValLoss(),
			FinalTrainLoss:  history.Loss[last],
			FinalValLoss:    history.ValLoss[last],
		}
	}

	return m, nil
}

// r2Score returns the coefficient of determination, a constant target scores
// 1 when predicted exactly and 0 otherwise.
func r2Score(truth []float64, sse float64) float64 {
	variance, err := stats.PopulationVariance(truth)
	if err != nil {
		return 0
	}

	sst := variance * float64(len(truth))
	if sst == 0 {
		if sse == 0 {
			return 1
		}

		return 0
	}

	return 1 - sse/sst
}
