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
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

func TestValidateVersion(t *testing.T) {
	validate := validator.New()
	if err := validate.RegisterValidation("version", ValidateVersion); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		version string
		expect  func(t *testing.T, err error)
	}{
		{
			name:    "semantic version",
			version: "1.2.0",
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:    "pre release version",
			version: "2.0.0-rc.1",
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:    "missing patch",
			version: "1.2",
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
		{
			name:    "leading letter",
			version: "v1.2.0",
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.Error(err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, validate.Var(tc.version, "version"))
		})
	}
}

func TestCreateRetrainRequest_SetDefaults(t *testing.T) {
	assert := assert.New(t)
	req := &CreateRetrainRequest{BaseModelID: "foo", NewVersion: "1.0.0", Epochs: 10}
	req.SetDefaults()
	assert.Equal(10, req.Epochs)
	assert.Equal(32, req.BatchSize)
	assert.Equal(0.000006, req.LearningRate)
	assert.Equal(models.JSONMap{
		"epochs":        10,
		"batch_size":    32,
		"learning_rate": 0.000006,
		"notes":         "",
	}, req.TrainingParams())
}

func TestTrainingTaskState(t *testing.T) {
	epoch := 3
	tests := []struct {
		name   string
		task   *models.TrainingTask
		expect func(t *testing.T, state TrainingTaskState)
	}{
		{
			name: "task in training loop",
			task: &models.TrainingTask{
				Status:             models.TrainingTaskStatusRunning,
				ProgressPercentage: 42,
				CurrentEpoch:       &epoch,
				CurrentStage:       "foo",
			},
			expect: func(t *testing.T, state TrainingTaskState) {
				assert := assert.New(t)
				assert.Equal(TrainingTaskState{Status: "running", Progress: 42, Epoch: 3, Stage: "foo"}, state)
				b, err := json.Marshal(state)
				assert.NoError(err)
				assert.JSONEq(`["running", 42, 3, "foo"]`, string(b))
			},
		},
		{
			name: "pending task",
			task: &models.TrainingTask{Status: models.TrainingTaskStatusPending},
			expect: func(t *testing.T, state TrainingTaskState) {
				assert := assert.New(t)
				assert.Equal(0, state.Epoch)
				assert.Equal(state, NewTrainingTaskState(&models.TrainingTask{Status: models.TrainingTaskStatusPending}))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, NewTrainingTaskState(tc.task))
		})
	}
}

func TestDestroyModelVersionQuery_Purge(t *testing.T) {
	assert := assert.New(t)
	purge := false
	assert.True(DestroyModelVersionQuery{}.Purge())
	assert.False(DestroyModelVersionQuery{PurgeStorage: &purge}.Purge())
}
