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
	"strings"

	"github.com/looplab/fsm"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/models"
)

const (
	// Model version finished training.
	ModelVersionEventComplete = "Complete"

	// Model version failed in training.
	ModelVersionEventFail = "Fail"

	// Model version is served to clients.
	ModelVersionEventDeploy = "Deploy"

	// Model version is no longer served.
	ModelVersionEventUndeploy = "Undeploy"

	// Model version is retired.
	ModelVersionEventArchive = "Archive"
)

const (
	// Training task is picked up by a worker.
	TrainingTaskEventRun = "Run"

	// Training task produced a model.
	TrainingTaskEventSucceed = "Succeed"

	// Training task failed.
	TrainingTaskEventFail = "Fail"
)

// newModelVersionFSM returns the status machine of the model version.
func newModelVersionFSM(modelVersion *models.ModelVersion) *fsm.FSM {
	log := logger.WithModel(modelVersion.ID, modelVersion.Version)
	callback := func(ctx context.Context, e *fsm.Event) {
		log.Infof("model version status is %s", e.FSM.Current())
	}

	return fsm.NewFSM(
		modelVersion.Status,
		fsm.Events{
			{Name: ModelVersionEventComplete, Src: []string{models.ModelVersionStatusTraining}, Dst: models.ModelVersionStatusCompleted},
			{Name: ModelVersionEventFail, Src: []string{models.ModelVersionStatusTraining}, Dst: models.ModelVersionStatusFailed},
			{Name: ModelVersionEventDeploy, Src: []string{models.ModelVersionStatusCompleted}, Dst: models.ModelVersionStatusDeployed},
			{Name: ModelVersionEventUndeploy, Src: []string{models.ModelVersionStatusDeployed}, Dst: models.ModelVersionStatusCompleted},
			{Name: ModelVersionEventArchive, Src: []string{models.ModelVersionStatusCompleted, models.ModelVersionStatusFailed}, Dst: models.ModelVersionStatusArchived},
		},
		fsm.Callbacks{
			ModelVersionEventComplete: callback,
			ModelVersionEventFail:     callback,
			ModelVersionEventDeploy:   callback,
			ModelVersionEventUndeploy: callback,
			ModelVersionEventArchive:  callback,
		},
	)
}

// transitModelVersion returns the status after the event, an event the
// current status does not accept is an InvalidState error.
func transitModelVersion(ctx context.Context, modelVersion *models.ModelVersion, event string) (string, error) {
	machine := newModelVersionFSM(modelVersion)
	if err := machine.Event(ctx, event); err != nil {
		return "", aferrors.Newf(aferrors.InvalidState, "cannot %s model version %s with status %s", strings.ToLower(event), modelVersion.Version, modelVersion.Status)
	}

	return machine.Current(), nil
}

// newTrainingTaskFSM returns the status machine of the training task.
func newTrainingTaskFSM(task *models.TrainingTask) *fsm.FSM {
	log := logger.WithTask(task.ID)
	callback := func(ctx context.Context, e *fsm.Event) {
		log.Infof("training task status is %s", e.FSM.Current())
	}

	return fsm.NewFSM(
		task.Status,
		fsm.Events{
			{Name: TrainingTaskEventRun, Src: []string{models.TrainingTaskStatusPending}, Dst: models.TrainingTaskStatusRunning},
			{Name: TrainingTaskEventSucceed, Src: []string{models.TrainingTaskStatusRunning}, Dst: models.TrainingTaskStatusCompleted},
			{Name: TrainingTaskEventFail, Src: []string{models.TrainingTaskStatusPending, models.TrainingTaskStatusRunning}, Dst: models.TrainingTaskStatusFailed},
		},
		fsm.Callbacks{
			TrainingTaskEventRun:     callback,
			TrainingTaskEventSucceed: callback,
			TrainingTaskEventFail:    callback,
		},
	)
}

func transitTrainingTask(ctx context.Context, task *models.TrainingTask, event string) (string, error) {
	machine := newTrainingTaskFSM(task)
	if err := machine.Event(ctx, event); err != nil {
		return "", aferrors.Newf(aferrors.InvalidState, "cannot %s training task %s with status %s", strings.ToLower(event), task.ID, task.Status)
	}

	return machine.Current(), nil
}
