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

package job

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/manager/events/mocks"
	"github.com/aquaforecast/aquaforecast/manager/models"
	servicemocks "github.com/aquaforecast/aquaforecast/manager/service/mocks"
	trainingmocks "github.com/aquaforecast/aquaforecast/trainer/training/mocks"
)

func mockStreamingTask(id, status string, progress float64, epoch int, stage string) models.TrainingTask {
	return models.TrainingTask{
		BaseModel:          models.BaseModel{ID: id},
		NewVersion:         "1.1.0",
		Status:             status,
		ProgressPercentage: progress,
		CurrentEpoch:       &epoch,
		CurrentStage:       stage,
	}
}

func TestJob_StreamTrainingTasks(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(cancel context.CancelFunc, s *servicemocks.MockServiceMockRecorder, sub *mocks.MockSubscriptionMockRecorder)
		expect func(t *testing.T, output string, err error)
	}{
		{
			name: "consumer disconnects before any wake",
			mock: func(cancel context.CancelFunc, s *servicemocks.MockServiceMockRecorder, sub *mocks.MockSubscriptionMockRecorder) {
				sub.WaitForUpdate(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, timeout time.Duration) bool {
					cancel()
					return false
				}).Times(1)
			},
			expect: func(t *testing.T, output string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(": ping\n\n", output)
			},
		},
		{
			name: "unchanged task is not emitted again",
			mock: func(cancel context.CancelFunc, s *servicemocks.MockServiceMockRecorder, sub *mocks.MockSubscriptionMockRecorder) {
				tasks := []models.TrainingTask{mockStreamingTask("foo", models.TrainingTaskStatusRunning, 42, 3, "X")}
				gomock.InOrder(
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(true).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return(tasks, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(false).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return(tasks, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, timeout time.Duration) bool {
						cancel()
						return false
					}).Times(1),
				)
			},
			expect: func(t *testing.T, output string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(strings.HasPrefix(output, ": ping\n\n"))
				assert.Equal(1, strings.Count(output, "event:update"))
				assert.Contains(output, `"task_id":"foo"`)
				assert.Contains(output, `"state":["running",42,3,"X"]`)
				assert.True(strings.HasSuffix(output, ": heartbeat\n\n"))
			},
		},
		{
			name: "changed task is emitted again",
			mock: func(cancel context.CancelFunc, s *servicemocks.MockServiceMockRecorder, sub *mocks.MockSubscriptionMockRecorder) {
				gomock.InOrder(
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(true).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return([]models.TrainingTask{
						mockStreamingTask("foo", models.TrainingTaskStatusRunning, 42, 3, "X"),
					}, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(true).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return([]models.TrainingTask{
						mockStreamingTask("foo", models.TrainingTaskStatusCompleted, 100, 3, "Training completed"),
					}, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, timeout time.Duration) bool {
						cancel()
						return false
					}).Times(1),
				)
			},
			expect: func(t *testing.T, output string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(2, strings.Count(output, "event:update"))
				assert.Contains(output, `"state":["completed",100,3,"Training completed"]`)
				assert.NotContains(output, ": heartbeat")
			},
		},
		{
			name: "task leaving the window is forgotten",
			mock: func(cancel context.CancelFunc, s *servicemocks.MockServiceMockRecorder, sub *mocks.MockSubscriptionMockRecorder) {
				tasks := []models.TrainingTask{mockStreamingTask("foo", models.TrainingTaskStatusPending, 0, 0, "")}
				gomock.InOrder(
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(true).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return(tasks, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(true).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(true).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return(tasks, nil).Times(1),
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, timeout time.Duration) bool {
						cancel()
						return false
					}).Times(1),
				)
			},
			expect: func(t *testing.T, output string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(2, strings.Count(output, "event:update"))
			},
		},
		{
			name: "ledger query failed",
			mock: func(cancel context.CancelFunc, s *servicemocks.MockServiceMockRecorder, sub *mocks.MockSubscriptionMockRecorder) {
				gomock.InOrder(
					sub.WaitForUpdate(gomock.Any(), gomock.Any()).Return(false).Times(1),
					s.GetStreamingTrainingTasks(gomock.Any(), gomock.Any()).Return(nil, errors.New("foo")).Times(1),
				)
			},
			expect: func(t *testing.T, output string, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "foo")
				assert.Contains(output, "event:error")
				assert.Contains(output, `{"error":"foo"}`)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			s := servicemocks.NewMockService(ctl)
			b := mocks.NewMockBus(ctl)
			sub := mocks.NewMockSubscription(ctl)
			b.EXPECT().Subscribe().Return(sub).Times(1)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			tc.mock(cancel, s.EXPECT(), sub.EXPECT())

			j := newTestJob(t, s, trainingmocks.NewMockTraining(ctl), b)
			var buf bytes.Buffer
			err := j.StreamTrainingTasks(ctx, &buf)
			tc.expect(t, buf.String(), err)
		})
	}
}
