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

package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	jobmocks "github.com/aquaforecast/aquaforecast/manager/job/mocks"
	"github.com/aquaforecast/aquaforecast/manager/middlewares"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/service/mocks"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

var (
	mockBaseModelID = "foo"

	mockTrainingTaskModel = &models.TrainingTask{
		BaseModel:   models.BaseModel{ID: "baz"},
		BaseModelID: &mockBaseModelID,
		NewVersion:  "1.1.0",
		InitiatedBy: "admin",
		Status:      models.TrainingTaskStatusPending,
	}
)

func mockTrainingTaskRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Error())
	r.Use(func(ctx *gin.Context) {
		ctx.Set(middlewares.UserIDContextKey, "admin")
	})
	apiv1 := r.Group("/api/v1")
	m := apiv1.Group("/models")
	m.POST("retrain", h.CreateRetrain)
	m.GET("training/tasks", h.GetTrainingTasks)
	m.GET("training/tasks/stream", h.StreamTrainingTasks)
	m.GET("training/tasks/:id", h.GetTrainingTask)
	return r
}

func TestHandlers_CreateRetrain(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(mj *jobmocks.MockJobMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "base model id is required",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/models/retrain", strings.NewReader(`{"new_version":"1.1.0"}`)),
			mock: func(mj *jobmocks.MockJobMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "invalid new version",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/models/retrain", strings.NewReader(`{"base_model_id":"foo","new_version":"v1"}`)),
			mock: func(mj *jobmocks.MockJobMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
				assert.Contains(w.Body.String(), "version")
			},
		},
		{
			name: "epochs out of range",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/models/retrain", strings.NewReader(`{"base_model_id":"foo","new_version":"1.1.0","epochs":1001}`)),
			mock: func(mj *jobmocks.MockJobMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "insufficient unused farm data",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/models/retrain", strings.NewReader(`{"base_model_id":"foo","new_version":"1.1.0"}`)),
			mock: func(mj *jobmocks.MockJobMockRecorder) {
				mj.RequestRetrain(gomock.Any(), gomock.Eq(types.CreateRetrainRequest{
					BaseModelID: "foo",
					NewVersion:  "1.1.0",
				}), "admin").Return(nil, aferrors.New(aferrors.Validation, "insufficient unused farm data: 10 samples (minimum 100 required)")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
				assert.JSONEq(`{"message":"insufficient unused farm data: 10 samples (minimum 100 required)"}`, w.Body.String())
			},
		},
		{
			name: "version already exists",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/models/retrain", strings.NewReader(`{"base_model_id":"foo","new_version":"1.0.0"}`)),
			mock: func(mj *jobmocks.MockJobMockRecorder) {
				mj.RequestRetrain(gomock.Any(), gomock.Any(), "admin").Return(nil, aferrors.New(aferrors.Validation, "Version 1.0.0 already exists")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
			},
		},
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodPost, "/api/v1/models/retrain", strings.NewReader(`{"base_model_id":"foo","new_version":"1.1.0","epochs":10,"notes":"bar"}`)),
			mock: func(mj *jobmocks.MockJobMockRecorder) {
				mj.RequestRetrain(gomock.Any(), gomock.Eq(types.CreateRetrainRequest{
					BaseModelID: "foo",
					NewVersion:  "1.1.0",
					Epochs:      10,
					Notes:       "bar",
				}), "admin").Return(mockTrainingTaskModel, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusAccepted, w.Code)
				assert.JSONEq(`{"success":true,"data":{"task_id":"baz","base_model_id":"foo","new_version":"1.1.0","status":"pending","message":"Model retraining initiated for version 1.1.0"}}`, w.Body.String())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			j := jobmocks.NewMockJob(ctl)
			w := httptest.NewRecorder()
			h := New(mocks.NewMockService(ctl), j)
			mockRouter := mockTrainingTaskRouter(h)

			tc.mock(j.EXPECT())
			mockRouter.ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_GetTrainingTasks(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "limit out of range",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/models/training/tasks?limit=101", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusUnprocessableEntity, w.Code)
			},
		},
		{
			name: "invalid status filter",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/models/training/tasks?status_filter=foo", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.GetTrainingTasks(gomock.Any(), gomock.Eq(types.GetTrainingTasksQuery{StatusFilter: "foo"})).Return(nil, aferrors.New(aferrors.Validation, "invalid status filter foo")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusBadRequest, w.Code)
			},
		},
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/models/training/tasks?status_filter=pending&limit=10", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.GetTrainingTasks(gomock.Any(), gomock.Eq(types.GetTrainingTasksQuery{
					StatusFilter: models.TrainingTaskStatusPending,
					Limit:        10,
				})).Return([]models.TrainingTask{*mockTrainingTaskModel}, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				data := decodeResponse(t, w)["data"].(map[string]any)
				assert.Equal(float64(1), data["total"])
				assert.Equal("baz", data["tasks"].([]any)[0].(map[string]any)["id"])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()
			h := New(svc, jobmocks.NewMockJob(ctl))
			mockRouter := mockTrainingTaskRouter(h)

			tc.mock(svc.EXPECT())
			mockRouter.ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_GetTrainingTask(t *testing.T) {
	tests := []struct {
		name   string
		req    *http.Request
		mock   func(ms *mocks.MockServiceMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "training task not found",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/models/training/tasks/foo", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.GetTrainingTask(gomock.Any(), "foo").Return(nil, aferrors.New(aferrors.NotFound, "Task foo not found")).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusNotFound, w.Code)
				assert.JSONEq(`{"message":"Task foo not found"}`, w.Body.String())
			},
		},
		{
			name: "success",
			req:  httptest.NewRequest(http.MethodGet, "/api/v1/models/training/tasks/baz", nil),
			mock: func(ms *mocks.MockServiceMockRecorder) {
				ms.GetTrainingTask(gomock.Any(), "baz").Return(mockTrainingTaskModel, nil).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				data := decodeResponse(t, w)["data"].(map[string]any)
				assert.Equal("1.1.0", data["new_version"])
				assert.Equal("pending", data["status"])
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			svc := mocks.NewMockService(ctl)
			w := httptest.NewRecorder()
			h := New(svc, jobmocks.NewMockJob(ctl))
			mockRouter := mockTrainingTaskRouter(h)

			tc.mock(svc.EXPECT())
			mockRouter.ServeHTTP(w, tc.req)
			tc.expect(t, w)
		})
	}
}

func TestHandlers_StreamTrainingTasks(t *testing.T) {
	tests := []struct {
		name   string
		mock   func(mj *jobmocks.MockJobMockRecorder)
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "client disconnects",
			mock: func(mj *jobmocks.MockJobMockRecorder) {
				mj.StreamTrainingTasks(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, w io.Writer) error {
					_, err := io.WriteString(w, ": ping\n\n")
					return err
				}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Equal("text/event-stream", w.Header().Get("Content-Type"))
				assert.Equal("no-cache, no-transform", w.Header().Get("Cache-Control"))
				assert.Equal("no", w.Header().Get("X-Accel-Buffering"))
				assert.Equal(": ping\n\n", w.Body.String())
			},
		},
		{
			name: "stream query fails",
			mock: func(mj *jobmocks.MockJobMockRecorder) {
				mj.StreamTrainingTasks(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, w io.Writer) error {
					fmt.Fprint(w, "event:error\ndata:{\"error\":\"foo\"}\n\n")
					return aferrors.New(aferrors.Unknown, "foo")
				}).Times(1)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Contains(w.Body.String(), "event:error")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := gomock.NewController(t)
			defer ctl.Finish()
			j := jobmocks.NewMockJob(ctl)
			w := httptest.NewRecorder()
			h := New(mocks.NewMockService(ctl), j)
			mockRouter := mockTrainingTaskRouter(h)

			tc.mock(j.EXPECT())
			mockRouter.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/models/training/tasks/stream", nil))
			tc.expect(t, w)
		})
	}
}
