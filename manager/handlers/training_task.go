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
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/middlewares"
	"github.com/aquaforecast/aquaforecast/manager/models"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

// @Summary Create Retrain
// @Description Create a training task from a base model, training runs in the background
// @Tags TrainingTask
// @Accept json
// @Produce json
// @Param Retrain body types.CreateRetrainRequest true "Retrain"
// @Success 202 {object} types.CreateRetrainResponse
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /models/retrain [post]
func (h *Handlers) CreateRetrain(ctx *gin.Context) {
	var json types.CreateRetrainRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	task, err := h.job.RequestRetrain(ctx.Request.Context(), json, ctx.GetString(middlewares.UserIDContextKey))
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusAccepted, types.NewResponse(types.CreateRetrainResponse{
		TaskID:      task.ID,
		BaseModelID: json.BaseModelID,
		NewVersion:  task.NewVersion,
		Status:      models.TrainingTaskStatusPending,
		Message:     fmt.Sprintf("Model retraining initiated for version %s", task.NewVersion),
	}))
}

// @Summary Get Training Tasks
// @Description Get training tasks, newest first
// @Tags TrainingTask
// @Accept json
// @Produce json
// @Param status_filter query string false "pending, running, completed or failed"
// @Param limit query int false "return max item count, default 50, max 100" default(50) minimum(1) maximum(100)
// @Success 200 {object} types.GetTrainingTasksResponse
// @Failure 400
// @Failure 500
// @Router /models/training/tasks [get]
func (h *Handlers) GetTrainingTasks(ctx *gin.Context) {
	var query types.GetTrainingTasksQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	tasks, err := h.service.GetTrainingTasks(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(types.GetTrainingTasksResponse{
		Tasks: tasks,
		Total: len(tasks),
	}))
}

// @Summary Get Training Task
// @Description Get training task by id
// @Tags TrainingTask
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} models.TrainingTask
// @Failure 404
// @Failure 500
// @Router /models/training/tasks/{id} [get]
func (h *Handlers) GetTrainingTask(ctx *gin.Context) {
	var params types.TrainingTaskParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	task, err := h.service.GetTrainingTask(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(task))
}

// @Summary Stream Training Tasks
// @Description Stream progress of training tasks as server sent events
// @Tags TrainingTask
// @Produce text/event-stream
// @Success 200
// @Router /models/training/tasks/stream [get]
func (h *Handlers) StreamTrainingTasks(ctx *gin.Context) {
	header := ctx.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache, no-transform")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	ctx.Status(http.StatusOK)

	uid := ctx.GetString(middlewares.UserIDContextKey)
	logger.GinLogger.Infof("training stream of %s opened", uid)
	if err := h.job.StreamTrainingTasks(ctx.Request.Context(), ctx.Writer); err != nil {
		logger.GinLogger.Warnf("training stream of %s closed: %s", uid, err.Error())
		return
	}

	logger.GinLogger.Infof("training stream of %s closed", uid)
}
