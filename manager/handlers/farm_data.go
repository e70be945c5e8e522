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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaforecast/aquaforecast/manager/middlewares"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

// @Summary Sync Farm Data
// @Description Store a batch of water quality readings of the current user
// @Tags FarmData
// @Accept json
// @Produce json
// @Param FarmData body types.SyncFarmDataRequest true "FarmData"
// @Success 201 {object} types.SyncFarmDataResponse
// @Failure 422
// @Failure 500
// @Router /farm-data/sync [post]
func (h *Handlers) SyncFarmData(ctx *gin.Context) {
	var json types.SyncFarmDataRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.SyncFarmData(ctx.Request.Context(), ctx.GetString(middlewares.UserIDContextKey), json)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewResponse(resp))
}

// @Summary Get Farm Data
// @Description Get water quality readings of the current user, newest first
// @Tags FarmData
// @Accept json
// @Produce json
// @Param start_date query string false "recorded at or after"
// @Param end_date query string false "recorded at or before"
// @Param limit query int false "return max item count, default 100, max 1000" default(100) minimum(1) maximum(1000)
// @Param offset query int false "skipped item count" default(0) minimum(0)
// @Success 200 {object} types.GetFarmDataResponse
// @Failure 422
// @Failure 500
// @Router /farm-data [get]
func (h *Handlers) GetFarmData(ctx *gin.Context) {
	var query types.GetFarmDataQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.GetFarmData(ctx.Request.Context(), ctx.GetString(middlewares.UserIDContextKey), query)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(resp))
}

// @Summary Destroy User Farm Data
// @Description Permanently delete every water quality reading of the current user
// @Tags FarmData
// @Produce json
// @Success 200 {object} types.DestroyUserFarmDataResponse
// @Failure 500
// @Router /farm-data/user [delete]
func (h *Handlers) DestroyUserFarmData(ctx *gin.Context) {
	deleted, err := h.service.DestroyUserFarmData(ctx.Request.Context(), ctx.GetString(middlewares.UserIDContextKey))
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(types.DestroyUserFarmDataResponse{
		DeletedCount: deleted,
		Message:      "All your water quality data has been permanently deleted",
	}))
}
