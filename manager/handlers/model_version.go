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

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	"github.com/aquaforecast/aquaforecast/manager/metrics"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

// @Summary Get Latest Model Version
// @Description Get the deployed model version, or the newest active one
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Success 200 {object} models.ModelVersion
// @Failure 404
// @Failure 500
// @Router /models/latest [get]
func (h *Handlers) GetLatestModelVersion(ctx *gin.Context) {
	modelVersion, err := h.service.GetLatestModelVersion(ctx.Request.Context())
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(modelVersion))
}

// @Summary Get Deployed Model Version
// @Description Get the deployed model version
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Success 200 {object} models.ModelVersion
// @Failure 404
// @Failure 500
// @Router /models/deployed [get]
func (h *Handlers) GetDeployedModelVersion(ctx *gin.Context) {
	modelVersion, err := h.service.GetDeployedModelVersion(ctx.Request.Context())
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(modelVersion))
}

// @Summary Get Model Versions
// @Description Get model versions, newest first
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param include_archived query bool false "include archived model versions"
// @Param page query int true "current page" default(0)
// @Param per_page query int true "return max item count, default 20, max 100" default(20) minimum(1) maximum(100)
// @Success 200 {object} types.GetModelVersionsResponse
// @Failure 400
// @Failure 500
// @Router /models/list [get]
func (h *Handlers) GetModelVersions(ctx *gin.Context) {
	var query types.GetModelVersionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	h.setPaginationDefault(&query.Page, &query.PerPage)
	modelVersions, count, err := h.service.GetModelVersions(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err)
		return
	}

	var deployedModelID *string
	deployed, err := h.service.GetDeployedModelVersion(ctx.Request.Context())
	if err != nil && !aferrors.CheckError(err, aferrors.NotFound) {
		ctx.Error(err)
		return
	}

	if deployed != nil {
		deployedModelID = &deployed.ID
	}

	h.setPaginationLinkHeader(ctx, query.Page, query.PerPage, int(count))
	ctx.JSON(http.StatusOK, &types.Response{
		Success: true,
		Data: types.GetModelVersionsResponse{
			Models:          modelVersions,
			TotalCount:      count,
			DeployedModelID: deployedModelID,
		},
		Meta: types.ListMeta{Total: count},
	})
}

// @Summary Check For Update
// @Description Check whether a newer model version is available for the client
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param current_version query string true "model version of the client"
// @Param app_version query string false "app version of the client"
// @Success 200 {object} types.CheckForUpdateResponse
// @Failure 400
// @Failure 500
// @Router /models/check-update [get]
func (h *Handlers) CheckForUpdate(ctx *gin.Context) {
	var query types.CheckForUpdateQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.CheckForUpdate(ctx.Request.Context(), query)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(resp))
}

// @Summary Get Model Version Metrics
// @Description Get evaluation metrics and training history of a model version
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ModelVersionMetricsResponse
// @Failure 404
// @Failure 500
// @Router /models/{id}/metrics [get]
func (h *Handlers) GetModelVersionMetrics(ctx *gin.Context) {
	var params types.ModelVersionParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.GetModelVersionMetrics(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(resp))
}

// @Summary Deploy Model Version
// @Description Deploy a completed model version, the deployed one is undeployed
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param ModelVersion body types.DeployModelVersionRequest true "ModelVersion"
// @Success 200 {object} models.ModelVersion
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /models/deploy [post]
func (h *Handlers) DeployModelVersion(ctx *gin.Context) {
	var json types.DeployModelVersionRequest
	if err := ctx.ShouldBindJSON(&json); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	modelVersion, err := h.service.DeployModelVersion(ctx.Request.Context(), json)
	if err != nil {
		ctx.Error(err)
		return
	}

	metrics.DeployModelVersionCount.Inc()
	ctx.JSON(http.StatusOK, types.NewResponse(modelVersion))
}

// @Summary Undeploy Model Version
// @Description Undeploy a model version, it stays active
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} models.ModelVersion
// @Failure 404
// @Failure 500
// @Router /models/{id}/undeploy [post]
func (h *Handlers) UndeployModelVersion(ctx *gin.Context) {
	var params types.ModelVersionParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	modelVersion, err := h.service.UndeployModelVersion(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(modelVersion))
}

// @Summary Archive Model Version
// @Description Archive a model version that is not deployed
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ArchiveModelVersionResponse
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /models/{id}/archive [delete]
func (h *Handlers) ArchiveModelVersion(ctx *gin.Context) {
	var params types.ModelVersionParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	modelVersion, err := h.service.ArchiveModelVersion(ctx.Request.Context(), params.ID)
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(types.ArchiveModelVersionResponse{
		ModelID: modelVersion.ID,
		Version: modelVersion.Version,
		Status:  modelVersion.Status,
		Message: fmt.Sprintf("Model %s archived successfully", modelVersion.Version),
	}))
}

// @Summary Destroy Model Version
// @Description Destroy a model version with its training records and stored artifacts
// @Tags ModelVersion
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param purge_storage query bool false "delete stored artifacts" default(true)
// @Success 200 {object} types.DestroyModelVersionResponse
// @Failure 404
// @Failure 409
// @Failure 500
// @Router /models/{id} [delete]
func (h *Handlers) DestroyModelVersion(ctx *gin.Context) {
	var params types.ModelVersionParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	var query types.DestroyModelVersionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	resp, err := h.service.DestroyModelVersion(ctx.Request.Context(), params.ID, query.Purge())
	if err != nil {
		ctx.Error(err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewResponse(resp))
}
