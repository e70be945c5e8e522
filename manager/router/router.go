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

package router

import (
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	ginprometheus "github.com/mcuadros/go-gin-prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/handlers"
	"github.com/aquaforecast/aquaforecast/manager/job"
	"github.com/aquaforecast/aquaforecast/manager/middlewares"
	"github.com/aquaforecast/aquaforecast/manager/service"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

const (
	PrometheusSubsystemName = "aquaforecast_manager"
)

func Init(cfg *config.Config, service service.Service, job job.Job, enforcer *casbin.Enforcer) (*gin.Engine, error) {
	// Set mode.
	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	// Validator.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("version", types.ValidateVersion); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	h := handlers.New(service, job)

	// Prometheus metrics.
	p := ginprometheus.NewPrometheus(PrometheusSubsystemName)
	// Prometheus metrics need to reduce label,
	// refer to https://prometheus.io/docs/practices/instrumentation/#do-not-overuse-labels.
	p.ReqCntURLLabelMappingFn = func(c *gin.Context) string {
		if path := c.FullPath(); path != "" {
			return path
		}

		return c.Request.URL.Path
	}
	p.Use(r)

	// Opentelemetry.
	if cfg.Telemetry.Jaeger != "" {
		r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// CORS.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")

	// Middleware.
	r.Use(gin.Recovery())
	r.Use(ginzap.Ginzap(logger.GinLogger.Desugar(), time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger.GinLogger.Desugar(), true))
	r.Use(middlewares.Error())
	r.Use(middlewares.Server())
	r.Use(cors.New(corsConfig))

	jwt, err := middlewares.Jwt(cfg.Auth.JWT)
	if err != nil {
		return nil, err
	}

	auth := []gin.HandlerFunc{jwt.MiddlewareFunc()}
	if cfg.Auth.RBAC.Enable {
		auth = append(auth, middlewares.RBAC(enforcer))
	}

	// Router.
	apiv1 := r.Group("/api/v1")

	// Model Version.
	m := apiv1.Group("/models")
	m.GET("latest", h.GetLatestModelVersion)
	m.GET("deployed", h.GetDeployedModelVersion)
	m.GET("list", h.GetModelVersions)
	m.GET("check-update", h.CheckForUpdate)
	m.GET(":id/metrics", h.GetModelVersionMetrics)

	ma := m.Group("", auth...)
	ma.POST("deploy", h.DeployModelVersion)
	ma.POST(":id/undeploy", h.UndeployModelVersion)
	ma.DELETE(":id/archive", h.ArchiveModelVersion)
	ma.DELETE(":id", h.DestroyModelVersion)

	// Training Task.
	ma.POST("retrain", h.CreateRetrain)
	ma.GET("training/tasks", h.GetTrainingTasks)
	ma.GET("training/tasks/stream", h.StreamTrainingTasks)
	ma.GET("training/tasks/:id", h.GetTrainingTask)

	// Farm Data.
	f := apiv1.Group("/farm-data", jwt.MiddlewareFunc())
	f.POST("sync", h.SyncFarmData)
	f.GET("", h.GetFarmData)
	f.DELETE("user", h.DestroyUserFarmData)

	// Health Check.
	r.GET("/healthy", h.GetHealth)

	return r, nil
}
