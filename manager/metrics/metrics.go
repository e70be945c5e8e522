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

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/version"
)

const (
	// Namespace is the prometheus namespace of the service.
	Namespace = "aquaforecast"

	// ManagerSubsystem is the prometheus subsystem of the manager.
	ManagerSubsystem = "manager"
)

// Variables declared for metrics.
var (
	TrainingTaskCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "training_task_total",
		Help:      "Counter of the number of the requested training task.",
	})

	TrainingTaskFinishedCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "training_task_finished_total",
		Help:      "Counter of the number of the finished training task.",
	}, []string{"status"})

	TrainingTaskFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "training_task_failure_total",
		Help:      "Counter of the number of failed of the training task.",
	}, []string{"code"})

	TrainingTaskDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "training_task_duration_seconds",
		Help:      "Histogram of the time each training task took.",
		Buckets:   []float64{30, 60, 120, 300, 600, 1200, 1800, 3600, 7200},
	})

	RunningTrainingTaskGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "running_training_task",
		Help:      "Gauge of the number of the running training task.",
	})

	StreamConsumerGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "stream_consumer",
		Help:      "Gauge of the number of the connected progress stream.",
	})

	DeployModelVersionCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "deploy_model_version_total",
		Help:      "Counter of the number of the deployed model version.",
	})

	UploadArtifactCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "upload_artifact_total",
		Help:      "Counter of the number of the uploaded artifact.",
	})

	UploadArtifactFailureCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "upload_artifact_failure_total",
		Help:      "Counter of the number of failed of the uploaded artifact.",
	})

	VersionGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: ManagerSubsystem,
		Name:      "version",
		Help:      "Version info of the service.",
	}, []string{"major", "minor", "git_version", "git_commit", "platform", "build_time", "go_version"})
)

func New(cfg *config.MetricsConfig) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	VersionGauge.WithLabelValues(version.Major, version.Minor, version.GitVersion, version.GitCommit, version.Platform, version.BuildTime, version.GoVersion).Set(1)
	return &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}
}
