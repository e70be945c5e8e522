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

package config

import "time"

const (
	// DatabaseTypePostgres is the postgres database type.
	DatabaseTypePostgres = "postgres"

	// DatabaseTypeMysql is the mysql database type.
	DatabaseTypeMysql = "mysql"

	// DatabaseTypeSqlite is the sqlite database type.
	DatabaseTypeSqlite = "sqlite"
)

const (
	// DefaultServerAddr is default address of the rest server.
	DefaultServerAddr = ":8080"

	// DefaultGracefulStopTimeout is default timeout of graceful stop.
	DefaultGracefulStopTimeout = 30 * time.Second

	// DefaultLogRotateMaxSize is default size of log file in megabytes.
	DefaultLogRotateMaxSize = 300

	// DefaultLogRotateMaxAge is default days to retain old log files.
	DefaultLogRotateMaxAge = 7

	// DefaultLogRotateMaxBackups is default number of old log files.
	DefaultLogRotateMaxBackups = 50
)

const (
	// DefaultDBName is default database name.
	DefaultDBName = "aquaforecast"

	// DefaultPostgresPort is default port of postgres.
	DefaultPostgresPort = 5432

	// DefaultMysqlPort is default port of mysql.
	DefaultMysqlPort = 3306

	// DefaultSqlitePath is default file of sqlite.
	DefaultSqlitePath = "aquaforecast.db"
)

const (
	// DefaultCacheTTL is default ttl of the latest model cache.
	DefaultCacheTTL = 30 * time.Second

	// DefaultCacheLocalSize is default size of the in-process cache layer.
	DefaultCacheLocalSize = 100
)

const (
	// DefaultObjectStorageBucket is default bucket of model artifacts.
	DefaultObjectStorageBucket = "aquaforecast-models"
)

const (
	// DefaultJWTRealm is default realm of jwt.
	DefaultJWTRealm = "Aquaforecast"

	// DefaultJWTIdentityClaim is default claim of the user id.
	DefaultJWTIdentityClaim = "uid"
)

const (
	// DefaultEventsBufferSize is default size of the notification hand-off channel.
	DefaultEventsBufferSize = 256

	// DefaultEventsChannel is default redis channel of training events.
	DefaultEventsChannel = "aquaforecast:training:events"
)

const (
	// DefaultTrainingCPUQuota is default cpu fraction of the training pool.
	DefaultTrainingCPUQuota = 0.5

	// DefaultTrainingNice is default nice increment of training threads.
	DefaultTrainingNice = 10

	// DefaultTrainingMinSamples is default floor of the unused sample pool.
	DefaultTrainingMinSamples = 100

	// DefaultTrainingStreamTimeout is default wait of progress streams.
	DefaultTrainingStreamTimeout = 30 * time.Second

	// DefaultTrainingRecentWindow is default visibility of finished tasks.
	DefaultTrainingRecentWindow = 5 * time.Minute

	// DefaultBaselineWeightsPath is default weights file of the baseline model.
	DefaultBaselineWeightsPath = "models/default/baseline_model.json"

	// DefaultBaselineScalerPath is default scaler file of the baseline model.
	DefaultBaselineScalerPath = "models/default/default_scaler.json"
)

const (
	// DefaultMetricsAddr is default address for metrics server.
	DefaultMetricsAddr = ":8000"
)

const (
	// DefaultTelemetryServiceName is default service name of traces.
	DefaultTelemetryServiceName = "aquaforecast-manager"
)
