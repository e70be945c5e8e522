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

import (
	"errors"
	"time"

	"github.com/aquaforecast/aquaforecast/pkg/objectstorage"
)

type Config struct {
	// Verbose mode enables debug logs, pprof and statsview.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Console prints logs to stdout instead of log files.
	Console bool `yaml:"console" mapstructure:"console"`

	// PProfPort is the port of the debug monitor, zero picks a free port.
	PProfPort int `yaml:"pprofPort" mapstructure:"pprofPort"`

	// Server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`

	// Database configuration.
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Cache configuration.
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// ObjectStorage configuration.
	ObjectStorage ObjectStorageConfig `yaml:"objectStorage" mapstructure:"objectStorage"`

	// Auth configuration.
	Auth AuthConfig `yaml:"auth" mapstructure:"auth"`

	// Events configuration.
	Events EventsConfig `yaml:"events" mapstructure:"events"`

	// Training configuration.
	Training TrainingConfig `yaml:"training" mapstructure:"training"`

	// Metrics configuration.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`

	// Telemetry configuration.
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

type ServerConfig struct {
	// Addr is the listen address of the rest server.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Server log directory.
	LogDir string `yaml:"logDir" mapstructure:"logDir"`

	// Maximum size in megabytes of log files before rotation (default: 300)
	LogMaxSize int `yaml:"logMaxSize" mapstructure:"logMaxSize"`

	// Maximum number of days to retain old log files (default: 7)
	LogMaxAge int `yaml:"logMaxAge" mapstructure:"logMaxAge"`

	// Maximum number of old log files to keep (default: 50)
	LogMaxBackups int `yaml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Server storage data directory, training artifacts are staged here.
	DataDir string `yaml:"dataDir" mapstructure:"dataDir"`

	// GracefulStopTimeout bounds shutdown of the rest server and running trainings.
	GracefulStopTimeout time.Duration `yaml:"gracefulStopTimeout" mapstructure:"gracefulStopTimeout"`
}

type DatabaseConfig struct {
	// Type is the relational store, one of postgres, mysql, sqlite.
	Type string `yaml:"type" mapstructure:"type"`

	// Postgres configuration.
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`

	// Mysql configuration.
	Mysql MysqlConfig `yaml:"mysql" mapstructure:"mysql"`

	// Sqlite configuration.
	Sqlite SqliteConfig `yaml:"sqlite" mapstructure:"sqlite"`

	// Redis configuration.
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`

	// Migrate runs auto migration and baseline seeding on start.
	Migrate bool `yaml:"migrate" mapstructure:"migrate"`
}

type PostgresConfig struct {
	User                 string `yaml:"user" mapstructure:"user"`
	Password             string `yaml:"password" mapstructure:"password"`
	Host                 string `yaml:"host" mapstructure:"host"`
	Port                 int    `yaml:"port" mapstructure:"port"`
	DBName               string `yaml:"dbname" mapstructure:"dbname"`
	SSLMode              string `yaml:"sslMode" mapstructure:"sslMode"`
	PreferSimpleProtocol bool   `yaml:"preferSimpleProtocol" mapstructure:"preferSimpleProtocol"`
	Timezone             string `yaml:"timezone" mapstructure:"timezone"`
}

type MysqlConfig struct {
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
}

type SqliteConfig struct {
	// Path is the database file, ":memory:" keeps it in memory.
	Path string `yaml:"path" mapstructure:"path"`
}

type RedisConfig struct {
	// Enable redis, it backs the latest model cache and cross-replica event fan-out.
	Enable   bool     `yaml:"enable" mapstructure:"enable"`
	Addrs    []string `yaml:"addrs" mapstructure:"addrs"`
	Username string   `yaml:"username" mapstructure:"username"`
	Password string   `yaml:"password" mapstructure:"password"`
	DB       int      `yaml:"db" mapstructure:"db"`
}

type CacheConfig struct {
	// TTL of the latest model lookup.
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// Size of the in-process lfu layer.
	LocalSize int `yaml:"localSize" mapstructure:"localSize"`
}

type ObjectStorageConfig struct {
	// Enable object storage, training uploads are rejected without it.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Name is the backend, one of s3, oss, gcs.
	Name string `yaml:"name" mapstructure:"name"`

	Region    string `yaml:"region" mapstructure:"region"`
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"accessKey" mapstructure:"accessKey"`
	SecretKey string `yaml:"secretKey" mapstructure:"secretKey"`

	// CredentialsFile is the service account file used by gcs.
	CredentialsFile string `yaml:"credentialsFile" mapstructure:"credentialsFile"`

	// S3ForcePath uses path style addressing for s3 compatible backends.
	S3ForcePath bool `yaml:"s3ForcePath" mapstructure:"s3ForcePath"`

	// Bucket holds all model artifacts.
	Bucket string `yaml:"bucket" mapstructure:"bucket"`

	// PublicURL is the download base url, artifact urls are PublicURL/bucket/key.
	PublicURL string `yaml:"publicURL" mapstructure:"publicURL"`
}

type AuthConfig struct {
	// JWT configuration.
	JWT JWTConfig `yaml:"jwt" mapstructure:"jwt"`

	// RBAC configuration.
	RBAC RBACConfig `yaml:"rbac" mapstructure:"rbac"`
}

type JWTConfig struct {
	// Realm name to display to the user.
	Realm string `yaml:"realm" mapstructure:"realm"`

	// Key shared with the identity provider to verify tokens.
	Key string `yaml:"key" mapstructure:"key"`

	// IdentityClaim is the claim carrying the user id.
	IdentityClaim string `yaml:"identityClaim" mapstructure:"identityClaim"`
}

type RBACConfig struct {
	// Enable role enforcement on mutating endpoints.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Admins are user ids granted the admin role at start.
	Admins []string `yaml:"admins" mapstructure:"admins"`
}

type EventsConfig struct {
	// BufferSize bounds the notification hand-off channel.
	BufferSize int `yaml:"bufferSize" mapstructure:"bufferSize"`

	// Channel is the redis pub/sub channel for cross-replica wakeups.
	Channel string `yaml:"channel" mapstructure:"channel"`
}

type TrainingConfig struct {
	// PoolSize is the number of concurrent training runs, zero derives it from the cpu count.
	PoolSize int `yaml:"poolSize" mapstructure:"poolSize"`

	// CPUQuota is the fraction of logical cpus the training pool may occupy.
	CPUQuota float64 `yaml:"cpuQuota" mapstructure:"cpuQuota"`

	// Nice is the scheduling priority increment of training threads.
	Nice int `yaml:"nice" mapstructure:"nice"`

	// MinSamples is the floor of the unused sample pool.
	MinSamples int `yaml:"minSamples" mapstructure:"minSamples"`

	// StreamTimeout is the longest a progress stream waits before re-reading the ledger.
	StreamTimeout time.Duration `yaml:"streamTimeout" mapstructure:"streamTimeout"`

	// RecentWindow keeps finished tasks visible to progress streams.
	RecentWindow time.Duration `yaml:"recentWindow" mapstructure:"recentWindow"`

	// BaselineWeightsPath is the local weights file of the default baseline model.
	BaselineWeightsPath string `yaml:"baselineWeightsPath" mapstructure:"baselineWeightsPath"`

	// BaselineScalerPath is the local scaler file of the default baseline model.
	BaselineScalerPath string `yaml:"baselineScalerPath" mapstructure:"baselineScalerPath"`
}

type MetricsConfig struct {
	// Enable metrics service.
	Enable bool `yaml:"enable" mapstructure:"enable"`

	// Metrics service address.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type TelemetryConfig struct {
	// Jaeger collector endpoint, empty disables tracing.
	Jaeger string `yaml:"jaeger" mapstructure:"jaeger"`

	// ServiceName reported to jaeger.
	ServiceName string `yaml:"serviceName" mapstructure:"serviceName"`
}

// New default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                DefaultServerAddr,
			LogMaxSize:          DefaultLogRotateMaxSize,
			LogMaxAge:           DefaultLogRotateMaxAge,
			LogMaxBackups:       DefaultLogRotateMaxBackups,
			GracefulStopTimeout: DefaultGracefulStopTimeout,
		},
		Database: DatabaseConfig{
			Type: DatabaseTypePostgres,
			Postgres: PostgresConfig{
				Host:                 "127.0.0.1",
				Port:                 DefaultPostgresPort,
				DBName:               DefaultDBName,
				SSLMode:              "disable",
				PreferSimpleProtocol: false,
				Timezone:             "UTC",
			},
			Mysql: MysqlConfig{
				Host:   "127.0.0.1",
				Port:   DefaultMysqlPort,
				DBName: DefaultDBName,
			},
			Sqlite: SqliteConfig{
				Path: DefaultSqlitePath,
			},
			Redis: RedisConfig{
				Enable: false,
				DB:     0,
			},
			Migrate: true,
		},
		Cache: CacheConfig{
			TTL:       DefaultCacheTTL,
			LocalSize: DefaultCacheLocalSize,
		},
		ObjectStorage: ObjectStorageConfig{
			Enable:      false,
			Name:        objectstorage.ServiceNameS3,
			S3ForcePath: objectstorage.DefaultS3ForcePathStyle,
			Bucket:      DefaultObjectStorageBucket,
		},
		Auth: AuthConfig{
			JWT: JWTConfig{
				Realm:         DefaultJWTRealm,
				IdentityClaim: DefaultJWTIdentityClaim,
			},
		},
		Events: EventsConfig{
			BufferSize: DefaultEventsBufferSize,
			Channel:    DefaultEventsChannel,
		},
		Training: TrainingConfig{
			CPUQuota:            DefaultTrainingCPUQuota,
			Nice:                DefaultTrainingNice,
			MinSamples:          DefaultTrainingMinSamples,
			StreamTimeout:       DefaultTrainingStreamTimeout,
			RecentWindow:        DefaultTrainingRecentWindow,
			BaselineWeightsPath: DefaultBaselineWeightsPath,
			BaselineScalerPath:  DefaultBaselineScalerPath,
		},
		Metrics: MetricsConfig{
			Enable: false,
			Addr:   DefaultMetricsAddr,
		},
		Telemetry: TelemetryConfig{
			ServiceName: DefaultTelemetryServiceName,
		},
	}
}

// Validate config parameters.
func (cfg *Config) Validate() error {
	if cfg.Server.Addr == "" {
		return errors.New("server requires parameter addr")
	}

	switch cfg.Database.Type {
	case DatabaseTypePostgres:
		if cfg.Database.Postgres.Host == "" {
			return errors.New("postgres requires parameter host")
		}

		if cfg.Database.Postgres.Port <= 0 {
			return errors.New("postgres requires parameter port")
		}

		if cfg.Database.Postgres.DBName == "" {
			return errors.New("postgres requires parameter dbname")
		}
	case DatabaseTypeMysql:
		if cfg.Database.Mysql.Host == "" {
			return errors.New("mysql requires parameter host")
		}

		if cfg.Database.Mysql.Port <= 0 {
			return errors.New("mysql requires parameter port")
		}

		if cfg.Database.Mysql.DBName == "" {
			return errors.New("mysql requires parameter dbname")
		}
	case DatabaseTypeSqlite:
		if cfg.Database.Sqlite.Path == "" {
			return errors.New("sqlite requires parameter path")
		}
	default:
		return errors.New("database requires parameter type")
	}

	if cfg.Database.Redis.Enable && len(cfg.Database.Redis.Addrs) == 0 {
		return errors.New("redis requires parameter addrs")
	}

	if cfg.ObjectStorage.Enable {
		switch cfg.ObjectStorage.Name {
		case objectstorage.ServiceNameS3, objectstorage.ServiceNameOSS, objectstorage.ServiceNameGCS:
		default:
			return errors.New("objectStorage requires parameter name")
		}

		if cfg.ObjectStorage.Bucket == "" {
			return errors.New("objectStorage requires parameter bucket")
		}

		if cfg.ObjectStorage.Name != objectstorage.ServiceNameGCS && cfg.ObjectStorage.Endpoint == "" {
			return errors.New("objectStorage requires parameter endpoint")
		}
	}

	if cfg.Auth.JWT.Key == "" {
		return errors.New("jwt requires parameter key")
	}

	if cfg.Auth.JWT.IdentityClaim == "" {
		return errors.New("jwt requires parameter identityClaim")
	}

	if cfg.Events.BufferSize <= 0 {
		return errors.New("events requires parameter bufferSize")
	}

	if cfg.Training.CPUQuota <= 0 || cfg.Training.CPUQuota > 1 {
		return errors.New("training requires parameter cpuQuota")
	}

	if cfg.Training.MinSamples <= 0 {
		return errors.New("training requires parameter minSamples")
	}

	if cfg.Training.StreamTimeout <= 0 {
		return errors.New("training requires parameter streamTimeout")
	}

	if cfg.Training.RecentWindow <= 0 {
		return errors.New("training requires parameter recentWindow")
	}

	if cfg.Metrics.Enable && cfg.Metrics.Addr == "" {
		return errors.New("metrics requires parameter addr")
	}

	return nil
}
