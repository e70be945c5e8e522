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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestConfig_Load(t *testing.T) {
	config := &Config{
		Verbose:   true,
		Console:   true,
		PProfPort: 9999,
		Server: ServerConfig{
			Addr:                ":9090",
			LogDir:              "foo",
			LogMaxSize:          512,
			LogMaxAge:           5,
			LogMaxBackups:       3,
			DataDir:             "bar",
			GracefulStopTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Type: DatabaseTypeMysql,
			Postgres: PostgresConfig{
				User:                 "foo",
				Password:             "bar",
				Host:                 "localhost",
				Port:                 5432,
				DBName:               "aquaforecast",
				SSLMode:              "disable",
				PreferSimpleProtocol: true,
				Timezone:             "UTC",
			},
			Mysql: MysqlConfig{
				User:     "foo",
				Password: "bar",
				Host:     "localhost",
				Port:     3306,
				DBName:   "aquaforecast",
			},
			Sqlite: SqliteConfig{
				Path: ":memory:",
			},
			Redis: RedisConfig{
				Enable:   true,
				Addrs:    []string{"127.0.0.1:6379"},
				Username: "baz",
				Password: "bax",
				DB:       1,
			},
			Migrate: true,
		},
		Cache: CacheConfig{
			TTL:       time.Minute,
			LocalSize: 10,
		},
		ObjectStorage: ObjectStorageConfig{
			Enable:      true,
			Name:        "s3",
			Region:      "us-east-1",
			Endpoint:    "http://127.0.0.1:9000",
			AccessKey:   "ak",
			SecretKey:   "sk",
			S3ForcePath: true,
			Bucket:      "models",
			PublicURL:   "https://cdn.example.com",
		},
		Auth: AuthConfig{
			JWT: JWTConfig{
				Realm:         "Aquaforecast",
				Key:           "secret",
				IdentityClaim: "uid",
			},
			RBAC: RBACConfig{
				Enable: true,
				Admins: []string{"admin-uid"},
			},
		},
		Events: EventsConfig{
			BufferSize: 64,
			Channel:    "events",
		},
		Training: TrainingConfig{
			PoolSize:            2,
			CPUQuota:            0.25,
			Nice:                5,
			MinSamples:          100,
			StreamTimeout:       30 * time.Second,
			RecentWindow:        5 * time.Minute,
			BaselineWeightsPath: "weights.json",
			BaselineScalerPath:  "scaler.json",
		},
		Metrics: MetricsConfig{
			Enable: true,
			Addr:   ":8000",
		},
		Telemetry: TelemetryConfig{
			Jaeger:      "http://jaeger:14268/api/traces",
			ServiceName: "aquaforecast-manager",
		},
	}

	managerConfigYAML := &Config{}
	contentYAML, _ := os.ReadFile("./testdata/manager.yaml")
	if err := yaml.Unmarshal(contentYAML, &managerConfigYAML); err != nil {
		t.Fatal(err)
	}

	assert := assert.New(t)
	assert.EqualValues(config, managerConfigYAML)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		mock   func(cfg *Config)
		expect func(t *testing.T, err error)
	}{
		{
			name:   "valid config",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.NoError(err)
			},
		},
		{
			name:   "server requires parameter addr",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Server.Addr = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "server requires parameter addr")
			},
		},
		{
			name:   "postgres requires parameter host",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Database.Postgres.Host = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "postgres requires parameter host")
			},
		},
		{
			name:   "mysql requires parameter dbname",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Database.Type = DatabaseTypeMysql
				cfg.Database.Mysql.DBName = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "mysql requires parameter dbname")
			},
		},
		{
			name:   "database requires parameter type",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Database.Type = "oracle"
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "database requires parameter type")
			},
		},
		{
			name:   "redis requires parameter addrs",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Database.Redis.Enable = true
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "redis requires parameter addrs")
			},
		},
		{
			name:   "objectStorage requires parameter endpoint",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.ObjectStorage.Enable = true
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "objectStorage requires parameter endpoint")
			},
		},
		{
			name:   "objectStorage requires parameter name",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.ObjectStorage.Enable = true
				cfg.ObjectStorage.Name = "cloudinary"
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "objectStorage requires parameter name")
			},
		},
		{
			name:   "jwt requires parameter key",
			config: New(),
			mock:   func(cfg *Config) {},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "jwt requires parameter key")
			},
		},
		{
			name:   "training requires parameter cpuQuota",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Training.CPUQuota = 1.5
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires parameter cpuQuota")
			},
		},
		{
			name:   "training requires parameter minSamples",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Training.MinSamples = 0
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "training requires parameter minSamples")
			},
		},
		{
			name:   "metrics requires parameter addr",
			config: New(),
			mock: func(cfg *Config) {
				cfg.Auth.JWT.Key = "foo"
				cfg.Metrics.Enable = true
				cfg.Metrics.Addr = ""
			},
			expect: func(t *testing.T, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "metrics requires parameter addr")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mock(tc.config)
			tc.expect(t, tc.config.Validate())
		})
	}
}
