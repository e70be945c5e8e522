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

package manager

import (
	"context"
	"net/http"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/internal/afpath"
	"github.com/aquaforecast/aquaforecast/manager/cache"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/manager/database"
	"github.com/aquaforecast/aquaforecast/manager/events"
	"github.com/aquaforecast/aquaforecast/manager/job"
	"github.com/aquaforecast/aquaforecast/manager/metrics"
	"github.com/aquaforecast/aquaforecast/manager/permission/rbac"
	"github.com/aquaforecast/aquaforecast/manager/router"
	"github.com/aquaforecast/aquaforecast/manager/service"
	"github.com/aquaforecast/aquaforecast/pkg/objectstorage"
	"github.com/aquaforecast/aquaforecast/trainer/storage"
	"github.com/aquaforecast/aquaforecast/trainer/training"
)

type Server struct {
	// Server configuration.
	config *config.Config

	// Database and redis clients.
	db *database.Database

	// Event bus of training progress.
	bus events.Bus

	// Training job.
	job job.Job

	// REST server.
	restServer *http.Server

	// Metrics server.
	metricsServer *http.Server

	// done is closed when Stop finished.
	done chan struct{}
}

func New(ctx context.Context, cfg *config.Config, d afpath.Afpath) (*Server, error) {
	s := &Server{config: cfg, done: make(chan struct{})}

	// Initialize database.
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	s.db = db

	// Initialize enforcer.
	enforcer, err := rbac.NewEnforcer(db.DB)
	if err != nil {
		return nil, err
	}

	if err := rbac.InitRBAC(enforcer, cfg.Auth.RBAC.Admins); err != nil {
		return nil, err
	}

	// Initialize cache.
	cache := cache.New(cfg, db.RDB)

	// Initialize object storage.
	var objectStorage objectstorage.ObjectStorage
	if cfg.ObjectStorage.Enable {
		objectStorage, err = newObjectStorage(ctx, &cfg.ObjectStorage)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("object storage is disabled, training runs cannot upload artifacts")
	}
	artifacts := storage.NewArtifacts(objectStorage, cfg.ObjectStorage.Bucket, cfg.ObjectStorage.PublicURL)

	// Initialize event bus.
	busOptions := []events.Option{events.WithBufferSize(cfg.Events.BufferSize)}
	if db.RDB != nil {
		busOptions = append(busOptions, events.WithRedis(db.RDB, cfg.Events.Channel))
	}
	s.bus = events.New(busOptions...)

	// Initialize service.
	serviceOptions := []service.Option{service.WithDatabase(db), service.WithCache(cache)}
	if objectStorage != nil {
		serviceOptions = append(serviceOptions, service.WithArtifacts(artifacts))
	}
	svc := service.New(serviceOptions...)

	// Initialize training job.
	t := training.New(&cfg.Training, svc, storage.New(d.StagingDir()), artifacts)
	s.job, err = job.New(cfg, svc, t, s.bus)
	if err != nil {
		return nil, err
	}

	// Initialize REST server.
	r, err := router.Init(cfg, svc, s.job, enforcer)
	if err != nil {
		return nil, err
	}
	s.restServer = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	// Initialize metrics server.
	if cfg.Metrics.Enable {
		s.metricsServer = metrics.New(&cfg.Metrics)
	}

	return s, nil
}

// newObjectStorage creates the object storage client and the artifact bucket.
func newObjectStorage(ctx context.Context, cfg *config.ObjectStorageConfig) (objectstorage.ObjectStorage, error) {
	objectStorage, err := objectstorage.New(ctx, cfg.Name, cfg.Region, cfg.Endpoint, cfg.AccessKey, cfg.SecretKey,
		objectstorage.WithS3ForcePath(cfg.S3ForcePath),
		objectstorage.WithCredentialsFile(cfg.CredentialsFile),
	)
	if err != nil {
		return nil, err
	}

	ok, err := objectStorage.IsBucketExist(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}

	if !ok {
		if err := objectStorage.CreateBucket(ctx, cfg.Bucket); err != nil {
			return nil, err
		}
		logger.StorageLogger.Infof("created bucket %s", cfg.Bucket)
	}

	return objectStorage, nil
}

func (s *Server) Serve() error {
	// Started event bus.
	go func() {
		logger.Info("started event bus")
		s.bus.Serve()
	}()

	// Started metrics server.
	if s.metricsServer != nil {
		go func() {
			logger.Infof("started metrics server at %s", s.metricsServer.Addr)
			if err := s.metricsServer.ListenAndServe(); err != nil {
				if err == http.ErrServerClosed {
					return
				}
				logger.Fatalf("metrics server closed unexpect: %s", err.Error())
			}
		}()
	}

	// Started REST server.
	logger.Infof("started rest server at %s", s.restServer.Addr)
	if err := s.restServer.ListenAndServe(); err != nil {
		if err == http.ErrServerClosed {
			<-s.done
			return nil
		}
		logger.Errorf("rest server closed unexpect: %s", err.Error())
		return err
	}

	return nil
}

func (s *Server) Stop() {
	defer close(s.done)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.GracefulStopTimeout)
	defer cancel()

	// Stop REST server.
	if err := s.restServer.Shutdown(ctx); err != nil {
		logger.Errorf("rest server failed to stop: %s", err.Error())
	}
	logger.Info("rest server closed under request")

	// Stop metrics server.
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			logger.Errorf("metrics server failed to stop: %s", err.Error())
		}
		logger.Info("metrics server closed under request")
	}

	// Wait for running training tasks.
	if err := s.job.Stop(ctx); err != nil {
		logger.Errorf("training job failed to stop: %s", err.Error())
	}
	logger.Info("training job closed under request")

	// Stop event bus.
	s.bus.Stop()
	logger.Info("event bus closed under request")

	// Close database and redis.
	if err := s.db.Close(); err != nil {
		logger.Errorf("database failed to close: %s", err.Error())
	}
}
