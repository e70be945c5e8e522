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

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"

	"github.com/aquaforecast/aquaforecast/manager/config"
)

const (
	// ModelVersionNamespace prefix of cache key.
	ModelVersionNamespace = "model-version"
)

const (
	// DefaultTTL is the ttl of the latest model lookup.
	DefaultTTL = 5 * time.Minute

	// DefaultLocalSize is the size of the in-process lfu layer.
	DefaultLocalSize = 128
)

// Cache is cache client.
type Cache struct {
	*cache.Cache
	TTL time.Duration
}

// New cache instance, rdb may be nil and only the local layer is used.
func New(cfg *config.Config, rdb redis.UniversalClient) *Cache {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	size := cfg.Cache.LocalSize
	if size <= 0 {
		size = DefaultLocalSize
	}

	options := &cache.Options{
		LocalCache: cache.NewTinyLFU(size, ttl),
	}
	if rdb != nil {
		options.Redis = rdb
	}

	return &Cache{
		Cache: cache.New(options),
		TTL:   ttl,
	}
}

// Invalidate deletes the keys, missing keys are ignored.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := c.Delete(ctx, key); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
			return err
		}
	}

	return nil
}

// Make cache key.
func MakeCacheKey(namespace string, id string) string {
	return fmt.Sprintf("manager:%s:%s", namespace, id)
}

// Make cache key for the latest model version.
func MakeLatestModelVersionCacheKey() string {
	return MakeCacheKey(ModelVersionNamespace, "latest")
}

// Make cache key for the deployed model version.
func MakeDeployedModelVersionCacheKey() string {
	return MakeCacheKey(ModelVersionNamespace, "deployed")
}
