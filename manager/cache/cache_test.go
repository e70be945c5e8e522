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
	"testing"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/manager/config"
)

func TestCache_New(t *testing.T) {
	tests := []struct {
		name   string
		config *config.Config
		expect func(t *testing.T, c *Cache)
	}{
		{
			name:   "default ttl",
			config: &config.Config{},
			expect: func(t *testing.T, c *Cache) {
				assert := assert.New(t)
				assert.Equal(DefaultTTL, c.TTL)
			},
		},
		{
			name:   "configured ttl",
			config: &config.Config{Cache: config.CacheConfig{TTL: time.Minute, LocalSize: 10}},
			expect: func(t *testing.T, c *Cache) {
				assert := assert.New(t)
				assert.Equal(time.Minute, c.TTL)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, New(tc.config, nil))
		})
	}
}

func TestCache_Invalidate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	c := New(&config.Config{}, nil)
	key := MakeLatestModelVersionCacheKey()

	assert.NoError(c.Set(&cache.Item{Ctx: ctx, Key: key, Value: "foo", TTL: c.TTL}))
	var value string
	assert.NoError(c.Get(ctx, key, &value))
	assert.Equal("foo", value)

	assert.NoError(c.Invalidate(ctx, key, MakeDeployedModelVersionCacheKey()))
	assert.ErrorIs(c.Get(ctx, key, &value), cache.ErrCacheMiss)
}

func TestCache_MakeCacheKey(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("manager:model-version:latest", MakeLatestModelVersionCacheKey())
	assert.Equal("manager:model-version:deployed", MakeDeployedModelVersionCacheKey())
	assert.Equal("manager:foo:bar", MakeCacheKey("foo", "bar"))
}
