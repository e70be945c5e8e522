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

package job

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aquaforecast/aquaforecast/manager/config"
)

func TestPool_Go(t *testing.T) {
	assert := assert.New(t)
	p, err := newPool(&config.TrainingConfig{PoolSize: 2, Nice: 10})
	assert.NoError(err)

	var (
		mu      sync.Mutex
		current int
		peak    int
	)

	release := make(chan struct{})
	for i := 0; i < 5; i++ {
		assert.NoError(p.Go(func() {
			mu.Lock()
			current++
			if current > peak {
				peak = current
			}
			mu.Unlock()

			<-release

			mu.Lock()
			current--
			mu.Unlock()
		}))
	}

	assert.Eventually(func() bool {
		return p.running.Load() == 2
	}, 5*time.Second, 10*time.Millisecond)

	close(release)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(p.Stop(ctx))
	assert.Equal(2, peak)
	assert.Equal(int64(0), p.running.Load())
}

func TestPool_Stop(t *testing.T) {
	tests := []struct {
		name   string
		run    func(p *pool) chan struct{}
		expect func(t *testing.T, p *pool, err error)
	}{
		{
			name: "stop rejects new runs",
			run: func(p *pool) chan struct{} {
				return nil
			},
			expect: func(t *testing.T, p *pool, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.ErrorIs(p.Go(func() {}), ErrPoolClosed)
			},
		},
		{
			name: "stop times out on running runs",
			run: func(p *pool) chan struct{} {
				block := make(chan struct{})
				p.Go(func() { <-block })
				return block
			},
			expect: func(t *testing.T, p *pool, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, context.DeadlineExceeded)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := newPool(&config.TrainingConfig{PoolSize: 1})
			assert.NoError(t, err)

			block := tc.run(p)
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			tc.expect(t, p, p.Stop(ctx))

			if block != nil {
				close(block)
			}
		})
	}
}
