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
	"errors"
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/config"
)

// ErrPoolClosed is returned when a run is scheduled after Stop.
var ErrPoolClosed = errors.New("training pool is closed")

// pool runs training on dedicated os threads with a bounded parallelism
// and a lowered scheduling priority.
type pool struct {
	sem  *semaphore.Weighted
	size int64
	nice int

	mu      sync.Mutex
	wg      sync.WaitGroup
	closed  *atomic.Bool
	running *atomic.Int64
}

// newPool returns a pool sized by the config, a zero size takes the cpu quota
// of the logical cpus.
func newPool(cfg *config.TrainingConfig) (*pool, error) {
	size := int64(cfg.PoolSize)
	if size <= 0 {
		n, err := cpu.Counts(true)
		if err != nil {
			return nil, err
		}

		size = int64(float64(n) * cfg.CPUQuota)
	}

	if size < 1 {
		size = 1
	}

	return &pool{
		sem:     semaphore.NewWeighted(size),
		size:    size,
		nice:    cfg.Nice,
		closed:  atomic.NewBool(false),
		running: atomic.NewInt64(0),
	}, nil
}

// Go schedules fn, it waits for a free slot on its own goroutine.
func (p *pool) Go(fn func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Load() {
		return ErrPoolClosed
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			logger.JobLogger.Errorf("acquire training slot failed: %s", err.Error())
			return
		}
		defer p.sem.Release(1)

		// The thread is never unlocked, it exits with the goroutine and
		// takes its lowered priority with it.
		runtime.LockOSThread()
		if err := setThreadPriority(p.nice); err != nil {
			logger.JobLogger.Warnf("set training thread priority failed: %s", err.Error())
		}

		p.running.Inc()
		defer p.running.Dec()
		fn()
	}()

	return nil
}

// Stop rejects new runs and waits for the scheduled ones until ctx is done.
func (p *pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	p.closed.Store(true)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
