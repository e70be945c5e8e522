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

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvents_New(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
		expect  func(t *testing.T, b Bus)
	}{
		{
			name: "new bus with default buffer size",
			expect: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				assert.Equal(DefaultBufferSize, cap(b.(*bus).notifications))
				assert.Nil(b.(*bus).rdb)
			},
		},
		{
			name:    "new bus with custom buffer size",
			options: []Option{WithBufferSize(4)},
			expect: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				assert.Equal(4, cap(b.(*bus).notifications))
			},
		},
		{
			name:    "new bus ignores invalid buffer size",
			options: []Option{WithBufferSize(-1)},
			expect: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				assert.Equal(DefaultBufferSize, cap(b.(*bus).notifications))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.expect(t, New(tc.options...))
		})
	}
}

func TestEvents_Notify(t *testing.T) {
	tests := []struct {
		name   string
		run    func(b Bus)
		expect func(t *testing.T, b Bus, woken bool)
	}{
		{
			name: "started task wakes waiters",
			run: func(b Bus) {
				b.NotifyStarted("foo")
			},
			expect: func(t *testing.T, b Bus, woken bool) {
				assert := assert.New(t)
				assert.True(woken)
				assert.True(b.IsActive("foo"))
			},
		},
		{
			name: "update of active task wakes waiters",
			run: func(b Bus) {
				b.(*bus).active.Set("foo", struct{}{})
				b.NotifyUpdated("foo")
			},
			expect: func(t *testing.T, b Bus, woken bool) {
				assert := assert.New(t)
				assert.True(woken)
			},
		},
		{
			name: "update of unknown task is ignored",
			run: func(b Bus) {
				b.NotifyUpdated("foo")
			},
			expect: func(t *testing.T, b Bus, woken bool) {
				assert := assert.New(t)
				assert.False(woken)
				assert.False(b.IsActive("foo"))
			},
		},
		{
			name: "completed task wakes waiters and leaves active set",
			run: func(b Bus) {
				b.(*bus).active.Set("foo", struct{}{})
				b.NotifyCompleted("foo")
			},
			expect: func(t *testing.T, b Bus, woken bool) {
				assert := assert.New(t)
				assert.True(woken)
				assert.False(b.IsActive("foo"))
			},
		},
		{
			name: "completed unknown task still wakes waiters",
			run: func(b Bus) {
				b.NotifyCompleted("bar")
			},
			expect: func(t *testing.T, b Bus, woken bool) {
				assert := assert.New(t)
				assert.True(woken)
			},
		},
		{
			name: "update after completion is ignored",
			run: func(b Bus) {
				b.(*bus).active.Set("foo", struct{}{})
				b.(*bus).active.Remove("foo")
				b.NotifyUpdated("foo")
			},
			expect: func(t *testing.T, b Bus, woken bool) {
				assert := assert.New(t)
				assert.False(woken)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			go b.Serve()
			defer b.Stop()

			result := make(chan bool, 1)
			go func() {
				result <- b.WaitForUpdate(context.Background(), 200*time.Millisecond)
			}()
			time.Sleep(20 * time.Millisecond)

			tc.run(b)
			tc.expect(t, b, <-result)
		})
	}
}

func TestEvents_WaitForUpdate(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, b Bus)
	}{
		{
			name: "timeout without signal",
			run: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				start := time.Now()
				assert.False(b.WaitForUpdate(context.Background(), 50*time.Millisecond))
				assert.GreaterOrEqual(time.Since(start), 50*time.Millisecond)
			},
		},
		{
			name: "canceled context returns early",
			run: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				assert.False(b.WaitForUpdate(ctx, time.Minute))
			},
		},
		{
			name: "broadcast wakes every waiter",
			run: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				var (
					wg    sync.WaitGroup
					mu    sync.Mutex
					woken int
				)
				for i := 0; i < 5; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						if b.WaitForUpdate(context.Background(), time.Second) {
							mu.Lock()
							woken++
							mu.Unlock()
						}
					}()
				}

				time.Sleep(50 * time.Millisecond)
				b.NotifyStarted("foo")
				wg.Wait()
				assert.Equal(5, woken)
			},
		},
		{
			name: "notify from foreign goroutines does not block on full channel",
			run: func(t *testing.T, b Bus) {
				assert := assert.New(t)
				b.Stop()
				done := make(chan struct{})
				go func() {
					for i := 0; i < 3*DefaultBufferSize; i++ {
						b.NotifyCompleted("foo")
					}
					close(done)
				}()

				select {
				case <-done:
				case <-time.After(time.Second):
					t.Fatal("notify blocked")
				}
				assert.Greater(b.(*bus).dropped.Load(), uint64(0))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			go b.Serve()
			defer b.Stop()
			tc.run(t, b)
		})
	}
}

func TestEvents_Subscribe(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T, b *bus)
	}{
		{
			name: "wake between waits is kept",
			run: func(t *testing.T, b *bus) {
				assert := assert.New(t)
				sub := b.Subscribe()
				b.broadcast()
				assert.True(sub.WaitForUpdate(context.Background(), 50*time.Millisecond))
				assert.False(sub.WaitForUpdate(context.Background(), 50*time.Millisecond))
			},
		},
		{
			name: "wake during a ledger read is kept",
			run: func(t *testing.T, b *bus) {
				assert := assert.New(t)
				sub := b.Subscribe()
				assert.False(sub.WaitForUpdate(context.Background(), 10*time.Millisecond))
				b.broadcast()
				assert.True(sub.WaitForUpdate(context.Background(), time.Second))
			},
		},
		{
			name: "one-shot wait misses an earlier wake",
			run: func(t *testing.T, b *bus) {
				assert := assert.New(t)
				b.broadcast()
				assert.False(b.WaitForUpdate(context.Background(), 50*time.Millisecond))
			},
		},
		{
			name: "subscriptions are independent",
			run: func(t *testing.T, b *bus) {
				assert := assert.New(t)
				first, second := b.Subscribe(), b.Subscribe()
				b.broadcast()
				assert.True(first.WaitForUpdate(context.Background(), 50*time.Millisecond))
				assert.True(second.WaitForUpdate(context.Background(), 50*time.Millisecond))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.run(t, New().(*bus))
		})
	}
}
