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

//go:generate mockgen -destination mocks/events_mock.go -source events.go -package mocks

package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/atomic"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
)

const (
	// DefaultBufferSize is the default capacity of the notification channel.
	DefaultBufferSize = 256
)

// Kind is the kind of a training state change.
type Kind string

const (
	// KindStarted is sent when a task begins running.
	KindStarted Kind = "started"

	// KindUpdated is sent when a running task reports progress.
	KindUpdated Kind = "updated"

	// KindCompleted is sent when a task reaches a terminal state.
	KindCompleted Kind = "completed"
)

// Bus wakes progress consumers when training state changes. Signals are
// hints only, consumers must re-read the task ledger after waking.
type Bus interface {
	// NotifyStarted registers the task as active and wakes all waiters.
	NotifyStarted(taskID string)

	// NotifyUpdated wakes all waiters if the task is active.
	NotifyUpdated(taskID string)

	// NotifyCompleted removes the task from the active set and wakes all waiters.
	NotifyCompleted(taskID string)

	// WaitForUpdate blocks until the next wake, the timeout or ctx is done.
	// It returns true only when woken by a signal.
	WaitForUpdate(ctx context.Context, timeout time.Duration) bool

	// IsActive reports whether the task is registered as active.
	IsActive(taskID string) bool

	// Subscribe returns a consumer cursor that keeps wakes landing between waits.
	Subscribe() Subscription

	// Serve dispatches notifications until Stop is called.
	Serve()

	// Stop stops dispatching.
	Stop()
}

// Subscription is the wake cursor of one long-lived consumer. A wake that
// lands while the consumer is reading the ledger ends its next wait at once.
type Subscription interface {
	// WaitForUpdate blocks until a wake after the previous wait, the timeout
	// or ctx is done. It returns true only when woken by a signal.
	WaitForUpdate(ctx context.Context, timeout time.Duration) bool
}

// message is a notification handed from a notifier to the dispatcher,
// it is also the payload published to other replicas.
type message struct {
	Origin string `json:"origin"`
	TaskID string `json:"task_id"`
	Kind   Kind   `json:"kind"`
}

type bus struct {
	// id identifies this replica on the redis channel.
	id string

	// active holds ids of running tasks.
	active cmap.ConcurrentMap[string, struct{}]

	// notifications is the hand-off from notifiers to the dispatcher.
	notifications chan message

	// mu guards generation.
	mu sync.RWMutex

	// generation is closed and replaced on every broadcast.
	generation chan struct{}

	// dropped counts notifications dropped on a full channel.
	dropped *atomic.Uint64

	rdb        redis.UniversalClient
	channel    string
	bufferSize int

	done     chan struct{}
	stopOnce sync.Once
}

// Option is a functional option for bus.
type Option func(b *bus)

// WithRedis fans notifications out to other replicas over a redis channel.
func WithRedis(rdb redis.UniversalClient, channel string) Option {
	return func(b *bus) {
		b.rdb = rdb
		b.channel = channel
	}
}

// WithBufferSize sets the capacity of the notification channel.
func WithBufferSize(size int) Option {
	return func(b *bus) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// New returns a new Bus.
func New(options ...Option) Bus {
	b := &bus{
		id:         uuid.NewString(),
		active:     cmap.New[struct{}](),
		generation: make(chan struct{}),
		dropped:    atomic.NewUint64(0),
		bufferSize: DefaultBufferSize,
		done:       make(chan struct{}),
	}

	for _, opt := range options {
		opt(b)
	}

	b.notifications = make(chan message, b.bufferSize)
	return b
}

// NotifyStarted registers the task as active and wakes all waiters.
func (b *bus) NotifyStarted(taskID string) {
	b.active.Set(taskID, struct{}{})
	b.send(message{TaskID: taskID, Kind: KindStarted})
}

// NotifyUpdated wakes all waiters if the task is active.
func (b *bus) NotifyUpdated(taskID string) {
	if !b.active.Has(taskID) {
		return
	}

	b.send(message{TaskID: taskID, Kind: KindUpdated})
}

// NotifyCompleted removes the task from the active set and wakes all waiters.
func (b *bus) NotifyCompleted(taskID string) {
	b.active.Remove(taskID)
	b.send(message{TaskID: taskID, Kind: KindCompleted})
}

// IsActive reports whether the task is registered as active.
func (b *bus) IsActive(taskID string) bool {
	return b.active.Has(taskID)
}

// send never blocks the notifier. A full channel already holds a pending
// wake, so dropping loses nothing a consumer could observe.
func (b *bus) send(msg message) {
	msg.Origin = b.id
	select {
	case b.notifications <- msg:
	default:
		n := b.dropped.Inc()
		logger.WithTask(msg.TaskID).Debugf("notification %s dropped, %d dropped in total", msg.Kind, n)
	}
}

// WaitForUpdate blocks until the next wake, the timeout or ctx is done.
func (b *bus) WaitForUpdate(ctx context.Context, timeout time.Duration) bool {
	return wait(ctx, b.currentGeneration(), timeout)
}

// Subscribe returns a cursor on the current generation.
func (b *bus) Subscribe() Subscription {
	return &subscription{
		bus:        b,
		generation: b.currentGeneration(),
	}
}

func (b *bus) currentGeneration() chan struct{} {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

type subscription struct {
	bus        *bus
	generation chan struct{}
}

// WaitForUpdate waits on the generation seen when the previous wait returned,
// the caller reads the ledger only after the cursor has moved on.
func (s *subscription) WaitForUpdate(ctx context.Context, timeout time.Duration) bool {
	signaled := wait(ctx, s.generation, timeout)
	s.generation = s.bus.currentGeneration()
	return signaled
}

func wait(ctx context.Context, generation <-chan struct{}, timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-generation:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// broadcast wakes every waiter of the current generation.
func (b *bus) broadcast() {
	b.mu.Lock()
	close(b.generation)
	b.generation = make(chan struct{})
	b.mu.Unlock()
}

// Serve dispatches notifications until Stop is called.
func (b *bus) Serve() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var remote <-chan *redis.Message
	if b.rdb != nil {
		pubsub := b.rdb.Subscribe(ctx, b.channel)
		defer pubsub.Close()
		remote = pubsub.Channel()
		logger.Infof("event bus subscribed to %s", b.channel)
	}

	for {
		select {
		case msg := <-b.notifications:
			b.broadcast()
			b.publish(ctx, msg)
		case m, ok := <-remote:
			if !ok {
				remote = nil
				continue
			}

			var msg message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				logger.Warnf("invalid event payload: %s", err.Error())
				continue
			}

			if msg.Origin == b.id {
				continue
			}

			b.broadcast()
		case <-b.done:
			return
		}
	}
}

// publish forwards a local notification to other replicas.
func (b *bus) publish(ctx context.Context, msg message) {
	if b.rdb == nil {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		logger.WithTask(msg.TaskID).Warnf("publish event failed: %s", err.Error())
	}
}

// Stop stops dispatching.
func (b *bus) Stop() {
	b.stopOnce.Do(func() {
		close(b.done)
	})
}
