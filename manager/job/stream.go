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
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/sse"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/metrics"
	"github.com/aquaforecast/aquaforecast/manager/types"
)

const (
	// StreamEventUpdate carries a changed training task.
	StreamEventUpdate = "update"

	// StreamEventError carries the failure that ended a stream.
	StreamEventError = "error"

	streamCommentPing      = "ping"
	streamCommentHeartbeat = "heartbeat"
)

// StreamTrainingTasks writes progress events of training tasks to w until ctx
// is done. Every wake re-reads the ledger, a task is written again only when
// its observable state changed.
func (j *job) StreamTrainingTasks(ctx context.Context, w io.Writer) error {
	metrics.StreamConsumerGauge.Inc()
	defer metrics.StreamConsumerGauge.Dec()

	if err := writeComment(w, streamCommentPing); err != nil {
		return err
	}

	sub := j.bus.Subscribe()
	last := make(map[string]types.TrainingTaskState)
	for {
		signaled := sub.WaitForUpdate(ctx, j.config.StreamTimeout)
		if ctx.Err() != nil {
			return nil
		}

		tasks, err := j.service.GetStreamingTrainingTasks(ctx, j.config.RecentWindow)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			logger.JobLogger.Errorf("stream training tasks failed: %s", err.Error())
			if writeErr := writeEvent(w, StreamEventError, map[string]string{"error": aferrors.MessageOf(err)}); writeErr != nil {
				return writeErr
			}

			return err
		}

		seen := make(map[string]struct{}, len(tasks))
		var emitted int
		for i := range tasks {
			task := &tasks[i]
			seen[task.ID] = struct{}{}

			state := types.NewTrainingTaskState(task)
			if prev, ok := last[task.ID]; ok && prev == state {
				continue
			}
			last[task.ID] = state

			if err := writeEvent(w, StreamEventUpdate, types.TrainingTaskEvent{
				TaskID: task.ID,
				Task:   task,
				State:  state,
			}); err != nil {
				return err
			}
			emitted++
		}

		for id := range last {
			if _, ok := seen[id]; !ok {
				delete(last, id)
			}
		}

		if !signaled && emitted == 0 {
			if err := writeComment(w, streamCommentHeartbeat); err != nil {
				return err
			}
		}
	}
}

// writeEvent writes a server sent event with a json payload.
func writeEvent(w io.Writer, event string, data any) error {
	if err := sse.Encode(w, sse.Event{Event: event, Data: data}); err != nil {
		return err
	}

	flush(w)
	return nil
}

// writeComment writes a server sent comment line, clients ignore it.
func writeComment(w io.Writer, comment string) error {
	if _, err := fmt.Fprintf(w, ": %s\n\n", comment); err != nil {
		return err
	}

	flush(w)
	return nil
}

func flush(w io.Writer) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
