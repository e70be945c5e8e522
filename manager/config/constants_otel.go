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

import "go.opentelemetry.io/otel/attribute"

const (
	AttributeTrainingTaskID   = attribute.Key("aquaforecast.training.task.id")
	AttributeBaseModelID      = attribute.Key("aquaforecast.training.base.model.id")
	AttributeNewVersion       = attribute.Key("aquaforecast.training.new.version")
	AttributeResultModelID    = attribute.Key("aquaforecast.training.result.model.id")
	AttributeTrainingStage    = attribute.Key("aquaforecast.training.stage")
	AttributeTrainingErrorMsg = attribute.Key("aquaforecast.training.error")
)

const (
	SpanRequestRetrain = "request-retrain"
	SpanTrainModel     = "train-model"
)

const (
	EventTrainingStarted   = "training-started"
	EventTrainingProgress  = "training-progress"
	EventTrainingCompleted = "training-completed"
	EventTrainingFailed    = "training-failed"
)
