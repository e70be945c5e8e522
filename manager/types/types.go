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

package types

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var versionRegexp = regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

// ValidateVersion accepts semantic versions like 1.2.0 or 1.2.0-beta.1.
func ValidateVersion(fl validator.FieldLevel) bool {
	return versionRegexp.MatchString(fl.Field().String())
}

// Response is the envelope of successful responses.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Meta    any  `json:"meta,omitempty"`
}

// NewResponse wraps data into a successful response.
func NewResponse(data any) *Response {
	return &Response{
		Success: true,
		Data:    data,
	}
}

// ListMeta is the meta of paginated responses.
type ListMeta struct {
	Total int64 `json:"total"`
}
