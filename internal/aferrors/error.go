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

package aferrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and for the http layer.
type Code int

const (
	Unknown Code = iota

	// NotFound means the referenced entity does not exist.
	NotFound

	// InvalidState means the operation is illegal for the current entity state.
	InvalidState

	// Validation means the input is malformed or insufficient.
	Validation

	// Auth means credential verification failed.
	Auth

	// Storage means an object storage operation failed.
	Storage

	// Training means the training pipeline failed.
	Training
)

var codeNames = map[Code]string{
	Unknown:      "Unknown",
	NotFound:     "NotFound",
	InvalidState: "InvalidState",
	Validation:   "Validation",
	Auth:         "Auth",
	Storage:      "Storage",
	Training:     "Training",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Code(%d)", int(c))
}

// Error is a typed error carrying a code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s]%s", e.Code, e.Message)
}

func New(code Code, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
	}
}

func Newf(code Code, format string, a ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, a...),
	}
}

// CheckError reports whether any error in err's chain is an *Error with the given code.
func CheckError(err error, code Code) bool {
	if err == nil {
		return false
	}

	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// CodeOf returns the code of the first *Error in err's chain, Unknown otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return Unknown
}

// MessageOf returns the message of the first *Error in err's chain, err.Error() otherwise.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}

	return err.Error()
}
