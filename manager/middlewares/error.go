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

package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
)

type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"errors,omitempty"`
}

// StatusOf returns the http status of an error code.
func StatusOf(code aferrors.Code) int {
	switch code {
	case aferrors.Validation:
		return http.StatusBadRequest
	case aferrors.Auth:
		return http.StatusUnauthorized
	case aferrors.NotFound:
		return http.StatusNotFound
	case aferrors.InvalidState:
		return http.StatusConflict
	case aferrors.Storage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		ginErr := c.Errors.Last()
		if ginErr == nil {
			return
		}

		// Streaming responses have already sent their status.
		if c.Writer.Written() {
			return
		}

		// Gin error handler
		if ginErr.IsType(gin.ErrorTypeBind) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Message: http.StatusText(http.StatusUnprocessableEntity),
				Error:   ginErr.Error(),
			})
			return
		}

		err := errors.Cause(ginErr.Err)

		// GORM ErrRecordNotFound handler
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Message: http.StatusText(http.StatusNotFound),
			})
			return
		}

		// Domain error handler
		var e *aferrors.Error
		if errors.As(err, &e) {
			status := StatusOf(e.Code)
			if status == http.StatusInternalServerError {
				c.JSON(status, ErrorResponse{
					Message: http.StatusText(status),
				})
				return
			}

			c.JSON(status, ErrorResponse{
				Message: e.Message,
			})
			return
		}

		// Unknown error
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
