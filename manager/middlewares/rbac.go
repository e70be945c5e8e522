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

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/manager/permission/rbac"
)

func RBAC(e *casbin.Enforcer) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(UserIDContextKey)
		// request path
		group, err := rbac.GetAPIGroupName(c.Request.URL.Path)
		if err != nil {
			c.Next()
			return
		}
		// request method
		action := rbac.HTTPMethodToAction(c.Request.Method)
		// rbac validation
		ok, err := e.Enforce(uid, group, action)
		if err != nil {
			logger.GinLogger.Errorf("rbac enforce %s %s %s failed: %s", uid, group, action, err.Error())
		}

		if err != nil || !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "permission validate error",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
