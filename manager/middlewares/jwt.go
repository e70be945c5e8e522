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
	"fmt"
	"time"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"

	"github.com/aquaforecast/aquaforecast/manager/config"
)

// UserIDContextKey is the context key of the verified user id.
const UserIDContextKey = "uid"

// Jwt verifies bearer tokens issued by the identity provider, it never
// issues tokens itself.
func Jwt(cfg config.JWTConfig) (*jwt.GinJWTMiddleware, error) {
	identityClaim := cfg.IdentityClaim
	authMiddleware, err := jwt.New(&jwt.GinJWTMiddleware{
		Realm:       cfg.Realm,
		Key:         []byte(cfg.Key),
		Timeout:     time.Hour,
		MaxRefresh:  time.Hour,
		IdentityKey: UserIDContextKey,

		IdentityHandler: func(c *gin.Context) interface{} {
			claims := jwt.ExtractClaims(c)
			switch uid := claims[identityClaim].(type) {
			case nil:
				return nil
			case string:
				if uid == "" {
					return nil
				}

				return uid
			default:
				return fmt.Sprint(uid)
			}
		},

		Authorizator: func(data interface{}, c *gin.Context) bool {
			uid, ok := data.(string)
			return ok && uid != ""
		},

		Unauthorized: func(c *gin.Context, code int, message string) {
			c.JSON(code, ErrorResponse{
				Message: message,
			})
		},

		TokenLookup:   "header: Authorization",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
	})

	if err != nil {
		return nil, err
	}

	return authMiddleware, nil
}
