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

package rbac

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	// AdminRole may call every endpoint.
	AdminRole = "admin"

	// AllObject matches every api group.
	AllObject = "*"

	// ReadAction is the action of safe methods.
	ReadAction = "read"

	// AllAction is the action of mutating methods, it also covers reads.
	AllAction = "*"
)

// Syntax for models see https://casbin.org/docs/en/syntax-for-models
const modelText = `
# Request definition
[request_definition]
r = sub, obj, act

# Policy definition
[policy_definition]
p = sub, obj, act

# Role definition
[role_definition]
g = _, _

# Policy effect
[policy_effect]
e = some(where (p.eft == allow))

# Matchers
[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

var apiGroupRegexp = regexp.MustCompile(`^/api/v[0-9]+/([-_a-zA-Z0-9]+)`)

// NewEnforcer returns an enforcer keeping its policies in the database.
func NewEnforcer(gdb *gorm.DB) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	adapter, err := gormadapter.NewAdapterByDB(gdb)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}

	return enforcer, nil
}

// InitRBAC grants the admin role its policy and binds it to the users.
func InitRBAC(e *casbin.Enforcer, admins []string) error {
	if _, err := e.AddPolicy(AdminRole, AllObject, AllAction); err != nil {
		return err
	}

	for _, uid := range admins {
		if _, err := e.AddRoleForUser(uid, AdminRole); err != nil {
			return err
		}
	}

	return nil
}

// GetAPIGroupName returns the first path segment after the api version.
func GetAPIGroupName(path string) (string, error) {
	matches := apiGroupRegexp.FindStringSubmatch(path)
	if len(matches) != 2 {
		return "", errors.New("cannot find group name")
	}

	return matches[1], nil
}

// HTTPMethodToAction maps a request method to a policy action.
func HTTPMethodToAction(method string) string {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return AllAction
	default:
		return ReadAction
	}
}
