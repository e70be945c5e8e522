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

package objectstorage

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	aliyunoss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/stretchr/testify/assert"
)

func TestObjectStorage_ContentType(t *testing.T) {
	tests := []struct {
		objectKey string
		expect    string
	}{
		{"models/1.0.0/model.json", ContentTypeJSON},
		{"models/1.0.0/scaler.JSON", ContentTypeJSON},
		{"models/1.0.0/history.csv", ContentTypeCSV},
		{"models/1.0.0/model.f16", ContentTypeOctetStream},
		{"models/1.0.0/model", ContentTypeOctetStream},
	}

	for _, tc := range tests {
		t.Run(tc.objectKey, func(t *testing.T) {
			assert.Equal(t, tc.expect, ContentType(tc.objectKey))
		})
	}
}

func TestObjectStorage_New(t *testing.T) {
	tests := []struct {
		name   string
		sname  string
		expect func(t *testing.T, o ObjectStorage, err error)
	}{
		{
			name:  "new oss",
			sname: ServiceNameOSS,
			expect: func(t *testing.T, o ObjectStorage, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(&Metadata{Name: ServiceNameOSS, Region: "foo", Endpoint: "oss-cn-hangzhou.aliyuncs.com"}, o.GetMetadata(context.Background()))
			},
		},
		{
			name:  "new s3",
			sname: ServiceNameS3,
			expect: func(t *testing.T, o ObjectStorage, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(ServiceNameS3, o.GetMetadata(context.Background()).Name)
			},
		},
		{
			name:  "unknown service",
			sname: "foo",
			expect: func(t *testing.T, o ObjectStorage, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "unknow service name foo")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, err := New(context.Background(), tc.sname, "foo", "oss-cn-hangzhou.aliyuncs.com", "bar", "baz")
			tc.expect(t, o, err)
		})
	}
}

func TestOSS_GetSignURL(t *testing.T) {
	o, err := newOSS("foo", "oss-cn-hangzhou.aliyuncs.com", "bar", "baz", defaultHTTPClient())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		ctx    func() context.Context
		method Method
		expect func(t *testing.T, url string, err error)
	}{
		{
			name:   "sign get",
			ctx:    context.Background,
			method: MethodGet,
			expect: func(t *testing.T, url string, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Contains(url, "models/1.0.0/model.json")
				assert.Contains(url, "Expires=")
			},
		},
		{
			name:   "unsupported method",
			ctx:    context.Background,
			method: Method("POST"),
			expect: func(t *testing.T, url string, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "not support method POST")
			},
		},
		{
			name: "canceled context",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			method: MethodGet,
			expect: func(t *testing.T, url string, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, context.Canceled)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			url, err := o.GetSignURL(tc.ctx(), "qux", "models/1.0.0/model.json", tc.method, time.Minute)
			tc.expect(t, url, err)
		})
	}

	assert.True(t, o.(*oss).buckets.Has("qux"))
}

func TestOSS_isOSSNotFound(t *testing.T) {
	assert := assert.New(t)
	assert.True(isOSSNotFound(aliyunoss.ServiceError{Code: "NoSuchKey", StatusCode: http.StatusNotFound}))
	assert.False(isOSSNotFound(aliyunoss.ServiceError{Code: "AccessDenied", StatusCode: http.StatusForbidden}))
	assert.False(isOSSNotFound(errors.New("foo")))
}
