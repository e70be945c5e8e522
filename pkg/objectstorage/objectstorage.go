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

//go:generate mockgen -destination mocks/objectstorage_mock.go -source objectstorage.go -package mocks

package objectstorage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"path"
	"strings"
	"time"
)

type Metadata struct {
	// Name is object storage name of type, it can be s3, oss or gcs.
	Name string

	// Region is storage region.
	Region string

	// Endpoint is datacenter endpoint.
	Endpoint string
}

// ObjectStorage is the interface used for object storage.
type ObjectStorage interface {
	// GetMetadata returns metadata of object storage.
	GetMetadata(ctx context.Context) *Metadata

	// IsBucketExist returns whether the bucket exists.
	IsBucketExist(ctx context.Context, bucketName string) (bool, error)

	// CreateBucket creates bucket of object storage.
	CreateBucket(ctx context.Context, bucketName string) error

	// PutObject puts data of object.
	PutObject(ctx context.Context, bucketName, objectKey, digest string, reader io.Reader) error

	// GetObject returns data of object.
	GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error)

	// DeleteObject deletes data of object.
	DeleteObject(ctx context.Context, bucketName, objectKey string) error

	// IsObjectExist returns whether the object exists.
	IsObjectExist(ctx context.Context, bucketName, objectKey string) (bool, error)

	// GetSignURL returns sign url of object.
	GetSignURL(ctx context.Context, bucketName, objectKey string, method Method, expire time.Duration) (string, error)
}

// objectStorage provides object storage.
type objectStorage struct {
	s3ForcePath     bool
	credentialsFile string
	httpClient      *http.Client
}

// Option is a functional option for configuring the objectStorage.
type Option func(o *objectStorage)

// WithS3ForcePath set the S3ForcePath for objectStorage.
func WithS3ForcePath(s3ForcePath bool) Option {
	return func(o *objectStorage) {
		o.s3ForcePath = s3ForcePath
	}
}

// WithCredentialsFile set the service account file used by gcs.
func WithCredentialsFile(credentialsFile string) Option {
	return func(o *objectStorage) {
		o.credentialsFile = credentialsFile
	}
}

// WithHTTPClient set the http client for objectStorage.
func WithHTTPClient(client *http.Client) Option {
	return func(o *objectStorage) {
		o.httpClient = client
	}
}

// New object storage interface.
func New(ctx context.Context, name, region, endpoint, accessKey, secretKey string, options ...Option) (ObjectStorage, error) {
	o := &objectStorage{
		s3ForcePath: DefaultS3ForcePathStyle,
		httpClient:  defaultHTTPClient(),
	}

	for _, opt := range options {
		opt(o)
	}

	switch name {
	case ServiceNameS3:
		return newS3(region, endpoint, accessKey, secretKey, o.s3ForcePath, o.httpClient)
	case ServiceNameOSS:
		return newOSS(region, endpoint, accessKey, secretKey, o.httpClient)
	case ServiceNameGCS:
		return newGCS(ctx, region, endpoint, accessKey, o.credentialsFile, o.httpClient)
	}

	return nil, fmt.Errorf("unknow service name %s", name)
}

// defaultHTTPClient returns a new http client for objectStorage.
func defaultHTTPClient() *http.Client {
	return &http.Client{
		Timeout: DefaultTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   DefaultTLSHandshakeTimeout,
			ResponseHeaderTimeout: DefaultResponseHeaderTimeout,
			IdleConnTimeout:       DefaultIdleConnTimeout,
			MaxIdleConnsPerHost:   DefaultMaxIdleConnsPerHost,
		},
	}
}

// ContentType returns the content type of an object by its key extension.
func ContentType(objectKey string) string {
	switch strings.ToLower(path.Ext(objectKey)) {
	case ".json":
		return ContentTypeJSON
	case ".csv":
		return ContentTypeCSV
	default:
		return ContentTypeOctetStream
	}
}
