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
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type gcs struct {
	// GCS client.
	client *storage.Client

	// region is the bucket location.
	region string

	// endpoint is datacenter endpoint.
	endpoint string

	// projectID is the project owning created buckets.
	projectID string
}

// New gcs instance. The access key carries the project id, credentials
// come from the service account file.
func newGCS(ctx context.Context, region, endpoint, projectID, credentialsFile string, httpClient *http.Client) (ObjectStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	} else {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("new gcs client failed: %s", err)
	}

	return &gcs{
		client:    client,
		region:    region,
		endpoint:  endpoint,
		projectID: projectID,
	}, nil
}

// GetMetadata returns metadata of object storage.
func (g *gcs) GetMetadata(ctx context.Context) *Metadata {
	return &Metadata{
		Name:     ServiceNameGCS,
		Region:   g.region,
		Endpoint: g.endpoint,
	}
}

// IsBucketExist returns whether the bucket exists.
func (g *gcs) IsBucketExist(ctx context.Context, bucketName string) (bool, error) {
	if _, err := g.client.Bucket(bucketName).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrBucketNotExist) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// CreateBucket creates bucket of object storage.
func (g *gcs) CreateBucket(ctx context.Context, bucketName string) error {
	return g.client.Bucket(bucketName).Create(ctx, g.projectID, &storage.BucketAttrs{Location: g.region})
}

// PutObject puts data of object.
func (g *gcs) PutObject(ctx context.Context, bucketName, objectKey, digest string, reader io.Reader) error {
	w := g.client.Bucket(bucketName).Object(objectKey).NewWriter(ctx)
	w.ContentType = ContentType(objectKey)
	w.Metadata = map[string]string{MetaDigest: digest}
	if _, err := io.Copy(w, reader); err != nil {
		w.Close()
		return err
	}

	return w.Close()
}

// GetObject returns data of object.
func (g *gcs) GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error) {
	return g.client.Bucket(bucketName).Object(objectKey).NewReader(ctx)
}

// DeleteObject deletes data of object.
func (g *gcs) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	return g.client.Bucket(bucketName).Object(objectKey).Delete(ctx)
}

// IsObjectExist returns whether the object exists.
func (g *gcs) IsObjectExist(ctx context.Context, bucketName, objectKey string) (bool, error) {
	if _, err := g.client.Bucket(bucketName).Object(objectKey).Attrs(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// GetSignURL returns sign url of object.
func (g *gcs) GetSignURL(ctx context.Context, bucketName, objectKey string, method Method, expire time.Duration) (string, error) {
	switch method {
	case MethodGet, MethodPut, MethodHead, MethodDelete:
	default:
		return "", fmt.Errorf("not support method %s", method)
	}

	return g.client.Bucket(bucketName).SignedURL(objectKey, &storage.SignedURLOptions{
		Method:  string(method),
		Expires: time.Now().Add(expire),
		Scheme:  storage.SigningSchemeV4,
	})
}
