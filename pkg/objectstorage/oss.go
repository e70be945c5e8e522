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

	aliyunoss "github.com/aliyun/aliyun-oss-go-sdk/oss"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// ossSignMethods maps client methods to the signable oss methods.
var ossSignMethods = map[Method]aliyunoss.HTTPMethod{
	MethodGet:    aliyunoss.HTTPGet,
	MethodPut:    aliyunoss.HTTPPut,
	MethodHead:   aliyunoss.HTTPHead,
	MethodDelete: aliyunoss.HTTPDelete,
}

type oss struct {
	// OSS client.
	client *aliyunoss.Client

	// buckets caches bucket handles by name.
	buckets cmap.ConcurrentMap[string, *aliyunoss.Bucket]

	// region is storage region.
	region string

	// endpoint is datacenter endpoint.
	endpoint string
}

// New oss instance. The sdk takes no context, calls check ctx before sending.
func newOSS(region, endpoint, accessKey, secretKey string, httpClient *http.Client) (ObjectStorage, error) {
	client, err := aliyunoss.New(endpoint, accessKey, secretKey, aliyunoss.Region(region), aliyunoss.HTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("new oss client failed: %s", err)
	}

	return &oss{
		client:   client,
		buckets:  cmap.New[*aliyunoss.Bucket](),
		region:   region,
		endpoint: endpoint,
	}, nil
}

// bucket returns the cached handle of the bucket.
func (o *oss) bucket(ctx context.Context, bucketName string) (*aliyunoss.Bucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if bucket, ok := o.buckets.Get(bucketName); ok {
		return bucket, nil
	}

	bucket, err := o.client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	o.buckets.Set(bucketName, bucket)
	return bucket, nil
}

// GetMetadata returns metadata of object storage.
func (o *oss) GetMetadata(ctx context.Context) *Metadata {
	return &Metadata{
		Name:     ServiceNameOSS,
		Region:   o.region,
		Endpoint: o.endpoint,
	}
}

// IsBucketExist returns whether the bucket exists.
func (o *oss) IsBucketExist(ctx context.Context, bucketName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	return o.client.IsBucketExist(bucketName)
}

// CreateBucket creates a private bucket, artifacts are served by signed or public urls.
func (o *oss) CreateBucket(ctx context.Context, bucketName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return o.client.CreateBucket(bucketName, aliyunoss.ACL(aliyunoss.ACLPrivate))
}

// PutObject puts data of object with its digest and content type.
func (o *oss) PutObject(ctx context.Context, bucketName, objectKey, digest string, reader io.Reader) error {
	bucket, err := o.bucket(ctx, bucketName)
	if err != nil {
		return err
	}

	return bucket.PutObject(objectKey, reader,
		aliyunoss.ContentType(ContentType(objectKey)),
		aliyunoss.Meta(MetaDigest, digest),
	)
}

// GetObject returns data of object.
func (o *oss) GetObject(ctx context.Context, bucketName, objectKey string) (io.ReadCloser, error) {
	bucket, err := o.bucket(ctx, bucketName)
	if err != nil {
		return nil, err
	}

	return bucket.GetObject(objectKey)
}

// DeleteObject deletes data of object, a missing object is not an error.
func (o *oss) DeleteObject(ctx context.Context, bucketName, objectKey string) error {
	bucket, err := o.bucket(ctx, bucketName)
	if err != nil {
		return err
	}

	if err := bucket.DeleteObject(objectKey); err != nil && !isOSSNotFound(err) {
		return err
	}

	return nil
}

// IsObjectExist returns whether the object exists.
func (o *oss) IsObjectExist(ctx context.Context, bucketName, objectKey string) (bool, error) {
	bucket, err := o.bucket(ctx, bucketName)
	if err != nil {
		return false, err
	}

	return bucket.IsObjectExist(objectKey)
}

// GetSignURL returns sign url of object.
func (o *oss) GetSignURL(ctx context.Context, bucketName, objectKey string, method Method, expire time.Duration) (string, error) {
	ossMethod, ok := ossSignMethods[method]
	if !ok {
		return "", fmt.Errorf("not support method %s", method)
	}

	bucket, err := o.bucket(ctx, bucketName)
	if err != nil {
		return "", err
	}

	return bucket.SignURL(objectKey, ossMethod, int64(expire.Seconds()))
}

// isOSSNotFound reports whether err is a 404 from oss.
func isOSSNotFound(err error) bool {
	var serviceErr aliyunoss.ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.StatusCode == http.StatusNotFound
	}

	return false
}
