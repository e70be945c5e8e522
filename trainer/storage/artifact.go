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

//go:generate mockgen -destination mocks/artifact_mock.go -source artifact.go -package mocks

package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/docker/go-units"

	"github.com/aquaforecast/aquaforecast/internal/aferrors"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/pkg/digest"
	"github.com/aquaforecast/aquaforecast/pkg/objectstorage"
)

// Artifact is an uploaded object.
type Artifact struct {
	// Key is the object key, it is the handle for later deletes.
	Key string `json:"key"`

	// URL is the download url of the object.
	URL string `json:"url"`

	// Size is the size of the object in bytes.
	Size int64 `json:"size"`
}

// ErrObjectStorageDisabled is returned by artifacts without an object storage.
var ErrObjectStorageDisabled = aferrors.New(aferrors.Storage, "object storage is not enabled")

// Artifacts is the interface used for model artifacts in object storage.
type Artifacts interface {
	// Upload puts data under the key and returns its url, size and handle.
	Upload(context.Context, string, []byte) (*Artifact, error)

	// Download returns the object data of the key.
	Download(context.Context, string) ([]byte, error)

	// Delete removes the object of the key.
	Delete(context.Context, string) error
}

type artifacts struct {
	objectStorage objectstorage.ObjectStorage
	bucket        string
	publicURL     string
}

// NewArtifacts returns a new Artifacts instance.
func NewArtifacts(objectStorage objectstorage.ObjectStorage, bucket, publicURL string) Artifacts {
	return &artifacts{
		objectStorage: objectStorage,
		bucket:        bucket,
		publicURL:     strings.TrimSuffix(publicURL, "/"),
	}
}

// Upload puts data under the key and returns its url, size and handle.
func (a *artifacts) Upload(ctx context.Context, key string, data []byte) (*Artifact, error) {
	if a.objectStorage == nil {
		return nil, ErrObjectStorageDisabled
	}

	if err := a.objectStorage.PutObject(ctx, a.bucket, key, digest.FromBytes(data), bytes.NewReader(data)); err != nil {
		return nil, aferrors.Newf(aferrors.Storage, "upload %s failed: %s", key, err.Error())
	}

	logger.StorageLogger.Infof("uploaded %s (%s) to bucket %s", key, units.HumanSize(float64(len(data))), a.bucket)
	return &Artifact{
		Key:  key,
		URL:  a.url(ctx, key),
		Size: int64(len(data)),
	}, nil
}

// Download returns the object data of the key.
func (a *artifacts) Download(ctx context.Context, key string) ([]byte, error) {
	if a.objectStorage == nil {
		return nil, ErrObjectStorageDisabled
	}

	reader, err := a.objectStorage.GetObject(ctx, a.bucket, key)
	if err != nil {
		return nil, aferrors.Newf(aferrors.Storage, "download %s failed: %s", key, err.Error())
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, aferrors.Newf(aferrors.Storage, "read %s failed: %s", key, err.Error())
	}

	return data, nil
}

// Delete removes the object of the key.
func (a *artifacts) Delete(ctx context.Context, key string) error {
	if a.objectStorage == nil {
		return ErrObjectStorageDisabled
	}

	if err := a.objectStorage.DeleteObject(ctx, a.bucket, key); err != nil {
		return aferrors.Newf(aferrors.Storage, "delete %s failed: %s", key, err.Error())
	}

	logger.StorageLogger.Infof("deleted %s from bucket %s", key, a.bucket)
	return nil
}

// url returns the public url of the key, it falls back to the storage endpoint.
func (a *artifacts) url(ctx context.Context, key string) string {
	base := a.publicURL
	if base == "" {
		base = strings.TrimSuffix(a.objectStorage.GetMetadata(ctx).Endpoint, "/")
	}

	return fmt.Sprintf("%s/%s/%s", base, a.bucket, key)
}
