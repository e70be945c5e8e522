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

//go:generate mockgen -destination mocks/storage_mock.go -source storage.go -package mocks

package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/gofrs/flock"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	// HistoryFilePrefix is prefix of training history file name.
	HistoryFilePrefix = "history"

	// CSVFileExt is extension of file name.
	CSVFileExt = "csv"

	// lockFileName is the lock file of a run directory.
	lockFileName = ".lock"
)

var (
	// ErrRunLocked is returned when another training holds the run directory.
	ErrRunLocked = errors.New("run directory is locked")
)

// HistoryRecord is the metrics of a training epoch.
type HistoryRecord struct {
	// Epoch is one-based epoch index.
	Epoch int `csv:"epoch"`

	// Loss is the mean training loss of the epoch.
	Loss float64 `csv:"loss"`

	// ValLoss is the validation loss at the end of the epoch.
	ValLoss float64 `csv:"val_loss"`

	// MAE is the mean absolute error on the training partition.
	MAE float64 `csv:"mae"`

	// ValMAE is the mean absolute error on the validation partition.
	ValMAE float64 `csv:"val_mae"`

	// LearningRate is the learning rate used in the epoch.
	LearningRate float64 `csv:"lr"`
}

// Storage is the interface used for staging training runs on local disk.
type Storage interface {
	// Lock acquires the run directory based on the given run key.
	Lock(string) error

	// Unlock releases the run directory based on the given run key.
	Unlock(string) error

	// CreateArtifact writes an artifact file of the run, it returns the file path.
	CreateArtifact(string, string, []byte) (string, error)

	// OpenArtifact opens an artifact file of the run for read.
	OpenArtifact(string, string) (io.ReadCloser, error)

	// CreateHistory writes the epoch history of the run into a csv file.
	CreateHistory(string, []HistoryRecord) error

	// ListHistory returns the epoch history of the run.
	ListHistory(string) ([]HistoryRecord, error)

	// ClearRun removes the run directory.
	ClearRun(string) error

	// Clear removes all run directories.
	Clear() error
}

type storage struct {
	baseDir string
	locks   cmap.ConcurrentMap[string, *flock.Flock]
	runKeys cmap.ConcurrentMap[string, struct{}]
}

// New returns a new Storage instance.
func New(baseDir string) Storage {
	return &storage{
		baseDir: baseDir,
		locks:   cmap.New[*flock.Flock](),
		runKeys: cmap.New[struct{}](),
	}
}

// Lock acquires the run directory based on the given run key.
func (s *storage) Lock(runKey string) error {
	if err := os.MkdirAll(s.runDir(runKey), 0700); err != nil {
		return err
	}

	fileLock := flock.New(filepath.Join(s.runDir(runKey), lockFileName))
	locked, err := fileLock.TryLock()
	if err != nil {
		return err
	}

	if !locked {
		return ErrRunLocked
	}

	s.locks.Set(runKey, fileLock)
	s.runKeys.Set(runKey, struct{}{})
	return nil
}

// Unlock releases the run directory based on the given run key.
func (s *storage) Unlock(runKey string) error {
	fileLock, ok := s.locks.Pop(runKey)
	if !ok {
		return nil
	}

	return fileLock.Unlock()
}

// CreateArtifact writes an artifact file of the run, it returns the file path.
func (s *storage) CreateArtifact(runKey, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.runDir(runKey), 0700); err != nil {
		return "", err
	}

	path := filepath.Join(s.runDir(runKey), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}

	s.runKeys.Set(runKey, struct{}{})
	return path, nil
}

// OpenArtifact opens an artifact file of the run for read.
func (s *storage) OpenArtifact(runKey, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.runDir(runKey), name))
}

// CreateHistory writes the epoch history of the run into a csv file.
func (s *storage) CreateHistory(runKey string, records []HistoryRecord) error {
	if err := os.MkdirAll(s.runDir(runKey), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(s.historyFilename(runKey), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return err
	}

	s.runKeys.Set(runKey, struct{}{})
	return nil
}

// ListHistory returns the epoch history of the run.
func (s *storage) ListHistory(runKey string) ([]HistoryRecord, error) {
	file, err := os.Open(s.historyFilename(runKey))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []HistoryRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, err
	}

	return records, nil
}

// ClearRun removes the run directory.
func (s *storage) ClearRun(runKey string) error {
	if err := s.Unlock(runKey); err != nil {
		return err
	}

	if err := os.RemoveAll(s.runDir(runKey)); err != nil {
		return err
	}

	s.runKeys.Remove(runKey)
	return nil
}

// Clear removes all run directories.
func (s *storage) Clear() error {
	for _, runKey := range s.runKeys.Keys() {
		if err := s.ClearRun(runKey); err != nil {
			return err
		}
	}

	return nil
}

// runDir generates the staging directory based on the given run key.
func (s *storage) runDir(runKey string) string {
	return filepath.Join(s.baseDir, runKey)
}

// historyFilename generates history file name based on the given run key.
func (s *storage) historyFilename(runKey string) string {
	return filepath.Join(s.runDir(runKey), fmt.Sprintf("%s.%s", HistoryFilePrefix, CSVFileExt))
}
