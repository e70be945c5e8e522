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

package afpath

import (
	"os"
	"path/filepath"
)

var (
	// DefaultWorkHome is the work home of the service.
	DefaultWorkHome = defaultWorkHome()

	// DefaultConfigDir is the directory searched for the config file.
	DefaultConfigDir = filepath.Join(DefaultWorkHome, "config")

	// DefaultLogDir is the directory of log files.
	DefaultLogDir = filepath.Join(DefaultWorkHome, "logs")

	// DefaultDataDir is the directory of persistent data.
	DefaultDataDir = filepath.Join(DefaultWorkHome, "data")
)

// Afpath is the interface used for service directories.
type Afpath interface {
	WorkHome() string
	ConfigDir() string
	LogDir() string
	DataDir() string
	StagingDir() string
}

type afpath struct {
	workHome  string
	configDir string
	logDir    string
	dataDir   string
}

// Option is a functional option for configuring the afpath.
type Option func(d *afpath)

// WithWorkHome set the work home directory.
func WithWorkHome(dir string) Option {
	return func(d *afpath) {
		d.workHome = dir
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *afpath) {
		d.logDir = dir
	}
}

// WithDataDir set the data directory.
func WithDataDir(dir string) Option {
	return func(d *afpath) {
		d.dataDir = dir
	}
}

// New returns a new afpath and creates its directories.
func New(options ...Option) (Afpath, error) {
	d := &afpath{
		workHome:  DefaultWorkHome,
		configDir: DefaultConfigDir,
		logDir:    DefaultLogDir,
		dataDir:   DefaultDataDir,
	}

	for _, opt := range options {
		opt(d)
	}

	for _, dir := range []string{d.workHome, d.logDir, d.dataDir, d.StagingDir()} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func (d *afpath) WorkHome() string {
	return d.workHome
}

func (d *afpath) ConfigDir() string {
	return d.configDir
}

func (d *afpath) LogDir() string {
	return d.logDir
}

func (d *afpath) DataDir() string {
	return d.dataDir
}

// StagingDir is the local directory of training runs.
func (d *afpath) StagingDir() string {
	return filepath.Join(d.dataDir, "staging")
}

func defaultWorkHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".aquaforecast")
	}

	return filepath.Join(os.TempDir(), "aquaforecast")
}
