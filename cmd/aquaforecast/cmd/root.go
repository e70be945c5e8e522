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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aquaforecast/aquaforecast/cmd/dependency"
	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/internal/afpath"
	"github.com/aquaforecast/aquaforecast/manager"
	"github.com/aquaforecast/aquaforecast/manager/config"
	"github.com/aquaforecast/aquaforecast/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aquaforecast",
	Short: "the model registry and training service of aquaforecast",
	Long: `aquaforecast is a long-running process and is mainly responsible for managing
fish growth prediction model versions, serving them to mobile clients and
retraining them in the background from labeled farm data.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize afpath.
		d, err := initAfpath(&cfg.Server)
		if err != nil {
			return err
		}

		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Server.LogMaxSize,
			MaxAge:     cfg.Server.LogMaxAge,
			MaxBackups: cfg.Server.LogMaxBackups,
		}

		// Initialize logger.
		if err := logger.InitManager(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init manager logger: %w", err)
		}

		return runManager(ctx, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default manager config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)
}

func initAfpath(cfg *config.ServerConfig) (afpath.Afpath, error) {
	var options []afpath.Option
	if cfg.LogDir != "" {
		options = append(options, afpath.WithLogDir(cfg.LogDir))
	}

	if cfg.DataDir != "" {
		options = append(options, afpath.WithDataDir(cfg.DataDir))
	}

	return afpath.New(options...)
}

func runManager(ctx context.Context, d afpath.Afpath) error {
	logger.Infof("version:\n%s", version.Version())

	// Credentials are masked in the dump.
	dump := *cfg
	dump.Auth.JWT.Key = mask(dump.Auth.JWT.Key)
	dump.ObjectStorage.SecretKey = mask(dump.ObjectStorage.SecretKey)
	dump.Database.Postgres.Password = mask(dump.Database.Postgres.Password)
	dump.Database.Mysql.Password = mask(dump.Database.Mysql.Password)
	dump.Database.Redis.Password = mask(dump.Database.Redis.Password)
	s, _ := yaml.Marshal(&dump)
	logger.Infof("manager configuration:\n%s", string(s))

	ff := dependency.InitMonitor(cfg.Verbose, cfg.PProfPort, cfg.Telemetry)
	defer ff()

	svr, err := manager.New(ctx, cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	return svr.Serve()
}

func mask(s string) string {
	if s == "" {
		return s
	}

	return "******"
}
