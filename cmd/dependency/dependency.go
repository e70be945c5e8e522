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

package dependency

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mitchellh/mapstructure"
	"github.com/phayes/freeport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"gopkg.in/yaml.v3"

	logger "github.com/aquaforecast/aquaforecast/internal/aflog"
	"github.com/aquaforecast/aquaforecast/internal/afpath"
	"github.com/aquaforecast/aquaforecast/manager/config"
)

const (
	// tracerShutdownTimeout bounds the flush of buffered spans.
	tracerShutdownTimeout = 5 * time.Second
)

// InitCommandAndConfig initializes flags, config file discovery and env binding of the command.
func InitCommandAndConfig(cmd *cobra.Command, useConfigFile bool, config any) {
	// Add common cmds only on root cmd.
	if !cmd.HasParent() {
		cmd.AddCommand(VersionCmd)
	}

	rootName := cmd.Root().Name()
	if useConfigFile {
		// Add flags.
		flagSet := cmd.Flags()
		flagSet.String("config", "", fmt.Sprintf("the path of configuration file with yaml extension name, default is %s, it can also be set by env var: %s",
			filepath.Join(afpath.DefaultConfigDir, rootName+".yaml"), strings.ToUpper(rootName+"_config")))

		// Bind common flags.
		if err := viper.BindPFlags(flagSet); err != nil {
			panic(fmt.Errorf("bind flags to viper: %w", err))
		}
	}

	// Config for binding env.
	viper.SetEnvPrefix(rootName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("config")

	// Initialize config before executing the cmd.
	cobra.OnInitialize(func() { initConfig(useConfigFile, rootName, config) })
}

// InitMonitor starts the debug monitor and the tracer, the returned func flushes them.
func InitMonitor(verbose bool, pprofPort int, telemetry config.TelemetryConfig) func() {
	fc := make(chan func(), 5)

	if verbose || pprofPort > 0 {
		vc := make(chan *statsview.ViewManager, 1)
		go func() {
			if pprofPort == 0 {
				pprofPort, _ = freeport.GetFreePort()
			}

			debugAddr := fmt.Sprintf("localhost:%d", pprofPort)
			viewer.SetConfiguration(viewer.WithAddr(debugAddr))

			logger.With("pprof", fmt.Sprintf("http://%s/debug/pprof", debugAddr),
				"statsview", fmt.Sprintf("http://%s/debug/statsview", debugAddr)).
				Infof("enable pprof at %s", debugAddr)

			vm := statsview.New()
			vc <- vm
			if err := vm.Start(); err != nil {
				logger.Warnf("serve pprof error: %s", err.Error())
			}
		}()

		fc <- func() {
			select {
			case vm := <-vc:
				vm.Stop()
			default:
			}
		}
	}

	if telemetry.Jaeger != "" {
		ff, err := initJaegerTracer(telemetry)
		if err != nil {
			logger.Warnf("init jaeger tracer error: %s", err.Error())
		} else {
			fc <- ff
		}
	}

	return func() {
		logger.Infof("do %d monitor finalizer", len(fc))
		for {
			select {
			case f := <-fc:
				f()
			default:
				return
			}
		}
	}
}

// SetupQuitSignalHandler runs the handler once on SIGINT or SIGTERM.
func SetupQuitSignalHandler(handler func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var done bool
		for sig := range signals {
			logger.Warnf("receive %s signal", sig)
			if !done {
				done = true
				handler()
				logger.Infof("handle signal %s finish", sig)
			}
		}
	}()
}

// initConfig loads defaults, the config file and env into config. The defaults
// are fed to viper so every key can be overridden from env.
func initConfig(useConfigFile bool, name string, config any) {
	defaults, err := yaml.Marshal(config)
	if err != nil {
		panic(fmt.Errorf("marshal default config: %w", err))
	}

	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewReader(defaults)); err != nil {
		panic(fmt.Errorf("viper read default config: %w", err))
	}

	// Use config file and read once.
	if useConfigFile {
		cfgFile := viper.GetString("config")
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(afpath.DefaultConfigDir)
			viper.SetConfigName(name)
		}

		if err := viper.MergeInConfig(); err != nil {
			var ignoreErr viper.ConfigFileNotFoundError
			if !errors.As(err, &ignoreErr) {
				panic(fmt.Errorf("viper read config: %w", err))
			}
		}
	}

	if err := viper.Unmarshal(config, initDecoderConfig); err != nil {
		panic(fmt.Errorf("unmarshal config to struct: %w", err))
	}
}

func initDecoderConfig(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// initJaegerTracer registers the global tracer provider exporting to jaeger.
func initJaegerTracer(telemetry config.TelemetryConfig) (func(), error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(telemetry.Jaeger)))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(telemetry.ServiceName),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Errorf("shutdown tracer provider error: %s", err.Error())
		}
	}, nil
}
