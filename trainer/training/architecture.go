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

package training

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aquaforecast/aquaforecast/manager/models"
)

const (
	LayerTypeDense     = "dense"
	LayerTypeLeakyReLU = "leaky_relu"
	LayerTypeBatchNorm = "batch_norm"
	LayerTypeDropout   = "dropout"
)

const (
	ActivationLinear   = "linear"
	ActivationSoftplus = "softplus"
)

// LayerConfig describes one layer of the regressor.
type LayerConfig struct {
	Type       string  `json:"type" mapstructure:"type"`
	Units      int     `json:"units,omitempty" mapstructure:"units"`
	Activation string  `json:"activation,omitempty" mapstructure:"activation"`
	L2         float64 `json:"l2,omitempty" mapstructure:"l2"`
	Alpha      float64 `json:"alpha,omitempty" mapstructure:"alpha"`
	Momentum   float64 `json:"momentum,omitempty" mapstructure:"momentum"`
	Epsilon    float64 `json:"epsilon,omitempty" mapstructure:"epsilon"`
	Rate       float64 `json:"rate,omitempty" mapstructure:"rate"`
}

// Architecture describes the layer stack of the regressor.
type Architecture struct {
	InputDim int           `json:"input_dim" mapstructure:"input_dim"`
	Layers   []LayerConfig `json:"layers" mapstructure:"layers"`
}

// OutputDim returns the units of the last dense layer.
func (a Architecture) OutputDim() int {
	for i := len(a.Layers) - 1; i >= 0; i-- {
		if a.Layers[i].Type == LayerTypeDense {
			return a.Layers[i].Units
		}
	}

	return 0
}

// Validate checks the layer stack can be built.
func (a Architecture) Validate() error {
	if a.InputDim <= 0 {
		return errors.New("architecture requires parameter input_dim")
	}

	if len(a.Layers) == 0 {
		return errors.New("architecture requires parameter layers")
	}

	for i, l := range a.Layers {
		switch l.Type {
		case LayerTypeDense:
			if l.Units <= 0 {
				return fmt.Errorf("layer %d requires parameter units", i)
			}

			switch l.Activation {
			case "", ActivationLinear, ActivationSoftplus:
			default:
				return fmt.Errorf("layer %d has unknown activation %s", i, l.Activation)
			}
		case LayerTypeLeakyReLU, LayerTypeBatchNorm:
		case LayerTypeDropout:
			if l.Rate < 0 || l.Rate >= 1 {
				return fmt.Errorf("layer %d requires parameter rate in [0, 1)", i)
			}
		default:
			return fmt.Errorf("layer %d has unknown type %s", i, l.Type)
		}
	}

	if a.OutputDim() <= 0 {
		return errors.New("architecture requires a dense layer")
	}

	return nil
}

// DefaultArchitecture returns the stack of three LeakyReLU dense blocks and a softplus head.
func DefaultArchitecture() Architecture {
	block := func(units int, dropout bool) []LayerConfig {
		layers := []LayerConfig{
			{Type: LayerTypeDense, Units: units, Activation: ActivationLinear, L2: DefaultL2Lambda},
			{Type: LayerTypeLeakyReLU, Alpha: 0.3},
		}
		if dropout {
			layers = append(layers,
				LayerConfig{Type: LayerTypeBatchNorm, Momentum: 0.99, Epsilon: 1e-3},
				LayerConfig{Type: LayerTypeDropout, Rate: DefaultDropoutRate},
			)
		}

		return layers
	}

	var layers []LayerConfig
	layers = append(layers, block(64, true)...)
	layers = append(layers, block(32, true)...)
	layers = append(layers, block(16, false)...)
	layers[len(layers)-2].L2 = 0
	layers = append(layers, LayerConfig{Type: LayerTypeDense, Units: len(TargetNames), Activation: ActivationSoftplus})

	return Architecture{
		InputDim: len(FeatureNames),
		Layers:   layers,
	}
}

// ModelConfig is the architecture and optimizer document stored with a model version.
type ModelConfig struct {
	Architecture Architecture `json:"architecture" mapstructure:"architecture"`
	Optimizer    string       `json:"optimizer" mapstructure:"optimizer"`
	Loss         string       `json:"loss" mapstructure:"loss"`
	LearningRate float64      `json:"learning_rate" mapstructure:"learning_rate"`
	LoadedFrom   string       `json:"loaded_from,omitempty" mapstructure:"loaded_from"`
}

// NewModelConfig returns an adam and mse model config.
func NewModelConfig(arch Architecture, learningRate float64, loadedFrom string) *ModelConfig {
	return &ModelConfig{
		Architecture: arch,
		Optimizer:    "adam",
		Loss:         "mse",
		LearningRate: learningRate,
		LoadedFrom:   loadedFrom,
	}
}

// JSONMap converts the config into the stored document.
func (c *ModelConfig) JSONMap() (models.JSONMap, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}

	var m models.JSONMap
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}

	return m, nil
}

// ParseModelConfig decodes a stored model config, missing architecture falls back to the default.
func ParseModelConfig(m models.JSONMap) (*ModelConfig, error) {
	cfg := &ModelConfig{}
	if err := mapstructure.Decode(map[string]any(m), cfg); err != nil {
		return nil, err
	}

	if len(cfg.Architecture.Layers) == 0 {
		cfg.Architecture = DefaultArchitecture()
	}

	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultLearningRate
	}

	return cfg, cfg.Architecture.Validate()
}
