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
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func mockArchitecture() Architecture {
	return Architecture{
		InputDim: 3,
		Layers: []LayerConfig{
			{Type: LayerTypeDense, Units: 8, Activation: ActivationLinear},
			{Type: LayerTypeLeakyReLU, Alpha: 0.3},
			{Type: LayerTypeDense, Units: 2, Activation: ActivationSoftplus},
		},
	}
}

// mockRegression returns rows whose targets are a positive linear function of the inputs.
func mockRegression(n int, seed int64) (*mat.Dense, *mat.Dense) {
	rng := rand.New(rand.NewSource(seed))
	x := mat.NewDense(n, 3, nil)
	y := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		a, b, c := rng.Float64(), rng.Float64(), rng.Float64()
		x.SetRow(i, []float64{a, b, c})
		y.SetRow(i, []float64{1 + a + 0.5*b, 2 + c})
	}

	return x, y
}

func TestNetwork_Fit(t *testing.T) {
	xTrain, yTrain := mockRegression(64, 1)
	xVal, yVal := mockRegression(16, 2)

	tests := []struct {
		name   string
		arch   Architecture
		mock   func(n *Network) (context.Context, FitOptions)
		expect func(t *testing.T, n *Network, h *History, epochs []int, err error)
	}{
		{
			name: "loss decreases",
			arch: mockArchitecture(),
			mock: func(n *Network) (context.Context, FitOptions) {
				n.Compile(0.01)
				return context.Background(), FitOptions{Epochs: 40, BatchSize: 16}
			},
			expect: func(t *testing.T, n *Network, h *History, epochs []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(40, h.Epochs())
				assert.False(h.EarlyStopped)
				assert.Less(h.Loss[h.Epochs()-1], h.Loss[0])
				assert.Less(h.ValLoss[h.Epochs()-1], h.ValLoss[0])
				assert.Len(epochs, 40)
				assert.Equal(40, epochs[39])
			},
		},
		{
			name: "train the default architecture",
			arch: func() Architecture {
				arch := DefaultArchitecture()
				arch.InputDim = 3
				return arch
			}(),
			mock: func(n *Network) (context.Context, FitOptions) {
				return context.Background(), FitOptions{Epochs: 2, BatchSize: 32}
			},
			expect: func(t *testing.T, n *Network, h *History, epochs []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(2, h.Epochs())
				assert.Len(h.LearningRate, 2)
				assert.Equal(DefaultLearningRate, h.LearningRate[0])
			},
		},
		{
			name: "stop early without improvement",
			arch: mockArchitecture(),
			mock: func(n *Network) (context.Context, FitOptions) {
				n.Compile(0)
				return context.Background(), FitOptions{Epochs: 100, BatchSize: 16}
			},
			expect: func(t *testing.T, n *Network, h *History, epochs []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(h.EarlyStopped)
				assert.Equal(EarlyStopPatience+1, h.Epochs())
				assert.Len(epochs, EarlyStopPatience+1)
			},
		},
		{
			name: "reduce learning rate on plateau",
			arch: mockArchitecture(),
			mock: func(n *Network) (context.Context, FitOptions) {
				n.Compile(2e-7)
				return context.Background(), FitOptions{Epochs: 7, BatchSize: 64}
			},
			expect: func(t *testing.T, n *Network, h *History, epochs []int, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.Equal(2e-7, h.LearningRate[ReduceLRPatience])
				assert.Equal(MinLearningRate, h.LearningRate[ReduceLRPatience+1])
				assert.Equal(MinLearningRate, n.LearningRate())
			},
		},
		{
			name: "context canceled",
			arch: mockArchitecture(),
			mock: func(n *Network) (context.Context, FitOptions) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, FitOptions{Epochs: 10, BatchSize: 16}
			},
			expect: func(t *testing.T, n *Network, h *History, epochs []int, err error) {
				assert := assert.New(t)
				assert.ErrorIs(err, context.Canceled)
				assert.Empty(epochs)
			},
		},
		{
			name: "invalid options",
			arch: mockArchitecture(),
			mock: func(n *Network) (context.Context, FitOptions) {
				return context.Background(), FitOptions{Epochs: 0, BatchSize: 16}
			},
			expect: func(t *testing.T, n *Network, h *History, epochs []int, err error) {
				assert := assert.New(t)
				assert.EqualError(err, "epochs and batch size must be positive")
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := NewNetwork(tc.arch, RandomSeed)
			if err != nil {
				t.Fatal(err)
			}

			ctx, opts := tc.mock(n)
			var epochs []int
			h, err := n.Fit(ctx, xTrain, yTrain, xVal, yVal, opts, func(epoch, total int) {
				epochs = append(epochs, epoch)
			})
			tc.expect(t, n, h, epochs, err)
		})
	}
}

func TestNetwork_SnapshotRestore(t *testing.T) {
	assert := assert.New(t)
	x, y := mockRegression(32, 3)

	n, err := NewNetwork(mockArchitecture(), RandomSeed)
	assert.NoError(err)
	before := n.Predict(x)
	snapshot := n.snapshot()

	n.Compile(0.05)
	_, err = n.Fit(context.Background(), x, y, x, y, FitOptions{Epochs: 3, BatchSize: 8}, nil)
	assert.NoError(err)
	assert.False(mat.Equal(before, n.Predict(x)))

	assert.NoError(n.restore(snapshot))
	assert.True(mat.Equal(before, n.Predict(x)))

	assert.Error(n.restore(snapshot[:1]))
}

func TestNetwork_Predict(t *testing.T) {
	assert := assert.New(t)
	x, _ := mockRegression(5, 4)

	n, err := NewNetwork(mockArchitecture(), RandomSeed)
	assert.NoError(err)

	pred := n.Predict(x)
	rows, cols := pred.Dims()
	assert.Equal(5, rows)
	assert.Equal(2, cols)
	for _, v := range pred.RawMatrix().Data {
		assert.Greater(v, 0.0)
	}
}
